// README: Resolution tiers and the history-pattern signal.
package resolution

// Tier is the decided outcome category for a complaint.
type Tier string

const (
	TierFullRefund            Tier = "FULL_REFUND"
	TierReplacement           Tier = "REPLACEMENT"
	TierPartialRefund         Tier = "PARTIAL_REFUND"
	TierStoreCredit           Tier = "STORE_CREDIT"
	TierFeedbackOnly          Tier = "FEEDBACK_ONLY"
	TierRequestBetterEvidence Tier = "REQUEST_BETTER_EVIDENCE"
	TierEscalate              Tier = "ESCALATE_FOR_MANUAL_REVIEW"
)

// generosity orders the compensating tiers from most to least generous; a
// frequent-complaint pattern downgrades along this chain.
var generosity = []Tier{TierFullRefund, TierReplacement, TierPartialRefund, TierStoreCredit}

// HistoryPattern summarizes the actor's recent complaint behavior for one
// complaint kind.
type HistoryPattern struct {
	// SameKindCount is the number of complaints of this sub-issue from this
	// actor in the trailing 30 days, excluding the current one.
	SameKindCount int
}
