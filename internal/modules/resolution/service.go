// README: Deterministic resolution decision table and policy compensation.
package resolution

import (
	"github.com/AdityaBS04/GrabHackProper-sub001/internal/config"
	"github.com/AdityaBS04/GrabHackProper-sub001/internal/modules/evidence"
	"github.com/AdityaBS04/GrabHackProper-sub001/internal/types"
)

type Engine struct {
	policy config.ResolutionPolicy
}

func NewEngine(policy config.ResolutionPolicy) *Engine {
	return &Engine{policy: policy}
}

// Decide maps (evidence, credibility, history pattern) onto a resolution tier.
// It is a pure function: same inputs always produce the same tier. Rules are
// evaluated in priority order; the first match wins.
func (e *Engine) Decide(ev evidence.Validity, credibility int, pattern HistoryPattern, safetyCritical bool) Tier {
	// Safety-impacting conditions escalate regardless of credibility.
	if safetyCritical {
		return TierEscalate
	}

	var tier Tier
	switch {
	case ev == evidence.ClearlyInvalid && credibility >= 5:
		tier = TierFullRefund
	case ev == evidence.ClearlyInvalid:
		tier = TierPartialRefund
	case ev == evidence.PossiblyCompromised && credibility >= 7:
		tier = TierReplacement
	case ev == evidence.PossiblyCompromised:
		tier = TierPartialRefund
	case ev == evidence.AppearsNormal:
		// Benefit of the doubt is not extended for high credibility when the
		// evidence contradicts the claim.
		return TierFeedbackOnly
	default:
		return TierRequestBetterEvidence
	}

	// Frequent same-kind complaints temper generous tiers.
	if pattern.SameKindCount >= e.policy.EscalatePatternHits {
		return TierEscalate
	}
	if pattern.SameKindCount >= e.policy.DowngradePatternHits {
		tier = downgrade(tier)
	}
	return tier
}

// Compensation resolves a tier to an amount from the policy ranges. Missing or
// corrupt price data falls back to a fixed goodwill credit, never a percentage
// of nothing.
func (e *Engine) Compensation(tier Tier, price float64) types.Money {
	cents := int64(price * 100)
	goodwill := types.Money{Amount: e.policy.GoodwillCreditCents, Currency: "USD"}

	switch tier {
	case TierFullRefund:
		if cents <= 0 {
			return goodwill
		}
		return types.Money{Amount: cents, Currency: "USD"}
	case TierPartialRefund:
		if cents <= 0 {
			return goodwill
		}
		pct := (e.policy.PartialRefundLowPct + e.policy.PartialRefundHighPct) / 2
		return types.Money{Amount: int64(float64(cents) * pct), Currency: "USD"}
	case TierStoreCredit:
		return goodwill
	default:
		// Replacement, feedback, evidence requests, and escalations carry no
		// immediate monetary amount.
		return types.Money{Currency: "USD"}
	}
}

func downgrade(t Tier) Tier {
	for i, g := range generosity {
		if g == t && i+1 < len(generosity) {
			return generosity[i+1]
		}
	}
	return t
}
