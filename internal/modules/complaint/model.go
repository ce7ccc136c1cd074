// README: Complaint record, submission, and resolution types.
package complaint

import (
	"errors"
	"time"

	"github.com/AdityaBS04/GrabHackProper-sub001/internal/modules/resolution"
	"github.com/AdityaBS04/GrabHackProper-sub001/internal/types"
)

var (
	ErrUnknownRoute = errors.New("unknown complaint route")
	ErrValidation   = errors.New("invalid complaint")
	// ErrNotRecorded distinguishes "the store did not persist this" from all
	// other failures so callers can retry.
	ErrNotRecorded = errors.New("complaint not recorded")
)

// Submission is one incoming complaint.
type Submission struct {
	Service     types.Service
	Role        types.ActorRole
	Username    string
	Category    string
	SubIssue    string
	Description string
	// ImageData is the decoded image bytes, nil when no image was uploaded.
	ImageData []byte
	// OrderID is an explicitly referenced order, usually from session context.
	OrderID string
	// SessionToken carries conversation context, optional.
	SessionToken string
}

// OutcomeKind tells the caller which shape of response this is. All of these
// carry user-facing text; none of them dead-end the conversation.
type OutcomeKind string

const (
	OutcomeResolved      OutcomeKind = "resolved"
	OutcomeBlocked       OutcomeKind = "blocked"        // lifecycle gate
	OutcomeNeedsImage    OutcomeKind = "needs_image"    // image-required, none supplied
	OutcomeNeedsEvidence OutcomeKind = "needs_evidence" // evidence insufficient
	OutcomeRejected      OutcomeKind = "rejected"       // unsafe image content
	OutcomeEscalated     OutcomeKind = "escalated"
)

// Resolution is the final answer for one submission.
type Resolution struct {
	Kind         OutcomeKind
	Tier         resolution.Tier
	Compensation types.Money
	Message      string
	ComplaintID  int64
	Reference    string
	Credibility  int
}

// Record is a persisted complaint row.
type Record struct {
	ID          int64
	Service     string
	UserType    string
	Username    string
	Category    string
	SubIssue    string
	Description string
	Solution    string
	Status      string
	CreatedAt   time.Time
}
