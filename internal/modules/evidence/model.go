// README: Evidence validity enum and the versioned LLM verdict mapping.
package evidence

import "strings"

// Validity is the four-way classification of submitted photographic evidence.
type Validity string

const (
	// ClearlyInvalid means the image confirms the claim (spoilage, damage,
	// tampering clearly visible).
	ClearlyInvalid Validity = "CLEARLY_INVALID"
	// PossiblyCompromised means some concern is visible but not definitive.
	PossiblyCompromised Validity = "POSSIBLY_COMPROMISED"
	// AppearsNormal means the image contradicts the claim.
	AppearsNormal Validity = "APPEARS_NORMAL"
	// InsufficientEvidence is the default for anything unparseable.
	InsufficientEvidence Validity = "INSUFFICIENT_EVIDENCE"
)

// verdictMapping v1: ordered substring matches from the collaborator's answer
// onto the enum. The collaborator is asked for constrained output, but its text
// is still treated as untrusted; anything that matches nothing is
// INSUFFICIENT_EVIDENCE. Bump the version when tokens change.
const verdictMappingVersion = 1

var verdictTokens = []struct {
	token string
	value Validity
}{
	{"CLEARLY_INVALID", ClearlyInvalid},
	{"CLEARLY_SPOILED", ClearlyInvalid}, // legacy token, kept for compatibility
	{"POSSIBLY_COMPROMISED", PossiblyCompromised},
	{"APPEARS_NORMAL", AppearsNormal},
	{"INSUFFICIENT_EVIDENCE", InsufficientEvidence},
}

// ParseVerdict maps raw collaborator text onto the enum.
func ParseVerdict(raw string) Validity {
	upper := strings.ToUpper(raw)
	for _, t := range verdictTokens {
		if strings.Contains(upper, t.token) {
			return t.value
		}
	}
	return InsufficientEvidence
}
