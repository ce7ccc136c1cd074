// README: Evidence validator: safety screen plus validity classification.
package evidence

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/AdityaBS04/GrabHackProper-sub001/internal/ai"
)

type Service struct {
	llm ai.LLMProvider
}

func NewService(llm ai.LLMProvider) *Service {
	return &Service{llm: llm}
}

const screenPrompt = `Analyze this image for appropriateness in a customer service context.
Determine if the image contains:
1. Relevant service-related content (food, groceries, vehicles, packages, etc.)
2. Any inappropriate, explicit, or harmful content
3. Personal information that should be protected

Respond with only: SAFE or UNSAFE`

// Screen runs the binary content-appropriateness check. It returns false only
// on a definite UNSAFE verdict; screening failures default to safe so an
// unavailable collaborator never blocks legitimate complaints.
func (s *Service) Screen(ctx context.Context, imageData []byte) bool {
	if s.llm == nil {
		return true
	}
	out, err := s.llm.GenerateVision(ctx, screenPrompt, imageData, ai.Options{Temperature: 0, MaxTokens: 10})
	if err != nil {
		log.Printf("evidence: security screening error: %v; defaulting to safe", err)
		return true
	}
	return !strings.Contains(strings.ToUpper(out), "UNSAFE")
}

// Classify asks the collaborator for a constrained verdict on the evidence and
// maps the answer onto the Validity enum. Any failure or non-matching output
// is INSUFFICIENT_EVIDENCE.
func (s *Service) Classify(ctx context.Context, description string, imageData []byte) Validity {
	if s.llm == nil {
		return InsufficientEvidence
	}
	prompt := fmt.Sprintf(`Analyze this complaint with image evidence.

Customer complaint: %s

Examine the image and determine whether visible evidence supports the claim:
- spoilage, mold, discoloration, physical damage, contamination, tampering
- whether the items appear fresh and intact
- whether the complaint matches what the image shows

Respond with EXACTLY ONE of the following tokens and nothing else:
CLEARLY_INVALID
POSSIBLY_COMPROMISED
APPEARS_NORMAL
INSUFFICIENT_EVIDENCE`, description)

	out, err := s.llm.GenerateVision(ctx, prompt, imageData, ai.Options{Temperature: 0, MaxTokens: 20})
	if err != nil {
		log.Printf("evidence: classification error: %v; treating as insufficient", err)
		return InsufficientEvidence
	}
	return ParseVerdict(out)
}
