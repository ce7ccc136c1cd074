// README: Response rendering: tier decided locally, wording delegated with fallbacks.
package complaint

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/AdityaBS04/GrabHackProper-sub001/internal/ai"
	"github.com/AdityaBS04/GrabHackProper-sub001/internal/modules/resolution"
	"github.com/AdityaBS04/GrabHackProper-sub001/internal/types"
)

// render produces the final message for a decided tier. The tier and amount
// are fixed before the collaborator is consulted; it only words them. Any
// generation failure falls back to the deterministic template.
func (s *Service) render(ctx context.Context, sub Submission, tier resolution.Tier, comp types.Money) string {
	fallback := fallbackMessage(tier, comp)
	if s.llm == nil {
		return fallback
	}

	prompt := fmt.Sprintf(`You are a %s customer service agent.

The complaint below has already been decided. Do NOT change the outcome or the
amount; write a warm, concise message (under 150 words) communicating it.

Complaint kind: %s
Customer message: %s
Decided outcome: %s
Compensation: %s

Cover: empathy, what was decided, the compensation (exactly as given), and the
timeline (refunds 2-3 business days, replacements 45-60 minutes).`,
		displayName(string(sub.Service)), displayName(sub.SubIssue), sub.Description,
		tier, formatMoney(comp))

	out, err := s.llm.GenerateText(ctx, prompt, ai.Options{Temperature: 0.3, MaxTokens: 400})
	if err != nil || strings.TrimSpace(out) == "" {
		log.Printf("complaint: render generation failed (%v); using fallback text", err)
		return fallback
	}
	return out
}

func (s *Service) renderTextOnly(ctx context.Context, sub Submission) string {
	fallback := genericFallback(sub)
	if s.llm == nil {
		return fallback
	}

	prompt := fmt.Sprintf(`You are an expert %s customer service agent.

ISSUE: %s
USER TYPE: %s
USER COMPLAINT: %s

Provide a concise, personalized resolution covering acknowledgment, immediate
actions, appropriate next steps, and a clear timeline. Be specific to this
situation, not generic.`,
		displayName(string(sub.Service)), displayName(sub.SubIssue),
		displayName(string(sub.Role)), sub.Description)

	out, err := s.llm.GenerateText(ctx, prompt, ai.Options{Temperature: 0.3, MaxTokens: 600})
	if err != nil || strings.TrimSpace(out) == "" {
		log.Printf("complaint: text resolution generation failed (%v); using fallback text", err)
		return fallback
	}
	return out
}

func fallbackMessage(tier resolution.Tier, comp types.Money) string {
	switch tier {
	case resolution.TierFullRefund:
		return fmt.Sprintf("We sincerely apologize for the issue with your order. After reviewing the evidence, we are processing a FULL REFUND of %s immediately. The refund will be credited to your original payment method within 2-3 business days. We are also reporting this issue to the fulfilling partner to prevent it from happening again.", formatMoney(comp))
	case resolution.TierReplacement:
		return "We apologize for the problem with your order. Based on the evidence you provided, we are arranging a REPLACEMENT at no additional cost, prepared fresh and delivered within 45-60 minutes. Your replacement is being prioritized."
	case resolution.TierPartialRefund:
		return fmt.Sprintf("Thank you for reporting this issue. We have reviewed the evidence you provided and are processing a PARTIAL REFUND of %s as compensation for the inconvenience. The refund will be processed within 24 hours, and your feedback has been shared with the fulfilling partner.", formatMoney(comp))
	case resolution.TierStoreCredit:
		return fmt.Sprintf("Thank you for reporting this issue. As a gesture of goodwill we have added %s of credit to your account, available on your next order. Your feedback has been shared with the fulfilling partner.", formatMoney(comp))
	case resolution.TierFeedbackOnly:
		return "Thank you for sharing your feedback. We have reviewed your complaint and the evidence provided. While we could not verify an issue with this order, we will pass your comments to the fulfilling partner for quality improvement. For any further queries, please contact our support team."
	case resolution.TierEscalate:
		return "Thank you for bringing this to our attention. Because of the nature of this issue, we are escalating it to our specialized support team for manual review. You will be contacted within 24 hours. Your case has been prioritized."
	default:
		return "We acknowledge your concern and are committed to resolving it promptly. Our team is reviewing your case and you will hear from us within 24 hours."
	}
}

func genericFallback(sub Submission) string {
	return fmt.Sprintf(`%s Issue Resolution

%s - Processing Your Request

We acknowledge your %s concern and are committed to resolving it promptly. Your issue has been logged and prioritized for review.

Immediate actions:
- Issue logged and prioritized for review
- Appropriate compensation will be determined based on case specifics
- Investigation initiated with relevant service partners

Next steps:
- Review: 2-4 hours
- Resolution processing: 4-24 hours
- Follow-up contact: within 48 hours

Thank you for your patience while we make this right.`,
		displayName(string(sub.Service)), displayName(sub.SubIssue), displayName(string(sub.Service)))
}

// Per-kind photo requests; unknown kinds get the generic line.
var imageRequests = map[string]string{
	"missing_items":         "Please upload a photo of the items you received so we can verify what's missing and process your refund accordingly.",
	"wrong_item":            "Please upload a photo of the incorrect item you received so we can arrange an immediate exchange and investigate with the fulfilling partner.",
	"quality_issues":        "Please upload a photo of the quality issue so we can assess the severity and provide appropriate compensation.",
	"spillage":              "Please upload a photo of the spilled or damaged items so we can document the issue and provide full compensation.",
	"package_tampering":     "Please upload a photo of the tampered package so we can investigate this security concern and ensure your safety.",
	"temperature_issues":    "Please upload a photo showing the temperature issue so we can address this food safety concern immediately.",
	"expired_damaged_items": "Please upload a photo of the expired or damaged products so we can process an immediate replacement and investigate with our suppliers.",
	"vehicle_condition":     "Please upload a photo of the vehicle condition issue so we can review it with the driver partner.",
	"quantity_mismatch":     "Please upload a photo of the quantities you received so we can verify the mismatch.",
}

func imageRequest(sub Submission) string {
	specific, ok := imageRequests[sub.SubIssue]
	if !ok {
		specific = "Please upload a photo related to your issue so we can provide the best possible resolution."
	}
	return fmt.Sprintf(`Image Required for Resolution

To provide an accurate resolution for your %s issue, we need visual evidence.

%s

What to include:
- A clear, well-lit view of the issue you're reporting
- Any details that support your complaint

Images are processed securely, used only for resolution, and deleted afterwards. Please upload your photo and resubmit your complaint.`,
		displayName(string(sub.Service)), specific)
}

func betterEvidenceRequest(sub Submission) string {
	return fmt.Sprintf(`Thank you for reporting the %s issue. To properly assess your complaint, we need a clearer image.

Please upload a better quality photo showing:
- A clear view of the affected items
- Good lighting to show details
- A close-up of the specific issue

Once we receive a clearer image, we can provide an appropriate resolution.`,
		displayName(sub.SubIssue))
}

func displayName(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func formatMoney(m types.Money) string {
	if m.Amount <= 0 {
		return "no monetary compensation"
	}
	return fmt.Sprintf("%s %.2f", m.Currency, float64(m.Amount)/100)
}
