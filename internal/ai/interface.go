// README: Text-generation provider contract.
package ai

import "context"

// LLMProvider defines the contract for the hosted text-generation collaborator.
// Calls are fallible remote calls: every call site must carry a deterministic
// fallback and must never surface a raw provider error to the end user.
type LLMProvider interface {
	// GenerateText produces a completion for a text-only prompt.
	GenerateText(ctx context.Context, prompt string, opts Options) (string, error)

	// GenerateVision produces a completion for a prompt plus one image.
	// imageData is the raw (decoded) image bytes, JPEG assumed.
	GenerateVision(ctx context.Context, prompt string, imageData []byte, opts Options) (string, error)
}
