// README: Provider call options.
package ai

import "time"

// Options tune a single generation call.
type Options struct {
	Temperature float32
	MaxTokens   int32
	// Timeout bounds the remote call; zero means DefaultTimeout.
	Timeout time.Duration
}

// DefaultTimeout keeps slow generation calls from blocking complaint handling.
const DefaultTimeout = 20 * time.Second

func (o Options) timeout() time.Duration {
	if o.Timeout > 0 {
		return o.Timeout
	}
	return DefaultTimeout
}
