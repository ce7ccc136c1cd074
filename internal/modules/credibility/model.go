// README: Credibility scoring inputs and defaults.
package credibility

import (
	"errors"
	"time"
)

// ErrUnknownActor is returned by the store when no users row exists; scoring
// proceeds with the default seed.
var ErrUnknownActor = errors.New("unknown actor")

const (
	// DefaultBase seeds actors without a provisioned base score.
	DefaultBase = 7
	// AnonymousBase seeds unauthenticated callers.
	AnonymousBase = 5

	MinScore = 1
	MaxScore = 10
)

// Aggregates is the actor's persisted order/complaint history for one service.
// Zero values are valid (no orders, no complaints).
type Aggregates struct {
	TotalOrders      int
	CompletedOrders  int
	CancelledOrders  int
	AvgOrderValue    float64
	FirstOrderAt     time.Time // zero when no orders
	RecentComplaints int       // same service, trailing 30 days
}
