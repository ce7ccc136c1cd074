// README: Credibility scorer: pure computation plus an explicit persist step.
package credibility

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/AdityaBS04/GrabHackProper-sub001/internal/config"
)

// Storage is the slice of persistence the scorer needs. *Store satisfies it.
type Storage interface {
	BaseScore(ctx context.Context, username string) (int, error)
	Aggregates(ctx context.Context, username, service string) (Aggregates, error)
	PersistScore(ctx context.Context, username string, score int) error
}

type Service struct {
	store Storage
	value map[string]config.ValueThresholds
	now   func() time.Time
}

func NewService(store Storage, value map[string]config.ValueThresholds) *Service {
	return &Service{store: store, value: value, now: time.Now}
}

// Score computes the actor's current credibility for a service and persists it
// as the new credibility_score. The provisioned base seed is never overwritten,
// so repeated calls with no new activity return the same value.
func (s *Service) Score(ctx context.Context, username, service string) (int, error) {
	if username == "" || username == "anonymous" {
		return clamp(AnonymousBase), nil
	}

	base, err := s.store.BaseScore(ctx, username)
	if errors.Is(err, ErrUnknownActor) {
		base = DefaultBase
	} else if err != nil {
		log.Printf("credibility: base score lookup failed for %s: %v; using heuristic fallback", username, err)
		return FallbackScore(username), nil
	}

	agg, err := s.store.Aggregates(ctx, username, service)
	if err != nil {
		log.Printf("credibility: aggregates lookup failed for %s/%s: %v; using heuristic fallback", username, service, err)
		return FallbackScore(username), nil
	}

	score := ComputeScore(base, agg, s.thresholds(service), s.now())

	if err := s.store.PersistScore(ctx, username, score); err != nil {
		// The computed score is still valid; persistence is best effort here.
		log.Printf("credibility: persist failed for %s: %v", username, err)
	}
	return score, nil
}

// ComputeScore is the pure scoring function. It never reads or writes state.
func ComputeScore(base int, agg Aggregates, v config.ValueThresholds, now time.Time) int {
	score := float64(base)

	if agg.TotalOrders > 0 {
		completionRate := float64(agg.CompletedOrders) / float64(agg.TotalOrders)
		cancellationRate := float64(agg.CancelledOrders) / float64(agg.TotalOrders)

		switch {
		case completionRate >= 0.9:
			score += 2
		case completionRate >= 0.7:
			score += 1
		case completionRate < 0.5:
			score -= 2
		}

		if cancellationRate > 0.3 {
			score -= 2
		} else if cancellationRate > 0.2 {
			score -= 1
		}

		if agg.TotalOrders >= 20 {
			score += 2
		} else if agg.TotalOrders >= 10 {
			score += 1
		}

		if agg.AvgOrderValue >= v.High {
			score += 1
		} else if agg.AvgOrderValue >= v.Mid {
			score += 0.5
		}

		if !agg.FirstOrderAt.IsZero() {
			tenure := now.Sub(agg.FirstOrderAt)
			if tenure > 365*24*time.Hour {
				score += 1
			} else if tenure > 180*24*time.Hour {
				score += 0.5
			}
		}
	}

	if agg.RecentComplaints > 5 {
		score -= 2
	} else if agg.RecentComplaints > 2 {
		score -= 1
	}

	return clamp(int(score))
}

// FallbackScore is the degraded-mode heuristic used when the history store is
// unreachable. It exists to keep the system available, not to be meaningful.
func FallbackScore(username string) int {
	score := DefaultBase
	if strings.Contains(strings.ToLower(username), "test") {
		score--
	}
	if len(username) > 8 {
		score++
	}
	return clamp(score)
}

func (s *Service) thresholds(service string) config.ValueThresholds {
	if v, ok := s.value[service]; ok {
		return v
	}
	return config.ValueThresholds{High: 50, Mid: 30}
}

func clamp(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
