// README: Credibility store: base seed, history aggregates, score persistence.
package credibility

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// BaseScore returns the actor's provisioned seed. Scoring never writes this
// column; only account provisioning does.
func (s *Store) BaseScore(ctx context.Context, username string) (int, error) {
	var base int
	err := s.db.QueryRow(ctx,
		`SELECT base_score FROM users WHERE username = $1`, username).Scan(&base)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrUnknownActor
	}
	if err != nil {
		return 0, err
	}
	return base, nil
}

func (s *Store) Aggregates(ctx context.Context, username, service string) (Aggregates, error) {
	var agg Aggregates
	var firstOrder *time.Time

	err := s.db.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE status = 'cancelled'),
			COALESCE(AVG(price), 0),
			MIN(placed_at)
		FROM orders
		WHERE username = $1 AND service = $2 AND user_type = 'customer'`,
		username, service,
	).Scan(&agg.TotalOrders, &agg.CompletedOrders, &agg.CancelledOrders, &agg.AvgOrderValue, &firstOrder)
	if err != nil {
		return Aggregates{}, err
	}
	if firstOrder != nil {
		agg.FirstOrderAt = *firstOrder
	}

	err = s.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM complaints
		WHERE username = $1 AND service = $2
		  AND created_at >= NOW() - INTERVAL '30 days'`,
		username, service,
	).Scan(&agg.RecentComplaints)
	if err != nil {
		return Aggregates{}, err
	}

	return agg, nil
}

func (s *Store) PersistScore(ctx context.Context, username string, score int) error {
	_, err := s.db.Exec(ctx,
		`UPDATE users SET credibility_score = $1 WHERE username = $2`, score, username)
	return err
}
