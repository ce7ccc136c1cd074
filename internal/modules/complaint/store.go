// README: Complaint store backed by PostgreSQL.
package complaint

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Insert persists a resolved complaint in one statement: the record is created
// with its solution attached and is immutable afterwards.
func (s *Store) Insert(ctx context.Context, r *Record) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx, `
		INSERT INTO complaints (service, user_type, username, category, sub_issue, description, solution, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		r.Service, r.UserType, r.Username, r.Category, r.SubIssue, r.Description, r.Solution, r.Status,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// RecentSameKindCount counts prior complaints of the same sub-issue from this
// actor in the trailing 30 days.
func (s *Store) RecentSameKindCount(ctx context.Context, username, service, subIssue string) (int, error) {
	var n int
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM complaints
		WHERE username = $1 AND service = $2 AND sub_issue = $3
		  AND created_at >= NOW() - INTERVAL '30 days'`,
		username, service, subIssue,
	).Scan(&n)
	return n, err
}
