// README: User store backed by PostgreSQL.
package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Authenticate checks the credentials and returns the account. The role is
// detected from the row, not supplied by the caller.
func (s *Store) Authenticate(ctx context.Context, username, password string) (*User, error) {
	var u User
	err := s.db.QueryRow(ctx, `
		SELECT id, username, user_type, COALESCE(credibility_score, base_score)
		FROM users
		WHERE username = $1 AND password = $2`,
		username, password,
	).Scan(&u.ID, &u.Username, &u.UserType, &u.CredibilityScore)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
