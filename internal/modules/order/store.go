// README: Order store backed by PostgreSQL.
package order

import (
	"context"
	"encoding/json"
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

const orderColumns = `
	id, service, user_type, username, status, COALESCE(price, 0),
	COALESCE(start_address, ''), COALESCE(end_address, ''),
	COALESCE(customer_id, ''), COALESCE(restaurant_id, ''), COALESCE(driver_id, ''),
	COALESCE(restaurant_name, ''), COALESCE(items, ''), COALESCE(payment_method, 'online'),
	placed_at, COALESCE(details, '{}'::jsonb),
	COALESCE(last_updated_by, ''), last_update_timestamp, update_count,
	COALESCE(current_status_remarks, '')`

func (s *Store) Get(ctx context.Context, id string) (*Order, error) {
	row := s.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	return scanOrder(row)
}

// MostRecentFor returns the latest order placed by username on a service, or
// ErrNotFound when the actor has no orders there.
func (s *Store) MostRecentFor(ctx context.Context, username, service string) (*Order, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE username = $1 AND service = $2 AND user_type = 'customer'
		ORDER BY placed_at DESC
		LIMIT 1`, username, service)
	return scanOrder(row)
}

func (s *Store) ListFor(ctx context.Context, userType, username string) ([]*Order, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE user_type = $1 AND username = $2
		ORDER BY placed_at DESC`, userType, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// UpdateStatus moves an order along the state machine. Transitions outside
// AllowedTransitions are rejected with ErrInvalidTransition; a concurrent
// move away from `from` surfaces as ErrNotFound via the guarded WHERE clause.
func (s *Store) UpdateStatus(ctx context.Context, id string, from, to Status) error {
	if !CanTransition(from, to) {
		return ErrInvalidTransition
	}
	tag, err := s.db.Exec(ctx, `
		UPDATE orders SET status = $1 WHERE id = $2 AND status = $3`,
		string(to), id, string(from))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*Order, error) {
	var o Order
	var details []byte
	var placedAt, lastUpdate *time.Time

	err := row.Scan(
		&o.ID, &o.Service, &o.UserType, &o.Username, &o.Status, &o.Price,
		&o.StartAddress, &o.EndAddress,
		&o.CustomerID, &o.RestaurantID, &o.DriverID,
		&o.RestaurantName, &o.Items, &o.PaymentMethod,
		&placedAt, &details,
		&o.LastUpdatedBy, &lastUpdate, &o.UpdateCount,
		&o.CurrentStatusRemarks,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if placedAt != nil {
		o.PlacedAt = *placedAt
	}
	if lastUpdate != nil {
		o.LastUpdateTimestamp = *lastUpdate
	}
	if len(details) > 0 {
		if err := json.Unmarshal(details, &o.Details); err != nil {
			o.Details = map[string]any{}
		}
	}
	return &o, nil
}
