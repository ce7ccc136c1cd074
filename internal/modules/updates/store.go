// README: Update and notification store backed by PostgreSQL.
package updates

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) CountForOrderSince(ctx context.Context, orderID string, since time.Time) (int, error) {
	var n int
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM order_updates
		WHERE order_id = $1 AND created_at > $2`, orderID, since).Scan(&n)
	return n, err
}

func (s *Store) CountForActorSince(ctx context.Context, username string, since time.Time) (int, error) {
	var n int
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM order_updates
		WHERE actor_username = $1 AND created_at > $2`, username, since).Scan(&n)
	return n, err
}

func (s *Store) DuplicateExists(ctx context.Context, orderID, username, updateType string, since time.Time) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM order_updates
			WHERE order_id = $1 AND actor_username = $2 AND update_type = $3 AND created_at > $4
		)`, orderID, username, updateType, since).Scan(&exists)
	return exists, err
}

// Append writes the update, bumps the order rollup, and inserts the fan-out
// notifications in one transaction. An advisory lock on the order id
// serializes concurrent appenders so the rollup counters stay consistent.
func (s *Store) Append(ctx context.Context, u *Update, notifs []*Notification) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, u.OrderID); err != nil {
		return err
	}

	details, err := json.Marshal(u.Details)
	if err != nil {
		return err
	}
	affected, err := json.Marshal(u.AffectedActors)
	if err != nil {
		return err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO order_updates (order_id, actor_type, actor_username, update_type, description, details, affected_actors)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		u.OrderID, u.ActorType, u.ActorUsername, u.UpdateType, u.Description, details, affected,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE orders
		SET last_updated_by = $1, last_update_timestamp = NOW(),
		    update_count = update_count + 1, current_status_remarks = $2
		WHERE id = $3`,
		u.ActorUsername, u.Description, u.OrderID); err != nil {
		return err
	}

	for _, n := range notifs {
		n.SourceUpdateID = u.ID
		err := tx.QueryRow(ctx, `
			INSERT INTO actor_notifications (order_id, target_actor_type, target_username, notification_type, message, source_update_id)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at`,
			n.OrderID, n.TargetType, n.TargetUsername, n.Type, n.Message, n.SourceUpdateID,
		).Scan(&n.ID, &n.CreatedAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (s *Store) Timeline(ctx context.Context, orderID string) ([]*Update, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, order_id, actor_type, actor_username, update_type, description,
		       COALESCE(details, '{}'::jsonb), COALESCE(affected_actors, '[]'::jsonb), created_at
		FROM order_updates
		WHERE order_id = $1
		ORDER BY created_at ASC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Update
	for rows.Next() {
		var u Update
		var details, affected []byte
		if err := rows.Scan(&u.ID, &u.OrderID, &u.ActorType, &u.ActorUsername, &u.UpdateType,
			&u.Description, &details, &affected, &u.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(details, &u.Details); err != nil {
			u.Details = map[string]any{}
		}
		if err := json.Unmarshal(affected, &u.AffectedActors); err != nil {
			u.AffectedActors = nil
		}
		out = append(out, &u)
	}
	return out, rows.Err()
}

func (s *Store) NotificationsFor(ctx context.Context, targetType, username string, unreadOnly bool, limit int) ([]*Notification, error) {
	q := `
		SELECT id, order_id, target_actor_type, target_username, notification_type, message, is_read, COALESCE(source_update_id, 0), created_at
		FROM actor_notifications
		WHERE target_actor_type = $1 AND target_username = $2`
	if unreadOnly {
		q += ` AND is_read = FALSE`
	}
	q += ` ORDER BY created_at DESC LIMIT $3`

	rows, err := s.db.Query(ctx, q, targetType, username, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.OrderID, &n.TargetType, &n.TargetUsername, &n.Type,
			&n.Message, &n.Read, &n.SourceUpdateID, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &n)
	}
	return out, rows.Err()
}

func (s *Store) MarkRead(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `UPDATE actor_notifications SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
