// README: Cross-actor update pipeline: spam guard -> template -> fan-out.
package updates

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/AdityaBS04/GrabHackProper-sub001/internal/config"
	"github.com/AdityaBS04/GrabHackProper-sub001/internal/modules/order"
)

// Storage is the persistence seam. The service does the guard arithmetic and
// target resolution; the store only counts and appends.
type Storage interface {
	CountForOrderSince(ctx context.Context, orderID string, since time.Time) (int, error)
	CountForActorSince(ctx context.Context, username string, since time.Time) (int, error)
	DuplicateExists(ctx context.Context, orderID, username, updateType string, since time.Time) (bool, error)
	// Append persists the update, the order rollup, and the notifications as
	// one atomic unit.
	Append(ctx context.Context, u *Update, notifs []*Notification) error
	Timeline(ctx context.Context, orderID string) ([]*Update, error)
	NotificationsFor(ctx context.Context, targetType, username string, unreadOnly bool, limit int) ([]*Notification, error)
	MarkRead(ctx context.Context, id int64) error
}

type OrderReader interface {
	Get(ctx context.Context, id string) (*order.Order, error)
}

type Service struct {
	store  Storage
	orders OrderReader
	limits config.SpamLimits
	now    func() time.Time
}

func NewService(store Storage, orders OrderReader, limits config.SpamLimits) *Service {
	return &Service{store: store, orders: orders, limits: limits, now: time.Now}
}

// Request is one incoming cross-actor update.
type Request struct {
	OrderID       string
	ActorType     string
	ActorUsername string
	UpdateType    string
	Details       map[string]any
}

// Post records an update and fans out notifications to the affected actors on
// the order. Spam violations surface as ErrRateLimited or ErrDuplicate so the
// handler can tell the caller why nothing was recorded.
func (s *Service) Post(ctx context.Context, req Request) (*Update, error) {
	mapping, err := LookupMapping(req.UpdateType)
	if err != nil {
		return nil, err
	}

	if err := s.checkSpamLimits(ctx, req); err != nil {
		return nil, err
	}

	o, err := s.orders.Get(ctx, req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrOrderMissing, req.OrderID)
	}

	description := renderTemplate(mapping.DescriptionTemplate, req.Details)
	u := &Update{
		OrderID:        req.OrderID,
		ActorType:      req.ActorType,
		ActorUsername:  req.ActorUsername,
		UpdateType:     req.UpdateType,
		Description:    description,
		Details:        req.Details,
		AffectedActors: mapping.AffectedActors,
	}

	message := renderTemplate(mapping.NotificationTemplate, mergeContext(req.Details, o))
	notifs := buildNotifications(o, mapping.AffectedActors, req.OrderID, message)

	if err := s.store.Append(ctx, u, notifs); err != nil {
		return nil, err
	}
	log.Printf("updates: %s on %s by %s/%s fanned out to %d actor(s)",
		req.UpdateType, req.OrderID, req.ActorType, req.ActorUsername, len(notifs))
	return u, nil
}

func (s *Service) checkSpamLimits(ctx context.Context, req Request) error {
	hourAgo := s.now().Add(-time.Hour)

	n, err := s.store.CountForOrderSince(ctx, req.OrderID, hourAgo)
	if err != nil {
		return err
	}
	if n >= s.limits.MaxPerOrderPerHour {
		return fmt.Errorf("%w: order %s", ErrRateLimited, req.OrderID)
	}

	n, err = s.store.CountForActorSince(ctx, req.ActorUsername, hourAgo)
	if err != nil {
		return err
	}
	if n >= s.limits.MaxPerActorPerHour {
		return fmt.Errorf("%w: actor %s", ErrRateLimited, req.ActorUsername)
	}

	dup, err := s.store.DuplicateExists(ctx, req.OrderID, req.ActorUsername, req.UpdateType, s.now().Add(-s.limits.DuplicateWindow))
	if err != nil {
		return err
	}
	if dup {
		return fmt.Errorf("%w: %s on %s", ErrDuplicate, req.UpdateType, req.OrderID)
	}
	return nil
}

// buildNotifications resolves the affected actor roles to the concrete
// usernames on this order. Roles with no participant on the order are skipped
// rather than failing the whole update.
func buildNotifications(o *order.Order, affected []string, orderID, message string) []*Notification {
	var out []*Notification
	add := func(targetType, username string) {
		if username == "" {
			return
		}
		out = append(out, &Notification{
			OrderID:        orderID,
			TargetType:     targetType,
			TargetUsername: username,
			Type:           "order_update",
			Message:        message,
		})
	}

	for _, actor := range affected {
		switch actor {
		case "customer":
			add("customer", customerFor(o))
		case "restaurant":
			add("restaurant", o.RestaurantID)
		case "delivery_agent":
			add("delivery_agent", o.DriverID)
		case "driver":
			add("driver", o.DriverID)
		}
	}
	return out
}

// customerFor finds the customer username on an order that may have been
// created by another actor. Customer ids follow the CUST<n> convention and
// map onto customer<n> usernames.
func customerFor(o *order.Order) string {
	if o.UserType == "customer" {
		return o.Username
	}
	if o.CustomerID != "" {
		return strings.ReplaceAll(o.CustomerID, "CUST", "customer")
	}
	return ""
}

// mergeContext layers order context under the caller's details so templates
// can reference either. Caller details win on key collision.
func mergeContext(details map[string]any, o *order.Order) map[string]any {
	data := map[string]any{
		"restaurant_name": o.RestaurantName,
		"start_address":   o.StartAddress,
		"end_address":     o.EndAddress,
		"service":         o.Service,
	}
	for k, v := range details {
		data[k] = v
	}
	return data
}

// Timeline returns the full ordered update history for an order.
func (s *Service) Timeline(ctx context.Context, orderID string) ([]*Update, error) {
	return s.store.Timeline(ctx, orderID)
}

// NotificationsFor lists the most recent notifications for an actor.
func (s *Service) NotificationsFor(ctx context.Context, targetType, username string, unreadOnly bool) ([]*Notification, error) {
	return s.store.NotificationsFor(ctx, targetType, username, unreadOnly, 50)
}

// MarkRead flags one notification as read.
func (s *Service) MarkRead(ctx context.Context, id int64) error {
	return s.store.MarkRead(ctx, id)
}
