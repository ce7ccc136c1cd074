// README: Cross-actor update types, template registry, and fan-out rules.
package updates

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var (
	ErrUnknownType  = errors.New("unknown update type")
	ErrRateLimited  = errors.New("update rate limit reached")
	ErrDuplicate    = errors.New("duplicate update within window")
	ErrOrderMissing = errors.New("order not found for update")
	ErrNotFound     = errors.New("notification not found")
)

// Mapping describes one update type: how to word it and who hears about it.
// The table is static so every supported type is visible in one place.
type Mapping struct {
	DescriptionTemplate  string
	NotificationTemplate string
	AffectedActors       []string
}

var mappings = map[string]Mapping{
	// Restaurant updates.
	"dish_added": {
		DescriptionTemplate:  "Restaurant added {item} due to {reason}",
		NotificationTemplate: "Good news! {restaurant_name} added complimentary {item} to your order due to {reason}",
		AffectedActors:       []string{"customer"},
	},
	"dish_removed": {
		DescriptionTemplate:  "Restaurant removed {item} - {reason}",
		NotificationTemplate: "{restaurant_name} had to remove {item} from your order: {reason}. Refund will be processed.",
		AffectedActors:       []string{"customer"},
	},
	"preparation_delayed": {
		DescriptionTemplate:  "Restaurant needs extra {minutes} minutes due to {reason}",
		NotificationTemplate: "Your order will be ready in {minutes} extra minutes due to {reason}",
		AffectedActors:       []string{"customer", "delivery_agent"},
	},
	"order_ready_early": {
		DescriptionTemplate:  "Restaurant completed order {minutes} minutes early",
		NotificationTemplate: "Great news! Your order is ready {minutes} minutes early and awaiting pickup",
		AffectedActors:       []string{"customer", "delivery_agent"},
	},

	// Driver and delivery agent updates.
	"route_changed": {
		DescriptionTemplate:  "Driver taking {new_route} due to {reason}",
		NotificationTemplate: "Driver is taking an alternate route ({route_description}) due to {reason}. ETA updated to {new_eta}",
		AffectedActors:       []string{"customer", "restaurant"},
	},
	"delivery_delayed": {
		DescriptionTemplate:  "Delivery delayed by {minutes} minutes due to {reason}",
		NotificationTemplate: "Your delivery is delayed by {minutes} minutes due to {reason}. New ETA: {new_eta}",
		AffectedActors:       []string{"customer", "restaurant"},
	},
	"address_clarification_needed": {
		DescriptionTemplate:  "Driver needs address clarification: {issue}",
		NotificationTemplate: "Your delivery partner needs clarification about your address: {issue}. Please check your phone.",
		AffectedActors:       []string{"customer"},
	},
	"driver_arrived": {
		DescriptionTemplate:  "Driver arrived at {location}",
		NotificationTemplate: "Your delivery partner has arrived at {location}",
		AffectedActors:       []string{"customer", "restaurant"},
	},

	// Customer updates.
	"address_updated": {
		DescriptionTemplate:  "Customer updated delivery address to {new_address}",
		NotificationTemplate: "Customer updated delivery address to: {new_address}",
		AffectedActors:       []string{"delivery_agent", "restaurant"},
	},
	"order_modified": {
		DescriptionTemplate:  "Customer modified order: {changes}",
		NotificationTemplate: "Customer updated their order: {changes}",
		AffectedActors:       []string{"restaurant", "delivery_agent"},
	},
	"special_instructions_added": {
		DescriptionTemplate:  "Customer added delivery instructions: {instructions}",
		NotificationTemplate: "Customer added special instructions: {instructions}",
		AffectedActors:       []string{"delivery_agent"},
	},

	// Express package handling.
	"vehicle_upgraded": {
		DescriptionTemplate:  "Package delivery upgraded from {old_vehicle} to {new_vehicle} due to {reason}",
		NotificationTemplate: "Your package delivery has been upgraded from {old_vehicle} to {new_vehicle} for {reason}",
		AffectedActors:       []string{"customer"},
	},
	"fragile_handling_applied": {
		DescriptionTemplate:  "Special fragile item handling applied due to package contents",
		NotificationTemplate: "We've applied special fragile item handling to ensure your package arrives safely",
		AffectedActors:       []string{"customer"},
	},

	// Dark store updates.
	"item_substituted": {
		DescriptionTemplate:  "Dark store substituted {original_item} with {substitute_item} due to stock shortage",
		NotificationTemplate: "We substituted {original_item} with {substitute_item} (same/better quality) due to availability",
		AffectedActors:       []string{"customer", "delivery_agent"},
	},
	"quality_check_failed": {
		DescriptionTemplate:  "Dark store removed {item} due to quality concerns",
		NotificationTemplate: "We removed {item} from your order due to quality standards. Refund processed.",
		AffectedActors:       []string{"customer"},
	},
}

// LookupMapping resolves an update type against the static table.
func LookupMapping(updateType string) (Mapping, error) {
	m, ok := mappings[updateType]
	if !ok {
		return Mapping{}, fmt.Errorf("%w: %q", ErrUnknownType, updateType)
	}
	return m, nil
}

// KnownTypes lists the supported update types, sorted, for discovery endpoints.
func KnownTypes() []string {
	out := make([]string, 0, len(mappings))
	for k := range mappings {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Update is one persisted timeline entry for an order.
type Update struct {
	ID             int64
	OrderID        string
	ActorType      string
	ActorUsername  string
	UpdateType     string
	Description    string
	Details        map[string]any
	AffectedActors []string
	CreatedAt      time.Time
}

// Notification is one message delivered to one actor, fanned out from an Update.
type Notification struct {
	ID             int64
	OrderID        string
	TargetType     string
	TargetUsername string
	Type           string
	Message        string
	Read           bool
	SourceUpdateID int64
	CreatedAt      time.Time
}

// renderTemplate substitutes {key} placeholders from data. Placeholders with
// no matching key are left literal, matching long-standing behavior.
func renderTemplate(tmpl string, data map[string]any) string {
	out := tmpl
	for k, v := range data {
		out = strings.ReplaceAll(out, "{"+k+"}", fmt.Sprint(v))
	}
	return out
}
