// README: Order aggregate, status state machine, and rollup fields.
package order

import (
	"errors"
	"time"
)

type Status string

const (
	StatusAssigned   Status = "assigned"
	StatusPreparing  Status = "preparing"
	StatusReady      Status = "ready"
	StatusPicking    Status = "picking"
	StatusOnTheWay   Status = "on_the_way"
	StatusDelivering Status = "delivering"
	StatusInProgress Status = "in_progress"
	StatusActive     Status = "active"
	StatusDelayed    Status = "delayed"
	StatusDelivered  Status = "delivered"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Order is one transaction of a service. Status is externally driven; the core
// only touches the rollup fields (LastUpdatedBy and friends) during an update.
type Order struct {
	ID                   string
	Service              string
	UserType             string
	Username             string
	Status               Status
	Price                float64
	StartAddress         string
	EndAddress           string
	CustomerID           string
	RestaurantID         string
	DriverID             string
	RestaurantName       string
	Items                string
	PaymentMethod        string
	PlacedAt             time.Time
	Details              map[string]any
	LastUpdatedBy        string
	LastUpdateTimestamp  time.Time
	UpdateCount          int
	CurrentStatusRemarks string
}

// InFlightStatuses are the "not yet fulfilled" states; quality complaints
// against orders in these states are blocked by the lifecycle gate.
var InFlightStatuses = map[Status]bool{
	StatusInProgress: true,
	StatusPreparing:  true,
	StatusAssigned:   true,
	StatusPicking:    true,
	StatusOnTheWay:   true,
	StatusActive:     true,
}

// AllowedTransitions represents the order status flow as code. Stored statuses
// that try to move outside this graph are rejected rather than trusted.
var AllowedTransitions = map[Status][]Status{
	StatusAssigned:   {StatusPreparing, StatusPicking, StatusInProgress, StatusActive, StatusCancelled},
	StatusPreparing:  {StatusReady, StatusDelayed, StatusCancelled},
	StatusDelayed:    {StatusReady, StatusOnTheWay, StatusCancelled},
	StatusReady:      {StatusPicking, StatusOnTheWay, StatusCancelled},
	StatusPicking:    {StatusOnTheWay, StatusCancelled},
	StatusOnTheWay:   {StatusDelivering, StatusDelivered, StatusDelayed, StatusCancelled},
	StatusDelivering: {StatusDelivered, StatusCompleted, StatusCancelled},
	StatusInProgress: {StatusOnTheWay, StatusDelivering, StatusCompleted, StatusCancelled},
	StatusActive:     {StatusInProgress, StatusCompleted, StatusCancelled},
	StatusDelivered:  {StatusCompleted},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}
