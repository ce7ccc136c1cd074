// README: Order lifecycle gate: blocks quality complaints against unfulfilled orders.
package gate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/AdityaBS04/GrabHackProper-sub001/internal/modules/order"
	"github.com/AdityaBS04/GrabHackProper-sub001/internal/types"
)

// OrderFinder is the slice of the order store the gate needs.
type OrderFinder interface {
	Get(ctx context.Context, id string) (*order.Order, error)
	MostRecentFor(ctx context.Context, username, service string) (*order.Order, error)
}

// Outcome is the gate decision. A block is a defined user-facing result, not an
// error: Message carries the full explanation.
type Outcome struct {
	Eligible bool
	OrderID  string
	Status   order.Status
	Message  string
}

// Request describes one eligibility check.
type Request struct {
	Username string
	Service  types.Service
	Role     types.ActorRole
	// QualityKind marks quality/possession complaint kinds; other kinds bypass
	// the gate entirely.
	QualityKind bool
	// OrderID is the explicitly referenced order, if the caller supplied one.
	OrderID string
	// Description is free text the user typed; order ids are extracted from it
	// when OrderID is empty.
	Description string
	// SubIssue names the complaint kind for the blocking message.
	SubIssue string
}

type Service struct {
	orders OrderFinder
}

func NewService(orders OrderFinder) *Service {
	return &Service{orders: orders}
}

// Service-prefixed order ids: two letters + three digits (GF001, GM014, ...).
var (
	orderIDPattern   = regexp.MustCompile(`(?i)\b([A-Z]{2}\d{3})\b`)
	orderRefPattern  = regexp.MustCompile(`(?i)order\s*#?\s*([A-Z]{2}\d{3})`)
	orderHashPattern = regexp.MustCompile(`(?i)#([A-Z]{2}\d{3})`)
)

// ExtractOrderID pulls a service-prefixed order id out of free text, or ""
// when none is present.
func ExtractOrderID(text string) string {
	for _, re := range []*regexp.Regexp{orderRefPattern, orderHashPattern, orderIDPattern} {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.ToUpper(m[1])
		}
	}
	return ""
}

// Check decides whether a complaint may proceed given the referenced order's
// lifecycle state. Read failures degrade to Eligible: the gate protects against
// premature disputes, not against storage outages.
func (s *Service) Check(ctx context.Context, req Request) Outcome {
	if !req.QualityKind || req.Role != types.RoleCustomer {
		return Outcome{Eligible: true}
	}
	if req.Username == "" || req.Username == "anonymous" {
		return Outcome{Eligible: true}
	}

	o, found := s.resolveOrder(ctx, req)
	if !found {
		return Outcome{Eligible: true}
	}

	if order.InFlightStatuses[o.Status] {
		return Outcome{
			Eligible: false,
			OrderID:  o.ID,
			Status:   o.Status,
			Message:  blockedMessage(o, req),
		}
	}
	return Outcome{Eligible: true, OrderID: o.ID, Status: o.Status}
}

// resolveOrder finds the order the complaint refers to: explicit id first, then
// an id extracted from the description, then the actor's most recent order for
// the service. An id that resolves to nothing is logged, never fabricated.
func (s *Service) resolveOrder(ctx context.Context, req Request) (*order.Order, bool) {
	id := req.OrderID
	if id == "" {
		id = ExtractOrderID(req.Description)
	}

	if id != "" {
		o, err := s.orders.Get(ctx, id)
		if errors.Is(err, order.ErrNotFound) {
			log.Printf("gate: referenced order %s not found for %s; skipping eligibility check", id, req.Username)
			return nil, false
		}
		if err != nil {
			log.Printf("gate: order lookup failed for %s: %v; allowing complaint", id, err)
			return nil, false
		}
		if o.Username != req.Username || o.Service != string(req.Service) {
			log.Printf("gate: order %s does not belong to %s/%s; skipping eligibility check", id, req.Username, req.Service)
			return nil, false
		}
		return o, true
	}

	o, err := s.orders.MostRecentFor(ctx, req.Username, string(req.Service))
	if errors.Is(err, order.ErrNotFound) {
		return nil, false
	}
	if err != nil {
		log.Printf("gate: recent order lookup failed for %s/%s: %v; allowing complaint", req.Username, req.Service, err)
		return nil, false
	}
	return o, true
}

func blockedMessage(o *order.Order, req Request) string {
	issue := strings.ReplaceAll(req.SubIssue, "_", " ")
	serviceName := titleCase(strings.ReplaceAll(string(req.Service), "_", " "))
	return fmt.Sprintf(
		"I understand you're concerned about the %s, but your %s order (#%s) is still %s and hasn't been completed yet.\n\n"+
			"Since the order is still being processed and on its way to you, please wait until you receive it to assess the issue. "+
			"If you have other concerns about this order, like delivery time, location issues, or payment problems, I'd be happy to help with those instead.\n\n"+
			"Once order #%s is completed, reach out about any quality issues and we'll resolve them immediately with appropriate compensation.",
		issue, serviceName, o.ID, o.Status, o.ID)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
