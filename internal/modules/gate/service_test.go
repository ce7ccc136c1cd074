// README: Lifecycle gate tests (order id extraction, eligibility decisions).
package gate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/AdityaBS04/GrabHackProper-sub001/internal/modules/order"
	"github.com/AdityaBS04/GrabHackProper-sub001/internal/types"
)

func TestExtractOrderID(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"my order GF002 never arrived", "GF002"},
		{"problem with order #GM014", "GM014"},
		{"order  GC101 was late", "GC101"},
		{"see #GE005 please", "GE005"},
		{"lowercase gf002 still counts", "GF002"},
		{"the food was cold", ""},
		{"ticket ABC1234 is not an order id", ""},
		{"A1234 is too short a prefix", ""},
	}
	for _, tc := range cases {
		if got := ExtractOrderID(tc.text); got != tc.want {
			t.Errorf("ExtractOrderID(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

type fakeOrders struct {
	orders map[string]*order.Order
	recent *order.Order
	err    error
	calls  int
}

func (f *fakeOrders) Get(_ context.Context, id string) (*order.Order, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	o, ok := f.orders[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	return o, nil
}

func (f *fakeOrders) MostRecentFor(_ context.Context, _, _ string) (*order.Order, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.recent == nil {
		return nil, order.ErrNotFound
	}
	return f.recent, nil
}

func qualityRequest(desc string) Request {
	return Request{
		Username:    "customer1",
		Service:     types.ServiceFood,
		Role:        types.RoleCustomer,
		QualityKind: true,
		Description: desc,
		SubIssue:    "missing_items",
	}
}

func TestCheckBlocksInFlightOrder(t *testing.T) {
	inFlight := []order.Status{
		order.StatusInProgress, order.StatusPreparing, order.StatusAssigned,
		order.StatusPicking, order.StatusOnTheWay, order.StatusActive,
	}
	for _, status := range inFlight {
		orders := &fakeOrders{orders: map[string]*order.Order{
			"GF002": {ID: "GF002", Service: "grab_food", Username: "customer1", Status: status},
		}}
		out := NewService(orders).Check(context.Background(), qualityRequest("items missing from order GF002"))
		if out.Eligible {
			t.Errorf("status %s: expected block", status)
			continue
		}
		if !strings.Contains(out.Message, "#GF002") {
			t.Errorf("status %s: message must name the order, got %q", status, out.Message)
		}
		if !strings.Contains(out.Message, "hasn't been completed yet") {
			t.Errorf("status %s: message must explain the block, got %q", status, out.Message)
		}
	}
}

func TestCheckAllowsFulfilledOrder(t *testing.T) {
	for _, status := range []order.Status{order.StatusDelivered, order.StatusCompleted, order.StatusCancelled} {
		orders := &fakeOrders{orders: map[string]*order.Order{
			"GF002": {ID: "GF002", Service: "grab_food", Username: "customer1", Status: status},
		}}
		out := NewService(orders).Check(context.Background(), qualityRequest("order GF002 had missing items"))
		if !out.Eligible {
			t.Errorf("status %s: expected eligible, got blocked: %s", status, out.Message)
		}
	}
}

func TestCheckBypasses(t *testing.T) {
	orders := &fakeOrders{orders: map[string]*order.Order{
		"GF002": {ID: "GF002", Service: "grab_food", Username: "customer1", Status: order.StatusPreparing},
	}}
	svc := NewService(orders)

	cases := []struct {
		name string
		req  Request
	}{
		{"non-quality kind", Request{Username: "customer1", Service: types.ServiceFood, Role: types.RoleCustomer, QualityKind: false, OrderID: "GF002"}},
		{"non-customer role", Request{Username: "agent1", Service: types.ServiceFood, Role: types.RoleDeliveryAgent, QualityKind: true, OrderID: "GF002"}},
		{"anonymous", Request{Username: "anonymous", Service: types.ServiceFood, Role: types.RoleCustomer, QualityKind: true, OrderID: "GF002"}},
	}
	for _, tc := range cases {
		orders.calls = 0
		out := svc.Check(context.Background(), tc.req)
		if !out.Eligible {
			t.Errorf("%s: expected bypass", tc.name)
		}
		if orders.calls != 0 {
			t.Errorf("%s: bypass must not hit the order store, got %d lookups", tc.name, orders.calls)
		}
	}
}

func TestCheckUnknownOrderDegradesToEligible(t *testing.T) {
	svc := NewService(&fakeOrders{orders: map[string]*order.Order{}})
	out := svc.Check(context.Background(), qualityRequest("order GF999 was wrong"))
	if !out.Eligible {
		t.Error("unknown referenced order must not block")
	}
}

func TestCheckForeignOrderSkipped(t *testing.T) {
	orders := &fakeOrders{orders: map[string]*order.Order{
		"GF002": {ID: "GF002", Service: "grab_food", Username: "someone_else", Status: order.StatusPreparing},
	}}
	out := NewService(orders).Check(context.Background(), qualityRequest("order GF002 missing items"))
	if !out.Eligible {
		t.Error("another actor's order must not gate this complaint")
	}
}

func TestCheckFallsBackToMostRecentOrder(t *testing.T) {
	orders := &fakeOrders{
		recent: &order.Order{ID: "GF010", Service: "grab_food", Username: "customer1", Status: order.StatusOnTheWay},
	}
	out := NewService(orders).Check(context.Background(), qualityRequest("my food is missing items"))
	if out.Eligible {
		t.Fatal("expected block against most recent in-flight order")
	}
	if out.OrderID != "GF010" {
		t.Errorf("blocked against %q, want GF010", out.OrderID)
	}
}

func TestCheckStoreFailureDegradesToEligible(t *testing.T) {
	orders := &fakeOrders{err: errors.New("db down")}
	out := NewService(orders).Check(context.Background(), qualityRequest("order GF002 missing items"))
	if !out.Eligible {
		t.Error("storage failure must degrade to eligible")
	}
}
