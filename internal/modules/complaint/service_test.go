// README: Complaint pipeline tests with fake collaborators.
package complaint

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/AdityaBS04/GrabHackProper-sub001/internal/modules/evidence"
	"github.com/AdityaBS04/GrabHackProper-sub001/internal/modules/gate"
	"github.com/AdityaBS04/GrabHackProper-sub001/internal/modules/order"
	"github.com/AdityaBS04/GrabHackProper-sub001/internal/modules/resolution"
	"github.com/AdityaBS04/GrabHackProper-sub001/internal/types"
)

type fakeGate struct {
	outcome gate.Outcome
	calls   int
}

func (f *fakeGate) Check(_ context.Context, _ gate.Request) gate.Outcome {
	f.calls++
	return f.outcome
}

type fakeScorer struct {
	score int
	err   error
}

func (f *fakeScorer) Score(_ context.Context, _, _ string) (int, error) {
	return f.score, f.err
}

type fakeClassifier struct {
	safe          bool
	validity      evidence.Validity
	screenCalls   int
	classifyCalls int
}

func (f *fakeClassifier) Screen(_ context.Context, _ []byte) bool {
	f.screenCalls++
	return f.safe
}

func (f *fakeClassifier) Classify(_ context.Context, _ string, _ []byte) evidence.Validity {
	f.classifyCalls++
	return f.validity
}

type fakeDecider struct {
	tier        resolution.Tier
	comp        types.Money
	decideCalls int
}

func (f *fakeDecider) Decide(_ evidence.Validity, _ int, _ resolution.HistoryPattern, _ bool) resolution.Tier {
	f.decideCalls++
	return f.tier
}

func (f *fakeDecider) Compensation(_ resolution.Tier, _ float64) types.Money {
	return f.comp
}

type fakeStore struct {
	inserted  []*Record
	insertErr error
	history   int
}

func (f *fakeStore) Insert(_ context.Context, r *Record) (int64, error) {
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	f.inserted = append(f.inserted, r)
	return int64(len(f.inserted)), nil
}

func (f *fakeStore) RecentSameKindCount(_ context.Context, _, _, _ string) (int, error) {
	return f.history, nil
}

type fakeOrderReader struct {
	order *order.Order
}

func (f *fakeOrderReader) Get(_ context.Context, _ string) (*order.Order, error) {
	if f.order == nil {
		return nil, order.ErrNotFound
	}
	return f.order, nil
}

func (f *fakeOrderReader) MostRecentFor(_ context.Context, _, _ string) (*order.Order, error) {
	if f.order == nil {
		return nil, order.ErrNotFound
	}
	return f.order, nil
}

type fakeNav struct {
	message string
	calls   int
}

func (f *fakeNav) Assist(_ context.Context, _ string) string {
	f.calls++
	return f.message
}

type pipeline struct {
	gate     *fakeGate
	scorer   *fakeScorer
	evidence *fakeClassifier
	engine   *fakeDecider
	store    *fakeStore
	orders   *fakeOrderReader
	nav      *fakeNav
	svc      *Service
}

func newPipeline() *pipeline {
	p := &pipeline{
		gate:     &fakeGate{outcome: gate.Outcome{Eligible: true}},
		scorer:   &fakeScorer{score: 8},
		evidence: &fakeClassifier{safe: true, validity: evidence.ClearlyInvalid},
		engine:   &fakeDecider{tier: resolution.TierFullRefund, comp: types.Money{Amount: 2450, Currency: "USD"}},
		store:    &fakeStore{},
		orders:   &fakeOrderReader{order: &order.Order{ID: "GF002", Price: 24.50, Status: order.StatusDelivered}},
		nav:      &fakeNav{message: "take the next left"},
	}
	p.svc = NewService(Deps{
		Gate:     p.gate,
		Scorer:   p.scorer,
		Evidence: p.evidence,
		Engine:   p.engine,
		Store:    p.store,
		Orders:   p.orders,
		Nav:      p.nav,
	})
	return p
}

func qualitySubmission() Submission {
	return Submission{
		Service:     types.ServiceFood,
		Role:        types.RoleCustomer,
		Username:    "customer1",
		SubIssue:    "missing_items",
		Description: "order GF002 arrived without the drinks",
		ImageData:   []byte{0xff, 0xd8},
	}
}

func TestSubmitResolvedFullRefund(t *testing.T) {
	p := newPipeline()
	res, err := p.svc.Submit(context.Background(), qualitySubmission())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Kind != OutcomeResolved {
		t.Fatalf("outcome = %s, want resolved", res.Kind)
	}
	if res.Tier != resolution.TierFullRefund {
		t.Errorf("tier = %s, want full refund", res.Tier)
	}
	if res.Compensation.Amount != 2450 {
		t.Errorf("compensation = %d, want 2450", res.Compensation.Amount)
	}
	if res.Credibility != 8 {
		t.Errorf("credibility = %d, want 8", res.Credibility)
	}
	if res.ComplaintID == 0 {
		t.Error("resolved complaint must be persisted")
	}
	if len(p.store.inserted) != 1 {
		t.Fatalf("inserted %d records, want 1", len(p.store.inserted))
	}
	if rec := p.store.inserted[0]; rec.Status != "resolved" || rec.Solution == "" {
		t.Errorf("record = %+v, want resolved with solution attached", rec)
	}
}

func TestSubmitUnsafeImageRejected(t *testing.T) {
	p := newPipeline()
	p.evidence.safe = false
	res, err := p.svc.Submit(context.Background(), qualitySubmission())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Kind != OutcomeRejected {
		t.Fatalf("outcome = %s, want rejected", res.Kind)
	}
	if p.gate.calls != 0 {
		t.Error("rejected image must stop before the gate")
	}
	if len(p.store.inserted) != 0 {
		t.Error("rejected submissions are not persisted")
	}
}

func TestSubmitBlockedByGate(t *testing.T) {
	p := newPipeline()
	p.gate.outcome = gate.Outcome{Eligible: false, OrderID: "GF002", Message: "order #GF002 hasn't been completed yet"}
	res, err := p.svc.Submit(context.Background(), qualitySubmission())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Kind != OutcomeBlocked {
		t.Fatalf("outcome = %s, want blocked", res.Kind)
	}
	if !strings.Contains(res.Message, "#GF002") {
		t.Errorf("blocked message must name the order: %q", res.Message)
	}
	if p.engine.decideCalls != 0 {
		t.Error("blocked complaint must never reach the decision engine")
	}
	if len(p.store.inserted) != 0 {
		t.Error("blocked complaints are not persisted")
	}
}

func TestSubmitImageRequiredWithoutImage(t *testing.T) {
	p := newPipeline()
	sub := qualitySubmission()
	sub.ImageData = nil
	res, err := p.svc.Submit(context.Background(), sub)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Kind != OutcomeNeedsImage {
		t.Fatalf("outcome = %s, want needs_image", res.Kind)
	}
	if !strings.Contains(res.Message, "upload") {
		t.Errorf("message must ask for an upload: %q", res.Message)
	}
	if p.engine.decideCalls != 0 || p.evidence.classifyCalls != 0 {
		t.Error("image request must not reach classification or decision")
	}
}

func TestSubmitInsufficientEvidenceNotPersisted(t *testing.T) {
	p := newPipeline()
	p.engine.tier = resolution.TierRequestBetterEvidence
	res, err := p.svc.Submit(context.Background(), qualitySubmission())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Kind != OutcomeNeedsEvidence {
		t.Fatalf("outcome = %s, want needs_evidence", res.Kind)
	}
	if len(p.store.inserted) != 0 {
		t.Error("evidence requests are not final resolutions and must not be persisted")
	}
}

func TestSubmitScorerFailureUsesMidRange(t *testing.T) {
	p := newPipeline()
	p.scorer.err = errors.New("db down")
	res, err := p.svc.Submit(context.Background(), qualitySubmission())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Credibility != 5 {
		t.Errorf("credibility = %d, want mid-range 5", res.Credibility)
	}
	if res.Kind != OutcomeResolved {
		t.Errorf("scoring failure must not block the complaint, got %s", res.Kind)
	}
}

func TestSubmitInsertFailureReturnsResolution(t *testing.T) {
	p := newPipeline()
	p.store.insertErr = errors.New("disk full")
	res, err := p.svc.Submit(context.Background(), qualitySubmission())
	if !errors.Is(err, ErrNotRecorded) {
		t.Fatalf("err = %v, want ErrNotRecorded", err)
	}
	if res == nil || res.Message == "" {
		t.Fatal("resolution must still be returned when persistence fails")
	}
}

func TestSubmitTextOnlyKind(t *testing.T) {
	p := newPipeline()
	sub := Submission{
		Service:     types.ServiceFood,
		Role:        types.RoleCustomer,
		Username:    "customer1",
		SubIssue:    "delivery_delays",
		Description: "my order is over an hour late",
	}
	res, err := p.svc.Submit(context.Background(), sub)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Kind != OutcomeResolved {
		t.Fatalf("outcome = %s, want resolved", res.Kind)
	}
	if p.evidence.classifyCalls != 0 || p.engine.decideCalls != 0 {
		t.Error("text-only kinds bypass evidence and the decision table")
	}
	if len(p.store.inserted) != 1 {
		t.Errorf("inserted %d records, want 1", len(p.store.inserted))
	}
}

func TestSubmitSafetyCriticalTextOnlyEscalates(t *testing.T) {
	p := newPipeline()
	sub := Submission{
		Service:     types.ServiceCabs,
		Role:        types.RoleCustomer,
		Username:    "customer1",
		SubIssue:    "harassment",
		Description: "the driver was verbally abusive",
	}
	res, err := p.svc.Submit(context.Background(), sub)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Kind != OutcomeEscalated {
		t.Fatalf("outcome = %s, want escalated", res.Kind)
	}
	if res.Tier != resolution.TierEscalate {
		t.Errorf("tier = %s, want escalate", res.Tier)
	}
	if len(p.store.inserted) != 1 || p.store.inserted[0].Status != "processing" {
		t.Error("escalations are persisted with processing status")
	}
}

func TestSubmitNavigationKind(t *testing.T) {
	p := newPipeline()
	sub := Submission{
		Service:     types.ServiceFood,
		Role:        types.RoleDeliveryAgent,
		Username:    "agent1",
		SubIssue:    "navigation_issues",
		Description: "gps keeps crashing, delivering to 12 Main St",
	}
	res, err := p.svc.Submit(context.Background(), sub)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Kind != OutcomeResolved {
		t.Fatalf("outcome = %s, want resolved", res.Kind)
	}
	if p.nav.calls != 1 {
		t.Errorf("navigator called %d times, want 1", p.nav.calls)
	}
	if res.Message != "take the next left" {
		t.Errorf("message = %q, want navigator output", res.Message)
	}
}

func TestSubmitValidation(t *testing.T) {
	p := newPipeline()
	cases := []struct {
		name string
		sub  Submission
	}{
		{"unknown service", Submission{Service: "grab_teleport", Role: types.RoleCustomer, SubIssue: "missing_items", Description: "x"}},
		{"unknown role", Submission{Service: types.ServiceFood, Role: "stranger", SubIssue: "missing_items", Description: "x"}},
		{"empty description", Submission{Service: types.ServiceFood, Role: types.RoleCustomer, SubIssue: "missing_items", Description: "  "}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := p.svc.Submit(context.Background(), tc.sub); !errors.Is(err, ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}

	t.Run("unknown route", func(t *testing.T) {
		sub := Submission{Service: types.ServiceCabs, Role: types.RoleCustomer, SubIssue: "missing_items", Description: "x"}
		if _, err := p.svc.Submit(context.Background(), sub); !errors.Is(err, ErrUnknownRoute) {
			t.Errorf("err = %v, want ErrUnknownRoute", err)
		}
	})
}

func TestLookupRegistry(t *testing.T) {
	k, err := Lookup(types.ServiceFood, types.RoleCustomer, "package_tampering")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !k.SafetyCritical || !k.ImageRequired {
		t.Errorf("package_tampering = %+v, want safety-critical and image-required", k)
	}

	if _, err := Lookup(types.ServiceCabs, types.RoleRestaurant, "wrong_order_prep"); err == nil {
		t.Error("restaurant routes must not exist on cabs")
	}
}
