// README: Complaint pipeline: gate -> credibility -> evidence -> decision -> response.
package complaint

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/AdityaBS04/GrabHackProper-sub001/internal/ai"
	"github.com/AdityaBS04/GrabHackProper-sub001/internal/modules/evidence"
	"github.com/AdityaBS04/GrabHackProper-sub001/internal/modules/gate"
	"github.com/AdityaBS04/GrabHackProper-sub001/internal/modules/order"
	"github.com/AdityaBS04/GrabHackProper-sub001/internal/modules/resolution"
	"github.com/AdityaBS04/GrabHackProper-sub001/internal/modules/session"
	"github.com/AdityaBS04/GrabHackProper-sub001/internal/types"
)

// Collaborator seams. Keeping these narrow lets the pipeline be exercised
// without a database or a live model behind it.
type (
	Gatekeeper interface {
		Check(ctx context.Context, req gate.Request) gate.Outcome
	}
	Scorer interface {
		Score(ctx context.Context, username, service string) (int, error)
	}
	Classifier interface {
		Screen(ctx context.Context, imageData []byte) bool
		Classify(ctx context.Context, description string, imageData []byte) evidence.Validity
	}
	Decider interface {
		Decide(ev evidence.Validity, credibility int, pattern resolution.HistoryPattern, safetyCritical bool) resolution.Tier
		Compensation(tier resolution.Tier, price float64) types.Money
	}
	Storage interface {
		Insert(ctx context.Context, r *Record) (int64, error)
		RecentSameKindCount(ctx context.Context, username, service, subIssue string) (int, error)
	}
	OrderReader interface {
		Get(ctx context.Context, id string) (*order.Order, error)
		MostRecentFor(ctx context.Context, username, service string) (*order.Order, error)
	}
	Sessions interface {
		Get(ctx context.Context, token string) (*session.Context, error)
	}
	Navigator interface {
		Assist(ctx context.Context, query string) string
	}
)

type Service struct {
	gate     Gatekeeper
	scorer   Scorer
	evidence Classifier
	engine   Decider
	store    Storage
	orders   OrderReader
	sessions Sessions
	nav      Navigator
	llm      ai.LLMProvider
}

type Deps struct {
	Gate     Gatekeeper
	Scorer   Scorer
	Evidence Classifier
	Engine   Decider
	Store    Storage
	Orders   OrderReader
	Sessions Sessions
	Nav      Navigator
	LLM      ai.LLMProvider
}

func NewService(d Deps) *Service {
	return &Service{
		gate:     d.Gate,
		scorer:   d.Scorer,
		evidence: d.Evidence,
		engine:   d.Engine,
		store:    d.Store,
		orders:   d.Orders,
		sessions: d.Sessions,
		nav:      d.Nav,
		llm:      d.LLM,
	}
}

// Submit runs one complaint through the pipeline. Every return carries a
// user-facing message; ErrNotRecorded accompanies a resolution whose
// persistence failed so the caller can retry.
func (s *Service) Submit(ctx context.Context, sub Submission) (*Resolution, error) {
	kind, err := s.validate(&sub)
	if err != nil {
		return nil, err
	}

	s.mergeSession(ctx, &sub)

	// Uploaded content is screened before anything else sees it.
	if sub.ImageData != nil && !s.evidence.Screen(ctx, sub.ImageData) {
		return &Resolution{
			Kind:    OutcomeRejected,
			Message: "The uploaded image contains inappropriate content and cannot be processed. Please upload a relevant image related to your service issue.",
		}, nil
	}

	if out := s.gate.Check(ctx, gate.Request{
		Username:    sub.Username,
		Service:     sub.Service,
		Role:        sub.Role,
		QualityKind: kind.QualityKind,
		OrderID:     sub.OrderID,
		Description: sub.Description,
		SubIssue:    sub.SubIssue,
	}); !out.Eligible {
		return &Resolution{Kind: OutcomeBlocked, Message: out.Message}, nil
	}

	if kind.Navigation {
		return s.resolveNavigation(ctx, sub)
	}

	if kind.ImageRequired && sub.ImageData == nil {
		return &Resolution{Kind: OutcomeNeedsImage, Message: imageRequest(sub)}, nil
	}

	score, err := s.scorer.Score(ctx, sub.Username, string(sub.Service))
	if err != nil {
		// Conservative mid-range default; scoring problems never block users.
		log.Printf("complaint: scoring failed for %s: %v; using mid-range default", sub.Username, err)
		score = 5
	}

	// Text-only kinds have no evidence dimension: safety-critical ones still
	// escalate, the rest get a rendered resolution directly.
	if !kind.ImageRequired {
		return s.resolveTextOnly(ctx, sub, kind, score)
	}

	ev := s.evidence.Classify(ctx, sub.Description, sub.ImageData)

	pattern := s.historyPattern(ctx, sub)
	tier := s.engine.Decide(ev, score, pattern, kind.SafetyCritical)

	if tier == resolution.TierRequestBetterEvidence {
		return &Resolution{
			Kind:        OutcomeNeedsEvidence,
			Tier:        tier,
			Credibility: score,
			Message:     betterEvidenceRequest(sub),
		}, nil
	}

	comp := s.engine.Compensation(tier, s.orderPrice(ctx, sub))
	msg := s.render(ctx, sub, tier, comp)

	res := &Resolution{
		Kind:         OutcomeResolved,
		Tier:         tier,
		Compensation: comp,
		Credibility:  score,
		Message:      msg,
		Reference:    reference(sub),
	}
	if tier == resolution.TierEscalate {
		res.Kind = OutcomeEscalated
	}
	return s.persist(ctx, sub, res)
}

func (s *Service) validate(sub *Submission) (Kind, error) {
	if !sub.Service.Known() {
		return Kind{}, fmt.Errorf("%w: unknown service %q", ErrValidation, sub.Service)
	}
	if !sub.Role.Known() {
		return Kind{}, fmt.Errorf("%w: unknown role %q", ErrValidation, sub.Role)
	}
	if strings.TrimSpace(sub.Description) == "" {
		return Kind{}, fmt.Errorf("%w: empty description", ErrValidation)
	}
	if sub.Username == "" {
		sub.Username = "anonymous"
	}
	kind, err := Lookup(sub.Service, sub.Role, sub.SubIssue)
	if err != nil {
		return Kind{}, err
	}
	if sub.Category == "" {
		sub.Category = kind.Category
	}
	return kind, nil
}

func (s *Service) mergeSession(ctx context.Context, sub *Submission) {
	if sub.SessionToken == "" || s.sessions == nil {
		return
	}
	sess, err := s.sessions.Get(ctx, sub.SessionToken)
	if err != nil {
		log.Printf("complaint: session %s lookup failed: %v", sub.SessionToken, err)
		return
	}
	if sub.OrderID == "" {
		sub.OrderID = sess.OrderID
	}
	if sub.Username == "anonymous" && sess.Username != "" {
		sub.Username = sess.Username
	}
}

func (s *Service) historyPattern(ctx context.Context, sub Submission) resolution.HistoryPattern {
	n, err := s.store.RecentSameKindCount(ctx, sub.Username, string(sub.Service), sub.SubIssue)
	if err != nil {
		log.Printf("complaint: history lookup failed for %s: %v; assuming no pattern", sub.Username, err)
		return resolution.HistoryPattern{}
	}
	return resolution.HistoryPattern{SameKindCount: n}
}

// orderPrice finds the price of the referenced (or most recent) order; zero
// when unknown, which routes compensation to the goodwill fallback.
func (s *Service) orderPrice(ctx context.Context, sub Submission) float64 {
	id := sub.OrderID
	if id == "" {
		id = gate.ExtractOrderID(sub.Description)
	}
	if id != "" {
		if o, err := s.orders.Get(ctx, id); err == nil {
			return o.Price
		}
	}
	if o, err := s.orders.MostRecentFor(ctx, sub.Username, string(sub.Service)); err == nil {
		return o.Price
	}
	return 0
}

func (s *Service) resolveTextOnly(ctx context.Context, sub Submission, kind Kind, score int) (*Resolution, error) {
	if kind.SafetyCritical {
		res := &Resolution{
			Kind:        OutcomeEscalated,
			Tier:        resolution.TierEscalate,
			Credibility: score,
			Message:     s.render(ctx, sub, resolution.TierEscalate, types.Money{Currency: "USD"}),
			Reference:   reference(sub),
		}
		return s.persist(ctx, sub, res)
	}

	res := &Resolution{
		Kind:        OutcomeResolved,
		Credibility: score,
		Message:     s.renderTextOnly(ctx, sub),
		Reference:   reference(sub),
	}
	return s.persist(ctx, sub, res)
}

func (s *Service) resolveNavigation(ctx context.Context, sub Submission) (*Resolution, error) {
	res := &Resolution{
		Kind:      OutcomeResolved,
		Message:   s.nav.Assist(ctx, sub.Description),
		Reference: reference(sub),
	}
	return s.persist(ctx, sub, res)
}

func (s *Service) persist(ctx context.Context, sub Submission, res *Resolution) (*Resolution, error) {
	status := "resolved"
	if res.Kind == OutcomeEscalated {
		status = "processing"
	}
	id, err := s.store.Insert(ctx, &Record{
		Service:     string(sub.Service),
		UserType:    string(sub.Role),
		Username:    sub.Username,
		Category:    sub.Category,
		SubIssue:    sub.SubIssue,
		Description: sub.Description,
		Solution:    res.Message,
		Status:      status,
	})
	if err != nil {
		log.Printf("complaint: insert failed for %s/%s: %v", sub.Username, sub.SubIssue, err)
		return res, ErrNotRecorded
	}
	res.ComplaintID = id
	return res, nil
}

func reference(sub Submission) string {
	short := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("%s-%s-%s", strings.ToUpper(string(sub.Service)), strings.ToUpper(sub.SubIssue), short)
}
