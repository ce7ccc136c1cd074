// README: Credibility scorer tests (pure computation, fallback, persistence).
package credibility

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AdityaBS04/GrabHackProper-sub001/internal/config"
)

var testThresholds = config.ValueThresholds{High: 50, Mid: 30}

func TestComputeScore(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		base int
		agg  Aggregates
		want int
	}{
		{
			name: "no history stays at base",
			base: 7,
			agg:  Aggregates{},
			want: 7,
		},
		{
			// 7 +2 completion +2 volume +1 value +1 tenure = 13 -> clamp 10
			name: "long-tenured heavy user clamps at max",
			base: 7,
			agg: Aggregates{
				TotalOrders:     25,
				CompletedOrders: 24,
				AvgOrderValue:   62,
				FirstOrderAt:    now.AddDate(-2, 0, 0),
			},
			want: 10,
		},
		{
			// 7 +1 completion (0.75) +1 volume (12) +0.5 value -> 9.5 -> int 9
			name: "mid-range adjustments truncate",
			base: 7,
			agg: Aggregates{
				TotalOrders:     12,
				CompletedOrders: 9,
				AvgOrderValue:   35,
				FirstOrderAt:    now.AddDate(0, -1, 0),
			},
			want: 9,
		},
		{
			// 7 -2 completion (0.4) -2 cancellation (0.4) -2 complaints = 1
			name: "poor behavior floors toward min",
			base: 7,
			agg: Aggregates{
				TotalOrders:      5,
				CompletedOrders:  2,
				CancelledOrders:  2,
				RecentComplaints: 6,
			},
			want: 1,
		},
		{
			name: "cancellation between 20 and 30 percent costs one",
			base: 7,
			agg: Aggregates{
				TotalOrders:     8,
				CompletedOrders: 6, // 0.75 -> +1
				CancelledOrders: 2, // 0.25 -> -1
			},
			want: 7,
		},
		{
			name: "recent complaints apply without order history",
			base: 7,
			agg:  Aggregates{RecentComplaints: 3},
			want: 6,
		},
		{
			name: "tenure between six months and a year adds half",
			base: 5,
			agg: Aggregates{
				TotalOrders:     4,
				CompletedOrders: 4, // +2
				FirstOrderAt:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			},
			want: 7, // 5 +2 +0.5 -> 7.5 -> 7
		},
		{
			name: "low base cannot fall below one",
			base: 2,
			agg: Aggregates{
				TotalOrders:      10,
				CompletedOrders:  2,
				CancelledOrders:  5,
				RecentComplaints: 8,
			},
			// 2 -2 completion -2 cancellation +1 volume -2 complaints = -3 -> 1
			want: 1,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeScore(tc.base, tc.agg, testThresholds, now)
			if got != tc.want {
				t.Errorf("ComputeScore() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestComputeScoreIsPure(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	agg := Aggregates{TotalOrders: 15, CompletedOrders: 14, AvgOrderValue: 40, FirstOrderAt: now.AddDate(-1, -1, 0)}
	first := ComputeScore(7, agg, testThresholds, now)
	for i := 0; i < 5; i++ {
		if got := ComputeScore(7, agg, testThresholds, now); got != first {
			t.Fatalf("ComputeScore not stable: run %d got %d, first %d", i, got, first)
		}
	}
}

func TestFallbackScore(t *testing.T) {
	cases := []struct {
		username string
		want     int
	}{
		{"bob", 7},
		{"test_user", 7},     // -1 for "test", +1 for length
		{"testy", 6},         // -1 for "test"
		{"longusername", 8},  // +1 for length
		{"TESTaccount99", 7}, // case-insensitive "test", +1 for length
	}
	for _, tc := range cases {
		if got := FallbackScore(tc.username); got != tc.want {
			t.Errorf("FallbackScore(%q) = %d, want %d", tc.username, got, tc.want)
		}
	}
}

type fakeStorage struct {
	base     int
	baseErr  error
	agg      Aggregates
	aggErr   error
	persists map[string]int
}

func (f *fakeStorage) BaseScore(_ context.Context, username string) (int, error) {
	return f.base, f.baseErr
}

func (f *fakeStorage) Aggregates(_ context.Context, _, _ string) (Aggregates, error) {
	return f.agg, f.aggErr
}

func (f *fakeStorage) PersistScore(_ context.Context, username string, score int) error {
	if f.persists == nil {
		f.persists = map[string]int{}
	}
	f.persists[username] = score
	return nil
}

func TestScoreAnonymous(t *testing.T) {
	svc := NewService(&fakeStorage{}, nil)
	for _, name := range []string{"", "anonymous"} {
		got, err := svc.Score(context.Background(), name, "grab_food")
		if err != nil {
			t.Fatalf("Score(%q): %v", name, err)
		}
		if got != AnonymousBase {
			t.Errorf("Score(%q) = %d, want %d", name, got, AnonymousBase)
		}
	}
}

func TestScoreUnknownActorUsesDefaultBase(t *testing.T) {
	store := &fakeStorage{baseErr: ErrUnknownActor}
	svc := NewService(store, nil)
	got, err := svc.Score(context.Background(), "newcomer", "grab_food")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if got != DefaultBase {
		t.Errorf("Score = %d, want %d", got, DefaultBase)
	}
}

func TestScorePersistsComputedValue(t *testing.T) {
	store := &fakeStorage{
		base: 7,
		agg:  Aggregates{TotalOrders: 25, CompletedOrders: 24, AvgOrderValue: 60},
	}
	svc := NewService(store, map[string]config.ValueThresholds{"grab_food": testThresholds})
	got, err := svc.Score(context.Background(), "customer1", "grab_food")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if store.persists["customer1"] != got {
		t.Errorf("persisted %d, returned %d", store.persists["customer1"], got)
	}
}

func TestScoreStoreFailureFallsBack(t *testing.T) {
	store := &fakeStorage{baseErr: errors.New("connection refused")}
	svc := NewService(store, nil)
	got, err := svc.Score(context.Background(), "customer1", "grab_food")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if want := FallbackScore("customer1"); got != want {
		t.Errorf("Score = %d, want fallback %d", got, want)
	}
	if len(store.persists) != 0 {
		t.Errorf("fallback score must not be persisted, got %v", store.persists)
	}
}
