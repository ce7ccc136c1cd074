// README: Order state machine tests.
package order

import "testing"

// TestCanTransition verifies the transition table without a database.
func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		// happy-path food flow
		{StatusAssigned, StatusPreparing, true},
		{StatusPreparing, StatusReady, true},
		{StatusReady, StatusPicking, true},
		{StatusPicking, StatusOnTheWay, true},
		{StatusOnTheWay, StatusDelivering, true},
		{StatusDelivering, StatusDelivered, true},
		{StatusDelivered, StatusCompleted, true},
		// cabs / express flow
		{StatusAssigned, StatusActive, true},
		{StatusActive, StatusInProgress, true},
		{StatusInProgress, StatusCompleted, true},
		// delays
		{StatusPreparing, StatusDelayed, true},
		{StatusDelayed, StatusReady, true},
		{StatusOnTheWay, StatusDelayed, true},
		{StatusDelayed, StatusOnTheWay, true},
		// cancels from non-terminal states
		{StatusAssigned, StatusCancelled, true},
		{StatusPreparing, StatusCancelled, true},
		{StatusOnTheWay, StatusCancelled, true},
		{StatusDelivering, StatusCancelled, true},
		// invalid: terminal states have no outgoing transitions
		{StatusCompleted, StatusAssigned, false},
		{StatusCancelled, StatusAssigned, false},
		{StatusDelivered, StatusCancelled, false},
		// invalid: skipping states
		{StatusAssigned, StatusDelivered, false},
		{StatusPreparing, StatusOnTheWay, false},
		{StatusReady, StatusDelivered, false},
		// invalid: backwards
		{StatusOnTheWay, StatusPreparing, false},
		{StatusDelivered, StatusOnTheWay, false},
	}
	for _, tc := range cases {
		got := CanTransition(tc.from, tc.to)
		if got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

// Every in-flight status must appear in the transition table so gate blocks are
// always resolvable by a later transition.
func TestInFlightStatusesHaveExits(t *testing.T) {
	for status := range InFlightStatuses {
		if len(AllowedTransitions[status]) == 0 {
			t.Errorf("in-flight status %s has no outgoing transitions", status)
		}
	}
}
