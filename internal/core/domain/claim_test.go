package domain

import "testing"

func TestClaimStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to ClaimStatus
		want     bool
	}{
		{ClaimPending, ClaimInReview, true},
		{ClaimPending, ClaimRejected, true},
		{ClaimPending, ClaimResolved, false},
		{ClaimInReview, ClaimResolved, true},
		{ClaimInReview, ClaimRejected, true},
		{ClaimInReview, ClaimPending, false},
		{ClaimResolved, ClaimInReview, false},
		{ClaimRejected, ClaimInReview, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
