package service

import (
	"testing"
	"time"

	"github.com/michaelito80us/lufy/domain"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testEvaluator(subs *fakeSubscriptionRepo) *EntitlementEvaluator {
	return &EntitlementEvaluator{subs: subs, now: func() time.Time { return testNow }}
}

func exclusiveTrack() *domain.Track {
	return &domain.Track{
		ID:          "track-1",
		ArtistID:    "artist-1",
		Artist:      &domain.Artist{ID: "artist-1", UserID: "owner-1", StageName: "Nova"},
		Title:       "Hidden Cut",
		IsExclusive: true,
		IsPublic:    true,
	}
}

func TestEvaluateNonExclusiveAlwaysAllowed(t *testing.T) {
	track := exclusiveTrack()
	track.IsExclusive = false

	ent, err := testEvaluator(newFakeSubscriptionRepo()).Evaluate("stranger", track)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ent.Allowed {
		t.Error("expected non-exclusive track to be allowed")
	}
	if ent.Reason != ReasonPublic {
		t.Errorf("expected reason %q, got %q", ReasonPublic, ent.Reason)
	}
}

func TestEvaluateOwnerBypassesGate(t *testing.T) {
	ent, err := testEvaluator(newFakeSubscriptionRepo()).Evaluate("owner-1", exclusiveTrack())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ent.Allowed || !ent.IsOwner {
		t.Errorf("expected owner to be allowed, got %+v", ent)
	}
	if ent.Reason != ReasonOwner {
		t.Errorf("expected reason %q, got %q", ReasonOwner, ent.Reason)
	}
}

func TestEvaluateActiveSubscriberAllowed(t *testing.T) {
	subs := newFakeSubscriptionRepo()
	subs.activePair = &domain.Subscription{
		ID:        "sub-1",
		UserID:    "fan-1",
		ArtistID:  "artist-1",
		Status:    domain.SubscriptionActive,
		ExpiresAt: testNow.Add(24 * time.Hour),
	}

	ent, err := testEvaluator(subs).Evaluate("fan-1", exclusiveTrack())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ent.Allowed {
		t.Error("expected active subscriber to be allowed")
	}
	if ent.Reason != ReasonSubscribed {
		t.Errorf("expected reason %q, got %q", ReasonSubscribed, ent.Reason)
	}
}

func TestEvaluateNonSubscriberDenied(t *testing.T) {
	ent, err := testEvaluator(newFakeSubscriptionRepo()).Evaluate("stranger", exclusiveTrack())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ent.Allowed {
		t.Error("expected non-subscriber to be denied")
	}
	if ent.Reason != ReasonSubscriptionRequired {
		t.Errorf("expected reason %q, got %q", ReasonSubscriptionRequired, ent.Reason)
	}
}

func TestSubscriptionIsCurrentlyActive(t *testing.T) {
	cases := []struct {
		name      string
		status    domain.SubscriptionStatus
		expiresAt time.Time
		want      bool
	}{
		{"active unexpired", domain.SubscriptionActive, testNow.Add(time.Hour), true},
		{"active expired", domain.SubscriptionActive, testNow.Add(-time.Hour), false},
		{"cancelled unexpired", domain.SubscriptionCancelled, testNow.Add(time.Hour), false},
		{"inactive unexpired", domain.SubscriptionInactive, testNow.Add(time.Hour), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sub := &domain.Subscription{Status: tc.status, ExpiresAt: tc.expiresAt}
			if got := sub.IsCurrentlyActive(testNow); got != tc.want {
				t.Errorf("IsCurrentlyActive = %v, want %v", got, tc.want)
			}
		})
	}
}
