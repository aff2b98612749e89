package service

import (
	"testing"
	"time"

	"github.com/michaelito80us/lufy/domain"
)

func testSubscriptionService(subs *fakeSubscriptionRepo, artists *fakeArtistRepo) *subscriptionService {
	return &subscriptionService{subs: subs, artists: artists, now: func() time.Time { return testNow }}
}

func priceOf(v float64) *float64 { return &v }

func TestSubscribeCreatesActiveSubscription(t *testing.T) {
	subs := newFakeSubscriptionRepo()
	artists := newFakeArtistRepo(&domain.Artist{
		ID:                "artist-1",
		UserID:            "owner-1",
		StageName:         "Nova",
		SubscriptionPrice: priceOf(9.99),
	})

	sub, err := testSubscriptionService(subs, artists).Subscribe("fan-1", "artist-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sub.Status != domain.SubscriptionActive {
		t.Errorf("expected status ACTIVE, got %s", sub.Status)
	}
	if sub.Amount != 9.99 {
		t.Errorf("expected amount snapshot 9.99, got %f", sub.Amount)
	}
	want := testNow.Add(30 * 24 * time.Hour)
	if !sub.ExpiresAt.Equal(want) {
		t.Errorf("expected expiry %v, got %v", want, sub.ExpiresAt)
	}
	if len(subs.created) != 1 {
		t.Errorf("expected one created row, got %d", len(subs.created))
	}
}

func TestSubscribeToUnknownArtist(t *testing.T) {
	svc := testSubscriptionService(newFakeSubscriptionRepo(), newFakeArtistRepo())

	_, err := svc.Subscribe("fan-1", "missing")
	if domain.KindOf(err) != domain.KindNotFound {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestSubscribeToSelf(t *testing.T) {
	subs := newFakeSubscriptionRepo()
	artists := newFakeArtistRepo(&domain.Artist{ID: "artist-1", UserID: "owner-1"})

	_, err := testSubscriptionService(subs, artists).Subscribe("owner-1", "artist-1")
	if domain.KindOf(err) != domain.KindConflict {
		t.Errorf("expected conflict error, got %v", err)
	}
	if len(subs.created) != 0 {
		t.Error("expected no row created for self-subscribe")
	}
}

func TestSubscribeTwice(t *testing.T) {
	subs := newFakeSubscriptionRepo()
	subs.activePair = &domain.Subscription{
		ID:        "sub-1",
		UserID:    "fan-1",
		ArtistID:  "artist-1",
		Status:    domain.SubscriptionActive,
		ExpiresAt: testNow.Add(time.Hour),
	}
	artists := newFakeArtistRepo(&domain.Artist{ID: "artist-1", UserID: "owner-1"})

	_, err := testSubscriptionService(subs, artists).Subscribe("fan-1", "artist-1")
	if domain.KindOf(err) != domain.KindConflict {
		t.Errorf("expected conflict error, got %v", err)
	}
}

func TestSubscribeAfterWindowLapsed(t *testing.T) {
	subs := newFakeSubscriptionRepo()
	subs.byID["sub-old"] = &domain.Subscription{
		ID:        "sub-old",
		UserID:    "fan-1",
		ArtistID:  "artist-1",
		Status:    domain.SubscriptionActive,
		ExpiresAt: testNow.Add(-time.Hour),
	}
	artists := newFakeArtistRepo(&domain.Artist{ID: "artist-1", UserID: "owner-1", SubscriptionPrice: priceOf(9.99)})
	svc := testSubscriptionService(subs, artists)

	check, err := svc.CheckAccess("fan-1", "artist-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if check.HasAccess {
		t.Fatal("lapsed subscription must not grant access")
	}

	sub, err := svc.Subscribe("fan-1", "artist-1")
	if err != nil {
		t.Fatalf("expected resubscribe after lapse to succeed, got %v", err)
	}
	if sub.Status != domain.SubscriptionActive {
		t.Errorf("expected fresh ACTIVE subscription, got %s", sub.Status)
	}
	if subs.byID["sub-old"].Status != domain.SubscriptionInactive {
		t.Errorf("expected lapsed row to be retired to INACTIVE, got %s", subs.byID["sub-old"].Status)
	}
	if len(subs.created) != 1 {
		t.Errorf("expected one new row, got %d", len(subs.created))
	}
}

func TestSubscribeSurfacesIndexConflict(t *testing.T) {
	subs := newFakeSubscriptionRepo()
	subs.createErr = domain.ErrConflict("already subscribed to this artist")
	artists := newFakeArtistRepo(&domain.Artist{ID: "artist-1", UserID: "owner-1"})

	_, err := testSubscriptionService(subs, artists).Subscribe("fan-1", "artist-1")
	if domain.KindOf(err) != domain.KindConflict {
		t.Errorf("expected conflict from insert race, got %v", err)
	}
}

func TestCancelIsSoft(t *testing.T) {
	subs := newFakeSubscriptionRepo()
	subs.byID["sub-1"] = &domain.Subscription{ID: "sub-1", UserID: "fan-1", ArtistID: "artist-1", Status: domain.SubscriptionActive}

	svc := testSubscriptionService(subs, newFakeArtistRepo())
	if err := svc.Cancel("sub-1", "fan-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	row := subs.byID["sub-1"]
	if row == nil {
		t.Fatal("expected row to be retained after cancel")
	}
	if row.Status != domain.SubscriptionCancelled {
		t.Errorf("expected status CANCELLED, got %s", row.Status)
	}
}

func TestCancelForeignSubscription(t *testing.T) {
	subs := newFakeSubscriptionRepo()
	subs.byID["sub-1"] = &domain.Subscription{ID: "sub-1", UserID: "fan-1"}

	err := testSubscriptionService(subs, newFakeArtistRepo()).Cancel("sub-1", "someone-else")
	if domain.KindOf(err) != domain.KindNotFound {
		t.Errorf("expected not-found for foreign subscription, got %v", err)
	}
	if subs.byID["sub-1"].Status == domain.SubscriptionCancelled {
		t.Error("foreign cancel must not change the row")
	}
}

func TestCheckAccessOwner(t *testing.T) {
	artists := newFakeArtistRepo(&domain.Artist{ID: "artist-1", UserID: "owner-1", SubscriptionPrice: priceOf(4.99)})

	check, err := testSubscriptionService(newFakeSubscriptionRepo(), artists).CheckAccess("owner-1", "artist-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !check.HasAccess || !check.IsOwner {
		t.Errorf("expected owner access, got %+v", check)
	}
}

func TestCheckAccessWithoutSubscription(t *testing.T) {
	artists := newFakeArtistRepo(&domain.Artist{ID: "artist-1", UserID: "owner-1", SubscriptionPrice: priceOf(4.99)})

	check, err := testSubscriptionService(newFakeSubscriptionRepo(), artists).CheckAccess("fan-1", "artist-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if check.HasAccess {
		t.Error("expected access denied without subscription")
	}
	if check.Price == nil || *check.Price != 4.99 {
		t.Errorf("expected price 4.99 for the paywall, got %v", check.Price)
	}
}

func TestBulkUpdateRejectsForeignIDs(t *testing.T) {
	subs := newFakeSubscriptionRepo()
	subs.byID["sub-1"] = &domain.Subscription{ID: "sub-1", UserID: "fan-1", ArtistID: "artist-1", Status: domain.SubscriptionActive}
	subs.byID["sub-2"] = &domain.Subscription{ID: "sub-2", UserID: "fan-2", ArtistID: "other-artist", Status: domain.SubscriptionActive}
	artists := newFakeArtistRepo(&domain.Artist{ID: "artist-1", UserID: "owner-1"})

	svc := testSubscriptionService(subs, artists)
	_, err := svc.BulkUpdateSubscribers("owner-1", []string{"sub-1", "sub-2"}, "INACTIVE", "")
	if domain.KindOf(err) != domain.KindForbidden {
		t.Fatalf("expected forbidden for mixed batch, got %v", err)
	}
	if subs.byID["sub-1"].Status != domain.SubscriptionActive {
		t.Error("rejected batch must not update any row")
	}
}

func TestBulkUpdateDeduplicatesIDs(t *testing.T) {
	subs := newFakeSubscriptionRepo()
	subs.byID["sub-1"] = &domain.Subscription{ID: "sub-1", UserID: "fan-1", ArtistID: "artist-1", Status: domain.SubscriptionActive}
	artists := newFakeArtistRepo(&domain.Artist{ID: "artist-1", UserID: "owner-1"})

	updated, err := testSubscriptionService(subs, artists).BulkUpdateSubscribers(
		"owner-1", []string{"sub-1", "sub-1", "sub-1"}, "INACTIVE", "payment failed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated != 1 {
		t.Errorf("expected 1 updated row, got %d", updated)
	}
	if subs.byID["sub-1"].Status != domain.SubscriptionInactive {
		t.Errorf("expected status INACTIVE, got %s", subs.byID["sub-1"].Status)
	}
}

func TestBulkUpdateInvalidStatus(t *testing.T) {
	artists := newFakeArtistRepo(&domain.Artist{ID: "artist-1", UserID: "owner-1"})

	_, err := testSubscriptionService(newFakeSubscriptionRepo(), artists).BulkUpdateSubscribers(
		"owner-1", []string{"sub-1"}, "PAUSED", "")
	if domain.KindOf(err) != domain.KindInvalidInput {
		t.Errorf("expected invalid-input error, got %v", err)
	}
}
