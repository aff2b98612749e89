package service

import (
	"testing"
	"time"

	"github.com/michaelito80us/lufy/domain"
	"github.com/michaelito80us/lufy/dto"
)

type fixedPlaySource struct{ perDay int }

func (f *fixedPlaySource) DailyPlayCounts(artistID string, from, to time.Time) ([]dto.DailyCount, error) {
	var out []dto.DailyCount
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		out = append(out, dto.DailyCount{Date: day.UTC().Format("2006-01-02"), Count: f.perDay})
	}
	return out, nil
}

func TestArtistAnalyticsAggregates(t *testing.T) {
	artists := newFakeArtistRepo(&domain.Artist{ID: "artist-1", UserID: "owner-1"})

	tracks := newFakeTrackRepo(
		&domain.Track{ID: "t1", ArtistID: "artist-1", Plays: 100, Likes: 10},
		&domain.Track{ID: "t2", ArtistID: "artist-1", Plays: 50, Likes: 5},
		&domain.Track{ID: "t3", ArtistID: "other", Plays: 999, Likes: 99},
	)

	subs := newFakeSubscriptionRepo()
	subs.byID["s1"] = &domain.Subscription{ID: "s1", ArtistID: "artist-1", Status: domain.SubscriptionActive, Amount: 9.99}
	subs.byID["s2"] = &domain.Subscription{ID: "s2", ArtistID: "artist-1", Status: domain.SubscriptionCancelled, Amount: 9.99}

	svc := &analyticsService{
		artists: artists,
		tracks:  tracks,
		subs:    subs,
		plays:   &fixedPlaySource{perDay: 3},
		now:     func() time.Time { return testNow },
	}

	out, err := svc.ArtistAnalytics("owner-1", "30d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.TotalTracks != 2 {
		t.Errorf("expected 2 tracks, got %d", out.TotalTracks)
	}
	if out.ActiveSubscribers != 1 {
		t.Errorf("expected 1 active subscriber, got %d", out.ActiveSubscribers)
	}
	if out.TotalSubscribers != 2 {
		t.Errorf("expected 2 total subscribers, got %d", out.TotalSubscribers)
	}
	if out.TotalPlays != 150 || out.TotalLikes != 15 {
		t.Errorf("unexpected play/like totals %d/%d", out.TotalPlays, out.TotalLikes)
	}
	if out.MonthlyRevenue != 9.99 {
		t.Errorf("expected revenue from active rows only, got %f", out.MonthlyRevenue)
	}
	if len(out.RecentPlays) != 30 {
		t.Errorf("expected a 30-day series, got %d", len(out.RecentPlays))
	}
	if len(out.SubscriberGrowth) != 30 {
		t.Errorf("expected a 30-day growth series, got %d", len(out.SubscriberGrowth))
	}
}

func TestArtistAnalyticsTimeframeDrivesSeriesLength(t *testing.T) {
	artists := newFakeArtistRepo(&domain.Artist{ID: "artist-1", UserID: "owner-1"})

	cases := map[string]int{
		"7d":    7,
		"30d":   30,
		"90d":   90,
		"1y":    365,
		"bogus": 30,
		"":      30,
	}

	for timeframe, days := range cases {
		svc := &analyticsService{
			artists: artists,
			tracks:  newFakeTrackRepo(),
			subs:    newFakeSubscriptionRepo(),
			plays:   &fixedPlaySource{perDay: 1},
			now:     func() time.Time { return testNow },
		}

		out, err := svc.ArtistAnalytics("owner-1", timeframe)
		if err != nil {
			t.Fatalf("timeframe %q: unexpected error: %v", timeframe, err)
		}
		if len(out.RecentPlays) != days {
			t.Errorf("timeframe %q: expected %d-day play series, got %d", timeframe, days, len(out.RecentPlays))
		}
		if len(out.SubscriberGrowth) != days {
			t.Errorf("timeframe %q: expected %d-day growth series, got %d", timeframe, days, len(out.SubscriberGrowth))
		}
	}
}

func TestArtistAnalyticsRequiresProfile(t *testing.T) {
	svc := &analyticsService{
		artists: newFakeArtistRepo(),
		tracks:  newFakeTrackRepo(),
		subs:    newFakeSubscriptionRepo(),
		plays:   &fixedPlaySource{},
		now:     func() time.Time { return testNow },
	}

	_, err := svc.ArtistAnalytics("nobody", "30d")
	if domain.KindOf(err) != domain.KindNotFound {
		t.Errorf("expected not-found without profile, got %v", err)
	}
}
