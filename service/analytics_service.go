package service

import (
	"math/rand"
	"time"

	"github.com/michaelito80us/lufy/domain"
	"github.com/michaelito80us/lufy/dto"
	"github.com/michaelito80us/lufy/repository"
)

// PlayCountSource is the read contract for the playback pipeline. The real
// aggregator lives outside this service; the default implementation returns
// a synthetic series.
type PlayCountSource interface {
	DailyPlayCounts(artistID string, from, to time.Time) ([]dto.DailyCount, error)
}

type syntheticPlaySource struct{}

func NewSyntheticPlaySource() PlayCountSource { return &syntheticPlaySource{} }

func (s *syntheticPlaySource) DailyPlayCounts(artistID string, from, to time.Time) ([]dto.DailyCount, error) {
	var out []dto.DailyCount
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		out = append(out, dto.DailyCount{
			Date:  day.UTC().Format("2006-01-02"),
			Count: rand.Intn(100) + 10,
		})
	}
	return out, nil
}

type AnalyticsService interface {
	ArtistAnalytics(requesterID, timeframe string) (*dto.AnalyticsResponse, error)
}

type analyticsService struct {
	artists repository.ArtistRepository
	tracks  repository.TrackRepository
	subs    repository.SubscriptionRepository
	plays   PlayCountSource
	now     func() time.Time
}

func NewAnalyticsService(
	artists repository.ArtistRepository,
	tracks repository.TrackRepository,
	subs repository.SubscriptionRepository,
	plays PlayCountSource,
) AnalyticsService {
	return &analyticsService{
		artists: artists,
		tracks:  tracks,
		subs:    subs,
		plays:   plays,
		now:     time.Now,
	}
}

func timeframeDays(timeframe string) int {
	switch timeframe {
	case "7d":
		return 7
	case "90d":
		return 90
	case "1y":
		return 365
	default:
		return 30
	}
}

func (s *analyticsService) ArtistAnalytics(requesterID, timeframe string) (*dto.AnalyticsResponse, error) {
	artist, err := s.artists.FindByUserID(requesterID)
	if err != nil {
		return nil, err
	}
	if artist == nil {
		return nil, domain.ErrNotFound("artist not found")
	}

	totalTracks, err := s.tracks.CountByArtist(artist.ID)
	if err != nil {
		return nil, err
	}
	activeSubscribers, err := s.subs.CountByArtist(artist.ID, domain.SubscriptionActive)
	if err != nil {
		return nil, err
	}
	totalSubscribers, err := s.subs.CountByArtist(artist.ID, "")
	if err != nil {
		return nil, err
	}
	totalPlays, totalLikes, err := s.tracks.PlayLikeTotals(artist.ID)
	if err != nil {
		return nil, err
	}
	monthlyRevenue, err := s.subs.ActiveAmountSum(artist.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	days := timeframeDays(timeframe)
	seriesStart := now.AddDate(0, 0, -(days - 1))

	recentPlays, err := s.plays.DailyPlayCounts(artist.ID, seriesStart, now)
	if err != nil {
		return nil, err
	}

	top, err := s.tracks.TopByPlays(artist.ID, 10)
	if err != nil {
		return nil, err
	}
	topTracks := make([]dto.TopTrack, 0, len(top))
	for _, track := range top {
		topTracks = append(topTracks, dto.TopTrack{
			ID:        track.ID,
			Title:     track.Title,
			Plays:     track.Plays,
			Likes:     track.Likes,
			CoverArt:  track.CoverArt,
			CreatedAt: track.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	newByDay, err := s.subs.DailyNewByArtist(artist.ID, seriesStart, now)
	if err != nil {
		return nil, err
	}
	growth := make([]dto.DailyCount, 0, days)
	for day := seriesStart; !day.After(now); day = day.AddDate(0, 0, 1) {
		date := day.UTC().Format("2006-01-02")
		growth = append(growth, dto.DailyCount{Date: date, Count: newByDay[date]})
	}

	return &dto.AnalyticsResponse{
		Timeframe:         timeframe,
		TotalTracks:       totalTracks,
		ActiveSubscribers: activeSubscribers,
		TotalSubscribers:  totalSubscribers,
		TotalPlays:        totalPlays,
		TotalLikes:        totalLikes,
		MonthlyRevenue:    monthlyRevenue,
		RecentPlays:       recentPlays,
		TopTracks:         topTracks,
		SubscriberGrowth:  growth,
	}, nil
}
