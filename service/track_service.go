package service

import (
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/michaelito80us/lufy/domain"
	"github.com/michaelito80us/lufy/dto"
	"github.com/michaelito80us/lufy/logger"
	"github.com/michaelito80us/lufy/repository"
	"github.com/michaelito80us/lufy/storage"
)

// UploadTrackInput carries the multipart fields of an upload request after
// the handler has validated the files.
type UploadTrackInput struct {
	Title       string
	Description string
	Genre       string
	Mood        string
	Tags        []string
	BPM         *int
	Key         string
	IsExclusive bool
	IsPublic    bool

	Audio         io.Reader
	AudioFilename string
	Cover         io.Reader
	CoverFilename string
}

type TrackListQuery struct {
	ArtistID   string
	PublicOnly bool
	Genre      string
	Search     string
	Page       int
	Limit      int
}

type TrackService interface {
	Upload(userID string, input UploadTrackInput) (*dto.TrackResponse, error)
	Get(requesterID, trackID string) (*dto.TrackResponse, error)
	List(requesterID string, query TrackListQuery) (*dto.TracksListResponse, error)
	Update(requesterID, trackID string, req *dto.UpdateTrackRequest) (*dto.TrackResponse, error)
	Delete(requesterID, trackID string) error
	SetCoverArt(requesterID, trackID, filename string, file io.Reader) (*dto.TrackResponse, error)
	RemoveCoverArt(requesterID, trackID string) (*dto.TrackResponse, error)
}

type trackService struct {
	tracks    repository.TrackRepository
	artists   repository.ArtistRepository
	subs      repository.SubscriptionRepository
	evaluator *EntitlementEvaluator
	store     *storage.Store
	now       func() time.Time
}

func NewTrackService(
	tracks repository.TrackRepository,
	artists repository.ArtistRepository,
	subs repository.SubscriptionRepository,
	evaluator *EntitlementEvaluator,
	store *storage.Store,
) TrackService {
	return &trackService{
		tracks:    tracks,
		artists:   artists,
		subs:      subs,
		evaluator: evaluator,
		store:     store,
		now:       time.Now,
	}
}

var slugRegex = regexp.MustCompile(`[^a-zA-Z0-9]+`)

func slugify(s string) string {
	return strings.Trim(slugRegex.ReplaceAllString(s, "-"), "-")
}

func (s *trackService) Upload(userID string, input UploadTrackInput) (*dto.TrackResponse, error) {
	artist, err := s.artists.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if artist == nil {
		return nil, domain.ErrForbidden("artist profile required")
	}

	timestamp := s.now().UnixMilli()
	audioName := fmt.Sprintf("%d-%s%s", timestamp, slugify(input.Title), strings.ToLower(filepath.Ext(input.AudioFilename)))

	audioURL, err := s.store.SaveAudio(artist.ID, audioName, input.Audio)
	if err != nil {
		return nil, err
	}

	var coverURL *string
	if input.Cover != nil {
		coverName := fmt.Sprintf("%d-cover%s", timestamp, strings.ToLower(filepath.Ext(input.CoverFilename)))
		url, err := s.store.SaveCover(artist.ID, coverName, input.Cover)
		if err != nil {
			s.store.Remove(audioURL)
			return nil, err
		}
		coverURL = &url
	}

	track := &domain.Track{
		ID:          uuid.New().String(),
		ArtistID:    artist.ID,
		Title:       input.Title,
		Description: input.Description,
		Genre:       input.Genre,
		Mood:        input.Mood,
		Tags:        input.Tags,
		BPM:         input.BPM,
		Key:         input.Key,
		AudioURL:    audioURL,
		CoverArt:    coverURL,
		IsExclusive: input.IsExclusive,
		IsPublic:    input.IsPublic,
	}

	if err := s.tracks.Create(track); err != nil {
		s.store.Remove(audioURL)
		if coverURL != nil {
			s.store.Remove(*coverURL)
		}
		return nil, err
	}
	track.Artist = artist

	logger.Info(logger.EventUpload, "Track uploaded", logger.Fields(
		"artist_id", artist.ID,
		"track_id", track.ID,
		"title", track.Title,
		"exclusive", track.IsExclusive,
	))

	resp := toTrackResponse(track, true)
	return &resp, nil
}

func (s *trackService) Get(requesterID, trackID string) (*dto.TrackResponse, error) {
	track, err := s.tracks.FindByID(trackID)
	if err != nil {
		return nil, err
	}
	if track == nil {
		return nil, domain.ErrNotFound("track not found or access denied")
	}

	entitlement, err := s.evaluator.Evaluate(requesterID, track)
	if err != nil {
		return nil, err
	}
	if !entitlement.Allowed {
		// Exclusive content is wholly private to non-entitled viewers; its
		// existence is not disclosed.
		return nil, domain.ErrNotFound("track not found or access denied")
	}

	resp := toTrackResponse(track, entitlement.IsOwner)
	return &resp, nil
}

func (s *trackService) List(requesterID string, query TrackListQuery) (*dto.TracksListResponse, error) {
	filter := repository.TrackFilter{
		ArtistID:   query.ArtistID,
		PublicOnly: query.PublicOnly,
		Genre:      query.Genre,
		Search:     query.Search,
		Page:       query.Page,
		Limit:      query.Limit,
	}

	ownArtist, err := s.artists.FindByUserID(requesterID)
	if err != nil {
		return nil, err
	}

	if query.ArtistID != "" {
		isOwner := ownArtist != nil && ownArtist.ID == query.ArtistID
		if !isOwner {
			sub, err := s.subs.FindActivePair(requesterID, query.ArtistID, s.now())
			if err != nil {
				return nil, err
			}
			filter.HideExclusive = sub == nil
		}
	} else {
		// Unscoped listing: exclusive tracks are filtered out at the query so
		// pagination totals stay accurate, except the requester's own.
		filter.HideExclusive = true
		if ownArtist != nil {
			filter.ExemptArtistID = ownArtist.ID
		}
	}

	tracks, total, err := s.tracks.List(filter)
	if err != nil {
		return nil, err
	}

	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}

	responses := make([]dto.TrackResponse, 0, len(tracks))
	for i := range tracks {
		isOwner := ownArtist != nil && tracks[i].ArtistID == ownArtist.ID
		responses = append(responses, toTrackResponse(&tracks[i], isOwner))
	}

	return &dto.TracksListResponse{
		Tracks: responses,
		Pagination: dto.Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: (total + limit - 1) / limit,
		},
	}, nil
}

func (s *trackService) Update(requesterID, trackID string, req *dto.UpdateTrackRequest) (*dto.TrackResponse, error) {
	track, err := s.ownedTrack(requesterID, trackID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Genre != nil {
		updates["genre"] = *req.Genre
	}
	if req.Mood != nil {
		updates["mood"] = *req.Mood
	}
	if req.Tags != nil {
		updates["tags"] = domain.StringList(req.Tags)
	}
	if req.Lyrics != nil {
		updates["lyrics"] = *req.Lyrics
	}
	if req.BPM != nil {
		updates["bpm"] = *req.BPM
	}
	if req.Key != nil {
		updates["key"] = *req.Key
	}
	if req.IsExclusive != nil {
		updates["is_exclusive"] = *req.IsExclusive
	}
	if req.CoverArt != nil {
		updates["cover_art"] = *req.CoverArt
	}
	if req.ReleaseDate != nil {
		if *req.ReleaseDate == "" {
			updates["release_date"] = nil
		} else {
			parsed, err := time.Parse(time.RFC3339, *req.ReleaseDate)
			if err != nil {
				parsed, err = time.Parse("2006-01-02", *req.ReleaseDate)
			}
			if err != nil {
				return nil, domain.ErrInvalidInput("invalid release date")
			}
			updates["release_date"] = parsed
		}
	}

	if len(updates) == 0 {
		return nil, domain.ErrInvalidInput("no fields to update")
	}
	updates["updated_at"] = s.now()

	if err := s.tracks.Update(track.ID, updates); err != nil {
		return nil, err
	}

	updated, err := s.tracks.FindByID(track.ID)
	if err != nil {
		return nil, err
	}
	resp := toTrackResponse(updated, true)
	return &resp, nil
}

func (s *trackService) Delete(requesterID, trackID string) error {
	track, err := s.ownedTrack(requesterID, trackID)
	if err != nil {
		return err
	}

	if err := s.tracks.Delete(track.ID); err != nil {
		return err
	}

	// Best effort; orphaned files are harmless.
	s.store.Remove(track.AudioURL)
	if track.CoverArt != nil {
		s.store.Remove(*track.CoverArt)
	}

	return nil
}

func (s *trackService) SetCoverArt(requesterID, trackID, filename string, file io.Reader) (*dto.TrackResponse, error) {
	track, err := s.ownedTrack(requesterID, trackID)
	if err != nil {
		return nil, err
	}

	coverName := fmt.Sprintf("%s%s", uuid.New().String(), strings.ToLower(filepath.Ext(filename)))
	url, err := s.store.SaveCover(track.ArtistID, coverName, file)
	if err != nil {
		return nil, err
	}

	if err := s.tracks.Update(track.ID, map[string]interface{}{"cover_art": url}); err != nil {
		s.store.Remove(url)
		return nil, err
	}

	if track.CoverArt != nil {
		s.store.Remove(*track.CoverArt)
	}

	updated, err := s.tracks.FindByID(track.ID)
	if err != nil {
		return nil, err
	}
	resp := toTrackResponse(updated, true)
	return &resp, nil
}

func (s *trackService) RemoveCoverArt(requesterID, trackID string) (*dto.TrackResponse, error) {
	track, err := s.ownedTrack(requesterID, trackID)
	if err != nil {
		return nil, err
	}

	if err := s.tracks.Update(track.ID, map[string]interface{}{"cover_art": nil}); err != nil {
		return nil, err
	}

	if track.CoverArt != nil {
		s.store.Remove(*track.CoverArt)
	}

	updated, err := s.tracks.FindByID(track.ID)
	if err != nil {
		return nil, err
	}
	resp := toTrackResponse(updated, true)
	return &resp, nil
}

func (s *trackService) ownedTrack(requesterID, trackID string) (*domain.Track, error) {
	track, err := s.tracks.FindByID(trackID)
	if err != nil {
		return nil, err
	}
	if track == nil || track.Artist == nil || track.Artist.UserID != requesterID {
		return nil, domain.ErrNotFound("track not found or access denied")
	}
	return track, nil
}

// toTrackResponse builds the wire projection. The owner view carries the
// artist's user id; the redacted view never does.
func toTrackResponse(track *domain.Track, isOwner bool) dto.TrackResponse {
	resp := dto.TrackResponse{
		ID:          track.ID,
		Title:       track.Title,
		Description: track.Description,
		Genre:       track.Genre,
		Mood:        track.Mood,
		Tags:        track.Tags,
		Lyrics:      track.Lyrics,
		BPM:         track.BPM,
		Key:         track.Key,
		AudioURL:    track.AudioURL,
		CoverArt:    track.CoverArt,
		Duration:    track.Duration,
		IsExclusive: track.IsExclusive,
		IsPublic:    track.IsPublic,
		Plays:       track.Plays,
		Likes:       track.Likes,
		CreatedAt:   track.CreatedAt.UTC().Format(time.RFC3339),
	}
	if track.Artist != nil {
		resp.Artist = &dto.ArtistRef{
			ID:        track.Artist.ID,
			StageName: track.Artist.StageName,
			Logo:      track.Artist.Logo,
			Tier:      track.Artist.Tier,
		}
		if isOwner {
			resp.Artist.UserID = track.Artist.UserID
		}
	}
	return resp
}
