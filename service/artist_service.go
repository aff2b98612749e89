package service

import (
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/michaelito80us/lufy/domain"
	"github.com/michaelito80us/lufy/dto"
	"github.com/michaelito80us/lufy/logger"
	"github.com/michaelito80us/lufy/repository"
)

type ArtistService interface {
	// Setup creates the artist profile for a user and promotes them to the
	// artist role. A user gets at most one profile.
	Setup(userID string, req *dto.CreateArtistRequest) (*domain.Artist, error)
	GetOwn(userID string) (*domain.Artist, error)
	UpdateOwn(userID string, req *dto.UpdateArtistRequest) (*domain.Artist, error)
}

type artistService struct {
	artists repository.ArtistRepository
}

func NewArtistService(artists repository.ArtistRepository) ArtistService {
	return &artistService{artists: artists}
}

// normalizeURL prefixes a bare host with https and rejects anything that
// still does not parse as an absolute URL. Empty input stays empty.
func normalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return "", domain.ErrInvalidInput("invalid URL format")
	}
	return raw, nil
}

func normalizeSocialLinks(req *dto.SocialLinksRequest) (domain.SocialLinks, error) {
	var links domain.SocialLinks
	if req == nil {
		return links, nil
	}
	var err error
	if links.Instagram, err = normalizeURL(req.Instagram); err != nil {
		return links, err
	}
	if links.Twitter, err = normalizeURL(req.Twitter); err != nil {
		return links, err
	}
	if links.Spotify, err = normalizeURL(req.Spotify); err != nil {
		return links, err
	}
	if links.YouTube, err = normalizeURL(req.YouTube); err != nil {
		return links, err
	}
	return links, nil
}

func (s *artistService) Setup(userID string, req *dto.CreateArtistRequest) (*domain.Artist, error) {
	existing, err := s.artists.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrConflict("artist profile already exists")
	}

	website, err := normalizeURL(req.Website)
	if err != nil {
		return nil, err
	}
	links, err := normalizeSocialLinks(req.SocialLinks)
	if err != nil {
		return nil, err
	}

	tier := req.Tier
	if tier == "" {
		tier = domain.TierBasic
	}

	artist := &domain.Artist{
		ID:                 uuid.New().String(),
		UserID:             userID,
		StageName:          req.StageName,
		Bio:                req.Bio,
		Website:            website,
		Tier:               tier,
		SubscriptionPrice:  req.SubscriptionPrice,
		SubscriptionActive: req.SubscriptionPrice != nil && *req.SubscriptionPrice > 0,
		SocialLinks:        links,
		IsActive:           true,
	}

	if err := s.artists.Create(artist); err != nil {
		return nil, err
	}

	logger.Info(logger.EventGeneral, "Artist profile created", logger.Fields(
		"user_id", userID,
		"artist_id", artist.ID,
		"stage_name", artist.StageName,
	))

	return artist, nil
}

func (s *artistService) GetOwn(userID string) (*domain.Artist, error) {
	artist, err := s.artists.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if artist == nil {
		return nil, domain.ErrNotFound("artist not found")
	}
	return artist, nil
}

func (s *artistService) UpdateOwn(userID string, req *dto.UpdateArtistRequest) (*domain.Artist, error) {
	artist, err := s.GetOwn(userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.StageName != nil {
		updates["stage_name"] = *req.StageName
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.Website != nil {
		website, err := normalizeURL(*req.Website)
		if err != nil {
			return nil, err
		}
		updates["website"] = website
	}
	if req.Tier != nil {
		updates["tier"] = *req.Tier
	}
	if req.SubscriptionPrice != nil {
		updates["subscription_price"] = *req.SubscriptionPrice
		updates["subscription_active"] = *req.SubscriptionPrice > 0
	}
	if req.SocialLinks != nil {
		links, err := normalizeSocialLinks(req.SocialLinks)
		if err != nil {
			return nil, err
		}
		updates["social_links"] = links
	}

	if len(updates) == 0 {
		return nil, domain.ErrInvalidInput("no fields to update")
	}

	if err := s.artists.Update(artist.ID, updates); err != nil {
		return nil, err
	}

	return s.artists.FindByID(artist.ID)
}
