package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/michaelito80us/lufy/domain"
	"github.com/michaelito80us/lufy/logger"
	"github.com/michaelito80us/lufy/repository"
)

const subscriptionWindow = 30 * 24 * time.Hour

// AccessCheck is the payload behind the client-side gate: whether content is
// unlocked and, when it is not, the price the paywall offers.
type AccessCheck struct {
	HasAccess    bool
	IsOwner      bool
	Subscription *domain.Subscription
	Price        *float64
}

type SubscriptionService interface {
	Subscribe(userID, artistID string) (*domain.Subscription, error)
	Cancel(subscriptionID, requesterID string) error
	UpdateOwnStatus(subscriptionID, requesterID, status string) (*domain.Subscription, error)
	GetOwn(subscriptionID, requesterID string) (*domain.Subscription, error)
	ListOwn(userID string) ([]domain.Subscription, error)
	CheckAccess(userID, artistID string) (*AccessCheck, error)

	ListSubscribers(requesterID, status string, page, limit int) ([]domain.Subscription, int, error)
	BulkUpdateSubscribers(requesterID string, subscriptionIDs []string, status, reason string) (int, error)
}

type subscriptionService struct {
	subs    repository.SubscriptionRepository
	artists repository.ArtistRepository
	now     func() time.Time
}

func NewSubscriptionService(subs repository.SubscriptionRepository, artists repository.ArtistRepository) SubscriptionService {
	return &subscriptionService{subs: subs, artists: artists, now: time.Now}
}

func (s *subscriptionService) Subscribe(userID, artistID string) (*domain.Subscription, error) {
	artist, err := s.artists.FindByID(artistID)
	if err != nil {
		return nil, err
	}
	if artist == nil {
		return nil, domain.ErrNotFound("artist not found")
	}

	if artist.UserID == userID {
		return nil, domain.ErrConflict("cannot subscribe to yourself")
	}

	now := s.now()

	// A lapsed ACTIVE row would still trip the partial unique index; retire it
	// before inserting so an expired subscriber can come back.
	if err := s.subs.ExpireActivePair(userID, artistID, now); err != nil {
		return nil, err
	}

	existing, err := s.subs.FindActivePair(userID, artistID, now)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrConflict("already subscribed to this artist")
	}

	var amount float64
	if artist.SubscriptionPrice != nil {
		amount = *artist.SubscriptionPrice
	}

	sub := &domain.Subscription{
		ID:        uuid.New().String(),
		UserID:    userID,
		ArtistID:  artistID,
		Status:    domain.SubscriptionActive,
		StartDate: now,
		ExpiresAt: now.Add(subscriptionWindow),
		Amount:    amount,
	}

	// The pre-check above is advisory only; the partial unique index settles
	// concurrent subscribes and surfaces the loser as a Conflict.
	if err := s.subs.Create(sub); err != nil {
		return nil, err
	}
	sub.Artist = artist

	// Payment processing is deliberately stubbed: a real deployment would
	// create a payment intent and drive status off billing webhooks.

	logger.Info(logger.EventSubscription, "Subscription created", logger.Fields(
		"user_id", userID,
		"artist_id", artistID,
		"subscription_id", sub.ID,
		"amount", amount,
	))

	return sub, nil
}

func (s *subscriptionService) Cancel(subscriptionID, requesterID string) error {
	sub, err := s.subs.FindByID(subscriptionID)
	if err != nil {
		return err
	}
	if sub == nil || sub.UserID != requesterID {
		return domain.ErrNotFound("subscription not found")
	}

	// Soft transition only; the row is kept as history.
	if err := s.subs.UpdateStatus(subscriptionID, domain.SubscriptionCancelled); err != nil {
		return err
	}

	logger.Info(logger.EventSubscription, "Subscription cancelled", logger.Fields(
		"user_id", requesterID,
		"subscription_id", subscriptionID,
	))

	return nil
}

func (s *subscriptionService) UpdateOwnStatus(subscriptionID, requesterID, status string) (*domain.Subscription, error) {
	if !domain.ValidSubscriptionStatus(status) {
		return nil, domain.ErrInvalidInput("status must be ACTIVE, INACTIVE or CANCELLED")
	}

	sub, err := s.subs.FindByID(subscriptionID)
	if err != nil {
		return nil, err
	}
	if sub == nil || sub.UserID != requesterID {
		return nil, domain.ErrNotFound("subscription not found")
	}

	if err := s.subs.UpdateStatus(subscriptionID, domain.SubscriptionStatus(status)); err != nil {
		return nil, err
	}

	return s.subs.FindByID(subscriptionID)
}

func (s *subscriptionService) GetOwn(subscriptionID, requesterID string) (*domain.Subscription, error) {
	sub, err := s.subs.FindByID(subscriptionID)
	if err != nil {
		return nil, err
	}
	if sub == nil || sub.UserID != requesterID {
		return nil, domain.ErrNotFound("subscription not found")
	}
	return sub, nil
}

func (s *subscriptionService) ListOwn(userID string) ([]domain.Subscription, error) {
	return s.subs.ListByUser(userID)
}

func (s *subscriptionService) CheckAccess(userID, artistID string) (*AccessCheck, error) {
	artist, err := s.artists.FindByID(artistID)
	if err != nil {
		return nil, err
	}
	if artist == nil {
		return nil, domain.ErrNotFound("artist not found")
	}

	if artist.UserID == userID {
		return &AccessCheck{HasAccess: true, IsOwner: true}, nil
	}

	sub, err := s.subs.FindActivePair(userID, artistID, s.now())
	if err != nil {
		return nil, err
	}

	check := &AccessCheck{
		HasAccess:    sub != nil,
		Subscription: sub,
		Price:        artist.SubscriptionPrice,
	}
	return check, nil
}

func (s *subscriptionService) ListSubscribers(requesterID, status string, page, limit int) ([]domain.Subscription, int, error) {
	artist, err := s.artists.FindByUserID(requesterID)
	if err != nil {
		return nil, 0, err
	}
	if artist == nil {
		return nil, 0, domain.ErrNotFound("artist not found")
	}

	if status != "" && !domain.ValidSubscriptionStatus(status) {
		return nil, 0, domain.ErrInvalidInput("status must be ACTIVE, INACTIVE or CANCELLED")
	}

	return s.subs.ListByArtist(repository.SubscriberFilter{
		ArtistID: artist.ID,
		Status:   status,
		Page:     page,
		Limit:    limit,
	})
}

func (s *subscriptionService) BulkUpdateSubscribers(requesterID string, subscriptionIDs []string, status, reason string) (int, error) {
	artist, err := s.artists.FindByUserID(requesterID)
	if err != nil {
		return 0, err
	}
	if artist == nil {
		return 0, domain.ErrNotFound("artist not found")
	}

	if !domain.ValidSubscriptionStatus(status) {
		return 0, domain.ErrInvalidInput("status must be ACTIVE, INACTIVE or CANCELLED")
	}

	ids := dedupe(subscriptionIDs)

	// All-or-nothing: if any id falls outside this artist, the whole batch is
	// rejected.
	owned, err := s.subs.FindByIDsForArtist(ids, artist.ID)
	if err != nil {
		return 0, err
	}
	if len(owned) != len(ids) {
		return 0, domain.ErrForbidden("some subscriptions not found or unauthorized")
	}

	updated, err := s.subs.BulkUpdateStatus(ids, artist.ID, domain.SubscriptionStatus(status))
	if err != nil {
		return 0, err
	}

	logger.Info(logger.EventAdminActivity, "Bulk subscriber status update", logger.Fields(
		"artist_id", artist.ID,
		"count", updated,
		"status", status,
		"reason", reason,
	))

	return updated, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
