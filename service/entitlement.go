package service

import (
	"time"

	"github.com/michaelito80us/lufy/domain"
	"github.com/michaelito80us/lufy/repository"
)

const (
	ReasonPublic               = "public"
	ReasonOwner                = "owner"
	ReasonSubscribed           = "subscribed"
	ReasonSubscriptionRequired = "subscription_required"
)

// Entitlement is the allow/deny decision for a (requester, track) pair.
type Entitlement struct {
	Allowed bool
	IsOwner bool
	Reason  string
}

// EntitlementEvaluator decides whether a requester can see exclusive content.
// Decisions are computed per request and never cached: subscription state can
// change between requests.
type EntitlementEvaluator struct {
	subs repository.SubscriptionRepository
	now  func() time.Time
}

func NewEntitlementEvaluator(subs repository.SubscriptionRepository) *EntitlementEvaluator {
	return &EntitlementEvaluator{subs: subs, now: time.Now}
}

// Evaluate applies the access rules in order: public tracks are always
// visible, the owning artist bypasses the gate, everyone else needs an
// unexpired ACTIVE subscription. The price on the artist is informational
// only and never part of the decision. track.Artist must be loaded.
func (e *EntitlementEvaluator) Evaluate(requesterID string, track *domain.Track) (Entitlement, error) {
	isOwner := track.Artist != nil && track.Artist.UserID == requesterID

	if !track.IsExclusive {
		return Entitlement{Allowed: true, IsOwner: isOwner, Reason: ReasonPublic}, nil
	}

	if isOwner {
		return Entitlement{Allowed: true, IsOwner: true, Reason: ReasonOwner}, nil
	}

	sub, err := e.subs.FindActivePair(requesterID, track.ArtistID, e.now())
	if err != nil {
		return Entitlement{}, err
	}
	if sub != nil {
		return Entitlement{Allowed: true, Reason: ReasonSubscribed}, nil
	}

	return Entitlement{Reason: ReasonSubscriptionRequired}, nil
}
