package service

import (
	"time"

	"github.com/michaelito80us/lufy/domain"
	"github.com/michaelito80us/lufy/repository"
)

type fakeSubscriptionRepo struct {
	byID       map[string]*domain.Subscription
	activePair *domain.Subscription
	createErr  error
	created    []*domain.Subscription
	statusSets map[string]domain.SubscriptionStatus
	byArtist   []domain.Subscription
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{
		byID:       make(map[string]*domain.Subscription),
		statusSets: make(map[string]domain.SubscriptionStatus),
	}
}

func (f *fakeSubscriptionRepo) Create(sub *domain.Subscription) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, sub)
	f.byID[sub.ID] = sub
	return nil
}

func (f *fakeSubscriptionRepo) FindByID(id string) (*domain.Subscription, error) {
	return f.byID[id], nil
}

func (f *fakeSubscriptionRepo) FindActivePair(userID, artistID string, now time.Time) (*domain.Subscription, error) {
	if f.activePair != nil && f.activePair.UserID == userID && f.activePair.ArtistID == artistID &&
		f.activePair.IsCurrentlyActive(now) {
		return f.activePair, nil
	}
	for _, sub := range f.byID {
		if sub.UserID == userID && sub.ArtistID == artistID && sub.IsCurrentlyActive(now) {
			return sub, nil
		}
	}
	return nil, nil
}

func (f *fakeSubscriptionRepo) ExpireActivePair(userID, artistID string, now time.Time) error {
	expire := func(sub *domain.Subscription) {
		if sub.UserID == userID && sub.ArtistID == artistID &&
			sub.Status == domain.SubscriptionActive && !sub.ExpiresAt.After(now) {
			sub.Status = domain.SubscriptionInactive
			f.statusSets[sub.ID] = domain.SubscriptionInactive
		}
	}
	if f.activePair != nil {
		expire(f.activePair)
	}
	for _, sub := range f.byID {
		expire(sub)
	}
	return nil
}

func (f *fakeSubscriptionRepo) ListByUser(userID string) ([]domain.Subscription, error) {
	var out []domain.Subscription
	for _, sub := range f.byID {
		if sub.UserID == userID {
			out = append(out, *sub)
		}
	}
	return out, nil
}

func (f *fakeSubscriptionRepo) ListByArtist(filter repository.SubscriberFilter) ([]domain.Subscription, int, error) {
	return f.byArtist, len(f.byArtist), nil
}

func (f *fakeSubscriptionRepo) UpdateStatus(id string, status domain.SubscriptionStatus) error {
	f.statusSets[id] = status
	if sub, ok := f.byID[id]; ok {
		sub.Status = status
	}
	return nil
}

func (f *fakeSubscriptionRepo) FindByIDsForArtist(ids []string, artistID string) ([]domain.Subscription, error) {
	var out []domain.Subscription
	for _, id := range ids {
		if sub, ok := f.byID[id]; ok && sub.ArtistID == artistID {
			out = append(out, *sub)
		}
	}
	return out, nil
}

func (f *fakeSubscriptionRepo) BulkUpdateStatus(ids []string, artistID string, status domain.SubscriptionStatus) (int, error) {
	count := 0
	for _, id := range ids {
		if sub, ok := f.byID[id]; ok && sub.ArtistID == artistID {
			sub.Status = status
			f.statusSets[id] = status
			count++
		}
	}
	return count, nil
}

func (f *fakeSubscriptionRepo) CountByArtist(artistID string, status domain.SubscriptionStatus) (int, error) {
	count := 0
	for _, sub := range f.byID {
		if sub.ArtistID != artistID {
			continue
		}
		if status != "" && sub.Status != status {
			continue
		}
		count++
	}
	return count, nil
}

func (f *fakeSubscriptionRepo) ActiveAmountSum(artistID string) (float64, error) {
	var sum float64
	for _, sub := range f.byID {
		if sub.ArtistID == artistID && sub.Status == domain.SubscriptionActive {
			sum += sub.Amount
		}
	}
	return sum, nil
}

func (f *fakeSubscriptionRepo) DailyNewByArtist(artistID string, from, to time.Time) (map[string]int, error) {
	return map[string]int{}, nil
}

type fakeArtistRepo struct {
	byID     map[string]*domain.Artist
	byUserID map[string]*domain.Artist
	updates  map[string]map[string]interface{}
}

func newFakeArtistRepo(artists ...*domain.Artist) *fakeArtistRepo {
	f := &fakeArtistRepo{
		byID:     make(map[string]*domain.Artist),
		byUserID: make(map[string]*domain.Artist),
		updates:  make(map[string]map[string]interface{}),
	}
	for _, a := range artists {
		f.byID[a.ID] = a
		f.byUserID[a.UserID] = a
	}
	return f
}

func (f *fakeArtistRepo) Create(artist *domain.Artist) error {
	f.byID[artist.ID] = artist
	f.byUserID[artist.UserID] = artist
	return nil
}

func (f *fakeArtistRepo) FindByID(id string) (*domain.Artist, error) {
	return f.byID[id], nil
}

func (f *fakeArtistRepo) FindByUserID(userID string) (*domain.Artist, error) {
	return f.byUserID[userID], nil
}

func (f *fakeArtistRepo) Update(id string, updates map[string]interface{}) error {
	f.updates[id] = updates
	return nil
}

type fakeTrackRepo struct {
	byID       map[string]*domain.Track
	listResult []domain.Track
	listTotal  int
	lastFilter repository.TrackFilter
	updates    map[string]map[string]interface{}
}

func newFakeTrackRepo(tracks ...*domain.Track) *fakeTrackRepo {
	f := &fakeTrackRepo{
		byID:    make(map[string]*domain.Track),
		updates: make(map[string]map[string]interface{}),
	}
	for _, t := range tracks {
		f.byID[t.ID] = t
	}
	return f
}

func (f *fakeTrackRepo) Create(track *domain.Track) error {
	f.byID[track.ID] = track
	return nil
}

func (f *fakeTrackRepo) FindByID(id string) (*domain.Track, error) {
	return f.byID[id], nil
}

func (f *fakeTrackRepo) List(filter repository.TrackFilter) ([]domain.Track, int, error) {
	f.lastFilter = filter
	return f.listResult, f.listTotal, nil
}

func (f *fakeTrackRepo) Update(id string, updates map[string]interface{}) error {
	f.updates[id] = updates
	return nil
}

func (f *fakeTrackRepo) Delete(id string) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeTrackRepo) CountByArtist(artistID string) (int, error) {
	count := 0
	for _, t := range f.byID {
		if t.ArtistID == artistID {
			count++
		}
	}
	return count, nil
}

func (f *fakeTrackRepo) PlayLikeTotals(artistID string) (int, int, error) {
	plays, likes := 0, 0
	for _, t := range f.byID {
		if t.ArtistID == artistID {
			plays += t.Plays
			likes += t.Likes
		}
	}
	return plays, likes, nil
}

func (f *fakeTrackRepo) TopByPlays(artistID string, limit int) ([]domain.Track, error) {
	var out []domain.Track
	for _, t := range f.byID {
		if t.ArtistID == artistID {
			out = append(out, *t)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeUserRepo struct {
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
	roles   map[string]string
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	f := &fakeUserRepo{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
		roles:   make(map[string]string),
	}
	for _, u := range users {
		f.byID[u.ID] = u
		f.byEmail[u.Email] = u
	}
	return f
}

func (f *fakeUserRepo) Create(user *domain.User) error {
	f.byID[user.ID] = user
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*domain.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUserRepo) FindByID(id string) (*domain.User, error) {
	return f.byID[id], nil
}

func (f *fakeUserRepo) UpdateRole(id string, role string) error {
	f.roles[id] = role
	return nil
}
