package repository

import (
	"strings"
	"time"

	"github.com/jinzhu/gorm"

	"github.com/michaelito80us/lufy/domain"
)

type SubscriberFilter struct {
	ArtistID string
	Status   string
	Page     int
	Limit    int
}

type SubscriptionRepository interface {
	// Create inserts the subscription. A duplicate ACTIVE pair is rejected by
	// the partial unique index; that case is reported as a Conflict error.
	Create(sub *domain.Subscription) error
	FindByID(id string) (*domain.Subscription, error)
	FindActivePair(userID, artistID string, now time.Time) (*domain.Subscription, error)
	// ExpireActivePair flips an ACTIVE row whose window has lapsed to INACTIVE
	// so the partial unique index no longer blocks a fresh subscribe.
	ExpireActivePair(userID, artistID string, now time.Time) error
	ListByUser(userID string) ([]domain.Subscription, error)
	ListByArtist(filter SubscriberFilter) ([]domain.Subscription, int, error)
	UpdateStatus(id string, status domain.SubscriptionStatus) error

	FindByIDsForArtist(ids []string, artistID string) ([]domain.Subscription, error)
	BulkUpdateStatus(ids []string, artistID string, status domain.SubscriptionStatus) (int, error)

	CountByArtist(artistID string, status domain.SubscriptionStatus) (int, error)
	ActiveAmountSum(artistID string) (float64, error)
	DailyNewByArtist(artistID string, from, to time.Time) (map[string]int, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

func (r *subscriptionRepository) Create(sub *domain.Subscription) error {
	if err := r.db.Create(sub).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict("already subscribed to this artist")
		}
		return err
	}
	return nil
}

func (r *subscriptionRepository) FindByID(id string) (*domain.Subscription, error) {
	var sub domain.Subscription
	err := r.db.Preload("Artist").Where("id = ?", id).First(&sub).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *subscriptionRepository) FindActivePair(userID, artistID string, now time.Time) (*domain.Subscription, error) {
	// The partial unique index guarantees at most one ACTIVE row per pair, so
	// the expiry check runs on the loaded row through the shared predicate.
	var sub domain.Subscription
	err := r.db.Preload("Artist").
		Where("user_id = ? AND artist_id = ? AND status = ?",
			userID, artistID, domain.SubscriptionActive).
		First(&sub).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !sub.IsCurrentlyActive(now) {
		return nil, nil
	}
	return &sub, nil
}

func (r *subscriptionRepository) ExpireActivePair(userID, artistID string, now time.Time) error {
	return r.db.Model(&domain.Subscription{}).
		Where("user_id = ? AND artist_id = ? AND status = ? AND expires_at <= ?",
			userID, artistID, domain.SubscriptionActive, now).
		Updates(map[string]interface{}{"status": domain.SubscriptionInactive, "updated_at": now}).Error
}

func (r *subscriptionRepository) ListByUser(userID string) ([]domain.Subscription, error) {
	var subs []domain.Subscription
	err := r.db.Preload("Artist").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *subscriptionRepository) ListByArtist(filter SubscriberFilter) ([]domain.Subscription, int, error) {
	query := r.db.Model(&domain.Subscription{}).Where("artist_id = ?", filter.ArtistID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}

	var subs []domain.Subscription
	err := query.Preload("User").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&subs).Error
	if err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

func (r *subscriptionRepository) UpdateStatus(id string, status domain.SubscriptionStatus) error {
	res := r.db.Model(&domain.Subscription{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *subscriptionRepository) FindByIDsForArtist(ids []string, artistID string) ([]domain.Subscription, error) {
	var subs []domain.Subscription
	err := r.db.Where("id IN (?) AND artist_id = ?", ids, artistID).Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *subscriptionRepository) BulkUpdateStatus(ids []string, artistID string, status domain.SubscriptionStatus) (int, error) {
	res := r.db.Model(&domain.Subscription{}).
		Where("id IN (?) AND artist_id = ?", ids, artistID).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}

func (r *subscriptionRepository) CountByArtist(artistID string, status domain.SubscriptionStatus) (int, error) {
	query := r.db.Model(&domain.Subscription{}).Where("artist_id = ?", artistID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var count int
	err := query.Count(&count).Error
	return count, err
}

func (r *subscriptionRepository) ActiveAmountSum(artistID string) (float64, error) {
	var result struct {
		Total float64
	}
	err := r.db.Model(&domain.Subscription{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("artist_id = ? AND status = ?", artistID, domain.SubscriptionActive).
		Scan(&result).Error
	if err != nil {
		return 0, err
	}
	return result.Total, nil
}

func (r *subscriptionRepository) DailyNewByArtist(artistID string, from, to time.Time) (map[string]int, error) {
	var subs []domain.Subscription
	err := r.db.Select("created_at").
		Where("artist_id = ? AND created_at >= ? AND created_at <= ?", artistID, from, to).
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, sub := range subs {
		counts[sub.CreatedAt.UTC().Format("2006-01-02")]++
	}
	return counts, nil
}
