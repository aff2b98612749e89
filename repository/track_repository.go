package repository

import (
	"github.com/jinzhu/gorm"

	"github.com/michaelito80us/lufy/domain"
)

// TrackFilter is applied at query-construction time so pagination totals stay
// consistent with the rows returned. HideExclusive is the entitlement
// push-down for non-owner, non-subscriber listings.
type TrackFilter struct {
	ArtistID      string
	Genre         string
	Search        string
	PublicOnly    bool
	HideExclusive bool
	// ExemptArtistID keeps the requester's own exclusive tracks visible when
	// HideExclusive is set on an unscoped listing.
	ExemptArtistID string
	Page           int
	Limit          int
}

type TrackRepository interface {
	Create(track *domain.Track) error
	FindByID(id string) (*domain.Track, error)
	List(filter TrackFilter) ([]domain.Track, int, error)
	Update(id string, updates map[string]interface{}) error
	Delete(id string) error

	CountByArtist(artistID string) (int, error)
	PlayLikeTotals(artistID string) (plays int, likes int, err error)
	TopByPlays(artistID string, limit int) ([]domain.Track, error)
}

type trackRepository struct {
	db *gorm.DB
}

func NewTrackRepository(db *gorm.DB) TrackRepository {
	return &trackRepository{db: db}
}

func (r *trackRepository) Create(track *domain.Track) error {
	return r.db.Create(track).Error
}

func (r *trackRepository) FindByID(id string) (*domain.Track, error) {
	var track domain.Track
	err := r.db.Preload("Artist").Where("id = ?", id).First(&track).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &track, nil
}

func (r *trackRepository) List(filter TrackFilter) ([]domain.Track, int, error) {
	query := r.db.Model(&domain.Track{})

	if filter.ArtistID != "" {
		query = query.Where("artist_id = ?", filter.ArtistID)
	}
	if filter.PublicOnly {
		query = query.Where("is_public = ?", true)
	}
	if filter.Genre != "" {
		query = query.Where("genre = ?", filter.Genre)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	if filter.HideExclusive {
		if filter.ExemptArtistID != "" {
			query = query.Where("is_exclusive = ? OR artist_id = ?", false, filter.ExemptArtistID)
		} else {
			query = query.Where("is_exclusive = ?", false)
		}
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

	var tracks []domain.Track
	err := query.Preload("Artist").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&tracks).Error
	if err != nil {
		return nil, 0, err
	}
	return tracks, total, nil
}

func (r *trackRepository) Update(id string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	res := r.db.Model(&domain.Track{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *trackRepository) Delete(id string) error {
	res := r.db.Where("id = ?", id).Delete(&domain.Track{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *trackRepository) CountByArtist(artistID string) (int, error) {
	var count int
	err := r.db.Model(&domain.Track{}).Where("artist_id = ?", artistID).Count(&count).Error
	return count, err
}

func (r *trackRepository) PlayLikeTotals(artistID string) (int, int, error) {
	var totals struct {
		Plays int
		Likes int
	}
	err := r.db.Model(&domain.Track{}).
		Select("COALESCE(SUM(plays), 0) AS plays, COALESCE(SUM(likes), 0) AS likes").
		Where("artist_id = ?", artistID).
		Scan(&totals).Error
	if err != nil {
		return 0, 0, err
	}
	return totals.Plays, totals.Likes, nil
}

func (r *trackRepository) TopByPlays(artistID string, limit int) ([]domain.Track, error) {
	var tracks []domain.Track
	err := r.db.Where("artist_id = ?", artistID).
		Order("plays DESC").
		Limit(limit).
		Find(&tracks).Error
	if err != nil {
		return nil, err
	}
	return tracks, nil
}
