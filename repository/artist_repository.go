package repository

import (
	"github.com/jinzhu/gorm"

	"github.com/michaelito80us/lufy/domain"
)

type ArtistRepository interface {
	// Create inserts the artist profile and promotes the owning user to the
	// artist role in the same transaction.
	Create(artist *domain.Artist) error
	FindByID(id string) (*domain.Artist, error)
	FindByUserID(userID string) (*domain.Artist, error)
	Update(id string, updates map[string]interface{}) error
}

type artistRepository struct {
	db *gorm.DB
}

func NewArtistRepository(db *gorm.DB) ArtistRepository {
	return &artistRepository{db: db}
}

func (r *artistRepository) Create(artist *domain.Artist) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	if err := tx.Create(artist).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Model(&domain.User{}).Where("id = ?", artist.UserID).
		Update("role", domain.RoleArtist).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

func (r *artistRepository) FindByID(id string) (*domain.Artist, error) {
	var artist domain.Artist
	err := r.db.Where("id = ?", id).First(&artist).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &artist, nil
}

func (r *artistRepository) FindByUserID(userID string) (*domain.Artist, error) {
	var artist domain.Artist
	err := r.db.Where("user_id = ?", userID).First(&artist).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &artist, nil
}

func (r *artistRepository) Update(id string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	res := r.db.Model(&domain.Artist{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
