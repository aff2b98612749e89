package domain

import "time"

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "ACTIVE"
	SubscriptionInactive  SubscriptionStatus = "INACTIVE"
	SubscriptionCancelled SubscriptionStatus = "CANCELLED"
)

func ValidSubscriptionStatus(s string) bool {
	switch SubscriptionStatus(s) {
	case SubscriptionActive, SubscriptionInactive, SubscriptionCancelled:
		return true
	}
	return false
}

type Subscription struct {
	ID        string             `gorm:"primary_key" json:"id"`
	UserID    string             `gorm:"not null;index" json:"user_id"`
	User      *User              `gorm:"foreignkey:UserID" json:"user,omitempty"`
	ArtistID  string             `gorm:"not null;index" json:"artist_id"`
	Artist    *Artist            `gorm:"foreignkey:ArtistID" json:"artist,omitempty"`
	Status    SubscriptionStatus `gorm:"not null;default:'ACTIVE'" json:"status"`
	StartDate time.Time          `gorm:"not null" json:"start_date"`
	ExpiresAt time.Time          `gorm:"not null" json:"expires_at"`
	Amount    float64            `gorm:"type:decimal(10,2)" json:"amount"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// IsCurrentlyActive is the one definition of "active" used everywhere:
// status ACTIVE and not expired.
func (s *Subscription) IsCurrentlyActive(now time.Time) bool {
	return s.Status == SubscriptionActive && s.ExpiresAt.After(now)
}
