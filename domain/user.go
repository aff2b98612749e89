package domain

import "time"

const (
	RoleSubscriber = "SUBSCRIBER"
	RoleArtist     = "ARTIST"
	RoleAdmin      = "ADMIN"
)

type User struct {
	ID        string    `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null;unique_index" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Image     string    `json:"image,omitempty"`
	Role      string    `gorm:"not null;default:'SUBSCRIBER'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
