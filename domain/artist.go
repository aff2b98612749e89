package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const (
	TierBasic   = "BASIC"
	TierPro     = "PRO"
	TierPremium = "PREMIUM"
)

// SocialLinks is stored as a JSON text column.
type SocialLinks struct {
	Instagram string `json:"instagram,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Spotify   string `json:"spotify,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
}

func (s SocialLinks) Value() (driver.Value, error) {
	if s == (SocialLinks{}) {
		return nil, nil
	}
	return json.Marshal(s)
}

func (s *SocialLinks) Scan(src interface{}) error {
	if src == nil {
		*s = SocialLinks{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported type for social links: %T", src)
	}
}

type Artist struct {
	ID                 string      `gorm:"primary_key" json:"id"`
	UserID             string      `gorm:"not null;unique_index" json:"user_id,omitempty"`
	StageName          string      `gorm:"not null" json:"stage_name"`
	Bio                string      `gorm:"type:text" json:"bio,omitempty"`
	Website            string      `json:"website,omitempty"`
	Logo               string      `json:"logo,omitempty"`
	Tier               string      `gorm:"not null;default:'BASIC'" json:"tier"`
	SubscriptionPrice  *float64    `gorm:"type:decimal(10,2)" json:"subscription_price,omitempty"`
	SubscriptionActive bool        `gorm:"not null;default:false" json:"subscription_active"`
	SocialLinks        SocialLinks `gorm:"type:text" json:"social_links,omitempty"`
	IsActive           bool        `gorm:"not null;default:true" json:"is_active"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}
