package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList is stored as a JSON text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type for string list: %T", src)
	}
}

type Track struct {
	ID          string     `gorm:"primary_key" json:"id"`
	ArtistID    string     `gorm:"not null;index" json:"artist_id"`
	Artist      *Artist    `gorm:"foreignkey:ArtistID" json:"artist,omitempty"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	Genre       string     `json:"genre,omitempty"`
	Mood        string     `json:"mood,omitempty"`
	Tags        StringList `gorm:"type:text" json:"tags,omitempty"`
	Lyrics      string     `gorm:"type:text" json:"lyrics,omitempty"`
	BPM         *int       `json:"bpm,omitempty"`
	Key         string     `json:"key,omitempty"`
	AudioURL    string     `gorm:"not null" json:"audio_url"`
	CoverArt    *string    `json:"cover_art,omitempty"`
	Duration    *int       `json:"duration,omitempty"`
	IsExclusive bool       `gorm:"not null;default:false" json:"is_exclusive"`
	IsPublic    bool       `gorm:"not null;default:true" json:"is_public"`
	Plays       int        `gorm:"not null;default:0" json:"plays"`
	Likes       int        `gorm:"not null;default:0" json:"likes"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
