package dto

type UpdateTrackRequest struct {
	Title       *string  `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string  `json:"description" binding:"omitempty,max=1000"`
	Genre       *string  `json:"genre" binding:"omitempty,max=50"`
	Mood        *string  `json:"mood" binding:"omitempty,max=50"`
	Tags        []string `json:"tags" binding:"omitempty,max=10,dive,max=30"`
	Lyrics      *string  `json:"lyrics" binding:"omitempty,max=10000"`
	ReleaseDate *string  `json:"release_date"`
	BPM         *int     `json:"bpm" binding:"omitempty,min=1,max=300"`
	Key         *string  `json:"key" binding:"omitempty,max=10"`
	IsExclusive *bool    `json:"is_exclusive"`
	CoverArt    *string  `json:"cover_art" binding:"omitempty,url"`
}

type TrackResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Genre       string     `json:"genre,omitempty"`
	Mood        string     `json:"mood,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Lyrics      string     `json:"lyrics,omitempty"`
	BPM         *int       `json:"bpm,omitempty"`
	Key         string     `json:"key,omitempty"`
	AudioURL    string     `json:"audio_url"`
	CoverArt    *string    `json:"cover_art,omitempty"`
	Duration    *int       `json:"duration,omitempty"`
	IsExclusive bool       `json:"is_exclusive"`
	IsPublic    bool       `json:"is_public"`
	Plays       int        `json:"plays"`
	Likes       int        `json:"likes"`
	CreatedAt   string     `json:"created_at"`
	Artist      *ArtistRef `json:"artist,omitempty"`
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type TracksListResponse struct {
	Tracks     []TrackResponse `json:"tracks"`
	Pagination Pagination      `json:"pagination"`
}

type UploadTrackResponse struct {
	Success bool          `json:"success"`
	Track   TrackResponse `json:"track"`
}
