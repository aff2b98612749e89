package dto

type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type TopTrack struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Plays     int     `json:"plays"`
	Likes     int     `json:"likes"`
	CoverArt  *string `json:"cover_art,omitempty"`
	CreatedAt string  `json:"created_at"`
}

type AnalyticsResponse struct {
	Timeframe         string       `json:"timeframe"`
	TotalTracks       int          `json:"total_tracks"`
	ActiveSubscribers int          `json:"active_subscribers"`
	TotalSubscribers  int          `json:"total_subscribers"`
	TotalPlays        int          `json:"total_plays"`
	TotalLikes        int          `json:"total_likes"`
	MonthlyRevenue    float64      `json:"monthly_revenue"`
	RecentPlays       []DailyCount `json:"recent_plays"`
	TopTracks         []TopTrack   `json:"top_tracks"`
	SubscriberGrowth  []DailyCount `json:"subscriber_growth"`
}
