package dto

type SocialLinksRequest struct {
	Instagram string `json:"instagram" binding:"omitempty,max=200"`
	Twitter   string `json:"twitter" binding:"omitempty,max=200"`
	Spotify   string `json:"spotify" binding:"omitempty,max=200"`
	YouTube   string `json:"youtube" binding:"omitempty,max=200"`
}

type CreateArtistRequest struct {
	StageName         string              `json:"stage_name" binding:"required,min=1,max=100"`
	Bio               string              `json:"bio" binding:"omitempty,max=2000"`
	Website           string              `json:"website" binding:"omitempty,max=200"`
	Tier              string              `json:"tier" binding:"omitempty,oneof=BASIC PRO PREMIUM"`
	SubscriptionPrice *float64            `json:"subscription_price" binding:"omitempty,gte=0"`
	SocialLinks       *SocialLinksRequest `json:"social_links"`
}

type UpdateArtistRequest struct {
	StageName         *string             `json:"stage_name" binding:"omitempty,min=1,max=100"`
	Bio               *string             `json:"bio" binding:"omitempty,max=2000"`
	Website           *string             `json:"website" binding:"omitempty,max=200"`
	Tier              *string             `json:"tier" binding:"omitempty,oneof=BASIC PRO PREMIUM"`
	SubscriptionPrice *float64            `json:"subscription_price" binding:"omitempty,gte=0"`
	SocialLinks       *SocialLinksRequest `json:"social_links"`
}

// ArtistRef is the artist projection embedded in track and subscription
// payloads. UserID is only populated for the owner's own view.
type ArtistRef struct {
	ID        string `json:"id"`
	StageName string `json:"stage_name"`
	Logo      string `json:"logo,omitempty"`
	Tier      string `json:"tier,omitempty"`
	UserID    string `json:"user_id,omitempty"`
}
