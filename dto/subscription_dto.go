package dto

type CreateSubscriptionRequest struct {
	ArtistID string `json:"artist_id" binding:"required"`
}

type UpdateSubscriptionRequest struct {
	Status string `json:"status" binding:"required,oneof=ACTIVE INACTIVE CANCELLED"`
}

type SubscriptionResponse struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	ArtistID  string     `json:"artist_id"`
	Status    string     `json:"status"`
	StartDate string     `json:"start_date"`
	ExpiresAt string     `json:"expires_at"`
	Amount    float64    `json:"amount"`
	CreatedAt string     `json:"created_at"`
	Artist    *ArtistRef `json:"artist,omitempty"`
}

type SubscriptionsListResponse struct {
	Subscriptions []SubscriptionResponse `json:"subscriptions"`
	Count         int                    `json:"count"`
}

// CheckAccessResponse drives the client-side gate: whether the overlay is
// shown and at what price the subscribe action is offered.
type CheckAccessResponse struct {
	HasAccess    bool                  `json:"has_access"`
	IsOwner      bool                  `json:"is_owner"`
	Subscription *SubscriptionResponse `json:"subscription"`
	Price        *float64              `json:"price,omitempty"`
}

type SubscriberResponse struct {
	SubscriptionResponse
	UserName  string `json:"user_name,omitempty"`
	UserEmail string `json:"user_email,omitempty"`
	UserImage string `json:"user_image,omitempty"`
}

type SubscribersListResponse struct {
	Subscribers []SubscriberResponse `json:"subscribers"`
	Pagination  Pagination           `json:"pagination"`
}

type BulkUpdateSubscribersRequest struct {
	SubscriptionIDs []string `json:"subscription_ids" binding:"required,min=1"`
	Status          string   `json:"status" binding:"required,oneof=ACTIVE INACTIVE CANCELLED"`
	Reason          string   `json:"reason" binding:"omitempty,max=500"`
}
