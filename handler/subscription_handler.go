package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/michaelito80us/lufy/domain"
	"github.com/michaelito80us/lufy/dto"
	"github.com/michaelito80us/lufy/service"
)

type SubscriptionHandler struct {
	subs service.SubscriptionService
}

func NewSubscriptionHandler(subs service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subs: subs}
}

func (h *SubscriptionHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, err := h.subs.Subscribe(userID, req.ArtistID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toSubscriptionResponse(sub))
}

func (h *SubscriptionHandler) ListOwn(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	subs, err := h.subs.ListOwn(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]dto.SubscriptionResponse, 0, len(subs))
	for i := range subs {
		out = append(out, toSubscriptionResponse(&subs[i]))
	}

	c.JSON(http.StatusOK, dto.SubscriptionsListResponse{
		Subscriptions: out,
		Count:         len(out),
	})
}

func (h *SubscriptionHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	sub, err := h.subs.GetOwn(c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toSubscriptionResponse(sub))
}

func (h *SubscriptionHandler) Update(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, err := h.subs.UpdateOwnStatus(c.Param("id"), userID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toSubscriptionResponse(sub))
}

func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.subs.Cancel(c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "subscription cancelled successfully"})
}

func (h *SubscriptionHandler) Check(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	artistID := c.Query("artist_id")
	if artistID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "artist id is required"})
		return
	}

	check, err := h.subs.CheckAccess(userID, artistID)
	if err != nil {
		respondError(c, err)
		return
	}

	out := dto.CheckAccessResponse{
		HasAccess: check.HasAccess,
		IsOwner:   check.IsOwner,
	}
	if check.Subscription != nil {
		sub := toSubscriptionResponse(check.Subscription)
		out.Subscription = &sub
	}
	if !check.HasAccess {
		out.Price = check.Price
	}

	c.JSON(http.StatusOK, out)
}

func toSubscriptionResponse(sub *domain.Subscription) dto.SubscriptionResponse {
	out := dto.SubscriptionResponse{
		ID:        sub.ID,
		UserID:    sub.UserID,
		ArtistID:  sub.ArtistID,
		Status:    string(sub.Status),
		StartDate: sub.StartDate.UTC().Format(time.RFC3339),
		ExpiresAt: sub.ExpiresAt.UTC().Format(time.RFC3339),
		Amount:    sub.Amount,
		CreatedAt: sub.CreatedAt.UTC().Format(time.RFC3339),
	}
	if sub.Artist != nil {
		out.Artist = &dto.ArtistRef{
			ID:        sub.Artist.ID,
			StageName: sub.Artist.StageName,
			Logo:      sub.Artist.Logo,
			Tier:      sub.Artist.Tier,
		}
	}
	return out
}
