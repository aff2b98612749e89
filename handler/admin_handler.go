package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/michaelito80us/lufy/domain"
	"github.com/michaelito80us/lufy/dto"
	"github.com/michaelito80us/lufy/logger"
	"github.com/michaelito80us/lufy/service"
)

// AdminHandler serves the artist dashboard: subscriber management and
// aggregate analytics for the requester's own artist profile.
type AdminHandler struct {
	subs      service.SubscriptionService
	analytics service.AnalyticsService
}

func NewAdminHandler(subs service.SubscriptionService, analytics service.AnalyticsService) *AdminHandler {
	return &AdminHandler{subs: subs, analytics: analytics}
}

func (h *AdminHandler) ListSubscribers(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	subs, total, err := h.subs.ListSubscribers(userID, c.Query("status"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]dto.SubscriberResponse, 0, len(subs))
	for i := range subs {
		out = append(out, toSubscriberResponse(&subs[i]))
	}

	pages := (total + limit - 1) / limit

	c.JSON(http.StatusOK, dto.SubscribersListResponse{
		Subscribers: out,
		Pagination: dto.Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
	})
}

func (h *AdminHandler) BulkUpdateSubscribers(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.BulkUpdateSubscribersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn(logger.EventValidationFailure, "Invalid bulk update request", logger.Fields(
			"user_id", userID,
			"error", err.Error(),
		))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.subs.BulkUpdateSubscribers(userID, req.SubscriptionIDs, req.Status, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "subscriptions updated successfully",
		"updated": updated,
	})
}

func (h *AdminHandler) Analytics(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	out, err := h.analytics.ArtistAnalytics(userID, c.DefaultQuery("timeframe", "30d"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

func toSubscriberResponse(sub *domain.Subscription) dto.SubscriberResponse {
	out := dto.SubscriberResponse{SubscriptionResponse: toSubscriptionResponse(sub)}
	if sub.User != nil {
		out.UserName = sub.User.Name
		out.UserEmail = sub.User.Email
		out.UserImage = sub.User.Image
	}
	return out
}
