package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/michaelito80us/lufy/dto"
	"github.com/michaelito80us/lufy/logger"
	"github.com/michaelito80us/lufy/service"
)

type ArtistHandler struct {
	artists service.ArtistService
}

func NewArtistHandler(artists service.ArtistService) *ArtistHandler {
	return &ArtistHandler{artists: artists}
}

func (h *ArtistHandler) Setup(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.CreateArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn(logger.EventValidationFailure, "Invalid artist setup request", logger.Fields(
			"user_id", userID,
			"error", err.Error(),
		))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	artist, err := h.artists.Setup(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"artist":  artist,
		"message": "artist profile created successfully",
	})
}

func (h *ArtistHandler) Me(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	artist, err := h.artists.GetOwn(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, artist)
}

func (h *ArtistHandler) UpdateMe(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.UpdateArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	artist, err := h.artists.UpdateOwn(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, artist)
}
