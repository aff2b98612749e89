package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/michaelito80us/lufy/dto"
	"github.com/michaelito80us/lufy/logger"
	"github.com/michaelito80us/lufy/middleware"
	"github.com/michaelito80us/lufy/service"
)

type TrackHandler struct {
	tracks   service.TrackService
	audioCfg *middleware.FileUploadConfig
	imageCfg *middleware.FileUploadConfig
}

func NewTrackHandler(tracks service.TrackService, audioCfg, imageCfg *middleware.FileUploadConfig) *TrackHandler {
	return &TrackHandler{tracks: tracks, audioCfg: audioCfg, imageCfg: imageCfg}
}

func (h *TrackHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit > 100 {
		limit = 100
	}

	query := service.TrackListQuery{
		ArtistID:   c.Query("artist_id"),
		PublicOnly: c.Query("public") == "true",
		Genre:      c.Query("genre"),
		Search:     c.Query("search"),
		Page:       page,
		Limit:      limit,
	}

	out, err := h.tracks.List(userID, query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

func (h *TrackHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	trackID := c.Param("id")
	if trackID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "track id is required"})
		return
	}

	track, err := h.tracks.Get(userID, trackID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, track)
}

func (h *TrackHandler) Update(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	trackID := c.Param("id")
	var req dto.UpdateTrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	track, err := h.tracks.Update(userID, trackID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, track)
}

func (h *TrackHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	trackID := c.Param("id")
	if err := h.tracks.Delete(userID, trackID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "track deleted successfully"})
}

func (h *TrackHandler) Upload(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	if len(title) > 200 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title too long"})
		return
	}

	audioHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided"})
		return
	}
	if err := middleware.ValidateUploadedFile(audioHeader, h.audioCfg); err != nil {
		logger.Warn(logger.EventValidationFailure, "Rejected audio upload", logger.Fields(
			"user_id", userID,
			"filename", audioHeader.Filename,
			"error", err.Error(),
		))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	audio, err := audioHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer audio.Close()

	if err := middleware.ValidateFileContent(audio, "audio/"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := service.UploadTrackInput{
		Title:         title,
		Description:   c.PostForm("description"),
		Genre:         c.PostForm("genre"),
		Mood:          c.PostForm("mood"),
		Key:           c.PostForm("key"),
		IsExclusive:   c.PostForm("is_exclusive") == "true",
		IsPublic:      c.PostForm("is_public") != "false",
		Audio:         audio,
		AudioFilename: middleware.SanitizeFilename(audioHeader.Filename),
	}

	if bpmRaw := c.PostForm("bpm"); bpmRaw != "" {
		bpm, err := strconv.Atoi(bpmRaw)
		if err != nil || bpm < 1 || bpm > 300 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bpm"})
			return
		}
		input.BPM = &bpm
	}

	if tagsRaw := c.PostForm("tags"); tagsRaw != "" {
		var tags []string
		if err := json.Unmarshal([]byte(tagsRaw), &tags); err != nil {
			logger.Warn(logger.EventValidationFailure, "Failed to parse tags", logger.Fields(
				"user_id", userID,
				"error", err.Error(),
			))
		} else {
			input.Tags = tags
		}
	}

	if coverHeader, err := c.FormFile("cover_art"); err == nil {
		if err := middleware.ValidateUploadedFile(coverHeader, h.imageCfg); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		cover, err := coverHeader.Open()
		if err != nil {
			respondError(c, err)
			return
		}
		defer cover.Close()
		if err := middleware.ValidateFileContent(cover, "image/"); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		input.Cover = cover
		input.CoverFilename = middleware.SanitizeFilename(coverHeader.Filename)
	}

	track, err := h.tracks.Upload(userID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.UploadTrackResponse{Success: true, Track: *track})
}

func (h *TrackHandler) UploadCoverArt(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	trackID := c.PostForm("track_id")
	if trackID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "track id is required"})
		return
	}

	coverHeader, err := c.FormFile("cover_art")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided"})
		return
	}
	if err := middleware.ValidateUploadedFile(coverHeader, h.imageCfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cover, err := coverHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer cover.Close()

	if err := middleware.ValidateFileContent(cover, "image/"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	track, err := h.tracks.SetCoverArt(userID, trackID, middleware.SanitizeFilename(coverHeader.Filename), cover)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cover_art_url": track.CoverArt,
		"track":         track,
	})
}

func (h *TrackHandler) RemoveCoverArt(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	trackID := c.Query("track_id")
	if trackID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "track id is required"})
		return
	}

	track, err := h.tracks.RemoveCoverArt(userID, trackID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "cover art removed successfully",
		"track":   track,
	})
}
