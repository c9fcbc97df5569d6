package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taubit/internal/domain"
	"taubit/internal/repository"
	"taubit/internal/service"
)

// LineHandler handles HTTP requests for transit lines.
type LineHandler struct {
	ratingService *service.RatingService
}

// NewLineHandler creates a new LineHandler.
func NewLineHandler(ratingService *service.RatingService) *LineHandler {
	return &LineHandler{ratingService: ratingService}
}

// LineResponse is the HTTP representation of a transit line.
type LineResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Rating      float64 `json:"rating"`
	RatingCount int     `json:"ratingCount"`
	Reliability int     `json:"reliability"`
	NoiseLevel  string  `json:"noiseLevel"`
	Occupancy   string  `json:"occupancy"`
	Status      string  `json:"status"`
}

func lineResponse(line *domain.TransitLine) LineResponse {
	return LineResponse{
		ID:          line.ID,
		Name:        line.Name,
		Type:        string(line.Type),
		Rating:      line.AverageRating,
		RatingCount: line.RatingCount,
		Reliability: line.Reliability,
		NoiseLevel:  string(line.NoiseLevel),
		Occupancy:   string(line.Occupancy),
		Status:      string(line.Status),
	}
}

// ListLines handles GET /v1/transit/lines
func (h *LineHandler) ListLines(c *gin.Context) {
	filter := repository.LineFilter{
		Type:   domain.LineType(c.Query("type")),
		Status: domain.LineStatus(c.Query("status")),
	}

	lines, err := h.ratingService.ListLines(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]LineResponse, 0, len(lines))
	for _, line := range lines {
		resp = append(resp, lineResponse(line))
	}

	respondJSON(c, http.StatusOK, gin.H{"lines": resp})
}

// GetLine handles GET /v1/transit/lines/:id
func (h *LineHandler) GetLine(c *gin.Context) {
	line, err := h.ratingService.GetLine(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, lineResponse(line))
}

// RateLineRequest is the HTTP request body for rating a line.
type RateLineRequest struct {
	Rating     int    `json:"rating"`
	NoiseLevel string `json:"noiseLevel,omitempty"`
	Occupancy  string `json:"occupancy,omitempty"`
}

// RateLineResponse is the HTTP response for rating a line.
type RateLineResponse struct {
	LineID         string  `json:"lineId"`
	NewRating      float64 `json:"newRating"`
	RatingCount    int     `json:"ratingCount"`
	NewReliability int     `json:"newReliability"`
	NoiseLevel     string  `json:"noiseLevel"`
	Occupancy      string  `json:"occupancy"`
}

// RateLine handles POST /v1/transit/lines/:id/rate
func (h *LineHandler) RateLine(c *gin.Context) {
	var req RateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	line, err := h.ratingService.RateLine(c.Request.Context(), service.RateLineRequest{
		LineID:     c.Param("id"),
		Rating:     req.Rating,
		NoiseLevel: domain.CrowdLevel(req.NoiseLevel),
		Occupancy:  domain.CrowdLevel(req.Occupancy),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, RateLineResponse{
		LineID:         line.ID,
		NewRating:      line.AverageRating,
		RatingCount:    line.RatingCount,
		NewReliability: line.Reliability,
		NoiseLevel:     string(line.NoiseLevel),
		Occupancy:      string(line.Occupancy),
	})
}
