package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"taubit/internal/domain"
	"taubit/internal/middleware"
	"taubit/internal/service"
)

// TripHandler handles HTTP requests for trips.
type TripHandler struct {
	tripService *service.TripService
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripService *service.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

// StartTripRequest is the HTTP request body for tapping in.
type StartTripRequest struct {
	TransitLineID string  `json:"transitLineId,omitempty"`
	StartLat      float64 `json:"startLat,omitempty"`
	StartLng      float64 `json:"startLng,omitempty"`
}

// TripResponse is the HTTP representation of a trip.
type TripResponse struct {
	TripID          string     `json:"tripId"`
	TransitLineID   string     `json:"transitLineId,omitempty"`
	TransitLineName string     `json:"transitLineName,omitempty"`
	TransitLineType string     `json:"transitLineType,omitempty"`
	StartTime       time.Time  `json:"startTime"`
	EndTime         *time.Time `json:"endTime,omitempty"`
	DistanceKm      float64    `json:"distanceKm"`
	DurationMinutes float64    `json:"durationMinutes"`
	PointsEarned    int        `json:"pointsEarned"`
	Status          string     `json:"status"`
}

func tripResponse(trip *domain.Trip) TripResponse {
	resp := TripResponse{
		TripID:          trip.ID,
		TransitLineID:   trip.TransitLineID,
		TransitLineName: trip.TransitLineName,
		TransitLineType: string(trip.TransitLineType),
		StartTime:       trip.StartTime,
		DistanceKm:      trip.DistanceKm,
		DurationMinutes: trip.DurationMinutes,
		PointsEarned:    trip.PointsEarned,
		Status:          string(trip.Status),
	}
	if !trip.EndTime.IsZero() {
		t := trip.EndTime
		resp.EndTime = &t
	}
	return resp
}

// StartTrip handles POST /v1/transit/trip/start
func (h *TripHandler) StartTrip(c *gin.Context) {
	var req StartTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	trip, err := h.tripService.StartTrip(c.Request.Context(), service.StartTripRequest{
		UserID:        middleware.CurrentUserID(c),
		TransitLineID: req.TransitLineID,
		StartLocation: domain.LatLng{Lat: req.StartLat, Lng: req.StartLng},
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, tripResponse(trip))
}

// EndTripRequest is the HTTP request body for tapping out.
type EndTripRequest struct {
	EndLat float64 `json:"endLat,omitempty"`
	EndLng float64 `json:"endLng,omitempty"`
}

// EndTripResponse is the HTTP response for tapping out.
type EndTripResponse struct {
	Trip             TripResponse `json:"trip"`
	PointsEarned     int          `json:"pointsEarned"`
	TotalPoints      int          `json:"totalPoints"`
	Experience       int          `json:"experience"`
	Level            int          `json:"level"`
	LeveledUp        bool         `json:"leveledUp"`
	ExperienceToNext int          `json:"experienceToNext"`
}

// EndTrip handles POST /v1/transit/trip/end
func (h *TripHandler) EndTrip(c *gin.Context) {
	var req EndTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.tripService.EndTrip(c.Request.Context(), service.EndTripRequest{
		UserID:      middleware.CurrentUserID(c),
		EndLocation: domain.LatLng{Lat: req.EndLat, Lng: req.EndLng},
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, EndTripResponse{
		Trip:             tripResponse(result.Trip),
		PointsEarned:     result.Trip.PointsEarned,
		TotalPoints:      result.Account.Points,
		Experience:       result.Account.Experience,
		Level:            result.Account.Level,
		LeveledUp:        result.Progression.LeveledUp,
		ExperienceToNext: result.Progression.ExperienceToNext,
	})
}

// ListTripsResponse is the HTTP response for the trip history.
type ListTripsResponse struct {
	Trips []TripResponse `json:"trips"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
	Total int            `json:"total"`
	Pages int            `json:"pages"`
}

// ListTrips handles GET /v1/transit/trips
func (h *TripHandler) ListTrips(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := h.tripService.ListTrips(c.Request.Context(), middleware.CurrentUserID(c), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	trips := make([]TripResponse, 0, len(result.Trips))
	for _, trip := range result.Trips {
		trips = append(trips, tripResponse(trip))
	}

	respondJSON(c, http.StatusOK, ListTripsResponse{
		Trips: trips,
		Page:  result.Page,
		Limit: result.Limit,
		Total: result.Total,
		Pages: result.Pages,
	})
}
