package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taubit/internal/middleware"
	"taubit/internal/service"
)

// UserHandler handles HTTP requests for the current account.
type UserHandler struct {
	accountService *service.AccountService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(accountService *service.AccountService) *UserHandler {
	return &UserHandler{accountService: accountService}
}

// StatsResponse is the HTTP response for the account stats.
type StatsResponse struct {
	User             UserResponse `json:"user"`
	TotalTrips       int          `json:"totalTrips"`
	TotalDistanceKm  float64      `json:"totalDistanceKm"`
	TotalTimeMinutes float64      `json:"totalTimeMinutes"`
	ExperienceToNext int          `json:"experienceToNext"`
	ProgressPercent  float64      `json:"progressPercent"`
}

// GetStats handles GET /v1/users/me/stats
func (h *UserHandler) GetStats(c *gin.Context) {
	stats, err := h.accountService.GetStats(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, StatsResponse{
		User:             userResponse(stats.User),
		TotalTrips:       stats.User.TotalTrips,
		TotalDistanceKm:  stats.User.TotalDistanceKm,
		TotalTimeMinutes: stats.User.TotalTimeMinutes,
		ExperienceToNext: stats.Progression.ExperienceToNext,
		ProgressPercent:  stats.Progression.ProgressPercent,
	})
}

// UpdateProfileRequest is the HTTP request body for editing the profile.
type UpdateProfileRequest struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// UpdateProfile handles PUT /v1/users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.accountService.UpdateProfile(c.Request.Context(), middleware.CurrentUserID(c), req.Name, req.Avatar)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, userResponse(user))
}

// UpgradePremium handles POST /v1/users/me/premium
func (h *UserHandler) UpgradePremium(c *gin.Context) {
	user, err := h.accountService.UpgradeToPremium(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, userResponse(user))
}

// CancelPremium handles DELETE /v1/users/me/premium
func (h *UserHandler) CancelPremium(c *gin.Context) {
	user, err := h.accountService.CancelPremium(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, userResponse(user))
}
