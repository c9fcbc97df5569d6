package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taubit/internal/service"
)

// LeaderboardHandler handles HTTP requests for the weekly leaderboard.
type LeaderboardHandler struct {
	leaderboardService *service.LeaderboardService
}

// NewLeaderboardHandler creates a new LeaderboardHandler.
func NewLeaderboardHandler(leaderboardService *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// LeaderboardRowResponse is one ranked row of the weekly leaderboard.
type LeaderboardRowResponse struct {
	Rank   int    `json:"rank"`
	UserID string `json:"userId"`
	Name   string `json:"name,omitempty"`
	Avatar string `json:"avatar,omitempty"`
	Points int    `json:"points"`
}

// Weekly handles GET /v1/leaderboard/weekly
func (h *LeaderboardHandler) Weekly(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	rows, err := h.leaderboardService.Weekly(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]LeaderboardRowResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, LeaderboardRowResponse{
			Rank:   row.Rank,
			UserID: row.UserID,
			Name:   row.Name,
			Avatar: row.Avatar,
			Points: row.Points,
		})
	}

	respondJSON(c, http.StatusOK, gin.H{"leaderboard": resp})
}
