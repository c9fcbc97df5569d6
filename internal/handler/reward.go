package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taubit/internal/domain"
	"taubit/internal/middleware"
	"taubit/internal/service"
)

// RewardHandler handles HTTP requests for rewards.
type RewardHandler struct {
	rewardService *service.RewardService
}

// NewRewardHandler creates a new RewardHandler.
func NewRewardHandler(rewardService *service.RewardService) *RewardHandler {
	return &RewardHandler{rewardService: rewardService}
}

// RewardResponse is the HTTP representation of a catalogue reward.
type RewardResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	PointsCost  int    `json:"pointsCost"`
	Category    string `json:"category,omitempty"`
	IsPremium   bool   `json:"isPremium"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

func rewardResponse(reward *domain.Reward) RewardResponse {
	return RewardResponse{
		ID:          reward.ID,
		Name:        reward.Name,
		Description: reward.Description,
		PointsCost:  reward.PointsCost,
		Category:    reward.Category,
		IsPremium:   reward.IsPremium,
		ImageURL:    reward.ImageURL,
	}
}

// ListRewards handles GET /v1/rewards
func (h *RewardHandler) ListRewards(c *gin.Context) {
	rewards, err := h.rewardService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]RewardResponse, 0, len(rewards))
	for _, r := range rewards {
		resp = append(resp, rewardResponse(r))
	}

	respondJSON(c, http.StatusOK, gin.H{"rewards": resp})
}

// RedeemResponse is the HTTP response for redeeming a reward.
type RedeemResponse struct {
	RedemptionID    string    `json:"redemptionId"`
	RewardName      string    `json:"rewardName"`
	PointsCost      int       `json:"pointsCost"`
	RemainingPoints int       `json:"remainingPoints"`
	RedeemedAt      time.Time `json:"redeemedAt"`
}

// RedeemReward handles POST /v1/rewards/:id/redeem
func (h *RewardHandler) RedeemReward(c *gin.Context) {
	result, err := h.rewardService.Redeem(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, RedeemResponse{
		RedemptionID:    result.Redemption.ID,
		RewardName:      result.Redemption.RewardName,
		PointsCost:      result.Redemption.PointsCost,
		RemainingPoints: result.Account.Points,
		RedeemedAt:      result.Redemption.RedeemedAt,
	})
}

// RedemptionResponse is the HTTP representation of a past redemption.
type RedemptionResponse struct {
	ID         string    `json:"id"`
	RewardID   string    `json:"rewardId"`
	RewardName string    `json:"rewardName"`
	PointsCost int       `json:"pointsCost"`
	Status     string    `json:"status"`
	RedeemedAt time.Time `json:"redeemedAt"`
}

// ListRedeemed handles GET /v1/rewards/redeemed
func (h *RewardHandler) ListRedeemed(c *gin.Context) {
	redemptions, err := h.rewardService.History(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]RedemptionResponse, 0, len(redemptions))
	for _, r := range redemptions {
		resp = append(resp, RedemptionResponse{
			ID:         r.ID,
			RewardID:   r.RewardID,
			RewardName: r.RewardName,
			PointsCost: r.PointsCost,
			Status:     string(r.Status),
			RedeemedAt: r.RedeemedAt,
		})
	}

	respondJSON(c, http.StatusOK, gin.H{"redemptions": resp})
}
