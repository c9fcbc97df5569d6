package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taubit/internal/domain"
	"taubit/internal/middleware"
	"taubit/internal/service"
)

// FriendHandler handles HTTP requests for friendships.
type FriendHandler struct {
	friendService *service.FriendService
}

// NewFriendHandler creates a new FriendHandler.
func NewFriendHandler(friendService *service.FriendService) *FriendHandler {
	return &FriendHandler{friendService: friendService}
}

// FriendshipResponse is the HTTP representation of a friendship.
type FriendshipResponse struct {
	ID           string `json:"id"`
	UserID       string `json:"userId"`
	FriendID     string `json:"friendId"`
	Status       string `json:"status"`
	FriendName   string `json:"friendName,omitempty"`
	FriendAvatar string `json:"friendAvatar,omitempty"`
}

func friendshipResponse(f *domain.Friendship) FriendshipResponse {
	return FriendshipResponse{
		ID:           f.ID,
		UserID:       f.UserID,
		FriendID:     f.FriendID,
		Status:       string(f.Status),
		FriendName:   f.FriendName,
		FriendAvatar: f.FriendAvatar,
	}
}

// RequestFriend handles POST /v1/friends/:id/request
func (h *FriendHandler) RequestFriend(c *gin.Context) {
	friendship, err := h.friendService.Request(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, friendshipResponse(friendship))
}

// AcceptFriend handles POST /v1/friends/:id/accept
func (h *FriendHandler) AcceptFriend(c *gin.Context) {
	friendship, err := h.friendService.Accept(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, friendshipResponse(friendship))
}

// ListFriends handles GET /v1/friends
func (h *FriendHandler) ListFriends(c *gin.Context) {
	friends, err := h.friendService.List(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]FriendshipResponse, 0, len(friends))
	for _, f := range friends {
		resp = append(resp, friendshipResponse(f))
	}

	respondJSON(c, http.StatusOK, gin.H{"friends": resp})
}

// ListPending handles GET /v1/friends/pending
func (h *FriendHandler) ListPending(c *gin.Context) {
	pending, err := h.friendService.Pending(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]FriendshipResponse, 0, len(pending))
	for _, f := range pending {
		resp = append(resp, friendshipResponse(f))
	}

	respondJSON(c, http.StatusOK, gin.H{"requests": resp})
}
