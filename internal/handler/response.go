package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taubit/internal/auth"
	"taubit/internal/repository"
	"taubit/internal/rewards"
	"taubit/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request. A second tap-in and a tap-out
	// without an active trip are client mistakes, not conflicts.
	case errors.Is(err, service.ErrInvalidUserID),
		errors.Is(err, service.ErrInvalidLineID),
		errors.Is(err, service.ErrInvalidRewardID),
		errors.Is(err, service.ErrInvalidSignup),
		errors.Is(err, service.ErrDuplicateActiveTrip),
		errors.Is(err, service.ErrNoActiveTrip),
		errors.Is(err, service.ErrCannotFriendSelf),
		errors.Is(err, service.ErrInsufficientPoints),
		errors.Is(err, rewards.ErrInvalidRating):
		return http.StatusBadRequest

	// Authentication errors
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return http.StatusUnauthorized

	// Business rule errors
	case errors.Is(err, service.ErrPremiumRequired):
		return http.StatusForbidden

	// Conflict errors
	case errors.Is(err, service.ErrAccountBusy),
		errors.Is(err, service.ErrLineBusy),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrRewardUnavailable),
		errors.Is(err, service.ErrFriendRequestExists),
		errors.Is(err, service.ErrFriendRequestNotPending):
		return http.StatusConflict

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
