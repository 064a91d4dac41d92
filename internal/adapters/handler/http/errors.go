package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/habitquest/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/habitquest/internal/core/domain"
)

const statusClientClosedRequest = 499

// Product copy shown on the signup and login forms.
var userMessages = map[error]string{
	domain.ErrMissingIdentity:    "Complete all node identity fields.",
	domain.ErrPasswordMismatch:   "Encryption keys do not match.",
	domain.ErrMissingCredentials: "System requires valid credentials.",
}

var badRequest = []error{
	domain.ErrMissingIdentity,
	domain.ErrPasswordMismatch,
	domain.ErrMissingCredentials,
	domain.ErrInvalidEmail,
	domain.ErrPasswordTooShort,
	domain.ErrInvalidUsernameChar,
	domain.ErrHabitNameEmpty,
	domain.ErrHabitNameTooLong,
	domain.ErrHabitDescTooLong,
	domain.ErrHabitInvalidUserID,
	domain.ErrInvalidColor,
	domain.ErrInvalidTime,
	domain.ErrInvalidLog,
	domain.ErrInvalidDate,
	domain.ErrFutureDate,
	domain.ErrInvalidGranularity,
	domain.ErrInsufficientData,
	domain.ErrNoWeeklyData,
}

var notFound = []error{domain.ErrHabitNotFound, domain.ErrUserNotFound}

var conflict = []error{domain.ErrEmailAlreadyExists, domain.ErrUsernameTaken, domain.ErrHabitExists}

var unauthorized = []error{domain.ErrInvalidCredentials, domain.ErrInvalidToken, domain.ErrUnauthorized}

func matchAny(err error, targets []error) (error, bool) {
	for _, target := range targets {
		if errors.Is(err, target) {
			return target, true
		}
	}
	return nil, false
}

func message(target error) string {
	if msg, ok := userMessages[target]; ok {
		return msg
	}
	return target.Error()
}

// handleError maps service errors onto status codes. Anything unrecognised is a
// 500 with a generic body; the cause is attached to the gin context so the
// request logger records it.
func handleError(c *gin.Context, err error) {
	if target, ok := matchAny(err, badRequest); ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": message(target)})
		return
	}
	if target, ok := matchAny(err, notFound); ok {
		c.JSON(http.StatusNotFound, gin.H{"error": message(target)})
		return
	}
	if target, ok := matchAny(err, conflict); ok {
		c.JSON(http.StatusConflict, gin.H{"error": message(target)})
		return
	}
	if target, ok := matchAny(err, unauthorized); ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": message(target)})
		return
	}

	if errors.Is(err, context.Canceled) {
		c.AbortWithStatus(statusClientClosedRequest)
		return
	}
	if errors.Is(err, context.DeadlineExceeded) {
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "request timed out"})
		return
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func currentUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok || userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return "", false
	}
	return userID, true
}
