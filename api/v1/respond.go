package v1

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskdeck-simple/apperr"
)

// currentUserID pulls the authenticated principal set by AuthMiddleware.
// ok=false means the handler chain is misconfigured; respond 401.
func currentUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "User not authenticated",
		})
		return "", false
	}
	return userID.(string), true
}

// respondError maps the domain error taxonomy onto HTTP statuses.
// Validation and transition failures name the violated constraint; denials
// and internal failures stay generic so nothing about authorization logic
// or internals leaks to the caller.
func respondError(c *gin.Context, err error) {
	var validationErr *apperr.ValidationError
	var transitionErr *apperr.InvalidTransitionError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"success":    false,
			"message":    "Validation failed",
			"violations": validationErr.Violations,
		})
	case errors.As(err, &transitionErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": transitionErr.Error(),
		})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Resource not found",
		})
	case errors.Is(err, apperr.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "Access denied",
		})
	case errors.Is(err, apperr.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"message": "Resource already exists",
		})
	default:
		log.Println("internal error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Server error",
		})
	}
}
