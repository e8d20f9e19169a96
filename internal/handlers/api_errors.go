package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"five-card-trick-go/internal/game/permcodec"
	"five-card-trick-go/internal/models"

	"github.com/gin-gonic/gin"
)

func writeAPIError(c *gin.Context, err error) {
	if err == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	// Known sentinel errors
	if errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrSessionNotFound) || errors.Is(err, sql.ErrNoRows) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	// Safe typed validation / permission / conflict errors (do NOT echo raw errors).
	switch {
	case errors.Is(err, models.ErrInvalidJSON):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	case errors.Is(err, models.ErrInvalidCard):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid card"})
		return
	case errors.Is(err, models.ErrInvalidHand):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "hand must be exactly 5 distinct cards"})
		return
	case errors.Is(err, models.ErrInvalidMode):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unknown display mode"})
		return
	case errors.Is(err, models.ErrNotCommitted):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "session not committed"})
		return
	case errors.Is(err, models.ErrNotOwner):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not the session owner"})
		return
	case errors.Is(err, permcodec.ErrOutOfRange):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "rank out of range"})
		return
	case errors.Is(err, permcodec.ErrNotPermutation):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "order is not a permutation of canonical"})
		return
	case errors.Is(err, models.ErrPatterDisabled):
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "patter service not configured"})
		return
	}

	// Unknown/internal errors: log details, return generic message.
	log.Printf("internal error: %v", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
