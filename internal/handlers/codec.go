package handlers

import (
	"net/http"

	"five-card-trick-go/internal/game/permcodec"
	"five-card-trick-go/internal/models"

	"github.com/gin-gonic/gin"
)

// The codec endpoints operate on opaque string items, independent of the card
// domain, so the rank/unrank bijection can be exercised standalone.

type rankRequest struct {
	Order     []string `json:"order"`
	Canonical []string `json:"canonical"`
}

type unrankRequest struct {
	Rank      int      `json:"rank"`
	Canonical []string `json:"canonical"`
}

func RankHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req rankRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeAPIError(c, models.ErrInvalidJSON)
			return
		}
		r, err := permcodec.Rank(req.Order, req.Canonical)
		if err != nil {
			writeAPIError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"rank": r})
	}
}

func UnrankHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req unrankRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeAPIError(c, models.ErrInvalidJSON)
			return
		}
		order, err := permcodec.Unrank(req.Rank, req.Canonical)
		if err != nil {
			writeAPIError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}
