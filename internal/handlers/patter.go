package handlers

import (
	"database/sql"
	"net/http"

	"five-card-trick-go/internal/game/fivecard"
	"five-card-trick-go/internal/models"
	"five-card-trick-go/internal/services"
	"five-card-trick-go/internal/tracing"

	"github.com/gin-gonic/gin"
)

// PatterHandler generates magician patter for a committed session. The
// service is optional; without an API key the endpoint returns 503 and the
// rest of the API is unaffected.
func PatterHandler(db *sql.DB, patter *services.PatterService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartSpan(c.Request.Context(), "handlers.PatterHandler")
		defer span.End()

		if !patter.Enabled() {
			writeAPIError(c, models.ErrPatterDisabled)
			return
		}

		_, managed, err := ownedSessionFromRequest(c, db)
		if err != nil {
			writeAPIError(c, err)
			return
		}

		managed.Mu.Lock()
		var enc *fivecard.Encoding
		if managed.Session.Encoding != nil {
			copied := *managed.Session.Encoding
			enc = &copied
		}
		managed.Mu.Unlock()

		text, err := patter.Generate(ctx, enc)
		if err != nil {
			writeAPIError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"patter": text})
	}
}
