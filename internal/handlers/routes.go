package handlers

import (
	"database/sql"

	"five-card-trick-go/internal/config"
	"five-card-trick-go/internal/services"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes wires auth endpoints.
func RegisterAuthRoutes(rg *gin.RouterGroup, db *sql.DB, cfg config.Config) {
	rg.POST("/auth/register", RegisterHandler(db, cfg))
	rg.POST("/auth/login", LoginHandler(db, cfg))
	rg.GET("/auth/me", MeHandler(db, cfg))
	rg.POST("/auth/logout", LogoutHandler(cfg))
}

// RegisterSessionRoutes wires trick-session endpoints (auth required).
func RegisterSessionRoutes(rg *gin.RouterGroup, db *sql.DB, patter *services.PatterService) {
	rg.POST("/sessions", CreateSessionHandler(db))
	rg.GET("/sessions/:id", GetSessionHandler(db))
	rg.GET("/sessions/:id/deck", DeckHandler(db))
	rg.POST("/sessions/:id/select", SelectCardHandler(db))
	rg.POST("/sessions/:id/commit", CommitHandler(db))
	rg.POST("/sessions/:id/toggle_reveal", ToggleRevealHandler(db))
	rg.POST("/sessions/:id/reset", ResetHandler(db))
	rg.POST("/sessions/:id/patter", PatterHandler(db, patter))

	rg.GET("/history", HistoryHandler(db))
	rg.GET("/stats/:userId", UserStatsHandler(db))
	rg.GET("/leaderboard", LeaderboardHandler(db))
}

// RegisterCodecRoutes wires the standalone rank/unrank endpoints; they touch
// no card or session state.
func RegisterCodecRoutes(rg *gin.RouterGroup) {
	rg.POST("/codec/rank", RankHandler())
	rg.POST("/codec/unrank", UnrankHandler())
}
