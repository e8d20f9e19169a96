package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"five-card-trick-go/internal/game"
	"five-card-trick-go/internal/game/common"
	"five-card-trick-go/internal/game/fivecard"
	"five-card-trick-go/internal/models"
	"five-card-trick-go/internal/tracing"

	"github.com/gin-gonic/gin"
)

// sessionRegistry builds sessions per display mode; main can swap in a custom
// registry, tests use the default.
var sessionRegistry = game.DefaultRegistry()

type createSessionRequest struct {
	Mode string `json:"mode"` // canonical|ranked; empty means ranked

	// Opaque display-asset references keyed by card text ("AS", "10H", ...).
	// Passed through to the deck view unchanged, never inspected.
	Assets map[string]string `json:"assets,omitempty"`
}

type selectRequest struct {
	Card string `json:"card"`
}

func CreateSessionHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracing.StartSpan(c.Request.Context(), "handlers.CreateSession")
		defer span.End()

		userID, ok := userIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req createSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
			writeAPIError(c, models.ErrInvalidJSON)
			return
		}

		mode, err := fivecard.ParseDisplayMode(strings.TrimSpace(req.Mode))
		if err != nil {
			writeAPIError(c, err)
			return
		}
		sess, ok := sessionRegistry.New(string(mode))
		if !ok {
			writeAPIError(c, models.ErrInvalidMode)
			return
		}

		rec, err := models.CreateSession(db, userID, string(mode), string(sess.Phase))
		if err != nil {
			writeAPIError(c, err)
			return
		}

		managed := &ManagedSession{Session: sess, OwnerID: userID, Assets: req.Assets}
		defaultSessionManager.Set(rec.ID, managed)

		c.JSON(http.StatusCreated, gin.H{
			"session": rec,
			"state":   buildOwnerView(rec.ID, sess),
		})
	}
}

func GetSessionHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, managed, err := managedSessionFromRequest(c, db)
		if err != nil {
			writeAPIError(c, err)
			return
		}

		userID, _ := userIDFromContext(c)
		managed.Mu.Lock()
		var view SessionView
		if managed.OwnerID == userID {
			view = buildOwnerView(sessionID, managed.Session)
		} else {
			view = buildPublicView(sessionID, managed.Session)
		}
		managed.Mu.Unlock()

		c.JSON(http.StatusOK, view)
	}
}

// DeckHandler returns the session's presentation order with each card tagged
// with its opaque asset reference (empty when the presentation layer supplied
// none).
func DeckHandler(db *sql.DB) gin.HandlerFunc {
	type deckCard struct {
		Rank  common.Rank `json:"rank"`
		Suit  common.Suit `json:"suit"`
		Card  string      `json:"card"`
		Asset string      `json:"asset,omitempty"`
	}
	return func(c *gin.Context) {
		sessionID, managed, err := managedSessionFromRequest(c, db)
		if err != nil {
			writeAPIError(c, err)
			return
		}

		managed.Mu.Lock()
		out := make([]deckCard, 0, len(managed.Session.Deck))
		for _, card := range managed.Session.Deck {
			out = append(out, deckCard{
				Rank:  card.Rank,
				Suit:  card.Suit,
				Card:  card.String(),
				Asset: managed.Assets[card.String()],
			})
		}
		managed.Mu.Unlock()

		c.JSON(http.StatusOK, gin.H{"session_id": sessionID, "deck": out})
	}
}

func SelectCardHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, managed, err := ownedSessionFromRequest(c, db)
		if err != nil {
			writeAPIError(c, err)
			return
		}

		var req selectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeAPIError(c, models.ErrInvalidJSON)
			return
		}
		card, err := common.ParseCard(req.Card)
		if err != nil {
			writeAPIError(c, err)
			return
		}

		managed.Mu.Lock()
		applied := managed.Session.Select(card)
		view := buildOwnerView(sessionID, managed.Session)
		managed.Mu.Unlock()

		broadcastSessionUpdate(sessionID, managed)
		c.JSON(http.StatusOK, gin.H{"applied": applied, "state": view})
	}
}

func CommitHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracing.StartSpan(c.Request.Context(), "handlers.Commit")
		defer span.End()

		sessionID, managed, err := ownedSessionFromRequest(c, db)
		if err != nil {
			writeAPIError(c, err)
			return
		}

		managed.Mu.Lock()
		err = managed.Session.Commit()
		if err != nil {
			managed.Mu.Unlock()
			writeAPIError(c, err)
			return
		}
		enc := managed.Session.Encoding
		phase := string(managed.Session.Phase)
		view := buildOwnerView(sessionID, managed.Session)
		managed.Mu.Unlock()

		if err := models.UpdateSessionPhase(db, sessionID, phase); err != nil {
			writeAPIError(c, err)
			return
		}
		if enc != nil {
			_, err := models.InsertTrick(db, models.Trick{
				SessionID:    sessionID,
				UserID:       managed.OwnerID,
				HiddenCardID: enc.Hidden.MustIdentityID(),
				Arrangement:  strings.Join(cardStrings(enc.Arrangement), " "),
				Rank:         enc.Rank,
				Mode:         string(enc.Mode),
			})
			if err != nil {
				writeAPIError(c, err)
				return
			}
		}

		broadcastSessionUpdate(sessionID, managed)
		c.JSON(http.StatusOK, view)
	}
}

func ToggleRevealHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, managed, err := ownedSessionFromRequest(c, db)
		if err != nil {
			writeAPIError(c, err)
			return
		}

		managed.Mu.Lock()
		applied := managed.Session.ToggleReveal()
		view := buildOwnerView(sessionID, managed.Session)
		managed.Mu.Unlock()

		broadcastSessionUpdate(sessionID, managed)
		c.JSON(http.StatusOK, gin.H{"applied": applied, "state": view})
	}
}

func ResetHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, managed, err := ownedSessionFromRequest(c, db)
		if err != nil {
			writeAPIError(c, err)
			return
		}

		managed.Mu.Lock()
		managed.Session.Reset()
		phase := string(managed.Session.Phase)
		view := buildOwnerView(sessionID, managed.Session)
		managed.Mu.Unlock()

		if err := models.UpdateSessionPhase(db, sessionID, phase); err != nil {
			writeAPIError(c, err)
			return
		}

		broadcastSessionUpdate(sessionID, managed)
		c.JSON(http.StatusOK, view)
	}
}

func sessionIDFromParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, models.ErrSessionNotFound
	}
	return id, nil
}

func managedSessionFromRequest(c *gin.Context, db *sql.DB) (int64, *ManagedSession, error) {
	sessionID, err := sessionIDFromParam(c)
	if err != nil {
		return 0, nil, err
	}
	managed, ok := defaultSessionManager.Get(sessionID)
	if !ok {
		// Row may exist from a previous process; live card state is gone.
		if _, err := models.GetSession(db, sessionID); err != nil {
			return 0, nil, err
		}
		return 0, nil, models.ErrSessionNotFound
	}
	return sessionID, managed, nil
}

func ownedSessionFromRequest(c *gin.Context, db *sql.DB) (int64, *ManagedSession, error) {
	sessionID, managed, err := managedSessionFromRequest(c, db)
	if err != nil {
		return 0, nil, err
	}
	userID, ok := userIDFromContext(c)
	if !ok || managed.OwnerID != userID {
		return 0, nil, models.ErrNotOwner
	}
	return sessionID, managed, nil
}
