package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"five-card-trick-go/internal/auth"
	"five-card-trick-go/internal/config"
	"five-card-trick-go/internal/database"
	"five-card-trick-go/internal/middleware"
	"five-card-trick-go/internal/models"

	"github.com/gin-gonic/gin"
)

func testConfig() config.Config {
	return config.Config{
		Addr:         ":0",
		DatabasePath: ":memory:",
		JWTSecret:    "test-secret",
		JWTIssuer:    "five-card-trick",
		JWTTTL:       time.Hour,
		AppEnv:       "development",
	}
}

func newTestServer(t *testing.T) (*gin.Engine, *sql.DB, config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.OpenAndMigrate(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	cfg := testConfig()
	r := gin.New()
	api := r.Group("/api")
	RegisterAuthRoutes(api, db, cfg)
	protected := api.Group("")
	protected.Use(middleware.RequireAuth(cfg))
	RegisterSessionRoutes(protected, db, nil)
	RegisterCodecRoutes(protected)
	return r, db, cfg
}

func testToken(t *testing.T, db *sql.DB, cfg config.Config, username string) (string, int64) {
	t.Helper()
	hash, err := auth.HashPassword("password123")
	if err != nil {
		t.Fatal(err)
	}
	u, err := models.CreateUser(db, username, hash)
	if err != nil {
		t.Fatal(err)
	}
	token, err := auth.GenerateToken(u.ID, u.Username, cfg)
	if err != nil {
		t.Fatal(err)
	}
	return token, u.ID
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func createTestSession(t *testing.T, r *gin.Engine, token, mode string) int64 {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/sessions", token, map[string]any{"mode": mode})
	if w.Code != http.StatusCreated {
		t.Fatalf("create session: status %d body %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	sess, ok := body["session"].(map[string]any)
	if !ok {
		t.Fatalf("missing session in %v", body)
	}
	return int64(sess["id"].(float64))
}

func TestSessionLifecycleOverHTTP(t *testing.T) {
	r, db, cfg := newTestServer(t)
	token, _ := testToken(t, db, cfg, "magician")

	id := createTestSession(t, r, token, "ranked")
	base := fmt.Sprintf("/api/sessions/%d", id)

	// Commit before 5 selections is rejected; phase stays selecting.
	w := doJSON(t, r, http.MethodPost, base+"/commit", token, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("early commit: status %d body %s", w.Code, w.Body.String())
	}

	for _, card := range []string{"7D", "QS", "3C", "2H", "AS"} {
		w := doJSON(t, r, http.MethodPost, base+"/select", token, map[string]any{"card": card})
		if w.Code != http.StatusOK {
			t.Fatalf("select %s: status %d body %s", card, w.Code, w.Body.String())
		}
		if applied := decodeBody(t, w)["applied"]; applied != true {
			t.Fatalf("select %s not applied", card)
		}
	}

	// Duplicate and overflow selections are accepted HTTP-wise but not applied.
	w = doJSON(t, r, http.MethodPost, base+"/select", token, map[string]any{"card": "KD"})
	if w.Code != http.StatusOK || decodeBody(t, w)["applied"] != false {
		t.Fatalf("6th select should be a no-op: status %d body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, base+"/commit", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("commit: status %d body %s", w.Code, w.Body.String())
	}
	view := decodeBody(t, w)
	if view["phase"] != "revealed" {
		t.Fatalf("phase = %v, want revealed", view["phase"])
	}
	if view["rank"] != float64(19) {
		t.Fatalf("rank = %v, want 19", view["rank"])
	}
	if _, exposed := view["hidden"]; exposed {
		t.Fatal("hidden card exposed before toggle")
	}

	// Trick row persisted.
	rec, err := models.GetSession(db, id)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Phase != "revealed" {
		t.Fatalf("persisted phase = %s", rec.Phase)
	}

	w = doJSON(t, r, http.MethodPost, base+"/toggle_reveal", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("toggle: status %d", w.Code)
	}
	state := decodeBody(t, w)["state"].(map[string]any)
	if state["hidden"] != "AS" {
		t.Fatalf("hidden = %v, want AS", state["hidden"])
	}

	w = doJSON(t, r, http.MethodPost, base+"/reset", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("reset: status %d", w.Code)
	}
	view = decodeBody(t, w)
	if view["phase"] != "selecting" || view["hand_count"] != float64(0) {
		t.Fatalf("reset view = %v", view)
	}
}

func TestSessionOwnership(t *testing.T) {
	r, db, cfg := newTestServer(t)
	ownerToken, _ := testToken(t, db, cfg, "owner")
	otherToken, _ := testToken(t, db, cfg, "spectator")

	id := createTestSession(t, r, ownerToken, "canonical")
	base := fmt.Sprintf("/api/sessions/%d", id)

	w := doJSON(t, r, http.MethodPost, base+"/select", otherToken, map[string]any{"card": "AS"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("non-owner select: status %d, want 403", w.Code)
	}

	// Spectators may read the public snapshot.
	w = doJSON(t, r, http.MethodGet, base, otherToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("spectator get: status %d", w.Code)
	}
	if _, hasHand := decodeBody(t, w)["hand"]; hasHand {
		t.Fatal("spectator view leaked the hand")
	}

	// Unauthenticated requests are rejected by middleware.
	w = doJSON(t, r, http.MethodGet, base, "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated get: status %d", w.Code)
	}
}

func TestUnknownModeAndSession(t *testing.T) {
	r, db, cfg := newTestServer(t)
	token, _ := testToken(t, db, cfg, "magician")

	w := doJSON(t, r, http.MethodPost, "/api/sessions", token, map[string]any{"mode": "fancy"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown mode: status %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/sessions/99999", token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing session: status %d", w.Code)
	}
}

func TestCodecEndpoints(t *testing.T) {
	r, db, cfg := newTestServer(t)
	token, _ := testToken(t, db, cfg, "tester")

	w := doJSON(t, r, http.MethodPost, "/api/codec/rank", token, map[string]any{
		"order":     []string{"d", "a", "b", "c"},
		"canonical": []string{"a", "b", "c", "d"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("rank: status %d body %s", w.Code, w.Body.String())
	}
	if got := decodeBody(t, w)["rank"]; got != float64(19) {
		t.Fatalf("rank = %v, want 19", got)
	}

	w = doJSON(t, r, http.MethodPost, "/api/codec/unrank", token, map[string]any{
		"rank":      19,
		"canonical": []string{"a", "b", "c", "d"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("unrank: status %d body %s", w.Code, w.Body.String())
	}
	order := decodeBody(t, w)["order"].([]any)
	want := []string{"d", "a", "b", "c"}
	for i, v := range order {
		if v != want[i] {
			t.Fatalf("unrank order = %v, want %v", order, want)
		}
	}

	w = doJSON(t, r, http.MethodPost, "/api/codec/unrank", token, map[string]any{
		"rank":      25,
		"canonical": []string{"a", "b", "c", "d"},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("out-of-range unrank: status %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/codec/rank", token, map[string]any{
		"order":     []string{"a", "a", "b", "c"},
		"canonical": []string{"a", "b", "c", "d"},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("non-permutation rank: status %d", w.Code)
	}
}

func TestHistoryAndStats(t *testing.T) {
	r, db, cfg := newTestServer(t)
	token, userID := testToken(t, db, cfg, "magician")

	id := createTestSession(t, r, token, "ranked")
	base := fmt.Sprintf("/api/sessions/%d", id)
	for _, card := range []string{"7D", "QS", "3C", "2H", "AS"} {
		doJSON(t, r, http.MethodPost, base+"/select", token, map[string]any{"card": card})
	}
	if w := doJSON(t, r, http.MethodPost, base+"/commit", token, nil); w.Code != http.StatusOK {
		t.Fatalf("commit: status %d", w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/api/history", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("history: status %d", w.Code)
	}
	items := decodeBody(t, w)["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("history items = %d, want 1", len(items))
	}
	first := items[0].(map[string]any)
	if first["rank"] != float64(19) || first["arrangement"] != "7D QS 3C 2H" {
		t.Fatalf("unexpected trick row: %v", first)
	}

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/stats/%d", userID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("stats: status %d", w.Code)
	}
	stats := decodeBody(t, w)
	if stats["tricks_total"] != float64(1) || stats["tricks_ranked"] != float64(1) {
		t.Fatalf("unexpected stats: %v", stats)
	}

	w = doJSON(t, r, http.MethodGet, "/api/leaderboard", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("leaderboard: status %d", w.Code)
	}
}

func TestAuthFlow(t *testing.T) {
	r, _, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]any{
		"username": "newuser", "password": "password123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: status %d body %s", w.Code, w.Body.String())
	}
	token := decodeBody(t, w)["token"].(string)
	if token == "" {
		t.Fatal("empty token")
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": "newuser", "password": "password123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: status %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": "newuser", "password": "wrongpassword",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad login: status %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/auth/me", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me: status %d", w.Code)
	}
}
