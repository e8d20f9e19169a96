package models

import (
	"database/sql"
	"time"
)

// Trick is one committed encoding: which card was hidden and how the four
// visible cards were arranged.
type Trick struct {
	ID           int64     `json:"id"`
	SessionID    int64     `json:"session_id"`
	UserID       int64     `json:"user_id"`
	HiddenCardID int       `json:"hidden_card_id"`
	Arrangement  string    `json:"arrangement"` // space-separated card strings
	Rank         int       `json:"rank"`
	Mode         string    `json:"mode"`
	CreatedAt    time.Time `json:"created_at"`
}

func InsertTrick(db *sql.DB, t Trick) (int64, error) {
	res, err := db.Exec(
		`INSERT INTO tricks(session_id, user_id, hidden_card_id, arrangement, rank, mode)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.SessionID, t.UserID, t.HiddenCardID, t.Arrangement, t.Rank, t.Mode,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func ListTricksByUser(db *sql.DB, userID int64, limit int) ([]Trick, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := db.Query(
		`SELECT id, session_id, user_id, hidden_card_id, arrangement, rank, mode, created_at
		 FROM tricks WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Trick
	for rows.Next() {
		var t Trick
		if err := rows.Scan(&t.ID, &t.SessionID, &t.UserID, &t.HiddenCardID,
			&t.Arrangement, &t.Rank, &t.Mode, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// UserStats aggregates a user's trick history for the stats endpoint.
type UserStats struct {
	UserID         int64  `json:"user_id"`
	Username       string `json:"username"`
	TricksTotal     int64  `json:"tricks_total"`
	TricksRanked    int64  `json:"tricks_ranked"`
	TricksCanonical int64  `json:"tricks_canonical"`
}

func GetUserStats(db *sql.DB, userID int64) (*UserStats, error) {
	u, err := GetUserByID(db, userID)
	if err != nil {
		return nil, err
	}
	st := &UserStats{UserID: u.ID, Username: u.Username}
	err = db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN mode = 'ranked' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN mode = 'canonical' THEN 1 ELSE 0 END), 0)
		 FROM tricks WHERE user_id = ?`,
		userID,
	).Scan(&st.TricksTotal, &st.TricksRanked, &st.TricksCanonical)
	if err != nil {
		return nil, err
	}
	return st, nil
}

// LeaderboardEntry ranks users by tricks performed.
type LeaderboardEntry struct {
	UserID      int64  `json:"user_id"`
	Username    string `json:"username"`
	TricksTotal int64  `json:"tricks_total"`
}

func ListLeaderboard(db *sql.DB, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	rows, err := db.Query(
		`SELECT u.id, u.username, COUNT(t.id) AS n
		 FROM users u JOIN tricks t ON t.user_id = u.id
		 GROUP BY u.id, u.username
		 ORDER BY n DESC, u.username ASC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.TricksTotal); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
