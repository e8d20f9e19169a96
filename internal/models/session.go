package models

import (
	"database/sql"
	"errors"
	"time"
)

// SessionRecord is the persisted shell of a trick session. The live card
// state is owned in-process; the row carries ownership, mode, and phase so
// history and stats survive restarts.
type SessionRecord struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Mode      string    `json:"mode"`
	Phase     string    `json:"phase"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func CreateSession(db *sql.DB, ownerID int64, mode, phase string) (*SessionRecord, error) {
	res, err := db.Exec(
		`INSERT INTO sessions(owner_id, mode, phase) VALUES (?, ?, ?)`,
		ownerID, mode, phase,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return GetSession(db, id)
}

func GetSession(db *sql.DB, id int64) (*SessionRecord, error) {
	var s SessionRecord
	err := db.QueryRow(
		`SELECT id, owner_id, mode, phase, created_at, updated_at FROM sessions WHERE id = ?`,
		id,
	).Scan(&s.ID, &s.OwnerID, &s.Mode, &s.Phase, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func UpdateSessionPhase(db *sql.DB, id int64, phase string) error {
	res, err := db.Exec(
		`UPDATE sessions SET phase = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		phase, id,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}
