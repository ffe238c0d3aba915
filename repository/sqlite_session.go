package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"

	"github.com/akinalp/lezzet/models"
)

// sqliteSessionRepo, SessionRepository interface'inin SQLite implementasyonu.
type sqliteSessionRepo struct {
	db *sql.DB
}

// NewSQLiteSessionRepo, constructor.
func NewSQLiteSessionRepo(db *sql.DB) SessionRepository {
	return &sqliteSessionRepo{db: db}
}

// Load, persist edilmiş oturumu okur.
// Kayıt yoksa, bozuksa veya yarım ise (role/email'den biri eksik) nil döner —
// yarım oturum hiç oturum yokmuş gibi davranır.
func (r *sqliteSessionRepo) Load(ctx context.Context) (*models.Session, error) {
	raw, ok, err := kvGet(ctx, r.db, keySession)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		log.Printf("[store] malformed session data, treating as logged out: %v", err)
		return nil, nil
	}

	if !session.LoggedIn() {
		return nil, nil
	}

	return &session, nil
}

// Save, oturumu yazar.
func (r *sqliteSessionRepo) Save(ctx context.Context, session *models.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return kvSet(ctx, r.db, keySession, raw)
}

// Clear, persist edilmiş oturumu siler (logout).
func (r *sqliteSessionRepo) Clear(ctx context.Context) error {
	return kvDelete(ctx, r.db, keySession)
}
