package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"pet-playground/internal/domain/session"
)

const sessionsSchema = `
	CREATE TABLE IF NOT EXISTS pet_sessions (
		id         TEXT PRIMARY KEY,
		state      JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)
`

// SessionRepo guarda el snapshot de una sesión (fila por id) como jsonb.
type SessionRepo struct {
	db  *sql.DB
	id  string
	now func() time.Time
}

func NewSessionRepo(db *sql.DB, sessionID string) *SessionRepo {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		sessionID = "default"
	}
	return &SessionRepo{db: db, id: sessionID, now: time.Now}
}

// EnsureSchema crea la tabla si no existe.
func (r *SessionRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, sessionsSchema)
	return err
}

func (r *SessionRepo) Get(ctx context.Context) (*session.PersistedSession, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT state
		FROM pet_sessions
		WHERE id = $1
	`, r.id)

	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	var s session.PersistedSession
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepo) Set(ctx context.Context, s session.PersistedSession) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO pet_sessions (id, state, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET state = EXCLUDED.state,
			updated_at = EXCLUDED.updated_at
	`,
		r.id,
		string(raw),
		r.now(),
	)
	return err
}
