package memory

import (
	"context"
	"encoding/json"
	"sync"

	"pet-playground/internal/domain/session"
)

// sessionRepo guarda el snapshot serializado, igual que el store del host:
// lo que se lee nunca comparte memoria con lo que se escribió.
type sessionRepo struct {
	mu  sync.RWMutex
	raw []byte
}

func NewSessionRepo() session.Repository {
	return &sessionRepo{}
}

func (r *sessionRepo) Get(ctx context.Context) (*session.PersistedSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.raw == nil {
		return nil, nil
	}
	var s session.PersistedSession
	if err := json.Unmarshal(r.raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepo) Set(ctx context.Context, s session.PersistedSession) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.raw = b
	return nil
}
