package session

import "context"

// Repository es el key-value store de la sesión (una sesión por instancia).
// Get devuelve nil, nil si todavía no hay nada guardado.
type Repository interface {
	Get(ctx context.Context) (*PersistedSession, error)
	Set(ctx context.Context, s PersistedSession) error
}
