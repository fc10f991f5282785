package session

import (
	"context"
	"database/sql"

	"gymtrack/internal/client/repositories/localstore"
)

// Mirror exposes the durable side of the session to the request pipeline:
// it can read the token and wipe the record, nothing else. It satisfies
// api.TokenSource and api.SessionClearer so the pipeline never touches
// identity data directly.
type Mirror struct {
	repo localstore.Repository
}

func NewMirror(db *sql.DB) *Mirror {
	return &Mirror{repo: localstore.NewSQLiteRepository(db)}
}

// Token returns the stored bearer token, or "" when logged out.
func (m *Mirror) Token(ctx context.Context) (string, error) {
	v, err := m.repo.Get(ctx, keyToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// ClearSession deletes both mirrored keys. Called by the pipeline on 401.
func (m *Mirror) ClearSession(ctx context.Context) error {
	if err := m.repo.Delete(ctx, keyUser); err != nil {
		return err
	}
	return m.repo.Delete(ctx, keyToken)
}
