package testsupport

import (
	"context"
	"testing"

	"reelfx/internal/config"
	"reelfx/internal/projectstore"
)

// MustOpenStore opens a projectstore.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *projectstore.Store {
	t.Helper()

	store, err := projectstore.Open(cfg)
	if err != nil {
		t.Fatalf("projectstore.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

// NewSession starts a running session for tests using the provided store.
func NewSession(t testing.TB, store *projectstore.Store, name string) *projectstore.Session {
	t.Helper()

	session, err := store.StartSession(context.Background(), name, "", "default")
	if err != nil {
		t.Fatalf("store.StartSession: %v", err)
	}
	return session
}
