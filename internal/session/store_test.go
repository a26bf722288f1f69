package session

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreCredentialRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Absent credential reads as empty, not an error.
	tok, err := store.Credential(ctx, "sid-1")
	if err != nil {
		t.Fatalf("Credential: %v", err)
	}
	if tok != "" {
		t.Errorf("expected empty credential, got %q", tok)
	}

	if err := store.SetCredential(ctx, "sid-1", "token-a"); err != nil {
		t.Fatalf("SetCredential: %v", err)
	}
	tok, err = store.Credential(ctx, "sid-1")
	if err != nil {
		t.Fatalf("Credential: %v", err)
	}
	if tok != "token-a" {
		t.Errorf("Credential = %q, want token-a", tok)
	}
}

func TestStoreSetCredentialReplaces(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SetCredential(ctx, "sid-1", "old"); err != nil {
		t.Fatalf("SetCredential: %v", err)
	}
	if err := store.SetCredential(ctx, "sid-1", "new"); err != nil {
		t.Fatalf("SetCredential replace: %v", err)
	}

	tok, _ := store.Credential(ctx, "sid-1")
	if tok != "new" {
		t.Errorf("Credential = %q, want new", tok)
	}
}

func TestStoreDeleteCredential(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SetCredential(ctx, "sid-1", "token"); err != nil {
		t.Fatalf("SetCredential: %v", err)
	}
	if err := store.DeleteCredential(ctx, "sid-1"); err != nil {
		t.Fatalf("DeleteCredential: %v", err)
	}

	tok, _ := store.Credential(ctx, "sid-1")
	if tok != "" {
		t.Errorf("expected deleted credential, got %q", tok)
	}

	// Deleting twice is not an error.
	if err := store.DeleteCredential(ctx, "sid-1"); err != nil {
		t.Errorf("second DeleteCredential: %v", err)
	}
}

func TestStoreSessionsIsolated(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.SetCredential(ctx, "sid-1", "token-1")
	store.SetCredential(ctx, "sid-2", "token-2")
	store.DeleteCredential(ctx, "sid-1")

	if tok, _ := store.Credential(ctx, "sid-2"); tok != "token-2" {
		t.Errorf("sid-2 credential = %q, want token-2", tok)
	}
}

func TestStoreSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "sessions.db")
	ctx := context.Background()

	store, err := NewStore(dbPath)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.SetCredential(ctx, "sid-1", "persisted"); err != nil {
		t.Fatalf("SetCredential: %v", err)
	}
	store.Close()

	reopened, err := NewStore(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	tok, err := reopened.Credential(ctx, "sid-1")
	if err != nil {
		t.Fatalf("Credential after reopen: %v", err)
	}
	if tok != "persisted" {
		t.Errorf("credential did not survive reopen: %q", tok)
	}
}
