package session

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"smartfinance/internal/api"
	"smartfinance/internal/core"
)

// State is the authentication state of one browser session. A session
// starts in StateLoading and settles into exactly one of the other two
// once Resolve returns; rendering must treat Loading as its own state,
// not as "no identity".
type State int

const (
	StateLoading State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "loading"
	}
}

// Session is the resolved view of one browser session. Token is the
// stored bearer credential for authenticated sessions, read fresh from
// durable storage on every resolution.
type Session struct {
	ID       string
	State    State
	Identity *core.Identity
	Token    string
}

// Result reports the outcome of a login or register attempt. Message
// is only meaningful when OK is false.
type Result struct {
	OK      bool
	Message string
}

// CredentialStore is the durable single-key-per-session token storage.
type CredentialStore interface {
	Credential(ctx context.Context, sessionID string) (string, error)
	SetCredential(ctx context.Context, sessionID, token string) error
	DeleteCredential(ctx context.Context, sessionID string) error
}

// AuthBackend is the slice of the API client the manager needs.
type AuthBackend interface {
	Login(ctx context.Context, email, password string) (api.TokenResponse, error)
	Register(ctx context.Context, username, email, password string) (api.TokenResponse, error)
	CurrentUser(ctx context.Context, token string) (core.Identity, error)
}

// Manager drives the session lifecycle: credential resolution on each
// navigation, login/register storing the credential, logout deleting
// it. Backend failures never escape as errors; they demote the session
// or turn into a Result the forms can display.
type Manager struct {
	store   CredentialStore
	backend AuthBackend
}

func NewManager(store CredentialStore, backend AuthBackend) *Manager {
	return &Manager{store: store, backend: backend}
}

// NewSessionID issues an opaque ID for a first-time visitor.
func NewSessionID() string {
	return uuid.NewString()
}

// Resolve settles the session's state. No stored credential means
// anonymous; a stored credential is exchanged for an identity, and a
// rejected credential is deleted and silently demotes to anonymous.
func (m *Manager) Resolve(ctx context.Context, sessionID string) Session {
	sess := Session{ID: sessionID, State: StateLoading}

	token, err := m.store.Credential(ctx, sessionID)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to read stored credential", "session_id", sessionID, "error", err)
		sess.State = StateAnonymous
		return sess
	}
	if token == "" {
		sess.State = StateAnonymous
		return sess
	}

	identity, err := m.backend.CurrentUser(ctx, token)
	if err != nil {
		// Rejected or expired credential: silent logout.
		slog.InfoContext(ctx, "Stored credential rejected, demoting session",
			"session_id", sessionID, "error", err)
		if delErr := m.store.DeleteCredential(ctx, sessionID); delErr != nil {
			slog.ErrorContext(ctx, "Failed to delete rejected credential",
				"session_id", sessionID, "error", delErr)
		}
		sess.State = StateAnonymous
		return sess
	}

	sess.State = StateAuthenticated
	sess.Identity = &identity
	sess.Token = token
	return sess
}

// Login authenticates against the backend and stores the returned
// credential durably before resolving the identity. On failure the
// stored credential and identity are left untouched and the backend's
// error detail (or a generic fallback) is reported.
func (m *Manager) Login(ctx context.Context, sessionID, email, password string) Result {
	tok, err := m.backend.Login(ctx, email, password)
	if err != nil {
		return Result{Message: api.Detail(err, "Login failed")}
	}
	return m.adopt(ctx, sessionID, tok.AccessToken, "Login failed")
}

// Register is symmetric to Login, using the registration endpoint.
func (m *Manager) Register(ctx context.Context, sessionID, username, email, password string) Result {
	tok, err := m.backend.Register(ctx, username, email, password)
	if err != nil {
		return Result{Message: api.Detail(err, "Registration failed")}
	}
	return m.adopt(ctx, sessionID, tok.AccessToken, "Registration failed")
}

// adopt stores a freshly issued credential and confirms it resolves.
func (m *Manager) adopt(ctx context.Context, sessionID, token, fallback string) Result {
	if err := m.store.SetCredential(ctx, sessionID, token); err != nil {
		slog.ErrorContext(ctx, "Failed to store credential", "session_id", sessionID, "error", err)
		return Result{Message: fallback}
	}
	if _, err := m.backend.CurrentUser(ctx, token); err != nil {
		return Result{Message: api.Detail(err, fallback)}
	}
	return Result{OK: true}
}

// Logout deletes the stored credential. No backend call is made; the
// token simply stops being presented.
func (m *Manager) Logout(ctx context.Context, sessionID string) {
	if err := m.store.DeleteCredential(ctx, sessionID); err != nil {
		slog.ErrorContext(ctx, "Failed to delete credential on logout",
			"session_id", sessionID, "error", err)
	}
}
