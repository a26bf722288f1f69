package http

import (
	"context"
	"net/http"

	"smartfinance/internal/log"
	"smartfinance/internal/session"
)

// RouteClass partitions navigable views. Protected views require an
// authenticated session; public-only views (landing, login, register)
// must not be reachable by one.
type RouteClass int

const (
	RoutePublicOnly RouteClass = iota
	RouteProtected
)

// Decision is the guard's verdict for one navigation attempt. It is a
// value, not a side effect: the middleware translates it into a render
// or a redirect.
type Decision int

const (
	// DecisionWait renders a placeholder while the session is still
	// resolving, so no redirect flashes before identity settles.
	DecisionWait Decision = iota
	DecisionRender
	DecisionToLogin
	DecisionToDashboard
)

// Decide evaluates the three-state authorization check. Both redirect
// directions are enforced here: unauthenticated sessions never reach
// protected views, authenticated ones never reach auth forms.
func Decide(state session.State, class RouteClass) Decision {
	switch state {
	case session.StateLoading:
		return DecisionWait
	case session.StateAuthenticated:
		if class == RoutePublicOnly {
			return DecisionToDashboard
		}
		return DecisionRender
	default:
		if class == RouteProtected {
			return DecisionToLogin
		}
		return DecisionRender
	}
}

type ctxKey string

const sessionContextKey ctxKey = "session"

// withSession ensures the browser has a session cookie and resolves
// the session's authentication state before any guard or view runs.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := s.sessionID(w, r)
		sess := s.sessions.Resolve(r.Context(), sid)
		log.FromContext(r.Context()).WithComponent(log.ComponentGuard).Debug("Session resolved",
			log.FieldOperation, log.OpResolve,
			log.FieldSessionID, sid,
			log.FieldAuthState, sess.State.String())

		ctx := context.WithValue(r.Context(), sessionContextKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// guard turns the decision for the route class into control flow.
func (s *Server) guard(class RouteClass) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := sessionFrom(r)
			switch Decide(sess.State, class) {
			case DecisionRender:
				next.ServeHTTP(w, r)
			case DecisionToLogin:
				http.Redirect(w, r, "/login", http.StatusSeeOther)
			case DecisionToDashboard:
				http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			default:
				s.render(w, r, "loading_page", nil)
			}
		})
	}
}

const sessionCookieName = "sf_session"

// sessionID reads the session cookie, issuing a fresh ID on first visit.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	sid := session.NewSessionID()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	log.FromContext(r.Context()).Debug("Issued new session cookie", log.FieldSessionID, sid)
	return sid
}

// sessionFrom returns the resolved session for the request. Handlers
// behind withSession always find one; the zero value reads as loading.
func sessionFrom(r *http.Request) session.Session {
	if sess, ok := r.Context().Value(sessionContextKey).(session.Session); ok {
		return sess
	}
	return session.Session{State: session.StateLoading}
}
