package http

import (
	"encoding/json"
	"net/http"
	"time"

	"smartfinance/internal/log"
)

// authView carries inline form state for the login and register pages.
type authView struct {
	Error    string
	Email    string
	Username string
}

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "landing_page", nil)
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "login_page", authView{})
}

// handleLogin submits credentials to the backend via the session
// manager. Failure renders the form again with the backend's message;
// the stored credential is untouched.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	email := sanitizeInput(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	sess := sessionFrom(r)

	res := s.sessions.Login(r.Context(), sess.ID, email, password)
	if !res.OK {
		log.FromContext(r.Context()).InfoContext(r.Context(), "Login rejected",
			log.FieldOperation, log.OpLogin, log.FieldSessionID, sess.ID)
		s.render(w, r, "login_page", authView{Error: res.Message, Email: email})
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "register_page", authView{})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	username := sanitizeInput(r.PostFormValue("username"))
	email := sanitizeInput(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	sess := sessionFrom(r)

	res := s.sessions.Register(r.Context(), sess.ID, username, email, password)
	if !res.OK {
		log.FromContext(r.Context()).InfoContext(r.Context(), "Registration rejected",
			log.FieldOperation, log.OpRegister, log.FieldSessionID, sess.ID)
		s.render(w, r, "register_page", authView{Error: res.Message, Email: email, Username: username})
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// handleLogout deletes the stored credential and lands on the public
// view. No backend call is made.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	s.sessions.Logout(r.Context(), sess.ID)
	log.FromContext(r.Context()).InfoContext(r.Context(), "Session logged out",
		log.FieldOperation, log.OpLogout, log.FieldSessionID, sess.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleHealth performs a basic liveness check.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).String(),
	})
}

// handleReady reports readiness; without templates no view can render.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	status := "ready"
	httpStatus := http.StatusOK
	checks := map[string]string{"templates": "ok"}
	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	}

	w.WriteHeader(httpStatus)
	json.NewEncoder(w).Encode(map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}
