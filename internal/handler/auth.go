package handler

import (
	"net/http"

	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/auth"
	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/model"
	"go.uber.org/zap"
)

// Login handles POST /api/auth
// Checks the admin credentials and sets the session cookie. The token is
// also returned in the body for programmatic clients.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := bind[model.LoginRequest](w, r)
	if !ok {
		return
	}

	if !h.verifier.Verify(req.Username, req.Password) {
		h.log.Warn("admin login rejected", zap.String("remote_addr", r.RemoteAddr))
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, exp, err := h.sessions.Issue()
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	auth.SetCookie(w, token, h.cfg.IsProduction())
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"token":     token,
		"expiresAt": exp.UTC(),
	})
}

// AuthStatus handles GET /api/auth
func (h *Handler) AuthStatus(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Authenticate(r); err != nil {
		writeJSON(w, http.StatusUnauthorized, model.AuthStatus{Authenticated: false})
		return
	}
	writeJSON(w, http.StatusOK, model.AuthStatus{Authenticated: true})
}

// Logout handles DELETE /api/auth
// Only the cookie is cleared; there is no server-side revocation.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearCookie(w, h.cfg.IsProduction())
	writeJSON(w, http.StatusOK, model.SuccessResponse{Success: true})
}
