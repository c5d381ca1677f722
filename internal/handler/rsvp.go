package handler

import (
	"net/http"
	"strings"

	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/model"
)

// The same message is used for unknown and deleted tokens.
const invalidInvitation = "Invalid invitation link"

// GetInvitation handles GET /api/rsvp?token=
// Returns the group, its roster and the current response (or null).
func (h *Handler) GetInvitation(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.URL.Query().Get("token"))
	if token == "" {
		writeError(w, http.StatusBadRequest, "Token required")
		return
	}

	view, err := h.svc.RSVP.Invitation(r.Context(), token)
	if err != nil {
		h.fail(w, r, err, invalidInvitation)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// SubmitRSVP handles POST /api/rsvp
// Creates or replaces the group's response. Counts and names are clamped to
// the group's capacity rather than rejected.
func (h *Handler) SubmitRSVP(w http.ResponseWriter, r *http.Request) {
	req, ok := bind[model.SubmitRSVPRequest](w, r)
	if !ok {
		return
	}

	res, err := h.svc.RSVP.Submit(r.Context(), req)
	if err != nil {
		h.fail(w, r, err, invalidInvitation)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
