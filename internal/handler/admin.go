package handler

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/model"
	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/repository"
	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/service"
)

// ─── Groups ───────────────────────────────────────────────────────────────────

// ListGroups handles GET /api/groups
// Each group carries its response (or null) and its guests.
func (h *Handler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.svc.Groups.List(r.Context())
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

// CreateGroup handles POST /api/groups
func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	req, ok := bind[model.CreateGroupRequest](w, r)
	if !ok {
		return
	}

	group, err := h.svc.Groups.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			writeError(w, http.StatusConflict, "Group code already exists")
			return
		}
		h.fail(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, group)
}

// UpdateGroup handles PUT /api/groups
func (h *Handler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	req, ok := bind[model.UpdateGroupRequest](w, r)
	if !ok {
		return
	}

	group, err := h.svc.Groups.Update(r.Context(), req)
	if err != nil {
		h.fail(w, r, err, "group not found")
		return
	}
	writeJSON(w, http.StatusOK, group)
}

// DeleteGroup handles DELETE /api/groups
// The group's response is deleted with it; its guests are kept.
func (h *Handler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	req, ok := bind[model.DeleteRequest](w, r)
	if !ok {
		return
	}

	if err := h.svc.Groups.Delete(r.Context(), req.ID); err != nil {
		h.fail(w, r, err, "group not found")
		return
	}
	writeJSON(w, http.StatusOK, model.SuccessResponse{Success: true})
}

// ─── Guests ───────────────────────────────────────────────────────────────────

// ListGuests handles GET /api/guests
func (h *Handler) ListGuests(w http.ResponseWriter, r *http.Request) {
	guests, err := h.svc.Guests.List(r.Context())
	if err != nil {
		h.fail(w, r, err, "")
		return
	}

	// Return an empty array rather than null for better client compatibility.
	if guests == nil {
		guests = []model.Guest{}
	}
	writeJSON(w, http.StatusOK, guests)
}

// CreateGuest handles POST /api/guests
func (h *Handler) CreateGuest(w http.ResponseWriter, r *http.Request) {
	req, ok := bind[model.CreateGuestRequest](w, r)
	if !ok {
		return
	}

	guest, err := h.svc.Guests.Create(r.Context(), req)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, guest)
}

// DeleteGuest handles DELETE /api/guests
func (h *Handler) DeleteGuest(w http.ResponseWriter, r *http.Request) {
	req, ok := bind[model.DeleteRequest](w, r)
	if !ok {
		return
	}

	if err := h.svc.Guests.Delete(r.Context(), req.ID); err != nil {
		h.fail(w, r, err, "guest not found")
		return
	}
	writeJSON(w, http.StatusOK, model.SuccessResponse{Success: true})
}

// ─── Import / export ──────────────────────────────────────────────────────────

// Import handles POST /api/import
// Accepts {"guests": [...]}, a bare JSON array, or a text/csv document.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	var rows []model.ImportRow
	if mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mediaType == "text/csv" {
		rows, err = service.ParseImportCSV(bytes.NewReader(body))
	} else {
		rows, err = service.ParseImportJSON(body)
	}
	if err != nil {
		if errors.Is(err, service.ErrExpectedArray) {
			writeError(w, http.StatusBadRequest, "Expected guests array")
			return
		}
		h.fail(w, r, err, "")
		return
	}

	writeJSON(w, http.StatusOK, h.svc.Import.Import(r.Context(), rows))
}

// Export handles GET /api/export
// Streams the RSVP overview as a CSV attachment.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.svc.Export.WriteCSV(r.Context(), &buf); err != nil {
		h.fail(w, r, err, "")
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="rsvp-export.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
