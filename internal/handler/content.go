package handler

import (
	"io"
	"net/http"

	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/model"
)

// GetSettings handles GET /api/settings
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	content, err := h.svc.Content.Settings(r.Context())
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, content)
}

// UpdateSettings handles PUT /api/settings
// The body may hold any subset of the content keys.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	patch, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	content, err := h.svc.Content.UpdateSettings(r.Context(), patch)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, content)
}

// ListTimeline handles GET /api/timeline
func (h *Handler) ListTimeline(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Content.Timeline(r.Context())
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	if items == nil {
		items = []model.TimelineItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// CreateTimelineItem handles POST /api/timeline
func (h *Handler) CreateTimelineItem(w http.ResponseWriter, r *http.Request) {
	req, ok := bind[model.CreateTimelineRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Content.CreateTimelineItem(r.Context(), req)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// UpdateTimelineItem handles PUT /api/timeline
// The admin page sends the whole item back, so extra keys are ignored.
func (h *Handler) UpdateTimelineItem(w http.ResponseWriter, r *http.Request) {
	req, ok := bindLenient[model.UpdateTimelineRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Content.UpdateTimelineItem(r.Context(), req)
	if err != nil {
		h.fail(w, r, err, "timeline item not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// DeleteTimelineItem handles DELETE /api/timeline
func (h *Handler) DeleteTimelineItem(w http.ResponseWriter, r *http.Request) {
	req, ok := bind[model.DeleteRequest](w, r)
	if !ok {
		return
	}

	if err := h.svc.Content.DeleteTimelineItem(r.Context(), req.ID); err != nil {
		h.fail(w, r, err, "timeline item not found")
		return
	}
	writeJSON(w, http.StatusOK, model.SuccessResponse{Success: true})
}
