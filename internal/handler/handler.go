// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/auth"
	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/config"
	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/model"
	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/repository"
	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/service"
	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/validate"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Services bundles the service layer the handlers call into.
type Services struct {
	Groups  *service.GroupService
	Guests  *service.GuestService
	RSVP    *service.RSVPService
	Import  *service.ImportService
	Content *service.ContentService
	Export  *service.ExportService
}

// Handler holds all HTTP handlers of the invitation API.
type Handler struct {
	svc      Services
	verifier *auth.Verifier
	sessions *auth.Sessions
	cfg      config.Config
	log      *zap.Logger
}

// New constructs a Handler.
func New(svc Services, verifier *auth.Verifier, sessions *auth.Sessions, cfg config.Config, log *zap.Logger) *Handler {
	return &Handler{svc: svc, verifier: verifier, sessions: sessions, cfg: cfg, log: log}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

const maxBodyBytes = 1 << 20 // 1 MB

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, strict bool) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if strict {
		dec.DisallowUnknownFields()
	}
	return dec.Decode(dst)
}

// bind decodes the body into T and validates it. On failure the 400 response
// has already been written and ok is false.
func bind[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	return bindBody[T](w, r, true)
}

// bindLenient is bind for clients that echo back whole entities.
func bindLenient[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	return bindBody[T](w, r, false)
}

func bindBody[T any](w http.ResponseWriter, r *http.Request, strict bool) (T, bool) {
	var req T
	if err := decodeJSON(w, r, &req, strict); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return req, false
	}
	res := validate.Check(req)
	if !res.OK() {
		writeValidation(w, res.Err)
		return req, false
	}
	return res.Value, true
}

func writeValidation(w http.ResponseWriter, verr *validate.Error) {
	writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "invalid request", Fields: verr.Fields})
}

// fail maps a service error onto the HTTP error taxonomy. Unexpected errors
// are logged and answered with a generic 500.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	var verr *validate.Error
	switch {
	case errors.As(err, &verr):
		writeValidation(w, verr)
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, notFound)
	case errors.Is(err, repository.ErrConflict):
		writeError(w, http.StatusConflict, "already exists")
	default:
		h.log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", chimiddleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
