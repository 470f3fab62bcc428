package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/preston-bernstein/activities-service/internal/app/enrollment"
	"github.com/preston-bernstein/activities-service/internal/logging"
)

// DefaultMaxBodyBytes bounds sign-up and unregister request bodies.
const DefaultMaxBodyBytes = 4096

// IndexPath is where GET / redirects.
const IndexPath = "/static/index.html"

// Handler wires HTTP routes to the enrollment service.
type Handler struct {
	svc          *enrollment.Service
	logger       *slog.Logger
	maxBodyBytes int64
}

// NewHandler constructs a Handler. A non-positive maxBodyBytes selects DefaultMaxBodyBytes.
func NewHandler(svc *enrollment.Service, logger *slog.Logger, maxBodyBytes int64) *Handler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &Handler{
		svc:          svc,
		logger:       logger,
		maxBodyBytes: maxBodyBytes,
	}
}

// Root sends browsers to the static front page.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, IndexPath, http.StatusTemporaryRedirect)
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// NotFound answers static requests when no static directory is configured.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, "not found", h.logger)
}

// ListActivities returns every activity keyed by name, in catalog order.
func (h *Handler) ListActivities(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListActivities(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	logging.Debug(loggerFromContext(r, h.logger), "served activities", logging.FieldCount, len(list))
	writeJSON(w, http.StatusOK, activitiesResponse(list), h.logger)
}

// SignUp registers the requesting email for the activity named in the path.
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	email, err := h.emailFromRequest(w, r)
	if err == nil {
		err = h.svc.SignUp(r.Context(), name, email)
	}
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	msg := fmt.Sprintf("Signed up %s for %s", strings.TrimSpace(email), name)
	writeJSON(w, http.StatusOK, messageBody{Message: msg}, h.logger)
}

// Unregister removes the requesting email from the activity named in the path.
func (h *Handler) Unregister(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	email, err := h.emailFromRequest(w, r)
	if err == nil {
		err = h.svc.Unregister(r.Context(), name, email)
	}
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	msg := fmt.Sprintf("Unregistered %s from %s", strings.TrimSpace(email), name)
	writeJSON(w, http.StatusOK, messageBody{Message: msg}, h.logger)
}

type emailRequest struct {
	Email string `json:"email"`
}

// emailFromRequest prefers the email query parameter and falls back to a JSON body.
// A missing body yields an empty email, which the service rejects.
func (h *Handler) emailFromRequest(w http.ResponseWriter, r *http.Request) (string, error) {
	if q := r.URL.Query(); q.Has("email") {
		return q.Get("email"), nil
	}
	if r.Body == nil || r.Body == http.NoBody {
		return "", nil
	}

	var req emailRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return "", nil
		}
		return "", fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	return req.Email, nil
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, detail := statusForError(err)
	if status >= http.StatusInternalServerError {
		logging.Error(loggerFromContext(r, h.logger), "request failed", err)
	}
	writeError(w, r, status, detail, h.logger)
}
