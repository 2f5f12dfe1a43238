package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/canstudy/tracker/internal/ai"
	"github.com/canstudy/tracker/internal/ctxkeys"
	"github.com/canstudy/tracker/internal/repository"
	"github.com/canstudy/tracker/internal/service"
	"github.com/canstudy/tracker/internal/timeline"
	"github.com/canstudy/tracker/internal/validation"
)

const maxJSONBody = 1 << 20

var errInvalidJSON = errors.New("invalid JSON body")

type errorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil {
		return errInvalidJSON
	}
	return nil
}

// writeError maps domain errors onto HTTP responses. Anything unrecognised is
// logged and reported as a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid input", Details: verr.Fields})

	case errors.Is(err, errInvalidJSON):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})

	case errors.Is(err, service.ErrEmailAlreadyExists):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "User already exists"})

	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Invalid email or password"})

	case errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrInvalidCurrentPassword),
		errors.Is(err, service.ErrUnknownMilestone),
		errors.Is(err, timeline.ErrInvalidSeason),
		errors.Is(err, repository.ErrDuplicateApplication),
		errors.Is(err, repository.ErrDuplicateDocument):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: errorMessage(err)})

	case errors.Is(err, repository.ErrApplicationNotFound),
		errors.Is(err, repository.ErrDocumentNotFound),
		errors.Is(err, repository.ErrFinanceNotFound),
		errors.Is(err, repository.ErrFileNotFound),
		errors.Is(err, repository.ErrProfileNotFound),
		errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, service.ErrGuideNotFound),
		errors.Is(err, errSchoolNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: errorMessage(err)})

	case errors.Is(err, ai.ErrQuota):
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "AI service temporarily unavailable. Please try again later."})

	case errors.Is(err, ai.ErrNotConfigured):
		slog.Error("assistant not configured", "path", r.URL.Path)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "AI service configuration error. Please contact support."})

	default:
		attrs := []any{"error", err, "method", r.Method, "path", r.URL.Path, "request_id", ctxkeys.RequestID(r.Context())}
		if user := ctxkeys.User(r.Context()); user != nil {
			attrs = append(attrs, "user_id", user.ID)
		}
		slog.Error("request failed", attrs...)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
	}
}

// errorMessage returns the outermost sentinel's text without wrapping context.
func errorMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: "Not found"})
}
