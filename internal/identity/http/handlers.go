package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/logisticsfuture/identity/internal/identity/service"
	"github.com/logisticsfuture/identity/pkg/httpx"
	"github.com/logisticsfuture/identity/pkg/slogx"
)

// AuthHandler serves the six credential and session-lifecycle endpoints.
type AuthHandler struct {
	AuthService *service.AuthService
}

// MessageResponse is the generic {message} body used for simple successes
// and all non-validation errors.
type MessageResponse struct {
	Message string `json:"message"`
}

// ValidationErrorResponse carries per-field validation messages.
type ValidationErrorResponse struct {
	Errors map[string]string `json:"errors"`
}

// HealthResponse is returned by the livez and readyz probes.
type HealthResponse struct {
	Status   string `json:"status"`
	Uptime   string `json:"uptime"`
	Version  string `json:"version"`
	Database string `json:"database,omitempty"`
}

func writeMessage(w http.ResponseWriter, code int, msg string) {
	httpx.WriteJSON(w, code, MessageResponse{Message: msg})
}

// writeServiceError maps service errors to stable status codes and generic
// messages. Unknown errors are logged and returned as an opaque 500; raw
// internal error text never reaches the caller. ErrUserNotFound is an
// internal inconsistency (token referencing a deleted user) and is
// deliberately folded into the generic case.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	log := slogx.FromContext(ctx)

	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.WriteJSON(w, http.StatusBadRequest, ValidationErrorResponse{Errors: verr.Fields})
	case errors.Is(err, httpx.ErrInvalidJSONBody):
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
	case errors.Is(err, service.ErrPasswordMismatch):
		writeMessage(w, http.StatusBadRequest, "Passwords do not match")
	case errors.Is(err, service.ErrEmailTaken):
		writeMessage(w, http.StatusBadRequest, "Email is already in use")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, service.ErrInvalidOrExpiredToken):
		writeMessage(w, http.StatusUnauthorized, "Invalid or expired token")
	case errors.Is(err, service.ErrNotificationFailed):
		writeMessage(w, http.StatusBadGateway, "Failed to send reset notification")
	default:
		log.Error("auth request failed", "err", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
