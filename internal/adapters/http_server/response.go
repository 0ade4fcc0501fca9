package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"yisu_hotel/internal/app"
	"yisu_hotel/internal/domain"
)

// envelope is the uniform response shape: code 0 on success, non-zero on
// business errors, data null on failure.
type envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, e envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(e); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeOK(w http.ResponseWriter, data any, message string) {
	writeJSON(w, http.StatusOK, envelope{Code: 0, Message: message, Data: data})
}

func writeFail(w http.ResponseWriter, status, code int, message string) {
	writeJSON(w, status, envelope{Code: code, Message: message, Data: nil})
}

// writeErr maps domain errors onto the envelope. Validation and transition
// failures stay HTTP 200 with a business code, matching the API contract;
// auth and lookup failures carry their HTTP status.
func writeErr(w http.ResponseWriter, err error) {
	switch {
	case domain.IsValidation(err):
		writeFail(w, http.StatusOK, 1, err.Error())
	case errors.Is(err, app.ErrInvalidCredentials):
		writeFail(w, http.StatusOK, 1, "invalid username or password")
	case errors.Is(err, domain.ErrInvalidTransition):
		writeFail(w, http.StatusOK, 1, "only an offline hotel can be restored")
	case errors.Is(err, domain.ErrNotFound):
		writeFail(w, http.StatusNotFound, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrForbidden):
		writeFail(w, http.StatusForbidden, http.StatusForbidden, "permission denied")
	case errors.Is(err, domain.ErrUnauthenticated):
		writeFail(w, http.StatusUnauthorized, http.StatusUnauthorized, "not logged in")
	default:
		log.Error().Err(err).Msg("unhandled error")
		writeFail(w, http.StatusInternalServerError, http.StatusInternalServerError, "internal error")
	}
}
