package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/filekeeper/internal/common"
)

const (
	msgUnauthorized = "Unauthorized request"
	msgForbidden    = "Forbidden"
	msgInternal     = "internal error"
	msgSuccess      = "success"

	maxBodyBytes = 1 << 20
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

// writeError maps a service error to a status and body. notFound is the
// message used for common.ErrorNotFound, which differs per resource.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		writeMessage(w, http.StatusBadRequest, common.ErrInvalidCredentials.Error())
	case errors.Is(err, common.ErrDuplicateIdentity):
		writeMessage(w, http.StatusBadRequest, common.ErrDuplicateIdentity.Error())
	case errors.Is(err, common.ErrNoCredentials),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrorUnauthorized):
		writeMessage(w, http.StatusUnauthorized, msgUnauthorized)
	case errors.Is(err, common.ErrorNotFound):
		writeMessage(w, http.StatusNotFound, notFound)
	case errors.Is(err, common.ErrorForbidden):
		writeMessage(w, http.StatusForbidden, msgForbidden)
	case errors.Is(err, common.ErrorValidation):
		detail := strings.TrimPrefix(err.Error(), common.ErrorValidation.Error()+": ")
		writeMessage(w, http.StatusBadRequest, "Bad Request: "+detail)
	default:
		s.logger.Error(r.Context(), "request failed",
			"request_id", RequestIDFromContext(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeMessage(w, http.StatusInternalServerError, msgInternal)
	}
}

// decodeJSON reads a JSON body into v. An empty body leaves v untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: invalid JSON body", common.ErrorValidation)
	}
	return nil
}
