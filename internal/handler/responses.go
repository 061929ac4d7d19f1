package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/SpiritSummon_Go/internal/domain"
	"github.com/osse101/SpiritSummon_Go/internal/logger"
)

// A batch of ten results encodes to roughly 1.5KB.
const (
	responseBufferSize    = 2048
	maxPooledResponseSize = 64 << 10
)

var responseBuffers = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, responseBufferSize))
	},
}

func releaseBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledResponseSize {
		return
	}
	buf.Reset()
	responseBuffers.Put(buf)
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := responseBuffers.Get().(*bytes.Buffer)
	defer releaseBuffer(buf)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and writes the mapped status.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	statusCode, userMsg := mapServiceErrorToUserMessage(err)

	log := logger.FromContext(r.Context())
	if statusCode >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err, "status", statusCode)
	} else {
		log.Warn(opName+" rejected", "error", err, "status", statusCode)
	}

	if statusCode == http.StatusServiceUnavailable {
		w.Header().Set(HeaderRetryAfter, RetryAfterUnavailable)
	}
	respondError(w, statusCode, userMsg)
}

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses.
// Unknown errors never leak their text to the client.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidPlayerError
	case errors.Is(err, domain.ErrInvalidBatchSize):
		return http.StatusBadRequest, ErrMsgBatchSizeError
	case errors.Is(err, domain.ErrPersistenceUnavailable):
		return http.StatusServiceUnavailable, ErrMsgUnavailableError
	case errors.Is(err, domain.ErrCatalogEmpty):
		return http.StatusInternalServerError, ErrMsgCatalogEmptyError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
