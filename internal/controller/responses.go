package controller

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/jbweber/homelab/restkit/internal/repository"
)

// Envelope wraps a successful payload with its navigation links.
type Envelope[T any] struct {
	Data  T                 `json:"data"`
	Links map[string]string `json:"links"`
}

// ErrorResponse is the uniform wire shape for every failure.
type ErrorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

// Error codes carried in ErrorResponse.ErrorCode.
const (
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeNotFound        = "NOT_FOUND"
	CodeInternal        = "INTERNAL_ERROR"
)

// internalMessage is the fixed text for unexpected failures; the real cause
// is logged, never sent to the client.
const internalMessage = "an unexpected error occurred"

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{ErrorCode: code, Message: message})
}

// writeFailure maps a service failure to wire status and code. Specific
// messages surface only for the client-error kinds.
func writeFailure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, CodeInvalidArgument, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, CodeNotFound, err.Error())
	default:
		log.Printf("request failed: %v", err)
		writeError(w, http.StatusInternalServerError, CodeInternal, internalMessage)
	}
}
