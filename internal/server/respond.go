package server

import (
	"encoding/json"
	"net/http"

	"github.com/courseflow/courseflow/pkg/errors"
)

type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps structured error codes to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)

	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidCourse, errors.ErrCodeInvalidDirection,
		errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidGraph:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeCourseNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeRateLimited:
		status = http.StatusTooManyRequests
	case errors.ErrCodeNetwork, errors.ErrCodeTimeout:
		status = http.StatusBadGateway
	}

	writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: code})
}
