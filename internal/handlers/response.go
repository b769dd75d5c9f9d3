package handlers

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/petween/backend/internal/schemas"
	"github.com/petween/backend/pkg/errors"
	"github.com/petween/backend/pkg/logger"
)

const maxJSONBody = 1 << 20

type errorResponse struct {
	Code    string               `json:"code"`
	Message string               `json:"message"`
	Errors  []schemas.FieldError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to write response", "error", err)
	}
}

// writeError maps err to a status code and a JSON error body. Internal
// errors are logged and reported without detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *schemas.ValidationError
	if stderrors.As(err, &validationErr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    errors.ErrCodeValidation,
			Message: "validation failed",
			Errors:  validationErr.Fields,
		})
		return
	}

	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		appErr = errors.Wrap(err, errors.ErrCodeInternalError, "internal server error")
	}

	status := statusFor(appErr.Code)
	message := appErr.Message
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		message = "internal server error"
	}

	writeJSON(w, status, errorResponse{Code: appErr.Code, Message: message})
}

func statusFor(code string) int {
	switch code {
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeValidation, errors.ErrCodeAlreadyExists:
		return http.StatusBadRequest
	case errors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads a JSON body into v. With optional set, an empty body
// leaves v untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}, optional bool) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return nil
	}
	if optional && stderrors.Is(err, io.EOF) {
		return nil
	}
	return errors.Wrap(err, errors.ErrCodeValidation, "invalid JSON payload")
}

// pathID parses a positive numeric route variable.
func pathID(r *http.Request, name string) (uint, error) {
	return parseID(mux.Vars(r)[name], name)
}

func parseID(raw, name string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New(errors.ErrCodeValidation, "invalid "+name)
	}
	return uint(id), nil
}

func routeVar(r *http.Request, name string) (string, bool) {
	v, ok := mux.Vars(r)[name]
	return v, ok
}
