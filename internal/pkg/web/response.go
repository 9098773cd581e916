package web

import (
	"log/slog"
	"net/http"

	"github.com/ferdiebergado/gopherkit/http/response"
	"github.com/ferdiebergado/hireloop/internal/pkg/message"
)

// OKResponse is the envelope of every successful JSON response.
type OKResponse[T any] struct {
	Message string `json:"message,omitempty"`
	Data    T      `json:"data,omitempty"`
}

// ErrorResponse is the envelope of every failed JSON response.
// Errors holds field-level validation messages keyed by the json field name.
type ErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// OK writes a success response with the given status.
//
//	{
//	  "message": "Job created.",
//	  "data": {"id": "...", "title": "Backend Engineer"}
//	}
func OK[T any](w http.ResponseWriter, status int, msg *string, data T) {
	payload := &OKResponse[T]{Data: data}
	if msg != nil {
		payload.Message = *msg
	}

	response.JSON(w, status, payload)
}

// Fail writes an error response and logs the reason.
// Server errors are logged at error level, client errors at warn level.
func Fail(w http.ResponseWriter, status int, reason error, msg string, errs map[string]string) {
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "status", status, "reason", reason)
	} else {
		slog.Warn("request rejected", "status", status, "reason", reason)
	}

	payload := &ErrorResponse{
		Message: msg,
		Errors:  errs,
	}
	response.JSON(w, status, payload)
}

func RespondOK[T any](w http.ResponseWriter, msg *string, data T) {
	OK(w, http.StatusOK, msg, data)
}

func RespondCreated[T any](w http.ResponseWriter, msg *string, data T) {
	OK(w, http.StatusCreated, msg, data)
}

func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func RespondBadRequest(w http.ResponseWriter, reason error, msg string, errs map[string]string) {
	Fail(w, http.StatusBadRequest, reason, msg, errs)
}

func RespondUnauthorized(w http.ResponseWriter, reason error, msg string, errs map[string]string) {
	Fail(w, http.StatusUnauthorized, reason, msg, errs)
}

func RespondForbidden(w http.ResponseWriter, reason error, msg string, errs map[string]string) {
	Fail(w, http.StatusForbidden, reason, msg, errs)
}

func RespondNotFound(w http.ResponseWriter, reason error, msg string, errs map[string]string) {
	Fail(w, http.StatusNotFound, reason, msg, errs)
}

func RespondConflict(w http.ResponseWriter, reason error, msg string, errs map[string]string) {
	Fail(w, http.StatusConflict, reason, msg, errs)
}

func RespondUnprocessableEntity(w http.ResponseWriter, reason error, msg string, errs map[string]string) {
	Fail(w, http.StatusUnprocessableEntity, reason, msg, errs)
}

func RespondUnsupportedMediaType(w http.ResponseWriter, reason error, msg string, errs map[string]string) {
	Fail(w, http.StatusUnsupportedMediaType, reason, msg, errs)
}

func RespondRequestEntityTooLarge(w http.ResponseWriter, reason error) {
	Fail(w, http.StatusRequestEntityTooLarge, reason, message.PayloadTooLarge, nil)
}

func RespondRequestTimeout(w http.ResponseWriter, reason error) {
	Fail(w, http.StatusRequestTimeout, reason, message.RequestTimeout, nil)
}

// RespondTooManyRequests sets Retry-After in whole seconds, rounded up.
func RespondTooManyRequests(w http.ResponseWriter, reason error, retryAfterSeconds int) {
	if retryAfterSeconds < 1 {
		retryAfterSeconds = 1
	}
	w.Header().Set(HeaderRetryAfter, itoa(retryAfterSeconds))
	Fail(w, http.StatusTooManyRequests, reason, message.TooManyRequests, nil)
}

func RespondInternalServerError(w http.ResponseWriter, reason error) {
	Fail(w, http.StatusInternalServerError, reason, message.ServerError, nil)
}

func RespondServiceUnavailable(w http.ResponseWriter, reason error) {
	Fail(w, http.StatusServiceUnavailable, reason, message.Unavailable, nil)
}
