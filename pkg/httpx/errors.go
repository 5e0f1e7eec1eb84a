package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
)

const (
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeInvalidForm     = "INVALID_FORM"
	CodePaymentDeclined = "PAYMENT_DECLINED"
	CodeUnavailable     = "UNAVAILABLE"
	CodeInternal        = "INTERNAL"
)

// Error is an error with the HTTP status and code it should be rendered as.
type Error struct {
	Status  int               `json:"-"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *Error) Error() string { return e.Message }

func NewError(status int, code, msg string) *Error {
	return &Error{Status: status, Code: code, Message: msg}
}

func BadRequest(msg string) *Error {
	return NewError(http.StatusBadRequest, CodeInvalidArgument, msg)
}

// StatusFor resolves err to what the client should see. Errors that are not
// an *Error are internal unless a deadline ran out.
func StatusFor(err error) *Error {
	var he *Error
	if errors.As(err, &he) {
		return he
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NewError(http.StatusServiceUnavailable, CodeUnavailable, "request timed out")
	}
	return NewError(http.StatusInternalServerError, CodeInternal, "internal error")
}

func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	he := StatusFor(err)
	log := Logger(r.Context())
	if he.Status >= http.StatusInternalServerError {
		log.Error("request failed", slog.Int("status", he.Status), slog.Any("err", err))
	} else {
		log.Debug("request rejected", slog.Int("status", he.Status), slog.Any("err", err))
	}
	WriteJSON(w, he.Status, map[string]*Error{"error": he})
}
