package errorhandler

import (
	"context"
	"errors"
	"net/http"

	"github.com/lib/pq"

	"github.com/stayhost/stayhost-api/internal/pkg/logger"
	"github.com/stayhost/stayhost-api/internal/pkg/response"
)

// Kind classifies an error for transport mapping
type Kind string

const (
	KindValidation   Kind = "VALIDATION_ERROR"
	KindPermission   Kind = "FORBIDDEN"
	KindNotFound     Kind = "NOT_FOUND"
	KindConflict     Kind = "CONFLICT"
	KindUpstream     Kind = "UPSTREAM_ERROR"
	KindUnauthorized Kind = "UNAUTHORIZED"
)

// Error is a classified domain error with a stable code
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Details map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Code + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation creates a validation error
func Validation(code, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

// ValidationFields creates a validation error carrying field details
func ValidationFields(details map[string]string) *Error {
	return &Error{Kind: KindValidation, Code: string(KindValidation), Message: "Validation failed", Details: details}
}

// Permission creates a permission error
func Permission(code, message string) *Error {
	return &Error{Kind: KindPermission, Code: code, Message: message}
}

// NotFound creates a not-found error
func NotFound(code, message string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

// Conflict creates a conflict error
func Conflict(code, message string) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: message}
}

// Upstream wraps a collaborator failure
func Upstream(code, message string, err error) *Error {
	return &Error{Kind: KindUpstream, Code: code, Message: message, Err: err}
}

// Storage wraps a persistence failure unless it is already classified
func Storage(err error) error {
	if err == nil {
		return nil
	}
	var classified *Error
	if errors.As(err, &classified) {
		return err
	}
	return Upstream("STORAGE_ERROR", "Storage is temporarily unavailable", err)
}

// KindOf returns the kind of err, or an empty kind when unclassified
func KindOf(err error) Kind {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}
	return ""
}

// StatusCode maps an error kind to an HTTP status
func StatusCode(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindPermission:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUpstream:
		return http.StatusBadGateway
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Write logs err and writes the matching error envelope.
// Causes are logged, never written to the client.
func Write(ctx context.Context, w http.ResponseWriter, err error) {
	l := logger.FromContext(ctx)

	var classified *Error
	if !errors.As(err, &classified) {
		l.Error().Err(err).Msg("Unhandled request error")
		response.InternalError(w)
		return
	}

	status := StatusCode(classified.Kind)
	event := l.Warn()
	if status >= http.StatusInternalServerError {
		event = l.Error()
	}
	event = event.
		Str("error_code", classified.Code).
		Int("status_code", status)
	if classified.Err != nil {
		event = event.AnErr("cause", classified.Err)
		var pqErr *pq.Error
		if errors.As(classified.Err, &pqErr) {
			event = event.Str("pq_code", string(pqErr.Code)).Str("pq_constraint", pqErr.Constraint)
		}
	}
	if classified.Details != nil {
		event = event.Interface("error_details", classified.Details)
	}
	event.Msg(classified.Message)

	response.ErrorWithDetails(w, status, classified.Code, classified.Message, classified.Details)
}
