package api

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

// Error is a non-2xx response. Message is the server's message field or the
// generic "HTTP error! Status: N" fallback.
type Error struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func genericStatusMessage(status int) string {
	return fmt.Sprintf("HTTP error! Status: %d", status)
}

var (
	// ErrInvalidAction marks an unrecognised action passed to a mutation.
	ErrInvalidAction = errors.New("invalid action")
	// ErrMissingField marks a 2xx response that lacks a required field.
	ErrMissingField = errors.New("missing field in response")
)

type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindTransport
	KindHTTP
	KindInvalidAction
	KindMissingField
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindHTTP:
		return "http"
	case KindInvalidAction:
		return "invalid_action"
	case KindMissingField:
		return "missing_field"
	default:
		return "unknown"
	}
}

func Classify(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		return KindHTTP
	}
	if errors.Is(err, ErrInvalidAction) {
		return KindInvalidAction
	}
	if errors.Is(err, ErrMissingField) {
		return KindMissingField
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return KindTransport
	}
	return KindUnknown
}

// Message normalises any error to the text shown in a notification.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if errors.Is(err, context.Canceled) {
		return "request canceled"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "request timed out"
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err.Error()
	}
	return err.Error()
}
