package ai

import (
	"context"
	"errors"
	"fmt"
	"net"

	"google.golang.org/genai"
)

// Kind classifies a failed model call.
type Kind int

const (
	// KindTransport covers network failures and non-2xx answers from the API.
	KindTransport Kind = iota + 1
	// KindSchemaViolation means the model answered with items but none had the
	// required fields.
	KindSchemaViolation
	// KindExtraction means the structured answer was not parseable JSON.
	KindExtraction
	// KindTimeout means the client's own deadline expired.
	KindTimeout
	// KindCanceled means the caller gave up on the call, e.g. a newer search
	// replaced it.
	KindCanceled
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindSchemaViolation:
		return "schema violation"
	case KindExtraction:
		return "extraction"
	case KindTimeout:
		return "timeout"
	case KindCanceled:
		return "canceled"
	}
	return "unknown"
}

// Sentinels for errors.Is.
var (
	ErrTransport       = &Error{Kind: KindTransport}
	ErrSchemaViolation = &Error{Kind: KindSchemaViolation}
	ErrExtraction      = &Error{Kind: KindExtraction}
	ErrTimeout         = &Error{Kind: KindTimeout}
	ErrCanceled        = &Error{Kind: KindCanceled}
)

// Error is returned by every SearchClient operation.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("ai %s: %s error", e.Op, e.Kind)
	}
	return fmt.Sprintf("ai %s: %s error: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, so the package sentinels work with
// errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// StatusCode returns the HTTP status the API answered with, or 0.
func (e *Error) StatusCode() int {
	var apiErr genai.APIError
	if errors.As(e.Err, &apiErr) {
		return apiErr.Code
	}
	return 0
}

// classify wraps a failed SDK call. callCtx is the context the call ran
// under, carrying the client's timeout.
func classify(callCtx context.Context, op string, err error) error {
	if errors.Is(callCtx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Op: op, Err: err}
	}
	if errors.Is(callCtx.Err(), context.Canceled) || errors.Is(err, context.Canceled) {
		return &Error{Kind: KindCanceled, Op: op, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: KindTimeout, Op: op, Err: err}
	}
	return &Error{Kind: KindTransport, Op: op, Err: err}
}
