package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

var (
	// ErrUnreachable means the backend could not be contacted at all.
	// This points at a connectivity or base-URL problem, not latency.
	ErrUnreachable = errors.New("backend unreachable, check the server address and your network connection")

	// ErrTimeout means the request was cut off by its deadline. Large file
	// uploads carry their own, much longer deadline; hitting it is reported
	// distinctly from connectivity failures.
	ErrTimeout = errors.New("operation timed out")
)

// APIError is a non-2xx response normalized into a human-readable message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// IsUnauthenticated reports whether err is an HTTP 401. Callers decide whether
// a 401 should clear the session; the transport never does that itself.
func IsUnauthenticated(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsPayloadTooLarge reports whether err is an HTTP 413 (oversized upload).
func IsPayloadTooLarge(err error) bool {
	return hasStatus(err, http.StatusRequestEntityTooLarge)
}

// IsValidation reports whether err is an HTTP 422 with field-level errors.
func IsValidation(err error) bool {
	return hasStatus(err, http.StatusUnprocessableEntity)
}

func hasStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// errorBody matches the backend error envelope. Detail is either a plain
// string or an array of field validation errors ({loc, msg}).
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type fieldError struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// parseErrorBody extracts a readable message from a non-2xx response body.
// Validation arrays are aggregated into one message, one "loc.path: msg"
// fragment per field, joined with "; ". Falls back to the raw body text.
func parseErrorBody(status int, body []byte) *APIError {
	msg := strings.TrimSpace(string(body))

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && len(eb.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(eb.Detail, &detail); err == nil {
			msg = detail
		} else {
			var fields []fieldError
			if err := json.Unmarshal(eb.Detail, &fields); err == nil && len(fields) > 0 {
				parts := make([]string, 0, len(fields))
				for _, f := range fields {
					parts = append(parts, formatFieldError(f))
				}
				msg = strings.Join(parts, "; ")
			}
		}
	}

	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{Status: status, Message: msg}
}

func formatFieldError(f fieldError) string {
	segs := make([]string, 0, len(f.Loc))
	for _, l := range f.Loc {
		segs = append(segs, fmt.Sprintf("%v", l))
	}
	if len(segs) == 0 {
		return f.Msg
	}
	return strings.Join(segs, ".") + ": " + f.Msg
}

// classifyTransportError maps low-level request failures onto the error
// taxonomy: deadline hits become ErrTimeout, everything else that never got a
// response becomes ErrUnreachable.
func classifyTransportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Timeout() {
		return ErrTimeout
	}
	return fmt.Errorf("%w: %v", ErrUnreachable, err)
}
