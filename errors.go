package ptero

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid pterodactyl client configuration")
)

// Kind classifies an API failure. The set is closed: every non-2xx response
// and every transport failure maps to exactly one Kind.
type Kind int

const (
	// KindTransport indicates a network failure before any response was received
	KindTransport Kind = iota
	// KindMalformedResponse indicates a body that does not match the expected envelope or error shape
	KindMalformedResponse
	// KindUnauthorized indicates an authentication or permission failure (401/403)
	KindUnauthorized
	// KindNotFound indicates the requested resource does not exist (404)
	KindNotFound
	// KindValidation indicates caller-correctable input rejected by the panel
	KindValidation
	// KindRateLimited indicates the API key exceeded its request quota (429)
	KindRateLimited
	// KindServerError indicates a panel-side failure (status >= 500)
	KindServerError
	// KindShapeMismatch indicates a decoded value violated its declared type
	KindShapeMismatch
)

// String returns the string representation of a Kind
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "TRANSPORT"
	case KindMalformedResponse:
		return "MALFORMED_RESPONSE"
	case KindUnauthorized:
		return "UNAUTHORIZED"
	case KindNotFound:
		return "NOT_FOUND"
	case KindValidation:
		return "VALIDATION"
	case KindRateLimited:
		return "RATE_LIMITED"
	case KindServerError:
		return "SERVER_ERROR"
	case KindShapeMismatch:
		return "SHAPE_MISMATCH"
	default:
		return "UNKNOWN"
	}
}

// Detail is a single entry of the panel's error payload.
type Detail struct {
	Code   string      `json:"code"`
	Status string      `json:"status"`
	Detail string      `json:"detail"`
	Meta   *DetailMeta `json:"meta,omitempty"`
}

// DetailMeta carries per-field validation information when present.
type DetailMeta struct {
	SourceField string `json:"source_field,omitempty"`
	Rule        string `json:"rule,omitempty"`
}

// Field returns the field name a validation entry refers to, or "".
func (d Detail) Field() string {
	if d.Meta == nil {
		return ""
	}
	return d.Meta.SourceField
}

// errorPayload is the panel's error body: {"errors": [...]}.
type errorPayload struct {
	Errors []Detail `json:"errors"`
}

// Error is the structured error returned by every operation in this module.
type Error struct {
	Kind       Kind
	StatusCode int
	// Details holds the parsed error entries for responses carrying the
	// panel's error payload. Empty for transport and malformed failures.
	Details []Detail
	// ShapeField names the offending field for KindShapeMismatch.
	ShapeField string
	// Body holds a snippet of the raw body for KindMalformedResponse.
	Body  string
	cause error
}

// Error implements the error interface
func (e *Error) Error() string {
	switch e.Kind {
	case KindTransport:
		return fmt.Sprintf("pterodactyl: transport error: %v", e.cause)
	case KindShapeMismatch:
		return fmt.Sprintf("pterodactyl: response shape mismatch on field %q", e.ShapeField)
	case KindMalformedResponse:
		return fmt.Sprintf("pterodactyl: malformed response (status %d): %s", e.StatusCode, e.Body)
	}
	if len(e.Details) > 0 {
		return fmt.Sprintf("pterodactyl: %s (status %d): %s", e.Kind, e.StatusCode, e.Details[0].Detail)
	}
	return fmt.Sprintf("pterodactyl: %s (status %d)", e.Kind, e.StatusCode)
}

// Unwrap returns the underlying cause, if any
func (e *Error) Unwrap() error {
	return e.cause
}

// IsNotFound checks if the error indicates a missing resource
func (e *Error) IsNotFound() bool {
	return e.Kind == KindNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *Error) IsUnauthorized() bool {
	return e.Kind == KindUnauthorized
}

// IsRetryable reports whether the failure class is worth retrying. The
// library itself never retries; callers decide.
func (e *Error) IsRetryable() bool {
	return e.Kind == KindTransport || e.Kind == KindServerError || e.Kind == KindRateLimited
}

// ValidationFields returns the field names of all validation entries.
func (e *Error) ValidationFields() []string {
	var fields []string
	for _, d := range e.Details {
		if f := d.Field(); f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

// transportError wraps a pre-response network failure.
func transportError(err error) *Error {
	return &Error{Kind: KindTransport, cause: err}
}

// shapeMismatchError reports a decoded value violating its declared type.
func shapeMismatchError(field string, cause error) *Error {
	return &Error{Kind: KindShapeMismatch, ShapeField: field, cause: cause}
}

// malformedError reports a body that does not match any expected shape.
func malformedError(status int, body []byte, cause error) *Error {
	return &Error{
		Kind:       KindMalformedResponse,
		StatusCode: status,
		Body:       snippet(body),
		cause:      cause,
	}
}

const snippetLen = 200

// snippet truncates a raw body for inclusion in error messages.
func snippet(body []byte) string {
	if len(body) > snippetLen {
		return string(body[:snippetLen]) + "..."
	}
	return string(body)
}

// mapError converts a non-2xx response into the closed taxonomy. Every
// status reaches exactly one Kind.
func mapError(status int, body []byte) *Error {
	var payload errorPayload
	parseErr := json.Unmarshal(body, &payload)
	parsed := parseErr == nil && len(payload.Errors) > 0

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &Error{Kind: KindUnauthorized, StatusCode: status, Details: payload.Errors}
	case status == http.StatusNotFound:
		return &Error{Kind: KindNotFound, StatusCode: status, Details: payload.Errors}
	case status == http.StatusTooManyRequests:
		return &Error{Kind: KindRateLimited, StatusCode: status, Details: payload.Errors}
	case status >= http.StatusInternalServerError:
		return &Error{Kind: KindServerError, StatusCode: status, Details: payload.Errors, Body: snippet(body)}
	case parsed:
		// 400/422 and friends with a parseable payload are caller-actionable.
		return &Error{Kind: KindValidation, StatusCode: status, Details: payload.Errors}
	default:
		return malformedError(status, body, parseErr)
	}
}
