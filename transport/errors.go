package transport

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed TMDB request.
type Kind int

const (
	// KindGeneric is any non-2xx status without a dedicated kind
	KindGeneric Kind = iota
	// KindAuthentication indicates a bad or missing API key (401)
	KindAuthentication
	// KindNotFound indicates the requested resource does not exist (404)
	KindNotFound
	// KindRateLimited indicates the request count exceeded the allowed limit (429)
	KindRateLimited
	// KindTransport indicates a network or redirect-layer fault with no usable response
	KindTransport
)

// String returns the string representation of a Kind
func (k Kind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindNotFound:
		return "not_found"
	case KindRateLimited:
		return "rate_limited"
	case KindTransport:
		return "transport"
	default:
		return "generic"
	}
}

// Error messages surfaced to callers.
const (
	msgAuthentication   = "Invalid API key or authentication failed"
	msgNotFound         = "Resource not found"
	msgRateLimited      = "Rate limit exceeded"
	msgTooManyRedirects = "Too many redirects"
)

// Sentinel errors matched by errors.Is against any *Error of the same kind.
var (
	// ErrAuthentication indicates authentication failure
	ErrAuthentication = errors.New("tmdb: authentication failed")
	// ErrNotFound indicates resource not found
	ErrNotFound = errors.New("tmdb: resource not found")
	// ErrRateLimited indicates the API rate limit was hit
	ErrRateLimited = errors.New("tmdb: rate limit exceeded")
	// ErrTransport indicates the request never produced a usable response
	ErrTransport = errors.New("tmdb: transport failure")
	// ErrGeneric indicates an unclassified non-2xx response
	ErrGeneric = errors.New("tmdb: request failed")

	// ErrTooManyRedirects is returned by the default redirect policy once the
	// configured redirect limit is exceeded. Custom Doers may return (or wrap)
	// it to get the same classification.
	ErrTooManyRedirects = errors.New("stopped after too many redirects")
)

// Error is the single error type returned by Client. Message is self-sufficient
// for diagnosis; Err preserves the underlying fault, if any.
type Error struct {
	Kind       Kind
	StatusCode int
	Body       string
	Message    string
	Err        error
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrAuthentication:
		return e.Kind == KindAuthentication
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrRateLimited:
		return e.Kind == KindRateLimited
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrGeneric:
		return e.Kind == KindGeneric
	}
	return false
}

// IsNotFound checks if the error indicates a not found response
func (e *Error) IsNotFound() bool {
	return e.Kind == KindNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *Error) IsUnauthorized() bool {
	return e.Kind == KindAuthentication
}

// IsRateLimited checks if the error indicates the rate limit was hit
func (e *Error) IsRateLimited() bool {
	return e.Kind == KindRateLimited
}

// AsError extracts *Error from an error chain.
func AsError(err error) (*Error, bool) {
	var te *Error
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

// classifyStatus maps a non-success response onto the taxonomy.
// Only 4xx codes get dedicated kinds; every 5xx is generic.
func classifyStatus(statusCode int, body string) *Error {
	e := &Error{StatusCode: statusCode, Body: body}

	if statusCode >= http.StatusInternalServerError {
		e.Kind = KindGeneric
		e.Message = fmt.Sprintf("Server error %d: %s", statusCode, body)
		e.Err = fmt.Errorf("%w: %s", ErrGeneric, http.StatusText(statusCode))
		return e
	}

	switch statusCode {
	case http.StatusUnauthorized:
		e.Kind = KindAuthentication
		e.Message = msgAuthentication
	case http.StatusNotFound:
		e.Kind = KindNotFound
		e.Message = msgNotFound
	case http.StatusTooManyRequests:
		e.Kind = KindRateLimited
		e.Message = msgRateLimited
	default:
		e.Kind = KindGeneric
		e.Message = fmt.Sprintf("Client error %d: %s", statusCode, body)
		e.Err = fmt.Errorf("%w: %s", ErrGeneric, http.StatusText(statusCode))
	}
	return e
}

// transportError wraps a fault that produced no response.
func transportError(cause error) *Error {
	if errors.Is(cause, ErrTooManyRedirects) {
		return &Error{Kind: KindTransport, Message: msgTooManyRedirects, Err: cause}
	}
	return &Error{
		Kind:    KindTransport,
		Message: "HTTP request failed: " + cause.Error(),
		Err:     cause,
	}
}
