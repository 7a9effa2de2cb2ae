package polygon

import (
	"errors"
	"fmt"
)

// maxErrorBody caps the raw body kept in a FetchError.
const maxErrorBody = 512

// ConfigError reports invalid or missing input: empty ticker, multiplier below 1,
// unknown enum value or an empty secret. Not retryable.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// FetchErrorKind classifies a failed fetch.
type FetchErrorKind int

const (
	// KindTransport covers DNS, connection, TLS failures and non-2xx statuses.
	KindTransport FetchErrorKind = iota + 1
	// KindDecode means the body is not a valid aggregates response.
	KindDecode
	// KindCancelled means the context ended before the response arrived.
	KindCancelled
)

func (k FetchErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	case KindCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is against a *FetchError of the matching kind.
var (
	ErrTransport = errors.New("polygon: transport failure")
	ErrDecode    = errors.New("polygon: decode failure")
	ErrCancelled = errors.New("polygon: request cancelled")
)

// FetchError is returned by Fetch for every non-success outcome.
// StatusCode is 0 when no HTTP response was received.
type FetchError struct {
	Kind       FetchErrorKind
	StatusCode int
	Body       string // truncated raw body, when one was read
	Err        error
}

func (e *FetchError) Error() string {
	msg := "polygon " + e.Kind.String()
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Body != "" {
		msg += ": body: " + e.Body
	}
	return msg
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is matches the sentinel of the error's kind.
func (e *FetchError) Is(target error) bool {
	switch target {
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrDecode:
		return e.Kind == KindDecode
	case ErrCancelled:
		return e.Kind == KindCancelled
	}
	return false
}

func truncateBody(b []byte) string {
	if len(b) <= maxErrorBody {
		return string(b)
	}
	return string(b[:maxErrorBody]) + "...(truncated)"
}
