package llm

import (
	"errors"
	"fmt"
)

// ErrInvalidJSON reports a model response that could not be parsed as the
// requested structure.
var ErrInvalidJSON = errors.New("llm: invalid JSON from model")

// ErrorKind classifies provider failures.
type ErrorKind int

const (
	KindGeneric ErrorKind = iota
	KindRateLimited
	KindAuthFailed
	KindNotFound
	KindTimeout
)

func (k ErrorKind) String() string {
	switch k {
	case KindRateLimited:
		return "rate_limited"
	case KindAuthFailed:
		return "auth_failed"
	case KindNotFound:
		return "not_found"
	case KindTimeout:
		return "timeout"
	default:
		return "generic"
	}
}

// ProviderError wraps a provider failure with its classification.
type ProviderError struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("llm: %s (status %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("llm: %s: %s", e.Kind, e.Message)
}

// PermanentError indicates an error that will not resolve with retries.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

func NewPermanentError(err error) error {
	return &PermanentError{Err: err}
}

// IsPermanent reports whether err carries a PermanentError anywhere in
// its chain.
func IsPermanent(err error) bool {
	var pe *PermanentError
	return errors.As(err, &pe)
}

// classifyStatus maps an HTTP status to an error, marking the
// non-retryable ones permanent.
func classifyStatus(status int, message string) error {
	var kind ErrorKind
	switch {
	case status == 401 || status == 403:
		kind = KindAuthFailed
	case status == 404:
		kind = KindNotFound
	case status == 408 || status == 504:
		kind = KindTimeout
	case status == 429:
		kind = KindRateLimited
	default:
		kind = KindGeneric
	}
	perr := &ProviderError{Kind: kind, Status: status, Message: message}
	if kind == KindAuthFailed || kind == KindNotFound || (status >= 400 && status < 429) {
		return NewPermanentError(perr)
	}
	return perr
}
