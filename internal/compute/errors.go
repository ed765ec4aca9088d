package compute

import (
	"errors"
	"fmt"
)

// Error codes carried by ProviderError.
const (
	ErrCodeBackendUnavailable = "BACKEND_UNAVAILABLE"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeUnknownProvider    = "UNKNOWN_PROVIDER"
	ErrCodeDiscovery          = "DISCOVERY_FAILED"
	ErrCodeCreation           = "CREATION_FAILED"
	ErrCodeValidation         = "VALIDATION"
)

// ProviderError is scoped to one provider or template unit of work.
type ProviderError struct {
	Code     string
	Provider string
	Field    string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	msg := e.Message
	if e.Provider != "" {
		msg = fmt.Sprintf("%s: %s", e.Provider, msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewNotFoundError reports a template field that does not resolve on provider.
func NewNotFoundError(provider, field, value string) *ProviderError {
	return &ProviderError{
		Code:     ErrCodeNotFound,
		Provider: provider,
		Field:    field,
		Message:  fmt.Sprintf("%s %q is not a valid one for %s", field, value, provider),
	}
}

// NewUnknownProviderError reports a provider name with no registered adapter.
func NewUnknownProviderError(name string) *ProviderError {
	return &ProviderError{
		Code:     ErrCodeUnknownProvider,
		Provider: name,
		Message:  "no adapter registered for provider",
	}
}

// NewValidationError reports a template that cannot be dispatched.
func NewValidationError(provider, field, message string) *ProviderError {
	return &ProviderError{
		Code:     ErrCodeValidation,
		Provider: provider,
		Field:    field,
		Message:  message,
	}
}

// NewDiscoveryError wraps a backend listing failure. Transport and auth
// failures are reported as BackendUnavailable.
func NewDiscoveryError(provider string, err error) *ProviderError {
	code := ErrCodeDiscovery
	if errors.Is(err, ErrBackendUnavailable) {
		code = ErrCodeBackendUnavailable
	}
	return &ProviderError{
		Code:     code,
		Provider: provider,
		Message:  "could not get the instance metadata",
		Err:      err,
	}
}

// NewCreationError wraps a failed batch creation call.
func NewCreationError(provider string, err error) *ProviderError {
	code := ErrCodeCreation
	if errors.Is(err, ErrBackendUnavailable) {
		code = ErrCodeBackendUnavailable
	}
	return &ProviderError{
		Code:     code,
		Provider: provider,
		Message:  "instance creation failed",
		Err:      err,
	}
}

// ErrorCode returns the code of the first ProviderError in err's chain, or ""
// when there is none.
func ErrorCode(err error) string {
	var pErr *ProviderError
	if errors.As(err, &pErr) {
		return pErr.Code
	}
	return ""
}
