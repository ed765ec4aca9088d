package service

// Error codes returned by service operations.
const (
	ErrCodeValidation      = "VALIDATION"
	ErrCodeUnknownProvider = "UNKNOWN_PROVIDER"
)

// ServiceError is a request-level error with a code for HTTP mapping.
// Errors scoped to one provider or template are reported in their result slot
// instead.
type ServiceError struct {
	Code    string
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// NewValidationError reports a request that cannot be dispatched at all.
func NewValidationError(message string) *ServiceError {
	return &ServiceError{Code: ErrCodeValidation, Message: message}
}

// NewUnknownProviderError reports a request in which no provider resolved.
func NewUnknownProviderError(message string) *ServiceError {
	return &ServiceError{Code: ErrCodeUnknownProvider, Message: message}
}
