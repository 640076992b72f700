package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON         = "INVALID_JSON"
	ErrCodeMissingField        = "MISSING_FIELD"
	ErrCodeProductNotFound     = "PRODUCT_NOT_FOUND"
	ErrCodeInvalidQuantity     = "INVALID_QUANTITY"
	ErrCodeInvalidPhone        = "INVALID_PHONE"
	ErrCodeGeocoderUnavailable = "GEOCODER_UNAVAILABLE"
	ErrCodeUnauthorised        = "UNAUTHORIZED"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// DomainError is a business-rule failure with a stable code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors. An address the provider cannot place and an order no
// restaurant can service are modeled outcomes, not errors, so neither
// appears here.
var (
	ErrProductNotFound     = NewDomainError(ErrCodeProductNotFound, "One or more products not found")
	ErrInvalidQuantity     = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be at least one")
	ErrInvalidPhone        = NewDomainError(ErrCodeInvalidPhone, "Phone number is not a valid mobile-capable number")
	ErrGeocoderUnavailable = NewDomainError(ErrCodeGeocoderUnavailable, "Geocoding service is unavailable, retry later")
)
