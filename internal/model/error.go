package model

import "fmt"

// Rejection codes returned by the identity provider.
const (
	AuthCodeEmailExists     = "EMAIL_EXISTS"
	AuthCodeSignInDisabled  = "OPERATION_NOT_ALLOWED"
	AuthCodeEmailNotFound   = "EMAIL_NOT_FOUND"
	AuthCodeInvalidPassword = "INVALID_PASSWORD"
	AuthCodeUserDisabled    = "USER_DISABLED"
	AuthCodeTooManyAttempts = "TOO_MANY_ATTEMPTS_TRY_LATER"
)

// Standard error codes for domain validation failures
const (
	ErrCodeMissingField    = "MISSING_FIELD"
	ErrCodeInvalidPrice    = "INVALID_PRICE"
	ErrCodeNotSignedIn     = "NOT_SIGNED_IN"
	ErrCodeEmptyCart       = "EMPTY_CART"
	ErrCodeProductNotFound = "PRODUCT_NOT_FOUND"
)

// DomainError describes a business-rule violation detected before any
// request leaves the client.
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

// Common domain errors
var (
	ErrNotSignedIn     = NewDomainError(ErrCodeNotSignedIn, "You must be signed in to do that")
	ErrEmptyCart       = NewDomainError(ErrCodeEmptyCart, "The cart is empty")
	ErrProductNotFound = NewDomainError(ErrCodeProductNotFound, "Product not found")
)

// RequestError is returned when the backend answers with a non-success
// status. Message carries the response body when one was readable.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend request failed with status %d", e.Status)
	}
	return fmt.Sprintf("backend request failed with status %d: %s", e.Status, e.Message)
}

// AuthError is returned when the identity provider rejects a sign-up or
// sign-in attempt. Reason holds the provider's rejection code; Message is
// the human-readable text shown to the user.
type AuthError struct {
	Reason  string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
