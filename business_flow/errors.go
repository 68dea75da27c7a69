// Package businessflow contains the core business logic flows of the application
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow errors
var (
	// Account errors
	ErrUsernameAlreadyExists = errors.New("username already in use")
	ErrEmailAlreadyExists    = errors.New("email already in use")
	ErrPasswordMismatch      = errors.New("password confirmation mismatch")
	ErrUserNotFound          = errors.New("user not found")
	ErrIncorrectPassword     = errors.New("incorrect password")
	ErrAccountDisabled       = errors.New("account is disabled")
	ErrAccountLocked         = errors.New("account is locked")
	ErrTermsNotAgreed        = errors.New("terms must be agreed")

	// Inquiry and application errors
	ErrPrivacyNotAgreed         = errors.New("privacy agreement is required")
	ErrCertificationRequired    = errors.New("at least one certification is required")
	ErrInquiryNotFound          = errors.New("inquiry not found")
	ErrApplicationNotFound      = errors.New("application not found")
	ErrInvalidStatus            = errors.New("invalid status value")
	ErrInvalidCertificationType = errors.New("invalid certification type")
	ErrInvalidInterestType      = errors.New("invalid interest type")
	ErrInvalidInterviewDate     = errors.New("invalid interview date")
)

// BusinessError represents a business logic error with additional context
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsUsernameAlreadyExists checks if error is username conflict
func IsUsernameAlreadyExists(err error) bool {
	return errors.Is(err, ErrUsernameAlreadyExists)
}

// IsEmailAlreadyExists checks if error is email conflict
func IsEmailAlreadyExists(err error) bool {
	return errors.Is(err, ErrEmailAlreadyExists)
}

// IsPasswordMismatch checks if error is password confirmation mismatch
func IsPasswordMismatch(err error) bool {
	return errors.Is(err, ErrPasswordMismatch)
}

// IsUserNotFound checks if error is user not found
func IsUserNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

// IsIncorrectPassword checks if error is incorrect password
func IsIncorrectPassword(err error) bool {
	return errors.Is(err, ErrIncorrectPassword)
}

// IsAccountDisabled checks if error is account disabled
func IsAccountDisabled(err error) bool {
	return errors.Is(err, ErrAccountDisabled)
}

// IsAccountLocked checks if error is account locked
func IsAccountLocked(err error) bool {
	return errors.Is(err, ErrAccountLocked)
}

// IsPrivacyNotAgreed checks if error is missing privacy agreement
func IsPrivacyNotAgreed(err error) bool {
	return errors.Is(err, ErrPrivacyNotAgreed)
}

// IsCertificationRequired checks if error is missing certification
func IsCertificationRequired(err error) bool {
	return errors.Is(err, ErrCertificationRequired)
}

// IsBadRequest checks if error is a client-side business rule violation
// that has no dedicated predicate
func IsBadRequest(err error) bool {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code == "INVALID_PHONE"
	}
	return errors.Is(err, ErrTermsNotAgreed)
}

// IsNotFound checks if error is a missing inquiry or application
func IsNotFound(err error) bool {
	return errors.Is(err, ErrInquiryNotFound) ||
		errors.Is(err, ErrApplicationNotFound) ||
		errors.Is(err, ErrUserNotFound)
}

// IsInvalidStatus checks if error is an unrecognized status value
func IsInvalidStatus(err error) bool {
	return errors.Is(err, ErrInvalidStatus)
}

// IsInvalidFilter checks if error is an unrecognized filter key
func IsInvalidFilter(err error) bool {
	return errors.Is(err, ErrInvalidCertificationType) ||
		errors.Is(err, ErrInvalidInterestType)
}

// IsInvalidInterviewDate checks if error is a malformed interview date
func IsInvalidInterviewDate(err error) bool {
	return errors.Is(err, ErrInvalidInterviewDate)
}
