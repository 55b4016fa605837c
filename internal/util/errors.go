package util

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailRegistered      = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrSubjectNotFound      = errors.New("subject not found")
	ErrSubjectExists        = errors.New("subject with this name and level already exists")
	ErrSubjectNotEmpty      = errors.New("subject still has quizzes")
	ErrQuizNotFound         = errors.New("quiz not found or inactive")
	ErrAttemptNotFound      = errors.New("attempt not found")
	ErrFeedbackNotFound     = errors.New("feedback not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrInvalidSignature     = errors.New("invalid payment signature")
	ErrInvalidOTP           = errors.New("invalid or expired OTP")
	ErrOTPNotVerified       = errors.New("no verified OTP found for this email")
)

// ValidationError marks caller mistakes so controllers can answer 400
// instead of 500.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
