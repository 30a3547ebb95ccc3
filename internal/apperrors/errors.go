// Package apperrors defines the error kinds returned to API clients.
//
// Each kind carries a machine-readable code, a human-readable message and the
// HTTP status it is rendered with. Two errors are considered equal by
// errors.Is when their codes match, so wrapped internal errors still match
// their sentinel.
package apperrors

import (
	"errors"
	"net/http"
)

// Error is a domain error rendered into the uniform error envelope.
type Error struct {
	Code    string
	Message string
	Status  int
	Err     error // underlying cause, never shown to clients
}

// New creates a new Error kind.
func New(code, message string, status int) *Error {
	return &Error{Code: code, Message: message, Status: status}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Code + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// WithMessage returns a copy of e carrying a different message.
func (e *Error) WithMessage(message string) *Error {
	cp := *e
	cp.Message = message
	return &cp
}

// Wrap returns a copy of e that records cause.
func (e *Error) Wrap(cause error) *Error {
	cp := *e
	cp.Err = cause
	return &cp
}

var (
	ErrInvalidRequest = New("INVALID_REQUEST",
		"Invalid request. Please provide all required fields: username, email, password, full_name.",
		http.StatusConflict)
	ErrUsernameExists = New("USERNAME_EXISTS",
		"The provided username is already taken. Please choose a different username.",
		http.StatusConflict)
	ErrEmailExists = New("EMAIL_EXISTS",
		"The provided email is already registered. Please use a different email address.",
		http.StatusConflict)
	ErrInvalidPassword = New("INVALID_PASSWORD",
		"The provided password does not meet the requirements. Password must be at least 8 characters long and contain a mix of uppercase and lowercase letters, numbers, and special characters.",
		http.StatusConflict)
	ErrInvalidAge = New("INVALID_AGE",
		"Invalid age value. Age must be a positive integer.",
		http.StatusConflict)
	ErrGenderRequired = New("GENDER_REQUIRED",
		"Gender field is required. Please specify the gender (e.g., male, female, non-binary).",
		http.StatusConflict)

	ErrMissingFields = New("MISSING_FIELDS",
		"Missing fields. Please provide both username and password.",
		http.StatusConflict)
	ErrInvalidCredentials = New("INVALID_CREDENTIALS",
		"Invalid credentials. The provided username or password is incorrect.",
		http.StatusConflict)

	ErrInvalidToken = New("INVALID_TOKEN",
		"Invalid access token provided",
		http.StatusConflict)

	ErrInvalidKey = New("INVALID_KEY",
		"The provided key is not valid or missing",
		http.StatusConflict)
	ErrInvalidValue = New("INVALID_VALUE",
		"The provided value is not valid or missing",
		http.StatusConflict)
	ErrKeyExists = New("KEY_EXISTS",
		"The provided key already exists in the database. To update an existing key, use the update API",
		http.StatusConflict)
	ErrKeyNotFound = New("KEY_NOT_FOUND",
		"The provided key does not exist in the database",
		http.StatusNotFound)

	ErrInternal = New("INTERNAL_SERVER_ERROR",
		"An internal server error occurred. Please try again later.",
		http.StatusInternalServerError)
)

// Internal wraps an unexpected failure as INTERNAL_SERVER_ERROR.
func Internal(cause error) *Error {
	return ErrInternal.Wrap(cause)
}

// From converts any error into an *Error, treating unknown errors as internal.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
