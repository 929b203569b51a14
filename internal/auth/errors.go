package auth

import "errors"

var (
	// ErrValidation covers missing or malformed input, including weak
	// passwords. The wrapped message is safe to show to the caller.
	ErrValidation = errors.New("validation failed")

	// ErrEmailTaken is returned by Register when the email already exists.
	ErrEmailTaken = errors.New("email already exists")

	// ErrEmailNotFound is returned when no account matches the email.
	ErrEmailNotFound = errors.New("email address is not registered")

	// ErrWrongPassword is returned by Login on a password mismatch.
	ErrWrongPassword = errors.New("incorrect password")

	// ErrInvalidToken is returned when a reset token is unknown, expired,
	// or already consumed.
	ErrInvalidToken = errors.New("password reset token is invalid or has expired")

	// ErrSamePassword is returned when a reset supplies the current password.
	ErrSamePassword = errors.New("new password matches current password")

	// ErrUnauthenticated is returned when a session is absent, expired, or
	// its user no longer exists.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrStorage wraps unexpected database failures.
	ErrStorage = errors.New("storage failure")

	// ErrNotification wraps email-transport failures.
	ErrNotification = errors.New("failed to send notification")
)
