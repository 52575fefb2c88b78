package app

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidUsername    = errors.New("username must be between 4 and 20 characters")
	ErrWeakPassword       = errors.New("password must be at least 8 characters long and contain an uppercase letter, a lowercase letter, a number, and a symbol")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrTitleRequired   = errors.New("title is required")
	ErrTitleTooLong    = errors.New("title must be at most 255 characters")
	ErrContentRequired = errors.New("content is required")

	// ErrNotFoundOrForbidden covers both a missing resource and one owned by
	// someone else; callers must not be able to tell the two apart.
	ErrNotFoundOrForbidden = errors.New("resource not found")
	ErrPostNotFound        = errors.New("post not found")
)

// IsValidation reports whether err is a client input problem that was caught
// before storage was touched.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrInvalidInput,
		ErrInvalidUsername,
		ErrWeakPassword,
		ErrPasswordTooLong,
		ErrTitleRequired,
		ErrTitleTooLong,
		ErrContentRequired,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
