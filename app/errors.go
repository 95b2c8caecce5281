package app

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrTryAgain           = errors.New("Network error. Please try again.")
	ErrSignupFailed       = errors.New("Failed to create account. Username or email might be taken.")
	ErrInvalidCredentials = errors.New("Invalid username or password")
	ErrSaveFailed         = errors.New("Failed to save recipe. Please try again.")
	ErrNotSignedIn        = errors.New("User not authenticated")
	ErrAdminOnly          = errors.New("Admin access required")
	ErrInvalidRating      = errors.New("Rating must be between 1 and 5")
	ErrEmptyComment       = errors.New("Comment is required")
	ErrInvalidCategory    = errors.New("Invalid category. Must be: Breakfast, Lunch, Snacks, or Dinner")
)

// FieldErrors maps a form field to the message shown next to it
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return strings.Join(parts, "; ")
}

func (e FieldErrors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
