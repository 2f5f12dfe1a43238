package validation

import (
	"errors"
)

const (
	PasswordMinLength = 6
	// bcrypt silently truncates input past 72 bytes
	PasswordMaxLength = 72
)

var (
	ErrPasswordMismatch  = errors.New("passwords do not match")
	ErrPasswordUnchanged = errors.New("new password must be different from the current password")
)

// ValidatePassword validates password length
func ValidatePassword(password string) error {
	if len(password) < PasswordMinLength {
		return errors.New("password must be at least 6 characters")
	}

	if len(password) > PasswordMaxLength {
		return errors.New("password must not exceed 72 characters")
	}

	return nil
}

// ValidatePasswordChange checks a new password against its confirmation and the current one.
func ValidatePasswordChange(current, next, confirm string) error {
	if next != confirm {
		return ErrPasswordMismatch
	}
	if next == current {
		return ErrPasswordUnchanged
	}
	return ValidatePassword(next)
}
