// Package validatex contains input validation used by the registration and
// profile flows. Rules mirror what the backend enforces so the user gets
// feedback before a round-trip.
package validatex

import (
	"errors"
	"regexp"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var (
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrPasswordNoUpper  = errors.New("password must contain an uppercase letter")
	ErrPasswordNoLower  = errors.New("password must contain a lowercase letter")
	ErrPasswordNoDigit  = errors.New("password must contain a digit")
)

// Email reports whether s looks like a valid email address.
func Email(s string) error {
	if !emailRe.MatchString(s) {
		return ErrInvalidEmail
	}
	return nil
}

// Password checks password strength: at least 8 characters, one uppercase,
// one lowercase and one digit.
func Password(p []byte) error {
	if len(p) < 8 {
		return ErrPasswordTooShort
	}
	var upper, lower, digit bool
	for _, c := range p {
		switch {
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= '0' && c <= '9':
			digit = true
		}
	}
	if !upper {
		return ErrPasswordNoUpper
	}
	if !lower {
		return ErrPasswordNoLower
	}
	if !digit {
		return ErrPasswordNoDigit
	}
	return nil
}
