package common

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// passwordSymbols is the fixed punctuation set accepted by the strength
// policy. It matches the set the backend enforces on registration.
const passwordSymbols = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// CheckPasswordStrength validates a candidate password against the
// registration policy: at least MinPasswordLength characters, one uppercase
// letter, one lowercase letter, one digit, and one symbol from
// passwordSymbols. The returned error wraps ErrPasswordTooWeak and names the
// first unmet requirement, so it can be shown to the user as-is.
func CheckPasswordStrength(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrPasswordTooWeak, MinPasswordLength)
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}

	switch {
	case !hasUpper:
		return fmt.Errorf("%w: must contain an uppercase letter", ErrPasswordTooWeak)
	case !hasLower:
		return fmt.Errorf("%w: must contain a lowercase letter", ErrPasswordTooWeak)
	case !hasDigit:
		return fmt.Errorf("%w: must contain a digit", ErrPasswordTooWeak)
	case !hasSymbol:
		return fmt.Errorf("%w: must contain a symbol (%s)", ErrPasswordTooWeak, passwordSymbols)
	}
	return nil
}
