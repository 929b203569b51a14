package auth

import (
	"fmt"
	"regexp"
	"strings"
)

// emailPattern matches the address format the original registration form
// enforced. Matching is case-sensitive.
var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

const passwordSymbols = "@$!%*?&"

const weakPasswordMessage = "Password must include at least one uppercase letter, " +
	"one lowercase letter, one number, and one special character"

// ValidateEmail checks the address shape only; deliverability is not our
// problem.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: Email is required", ErrValidation)
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: Please provide a valid email address", ErrValidation)
	}
	return nil
}

// ValidatePassword enforces the strength policy: at least 8 characters drawn
// from letters, digits, and the fixed symbol set, with at least one of each
// class present.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: %s", ErrValidation, weakPasswordMessage)
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		default:
			// Anything outside the allowed alphabet fails the policy.
			return fmt.Errorf("%w: %s", ErrValidation, weakPasswordMessage)
		}
	}

	if !hasLower || !hasUpper || !hasDigit || !hasSymbol {
		return fmt.Errorf("%w: %s", ErrValidation, weakPasswordMessage)
	}
	return nil
}
