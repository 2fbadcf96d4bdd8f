package auth

import (
	"errors"
	"strings"
	"unicode"
)

// allowedSymbols is the fixed set of special characters accepted in
// passwords.
const allowedSymbols = "!@#$%^&*()_+-=[]{};':\",.<>/?\\|"

var (
	errPasswordLength = errors.New("password must be 8 to 16 characters")
	errPasswordMix    = errors.New("password must contain a letter, a digit and a special character")
)

// CheckPasswordPolicy validates the signup password composition rule:
// length 8-16 with at least one letter, one digit and one symbol from
// the allowed set. A nil return means the password passes.
func CheckPasswordPolicy(password string) error {
	if len(password) < 8 || len(password) > 16 {
		return errPasswordLength
	}

	var hasLetter, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(allowedSymbols, r):
			hasSymbol = true
		default:
			return errPasswordMix
		}
	}

	if !hasLetter || !hasDigit || !hasSymbol {
		return errPasswordMix
	}
	return nil
}
