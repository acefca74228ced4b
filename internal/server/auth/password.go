package auth

import (
	"strings"
	"unicode"
)

// Strength classifies how resistant a password is to guessing.
type Strength string

const (
	StrengthWeak   Strength = "weak"
	StrengthMedium Strength = "medium"
	StrengthStrong Strength = "strong"
)

const minPasswordLength = 8

// ValidatePassword enforces the registration password policy. Rules are
// checked in order and only the first violated rule's message is
// returned: minimum length, then lowercase, uppercase, digit.
func ValidatePassword(password string) (bool, string) {
	if len(password) < minPasswordLength {
		return false, "password must be at least 8 characters long"
	}
	if !strings.ContainsFunc(password, unicode.IsLower) {
		return false, "password must contain a lowercase letter"
	}
	if !strings.ContainsFunc(password, unicode.IsUpper) {
		return false, "password must contain an uppercase letter"
	}
	if !strings.ContainsFunc(password, unicode.IsDigit) {
		return false, "password must contain a digit"
	}
	return true, ""
}

// ClassifyStrength rates a password. Anything under the minimum length
// is weak outright. Otherwise one point each for a lowercase letter, an
// uppercase letter, a digit, a non-alphanumeric character, and length of
// twelve or more: four points rate strong, two rate medium.
func ClassifyStrength(password string) Strength {
	if len(password) < minPasswordLength {
		return StrengthWeak
	}

	score := 0
	if strings.ContainsFunc(password, unicode.IsLower) {
		score++
	}
	if strings.ContainsFunc(password, unicode.IsUpper) {
		score++
	}
	if strings.ContainsFunc(password, unicode.IsDigit) {
		score++
	}
	if strings.ContainsFunc(password, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		score++
	}
	if len(password) >= 12 {
		score++
	}

	switch {
	case score >= 4:
		return StrengthStrong
	case score >= 2:
		return StrengthMedium
	default:
		return StrengthWeak
	}
}
