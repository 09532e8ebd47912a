package service

import (
	"strings"
	"unicode"

	apperrors "inkwell/internal/errors"
)

// PasswordRule checks one property of a candidate password. The username is
// provided for similarity checks.
type PasswordRule func(password, username string) (ok bool, message string)

// PasswordPolicy runs an ordered list of rules and reports the first failure.
type PasswordPolicy struct {
	rules []PasswordRule
}

// commonPasswords holds passwords rejected outright, matched case-insensitively.
var commonPasswords = map[string]struct{}{
	"password":    {},
	"password1":   {},
	"password123": {},
	"12345678":    {},
	"123456789":   {},
	"1234567890":  {},
	"qwerty":      {},
	"qwerty123":   {},
	"abc123":      {},
	"iloveyou":    {},
	"admin":       {},
	"welcome":     {},
	"letmein":     {},
	"monkey":      {},
	"dragon":      {},
	"sunshine":    {},
	"princess":    {},
	"football":    {},
	"baseball":    {},
	"trustno1":    {},
}

// DefaultPasswordPolicy returns the policy applied at registration and
// password change: minimum length, not entirely numeric, not a common
// password, not too similar to the username.
func DefaultPasswordPolicy() *PasswordPolicy {
	return &PasswordPolicy{
		rules: []PasswordRule{
			minLengthRule(8),
			notNumericRule,
			notCommonRule,
			notSimilarToUsernameRule,
		},
	}
}

// Validate runs the rules in order and returns a field error on "password"
// for the first rule that fails.
func (p *PasswordPolicy) Validate(password, username string) error {
	for _, rule := range p.rules {
		if ok, message := rule(password, username); !ok {
			return apperrors.NewValidation("password", message)
		}
	}
	return nil
}

func minLengthRule(min int) PasswordRule {
	return func(password, _ string) (bool, string) {
		if len(password) < min {
			return false, "This password is too short. It must contain at least 8 characters."
		}
		return true, ""
	}
}

func notNumericRule(password, _ string) (bool, string) {
	for _, r := range password {
		if !unicode.IsDigit(r) {
			return true, ""
		}
	}
	return false, "This password is entirely numeric."
}

func notCommonRule(password, _ string) (bool, string) {
	if _, found := commonPasswords[strings.ToLower(password)]; found {
		return false, "This password is too common."
	}
	return true, ""
}

// minSimilarityLength keeps very short usernames from rejecting every
// password that happens to contain their letters.
const minSimilarityLength = 4

func notSimilarToUsernameRule(password, username string) (bool, string) {
	if len(username) < minSimilarityLength {
		return true, ""
	}
	lowerPassword := strings.ToLower(password)
	lowerUsername := strings.ToLower(username)
	if strings.Contains(lowerPassword, lowerUsername) || strings.Contains(lowerUsername, lowerPassword) {
		return false, "The password is too similar to the username."
	}
	return true, ""
}
