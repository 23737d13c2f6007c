package auth

import (
	"regexp"
	"strings"

	"balancegame/apperrors"

	"golang.org/x/crypto/bcrypt"
)

const (
	passwordMinLen   = 8
	passwordMaxLen   = 15
	passwordSpecials = "!@#$%^&*()_~"
)

// Allowed characters only: letters, digits and the fixed special set.
var passwordCharset = regexp.MustCompile(`^[a-zA-Z0-9!@#$%^&*()_~]+$`)

// ValidatePassword enforces the signup password policy: 8-15 characters, at
// least one letter, one digit and one special character from the fixed set.
func ValidatePassword(password string) error {
	policyErr := apperrors.Validation(
		"Password must be 8-15 characters and contain a letter, a digit and one of !@#$%^&*()_~")

	if len(password) < passwordMinLen || len(password) > passwordMaxLen {
		return policyErr
	}
	if !passwordCharset.MatchString(password) {
		return policyErr
	}
	hasLetter := strings.ContainsAny(password, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
	hasDigit := strings.ContainsAny(password, "0123456789")
	hasSpecial := strings.ContainsAny(password, passwordSpecials)
	if !hasLetter || !hasDigit || !hasSpecial {
		return policyErr
	}
	return nil
}

// HashPassword hashes a password with bcrypt; the salt is embedded in the hash.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash reports whether the password matches the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
