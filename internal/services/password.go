package services

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 8
	passwordSpecials  = "!@#$%^&*"
)

// IsValidPassword reports whether password has at least eight characters and
// contains a lowercase letter, an uppercase letter, a digit and one of
// !@#$%^&*.
func IsValidPassword(password string) bool {
	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return lower && upper && digit && special && len([]rune(password)) >= minPasswordLength
}

// HashPassword returns the bcrypt hash stored for password. bcrypt reads at
// most 72 bytes, so the password is first reduced to a fixed-size SHA-256
// digest; any accepted password can be hashed.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(passwordDigest(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches a hash from HashPassword.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), passwordDigest(password)) == nil
}

func passwordDigest(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
