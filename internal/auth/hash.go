// Package auth provides password hashing and session token handling.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const (
	argon2Memory      = 64 * 1024
	argon2Iterations  = 3
	argon2Parallelism = 4
	argon2KeyLength   = 32

	saltLength = 16

	// Prevent huge passwords from consuming CPU/memory during hashing.
	maxPasswordLength = 1024
)

// NewSalt returns a fresh random salt, base64-encoded for storage in the
// user row's salt column.
func NewSalt() (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return base64.RawStdEncoding.EncodeToString(salt), nil
}

// Hash derives the argon2id digest of password under the given salt.
// Deterministic: the same password and salt always produce the same digest.
// Authentication must call this with the salt stored on the matched user row.
func Hash(password, salt string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	if len(password) > maxPasswordLength {
		return "", errors.New("password exceeds maximum length")
	}

	saltBytes, err := base64.RawStdEncoding.DecodeString(salt)
	if err != nil {
		return "", fmt.Errorf("decode salt: %w", err)
	}

	digest := argon2.IDKey(
		[]byte(password),
		saltBytes,
		argon2Iterations,
		argon2Memory,
		argon2Parallelism,
		argon2KeyLength,
	)

	return base64.RawStdEncoding.EncodeToString(digest), nil
}

// Verify reports whether password hashes to digest under salt.
// Comparison is constant-time.
func Verify(password, salt, digest string) bool {
	if len(password) > maxPasswordLength {
		return false
	}

	computed, err := Hash(password, salt)
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}
