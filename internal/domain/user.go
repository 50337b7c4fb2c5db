package domain

import "strings"

// User represents an account in the system. The password is stored as a
// salted argon2id digest next to its per-user salt; NormalizedEmail is
// the unique lookup and authentication key, never the raw email.
type User struct {
	ID              int64  `json:"id"`
	Email           string `json:"email"`
	NormalizedEmail string `json:"-"`
	Password        string `json:"-"`
	Salt            string `json:"-"`
	IsDeleted       bool   `json:"is_deleted,omitempty"`
}

// NormalizeEmail folds an email address to its canonical lookup form.
// Stored on the user row at insert time and recomputed for every lookup.
func NormalizeEmail(email string) string {
	return strings.ToUpper(strings.TrimSpace(email))
}
