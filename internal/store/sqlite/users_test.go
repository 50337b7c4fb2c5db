package sqlite

import (
	"context"
	"testing"

	"github.com/reelrateapp/reelrate-server/internal/auth"
	"github.com/reelrateapp/reelrate-server/internal/domain"
	"github.com/reelrateapp/reelrate-server/internal/store"
)

// addTestUser inserts a user with a real salted digest for password.
func addTestUser(t *testing.T, s *Store, email, password string) *domain.User {
	t.Helper()
	ctx := context.Background()

	salt, err := auth.NewSalt()
	if err != nil {
		t.Fatalf("NewSalt: %v", err)
	}
	digest, err := auth.Hash(password, salt)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	u, err := s.AddUser(ctx, &domain.User{
		Email:    email,
		Password: digest,
		Salt:     salt,
	})
	if err != nil {
		t.Fatalf("AddUser: %v", err)
	}
	return u
}

func TestAddUser_NormalizesEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := addTestUser(t, s, "Alice@Example.com", "pw12345")
	if u.ID == 0 {
		t.Error("expected generated id")
	}
	if u.Email != "Alice@Example.com" {
		t.Errorf("Email: got %q, want raw form preserved", u.Email)
	}
	if u.NormalizedEmail != "ALICE@EXAMPLE.COM" {
		t.Errorf("NormalizedEmail: got %q, want %q", u.NormalizedEmail, "ALICE@EXAMPLE.COM")
	}

	// Lookup goes through the normalized key, any casing works.
	got, err := s.GetUserByEmail(ctx, "alice@example.COM")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("got id %d, want %d", got.ID, u.ID)
	}
}

func TestAddUser_DuplicateActiveEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	addTestUser(t, s, "dup@example.com", "pw12345")

	salt, _ := auth.NewSalt()
	digest, _ := auth.Hash("other", salt)
	_, err := s.AddUser(ctx, &domain.User{Email: "DUP@example.com", Password: digest, Salt: salt})
	if err == nil {
		t.Fatal("expected error for duplicate active email")
	}
}

func TestAuthenticateUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := addTestUser(t, s, "a@b.com", "pw")

	got, err := s.AuthenticateUser(ctx, "a@b.com", "pw")
	if err != nil {
		t.Fatalf("AuthenticateUser: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("got id %d, want %d", got.ID, u.ID)
	}

	// Case-insensitive on email.
	if _, err := s.AuthenticateUser(ctx, "A@B.COM", "pw"); err != nil {
		t.Errorf("AuthenticateUser with upper-cased email: %v", err)
	}

	// Wrong password is the same absent outcome as unknown email.
	if _, err := s.AuthenticateUser(ctx, "a@b.com", "wrong"); err != store.ErrNotFound {
		t.Errorf("wrong password: expected ErrNotFound, got %v", err)
	}
	if _, err := s.AuthenticateUser(ctx, "nobody@b.com", "pw"); err != store.ErrNotFound {
		t.Errorf("unknown email: expected ErrNotFound, got %v", err)
	}
}

func TestAuthenticateUser_PerUserSalts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Two users with the same password must still authenticate
	// independently; the digest depends on each row's stored salt.
	u1 := addTestUser(t, s, "one@x.com", "shared-pw")
	u2 := addTestUser(t, s, "two@x.com", "shared-pw")
	if u1.Password == u2.Password {
		t.Error("same password produced identical digests; salts are not per-user")
	}

	if _, err := s.AuthenticateUser(ctx, "one@x.com", "shared-pw"); err != nil {
		t.Errorf("AuthenticateUser u1: %v", err)
	}
	if _, err := s.AuthenticateUser(ctx, "two@x.com", "shared-pw"); err != nil {
		t.Errorf("AuthenticateUser u2: %v", err)
	}
}

func TestDeleteUser_SoftDeleteHidesEverywhere(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := addTestUser(t, s, "a@b.com", "pw")

	if !s.DeleteUser(ctx, u.ID) {
		t.Fatal("DeleteUser: expected success")
	}

	if _, err := s.GetUser(ctx, u.ID); err != store.ErrNotFound {
		t.Errorf("GetUser after delete: expected ErrNotFound, got %v", err)
	}
	if _, err := s.GetUserByEmail(ctx, "a@b.com"); err != store.ErrNotFound {
		t.Errorf("GetUserByEmail after delete: expected ErrNotFound, got %v", err)
	}
	// Even with correct credentials.
	if _, err := s.AuthenticateUser(ctx, "a@b.com", "pw"); err != store.ErrNotFound {
		t.Errorf("AuthenticateUser after delete: expected ErrNotFound, got %v", err)
	}

	// The row itself still exists; delete is logical.
	var isDeleted int
	if err := s.db.QueryRow(`SELECT is_deleted FROM users WHERE id = ?`, u.ID).Scan(&isDeleted); err != nil {
		t.Fatalf("raw row lookup: %v", err)
	}
	if isDeleted != 1 {
		t.Errorf("is_deleted: got %d, want 1", isDeleted)
	}

	// Second delete fails fast: the existence check no longer sees the row.
	if s.DeleteUser(ctx, u.ID) {
		t.Error("second DeleteUser: expected failure")
	}
}

func TestDeleteUser_Missing(t *testing.T) {
	s := newTestStore(t)

	if s.DeleteUser(context.Background(), 999) {
		t.Error("expected failure for missing user")
	}
}
