package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/reelrateapp/reelrate-server/internal/auth"
	"github.com/reelrateapp/reelrate-server/internal/domain"
	"github.com/reelrateapp/reelrate-server/internal/store"
)

// userColumns is the ordered list of columns selected in user queries.
// Must match the scan order in scanUser.
const userColumns = `id, email, normalized_email, password, salt, is_deleted`

// scanUser scans a sql.Row (or sql.Rows via its Scan method) into a domain.User.
func scanUser(scanner interface{ Scan(dest ...any) error }) (*domain.User, error) {
	var u domain.User
	var isDeleted int

	err := scanner.Scan(
		&u.ID,
		&u.Email,
		&u.NormalizedEmail,
		&u.Password,
		&u.Salt,
		&isDeleted,
	)
	if err != nil {
		return nil, err
	}

	u.IsDeleted = isDeleted != 0
	return &u, nil
}

// AddUser inserts a new user and returns the persisted row, looked up by
// normalized email after the insert. The normalized form is computed here,
// never trusted from the caller.
// Returns store.ErrAlreadyExists if an active user already holds the email.
func (s *Store) AddUser(ctx context.Context, u *domain.User) (*domain.User, error) {
	normalized := domain.NormalizeEmail(u.Email)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (email, normalized_email, password, salt, is_deleted)
		VALUES (?, ?, ?, ?, ?)`,
		u.Email,
		normalized,
		u.Password,
		u.Salt,
		boolToInt(u.IsDeleted),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, store.ErrAlreadyExists.WithMessage("email already in use").WithCause(err)
		}
		return nil, err
	}

	return s.GetUserByEmail(ctx, u.Email)
}

// GetUser retrieves an active user by id.
// Returns store.ErrNotFound if the user does not exist or is soft-deleted.
func (s *Store) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ? AND is_deleted = 0`, id)

	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetUserByEmail retrieves an active user by normalized email.
// Returns store.ErrNotFound if the user does not exist or is soft-deleted.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE normalized_email = ? AND is_deleted = 0`,
		domain.NormalizeEmail(email))

	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// AuthenticateUser returns the active user matching the email whose stored
// salted digest verifies against the password. The digest is recomputed
// with the salt stored on the matched row, never a shared or precomputed
// one. Unknown email, soft-deleted user and wrong password are all the
// same store.ErrNotFound outcome, so the caller cannot tell whether the
// email exists.
func (s *Store) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if !auth.Verify(password, u.Salt, u.Password) {
		return nil, store.ErrNotFound
	}

	return u, nil
}

// DeleteUser soft-deletes a user by id and reports the outcome as a
// boolean. The existence check runs before any transaction is opened; an
// absent or already-deleted id fails fast with no store mutation. The
// flag flip runs inside a transaction: commit on success, rollback on any
// failure, leaving the flag unset if the transaction fails.
func (s *Store) DeleteUser(ctx context.Context, id int64) bool {
	if _, err := s.GetUser(ctx, id); err != nil {
		return false
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Warn("delete user: begin tx", "id", id, "error", err)
		return false
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET is_deleted = 1 WHERE id = ?`, id); err != nil {
		s.logger.Warn("delete user: exec", "id", id, "error", err)
		return false
	}

	if err := tx.Commit(); err != nil {
		s.logger.Warn("delete user: commit", "id", id, "error", err)
		return false
	}
	return true
}
