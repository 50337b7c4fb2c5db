package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/reelrateapp/reelrate-server/internal/domain"
	"github.com/reelrateapp/reelrate-server/internal/store"
)

// rateColumns is the ordered list of columns selected in rate queries.
// Must match the scan order in scanRate.
const rateColumns = `id, element_id, author, value, is_deleted`

// scanRate scans a sql.Row (or sql.Rows via its Scan method) into a domain.Rate.
func scanRate(scanner interface{ Scan(dest ...any) error }) (*domain.Rate, error) {
	var r domain.Rate
	var isDeleted int

	if err := scanner.Scan(&r.ID, &r.ElementID, &r.Author, &r.Value, &isDeleted); err != nil {
		return nil, err
	}

	r.IsDeleted = isDeleted != 0
	return &r, nil
}

// ListRates returns all active rates.
func (s *Store) ListRates(ctx context.Context) ([]*domain.Rate, error) {
	return s.queryRates(ctx,
		`SELECT `+rateColumns+` FROM rates WHERE is_deleted = 0 ORDER BY id ASC`)
}

// GetRatesByAuthor returns the active rates submitted by an author.
func (s *Store) GetRatesByAuthor(ctx context.Context, author int64) ([]*domain.Rate, error) {
	return s.queryRates(ctx,
		`SELECT `+rateColumns+` FROM rates WHERE author = ? AND is_deleted = 0 ORDER BY id ASC`,
		author)
}

// GetRatesByElement returns the active rates for an element.
func (s *Store) GetRatesByElement(ctx context.Context, elementID int64) ([]*domain.Rate, error) {
	return s.queryRates(ctx,
		`SELECT `+rateColumns+` FROM rates WHERE element_id = ? AND is_deleted = 0 ORDER BY id ASC`,
		elementID)
}

// AddRate inserts a rate and returns the active rate for that
// author+element pair, re-fetched after the insert. A second active rate
// for the same pair violates the partial unique index and surfaces as
// store.ErrAlreadyExists; updates must supersede, not duplicate.
func (s *Store) AddRate(ctx context.Context, r *domain.Rate) (*domain.Rate, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO rates (element_id, author, value, is_deleted) VALUES (?, ?, ?, ?)`,
		r.ElementID, r.Author, r.Value, boolToInt(r.IsDeleted))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, store.ErrAlreadyExists.WithMessage("author already rated this element").WithCause(err)
		}
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return nil, store.ErrInvalidInput.WithMessage("element does not exist").WithCause(err)
		}
		return nil, err
	}

	return s.getActiveRate(ctx, r.Author, r.ElementID)
}

// UpdateRate performs a full row replace on an existing rate, then
// re-fetches the active rate for the author+element pair, mirroring the
// AddRate pattern.
// Returns store.ErrNotFound if the rate does not exist.
func (s *Store) UpdateRate(ctx context.Context, r *domain.Rate) (*domain.Rate, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE rates SET element_id = ?, author = ?, value = ?, is_deleted = ? WHERE id = ?`,
		r.ElementID, r.Author, r.Value, boolToInt(r.IsDeleted), r.ID)
	if err != nil {
		return nil, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, store.ErrNotFound
	}

	return s.getActiveRate(ctx, r.Author, r.ElementID)
}

// DeleteRate soft-deletes a rate by flipping its flag.
// Returns store.ErrNotFound if the rate does not exist or is already deleted.
func (s *Store) DeleteRate(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE rates SET is_deleted = 1 WHERE id = ? AND is_deleted = 0`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// getActiveRate fetches the single active rate for an author+element pair.
func (s *Store) getActiveRate(ctx context.Context, author, elementID int64) (*domain.Rate, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+rateColumns+` FROM rates WHERE author = ? AND element_id = ? AND is_deleted = 0`,
		author, elementID)

	r, err := scanRate(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// queryRates runs a rate query and drains the rows.
func (s *Store) queryRates(ctx context.Context, query string, args ...any) ([]*domain.Rate, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rates []*domain.Rate
	for rows.Next() {
		r, err := scanRate(rows)
		if err != nil {
			return nil, err
		}
		rates = append(rates, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rates, nil
}
