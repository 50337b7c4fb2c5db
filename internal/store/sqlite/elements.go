package sqlite

import (
	"context"
	"database/sql"

	"github.com/reelrateapp/reelrate-server/internal/domain"
	"github.com/reelrateapp/reelrate-server/internal/store"
)

// elementColumns is the ordered list of columns selected in element queries.
// Must match the scan order in scanElement.
const elementColumns = `id, title, is_deleted`

// scanElement scans a sql.Row (or sql.Rows via its Scan method) into a domain.Element.
func scanElement(scanner interface{ Scan(dest ...any) error }) (*domain.Element, error) {
	var e domain.Element
	var isDeleted int

	if err := scanner.Scan(&e.ID, &e.Title, &isDeleted); err != nil {
		return nil, err
	}

	e.IsDeleted = isDeleted != 0
	return &e, nil
}

// ListElements returns every element row, soft-deleted ones included.
// This is the raw listing variant; CountElements is the active-only one.
func (s *Store) ListElements(ctx context.Context) ([]*domain.Element, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+elementColumns+` FROM elements ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectElements(rows)
}

// GetElementsPage returns a page of active elements ordered by id.
func (s *Store) GetElementsPage(ctx context.Context, limit, offset int) ([]*domain.Element, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+elementColumns+` FROM elements WHERE is_deleted = 0 ORDER BY id ASC LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectElements(rows)
}

// GetElement retrieves an active element by id.
// Returns store.ErrNotFound if no such element exists.
func (s *Store) GetElement(ctx context.Context, id int64) (*domain.Element, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+elementColumns+` FROM elements WHERE id = ? AND is_deleted = 0`, id)

	e, err := scanElement(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// GetElementByTitle retrieves an active element by exact title,
// compared case-insensitively.
// Returns store.ErrNotFound if no such element exists.
func (s *Store) GetElementByTitle(ctx context.Context, title string) (*domain.Element, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+elementColumns+` FROM elements WHERE title = ? COLLATE NOCASE AND is_deleted = 0`, title)

	e, err := scanElement(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// AddElement inserts a new element and returns the persisted row with its
// generated id. Single-statement insert, not transactional.
func (s *Store) AddElement(ctx context.Context, e *domain.Element) (*domain.Element, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO elements (title, is_deleted) VALUES (?, ?)`,
		e.Title, boolToInt(e.IsDeleted))
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return s.GetElement(ctx, id)
}

// UpdateElement performs a full row replace and returns the persisted row.
// Returns store.ErrNotFound if the element does not exist.
func (s *Store) UpdateElement(ctx context.Context, e *domain.Element) (*domain.Element, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE elements SET title = ?, is_deleted = ? WHERE id = ?`,
		e.Title, boolToInt(e.IsDeleted), e.ID)
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

	return s.GetElement(ctx, e.ID)
}

// DeleteElement hard-deletes an element by id and reports the outcome as
// a boolean. The existence check runs before any transaction is opened;
// an absent id fails fast with no store mutation. The removal itself runs
// inside a transaction: commit on success, rollback on any failure, so
// the row is either fully gone or fully untouched.
func (s *Store) DeleteElement(ctx context.Context, id int64) bool {
	if _, err := s.GetElement(ctx, id); err != nil {
		return false
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Warn("delete element: begin tx", "id", id, "error", err)
		return false
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM elements WHERE id = ?`, id); err != nil {
		s.logger.Warn("delete element: exec", "id", id, "error", err)
		return false
	}

	if err := tx.Commit(); err != nil {
		s.logger.Warn("delete element: commit", "id", id, "error", err)
		return false
	}
	return true
}

// CountElements returns the number of active elements.
func (s *Store) CountElements(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM elements WHERE is_deleted = 0`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// collectElements drains rows into a slice.
func collectElements(rows *sql.Rows) ([]*domain.Element, error) {
	var elements []*domain.Element
	for rows.Next() {
		e, err := scanElement(rows)
		if err != nil {
			return nil, err
		}
		elements = append(elements, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return elements, nil
}
