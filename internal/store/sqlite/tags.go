package sqlite

import (
	"context"
	"strings"

	"github.com/reelrateapp/reelrate-server/internal/domain"
	"github.com/reelrateapp/reelrate-server/internal/store"
)

// tagColumns is the ordered list of columns selected in tag queries.
// Must match the scan order in scanTag.
const tagColumns = `id, element_id, name, is_deleted`

// scanTag scans a sql.Row (or sql.Rows via its Scan method) into a domain.Tag.
func scanTag(scanner interface{ Scan(dest ...any) error }) (*domain.Tag, error) {
	var t domain.Tag
	var isDeleted int

	if err := scanner.Scan(&t.ID, &t.ElementID, &t.Name, &isDeleted); err != nil {
		return nil, err
	}

	t.IsDeleted = isDeleted != 0
	return &t, nil
}

// AddTagToElement attaches a tag to an element. The name is normalized
// before storage, so lookups never depend on the caller's casing.
// The element must exist; inserting against a missing element propagates
// the foreign key fault.
func (s *Store) AddTagToElement(ctx context.Context, elementID int64, name string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tags (element_id, name, is_deleted) VALUES (?, ?, 0)`,
		elementID, domain.NormalizeTagName(name))
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return store.ErrInvalidInput.WithMessage("element does not exist").WithCause(err)
		}
		return err
	}
	return nil
}

// GetTagsByElement returns the active tags attached to an element.
func (s *Store) GetTagsByElement(ctx context.Context, elementID int64) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE element_id = ? AND is_deleted = 0 ORDER BY id ASC`,
		elementID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tags, nil
}

// GetElementsWithTag returns the active elements whose active tags include
// a case-insensitive match for name. Two-step, like the original query
// plan: resolve matching tag rows to element ids, then fetch those
// elements.
func (s *Store) GetElementsWithTag(ctx context.Context, name string) ([]*domain.Element, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT element_id FROM tags WHERE name = ? AND is_deleted = 0`,
		domain.NormalizeTagName(name))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var elements []*domain.Element
	for _, id := range ids {
		e, err := s.GetElement(ctx, id)
		if err == store.ErrNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		elements = append(elements, e)
	}
	return elements, nil
}

// ListTagNames returns the deduplicated set of active tag names.
// Order is not significant.
func (s *Store) ListTagNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT name FROM tags WHERE is_deleted = 0`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

// DeleteTag soft-deletes a tag by flipping its flag.
// Returns store.ErrNotFound if the tag does not exist or is already deleted.
func (s *Store) DeleteTag(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE tags SET is_deleted = 1 WHERE id = ? AND is_deleted = 0`, id)
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
