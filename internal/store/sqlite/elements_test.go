package sqlite

import (
	"context"
	"testing"

	"github.com/reelrateapp/reelrate-server/internal/domain"
	"github.com/reelrateapp/reelrate-server/internal/store"
)

func TestAddAndGetElement(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	added, err := s.AddElement(ctx, &domain.Element{Title: "Inception"})
	if err != nil {
		t.Fatalf("AddElement: %v", err)
	}
	if added.ID == 0 {
		t.Fatal("expected generated id")
	}
	if added.Title != "Inception" {
		t.Errorf("Title: got %q, want %q", added.Title, "Inception")
	}
	if added.IsDeleted {
		t.Error("IsDeleted: expected false")
	}

	got, err := s.GetElement(ctx, added.ID)
	if err != nil {
		t.Fatalf("GetElement: %v", err)
	}
	if got.ID != added.ID || got.Title != added.Title {
		t.Errorf("fetched row %+v does not match inserted %+v", got, added)
	}
}

func TestGetElement_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetElement(context.Background(), 999)
	if err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetElementByTitle_CaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	added, err := s.AddElement(ctx, &domain.Element{Title: "The Matrix"})
	if err != nil {
		t.Fatalf("AddElement: %v", err)
	}

	for _, title := range []string{"The Matrix", "the matrix", "THE MATRIX"} {
		got, err := s.GetElementByTitle(ctx, title)
		if err != nil {
			t.Fatalf("GetElementByTitle(%q): %v", title, err)
		}
		if got.ID != added.ID {
			t.Errorf("GetElementByTitle(%q): got id %d, want %d", title, got.ID, added.ID)
		}
	}

	if _, err := s.GetElementByTitle(ctx, "No Such Film"); err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateElement(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	added, err := s.AddElement(ctx, &domain.Element{Title: "Alein"})
	if err != nil {
		t.Fatalf("AddElement: %v", err)
	}

	added.Title = "Alien"
	updated, err := s.UpdateElement(ctx, added)
	if err != nil {
		t.Fatalf("UpdateElement: %v", err)
	}
	if updated.Title != "Alien" {
		t.Errorf("Title: got %q, want %q", updated.Title, "Alien")
	}

	_, err = s.UpdateElement(ctx, &domain.Element{ID: 999, Title: "Ghost"})
	if err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound for missing element, got %v", err)
	}
}

func TestDeleteElement(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	added, err := s.AddElement(ctx, &domain.Element{Title: "Dune"})
	if err != nil {
		t.Fatalf("AddElement: %v", err)
	}

	if !s.DeleteElement(ctx, added.ID) {
		t.Fatal("DeleteElement: expected success")
	}

	if _, err := s.GetElement(ctx, added.ID); err != store.ErrNotFound {
		t.Errorf("expected row to be gone, got %v", err)
	}

	// Second delete fails without crashing and leaves the store unchanged.
	if s.DeleteElement(ctx, added.ID) {
		t.Error("second DeleteElement: expected failure")
	}
}

func TestDeleteElement_Missing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if s.DeleteElement(ctx, 12345) {
		t.Error("expected failure for missing element")
	}

	count, err := s.CountElements(ctx)
	if err != nil {
		t.Fatalf("CountElements: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no side effect, count = %d", count)
	}
}

func TestDeleteElement_CascadesToTagsAndRates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e, err := s.AddElement(ctx, &domain.Element{Title: "Heat"})
	if err != nil {
		t.Fatalf("AddElement: %v", err)
	}
	if err := s.AddTagToElement(ctx, e.ID, "crime"); err != nil {
		t.Fatalf("AddTagToElement: %v", err)
	}
	if _, err := s.AddRate(ctx, &domain.Rate{ElementID: e.ID, Author: 1, Value: 5}); err != nil {
		t.Fatalf("AddRate: %v", err)
	}

	if !s.DeleteElement(ctx, e.ID) {
		t.Fatal("DeleteElement: expected success")
	}

	tags, err := s.GetTagsByElement(ctx, e.ID)
	if err != nil {
		t.Fatalf("GetTagsByElement: %v", err)
	}
	if len(tags) != 0 {
		t.Errorf("expected no tags after cascade, got %d", len(tags))
	}
	rates, err := s.GetRatesByElement(ctx, e.ID)
	if err != nil {
		t.Fatalf("GetRatesByElement: %v", err)
	}
	if len(rates) != 0 {
		t.Errorf("expected no rates after cascade, got %d", len(rates))
	}
}

func TestListAndCountElements_Visibility(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a, err := s.AddElement(ctx, &domain.Element{Title: "Up"})
	if err != nil {
		t.Fatalf("AddElement: %v", err)
	}
	if _, err := s.AddElement(ctx, &domain.Element{Title: "Brazil"}); err != nil {
		t.Fatalf("AddElement: %v", err)
	}

	// Flag one row deleted; the raw listing still shows it, the count skips it.
	a.IsDeleted = true
	if _, err := s.db.Exec(`UPDATE elements SET is_deleted = 1 WHERE id = ?`, a.ID); err != nil {
		t.Fatalf("flag element: %v", err)
	}

	all, err := s.ListElements(ctx)
	if err != nil {
		t.Fatalf("ListElements: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("ListElements: got %d rows, want 2 (raw variant includes deleted)", len(all))
	}

	count, err := s.CountElements(ctx)
	if err != nil {
		t.Fatalf("CountElements: %v", err)
	}
	if count != 1 {
		t.Errorf("CountElements: got %d, want 1", count)
	}
}

func TestGetElementsPage(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, title := range []string{"A", "B", "C", "D"} {
		if _, err := s.AddElement(ctx, &domain.Element{Title: title}); err != nil {
			t.Fatalf("AddElement: %v", err)
		}
	}

	page, err := s.GetElementsPage(ctx, 2, 1)
	if err != nil {
		t.Fatalf("GetElementsPage: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("got %d rows, want 2", len(page))
	}
	if page[0].Title != "B" || page[1].Title != "C" {
		t.Errorf("got titles %q, %q; want B, C", page[0].Title, page[1].Title)
	}
}
