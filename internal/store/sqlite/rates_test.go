package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/reelrateapp/reelrate-server/internal/domain"
	"github.com/reelrateapp/reelrate-server/internal/store"
)

func addRateElement(t *testing.T, s *Store, title string) *domain.Element {
	t.Helper()
	e, err := s.AddElement(context.Background(), &domain.Element{Title: title})
	if err != nil {
		t.Fatalf("AddElement: %v", err)
	}
	return e
}

func TestAddRate_ReturnsActiveRow(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	e := addRateElement(t, s, "Inception")

	r, err := s.AddRate(ctx, &domain.Rate{ElementID: e.ID, Author: 7, Value: 5})
	if err != nil {
		t.Fatalf("AddRate: %v", err)
	}
	if r.ID == 0 {
		t.Error("expected generated id")
	}
	if r.ElementID != e.ID || r.Author != 7 || r.Value != 5 {
		t.Errorf("unexpected row: %+v", r)
	}
}

func TestRateUpsertScenario(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	e := addRateElement(t, s, "Inception")

	added, err := s.AddRate(ctx, &domain.Rate{ElementID: e.ID, Author: 7, Value: 5})
	if err != nil {
		t.Fatalf("AddRate: %v", err)
	}

	added.Value = 4
	updated, err := s.UpdateRate(ctx, added)
	if err != nil {
		t.Fatalf("UpdateRate: %v", err)
	}
	if updated.Value != 4 {
		t.Errorf("Value: got %d, want 4", updated.Value)
	}

	// Exactly one active rate for author 7, never two rows.
	rates, err := s.GetRatesByElement(ctx, e.ID)
	if err != nil {
		t.Fatalf("GetRatesByElement: %v", err)
	}
	if len(rates) != 1 {
		t.Fatalf("got %d active rates, want 1", len(rates))
	}
	if rates[0].Author != 7 || rates[0].Value != 4 {
		t.Errorf("unexpected rate: %+v", rates[0])
	}
}

func TestAddRate_DuplicateActivePair(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	e := addRateElement(t, s, "Inception")

	if _, err := s.AddRate(ctx, &domain.Rate{ElementID: e.ID, Author: 7, Value: 5}); err != nil {
		t.Fatalf("AddRate: %v", err)
	}

	_, err := s.AddRate(ctx, &domain.Rate{ElementID: e.ID, Author: 7, Value: 3})
	if !errors.Is(err, store.ErrAlreadyExists) {
		var storeErr *store.Error
		if !errors.As(err, &storeErr) || storeErr.Code != store.ErrAlreadyExists.Code {
			t.Errorf("expected already-exists error, got %v", err)
		}
	}
}

func TestAddRate_MissingElement(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddRate(context.Background(), &domain.Rate{ElementID: 999, Author: 1, Value: 5})
	if err == nil {
		t.Fatal("expected error for missing element")
	}
	var storeErr *store.Error
	if !errors.As(err, &storeErr) || storeErr.Code != store.ErrInvalidInput.Code {
		t.Errorf("expected invalid-input store error, got %v", err)
	}
}

func TestGetRates_Filters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	e1 := addRateElement(t, s, "Inception")
	e2 := addRateElement(t, s, "Memento")

	if _, err := s.AddRate(ctx, &domain.Rate{ElementID: e1.ID, Author: 1, Value: 5}); err != nil {
		t.Fatalf("AddRate: %v", err)
	}
	if _, err := s.AddRate(ctx, &domain.Rate{ElementID: e2.ID, Author: 1, Value: 4}); err != nil {
		t.Fatalf("AddRate: %v", err)
	}
	if _, err := s.AddRate(ctx, &domain.Rate{ElementID: e1.ID, Author: 2, Value: 3}); err != nil {
		t.Fatalf("AddRate: %v", err)
	}

	all, err := s.ListRates(ctx)
	if err != nil {
		t.Fatalf("ListRates: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("ListRates: got %d, want 3", len(all))
	}

	byAuthor, err := s.GetRatesByAuthor(ctx, 1)
	if err != nil {
		t.Fatalf("GetRatesByAuthor: %v", err)
	}
	if len(byAuthor) != 2 {
		t.Errorf("GetRatesByAuthor: got %d, want 2", len(byAuthor))
	}

	byElement, err := s.GetRatesByElement(ctx, e1.ID)
	if err != nil {
		t.Fatalf("GetRatesByElement: %v", err)
	}
	if len(byElement) != 2 {
		t.Errorf("GetRatesByElement: got %d, want 2", len(byElement))
	}
}

func TestDeleteRate_ExcludedFromReads(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	e := addRateElement(t, s, "Inception")

	r, err := s.AddRate(ctx, &domain.Rate{ElementID: e.ID, Author: 7, Value: 5})
	if err != nil {
		t.Fatalf("AddRate: %v", err)
	}

	if err := s.DeleteRate(ctx, r.ID); err != nil {
		t.Fatalf("DeleteRate: %v", err)
	}

	rates, err := s.GetRatesByElement(ctx, e.ID)
	if err != nil {
		t.Fatalf("GetRatesByElement: %v", err)
	}
	if len(rates) != 0 {
		t.Errorf("expected no active rates, got %d", len(rates))
	}

	if err := s.DeleteRate(ctx, r.ID); err != store.ErrNotFound {
		t.Errorf("second DeleteRate: expected ErrNotFound, got %v", err)
	}

	// The pair is free again for a new active rate.
	if _, err := s.AddRate(ctx, &domain.Rate{ElementID: e.ID, Author: 7, Value: 2}); err != nil {
		t.Errorf("AddRate after soft delete: %v", err)
	}
}
