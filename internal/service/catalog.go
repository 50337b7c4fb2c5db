package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/reelrateapp/reelrate-server/internal/domain"
	"github.com/reelrateapp/reelrate-server/internal/store"
)

// CatalogService handles elements, their tags and their rates.
type CatalogService struct {
	store  store.Store
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(st store.Store, logger *slog.Logger) *CatalogService {
	return &CatalogService{store: st, logger: logger}
}

// ElementRequest contains the writable fields of an element.
type ElementRequest struct {
	Title string `json:"title" validate:"required,min=1,max=500"`
}

// TagRequest contains a tag name to attach to an element.
type TagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// RateRequest contains a rate value for an element.
type RateRequest struct {
	Value int `json:"value" validate:"required,min=1,max=10"`
}

// ListElements returns every element row, deleted ones included.
func (s *CatalogService) ListElements(ctx context.Context) ([]*domain.Element, error) {
	return s.store.ListElements(ctx)
}

// GetElementsPage returns a page of active elements.
func (s *CatalogService) GetElementsPage(ctx context.Context, limit, offset int) ([]*domain.Element, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.GetElementsPage(ctx, limit, offset)
}

// GetElement returns an active element by id.
func (s *CatalogService) GetElement(ctx context.Context, id int64) (*domain.Element, error) {
	return s.store.GetElement(ctx, id)
}

// GetElementByTitle returns an active element by case-insensitive title.
func (s *CatalogService) GetElementByTitle(ctx context.Context, title string) (*domain.Element, error) {
	return s.store.GetElementByTitle(ctx, title)
}

// CreateElement inserts a new element and returns the persisted row.
func (s *CatalogService) CreateElement(ctx context.Context, req ElementRequest) (*domain.Element, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	e, err := s.store.AddElement(ctx, &domain.Element{Title: req.Title})
	if err != nil {
		return nil, err
	}

	s.logger.Info("element created", "element_id", e.ID, "title", e.Title)
	return e, nil
}

// UpdateElement replaces an element's row and returns the persisted state.
func (s *CatalogService) UpdateElement(ctx context.Context, id int64, req ElementRequest) (*domain.Element, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	return s.store.UpdateElement(ctx, &domain.Element{ID: id, Title: req.Title})
}

// DeleteElement hard-deletes an element. The boolean outcome is the whole
// story: false covers both a missing id and a failed transaction.
func (s *CatalogService) DeleteElement(ctx context.Context, id int64) bool {
	return s.store.DeleteElement(ctx, id)
}

// CountElements returns the number of active elements.
func (s *CatalogService) CountElements(ctx context.Context) (int64, error) {
	return s.store.CountElements(ctx)
}

// AddTag attaches a tag to an element.
func (s *CatalogService) AddTag(ctx context.Context, elementID int64, req TagRequest) error {
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	return s.store.AddTagToElement(ctx, elementID, req.Name)
}

// GetTagsByElement returns the active tags attached to an element.
func (s *CatalogService) GetTagsByElement(ctx context.Context, elementID int64) ([]*domain.Tag, error) {
	return s.store.GetTagsByElement(ctx, elementID)
}

// GetElementsWithTag returns the active elements carrying a tag,
// matched case-insensitively.
func (s *CatalogService) GetElementsWithTag(ctx context.Context, name string) ([]*domain.Element, error) {
	return s.store.GetElementsWithTag(ctx, name)
}

// ListTagNames returns the deduplicated set of active tag names.
func (s *CatalogService) ListTagNames(ctx context.Context) ([]string, error) {
	return s.store.ListTagNames(ctx)
}

// DeleteTag soft-deletes a tag.
func (s *CatalogService) DeleteTag(ctx context.Context, id int64) error {
	return s.store.DeleteTag(ctx, id)
}

// ListRates returns all active rates.
func (s *CatalogService) ListRates(ctx context.Context) ([]*domain.Rate, error) {
	return s.store.ListRates(ctx)
}

// GetRatesByAuthor returns the active rates submitted by an author.
func (s *CatalogService) GetRatesByAuthor(ctx context.Context, author int64) ([]*domain.Rate, error) {
	return s.store.GetRatesByAuthor(ctx, author)
}

// GetRatesByElement returns the active rates for an element.
func (s *CatalogService) GetRatesByElement(ctx context.Context, elementID int64) ([]*domain.Rate, error) {
	return s.store.GetRatesByElement(ctx, elementID)
}

// RateElement records the author's rate for an element. A first rate is
// inserted; a repeat rate supersedes the existing one via update, so at
// most one active rate per (author, element) ever exists.
func (s *CatalogService) RateElement(ctx context.Context, author, elementID int64, req RateRequest) (*domain.Rate, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	rate, err := s.store.AddRate(ctx, &domain.Rate{
		ElementID: elementID,
		Author:    author,
		Value:     req.Value,
	})
	if err == nil {
		return rate, nil
	}
	var storeErr *store.Error
	if !errors.As(err, &storeErr) || storeErr.Code != store.ErrAlreadyExists.Code {
		return nil, err
	}

	// Supersede the existing active rate.
	existing, err := s.findActiveRate(ctx, author, elementID)
	if err != nil {
		return nil, fmt.Errorf("find existing rate: %w", err)
	}
	existing.Value = req.Value
	return s.store.UpdateRate(ctx, existing)
}

// DeleteRate soft-deletes a rate. Only the author may retract their own
// rate; the ownership check lives at the API layer.
func (s *CatalogService) DeleteRate(ctx context.Context, id int64) error {
	return s.store.DeleteRate(ctx, id)
}

func (s *CatalogService) findActiveRate(ctx context.Context, author, elementID int64) (*domain.Rate, error) {
	rates, err := s.store.GetRatesByElement(ctx, elementID)
	if err != nil {
		return nil, err
	}
	for _, r := range rates {
		if r.Author == author {
			return r, nil
		}
	}
	return nil, store.ErrNotFound
}
