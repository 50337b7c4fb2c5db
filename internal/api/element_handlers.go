package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/reelrateapp/reelrate-server/internal/domain"
	"github.com/reelrateapp/reelrate-server/internal/service"
)

func (s *Server) registerElementRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listElements",
		Method:      http.MethodGet,
		Path:        "/api/v1/elements",
		Summary:     "List elements",
		Description: "Returns a page of catalog elements",
		Tags:        []string{"Elements"},
	}, s.handleListElements)

	huma.Register(s.api, huma.Operation{
		OperationID: "lookupElement",
		Method:      http.MethodGet,
		Path:        "/api/v1/elements/lookup",
		Summary:     "Look up element by title",
		Description: "Returns the element with the given title, matched case-insensitively",
		Tags:        []string{"Elements"},
	}, s.handleLookupElement)

	huma.Register(s.api, huma.Operation{
		OperationID: "getElement",
		Method:      http.MethodGet,
		Path:        "/api/v1/elements/{id}",
		Summary:     "Get element",
		Description: "Returns an element by ID",
		Tags:        []string{"Elements"},
	}, s.handleGetElement)

	huma.Register(s.api, huma.Operation{
		OperationID: "createElement",
		Method:      http.MethodPost,
		Path:        "/api/v1/elements",
		Summary:     "Create element",
		Description: "Adds a new element to the catalog",
		Tags:        []string{"Elements"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateElement)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateElement",
		Method:      http.MethodPut,
		Path:        "/api/v1/elements/{id}",
		Summary:     "Update element",
		Description: "Replaces an element's data",
		Tags:        []string{"Elements"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateElement)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteElement",
		Method:      http.MethodDelete,
		Path:        "/api/v1/elements/{id}",
		Summary:     "Delete element",
		Description: "Removes an element and everything attached to it",
		Tags:        []string{"Elements"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteElement)

	huma.Register(s.api, huma.Operation{
		OperationID: "getElementTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/elements/{id}/tags",
		Summary:     "Get element tags",
		Description: "Returns the tags attached to an element",
		Tags:        []string{"Tags"},
	}, s.handleGetElementTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "addElementTag",
		Method:      http.MethodPost,
		Path:        "/api/v1/elements/{id}/tags",
		Summary:     "Tag element",
		Description: "Attaches a tag to an element",
		Tags:        []string{"Tags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAddElementTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "getElementRates",
		Method:      http.MethodGet,
		Path:        "/api/v1/elements/{id}/rates",
		Summary:     "Get element rates",
		Description: "Returns the rates submitted for an element",
		Tags:        []string{"Rates"},
	}, s.handleGetElementRates)

	huma.Register(s.api, huma.Operation{
		OperationID: "rateElement",
		Method:      http.MethodPost,
		Path:        "/api/v1/elements/{id}/rates",
		Summary:     "Rate element",
		Description: "Records the caller's rate for an element, replacing any previous one",
		Tags:        []string{"Rates"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRateElement)
}

// === DTOs ===

// ElementResponse contains element data in API responses.
type ElementResponse struct {
	ID    int64  `json:"id" doc:"Element ID"`
	Title string `json:"title" doc:"Element title"`
}

// ElementOutput wraps the element response for Huma.
type ElementOutput struct {
	Body ElementResponse
}

// ListElementsInput contains parameters for listing elements.
type ListElementsInput struct {
	Limit  int `query:"limit" doc:"Page size (default 50, max 200)"`
	Offset int `query:"offset" doc:"Rows to skip"`
}

// ListElementsResponse contains a page of elements.
type ListElementsResponse struct {
	Elements []ElementResponse `json:"elements" doc:"Page of elements"`
	Total    int64             `json:"total" doc:"Number of elements in the catalog"`
}

// ListElementsOutput wraps the list elements response for Huma.
type ListElementsOutput struct {
	Body ListElementsResponse
}

// LookupElementInput contains parameters for a title lookup.
type LookupElementInput struct {
	Title string `query:"title" required:"true" doc:"Title to look up"`
}

// GetElementInput contains parameters for getting an element.
type GetElementInput struct {
	ID int64 `path:"id" doc:"Element ID"`
}

// ElementRequest is the request body for creating or updating an element.
type ElementRequest struct {
	Title string `json:"title" validate:"required,min=1,max=500" doc:"Element title"`
}

// CreateElementInput wraps the create element request for Huma.
type CreateElementInput struct {
	Authorization string `header:"Authorization"`
	Body          ElementRequest
}

// UpdateElementInput wraps the update element request for Huma.
type UpdateElementInput struct {
	Authorization string `header:"Authorization"`
	ID            int64  `path:"id" doc:"Element ID"`
	Body          ElementRequest
}

// DeleteElementInput contains parameters for deleting an element.
type DeleteElementInput struct {
	Authorization string `header:"Authorization"`
	ID            int64  `path:"id" doc:"Element ID"`
}

// TagResponse contains tag data in API responses.
type TagResponse struct {
	ID        int64  `json:"id" doc:"Tag ID"`
	ElementID int64  `json:"element_id" doc:"Tagged element ID"`
	Name      string `json:"name" doc:"Normalized tag name"`
}

// ElementTagsResponse contains the tags attached to an element.
type ElementTagsResponse struct {
	Tags []TagResponse `json:"tags" doc:"Tags attached to the element"`
}

// ElementTagsOutput wraps the element tags response for Huma.
type ElementTagsOutput struct {
	Body ElementTagsResponse
}

// TagRequest is the request body for tagging an element.
type TagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100" doc:"Tag name"`
}

// AddElementTagInput wraps the tag request for Huma.
type AddElementTagInput struct {
	Authorization string `header:"Authorization"`
	ID            int64  `path:"id" doc:"Element ID"`
	Body          TagRequest
}

// RateResponse contains rate data in API responses.
type RateResponse struct {
	ID        int64 `json:"id" doc:"Rate ID"`
	ElementID int64 `json:"element_id" doc:"Rated element ID"`
	Author    int64 `json:"author" doc:"Rating user ID"`
	Value     int   `json:"value" doc:"Rate value (1-10)"`
}

// RateOutput wraps the rate response for Huma.
type RateOutput struct {
	Body RateResponse
}

// ElementRatesResponse contains the rates submitted for an element.
type ElementRatesResponse struct {
	Rates []RateResponse `json:"rates" doc:"Rates for the element"`
}

// ElementRatesOutput wraps the element rates response for Huma.
type ElementRatesOutput struct {
	Body ElementRatesResponse
}

// RateRequest is the request body for rating an element.
type RateRequest struct {
	Value int `json:"value" validate:"required,min=1,max=10" doc:"Rate value (1-10)"`
}

// RateElementInput wraps the rate request for Huma.
type RateElementInput struct {
	Authorization string `header:"Authorization"`
	ID            int64  `path:"id" doc:"Element ID"`
	Body          RateRequest
}

func toElementResponse(e *domain.Element) ElementResponse {
	return ElementResponse{ID: e.ID, Title: e.Title}
}

func toElementResponses(elements []*domain.Element) []ElementResponse {
	resp := make([]ElementResponse, len(elements))
	for i, e := range elements {
		resp[i] = toElementResponse(e)
	}
	return resp
}

func toTagResponses(tags []*domain.Tag) []TagResponse {
	resp := make([]TagResponse, len(tags))
	for i, t := range tags {
		resp[i] = TagResponse{ID: t.ID, ElementID: t.ElementID, Name: t.Name}
	}
	return resp
}

func toRateResponse(r *domain.Rate) RateResponse {
	return RateResponse{ID: r.ID, ElementID: r.ElementID, Author: r.Author, Value: r.Value}
}

func toRateResponses(rates []*domain.Rate) []RateResponse {
	resp := make([]RateResponse, len(rates))
	for i, r := range rates {
		resp[i] = toRateResponse(r)
	}
	return resp
}

// === Handlers ===

func (s *Server) handleListElements(ctx context.Context, input *ListElementsInput) (*ListElementsOutput, error) {
	elements, err := s.services.Catalog.GetElementsPage(ctx, input.Limit, input.Offset)
	if err != nil {
		return nil, err
	}

	total, err := s.services.Catalog.CountElements(ctx)
	if err != nil {
		return nil, err
	}

	return &ListElementsOutput{Body: ListElementsResponse{
		Elements: toElementResponses(elements),
		Total:    total,
	}}, nil
}

func (s *Server) handleLookupElement(ctx context.Context, input *LookupElementInput) (*ElementOutput, error) {
	e, err := s.services.Catalog.GetElementByTitle(ctx, input.Title)
	if err != nil {
		return nil, err
	}

	return &ElementOutput{Body: toElementResponse(e)}, nil
}

func (s *Server) handleGetElement(ctx context.Context, input *GetElementInput) (*ElementOutput, error) {
	e, err := s.services.Catalog.GetElement(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &ElementOutput{Body: toElementResponse(e)}, nil
}

func (s *Server) handleCreateElement(ctx context.Context, input *CreateElementInput) (*ElementOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	e, err := s.services.Catalog.CreateElement(ctx, service.ElementRequest{Title: input.Body.Title})
	if err != nil {
		return nil, err
	}

	return &ElementOutput{Body: toElementResponse(e)}, nil
}

func (s *Server) handleUpdateElement(ctx context.Context, input *UpdateElementInput) (*ElementOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	e, err := s.services.Catalog.UpdateElement(ctx, input.ID, service.ElementRequest{Title: input.Body.Title})
	if err != nil {
		return nil, err
	}

	return &ElementOutput{Body: toElementResponse(e)}, nil
}

func (s *Server) handleDeleteElement(ctx context.Context, input *DeleteElementInput) (*MessageOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	if !s.services.Catalog.DeleteElement(ctx, input.ID) {
		return nil, huma.Error404NotFound("Element not found")
	}

	return &MessageOutput{Body: MessageResponse{Message: "Element deleted"}}, nil
}

func (s *Server) handleGetElementTags(ctx context.Context, input *GetElementInput) (*ElementTagsOutput, error) {
	tags, err := s.services.Catalog.GetTagsByElement(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &ElementTagsOutput{Body: ElementTagsResponse{Tags: toTagResponses(tags)}}, nil
}

func (s *Server) handleAddElementTag(ctx context.Context, input *AddElementTagInput) (*ElementTagsOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.Catalog.AddTag(ctx, input.ID, service.TagRequest{Name: input.Body.Name}); err != nil {
		return nil, err
	}

	tags, err := s.services.Catalog.GetTagsByElement(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &ElementTagsOutput{Body: ElementTagsResponse{Tags: toTagResponses(tags)}}, nil
}

func (s *Server) handleGetElementRates(ctx context.Context, input *GetElementInput) (*ElementRatesOutput, error) {
	rates, err := s.services.Catalog.GetRatesByElement(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &ElementRatesOutput{Body: ElementRatesResponse{Rates: toRateResponses(rates)}}, nil
}

func (s *Server) handleRateElement(ctx context.Context, input *RateElementInput) (*RateOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	rate, err := s.services.Catalog.RateElement(ctx, user.ID, input.ID, service.RateRequest{Value: input.Body.Value})
	if err != nil {
		return nil, err
	}

	return &RateOutput{Body: toRateResponse(rate)}, nil
}
