package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerTagRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTagNames",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags",
		Summary:     "List tag names",
		Description: "Returns the deduplicated set of tag names in use",
		Tags:        []string{"Tags"},
	}, s.handleListTagNames)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTagElements",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags/{name}/elements",
		Summary:     "Get tagged elements",
		Description: "Returns the elements carrying a tag, matched case-insensitively",
		Tags:        []string{"Tags"},
	}, s.handleGetTagElements)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteTag",
		Method:      http.MethodDelete,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Delete tag",
		Description: "Removes a single tag attachment",
		Tags:        []string{"Tags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteTag)
}

// === DTOs ===

// TagNamesResponse contains the set of tag names in use.
type TagNamesResponse struct {
	Names []string `json:"names" doc:"Tag names"`
}

// TagNamesOutput wraps the tag names response for Huma.
type TagNamesOutput struct {
	Body TagNamesResponse
}

// GetTagElementsInput contains parameters for listing tagged elements.
type GetTagElementsInput struct {
	Name string `path:"name" doc:"Tag name"`
}

// TagElementsResponse contains the elements carrying a tag.
type TagElementsResponse struct {
	Elements []ElementResponse `json:"elements" doc:"Elements carrying the tag"`
}

// TagElementsOutput wraps the tag elements response for Huma.
type TagElementsOutput struct {
	Body TagElementsResponse
}

// DeleteTagInput contains parameters for deleting a tag.
type DeleteTagInput struct {
	Authorization string `header:"Authorization"`
	ID            int64  `path:"id" doc:"Tag ID"`
}

// === Handlers ===

func (s *Server) handleListTagNames(ctx context.Context, _ *struct{}) (*TagNamesOutput, error) {
	names, err := s.services.Catalog.ListTagNames(ctx)
	if err != nil {
		return nil, err
	}

	return &TagNamesOutput{Body: TagNamesResponse{Names: names}}, nil
}

func (s *Server) handleGetTagElements(ctx context.Context, input *GetTagElementsInput) (*TagElementsOutput, error) {
	elements, err := s.services.Catalog.GetElementsWithTag(ctx, input.Name)
	if err != nil {
		return nil, err
	}

	return &TagElementsOutput{Body: TagElementsResponse{Elements: toElementResponses(elements)}}, nil
}

func (s *Server) handleDeleteTag(ctx context.Context, input *DeleteTagInput) (*MessageOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.Catalog.DeleteTag(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Tag deleted"}}, nil
}
