package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerRateRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listRates",
		Method:      http.MethodGet,
		Path:        "/api/v1/rates",
		Summary:     "List rates",
		Description: "Returns every rate in the catalog",
		Tags:        []string{"Rates"},
	}, s.handleListRates)

	huma.Register(s.api, huma.Operation{
		OperationID: "getMyRates",
		Method:      http.MethodGet,
		Path:        "/api/v1/rates/me",
		Summary:     "Get own rates",
		Description: "Returns the rates submitted by the authenticated user",
		Tags:        []string{"Rates"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetMyRates)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteRate",
		Method:      http.MethodDelete,
		Path:        "/api/v1/rates/{id}",
		Summary:     "Delete rate",
		Description: "Retracts one of the authenticated user's own rates",
		Tags:        []string{"Rates"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteRate)
}

// === DTOs ===

// ListRatesResponse contains a list of rates.
type ListRatesResponse struct {
	Rates []RateResponse `json:"rates" doc:"List of rates"`
}

// ListRatesOutput wraps the list rates response for Huma.
type ListRatesOutput struct {
	Body ListRatesResponse
}

// DeleteRateInput contains parameters for deleting a rate.
type DeleteRateInput struct {
	Authorization string `header:"Authorization"`
	ID            int64  `path:"id" doc:"Rate ID"`
}

// === Handlers ===

func (s *Server) handleListRates(ctx context.Context, _ *struct{}) (*ListRatesOutput, error) {
	rates, err := s.services.Catalog.ListRates(ctx)
	if err != nil {
		return nil, err
	}

	return &ListRatesOutput{Body: ListRatesResponse{Rates: toRateResponses(rates)}}, nil
}

func (s *Server) handleGetMyRates(ctx context.Context, input *AuthorizedInput) (*ListRatesOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	rates, err := s.services.Catalog.GetRatesByAuthor(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &ListRatesOutput{Body: ListRatesResponse{Rates: toRateResponses(rates)}}, nil
}

func (s *Server) handleDeleteRate(ctx context.Context, input *DeleteRateInput) (*MessageOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	// Only the author may retract a rate. A foreign rate ID looks the
	// same as a missing one.
	rates, err := s.services.Catalog.GetRatesByAuthor(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	owned := false
	for _, r := range rates {
		if r.ID == input.ID {
			owned = true
			break
		}
	}
	if !owned {
		return nil, huma.Error404NotFound("Rate not found")
	}

	if err := s.services.Catalog.DeleteRate(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Rate deleted"}}, nil
}
