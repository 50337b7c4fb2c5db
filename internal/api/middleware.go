package api

import (
	"strconv"

	"github.com/danielgtaylor/huma/v2"
	"github.com/reelrateapp/reelrate-server/internal/http/response"
)

// EnvelopeTransformer wraps every response body in the standard envelope
// so huma operations and plain handlers share one wire format.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	if v == nil {
		return v, nil
	}

	code, err := strconv.Atoi(status)
	if err != nil {
		code = 200
	}

	if apiErr, ok := v.(*APIError); ok {
		return &response.Envelope{
			Success: false,
			Error:   apiErr.Message,
		}, nil
	}

	return &response.Envelope{
		Success: code < 400,
		Data:    v,
	}, nil
}
