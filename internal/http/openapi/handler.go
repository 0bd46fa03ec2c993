// Package openapi serves the generated OpenAPI document as a regular operation,
// so the document lists itself next to the other routes.
package openapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/tasker-api/internal/platform/respond"
)

// Output carries the encoded document.
type Output struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

// Register wires the OpenAPI document route into the provided API. The document
// is encoded on every request from the model built during registration.
func Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-openapi",
		Method:      http.MethodGet,
		Path:        "/openapi",
		Summary:     "Get the OpenAPI document",
		Description: "OpenAPI 3 description of this service",
		Tags:        []string{"Documentation"},
		Metadata:    map[string]any{respond.MetadataFixedContent: true},
		Responses: map[string]*huma.Response{
			"200": {
				Description: "OpenAPI document",
				Content: map[string]*huma.MediaType{
					"application/json": {
						Schema: &huma.Schema{Type: huma.TypeObject},
					},
				},
			},
		},
	}, func(context.Context, *struct{}) (*Output, error) {
		doc, err := json.Marshal(api.OpenAPI())
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to encode OpenAPI document", fmt.Errorf("marshal openapi: %w", err))
		}
		return &Output{ContentType: "application/json", Body: doc}, nil
	})
}
