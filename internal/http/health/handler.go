package health

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// Register wires the health check route into the provided API.
func Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/health-check",
		Summary:     "Report liveness",
		Description: "Health check",
		Tags:        []string{"Health"},
		Responses: map[string]*huma.Response{
			"200": {Description: "Successful health check response"},
		},
	}, handler)
}

func handler(context.Context, *struct{}) (*Output, error) {
	return &Output{Body: Data{OK: true}}, nil
}
