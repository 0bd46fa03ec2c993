package greeting

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

const contentType = "text/plain; charset=utf-8"

// Register wires the greeting route into the provided API.
func Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-greeting",
		Method:      http.MethodGet,
		Path:        "/",
		Summary:     "Greet the caller",
		Description: "Say hello to the user",
		Tags:        []string{"Greeting"},
		Errors:      []int{http.StatusBadRequest},
		Responses: map[string]*huma.Response{
			"200": {
				Description: "Successful greeting response",
				Content: map[string]*huma.MediaType{
					"text/plain": {
						Schema: &huma.Schema{
							Type:     huma.TypeString,
							Examples: []any{"Hello Steven!"},
						},
					},
				},
			},
		},
	}, getHandler)
}

func getHandler(_ context.Context, input *Query) (*Output, error) {
	return &Output{
		ContentType: contentType,
		Body:        []byte(Message(input.Name)),
	}, nil
}
