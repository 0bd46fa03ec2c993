package greeting

import (
	"unicode/utf8"

	"github.com/danielgtaylor/huma/v2"
)

// Query is the query contract for the greeting endpoint.
type Query struct {
	Name string `query:"name" doc:"Name to greet; defaults to Hono when absent or empty" example:"Steven"`
}

// Resolve rejects names that do not decode to valid UTF-8 text.
func (q *Query) Resolve(huma.Context) []error {
	if utf8.ValidString(q.Name) {
		return nil
	}
	return []error{&huma.ErrorDetail{
		Message:  "expected string to be valid UTF-8",
		Location: "query.name",
		Value:    q.Name,
	}}
}
