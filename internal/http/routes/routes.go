package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/tasker-api/internal/http/greeting"
	"github.com/janisto/tasker-api/internal/http/health"
	"github.com/janisto/tasker-api/internal/http/openapi"
)

// Register wires all HTTP routes into the provided API router. Each operation
// is registered exactly once; the OpenAPI route goes last so the document it
// serves is complete by the time the server accepts requests.
func Register(api huma.API) {
	greeting.Register(api)
	health.Register(api)
	openapi.Register(api)
}
