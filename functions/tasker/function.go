// Package tasker exposes the Tasker API as an HTTP Cloud Function.
package tasker

import (
	"net/http"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	"github.com/janisto/tasker-api/internal/platform/config"
	applog "github.com/janisto/tasker-api/internal/platform/logging"
	"github.com/janisto/tasker-api/internal/platform/respond"
	"github.com/janisto/tasker-api/internal/server"
)

var (
	handlerOnce sync.Once
	handler     http.Handler
	handlerErr  error
)

func init() {
	functions.HTTP("Tasker", serve)
}

// loadHandler builds the API handler once per instance.
func loadHandler() (http.Handler, error) {
	handlerOnce.Do(func() {
		cfg, err := config.Parse()
		if err != nil {
			handlerErr = err
			return
		}
		handler = server.NewHandler(cfg)
	})
	return handler, handlerErr
}

func serve(w http.ResponseWriter, r *http.Request) {
	h, err := loadHandler()
	if err != nil {
		applog.LogError(r.Context(), "function init error", err)
		respond.WriteProblem(w, r, http.StatusInternalServerError, "service misconfigured")
		return
	}
	h.ServeHTTP(w, r)
}
