package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/activities-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux. Static files are served from
// staticDir when it is set.
func NewRouter(handler *handlers.Handler, staticDir string) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("GET /{$}", handler.Root)
	mux.HandleFunc("GET /health", handler.Health)
	mux.HandleFunc("GET /activities", handler.ListActivities)
	mux.HandleFunc("POST /activities/{name}/signup", handler.SignUp)
	mux.HandleFunc("POST /activities/{name}/unregister", handler.Unregister)

	if staticDir != "" {
		mux.Handle("GET /static/", nethttp.StripPrefix("/static/", nethttp.FileServer(nethttp.Dir(staticDir))))
	} else {
		mux.HandleFunc("GET /static/", handler.NotFound)
	}
	return mux
}
