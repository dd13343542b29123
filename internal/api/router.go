package api

import (
	"fmt"
	"net/http"

	_ "github.com/lockdrop/lockdrop-server/docs"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/lockdrop/lockdrop-server/internal/api/handlers"
	"github.com/lockdrop/lockdrop-server/internal/api/middleware"
	"github.com/rs/cors"
)

// SetupRouter mounts the public surface. All routes are anonymous: the only
// access control in this system is the per-transfer password checked by the
// download handler.
func SetupRouter(h *handlers.Handler, corsOptions cors.Options) http.Handler {
	mux := http.NewServeMux()
	c := cors.New(corsOptions)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})

	mux.HandleFunc("/docs/", httpSwagger.WrapHandler)

	mux.HandleFunc("POST /secure-file", h.CreateSecureFile)
	mux.HandleFunc("GET /download/{id}/info", h.TransferInfo)
	mux.HandleFunc("POST /download/{id}", h.DownloadArchive)

	handler := c.Handler(mux)
	handler = middleware.Logger(handler)
	return handler
}
