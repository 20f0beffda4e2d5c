// internal/routes/routes.go
package routes

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"fyyur/internal/config"
	"fyyur/internal/handlers"
	appmw "fyyur/internal/middleware"
	"fyyur/internal/repository"
	"fyyur/internal/services"
	"fyyur/internal/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// SetupRoutes builds the router. s3Config may be nil, in which case image
// uploads are disabled.
func SetupRoutes(db *sql.DB, cfg *config.Config, s3Config *config.S3Config, logger *zap.Logger) (*chi.Mux, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	views, err := web.LoadTemplates()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	var images services.ImageStore
	if s3Config != nil && s3Config.Client != nil && s3Config.Bucket != "" {
		images = services.NewS3ImageStore(s3Config)
	}

	catalog := services.NewCatalog(
		repository.NewVenueRepository(db),
		repository.NewArtistRepository(db),
		repository.NewShowRepository(db),
	)
	if cfg.SessionSecret == "" {
		logger.Warn("SESSION_SECRET is not set, using a random session key")
	}
	store := handlers.NewSessionStore([]byte(cfg.SessionSecret))
	base := handlers.NewBaseHandler(catalog, views, images, store, logger)

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(appmw.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.NotFound(base.NotFound)
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	r.Get("/health", healthHandler(db))
	r.Get("/", handlers.NewHomeHandler(base).Index)

	RegisterVenueRoutes(r, handlers.NewVenueHandler(base))
	RegisterArtistRoutes(r, handlers.NewArtistHandler(base))
	RegisterShowRoutes(r, handlers.NewShowHandler(base))

	return r, nil
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		dbStatus := map[string]any{"status": "ok"}
		status := http.StatusOK
		if err := db.PingContext(ctx); err != nil {
			dbStatus = map[string]any{"status": "down", "error": err.Error()}
			status = http.StatusServiceUnavailable
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}
		handlers.WriteJSON(w, status, map[string]any{"status": overall, "db": dbStatus})
	}
}
