package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/artfolio/pkg/health"
	"github.com/utafrali/artfolio/pkg/middleware"
)

const serviceName = "artfolio"

// publicMaxAge is the browser cache lifetime of public pages, in seconds.
const publicMaxAge = 60

type Services struct {
	Profiles   ProfileService
	Artworks   ArtworkService
	News       NewsService
	Microsites MicrositeService
	Directory  DirectoryService
	Uploads    UploadService
}

type RouterConfig struct {
	ValidateToken middleware.TokenValidator
	CORS          middleware.CORSConfig
	// PprofCIDRs enables /debug/pprof for these networks when non-empty.
	PprofCIDRs []string
	RateLimit  middleware.RateLimitConfig
	// Media serves uploaded objects under /media/ when the storage backend
	// keeps them in process.
	Media ObjectSource
}

// NewRouter creates a chi router with all artfolio routes registered.
func NewRouter(svc Services, cfg RouterConfig, healthHandler *health.Handler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.PrometheusMetrics(serviceName))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	if len(cfg.PprofCIDRs) > 0 {
		middleware.RegisterPprof(r, cfg.PprofCIDRs, logger)
	}
	if cfg.Media != nil {
		r.Get("/media/*", MediaFiles(cfg.Media))
	}

	profiles := NewProfileHandler(svc.Profiles, logger)
	artworks := NewArtworkHandler(svc.Artworks, logger)
	news := NewNewsHandler(svc.News, logger)
	public := NewPublicHandler(svc.Microsites, svc.Directory, logger)
	uploads := NewUploadHandler(svc.Uploads, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimit, logger))
		r.Use(ContentTypeJSON)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequestLogger(logger))
			r.Use(middleware.CacheControl(publicMaxAge))

			r.Get("/microsites/{username}", public.Microsite)
			r.Get("/artists", public.Artists)
			r.Get("/news", news.Feed)
			r.Get("/news/{id}", news.PublicPost)
		})

		r.Route("/me", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.ValidateToken))
			r.Use(middleware.RequestLogger(logger))
			r.Use(middleware.NoStore)

			r.Get("/profile", profiles.GetProfile)
			r.Put("/profile", profiles.SaveProfile)

			r.Route("/artworks", func(r chi.Router) {
				r.Get("/", artworks.List)
				r.Post("/", artworks.Create)
				r.Put("/order", artworks.Reorder)
				r.Get("/{id}", artworks.Get)
				r.Put("/{id}", artworks.Update)
				r.Delete("/{id}", artworks.Delete)
			})

			r.Route("/news", func(r chi.Router) {
				r.Get("/", news.ListMine)
				r.Post("/", news.Create)
				r.Get("/{id}", news.Get)
				r.Put("/{id}", news.Update)
				r.Delete("/{id}", news.Delete)
				r.Post("/{id}/publish", news.Publish)
				r.Post("/{id}/unpublish", news.Unpublish)
			})

			r.Post("/uploads", uploads.Upload)
		})
	})

	return r
}
