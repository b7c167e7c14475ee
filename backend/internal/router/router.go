package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/msgboard/msgboard/backend/internal/setup"
	mw "github.com/msgboard/msgboard/shared/middleware"
)

// New creates the chi router with every route of the API.
func New(deps *setup.Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(mw.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(deps.Metrics.Middleware)
	r.Use(mw.SecurityHeaders(deps.Config.Public.Http.Https))

	// the API is consumed by browser pages served from elsewhere
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.Config.Public.Http.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	h := deps.Handler

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))

	// posting is limited per client IP, reading and moderation are not
	limitPosts := func(next http.HandlerFunc) http.Handler {
		if deps.PostLimiter == nil {
			return next
		}
		return mw.RateLimit(deps.PostLimiter, mw.GetIP)(next)
	}

	r.Route("/api/threads/{board}", func(r chi.Router) {
		r.Get("/", h.ListThreads)
		r.Method(http.MethodPost, "/", limitPosts(h.CreateThread))
		r.Put("/", h.ReportThread)
		r.Delete("/", h.DeleteThread)
	})

	r.Route("/api/replies/{board}", func(r chi.Router) {
		r.Get("/", h.GetReplies)
		r.Method(http.MethodPost, "/", limitPosts(h.CreateReply))
		r.Put("/", h.ReportReply)
		r.Delete("/", h.DeleteReply)
	})

	return r
}
