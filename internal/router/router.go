package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "pet-marketplace/docs"
	"pet-marketplace/internal/adapters/realtime"
	"pet-marketplace/internal/app"
	"pet-marketplace/internal/domain/certifications"
	"pet-marketplace/internal/domain/clubs"
	"pet-marketplace/internal/domain/competitions"
	"pet-marketplace/internal/domain/courses"
	"pet-marketplace/internal/domain/images"
	"pet-marketplace/internal/domain/kennels"
	"pet-marketplace/internal/domain/matches"
	"pet-marketplace/internal/domain/messages"
	"pet-marketplace/internal/domain/paperwork"
	"pet-marketplace/internal/domain/pets"
	"pet-marketplace/internal/domain/users"
	"pet-marketplace/internal/middleware"
	"pet-marketplace/internal/platform/logger"
	"pet-marketplace/internal/platform/metrics"
	"pet-marketplace/internal/ports/auth"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si no viene, se arma todo in-memory.
	Services *app.Services
	// Hub de websockets; debe ser el mismo que recibe messages.Service como Broadcaster.
	Hub *realtime.Hub

	Log logger.Logger

	// 0 desactiva el rate limit.
	RateLimitRPS   int
	RateLimitBurst int
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	hub := opts.Hub
	if hub == nil {
		hub = realtime.NewHub(log)
	}
	svcs := opts.Services
	if svcs == nil {
		svcs = app.NewServices(app.MemoryStores(), app.Deps{Broadcaster: hub, Log: log})
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(log))
	r.Use(middleware.AccessLog(log))
	r.Use(middleware.AuthContext(opts.AuthVerifier))
	if opts.RateLimitRPS > 0 {
		r.Use(middleware.NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst).Middleware)
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	users.RegisterPublicRoutes(r, svcs.Users, log)

	// Rutas por módulo (todas autenticadas)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser)

		users.RegisterRoutes(r, svcs.Users, log)
		clubs.RegisterRoutes(r, svcs.Clubs, log)
		kennels.RegisterRoutes(r, svcs.Kennels, log)
		pets.RegisterRoutes(r, svcs.Pets, log)
		images.RegisterRoutes(r, svcs.Images, log)
		courses.RegisterRoutes(r, svcs.Courses, log)
		competitions.RegisterRoutes(r, svcs.Competitions, log)
		certifications.RegisterRoutes(r, svcs.Certifications, log)
		paperwork.RegisterRoutes(r, svcs.Paperwork, log)
		matches.RegisterRoutes(r, svcs.Matches, log)
		messages.RegisterRoutes(r, svcs.Messages, hub, log)
	})

	return r
}
