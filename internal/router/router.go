package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/auth"
	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/config"
	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/handler"
	mw "github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/middleware"
	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/ws"
)

// Deps carries the wired services the routes need.
type Deps struct {
	Users       *auth.Users
	Utopia      handler.UtopiaClient
	Provisioner *handler.Provisioner
	Failures    handler.FailureStore
	Hub         *ws.Hub
}

// New creates a Chi router with all application routes wired up.
func New(cfg *config.Config, deps Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://uac.theglobal.net", "http://localhost:5050"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	authHandler := handler.NewAuthHandler(deps.Users, cfg.JWTSecret, true)
	authHandler.RegisterRoutes(r)

	// Utopia webhook; authenticated by the shared API relationship, not a
	// session
	callbackHandler := handler.NewCallbackHandler(deps.Utopia, deps.Provisioner)
	callbackHandler.RegisterRoutes(r)

	// WebSocket route (handles auth internally via query param)
	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(deps.Hub, cfg.JWTSecret, w, r)
	})

	// Protected routes (require a session)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		lookupHandler := handler.NewLookupHandler(deps.Utopia, deps.Hub)
		lookupHandler.RegisterRoutes(r)

		createHandler := handler.NewCreateCustomerHandler(deps.Provisioner)
		createHandler.RegisterRoutes(r)

		failuresHandler := handler.NewFailuresHandler(deps.Failures)
		failuresHandler.RegisterRoutes(r)
	})

	return r
}
