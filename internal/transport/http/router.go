package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/restom-api/internal/application/registration"
	"github.com/restom-api/internal/application/session"
	"github.com/restom-api/internal/application/user"
	"github.com/restom-api/internal/config"
	"github.com/restom-api/internal/domain"
	"github.com/restom-api/internal/transport/http/handler"
	appmiddleware "github.com/restom-api/internal/transport/http/middleware"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	registrationSvc := registration.NewService(registration.ServiceDeps{
		RegistrationRepo: deps.RegistrationRepo,
		UserRepo:         deps.UserRepo,
		Mailer:           deps.Mailer,
		Hasher:           deps.Hasher,
		JWTProvider:      deps.JWTProvider,
		OTPTTL:           cfg.OTPTTL,
		DevMode:          !cfg.IsProduction(),
	})
	sessionSvc := session.NewService(session.ServiceDeps{
		UserRepo:    deps.UserRepo,
		Hasher:      deps.Hasher,
		JWTProvider: deps.JWTProvider,
	})
	userSvc := user.NewService(user.ServiceDeps{
		UserRepo: deps.UserRepo,
		Hasher:   deps.Hasher,
		AdminKey: cfg.AdminKey,
	})

	healthH := handler.NewHealthHandler()
	registrationH := handler.NewRegistrationHandler(registrationSvc)
	sessionH := handler.NewSessionHandler(sessionSvc)
	userH := handler.NewUserHandler(userSvc)

	authMw := appmiddleware.Auth(deps.JWTProvider)

	// ── Public routes ────────────────────────────────────────────────────
	r.Get("/", healthH.Root)
	r.Get("/health", healthH.Health)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/request-otp", registrationH.RequestOTP)
		r.Post("/verify-otp", registrationH.VerifyOTP)
		r.Post("/login", sessionH.Login)
		r.Post("/create-admin", userH.CreateAdmin)
	})

	// ── Authenticated routes ─────────────────────────────────────────────
	r.Group(func(r chi.Router) {
		r.Use(authMw)

		r.Get("/users/me", userH.Me)
		r.With(appmiddleware.RequireRole(domain.RoleAdmin, domain.RoleSuperAdmin)).Get("/users", userH.List)
	})

	return r
}
