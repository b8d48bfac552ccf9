package api

import (
	"net/http"

	"github.com/cropcraft/server/internal/api/handlers"
	"github.com/cropcraft/server/internal/api/middleware"
	"github.com/cropcraft/server/internal/api/problem"
	"github.com/cropcraft/server/internal/auth"
	"github.com/cropcraft/server/internal/config"
	"github.com/cropcraft/server/internal/domain/contacts"
	"github.com/cropcraft/server/internal/domain/hero"
	"github.com/cropcraft/server/internal/domain/services"
	"github.com/cropcraft/server/internal/domain/users"
	"github.com/cropcraft/server/internal/metrics"
	"github.com/cropcraft/server/internal/storage"
	"github.com/rs/zerolog"
)

// RouterDeps is everything the router needs from the process. Notifier may
// be nil. Contacts, when set, is used instead of building a contacts service
// from Store and Notifier, so the caller can drain its notifications.
type RouterDeps struct {
	Config   config.Config
	Store    storage.Repository
	Notifier contacts.Notifier
	Contacts *contacts.Service
	Logger   zerolog.Logger
	Build    BuildInfo
}

// NewRouter builds the content API and the operational endpoints behind the
// global middleware chain.
func NewRouter(deps RouterDeps) http.Handler {
	cfg := deps.Config
	env := cfg.Environment
	prefix := cfg.Server.APIPrefix

	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry, cfg.Auth.Issuer)
	requireAdmin := middleware.JWTAuth(tokens, env)

	authHandler := handlers.NewAuthHandler(users.NewService(deps.Store.Users(), tokens, deps.Logger), env)
	heroHandler := handlers.NewHeroHandler(hero.NewService(deps.Store.Hero()), env)
	servicesHandler := handlers.NewServicesHandler(services.NewService(deps.Store.Services()), env)
	contactsService := deps.Contacts
	if contactsService == nil {
		contactsService = contacts.NewService(deps.Store.Contacts(), deps.Notifier, deps.Logger)
	}
	contactsHandler := handlers.NewContactsHandler(contactsService, env)
	health := handlers.NewHealthChecker(deps.Store, deps.Build.Version, deps.Build.GitCommit)

	mux := http.NewServeMux()

	mux.Handle("GET /healthz", handlers.Healthz())
	mux.Handle("GET /readyz", handlers.Readyz(deps.Store))
	mux.Handle("GET /health", health.Health())
	mux.Handle("GET /version", VersionHandler(deps.Build))
	mux.Handle("GET /metrics", metrics.Handler())

	mux.HandleFunc("POST "+prefix+"/auth/register", authHandler.Register)
	mux.HandleFunc("POST "+prefix+"/hero/admin/login", authHandler.Login)

	mux.HandleFunc("GET "+prefix+"/hero", heroHandler.Get)
	mux.Handle("POST "+prefix+"/hero", requireAdmin(http.HandlerFunc(heroHandler.Create)))
	mux.Handle("PUT "+prefix+"/hero/{id}", requireAdmin(http.HandlerFunc(heroHandler.Update)))

	mux.HandleFunc("GET "+prefix+"/hero/services", servicesHandler.List)
	mux.HandleFunc("POST "+prefix+"/hero/services", servicesHandler.CreateBatch)
	mux.Handle("PUT "+prefix+"/hero/services/{id}", requireAdmin(http.HandlerFunc(servicesHandler.Update)))

	contactLimit := middleware.RequestSize(middleware.ContactMaxBodySize)
	mux.Handle("POST "+prefix+"/hero/contact", contactLimit(http.HandlerFunc(contactsHandler.Create)))
	mux.Handle("GET "+prefix+"/hero/contacts", requireAdmin(http.HandlerFunc(contactsHandler.List)))

	mux.Handle("/", notFound(env))

	// metrics.HTTPMiddleware wraps the mux directly so r.Pattern is visible
	// to it; nothing between Tracing and the mux may replace the request.
	var handler http.Handler = metrics.HTTPMiddleware(mux)
	handler = middleware.PublicRequestSize()(handler)
	handler = middleware.CORS(cfg.CORS, deps.Logger)(handler)
	handler = middleware.SecurityHeaders(cfg.IsProduction())(handler)
	handler = middleware.RequestLogging(deps.Logger)(handler)
	handler = middleware.Tracing(handler)
	handler = middleware.CorrelationID(deps.Logger)(handler)
	return handler
}

func notFound(env string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		problem.Write(w, r, http.StatusNotFound, problem.TypeNotFound, "Not found", nil, env,
			problem.WithMessage("Route not found"))
	})
}
