package http

import (
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/cmlabs-hris/reimbursement-backend-go/internal/config"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// NewLogger builds the JSON logger shared by the request logger and the handlers.
func NewLogger(appCfg config.AppConfig) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(appCfg.Env != "production")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       parseLevel(appCfg.LogLevel),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "reimbursement-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", appCfg.Env),
	)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func NewRouter(
	appCfg config.AppConfig,
	logger *slog.Logger,
	jwtService jwt.Service,
	authService auth.AuthService,
	authHandler AuthHandler,
	userHandler UserHandler,
	reimbursementHandler ReimbursementHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{appCfg.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  parseLevel(appCfg.LogLevel),
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	sessionRequired := func(message string) func(http.Handler) http.Handler {
		return middleware.SessionRequired(authService, message)
	}

	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verify(jwtService.JWTAuth(), jwt.TokenFromSessionCookie, jwtauth.TokenFromHeader))

		r.Route("/users", func(r chi.Router) {
			r.Post("/", userHandler.Register)
			r.Post("/login", authHandler.Login)

			// Requires a session
			r.Group(func(r chi.Router) {
				r.Use(sessionRequired(""))
				r.Post("/logout", authHandler.Logout)
				r.Get("/{userId}", userHandler.Get)

				// Manager only
				r.With(middleware.RequireManager(middleware.DeniedFor("You do not have permission to view all users with %s role!"))).
					Get("/", userHandler.List)
				r.With(middleware.RequireManager(middleware.DeniedFor("You do not have permission to delete a user with %s role!"))).
					Delete("/{userId}", userHandler.Delete)
				r.With(middleware.RequireManager(middleware.DeniedFor("You do not have permission to update a role with %s role!"))).
					Patch("/{userId}", userHandler.UpdateRole)
			})
		})

		r.Route("/reimbursements", func(r chi.Router) {
			r.With(sessionRequired("First, you must be logged in to submit reimbursement!")).
				Post("/", reimbursementHandler.Create)
			r.With(sessionRequired("You must be logged in to get your Reimbursements!")).
				Get("/", reimbursementHandler.List)

			// Requires a session
			r.Group(func(r chi.Router) {
				r.Use(sessionRequired(""))
				r.Get("/summary", reimbursementHandler.Summary)
				r.Get("/status/{status}", reimbursementHandler.ListByStatus)
				r.Delete("/{reimbId}", reimbursementHandler.Delete)
				r.Put("/{reimbId}", reimbursementHandler.UpdateDescription)

				// Manager only
				r.With(middleware.RequireManager(middleware.Denied("You do not have permission to update the status"))).
					Patch("/{reimbId}", reimbursementHandler.UpdateStatus)
			})
		})
	})
	return r
}
