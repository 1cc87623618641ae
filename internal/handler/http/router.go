package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/loomhr/leave-backend-go/internal/handler/http/middleware"
	"github.com/loomhr/leave-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	allowedOrigins []string,
	leaveHandler LeaveHandler,
	slaHandler SLAHandler,
	eligibilityHandler EligibilityHandler,
	notificationHandler NotificationHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "leave-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// SSE stream authenticates via its own short-lived token.
		r.Get("/notifications/stream", notificationHandler.Stream)

		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", leaveHandler.Submit)
				r.Get("/", leaveHandler.List)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireReviewer)
					r.Get("/pending", leaveHandler.ListPending)
				})

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", leaveHandler.Get)
					r.Patch("/", leaveHandler.Edit)
					r.Delete("/", leaveHandler.Delete)
					r.Get("/sla", slaHandler.GetRequestSLA)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireReviewer)
						r.Post("/decision", leaveHandler.Decide)
					})
				})
			})

			r.Route("/sla", func(r chi.Router) {
				r.Get("/config", slaHandler.GetConfig)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Put("/config", slaHandler.UpdateConfig)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireReviewer)
					r.Get("/stats", slaHandler.Stats)
					r.Get("/trend", slaHandler.Trend)
				})
			})

			r.Route("/eligibility", func(r chi.Router) {
				r.Use(middleware.RequireReviewer)
				r.Get("/employees/{id}", eligibilityHandler.EvaluateEmployee)
				r.Get("/requests/{id}", eligibilityHandler.EvaluateRequest)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Post("/read", notificationHandler.MarkAsRead)
				r.Post("/read-all", notificationHandler.MarkAllAsRead)
				r.Post("/sse-token", notificationHandler.GetSSEToken)
			})
		})
	})

	return r
}
