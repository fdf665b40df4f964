package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/zeez-dotcom/test-2-hr-sub003/internal/config"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/handler/http/middleware"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/pkg/jwt"
)

func NewRouter(
	cfg config.AppConfig,
	jwtService jwt.Service,
	payrollHandler PayrollHandler,
	vacationHandler VacationHandler,
	leaveBalanceHandler LeaveBalanceHandler,
	coverageHandler CoverageHandler,
	notificationHandler NotificationHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hr-payroll-core"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.ActorRequired(jwtService.JWTAuth()))

			r.Route("/payroll", func(r chi.Router) {
				r.Post("/generate", payrollHandler.Generate)
				r.Get("/summary", payrollHandler.Summary)
				r.Route("/runs", func(r chi.Router) {
					r.Get("/", payrollHandler.ListRuns)
					r.Get("/{id}", payrollHandler.GetRun)
					r.Delete("/{id}", payrollHandler.DeleteRun)
				})
			})

			r.Route("/vacations", func(r chi.Router) {
				r.Post("/", vacationHandler.Submit)
				r.Get("/{id}", vacationHandler.Get)
				r.Post("/{id}/action", vacationHandler.Action)
				r.Post("/{id}/cancel", vacationHandler.Cancel)
				r.Post("/{id}/complete", vacationHandler.Complete)
			})

			r.Get("/leave-balance", leaveBalanceHandler.GetBalance)

			r.Get("/coverage", coverageHandler.Check)
			r.Post("/assignments/validate", coverageHandler.ValidateAssignment)

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Post("/read", notificationHandler.MarkAsRead)
				r.Get("/stream", notificationHandler.Stream)
			})
		})
	})

	return r
}
