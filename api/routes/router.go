package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/perfval/perfval-backend/api/controllers"
	"github.com/perfval/perfval-backend/api/middleware"
	"github.com/perfval/perfval-backend/internal/auth"
	"github.com/perfval/perfval-backend/internal/competencies"
	"github.com/perfval/perfval-backend/internal/employees"
	"github.com/perfval/perfval-backend/internal/goals"
	"github.com/perfval/perfval-backend/internal/performance"
	"github.com/perfval/perfval-backend/pkg/auth/session"
	"github.com/perfval/perfval-backend/pkg/config"
	"github.com/perfval/perfval-backend/pkg/db"
	"github.com/perfval/perfval-backend/pkg/logger"
	"github.com/perfval/perfval-backend/pkg/metrics"
	"github.com/perfval/perfval-backend/pkg/redis"
)

// Deps carries everything the router mounts. All services are required;
// dbClient and redisClient may be nil, which the health endpoint reports.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    *redis.Client
	Sessions session.AccessSessionChecker
	Registry prometheus.Gatherer
	HTTP     *metrics.HTTPMetrics

	Auth         auth.Service
	Employees    employees.Service
	Goals        goals.Service
	Performance  performance.Service
	Competencies competencies.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)
	if deps.HTTP != nil {
		r.Use(middleware.Metrics(deps.HTTP))
	}

	var cache interface {
		Ping(ctx context.Context) error
	}
	if deps.Redis != nil {
		cache = deps.Redis
	}
	r.Get("/health", controllers.Health(deps.DB, cache))
	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	// A nil *redis.Client must not reach the limiter as a typed non-nil
	// interface; without a store the limiter is a pass-through.
	rateLimit := func(policy middleware.AuthRateLimitPolicy) func(http.Handler) http.Handler {
		if deps.Redis == nil {
			return middleware.AuthRateLimit(policy, nil, logg)
		}
		return middleware.AuthRateLimit(policy, deps.Redis, logg)
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.With(rateLimit(loginPolicy)).Post("/login", controllers.Login(deps.Auth, logg))
		r.With(rateLimit(registerPolicy)).Post("/register", controllers.Register(deps.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
			r.Get("/profile", controllers.Profile(deps.Auth, logg))
			r.Put("/profile", controllers.UpdateProfile(deps.Auth, logg))
			r.Put("/change-password", controllers.ChangePassword(deps.Auth, logg))
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", controllers.ListEmployees(deps.Employees, logg))
			r.Get("/{id}", controllers.GetEmployee(deps.Employees, logg))
			r.Get("/department/{department}", controllers.ListEmployeesByDepartment(deps.Employees, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAnyRole([]string{"hr", "admin"}, logg))
				r.Post("/", controllers.CreateEmployee(deps.Employees, logg))
				r.Put("/{id}", controllers.UpdateEmployee(deps.Employees, logg))
				r.Delete("/{id}", controllers.DeleteEmployee(deps.Employees, logg))
			})
		})

		r.Route("/goals", func(r chi.Router) {
			r.Get("/", controllers.ListGoals(deps.Goals, logg))
			r.Post("/", controllers.CreateGoal(deps.Goals, logg))
			r.Get("/type/{targetType}", controllers.ListGoalsByType(deps.Goals, logg))
			r.Get("/employee/{employeeId}", controllers.ListGoalsByEmployee(deps.Goals, logg))
			r.Get("/{id}", controllers.GetGoal(deps.Goals, logg))
			r.Put("/{id}", controllers.UpdateGoal(deps.Goals, logg))
			r.Patch("/{id}/progress", controllers.UpdateGoalProgress(deps.Goals, logg))
			r.Delete("/{id}", controllers.DeleteGoal(deps.Goals, logg))
		})

		r.Route("/performance", func(r chi.Router) {
			r.Get("/", controllers.ListEvaluations(deps.Performance, logg))
			r.Post("/", controllers.CreateEvaluation(deps.Performance, logg))
			r.Get("/employee/{employeeId}", controllers.ListEvaluationsByEmployee(deps.Performance, logg))
			r.Get("/evaluator/{evaluatorId}", controllers.ListEvaluationsByEvaluator(deps.Performance, logg))
			r.Get("/{id}", controllers.GetEvaluation(deps.Performance, logg))
			r.Put("/{id}", controllers.UpdateEvaluation(deps.Performance, logg))
			r.Patch("/{id}/status", controllers.UpdateEvaluationStatus(deps.Performance, logg))
			r.Delete("/{id}", controllers.DeleteEvaluation(deps.Performance, logg))
		})

		r.Route("/competencies", func(r chi.Router) {
			r.Get("/", controllers.ListCompetencies(deps.Competencies, logg))
			r.Post("/", controllers.CreateCompetency(deps.Competencies, logg))
			r.Get("/stats/overview", controllers.CompetencyStats(deps.Competencies, logg))
			r.Get("/employee/{employeeId}", controllers.ListCompetenciesByEmployee(deps.Competencies, logg))
			r.Get("/{id}", controllers.GetCompetency(deps.Competencies, logg))
			r.Put("/{id}", controllers.UpdateCompetency(deps.Competencies, logg))
			r.Delete("/{id}", controllers.DeleteCompetency(deps.Competencies, logg))
		})
	})

	return r
}
