package wire

import (
	"net/http"

	"movie-api/internal/adaptor"
	"movie-api/internal/data/repository"
	"movie-api/internal/usecase"
	"movie-api/pkg/middleware"
	"movie-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the router and the long-lived components main needs to manage.
type App struct {
	Router      *chi.Mux
	Service     *usecase.Service
	RateLimiter *middleware.RateLimiter
}

// Wiring builds services, handlers and routes.
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	tokens := utils.NewTokenManager(config.JWT)
	service := usecase.NewService(repo, tokens, logger)
	handler := adaptor.NewHandler(service, logger)
	limiter := middleware.NewRateLimiter(config.RateLimit.RequestsPerMinute, config.RateLimit.Burst, logger)

	return &App{
		Router:      setupRouter(handler, service, limiter, config, logger),
		Service:     service,
		RateLimiter: limiter,
	}
}

// routeDeps are the per-route middlewares shared by the wire functions.
type routeDeps struct {
	requireAuth func(http.Handler) http.Handler
	rateLimit   func(http.Handler) http.Handler
}

func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	limiter *middleware.RateLimiter,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()
	metrics := middleware.NewMetrics()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.CORS.AllowedOrigins))
	r.Use(metrics.Instrument)

	deps := routeDeps{
		requireAuth: middleware.AuthSession(service.Auth, logger),
		rateLimit:   limiter.Handler,
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "Welcome to Movie API", nil)
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", metrics.Handler())

	wireAuth(r, handler.Auth, deps)
	wireUser(r, handler.User, deps)
	r.Route("/movies", func(r chi.Router) {
		wireRating(r, handler.Rating, deps)
		wireComment(r, handler.Comment, deps)
		wireMovie(r, handler.Movie, deps)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseJSON(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil, nil)
	})

	return r
}
