package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"paperrec/internal/handlers"
	"paperrec/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	RecommendService service.RecommendService
	CorpusLoader     service.CorpusLoader
	LLM              handlers.ConfiguredChecker
	// MetricsHandler serves /metrics. Nil uses the default Prometheus registry.
	MetricsHandler http.Handler
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.CleanPath)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(Recover)
	r.Use(CORS)

	recommendHandler := handlers.NewRecommendHandler(deps.RecommendService)
	healthHandler := handlers.NewHealthHandler(deps.CorpusLoader, deps.LLM)

	metricsHandler := deps.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/recommend-papers", recommendHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
	})
	// Path used by the existing browser client.
	r.Method(http.MethodPost, "/functions/v1/recommend-papers", recommendHandler)

	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("paperrec\n"))
	})

	return r
}
