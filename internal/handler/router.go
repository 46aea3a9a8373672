package handler

import (
	"log/slog"
	"net/http"

	"github.com/org-chart-api/internal/metrics"
	"github.com/org-chart-api/internal/middleware"
)

// Router настраивает маршруты API
type Router struct {
	mux          *http.ServeMux
	logger       *slog.Logger
	metrics      *metrics.Metrics
	chartHandler *ChartHandler
}

// NewRouter создаёт новый роутер
func NewRouter(chartHandler *ChartHandler, m *metrics.Metrics, logger *slog.Logger) *Router {
	return &Router{
		mux:          http.NewServeMux(),
		logger:       logger,
		metrics:      m,
		chartHandler: chartHandler,
	}
}

// Setup настраивает все маршруты
func (r *Router) Setup() http.Handler {
	r.mux.HandleFunc("/chart", r.chartRouter)

	// Health check
	r.mux.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	if r.metrics != nil {
		r.mux.Handle("/metrics", r.metrics.Handler())
	}

	// Применяем middleware
	handler := middleware.ContentType(r.mux)
	handler = middleware.Metrics(r.metrics, "/chart", "/health", "/metrics")(handler)
	handler = middleware.Logger(r.logger)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recoverer(r.logger)(handler)

	return handler
}

// chartRouter обрабатывает запросы к /chart
func (r *Router) chartRouter(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	r.chartHandler.Get(w, req)
}
