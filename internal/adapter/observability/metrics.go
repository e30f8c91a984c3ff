package observability

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"route", "method"},
	)

	AIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_requests_total",
			Help: "Total number of AI requests by provider, operation and outcome",
		},
		[]string{"provider", "operation", "outcome"},
	)
	AIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_request_duration_seconds",
			Help:    "AI request duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"provider", "operation"},
	)
	AIPromptTokens = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_prompt_tokens",
			Help:    "Estimated prompt tokens per AI request",
			Buckets: []float64{64, 128, 256, 512, 1024, 2048, 4096},
		},
		[]string{"provider", "model"},
	)

	AnalysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyses_total",
			Help: "Total number of completed analyses by suggestion mode",
		},
		[]string{"mode"},
	)
	AnalysisMatchScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analysis_match_score",
			Help:    "Distribution of reported match scores [0,100]",
			Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)
	ExtractionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extractions_total",
			Help: "Total number of document extractions by backend and outcome",
		},
		[]string{"backend", "outcome"},
	)
)

var initOnce sync.Once

// InitMetrics registers all collectors with the default registry. Safe to call more than once.
func InitMetrics() {
	initOnce.Do(func() {
		prometheus.MustRegister(HTTPRequestsTotal)
		prometheus.MustRegister(HTTPRequestDuration)
		prometheus.MustRegister(AIRequestsTotal)
		prometheus.MustRegister(AIRequestDuration)
		prometheus.MustRegister(AIPromptTokens)
		prometheus.MustRegister(AnalysesTotal)
		prometheus.MustRegister(AnalysisMatchScore)
		prometheus.MustRegister(ExtractionsTotal)
	})
}

// HTTPMetricsMiddleware records Prometheus metrics for each request.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		dur := time.Since(start).Seconds()
		// Route pattern may be unavailable outside chi router; guard nil
		var route string
		if rc := chi.RouteContext(r.Context()); rc != nil {
			route = rc.RoutePattern()
		}
		if route == "" {
			route = r.URL.Path
		}
		HTTPRequestsTotal.WithLabelValues(route, r.Method, http.StatusText(ww.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(dur)
	})
}

// ObserveAIRequest records one outbound model call.
func ObserveAIRequest(provider, operation string, err error, dur time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	AIRequestsTotal.WithLabelValues(provider, operation, outcome).Inc()
	AIRequestDuration.WithLabelValues(provider, operation).Observe(dur.Seconds())
}

// ObservePromptTokens records the estimated prompt size of a model call.
func ObservePromptTokens(provider, model string, tokens int) {
	if tokens > 0 {
		AIPromptTokens.WithLabelValues(provider, model).Observe(float64(tokens))
	}
}

// ObserveAnalysis records a completed analysis.
func ObserveAnalysis(mode string, score int) {
	AnalysesTotal.WithLabelValues(mode).Inc()
	if score >= 0 && score <= 100 {
		AnalysisMatchScore.Observe(float64(score))
	}
}

// ObserveExtraction records a document extraction attempt.
func ObserveExtraction(backend string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	ExtractionsTotal.WithLabelValues(backend, outcome).Inc()
}
