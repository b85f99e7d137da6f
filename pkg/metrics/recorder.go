package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "perf_summaries"

// Summary outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Recorder owns the service metrics. A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	summaries         *prometheus.CounterVec
	batches           *prometheus.CounterVec
	completionLatency *prometheus.HistogramVec
	tokens            *prometheus.CounterVec
	promptTokens      prometheus.Histogram
	httpRequests      *prometheus.CounterVec
	httpLatency       *prometheus.HistogramVec
}

// NewRecorder registers all collectors on a private registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		summaries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "summaries_total",
			Help:      "Employee summaries processed, by outcome.",
		}, []string{"outcome"}),
		batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_total",
			Help:      "Summary batches processed, by outcome.",
		}, []string{"outcome"}),
		completionLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "completion_duration_seconds",
			Help:      "Latency of chat completion calls.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		}, []string{"outcome"}),
		tokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "completion_tokens_total",
			Help:      "Tokens reported by the completion provider.",
		}, []string{"kind"}),
		promptTokens: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "prompt_tokens_estimated",
			Help:      "Locally estimated token count of generated prompts.",
			Buckets:   prometheus.ExponentialBuckets(16, 2, 8),
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served.",
		}, []string{"method", "path", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.summaries,
		r.batches,
		r.completionLatency,
		r.tokens,
		r.promptTokens,
		r.httpRequests,
		r.httpLatency,
	)
	return r
}

// Registry exposes the underlying registry, mainly for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Handler serves the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// ObserveSummary counts one processed employee record.
func (r *Recorder) ObserveSummary(outcome string) {
	if r == nil {
		return
	}
	r.summaries.WithLabelValues(outcome).Inc()
}

// ObserveBatch counts one processed batch.
func (r *Recorder) ObserveBatch(outcome string) {
	if r == nil {
		return
	}
	r.batches.WithLabelValues(outcome).Inc()
}

// ObserveCompletion records latency and provider-reported usage of one call.
func (r *Recorder) ObserveCompletion(d time.Duration, usage TokenUsage, err error) {
	if r == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	r.completionLatency.WithLabelValues(outcome).Observe(d.Seconds())
	if usage.IsZero() {
		return
	}
	r.tokens.WithLabelValues("prompt").Add(float64(usage.PromptTokens))
	r.tokens.WithLabelValues("completion").Add(float64(usage.CompletionTokens))
}

// ObservePromptTokens records a local prompt size estimate.
func (r *Recorder) ObservePromptTokens(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.promptTokens.Observe(float64(n))
}

// ObserveHTTP records a served request.
func (r *Recorder) ObserveHTTP(method, path string, status int, d time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	r.httpLatency.WithLabelValues(method, path).Observe(d.Seconds())
}
