package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	DBDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "db_call_duration_seconds",
		Help: "Duration of database calls.",
	}, []string{"operation"})

	RedisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "redis_call_duration_seconds",
		Help: "Duration of Redis calls.",
	}, []string{"operation"})

	NarrativeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "narrative_call_duration_seconds",
		Help: "Duration of narrative analyzer (LLM) calls.",
	})

	NarrativeFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "narrative_call_failures_total",
		Help: "Total number of failed narrative analyzer calls.",
	})

	AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sentiment_analyses_total",
		Help: "Total number of sentiment analyses by type.",
	}, []string{"analysis_type"})

	LogQueueSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "log_queue_size",
		Help: "Current size of the log queue.",
	})

	LogsDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "logs_dropped_total",
		Help: "Total number of logs dropped due to a full queue.",
	})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "http_request_duration_seconds",
		Help: "Duration of HTTP requests.",
	}, []string{"path"})

	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests.",
	}, []string{"path", "method", "code"})
)

func RecordDBTime(operation string, f func() error) error {
	start := time.Now()
	err := f()
	DBDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	return err
}

func RecordRedisTime(operation string, f func() error) error {
	start := time.Now()
	err := f()
	RedisDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	return err
}

// RecordNarrativeTime 记录叙事分析器调用耗时与失败次数
func RecordNarrativeTime(f func() error) error {
	start := time.Now()
	err := f()
	NarrativeDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		NarrativeFailuresTotal.Inc()
	}
	return err
}

func PrometheusMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		d := &responseData{
			status: 200,
		}
		lrw := loggingResponseWriter{
			ResponseWriter: w,
			responseData:   d,
		}
		next.ServeHTTP(&lrw, r)
		duration := time.Since(start)
		httpRequestsTotal.WithLabelValues(r.URL.Path, r.Method, strconv.Itoa(d.status)).Inc()
		httpDuration.WithLabelValues(r.URL.Path).Observe(duration.Seconds())
	})
}

type responseData struct {
	status int
	size   int
}

type loggingResponseWriter struct {
	http.ResponseWriter
	responseData *responseData
}

func (r *loggingResponseWriter) Write(b []byte) (int, error) {
	size, err := r.ResponseWriter.Write(b)
	r.responseData.size += size
	return size, err
}

func (r *loggingResponseWriter) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	r.responseData.status = statusCode
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
