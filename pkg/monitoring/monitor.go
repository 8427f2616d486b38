package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// AnalysisCounter 按结果条数分桶统计引擎调用
	AnalysisCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_analysis_total",
			Help: "Total number of pattern analysis runs",
		},
		[]string{"recommendations"},
	)

	AnalysisDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "engine_analysis_duration_seconds",
			Help:    "Duration of pattern analysis runs",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(AnalysisCounter)
	prometheus.MustRegister(AnalysisDuration)
}

// ObserveAnalysis 记录一次引擎分析
func ObserveAnalysis(recommendations int, duration time.Duration) {
	AnalysisCounter.WithLabelValues(strconv.Itoa(recommendations)).Inc()
	AnalysisDuration.Observe(duration.Seconds())
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
