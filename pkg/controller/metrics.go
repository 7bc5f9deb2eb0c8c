package controller

import (
	"net/http"
	"time"

	"newsletter/pkg/metrics"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// WithMetrics returns a middleware recording a request-duration histogram for
// every request through the provided OpenTelemetry meter provider. Durations
// are bucketed with metrics.DefaultBuckets and labeled by method, path and
// final status code.
func WithMetrics(mp metric.MeterProvider, next http.Handler) (http.Handler, error) {
	meter := mp.Meter("newsletter/api")
	duration, err := meter.Float64Histogram("http.server.request.duration",
		metric.WithDescription("Duration of handled HTTP requests."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(metrics.DefaultBuckets...))
	if err != nil {
		return nil, err //nolint: wrapcheck
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		duration.Record(r.Context(), time.Since(start).Seconds(),
			metric.WithAttributes(
				attribute.String("http.request.method", r.Method),
				attribute.String("url.path", r.URL.Path),
				attribute.Int("http.response.status_code", rec.status),
			))
	}), nil
}
