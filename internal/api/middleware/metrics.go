package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/pkg/metrics"
)

// statusRecorder запоминает статус ответа для метрик
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// MetricsMiddleware собирает метрики HTTP запросов: счетчик и длительность.
// В качестве endpoint используется шаблон маршрута mux, а не сырой путь,
// чтобы не раздувать кардинальность лейблов.
func MetricsMiddleware(m *metrics.Metrics, serviceName string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			endpoint := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if template, err := route.GetPathTemplate(); err == nil {
					endpoint = template
				}
			}

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(recorder.status)

			m.HTTPRequestsTotal.WithLabelValues(r.Method, endpoint, status).Inc()
			m.HTTPRequestDuration.WithLabelValues(r.Method, endpoint).Observe(duration)
		})
	}
}
