package docsserver

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	metricsprom "github.com/slok/go-http-metrics/metrics/prometheus"
	"github.com/slok/go-http-metrics/middleware"
	"github.com/slok/go-http-metrics/middleware/std"
)

const requestIDHeader = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// requestLogger tags each request with an id and logs it once served.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := req.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, req)

		log.WithFields(log.Fields{
			"request_id": id,
			"method":     req.Method,
			"path":       req.URL.Path,
			"status":     rec.status,
			"elapsed":    time.Since(start),
		}).Debug("served request")
	})
}

type httpMetricsMiddleware struct {
	recorder middleware.Middleware
}

func newHTTPMetrics(registry prometheus.Registerer) httpMetricsMiddleware {
	return httpMetricsMiddleware{
		recorder: middleware.New(middleware.Config{
			Recorder: metricsprom.NewRecorder(metricsprom.Config{Registry: registry}),
		}),
	}
}

// middleware records request metrics keyed by the matched route template so
// ids and free form page paths do not each get their own series.
func (m httpMetricsMiddleware) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		handlerID := "unmatched"
		if route := mux.CurrentRoute(req); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				handlerID = tmpl
			}
		}
		std.Handler(handlerID, m.recorder, next).ServeHTTP(w, req)
	})
}
