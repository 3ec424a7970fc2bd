package server

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/mseshachalam/hncli/util"
)

// statusRecorder remembers the status a handler wrote
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// WithRequestLogging logs every request once it is served
func WithRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		logrus.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"query":    r.URL.RawQuery,
			"ip":       util.RealIP(r),
			"ua":       r.Header.Get("User-Agent"),
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}).Info("served")
	})
}

// WithRateLimit limits each client ip to rate, given in limiter's "60-M" format
func WithRateLimit(rate string, next http.Handler) (http.Handler, error) {
	r, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, err
	}

	mw := stdlib.NewMiddleware(limiter.New(memory.NewStore(), r, limiter.WithTrustForwardHeader(true)))
	return mw.Handler(next), nil
}
