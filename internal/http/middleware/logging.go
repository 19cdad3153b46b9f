package middleware

import (
	"net/http"
	"time"

	"github.com/davidbz/promptgate/internal/observability"
)

// statusRecorder captures the status code and body size written downstream.
// A handler that writes nothing leaves the implicit 200.
type statusRecorder struct {
	http.ResponseWriter
	status        int
	size          int
	headerWritten bool
}

func (rw *statusRecorder) WriteHeader(status int) {
	if !rw.headerWritten {
		rw.status = status
		rw.headerWritten = true
	}
	rw.ResponseWriter.WriteHeader(status)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	// Write without WriteHeader implies 200.
	if !rw.headerWritten {
		rw.status = http.StatusOK
		rw.headerWritten = true
	}
	size, err := rw.ResponseWriter.Write(b)
	rw.size += size
	return size, err
}

// Logging creates a middleware that writes one access log line per request
// and converts handler panics into a 500 response.
func Logging() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			logger := observability.FromContext(r.Context())

			recorder := &statusRecorder{
				ResponseWriter: w,
				status:         http.StatusOK,
				size:           0,
				headerWritten:  false,
			}

			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler { //nolint:errorlint // net/http compares the sentinel by identity
						panic(rec)
					}
					logger.Error("handler panicked", observability.String("panic", panicMessage(rec)))
					if !recorder.headerWritten {
						http.Error(recorder, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					}
				}

				logger.Info("request completed",
					observability.String("method", r.Method),
					observability.String("path", r.URL.Path),
					observability.Int("status", recorder.status),
					observability.Int("bytes", recorder.size),
					observability.Duration("duration", time.Since(start)),
				)
			}()

			next.ServeHTTP(recorder, r)
		})
	}
}

func panicMessage(rec any) string {
	switch v := rec.(type) {
	case error:
		return v.Error()
	case string:
		return v
	default:
		return "unknown panic"
	}
}
