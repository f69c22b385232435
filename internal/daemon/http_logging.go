package daemon

import (
	"net/http"
	"time"

	"notesapp/internal/logging"
)

const requestIDHeader = "X-Request-Id"

// statusWriter remembers the status and body size written by a handler.
type statusWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (w *statusWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(p)
	w.size += n
	return n, err
}

func (w *statusWriter) code() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// LoggingMiddleware writes one logfmt line per request and echoes or assigns
// a request id. Health probes are logged at debug so autostart polling stays
// out of the daemon log.
func LoggingMiddleware(logger logging.Logger, next http.Handler) http.Handler {
	if logger == nil {
		logger = logging.Nop()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = logging.NewRequestID()
		}
		w.Header().Set(requestIDHeader, id)

		started := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)

		status := sw.code()
		log := logger.Info
		switch {
		case status >= http.StatusInternalServerError:
			log = logger.Warn
		case r.URL.Path == "/health":
			log = logger.Debug
		}
		log("http_request",
			logging.F("request_id", id),
			logging.F("method", r.Method),
			logging.F("path", r.URL.Path),
			logging.F("status", status),
			logging.F("bytes", sw.size),
			logging.F("duration", time.Since(started)),
		)
	})
}
