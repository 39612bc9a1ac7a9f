package middleware

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"booksearch/internal/logger"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func wrap(w http.ResponseWriter) *statusRecorder {
	if rec, ok := w.(*statusRecorder); ok {
		return rec
	}
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (sr *statusRecorder) Unwrap() http.ResponseWriter { return sr.ResponseWriter }

// Hijack lets the websocket upgrader take over the connection.
func (sr *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := sr.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	sr.status = http.StatusSwitchingProtocols
	return hj.Hijack()
}

// RequestLogger logs incoming requests at the INFO level.
func RequestLogger(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := wrap(w)

			next.ServeHTTP(rec, r)

			log.WithFields(logrus.Fields{
				"request_id": logger.IDFrom(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
				"query":      r.URL.Query(),
				"remote":     r.RemoteAddr,
				"agent":      r.UserAgent(),
				"status":     rec.status,
				"took":       time.Since(start),
			}).Info("http.request")
		})
	}
}
