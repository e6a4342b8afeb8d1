package http

import (
	"log/slog"
	nethttp "net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"football-scoreboard/internal/logging"
	"football-scoreboard/internal/metrics"
)

// Instrument records request metrics and an access log line for every
// route.
func Instrument(recorder *metrics.Recorder, logger *slog.Logger) func(nethttp.Handler) nethttp.Handler {
	return func(next nethttp.Handler) nethttp.Handler {
		return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			elapsed := time.Since(start)
			recorder.RecordHTTPRequest(r.Method, r.URL.Path, ww.Status(), elapsed)
			logging.Debug(logger, "http request",
				logging.FieldMethod, r.Method,
				logging.FieldPath, r.URL.Path,
				logging.FieldStatusCode, ww.Status(),
				logging.FieldDurationMS, elapsed.Milliseconds())
		})
	}
}
