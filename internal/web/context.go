package web

import (
	"log/slog"
	"net/http"

	"github.com/JonMunkholm/jobtracker/internal/logging"
)

// requestLogger attaches a logger carrying the client address to the request
// context. logging.FromContext adds the request ID on top.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := slog.Default().With("ip", r.RemoteAddr)
		next.ServeHTTP(w, r.WithContext(logging.NewContext(r.Context(), logger)))
	})
}
