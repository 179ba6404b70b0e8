package adapthttp

import (
	"net/http"
	"time"

	"linkboard/internal/logutil"
)

// requireAuth gates a handler behind the session cookie. Every failure
// mode collapses to a plain 401; the reason is never exposed.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !s.auth.Authenticate(r.Context(), cookie.Value) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware logs one line per request and attaches the request
// logger to the context.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		log := s.log.With().Str("method", r.Method).Str("path", r.URL.Path).Logger()
		next.ServeHTTP(rec, r.WithContext(logutil.WithLogger(r.Context(), log)))

		log.Info().
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
