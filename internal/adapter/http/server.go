// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"net/http"

	"linkboard/internal/app"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"
)

// sessionCookieName is the cookie carrying the signed session token.
const sessionCookieName = "session"

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	auth   *app.AuthService
	links  *app.LinkService
	prefs  *app.PreferenceService
	meta   *metaProxy
	webDir string
	log    zerolog.Logger
}

// New creates a Server wired to the given application services.
func New(auth *app.AuthService, links *app.LinkService, prefs *app.PreferenceService, webDir string, log zerolog.Logger) *Server {
	return &Server{
		auth:   auth,
		links:  links,
		prefs:  prefs,
		meta:   newMetaProxy(),
		webDir: webDir,
		log:    log,
	}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	router := httprouter.New()

	router.HandlerFunc(http.MethodGet, "/api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	router.HandlerFunc(http.MethodGet, "/api/auth/status", s.handleAuthStatus)
	router.HandlerFunc(http.MethodPost, "/api/auth/setup", s.handleSetup)
	router.HandlerFunc(http.MethodPost, "/api/auth/login", s.handleLogin)
	router.HandlerFunc(http.MethodPost, "/api/auth/logout", s.handleLogout)
	router.HandlerFunc(http.MethodPost, "/api/auth/reset", s.requireAuth(s.handleReset))

	router.HandlerFunc(http.MethodGet, "/api/links", s.requireAuth(s.handleListLinks))
	router.HandlerFunc(http.MethodPost, "/api/links", s.requireAuth(s.handleCreateLink))
	router.HandlerFunc(http.MethodPut, "/api/links", s.requireAuth(s.handleReorderLinks))
	router.HandlerFunc(http.MethodPut, "/api/links/:id", s.requireAuth(s.handleUpdateLink))
	router.HandlerFunc(http.MethodDelete, "/api/links/:id", s.requireAuth(s.handleDeleteLink))

	router.HandlerFunc(http.MethodGet, "/api/preferences", s.requireAuth(s.handleGetPreferences))
	router.HandlerFunc(http.MethodPut, "/api/preferences", s.requireAuth(s.handleSavePreferences))

	router.HandlerFunc(http.MethodGet, "/api/meta/favicon", s.requireAuth(s.handleFavicon))
	router.HandlerFunc(http.MethodGet, "/api/meta/title", s.requireAuth(s.handlePageTitle))

	router.NotFound = spaFromDisk(s.webDir)

	return s.loggingMiddleware(withNoCache(router))
}
