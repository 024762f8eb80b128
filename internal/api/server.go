// Package api serves the host commands to the UI over loopback HTTP and a
// WebSocket channel.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"facekey/internal/action"
	"facekey/internal/logging"
	"facekey/internal/protocol"
)

// maxBodySize bounds request bodies and WebSocket frames.
const maxBodySize = 1 << 20

// Dispatcher is the command surface served by the API. *dispatch.Dispatcher
// implements it.
type Dispatcher interface {
	ExecuteAction(payload string) error
	GetSettings() string
	SetSettings(data string) error
	GetProfiles() string
	SetProfiles(data string) error
	Dispatch(req protocol.Request) protocol.Response
}

// Server provides the HTTP API
type Server struct {
	disp     Dispatcher
	token    string
	origins  []string
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// Option configures a Server.
type Option func(*Server)

// WithToken requires "Authorization: Bearer <token>" on every route except
// /health.
func WithToken(token string) Option {
	return func(s *Server) {
		s.token = token
	}
}

// WithAllowedOrigins sets the browser origins allowed to call the API. A
// request carrying any other Origin header is rejected with 403. Requests
// without an Origin header are not browser cross-origin requests and pass.
func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) {
		s.origins = origins
	}
}

// WithLogger overrides the component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) {
		s.log = l
	}
}

// NewServer creates a new API server
func NewServer(d Dispatcher, opts ...Option) *Server {
	s := &Server{
		disp: d,
		log:  logging.GetLogger("api"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return s.originAllowed(r.Header.Get("Origin"))
		},
	}
	return s
}

// Handler returns the routed handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/actions", s.handleAction).Methods(http.MethodPost)
	r.HandleFunc("/api/settings", s.handleGetDocument(s.disp.GetSettings)).Methods(http.MethodGet)
	r.HandleFunc("/api/settings", s.handleSetDocument(s.disp.SetSettings)).Methods(http.MethodPut, http.MethodPost)
	r.HandleFunc("/api/profiles", s.handleGetDocument(s.disp.GetProfiles)).Methods(http.MethodGet)
	r.HandleFunc("/api/profiles", s.handleSetDocument(s.disp.SetProfiles)).Methods(http.MethodPut, http.MethodPost)
	r.HandleFunc("/api/invoke", s.handleInvoke).Methods(http.MethodPost)
	r.HandleFunc("/ws", s.handleWebSocket).Methods(http.MethodGet)

	return s.requestMiddleware(s.recoverMiddleware(s.originMiddleware(s.authMiddleware(r))))
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Warn().Err(err).Msg("API server shutdown")
		}
	}()

	s.log.Info().Str("addr", ln.Addr().String()).Msg("Starting API server")
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.log.Error().Err(err).Msg("API server stopped")
		return err
	}
	return nil
}

// handleHealth handles GET /health (for monitoring)
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAction handles POST /api/actions with the action token as body.
func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	payload, ok := readBody(w, r)
	if !ok {
		return
	}

	if err := s.disp.ExecuteAction(payload); err != nil {
		var decodeErr *action.DecodeError
		if errors.As(err, &decodeErr) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("Action failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetDocument(get func() string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, get())
	}
}

func (s *Server) handleSetDocument(set func(string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, ok := readBody(w, r)
		if !ok {
			return
		}
		if err := set(doc); err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("Failed to store document")
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleInvoke handles POST /api/invoke with a protocol.Request body. Command
// failures are reported in the response, not the status code.
func (s *Server) handleInvoke(w http.ResponseWriter, r *http.Request) {
	var req protocol.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := dec.Decode(&req); err != nil {
		http.Error(w, "Invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, s.disp.Dispatch(req))
}

// recoverMiddleware prevents panics from crashing the whole server
func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				zerolog.Ctx(r.Context()).Error().Interface("panic", err).Msg("Recovered handler panic")
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// originAllowed reports whether a request with the given Origin header may
// reach the API.
func (s *Server) originAllowed(origin string) bool {
	if origin == "" {
		return true
	}
	for _, o := range s.origins {
		if strings.EqualFold(strings.TrimSuffix(o, "/"), origin) {
			return true
		}
	}
	return false
}

// originMiddleware rejects browser requests from origins outside the
// allowlist. Simple requests (a text/plain POST) skip the CORS preflight, so
// the check cannot be left to the browser.
func (s *Server) originMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if r.URL.Path != "/health" && !s.originAllowed(origin) {
			zerolog.Ctx(r.Context()).Warn().Str("origin", origin).Msg("Rejected cross-origin request")
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// authMiddleware checks the API token if configured. Browsers cannot set
// headers on a WebSocket handshake, so the token is also accepted as the
// "token" query parameter.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.token == "" || r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		got := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if got == "" {
			got = r.URL.Query().Get("token")
		}
		if got != s.token {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func readBody(w http.ResponseWriter, r *http.Request) (string, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return "", false
	}
	return string(data), true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
