// Package web serves minesweeper rounds over HTTP and WebSocket.
package web

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/arcade-classics/internal/games/minesweeper"
	"github.com/vovakirdan/arcade-classics/internal/storage"
)

// Config holds the HTTP service settings.
type Config struct {
	// Addr is the host:port to listen on.
	Addr string

	// Secret signs round tokens. A random secret is generated when empty,
	// so tokens do not survive a restart.
	Secret string

	// AllowedOrigins lists the origins allowed by CORS and the WebSocket
	// handshake. Empty allows any origin.
	AllowedOrigins []string

	// TokenLifetime bounds how long a round token stays valid.
	TokenLifetime time.Duration
}

// DefaultConfig returns the default service settings.
func DefaultConfig() Config {
	return Config{
		Addr:          ":8080",
		TokenLifetime: 24 * time.Hour,
	}
}

// Server is the minesweeper HTTP service.
type Server struct {
	cfg      Config
	store    *storage.Store
	logger   *log.Logger
	tokens   *tokenIssuer
	rounds   *roundTable
	decoder  *schema.Decoder
	upgrader websocket.Upgrader
	presets  []minesweeper.Difficulty
	defDiff  string
	now      func() time.Time
}

// NewServer creates the service. store may be nil, in which case won rounds
// are not recorded and the scores endpoint answers 503.
func NewServer(cfg Config, store *storage.Store, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "arcade-web"})
	}
	if cfg.TokenLifetime <= 0 {
		cfg.TokenLifetime = DefaultConfig().TokenLifetime
	}
	secret := []byte(cfg.Secret)
	if len(secret) == 0 {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("web: cannot generate secret: %w", err)
		}
		secret = []byte(hex.EncodeToString(buf))
		logger.Warn("no token secret configured, using a random one")
	}

	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	presets, def := minesweeper.Presets()
	s := &Server{
		cfg:     cfg,
		store:   store,
		logger:  logger,
		tokens:  newTokenIssuer(secret, cfg.TokenLifetime),
		rounds:  newRoundTable(),
		decoder: decoder,
		presets: presets,
		defDiff: def,
		now:     time.Now,
	}
	s.upgrader = websocket.Upgrader{CheckOrigin: s.checkOrigin}
	return s, nil
}

func (s *Server) checkOrigin(r *http.Request) bool {
	if len(s.cfg.AllowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	return origin == "" || slices.Contains(s.cfg.AllowedOrigins, origin)
}

// Router returns the bare route table.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()

	api := router.PathPrefix("/api").Subrouter()
	api.Methods("POST").Path("/minesweeper/rounds").HandlerFunc(s.handleNewRound)
	api.Methods("GET").Path("/minesweeper/rounds/{id}").HandlerFunc(s.handleFetchRound)
	api.Methods("GET").Path("/scores/{game}").HandlerFunc(s.handleScores)

	round := api.PathPrefix("/minesweeper/rounds/{id}").Subrouter()
	round.Use(s.authenticate)
	round.Methods("POST").Path("/reveal").HandlerFunc(s.handleReveal)
	round.Methods("POST").Path("/flag").HandlerFunc(s.handleFlag)
	round.Methods("POST").Path("/reset").HandlerFunc(s.handleReset)
	round.Methods("POST").Path("/difficulty").HandlerFunc(s.handleDifficulty)
	round.Methods("GET").Path("/ws").HandlerFunc(s.handleConnectWS)
	api.Methods("DELETE").Path("/minesweeper/rounds/{id}").Handler(s.authenticate(http.HandlerFunc(s.handleDeleteRound)))

	router.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return router
}

// Handler returns the routes wrapped in CORS and request logging.
func (s *Server) Handler() http.Handler {
	return s.logging(s.cors(s.Router()))
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.pruneLoop(ctx)

	s.logger.Info("starting HTTP server", "address", s.cfg.Addr)
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// pruneLoop drops rounds nobody touched for roundIdleTTL.
func (s *Server) pruneLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.rounds.prune(s.now().Add(-roundIdleTTL)); n > 0 {
				s.logger.Debug("pruned idle rounds", "count", n)
			}
		}
	}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.cfg.Addr
}
