// Package ws serves Cookie Crunch sessions over websockets. Every connection
// plays one level: the server streams session events as JSON and the client
// sends swap, shuffle and hint commands.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/cookie-crunch/internal/config"
	"github.com/vovakirdan/cookie-crunch/internal/games/crunch"
	"github.com/vovakirdan/cookie-crunch/internal/games/crunch/levels"
	"github.com/vovakirdan/cookie-crunch/internal/registry"
	"github.com/vovakirdan/cookie-crunch/internal/storage"
)

// ErrUnknownLevel is returned for a level ID nobody registered.
var ErrUnknownLevel = errors.New("ws: unknown level")

// ServerConfig holds configuration for the websocket server.
type ServerConfig struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// Game is the board and scoring configuration of every session.
	Game config.CrunchConfig

	// ReadTimeout closes connections that send nothing for this long.
	ReadTimeout time.Duration
}

// DefaultServerConfig returns a config with sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address:     ":8080",
		Game:        config.DefaultCrunchConfig(),
		ReadTimeout: 30 * time.Minute,
	}
}

// Server hands out one session per websocket connection.
type Server struct {
	config   ServerConfig
	store    *storage.Store
	logger   *log.Logger
	upgrader websocket.Upgrader
	http     *http.Server

	mu     sync.Mutex
	active map[*websocket.Conn]struct{}
	conns  sync.WaitGroup
}

// NewServer creates a server. store and logger may be nil.
func NewServer(cfg ServerConfig, store *storage.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		config: cfg,
		store:  store,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		active: make(map[*websocket.Conn]struct{}),
	}
	s.http = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP routes: /ws for play and /levels for the catalogue.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handlePlay)
	mux.HandleFunc("/levels", s.handleLevels)
	return mux
}

// ListenAndServe serves until ctx is done, then waits for open sessions.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting websocket server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ws: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := s.http.Shutdown(shutdownCtx)

	// hijacked connections are not closed by Shutdown
	s.mu.Lock()
	for conn := range s.active {
		//nolint:errcheck // best-effort close
		conn.Close()
	}
	s.mu.Unlock()
	s.conns.Wait()
	return err
}

// LevelInfo describes a level in the /levels listing.
type LevelInfo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	TargetScore int    `json:"target_score"`
	Moves       int    `json:"moves"`
	Endless     bool   `json:"endless"`
}

// lookupLevel finds a registered level definition.
func lookupLevel(id string) (levels.Level, error) {
	g, err := registry.Create(id)
	if err != nil {
		return levels.Level{}, fmt.Errorf("%w: %s", ErrUnknownLevel, id)
	}
	cg, ok := g.(*crunch.Game)
	if !ok {
		return levels.Level{}, fmt.Errorf("%w: %s", ErrUnknownLevel, id)
	}
	return cg.Level(), nil
}

func (s *Server) handleLevels(w http.ResponseWriter, r *http.Request) {
	var infos []LevelInfo
	for _, info := range registry.List() {
		lvl, err := lookupLevel(info.ID)
		if err != nil {
			continue
		}
		infos = append(infos, LevelInfo{
			ID:          lvl.ID,
			Title:       lvl.Title(),
			TargetScore: lvl.TargetScore,
			Moves:       s.config.Game.MovesFor(lvl.Moves),
			Endless:     lvl.Endless(),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(infos); err != nil {
		s.logger.Warn("cannot write level list", "err", err)
	}
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lvl, err := lookupLevel(q.Get("level"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	seed := time.Now().UnixNano()
	if raw := q.Get("seed"); raw != "" {
		seed, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "ws: seed must be an integer", http.StatusBadRequest)
			return
		}
	}

	board, err := lvl.NewBoard(s.config.Game, rand.New(rand.NewSource(seed)))
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	c := newConnection(conn, board, lvl, seed, uuid.NewString())
	c.logger = s.logger.With("run", c.runID, "level", lvl.ID)
	c.store = s.store
	c.readTimeout = s.config.ReadTimeout

	s.mu.Lock()
	s.active[conn] = struct{}{}
	s.conns.Add(1)
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.active, conn)
		s.mu.Unlock()
		s.conns.Done()
	}()

	c.serve()
}
