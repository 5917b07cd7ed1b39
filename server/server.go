package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/daystram/evalbar/board"
	"github.com/daystram/evalbar/game"
	"github.com/daystram/evalbar/position"
)

var (
	ErrGameNotFound = errors.New("game not found")

	upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
)

const maxGames = 1024

type Config struct {
	Seed   uint64
	Logger func(...any)
}

// Server exposes games over a JSON API and streams their state to websocket
// subscribers after every move.
type Server struct {
	mu     sync.Mutex
	rooms  map[string]*room
	order  []string
	logger func(...any)
	router *gin.Engine

	rngMu sync.Mutex
	rng   *game.PseudoRand

	srvMu sync.Mutex
	srv   *http.Server
}

// room guards one game and the connections watching it. Writes to the
// connections only happen while mu is held.
type room struct {
	id      string
	mu      sync.Mutex
	game    *game.Game
	clients map[*websocket.Conn]struct{}
}

func NewServer(cfg *Config) *Server {
	s := &Server{
		rooms:  make(map[string]*room),
		rng:    game.NewPseudoRand(cfg.Seed),
		logger: cfg.Logger,
	}
	if s.logger == nil {
		s.logger = log.Println
	}
	s.router = s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Listen(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	s.srvMu.Lock()
	s.srv = srv
	s.srvMu.Unlock()
	defer func() {
		s.srvMu.Lock()
		s.srv = nil
		s.srvMu.Unlock()
	}()

	s.logger("HTTP listening on", addr)
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close attempts a graceful shutdown of the HTTP server.
func (s *Server) Close(ctx context.Context) error {
	s.srvMu.Lock()
	srv := s.srv
	s.srvMu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	api := r.Group("/api/games")
	api.POST("", s.handleCreate)
	api.GET("/:id", s.handleState)
	api.GET("/:id/moves", s.handleDestinations)
	api.POST("/:id/moves", s.handleMove)
	api.POST("/:id/random", s.handleRandom)
	api.GET("/:id/ws", s.handleWebSocket)
	return r
}

func (s *Server) create(opts ...board.BoardOption) (*room, error) {
	g, err := game.New(opts...)
	if err != nil {
		return nil, err
	}
	rm := &room{
		id:      uuid.NewString(),
		game:    g,
		clients: make(map[*websocket.Conn]struct{}),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// oldest games are dropped first
	if len(s.order) >= maxGames {
		evicted := s.order[0]
		s.order = s.order[1:]
		delete(s.rooms, evicted)
		s.logger("evicted game", evicted)
	}
	s.rooms[rm.id] = rm
	s.order = append(s.order, rm.id)
	return rm, nil
}

func (s *Server) lookup(id string) (*room, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rm, ok := s.rooms[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return rm, nil
}

// play runs f against the room's game and, when it commits a move, pushes the
// new state to every subscriber.
func (rm *room) play(f func(g *game.Game) (board.Move, error), logger func(...any)) (board.Move, game.Snapshot, error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	mv, err := f(rm.game)
	if err != nil {
		return board.Move{}, game.Snapshot{}, err
	}
	snap := rm.game.Snapshot()
	rm.broadcast(stateMessage(snap), logger)
	return mv, snap, nil
}

func (rm *room) broadcast(msg any, logger func(...any)) {
	for conn := range rm.clients {
		if err := conn.WriteJSON(msg); err != nil {
			logger("broadcast error:", err)
			delete(rm.clients, conn)
			_ = conn.Close()
		}
	}
}

func (rm *room) subscribe(conn *websocket.Conn) error {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.clients[conn] = struct{}{}
	return conn.WriteJSON(stateMessage(rm.game.Snapshot()))
}

func (rm *room) unsubscribe(conn *websocket.Conn) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	delete(rm.clients, conn)
}

func (rm *room) send(conn *websocket.Conn, msg any) error {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	return conn.WriteJSON(msg)
}

func parseSquares(from, to string) (position.Square, position.Square, error) {
	f, err := position.NewSquareFromNotation(from)
	if err != nil {
		return position.Square{}, position.Square{}, err
	}
	t, err := position.NewSquareFromNotation(to)
	if err != nil {
		return position.Square{}, position.Square{}, err
	}
	return f, t, nil
}
