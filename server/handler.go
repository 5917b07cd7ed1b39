package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daystram/evalbar/board"
	"github.com/daystram/evalbar/game"
	"github.com/daystram/evalbar/position"
)

type createRequest struct {
	FEN string `json:"fen"`
}

type moveRequest struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}

type moveView struct {
	UCI     string `json:"uci"`
	Algebra string `json:"algebra"`
	Side    string `json:"side"`
	Capture string `json:"capture,omitempty"`
	Castle  bool   `json:"castle"`
	Check   bool   `json:"check"`
}

func newMoveView(mv board.Move) moveView {
	return moveView{
		UCI:     mv.UCI(),
		Algebra: mv.Algebra(),
		Side:    mv.Piece.Side.String(),
		Capture: mv.Captured.Name(),
		Castle:  mv.IsCastle,
		Check:   mv.IsCheck,
	}
}

// wsMessage is the envelope of everything sent over and read from a websocket.
type wsMessage struct {
	Type    string         `json:"type"`
	State   *game.Snapshot `json:"state,omitempty"`
	Message string         `json:"message,omitempty"`
	From    string         `json:"from,omitempty"`
	To      string         `json:"to,omitempty"`
}

func stateMessage(snap game.Snapshot) wsMessage {
	return wsMessage{Type: "state", State: &snap}
}

func errorMessage(err error) wsMessage {
	return wsMessage{Type: "error", Message: err.Error()}
}

func notations(sqs []position.Square) []string {
	out := make([]string, 0, len(sqs))
	for _, sq := range sqs {
		out = append(out, sq.Notation())
	}
	return out
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrGameOver):
		return http.StatusConflict
	case errors.Is(err, game.ErrNoPiece),
		errors.Is(err, game.ErrNotYourTurn),
		errors.Is(err, game.ErrInvalidMove),
		errors.Is(err, game.ErrNoMoves):
		return http.StatusUnprocessableEntity
	case errors.Is(err, board.ErrInvalidFEN),
		errors.Is(err, position.ErrInvalidNotation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abort(c *gin.Context, err error) {
	c.AbortWithStatusJSON(statusOf(err), gin.H{"error": err.Error()})
}

func (s *Server) handleCreate(c *gin.Context) {
	var req createRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	var opts []board.BoardOption
	if req.FEN != "" {
		opts = append(opts, board.WithFEN(req.FEN))
	}
	rm, err := s.create(opts...)
	if err != nil {
		abort(c, err)
		return
	}

	rm.mu.Lock()
	snap := rm.game.Snapshot()
	rm.mu.Unlock()
	s.logger("created game", rm.id)
	c.JSON(http.StatusCreated, gin.H{"id": rm.id, "state": snap})
}

func (s *Server) handleState(c *gin.Context) {
	rm, err := s.lookup(c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}
	rm.mu.Lock()
	snap := rm.game.Snapshot()
	rm.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"id": rm.id, "state": snap})
}

func (s *Server) handleDestinations(c *gin.Context) {
	rm, err := s.lookup(c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}
	from, err := position.NewSquareFromNotation(c.Query("from"))
	if err != nil {
		abort(c, err)
		return
	}

	rm.mu.Lock()
	d, err := rm.game.Select(from)
	rm.mu.Unlock()
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"from":     from.Notation(),
		"quiet":    notations(d.Quiet),
		"captures": notations(d.Captures),
	})
}

func (s *Server) handleMove(c *gin.Context) {
	rm, err := s.lookup(c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	from, to, err := parseSquares(req.From, req.To)
	if err != nil {
		abort(c, err)
		return
	}

	mv, snap, err := rm.play(func(g *game.Game) (board.Move, error) {
		return g.Move(from, to)
	}, s.logger)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"move": newMoveView(mv), "state": snap})
}

func (s *Server) handleRandom(c *gin.Context) {
	rm, err := s.lookup(c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}

	mv, snap, err := rm.play(func(g *game.Game) (board.Move, error) {
		s.rngMu.Lock()
		defer s.rngMu.Unlock()
		return g.RandomMove(s.rng)
	}, s.logger)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"move": newMoveView(mv), "state": snap})
}

// handleWebSocket streams the game's state. Clients may also play by sending
// {"type":"move","from":"e2","to":"e4"}.
func (s *Server) handleWebSocket(c *gin.Context) {
	rm, err := s.lookup(c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger("websocket upgrade error:", err)
		return
	}
	defer conn.Close()

	if err := rm.subscribe(conn); err != nil {
		rm.unsubscribe(conn)
		return
	}
	defer rm.unsubscribe(conn)

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		switch msg.Type {
		case "move":
			from, to, err := parseSquares(msg.From, msg.To)
			if err == nil {
				_, _, err = rm.play(func(g *game.Game) (board.Move, error) {
					return g.Move(from, to)
				}, s.logger)
			}
			if err != nil {
				_ = rm.send(conn, errorMessage(err))
			}
		case "state":
			rm.mu.Lock()
			err := conn.WriteJSON(stateMessage(rm.game.Snapshot()))
			rm.mu.Unlock()
			if err != nil {
				return
			}
		default:
			_ = rm.send(conn, wsMessage{Type: "error", Message: "unknown message type: " + msg.Type})
		}
	}
}
