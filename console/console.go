package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/daystram/evalbar/bench"
	"github.com/daystram/evalbar/board"
	"github.com/daystram/evalbar/engine"
	"github.com/daystram/evalbar/game"
	"github.com/daystram/evalbar/position"
)

const barLength = 40

type Config struct {
	Seed          uint64
	ParallelPerft bool
}

// Console is a line-oriented front end driving a single game.
type Console struct {
	game   *game.Game
	rng    *game.PseudoRand
	config Config

	in  io.Reader
	out io.Writer
}

func NewConsole(in io.Reader, out io.Writer, cfg *Config) *Console {
	return &Console{
		rng:    game.NewPseudoRand(cfg.Seed),
		config: *cfg,
		in:     in,
		out:    out,
	}
}

// Run reads commands until quit or the end of input.
func (c *Console) Run() error {
	c.reset()

	reader := bufio.NewReader(c.in)
	for {
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch args := strings.Fields(line); {
		case len(args) == 0:
		case args[0] == "new":
			c.reset()
		case args[0] == "position":
			c.commandPosition(args[1:])
		case args[0] == "d":
			c.commandDraw()
		case args[0] == "fen":
			c.println(c.game.FEN())
		case args[0] == "moves":
			c.commandMoves(args[1:])
		case args[0] == "move":
			c.commandMove(args[1:])
		case args[0] == "random":
			c.commandRandom()
		case args[0] == "eval":
			c.commandEval()
		case args[0] == "perft":
			c.commandPerft(args[1:])
		case args[0] == "quit":
			return nil
		default:
			c.println("unknown command:", args[0])
		}
	}
}

func (c *Console) commandPosition(args []string) {
	if len(args) == 0 {
		return
	}

	var fen string
	switch args[0] {
	case "fen":
		fen = strings.Join(args[1:], " ")
	case "startpos":
		fen = board.DefaultStartingPositionFEN
	default:
		return
	}

	g, err := game.New(board.WithFEN(fen))
	if err != nil {
		c.println("error:", err)
		return
	}
	c.game = g
}

func (c *Console) commandDraw() {
	var h board.Highlights
	if sq, ok := c.game.CheckSquare(); ok {
		h.Check = &sq
	}
	b := c.game.Board()
	c.println(b.Draw(h))
	c.println(b.DebugString())
	c.commandEval()
}

func (c *Console) commandMoves(args []string) {
	if len(args) != 1 {
		c.println("usage: moves <square>")
		return
	}
	from, err := position.NewSquareFromNotation(args[0])
	if err != nil {
		c.println("error:", err)
		return
	}
	d, err := c.game.Select(from)
	if err != nil {
		c.println("error:", err)
		return
	}
	c.println(c.game.Board().Draw(board.Highlights{Destinations: d}))
	c.println(fmt.Sprintf("quiet=%v captures=%v", d.Quiet, d.Captures))
}

func (c *Console) commandMove(args []string) {
	if len(args) != 1 || len(args[0]) != 4 {
		c.println("usage: move <from><to>, e.g. move e2e4")
		return
	}
	from, err := position.NewSquareFromNotation(args[0][:2])
	if err != nil {
		c.println("error:", err)
		return
	}
	to, err := position.NewSquareFromNotation(args[0][2:])
	if err != nil {
		c.println("error:", err)
		return
	}
	mv, err := c.game.Move(from, to)
	if err != nil {
		c.println("error:", err)
		return
	}
	c.played(mv)
}

func (c *Console) commandRandom() {
	mv, err := c.game.RandomMove(c.rng)
	if err != nil {
		c.println("error:", err)
		return
	}
	c.played(mv)
}

func (c *Console) played(mv board.Move) {
	c.println(fmt.Sprintf("%s: %s", mv.Piece.Side, mv.Algebra()))
	if st := c.game.State(); st.IsCheckmate() {
		c.println(fmt.Sprintf("checkmate, %s wins", st.Winner()))
	}
}

func (c *Console) commandEval() {
	score := c.game.Score()
	c.println(fmt.Sprintf("%s %s", engine.DrawBar(score, barLength), engine.FormatScore(score)))
}

func (c *Console) commandPerft(args []string) {
	if len(args) != 1 {
		return
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil {
		c.println("usage: perft <depth>")
		return
	}

	out := make(chan string, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for s := range out {
			c.println(s)
		}
	}()

	_, err = bench.Perft(depth, c.game.FEN(), c.config.ParallelPerft, true, out)
	close(out)
	<-done
	if err != nil {
		c.println("error:", err)
	}
}

func (c *Console) reset() {
	c.commandPosition([]string{"startpos"})
}

func (c *Console) println(a ...any) {
	fmt.Fprintln(c.out, a...)
}
