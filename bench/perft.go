package bench

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/daystram/evalbar/board"
)

// MaxDepth bounds Perft; deeper trees take hours with this move generator.
const MaxDepth = 6

var ErrInvalidDepth = errors.New("invalid perft depth")

// Counters tallies a perft run. Captures, castles and checks are counted on
// the leaf moves only.
type Counters struct {
	Nodes    uint64
	Captures uint64
	Castles  uint64
	Checks   uint64
}

// Perft walks the move tree of fen to the given depth and reports the totals
// on out. With verbose, the node count below each root move is reported too.
func Perft(depth int, fen string, parallel, verbose bool, out chan string) (Counters, error) {
	var c Counters
	if depth < 0 || depth > MaxDepth {
		return c, fmt.Errorf("%w: %d not in [0, %d]", ErrInvalidDepth, depth, MaxDepth)
	}
	b, turn, err := board.NewBoard(
		board.WithFEN(fen),
	)
	if err != nil {
		return c, err
	}

	var run perftFunc
	if parallel {
		run = runPerftParallel
	} else {
		run = runPerft
	}

	start := time.Now()
	run(b, turn, depth, true, verbose, out, &c)
	elapsed := time.Since(start).Seconds()

	report(out, message.NewPrinter(language.English).
		Sprintf("d=%d nodes=%d rate=%dn/s cap=%d cas=%d chk=%d (%.3fs elapsed)",
			depth, c.Nodes, int(float64(c.Nodes)/elapsed), c.Captures, c.Castles, c.Checks, elapsed))

	return c, nil
}

type perftFunc func(b *board.Board, turn board.Side, d int, root, verbose bool, out chan string, c *Counters) uint64

func runPerft(b *board.Board, turn board.Side, d int, root, verbose bool, out chan string, c *Counters) uint64 {
	if d == 0 {
		c.Nodes++
		return 1
	}

	var sum uint64
	for _, mv := range b.GenerateMoves(turn) {
		var child uint64
		if d != 1 {
			bb := b.Clone()
			bb.Commit(mv.Piece, mv.Index, mv.To)
			child = runPerft(bb, turn.Opposite(), d-1, false, verbose, out, c)
		} else {
			child = 1
			c.Nodes++
			if mv.IsCapture() {
				c.Captures++
			}
			if mv.IsCastle {
				c.Castles++
			}
			if mv.IsCheck {
				c.Checks++
			}
		}
		if verbose && root {
			report(out, fmt.Sprintf("%s: %d", mv.UCI(), child))
		}
		sum += child
	}
	return sum
}

func runPerftParallel(b *board.Board, turn board.Side, d int, root, verbose bool, out chan string, c *Counters) uint64 {
	if d == 0 {
		atomic.AddUint64(&c.Nodes, 1)
		return 1
	}

	var sum uint64
	var wg sync.WaitGroup
	for _, mv := range b.GenerateMoves(turn) {
		mv := mv
		wg.Add(1)
		go func() {
			defer wg.Done()
			var child uint64
			if d != 1 {
				bb := b.Clone()
				bb.Commit(mv.Piece, mv.Index, mv.To)
				child = runPerftParallel(bb, turn.Opposite(), d-1, false, verbose, out, c)
			} else {
				child = 1
				atomic.AddUint64(&c.Nodes, 1)
				if mv.IsCapture() {
					atomic.AddUint64(&c.Captures, 1)
				}
				if mv.IsCastle {
					atomic.AddUint64(&c.Castles, 1)
				}
				if mv.IsCheck {
					atomic.AddUint64(&c.Checks, 1)
				}
			}
			if verbose && root {
				report(out, fmt.Sprintf("%s: %d", mv.UCI(), child))
			}
			atomic.AddUint64(&sum, child)
		}()
	}
	wg.Wait()
	return sum
}

func report(out chan string, msg string) {
	if out != nil {
		out <- msg
	}
}
