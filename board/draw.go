package board

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/daystram/evalbar/position"
)

var (
	colorLight   = color.New(color.FgBlack, color.BgHiWhite)
	colorDark    = color.New(color.FgBlack, color.BgWhite)
	colorQuiet   = color.New(color.FgBlack, color.BgYellow)
	colorCapture = color.New(color.FgBlack, color.BgRed)
	// no orange in the 16 colour palette
	colorCheck = color.New(color.FgBlack, color.BgHiMagenta)
	colorLabel = color.New(color.Bold)
)

// Highlights marks squares to be coloured by Draw.
type Highlights struct {
	Destinations Destinations
	Check        *position.Square
}

func (h Highlights) colorOf(sq position.Square) *color.Color {
	if h.Check != nil && *h.Check == sq {
		return colorCheck
	}
	for _, c := range h.Destinations.Captures {
		if c == sq {
			return colorCapture
		}
	}
	for _, q := range h.Destinations.Quiet {
		if q == sq {
			return colorQuiet
		}
	}
	return nil
}

// Draw renders the board with unicode pieces on coloured squares.
func (b *Board) Draw(h Highlights) string {
	builder := strings.Builder{}
	for row := int8(0); row < Height; row++ {
		_, _ = builder.WriteString(colorLabel.Sprintf(" %s ", position.NotationComponentRow(row)))
		for col := int8(0); col < Width; col++ {
			sq := position.NewSquare(row, col)
			sym := " "
			if key, _, ok := b.PieceAt(sq); ok {
				sym = key.Piece.SymbolUnicode(key.Side)
			}
			c := h.colorOf(sq)
			if c == nil {
				if (row+col)%2 == 0 {
					c = colorLight
				} else {
					c = colorDark
				}
			}
			_, _ = builder.WriteString(c.Sprintf(" %s ", sym))
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("   ")
	for col := int8(0); col < Width; col++ {
		_, _ = builder.WriteString(colorLabel.Sprintf(" %s ", position.NotationComponentCol(col)))
	}
	return builder.String()
}

// Dump renders the board as plain ASCII using FEN symbols.
func (b *Board) Dump() string {
	builder := strings.Builder{}
	for row := int8(0); row < Height; row++ {
		_, _ = builder.WriteString("   +---+---+---+---+---+---+---+---+\n")
		_, _ = builder.WriteString(fmt.Sprintf(" %s |", position.NotationComponentRow(row)))
		for col := int8(0); col < Width; col++ {
			sym := " "
			if key, _, ok := b.PieceAt(position.NewSquare(row, col)); ok {
				sym = key.Piece.SymbolFEN(key.Side)
			}
			_, _ = builder.WriteString(fmt.Sprintf(" %s |", sym))
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("   +---+---+---+---+---+---+---+---+\n   ")
	for col := int8(0); col < Width; col++ {
		_, _ = builder.WriteString(fmt.Sprintf("  %s ", position.NotationComponentCol(col)))
	}
	return builder.String()
}

func (b *Board) DebugString() string {
	white, black := b.castleRights[SideWhite], b.castleRights[SideBlack]
	return fmt.Sprintf("pieces: %d\ncast: w%+v b%+v", b.Count(), white, black)
}
