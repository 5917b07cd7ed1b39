package position

import (
	"errors"
)

const (
	// MaxComponentScalar is the maximum component scalar the position system supports.
	MaxComponentScalar int8 = 8
)

var (
	// ErrInvalidNotation represents an invalid notation error.
	ErrInvalidNotation = errors.New("invalid notation")
)

// Square addresses a board cell by row and column. Row 0 is Black's back rank (rank 8),
// row 7 is White's back rank (rank 1). Column 0 is the a-file.
type Square struct {
	Row int8 `json:"row"`
	Col int8 `json:"col"`
}

func NewSquare(row, col int8) Square {
	return Square{Row: row, Col: col}
}

func NewSquareFromNotation(n string) (Square, error) {
	col, row, err := notationToColRow(n)
	if err != nil {
		return Square{}, err
	}
	return Square{Row: row, Col: col}, nil
}

// All returns every square in row-major order.
func All() []Square {
	sqs := make([]Square, 0, MaxComponentScalar*MaxComponentScalar)
	for row := int8(0); row < MaxComponentScalar; row++ {
		for col := int8(0); col < MaxComponentScalar; col++ {
			sqs = append(sqs, Square{Row: row, Col: col})
		}
	}
	return sqs
}

func (s Square) Valid() bool {
	return 0 <= s.Row && s.Row < MaxComponentScalar && 0 <= s.Col && s.Col < MaxComponentScalar
}

func (s Square) Offset(dRow, dCol int8) Square {
	return Square{Row: s.Row + dRow, Col: s.Col + dCol}
}

func (s Square) String() string {
	return s.Notation()
}

func (s Square) Notation() string {
	if !s.Valid() {
		return ""
	}
	return NotationComponentCol(s.Col) + NotationComponentRow(s.Row)
}

func notationToColRow(n string) (int8, int8, error) {
	if len(n) != 2 {
		return 0, 0, ErrInvalidNotation
	}
	col, err := notationToCol(n[0])
	if err != nil {
		return 0, 0, err
	}
	row, err := notationToRow(n[1])
	if err != nil {
		return 0, 0, err
	}
	return col, row, nil
}

func notationToCol(c byte) (int8, error) {
	if c < 'a' || c >= 'a'+byte(MaxComponentScalar) {
		return 0, ErrInvalidNotation
	}
	return int8(c - 'a'), nil
}

func notationToRow(r byte) (int8, error) {
	if r < '1' || r >= '1'+byte(MaxComponentScalar) {
		return 0, ErrInvalidNotation
	}
	return MaxComponentScalar - 1 - int8(r-'1'), nil
}

func NotationComponentCol(col int8) string {
	if col < 0 || MaxComponentScalar <= col {
		return ""
	}
	return string(rune('a' + col))
}

func NotationComponentRow(row int8) string {
	if row < 0 || MaxComponentScalar <= row {
		return ""
	}
	return string(rune('8' - row))
}
