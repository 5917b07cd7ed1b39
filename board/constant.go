package board

import "github.com/daystram/evalbar/position"

const (
	Width  = position.MaxComponentScalar
	Height = position.MaxComponentScalar

	DefaultStartingPositionFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

	kingHomeCol int8 = 4
)
