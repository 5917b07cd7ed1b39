package engine

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// MaxBarScore is the score at which the evaluation bar is entirely one colour.
const MaxBarScore int32 = 2000

var (
	colorBarWhite = color.New(color.BgHiWhite)
	colorBarBlack = color.New(color.BgBlack)
)

// Bar splits a bar of the given length between White and Black according to
// score, clamped to ±MaxBarScore.
func Bar(score int32, length int) (white, black int) {
	n := float64(score) / float64(MaxBarScore)
	if n > 1 {
		n = 1
	} else if n < -1 {
		n = -1
	}
	white = int((0.5 + n/2) * float64(length))
	return white, length - white
}

// DrawBar renders a horizontal evaluation bar, White filling from the left.
func DrawBar(score int32, length int) string {
	white, black := Bar(score, length)
	return colorBarWhite.Sprint(strings.Repeat(" ", white)) + colorBarBlack.Sprint(strings.Repeat(" ", black))
}

// FormatScore renders a centipawn score in pawns.
func FormatScore(score int32) string {
	return fmt.Sprintf("%.2f", float64(score)/100)
}
