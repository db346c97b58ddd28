package utils

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// TruncateString cuts s to at most width terminal cells, ending in "…" when
// anything was cut.
func TruncateString(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// FitWidth truncates or right-pads s to exactly width cells.
func FitWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.FillRight(TruncateString(s, width), width)
}

// SpreadLine places left and right at the edges of width cells. When both do
// not fit, right is dropped and left is truncated.
func SpreadLine(left, right string, width int) string {
	lw, rw := runewidth.StringWidth(left), runewidth.StringWidth(right)
	if lw+rw+1 > width {
		return FitWidth(left, width)
	}
	return left + strings.Repeat(" ", width-lw-rw) + right
}

// DropLastRune removes the final rune of s.
func DropLastRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}
