package progress

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Box drawing characters, single-line style
var borderChars = [6]rune{'┌', '─', '┐', '│', '└', '┘'}

const (
	borderTL = 0 // top-left
	borderH  = 1 // horizontal
	borderTR = 2 // top-right
	borderV  = 3 // vertical
	borderBL = 4 // bottom-left
	borderBR = 5 // bottom-right
)

// drawText renders text starting at (x, y), advancing by display width.
// Cells outside the screen are dropped by tcell, which is the intended
// behavior for draws racing a resize.
func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		s.SetContent(col, y, ch, nil, style)
		col += runewidth.RuneWidth(ch)
	}
}

// drawBorder draws a single-line border on the rectangle edge
func drawBorder(s tcell.Screen, x, y, w, h int, style tcell.Style) {
	if w < 2 || h < 2 {
		return
	}

	s.SetContent(x, y, borderChars[borderTL], nil, style)
	s.SetContent(x+w-1, y, borderChars[borderTR], nil, style)
	s.SetContent(x, y+h-1, borderChars[borderBL], nil, style)
	s.SetContent(x+w-1, y+h-1, borderChars[borderBR], nil, style)

	for cx := x + 1; cx < x+w-1; cx++ {
		s.SetContent(cx, y, borderChars[borderH], nil, style)
		s.SetContent(cx, y+h-1, borderChars[borderH], nil, style)
	}
	for cy := y + 1; cy < y+h-1; cy++ {
		s.SetContent(x, cy, borderChars[borderV], nil, style)
		s.SetContent(x+w-1, cy, borderChars[borderV], nil, style)
	}
}

// fillRect fills the rectangle with spaces
func fillRect(s tcell.Screen, x, y, w, h int, style tcell.Style) {
	for cy := y; cy < y+h; cy++ {
		for cx := x; cx < x+w; cx++ {
			s.SetContent(cx, cy, ' ', nil, style)
		}
	}
}

// runeLen returns length in runes, not bytes
func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

// padRight pads string with spaces to the given display width
func padRight(s string, width int) string {
	n := runewidth.StringWidth(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// padLeft left-pads string with spaces to width
func padLeft(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return s
	}
	buf := make([]rune, width)
	pad := width - len(runes)
	for i := 0; i < pad; i++ {
		buf[i] = ' '
	}
	copy(buf[pad:], runes)
	return string(buf)
}
