package progress

import (
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// defaultMaxMessages bounds the log history when no explicit capacity is
// configured.
const defaultMaxMessages = 512

// minLogLines is the smallest visible line budget a usable log panel
// can render.
const minLogLines = 3

// LogBox is a scrolling, bordered, continuously reflowed text panel. It
// keeps a bounded FIFO of raw unwrapped messages and hard-wraps them at
// the current column width on every render, newest first, until the
// visible line budget is exhausted.
type LogBox struct {
	*Box
	columns int
	lines   int

	// maxMessages is the backing queue capacity; zero means unlimited.
	maxMessages  int
	messages     []string
	cursorOffset *Position
}

// NewLogBox creates a log panel. Columns and lines are provisional; the
// layout recomputes both through ResizeForLayout. Capacity semantics:
// an explicit positive value is used as-is, zero selects
// max(lines, defaultMaxMessages), and a negative value means unlimited.
func NewLogBox(screen tcell.Screen, columns, lines, maxMessages int) *LogBox {
	lb := &LogBox{columns: columns, lines: lines}
	lb.maxMessages = determineMaxMessages(maxMessages, lines)
	lb.Box = newBox(screen, lb, true, "")
	return lb
}

func determineMaxMessages(maxMessages, lines int) int {
	switch {
	case maxMessages < 0:
		return 0
	case maxMessages == 0:
		return max(lines, defaultMaxMessages)
	default:
		return maxMessages
	}
}

func (lb *LogBox) ContentWidth() int {
	return lb.columns
}

func (lb *LogBox) ContentHeight() int {
	return lb.lines
}

// AddMessage strips control characters from the message, appends it to
// the bounded history, and re-renders immediately.
func (lb *LogBox) AddMessage(message string) {
	lb.messages = append(lb.messages, filterControlCharacters(message))
	if lb.maxMessages > 0 && len(lb.messages) > lb.maxMessages {
		// Prune oldest-first. Copy down so the backing array does not
		// grow without bound.
		overflow := len(lb.messages) - lb.maxMessages
		n := copy(lb.messages, lb.messages[overflow:])
		lb.messages = lb.messages[:n]
	}
	lb.Update()
}

// Messages returns the raw message history, oldest first.
func (lb *LogBox) Messages() []string {
	return lb.messages
}

// visibleLines maps the message history to at most lb.lines wrapped
// display lines. Messages are consumed newest to oldest, each hard
// wrapped at the column width by fixed-width slicing over display cells
// (a wide rune counts as two); consumption stops once the budget is
// exhausted. Older messages that were not consumed stay in the history
// for a future, larger render.
func (lb *LogBox) visibleLines() []string {
	if lb.columns <= 0 || lb.lines <= 0 {
		return nil
	}
	var visible []string
	remaining := lb.lines
	for i := len(lb.messages) - 1; i >= 0 && remaining > 0; i-- {
		message := lb.messages[i]
		var wrapped []string
		for message != "" && remaining > 0 {
			var line string
			line, message = splitWidth(message, lb.columns)
			wrapped = append(wrapped, line)
			remaining--
		}
		visible = append(wrapped, visible...)
	}
	return visible
}

// splitWidth splits s at the largest prefix whose display width fits
// limit cells. A leading rune wider than the limit is taken anyway so
// the split always makes progress.
func splitWidth(s string, limit int) (line, rest string) {
	width := 0
	for i, r := range s {
		w := runewidth.RuneWidth(r)
		if width+w > limit && i > 0 {
			return s[:i], s[i:]
		}
		width += w
	}
	return s, ""
}

// DrawContent renders the visible wrapped lines and records the end of
// the most recent one as the cursor offset.
func (lb *LogBox) DrawContent() {
	offset := lb.borderOffset()
	y := offset
	lastY := y
	lastLen := 0
	for _, line := range lb.visibleLines() {
		lastY = y
		lastLen = runewidth.StringWidth(line)
		lb.text(offset, y, padRight(line, lb.columns))
		y++
	}
	lb.cursorOffset = &Position{Y: lastY, X: lastLen}
}

// CursorPosition returns the absolute cell just past the end of the most
// recent visible log line, for external cursor placement.
func (lb *LogBox) CursorPosition() Position {
	var pos Position
	if lb.placed {
		pos.Y += lb.pos.Y
		pos.X += lb.pos.X
	}
	if lb.cursorOffset != nil {
		pos.Y += lb.cursorOffset.Y
		pos.X += lb.cursorOffset.X
	}
	return pos
}

// ResizeForLayout claims the remaining layout space: columns from the
// widest placed row, lines from whatever vertical budget is left. Fewer
// than minLogLines usable lines means the terminal cannot host a usable
// log panel.
func (lb *LogBox) ResizeForLayout(props LayoutProperties) (bool, error) {
	lb.columns = props.MaxRowWidth - 2
	lb.lines = props.Lines - props.CurrentLine - 2
	lb.cursorOffset = nil
	if lb.lines < minLogLines {
		return false, &SizingError{Reason: "insufficient space available to display log messages"}
	}
	return true, nil
}

// filterControlCharacters drops control runes so stray escape sequences
// cannot corrupt the fixed-width wrap.
func filterControlCharacters(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
