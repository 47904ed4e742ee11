package progress

import (
	"github.com/gdamore/tcell/v2"
)

// Position is an absolute terminal cell coordinate.
type Position struct {
	Y int
	X int
}

// LayoutProperties is a read-only snapshot of layout state passed to a
// box asking it to adapt to its final layout space.
type LayoutProperties struct {
	Lines       int // total terminal lines
	CurrentLine int // vertical cursor at the time of the call
	MaxRowWidth int // widest row placed so far
}

// Content is the capability each box variant provides: its content
// extents (without borders), its content drawing, and an optional claim
// on layout-dependent dimensions.
type Content interface {
	ContentWidth() int
	ContentHeight() int
	DrawContent()
	ResizeForLayout(props LayoutProperties) (bool, error)
}

// Box is the shared border/title/geometry contract for all panel kinds.
// A box draws onto a screen it does not own.
type Box struct {
	screen  tcell.Screen
	content Content
	border  bool
	title   string
	style   tcell.Style

	placed         bool
	pos            Position
	lastH, lastW   int // last computed size, border included
	drawnH, drawnW int // geometry currently occupied on screen
}

func newBox(screen tcell.Screen, content Content, border bool, title string) *Box {
	return &Box{
		screen:  screen,
		content: content,
		border:  border,
		title:   title,
		style:   tcell.StyleDefault,
	}
}

// ComputeSize returns total box dimensions: content extents plus two in
// each dimension when bordered.
func (b *Box) ComputeSize() (height, width int) {
	height = b.content.ContentHeight()
	width = b.content.ContentWidth()
	if b.border {
		height += 2
		width += 2
	}
	b.lastH, b.lastW = height, width
	return height, width
}

// SetPosition places the box at (y, x). Relocating a placed box first
// erases its old footprint at a minimal shrink so it never transiently
// overlaps a sibling, then claims the new rectangle. Geometry that does
// not fit current terminal extents is a *SizingError, never swallowed.
func (b *Box) SetPosition(y, x int) error {
	if b.placed {
		fillRect(b.screen, b.pos.X, b.pos.Y, b.drawnW, b.drawnH, b.style)
		b.drawnH, b.drawnW = 1, 1
	}
	height, width := b.ComputeSize()
	cols, lines := b.screen.Size()
	if y < 0 || x < 0 || y+height > lines || x+width > cols {
		return &SizingError{
			Reason: "error moving box",
			Pos:    Position{Y: y, X: x},
			Height: height,
			Width:  width,
			Lines:  lines,
			Cols:   cols,
		}
	}
	b.pos = Position{Y: y, X: x}
	b.drawnH, b.drawnW = height, width
	b.placed = true
	return nil
}

// Placed reports whether the box has been positioned.
func (b *Box) Placed() bool {
	return b.placed
}

// Pos returns the box's current position. Meaningful only after placement.
func (b *Box) Pos() Position {
	return b.pos
}

// LastSize returns the most recently computed total dimensions.
func (b *Box) LastSize() (height, width int) {
	return b.lastH, b.lastW
}

// SetTitle replaces the box title for the next render.
func (b *Box) SetTitle(title string) {
	b.title = title
}

// borderOffset is the content inset: 1 inside a border, 0 otherwise.
func (b *Box) borderOffset() int {
	if b.border {
		return 1
	}
	return 0
}

// Render draws the border if configured, a horizontally centered title
// when it fits the content width, then the variant content. Out-of-range
// cell writes during a resize race are clipped by the draw primitives.
func (b *Box) Render() {
	height, width := b.ComputeSize()
	if b.border {
		drawBorder(b.screen, b.pos.X, b.pos.Y, width, height, b.style)
	}
	if b.title != "" {
		titleLen := runeLen(b.title)
		if titleLen <= width-2*b.borderOffset() {
			drawText(b.screen, b.pos.X+(width-titleLen)/2, b.pos.Y, b.title, b.style)
		}
	}
	b.content.DrawContent()
}

// Update renders the box into the pending frame. The controller owns the
// flush to screen.
func (b *Box) Update() {
	b.Render()
}

// text draws a content-relative string, offset by the box position.
func (b *Box) text(x, y int, s string) {
	drawText(b.screen, b.pos.X+x, b.pos.Y+y, s, b.style)
}

// unchangedForLayout is the default ResizeForLayout hook: boxes keep
// their intrinsic dimensions.
func unchangedForLayout(LayoutProperties) (bool, error) {
	return false, nil
}
