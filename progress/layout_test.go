package progress

import (
	"sync"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// finiOnceScreen makes Fini idempotent: tcell's simscreen panics on a
// second Fini, unlike the production terminal screen, so a display's
// End and the helper cleanup must be safe to run in either order.
type finiOnceScreen struct {
	tcell.SimulationScreen
	once sync.Once
}

func (s *finiOnceScreen) Fini() {
	s.once.Do(s.SimulationScreen.Fini)
}

// newTestScreen creates an initialized simulation screen with the given extents.
func newTestScreen(t *testing.T, cols, lines int) tcell.SimulationScreen {
	t.Helper()
	screen := &finiOnceScreen{SimulationScreen: tcell.NewSimulationScreen("UTF-8")}
	require.NoError(t, screen.Init())
	screen.SetSize(cols, lines)
	t.Cleanup(screen.Fini)
	return screen
}

// fixedBox is a test panel with explicit content extents and no content.
type fixedBox struct {
	*Box
	width  int
	height int
}

func newFixedBox(screen tcell.Screen, width, height int, border bool) *fixedBox {
	fb := &fixedBox{width: width, height: height}
	fb.Box = newBox(screen, fb, border, "")
	return fb
}

func (fb *fixedBox) ContentWidth() int  { return fb.width }
func (fb *fixedBox) ContentHeight() int { return fb.height }
func (fb *fixedBox) DrawContent()       {}
func (fb *fixedBox) ResizeForLayout(props LayoutProperties) (bool, error) {
	return unchangedForLayout(props)
}

type rect struct{ x, y, w, h int }

func boxRect(b *Box) rect {
	h, w := b.LastSize()
	return rect{x: b.Pos().X, y: b.Pos().Y, w: w, h: h}
}

func (r rect) intersects(o rect) bool {
	return r.x < o.x+o.w && o.x < r.x+r.w && r.y < o.y+o.h && o.y < r.y+r.h
}

// TestLayoutRowPlacement verifies boxes that fit one row share it,
// horizontally centered with equal gaps and in input order.
func TestLayoutRowPlacement(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	layout := NewBoxLayout(24, 80, 1)

	boxes := make([]*fixedBox, 3)
	for i := range boxes {
		boxes[i] = newFixedBox(screen, 20, 5, true)
		layout.AddBox(boxes[i].Box)
	}
	require.NoError(t, layout.Position())

	// Content 20x5 plus borders is 22x7; three of them leave 14 spare
	// columns, split into four gaps of 3 plus a centering shift of 1.
	assert.Equal(t, Position{Y: 0, X: 4}, boxes[0].Pos())
	assert.Equal(t, Position{Y: 0, X: 29}, boxes[1].Pos())
	assert.Equal(t, Position{Y: 0, X: 54}, boxes[2].Pos())
	assert.Equal(t, 72, layout.MaxRowWidth())

	for i, box := range boxes {
		r := boxRect(box.Box)
		assert.True(t, box.Placed(), "box %d not placed", i)
		assert.GreaterOrEqual(t, r.x, 0)
		assert.LessOrEqual(t, r.x+r.w, 80)
		assert.LessOrEqual(t, r.y+r.h, 24)
		for j := i + 1; j < len(boxes); j++ {
			assert.False(t, r.intersects(boxRect(boxes[j].Box)), "boxes %d and %d overlap", i, j)
		}
	}
}

// TestLayoutSpillsToNextRow verifies a box that does not fit the current
// row opens a new one, and boxes after it stay in input order.
func TestLayoutSpillsToNextRow(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	layout := NewBoxLayout(24, 80, 1)

	boxes := make([]*fixedBox, 3)
	for i := range boxes {
		boxes[i] = newFixedBox(screen, 28, 5, true)
		layout.AddBox(boxes[i].Box)
	}
	require.NoError(t, layout.Position())

	// Two 30-wide boxes fill the first row; the third spills below.
	assert.Equal(t, Position{Y: 0, X: 7}, boxes[0].Pos())
	assert.Equal(t, Position{Y: 0, X: 43}, boxes[1].Pos())
	assert.Equal(t, Position{Y: 8, X: 25}, boxes[2].Pos())
	assert.Equal(t, 66, layout.MaxRowWidth())
}

// TestLayoutBreakForcesNewRow verifies an explicit break starts a new
// row even when the current row has room left.
func TestLayoutBreakForcesNewRow(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	layout := NewBoxLayout(24, 80, 1)

	first := newFixedBox(screen, 10, 3, true)
	second := newFixedBox(screen, 10, 3, true)
	layout.AddBox(first.Box)
	layout.AddBreak()
	layout.AddBox(second.Box)
	require.NoError(t, layout.Position())

	assert.Equal(t, Position{Y: 0, X: 34}, first.Pos())
	assert.Equal(t, Position{Y: 6, X: 34}, second.Pos())
}

// TestLayoutShorterBoxCenteredInRow verifies vertical centering against
// the tallest box in the row.
func TestLayoutShorterBoxCenteredInRow(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	layout := NewBoxLayout(24, 80, 1)

	tall := newFixedBox(screen, 10, 8, true)
	short := newFixedBox(screen, 10, 2, true)
	layout.AddBox(tall.Box)
	layout.AddBox(short.Box)
	require.NoError(t, layout.Position())

	assert.Equal(t, 0, tall.Pos().Y)
	assert.Equal(t, 3, short.Pos().Y)
}

// TestLayoutRejectsTooWideBox verifies a box wider than the terminal is
// a sizing failure, not a silent clip.
func TestLayoutRejectsTooWideBox(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	layout := NewBoxLayout(24, 80, 1)
	layout.AddBox(newFixedBox(screen, 98, 3, true).Box)

	err := layout.Position()
	var sizing *SizingError
	require.ErrorAs(t, err, &sizing)
	assert.Equal(t, "insufficient columns available", sizing.Reason)
}

// TestLayoutRejectsVerticalOverflow verifies a row taller than the
// remaining vertical budget is a sizing failure.
func TestLayoutRejectsVerticalOverflow(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	layout := NewBoxLayout(24, 80, 1)
	layout.AddBox(newFixedBox(screen, 10, 28, true).Box)

	err := layout.Position()
	var sizing *SizingError
	require.ErrorAs(t, err, &sizing)
	assert.Equal(t, "insufficient lines available", sizing.Reason)
}

// TestLayoutResizeIsDeterministic verifies reflowing to the same extents
// reproduces identical positions, including after an intermediate reflow
// to different extents.
func TestLayoutResizeIsDeterministic(t *testing.T) {
	screen := newTestScreen(t, 120, 40)
	layout := NewBoxLayout(24, 80, 1)

	boxes := make([]*fixedBox, 3)
	for i := range boxes {
		boxes[i] = newFixedBox(screen, 28, 5, true)
		layout.AddBox(boxes[i].Box)
	}
	require.NoError(t, layout.Position())

	original := make([]Position, len(boxes))
	for i, box := range boxes {
		original[i] = box.Pos()
	}

	require.NoError(t, layout.Resize(24, 80))
	for i, box := range boxes {
		assert.Equal(t, original[i], box.Pos(), "box %d moved on identical reflow", i)
	}

	require.NoError(t, layout.Resize(40, 120))
	moved := false
	for i, box := range boxes {
		if box.Pos() != original[i] {
			moved = true
		}
	}
	assert.True(t, moved, "wider reflow changed nothing")

	require.NoError(t, layout.Resize(24, 80))
	for i, box := range boxes {
		assert.Equal(t, original[i], box.Pos(), "box %d did not return to original position", i)
	}
}

// TestLayoutDashboardFitsSmallTerminal walks a full dashboard shape
// through a 24x80 terminal: a banner row shared with three panels, then
// a log panel that claims exactly the remaining space.
func TestLayoutDashboardFitsSmallTerminal(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	layout := NewBoxLayout(24, 80, 1)

	bannerPanel := newFixedBox(screen, 20, 10, false)
	layout.AddBox(bannerPanel.Box)
	panels := make([]*fixedBox, 3)
	for i := range panels {
		panels[i] = newFixedBox(screen, 10, 8, true)
		layout.AddBox(panels[i].Box)
	}
	layout.AddBreak()
	logPanel := NewLogBox(screen, 10, 5, 0)
	layout.AddBox(logPanel.Box)

	require.NoError(t, layout.Position())

	// Banner and panels share one 10-line row starting at the top.
	assert.Equal(t, Position{Y: 0, X: 6}, bannerPanel.Pos())
	for i, panel := range panels {
		assert.Equal(t, 0, panel.Pos().Y, "panel %d not on the banner row", i)
	}
	assert.Equal(t, 68, layout.MaxRowWidth())

	// The log claims the remaining 13 lines: 11 content plus borders,
	// ending exactly on the last terminal line.
	assert.Equal(t, 66, logPanel.columns)
	assert.Equal(t, 11, logPanel.lines)
	assert.Equal(t, Position{Y: 11, X: 6}, logPanel.Pos())
	h, _ := logPanel.LastSize()
	assert.Equal(t, 24, logPanel.Pos().Y+h)
}

// TestLayoutRejectsUnusableLogSpace verifies that a log panel squeezed
// below its minimum line budget fails placement with a sizing error.
func TestLayoutRejectsUnusableLogSpace(t *testing.T) {
	screen := newTestScreen(t, 80, 15)
	layout := NewBoxLayout(15, 80, 1)

	layout.AddBox(newFixedBox(screen, 20, 10, false).Box)
	layout.AddBreak()
	layout.AddBox(NewLogBox(screen, 10, 5, 0).Box)

	err := layout.Position()
	var sizing *SizingError
	require.ErrorAs(t, err, &sizing)
	assert.Equal(t, "insufficient space available to display log messages", sizing.Reason)
}
