package progress

import "slices"

// BoxLayout packs an ordered list of boxes, plus explicit row breaks,
// into horizontally centered rows within fixed terminal extents. The row
// fill is greedy, left to right and order preserving: a box that does
// not fit the current row spills to the next along with everything after
// it in input order. A spilled box is never reconsidered against a
// later, less full row; that is an intentional simplicity tradeoff.
type BoxLayout struct {
	lines   int
	cols    int
	padding int

	currentLine int
	maxRowWidth int

	// content holds boxes in placement order; a nil entry is a row
	// break. The optional banner is just an optional slot here.
	content      []*Box
	unpositioned []*Box
}

// NewBoxLayout creates a layout for the given terminal extents. Padding
// separates rows vertically and is the minimum horizontal gap charged
// against each box's row budget.
func NewBoxLayout(lines, cols, padding int) *BoxLayout {
	return &BoxLayout{lines: lines, cols: cols, padding: padding}
}

// AddBox appends a box to the placement order.
func (l *BoxLayout) AddBox(b *Box) {
	l.content = append(l.content, b)
	l.unpositioned = append(l.unpositioned, b)
}

// AddBreak forces the next box onto a new row.
func (l *BoxLayout) AddBreak() {
	l.content = append(l.content, nil)
	l.unpositioned = append(l.unpositioned, nil)
}

// Properties snapshots the current layout state for ResizeForLayout.
func (l *BoxLayout) Properties() LayoutProperties {
	return LayoutProperties{
		Lines:       l.lines,
		CurrentLine: l.currentLine,
		MaxRowWidth: l.maxRowWidth,
	}
}

// MaxRowWidth returns the widest row placed so far.
func (l *BoxLayout) MaxRowWidth() int {
	return l.maxRowWidth
}

type placedBox struct {
	box    *Box
	height int
	width  int
}

// positionRow places as many of the given boxes as fit on one row and
// returns the spill for the next row. Within the row, the remaining
// horizontal space is distributed as equal gaps before, between and
// after the boxes, any rounding remainder absorbed by centering the
// padded row; each box is vertically centered against the row's tallest.
func (l *BoxLayout) positionRow(row []*Box) ([]*Box, error) {
	var positioned []placedBox
	var extra []*Box
	rowWidth := 0
	unpaddedRowWidth := 0
	rowHeight := 0

	for _, box := range row {
		if _, err := box.content.ResizeForLayout(l.Properties()); err != nil {
			return nil, err
		}
		height, width := box.ComputeSize()
		required := width + l.padding
		if len(positioned) > 0 && (len(extra) > 0 || rowWidth+required > l.cols) {
			extra = append(extra, box)
			continue
		}
		rowWidth += required
		if rowWidth > l.cols {
			return nil, &SizingError{Reason: "insufficient columns available"}
		}
		unpaddedRowWidth += width
		rowHeight = max(rowHeight, height)
		positioned = append(positioned, placedBox{box: box, height: height, width: width})
	}

	if l.currentLine+rowHeight > l.lines {
		return nil, &SizingError{Reason: "insufficient lines available"}
	}

	boxCount := len(positioned)
	padding := (l.cols - unpaddedRowWidth) / (boxCount + 1)
	paddedWidth := unpaddedRowWidth + padding*(boxCount+1)
	x := padding + (l.cols-paddedWidth)/2
	finalRowWidth := 0
	previousPadding := 0
	for _, p := range positioned {
		finalRowWidth += previousPadding
		y := l.currentLine + (rowHeight-p.height)/2
		if err := p.box.SetPosition(y, x); err != nil {
			return nil, err
		}
		x += p.width + padding
		finalRowWidth += p.width
		previousPadding = padding
	}

	l.currentLine += rowHeight + l.padding
	l.maxRowWidth = max(l.maxRowWidth, finalRowWidth)
	return extra, nil
}

// Position replays all unpositioned content through the row fill.
func (l *BoxLayout) Position() error {
	var row []*Box
	var err error
	for _, item := range l.unpositioned {
		if item == nil {
			if row, err = l.positionRow(row); err != nil {
				return err
			}
		} else {
			row = append(row, item)
		}
	}
	for len(row) > 0 {
		if row, err = l.positionRow(row); err != nil {
			return err
		}
	}
	l.unpositioned = nil
	return nil
}

// UpdateContent re-renders every box into the pending frame.
func (l *BoxLayout) UpdateContent() {
	for _, item := range l.content {
		if item != nil {
			item.Update()
		}
	}
}

// Reset discards all placement progress so Position replays the full
// content list.
func (l *BoxLayout) Reset() {
	l.currentLine = 0
	l.maxRowWidth = 0
	l.unpositioned = slices.Clone(l.content)
}

// Resize reflows the whole layout against new extents. Positions are
// recomputed wholesale; resizing twice to identical extents yields
// identical positions.
func (l *BoxLayout) Resize(lines, cols int) error {
	l.lines = lines
	l.cols = cols
	l.Reset()
	return l.Position()
}
