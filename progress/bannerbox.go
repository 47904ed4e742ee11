package progress

import (
	"github.com/gdamore/tcell/v2"
)

// Banner is the welcome banner contract: an ordered sequence of
// equal-length text rows with declared extents.
type Banner interface {
	Rows() []string
	RowCount() int
	ColumnCount() int
}

// BannerBox is a borderless panel rendering banner rows verbatim.
type BannerBox struct {
	*Box
	banner Banner
}

// NewBannerBox creates a banner panel.
func NewBannerBox(screen tcell.Screen, banner Banner) *BannerBox {
	bb := &BannerBox{banner: banner}
	bb.Box = newBox(screen, bb, false, "")
	return bb
}

func (bb *BannerBox) ContentWidth() int {
	return bb.banner.ColumnCount()
}

func (bb *BannerBox) ContentHeight() int {
	return bb.banner.RowCount()
}

func (bb *BannerBox) DrawContent() {
	offset := bb.borderOffset()
	for i, row := range bb.banner.Rows() {
		bb.text(offset, i+offset, row)
	}
}

func (bb *BannerBox) ResizeForLayout(props LayoutProperties) (bool, error) {
	return unchangedForLayout(props)
}
