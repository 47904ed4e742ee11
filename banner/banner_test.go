package banner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewPadsRowsToLongest verifies every row is padded to one shared
// column count.
func TestNewPadsRowsToLongest(t *testing.T) {
	b := New([]string{"abcd", "ef", ""})

	assert.Equal(t, 4, b.ColumnCount())
	assert.Equal(t, 3, b.RowCount())
	assert.Equal(t, []string{"abcd", "ef  ", "    "}, b.Rows())
}

// TestWelcomeRespectsTerminalWidth verifies the welcome banner is
// omitted on terminals too narrow to show it.
func TestWelcomeRespectsTerminalWidth(t *testing.T) {
	assert.Nil(t, Welcome(10))

	b := Welcome(120)
	require.NotNil(t, b)
	assert.Positive(t, b.RowCount())
	assert.LessOrEqual(t, b.ColumnCount(), 120)
	for _, row := range b.Rows() {
		assert.Len(t, []rune(row), b.ColumnCount())
	}
}
