// Package banner provides the welcome banner shown above the dashboard.
package banner

// Banner is an ordered block of equal-length text rows with declared
// extents, rendered verbatim.
type Banner struct {
	rows    []string
	columns int
}

// New builds a banner from the given rows, padding each with spaces to
// the longest row so all rows share one declared column count.
func New(rows []string) *Banner {
	columns := 0
	for _, row := range rows {
		if n := len([]rune(row)); n > columns {
			columns = n
		}
	}
	padded := make([]string, len(rows))
	for i, row := range rows {
		runes := []rune(row)
		for len(runes) < columns {
			runes = append(runes, ' ')
		}
		padded[i] = string(runes)
	}
	return &Banner{rows: padded, columns: columns}
}

// Rows returns the banner rows, all of equal length.
func (b *Banner) Rows() []string {
	return b.rows
}

// RowCount returns the declared row count.
func (b *Banner) RowCount() int {
	return len(b.rows)
}

// ColumnCount returns the declared column count.
func (b *Banner) ColumnCount() int {
	return b.columns
}

var welcomeRows = []string{
	`                      _`,
	` ___  ___ __ _ _ __  | |_ ___  _ __`,
	`/ __|/ __/ _' | '_ \ | __/ _ \| '_ \`,
	`\__ \ (_| (_| | | | || || (_) | |_) |`,
	`|___/\___\__,_|_| |_| \__\___/| .__/`,
	`                              |_|`,
}

// Welcome returns the welcome banner, or nil when the terminal is too
// narrow to show it. An absent banner is legal everywhere it is
// consumed.
func Welcome(columns int) *Banner {
	b := New(welcomeRows)
	if b.ColumnCount() > columns {
		return nil
	}
	return b
}
