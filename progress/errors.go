package progress

import "fmt"

// SizingError reports content that cannot fit the current terminal
// geometry: a box wider than the terminal, an exhausted row or vertical
// budget, or a log panel below its minimum usable height. It is not
// recoverable for the current geometry; the terminal must be enlarged.
type SizingError struct {
	Reason string

	// Placement detail, populated when a specific box failed to place.
	Pos           Position
	Height, Width int
	Lines, Cols   int
}

func (e *SizingError) Error() string {
	if e.Height == 0 && e.Width == 0 {
		return e.Reason
	}
	return fmt.Sprintf("%s: y: %d, x: %d; height: %d; width: %d; lines: %d; columns: %d",
		e.Reason, e.Pos.Y, e.Pos.X, e.Height, e.Width, e.Lines, e.Cols)
}

// DisplayError wraps a fault that occurred while servicing an update or
// resize. By the time it is returned the terminal has been restored to
// cooked mode so the cause is visible.
type DisplayError struct {
	Op  string
	Err error
}

func (e *DisplayError) Error() string {
	return fmt.Sprintf("progress display %s failed: %v", e.Op, e.Err)
}

func (e *DisplayError) Unwrap() error {
	return e.Err
}
