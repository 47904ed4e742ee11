package scan

import "fmt"

// Report formats the end-of-scan results line from the final metrics and
// the scan timer.
func Report(m *Metrics, t *Timer) string {
	files := m.Value(CounterFiles, Aggregate)
	bytes := m.Value(CounterBytes, Aggregate)
	matches := m.Value(CounterMatches, Aggregate)
	return fmt.Sprintf(
		"Processed %d file(s) containing %s in %.2f second(s); found %d suspicious match(es)",
		files, formatByteCount(bytes), t.Seconds(), matches,
	)
}

// formatByteCount renders a byte count with a binary unit suffix.
func formatByteCount(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div := int64(unit)
	exp := 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
