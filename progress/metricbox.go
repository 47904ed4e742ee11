package progress

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
)

// metricBoxWidth is the hard-coded content width of metric boxes. The
// space taken up on screen is this value plus two for the borders, and
// boxes on the same row are separated by the layout padding.
const metricBoxWidth = 39

// Metric is one labeled counter row in a metric panel.
type Metric struct {
	Label string
	Value string
}

// NewMetric builds a metric from an integer counter value.
func NewMetric(label string, value int64) Metric {
	return Metric{Label: label, Value: strconv.FormatInt(value, 10)}
}

// MetricBox is a bordered, titled panel showing a fixed-order list of
// metrics, one per row.
type MetricBox struct {
	*Box
	metrics []Metric
}

// NewMetricBox creates a metric panel with the given initial metrics.
func NewMetricBox(screen tcell.Screen, metrics []Metric, title string) *MetricBox {
	mb := &MetricBox{metrics: metrics}
	mb.Box = newBox(screen, mb, true, title)
	return mb
}

// SetMetrics replaces the panel's metrics for the next render.
func (mb *MetricBox) SetMetrics(metrics []Metric) {
	mb.metrics = metrics
}

// Metrics returns the panel's current metrics.
func (mb *MetricBox) Metrics() []Metric {
	return mb.metrics
}

// ContentWidth is fixed; panel width does not depend on content.
func (mb *MetricBox) ContentWidth() int {
	return metricBoxWidth
}

func (mb *MetricBox) ContentHeight() int {
	return len(mb.metrics)
}

// DrawContent renders each metric as "<label>:" with the value
// right-justified to fill the remaining width.
func (mb *MetricBox) DrawContent() {
	offset := mb.borderOffset()
	for i, metric := range mb.metrics {
		label := metric.Label + ":"
		value := padLeft(metric.Value, mb.ContentWidth()-runeLen(label))
		mb.text(offset, i+offset, label+value)
	}
}

func (mb *MetricBox) ResizeForLayout(props LayoutProperties) (bool, error) {
	return unchangedForLayout(props)
}
