package progress

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap/zapcore"

	"github.com/kvittem/scantop/scan"
)

const (
	metricsPadding    = 1
	metricsCount      = 5
	inputPollInterval = 100 * time.Millisecond
)

// ProgressDisplay owns the terminal session for the lifetime of a scan:
// it builds the banner, summary, per-worker and log boxes once at
// initialization, services progress updates and pending resizes at
// defined poll points, and guarantees the terminal returns to cooked
// mode on every exit path. The session moves through four phases:
// initializing (New), active (HandleUpdate), awaiting exit (EndOnInput)
// and ended (End).
type ProgressDisplay struct {
	screen      tcell.Screen
	registry    *Registry
	workerCount int
	logCapacity int
	banner      Banner

	bannerBox   *BannerBox
	metricBoxes []*MetricBox
	logBox      *LogBox
	layout      *BoxLayout

	termLines int
	termCols  int

	// pendingResize is the only state shared with the asynchronous
	// notification timeline. The notifier only ever sets it; check and
	// clear happen on the rendering goroutine.
	pendingResize atomic.Bool
	ended         atomic.Bool
	quit          chan struct{}
	keys          chan struct{}

	resultsMessage string
}

// Option configures a ProgressDisplay at construction.
type Option func(*ProgressDisplay)

// WithScreen supplies an already initialized screen instead of opening
// the process terminal. Used by tests with a simulation screen.
func WithScreen(screen tcell.Screen) Option {
	return func(d *ProgressDisplay) { d.screen = screen }
}

// WithBanner adds a welcome banner panel above the metric panels.
func WithBanner(banner Banner) Option {
	return func(d *ProgressDisplay) { d.banner = banner }
}

// WithLogCapacity bounds the log panel history: a positive value is an
// explicit capacity, zero selects the default, negative means unlimited.
func WithLogCapacity(capacity int) Option {
	return func(d *ProgressDisplay) { d.logCapacity = capacity }
}

// New opens the dashboard: it captures terminal geometry, builds all
// panels with zero-valued placeholders, lays them out once and renders
// the first frame. The display registers itself with the registry so
// process-wide interrupt and resize paths can reach it. On error the
// terminal is restored before returning.
func New(registry *Registry, workerCount int, opts ...Option) (*ProgressDisplay, error) {
	d := &ProgressDisplay{
		registry:    registry,
		workerCount: workerCount,
		quit:        make(chan struct{}),
		keys:        make(chan struct{}, 8),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("opening terminal screen: %w", err)
		}
		if err := screen.Init(); err != nil {
			return nil, fmt.Errorf("entering terminal raw mode: %w", err)
		}
		d.screen = screen
	}
	d.screen.HideCursor()
	d.termCols, d.termLines = d.screen.Size()

	if err := d.initializeContent(); err != nil {
		d.screen.Fini()
		return nil, err
	}

	registry.add(d)
	events := make(chan tcell.Event, 16)
	go d.screen.ChannelEvents(events, d.quit)
	go d.pump(events)
	return d, nil
}

func (d *ProgressDisplay) initializeContent() error {
	d.screen.Clear()
	if d.banner != nil {
		d.bannerBox = NewBannerBox(d.screen, d.banner)
	}
	if err := d.initializeMetricBoxes(); err != nil {
		return err
	}
	// Log extents are provisional; the layout recomputes both.
	d.logBox = NewLogBox(d.screen, 10, 5, d.logCapacity)
	if err := d.initializeLayout(); err != nil {
		return err
	}
	d.refresh()
	return nil
}

func (d *ProgressDisplay) initializeMetricBoxes() error {
	placeholder := scan.ProgressUpdate{Metrics: scan.NewMetrics(d.workerCount)}
	boxes := make([]*MetricBox, 0, d.workerCount+1)
	for index := 0; index <= d.workerCount; index++ {
		worker := scan.Aggregate
		title := "Summary"
		if index > 0 {
			worker = index - 1
			title = fmt.Sprintf("Worker %d", index)
		}
		metrics, err := metricsFor(placeholder, worker)
		if err != nil {
			return err
		}
		boxes = append(boxes, NewMetricBox(d.screen, metrics, title))
	}
	d.metricBoxes = boxes
	return nil
}

func (d *ProgressDisplay) initializeLayout() error {
	layout := NewBoxLayout(d.termLines, d.termCols, metricsPadding)
	if d.bannerBox != nil {
		layout.AddBox(d.bannerBox.Box)
	}
	for index, box := range d.metricBoxes {
		layout.AddBox(box.Box)
		if index == 0 {
			// Summary row ends here; workers pack below.
			layout.AddBreak()
		}
	}
	layout.AddBreak()
	layout.AddBox(d.logBox.Box)
	if err := layout.Position(); err != nil {
		return err
	}
	layout.UpdateContent()
	d.layout = layout
	return nil
}

// pump runs on the event timeline. It reduces resize events to pending
// flags on every registered display and keypresses to a non-blocking
// note for EndOnInput. It never touches terminal state or drawing.
func (d *ProgressDisplay) pump(events <-chan tcell.Event) {
	for ev := range events {
		switch ev.(type) {
		case *tcell.EventResize:
			d.registry.QueueResize()
		case *tcell.EventKey:
			select {
			case d.keys <- struct{}{}:
			default:
			}
		}
	}
}

// refresh flushes the pending frame to the terminal.
func (d *ProgressDisplay) refresh() {
	d.screen.Show()
}

// HandleUpdate services any pending resize, then refreshes every metric
// panel from the progress snapshot and flushes the frame. A rendering
// fault here is fatal: every live terminal is restored to cooked mode
// before the wrapped failure is returned.
func (d *ProgressDisplay) HandleUpdate(update scan.ProgressUpdate) error {
	if _, err := d.resizeIfNecessary(); err != nil {
		return err
	}
	if err := d.displayMetrics(update); err != nil {
		d.registry.ResetAll()
		return &DisplayError{Op: "update", Err: err}
	}
	d.refresh()
	return nil
}

func (d *ProgressDisplay) displayMetrics(update scan.ProgressUpdate) error {
	for index, box := range d.metricBoxes {
		worker := scan.Aggregate
		if index > 0 {
			worker = index - 1
		}
		metrics, err := metricsFor(update, worker)
		if err != nil {
			return err
		}
		box.SetMetrics(metrics)
		box.Update()
	}
	return nil
}

func metricsFor(update scan.ProgressUpdate, worker int) ([]Metric, error) {
	fileCount := update.Metrics.Value(scan.CounterFiles, worker)
	byteCount := update.Metrics.Value(scan.CounterBytes, worker)
	matchCount := update.Metrics.Value(scan.CounterMatches, worker)
	metrics := []Metric{
		NewMetric("Files Processed", fileCount),
		NewMetric("Bytes Processed", byteCount),
		NewMetric("Matches Found", matchCount),
		NewMetric("Files / Second", computeRate(fileCount, update.ElapsedTime)),
		NewMetric("Bytes / Second", computeRate(byteCount, update.ElapsedTime)),
	}
	if len(metrics) != metricsCount {
		return nil, fmt.Errorf("metric count out of sync: have %d, want %d", len(metrics), metricsCount)
	}
	return metrics, nil
}

// computeRate returns floor(value / elapsed), or zero before any time
// has passed.
func computeRate(value int64, elapsedTime float64) int64 {
	if elapsedTime > 0 {
		return int64(float64(value) / elapsedTime)
	}
	return 0
}

// QueueResize marks a pending resize on this display only. The usual
// entry point is Registry.QueueResize, which fans out to all displays.
func (d *ProgressDisplay) QueueResize() {
	d.pendingResize.Store(true)
}

// resizeIfNecessary services a pending resize, if any. The flag is
// cleared only after a successful reflow; failure restores every live
// terminal and reports a display failure.
func (d *ProgressDisplay) resizeIfNecessary() (bool, error) {
	if !d.pendingResize.Load() {
		return false, nil
	}
	if err := d.resize(); err != nil {
		d.registry.ResetAll()
		return false, &DisplayError{Op: "resize", Err: err}
	}
	d.pendingResize.Store(false)
	return true, nil
}

// resize reconciles layout and terminal surface with the measured size.
// When the terminal got narrower the layout reflows before the surface
// shrinks, so the old larger footprints never overlap the smaller
// surface; otherwise the surface resizes first. This conditional
// ordering is a hard invariant, not a stylistic choice.
func (d *ProgressDisplay) resize() error {
	cols, lines := d.screen.Size()
	smaller := cols < d.termCols
	if smaller {
		if err := d.layout.Resize(lines, cols); err != nil {
			return err
		}
	}
	d.resizeSurface(lines, cols)
	if !smaller {
		if err := d.layout.Resize(lines, cols); err != nil {
			return err
		}
	}
	d.layout.UpdateContent()
	d.refresh()
	return nil
}

// resizeSurface discards the stale frame and repaints the physical
// terminal at its new size.
func (d *ProgressDisplay) resizeSurface(lines, cols int) {
	d.screen.Clear()
	d.screen.Sync()
	d.termLines, d.termCols = lines, cols
}

// EndOnInput waits for a real keypress, then ends the display. Each idle
// tick services any pending resize and re-pins the cursor to the end of
// the log; resize events are not input.
func (d *ProgressDisplay) EndOnInput() error {
	d.flushInput()
	ticker := time.NewTicker(inputPollInterval)
	defer ticker.Stop()
	for {
		if d.ended.Load() {
			return nil
		}
		select {
		case <-d.keys:
			d.End()
			return nil
		case <-ticker.C:
			resized, err := d.resizeIfNecessary()
			if err != nil {
				return err
			}
			if resized {
				d.moveCursorToLogEnd()
				d.refresh()
			}
		}
	}
}

func (d *ProgressDisplay) flushInput() {
	for {
		select {
		case <-d.keys:
		default:
			return
		}
	}
}

// End restores the terminal to cooked mode and deregisters the display.
// Ending an already ended display is a no-op; no path leaves the
// terminal in raw mode.
func (d *ProgressDisplay) End() {
	if d.ended.Swap(true) {
		return
	}
	close(d.quit)
	d.screen.Fini()
	d.registry.remove(d)
}

// Ended reports whether the display session is over.
func (d *ProgressDisplay) Ended() bool {
	return d.ended.Load()
}

// ScanFinishedHandler publishes the final scan results into the log
// panel and leaves the cursor visible at the end of the log, signaling
// that input is now expected.
func (d *ProgressDisplay) ScanFinishedHandler(metrics *scan.Metrics, timer *scan.Timer) {
	d.resultsMessage = scan.Report(metrics, timer)
	d.logBox.AddMessage(d.resultsMessage)
	d.logBox.AddMessage("Scan completed! Press any key to exit.")
	d.moveCursorToLogEnd()
	d.refresh()
}

// ResultsMessage returns the formatted final results, for printing after
// the terminal is restored.
func (d *ProgressDisplay) ResultsMessage() string {
	return d.resultsMessage
}

func (d *ProgressDisplay) moveCursorToLogEnd() {
	pos := d.logBox.CursorPosition()
	d.screen.ShowCursor(pos.X+1, pos.Y)
}

// LogCore returns the structured-log sink: a zap core forwarding each
// formatted record into the log panel.
func (d *ProgressDisplay) LogCore(enab zapcore.LevelEnabler) zapcore.Core {
	return NewLogCore(d.logBox, enab)
}

// OutputWriter returns the plain-text sink: each written line becomes a
// log panel message.
func (d *ProgressDisplay) OutputWriter() io.Writer {
	return NewLogWriter(d.logBox)
}
