// Package progress renders a live, resizable terminal dashboard for a
// long-running background scan.
//
// The dashboard is built from boxes placed on the tcell cell grid: an
// optional welcome banner, one summary metric panel plus one per worker,
// and a scrolling bordered log panel. BoxLayout packs boxes into
// horizontally centered rows with a greedy, order-preserving fill and
// reflows the whole arrangement when the terminal is resized.
//
// Rendering is single-threaded and cooperative. The only asynchronous
// input is the terminal resize notification, which is reduced to an
// idempotent pending flag on every registered display; all reflow and
// redraw work happens at the next poll point (HandleUpdate or the
// EndOnInput idle loop).
//
// Error policy:
//   - Geometry that cannot fit the terminal is a *SizingError, raised
//     loudly at layout time and never clipped.
//   - Cosmetic cell writes racing a resize are clipped silently by the
//     draw primitives, and only there.
//   - Any other fault during update or resize handling restores every
//     live terminal to cooked mode before the error propagates.
package progress
