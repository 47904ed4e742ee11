package progress

import "sync"

// Registry tracks live displays so the process-wide interrupt and resize
// paths can reach every terminal still in raw mode. It exists for
// teardown and notification fan-out, not to coordinate concurrent
// access: the terminal is exclusively owned by one display at a time.
type Registry struct {
	mu       sync.Mutex
	displays []*ProgressDisplay
}

// NewRegistry creates an empty display registry. The process entry point
// owns it and wires interrupt and resize notifications into it.
func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) add(d *ProgressDisplay) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.displays = append(r.displays, d)
}

// remove deregisters a display. Removing a display that is already gone
// is a no-op.
func (r *Registry) remove(d *ProgressDisplay) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.displays {
		if existing == d {
			r.displays = append(r.displays[:i], r.displays[i+1:]...)
			return
		}
	}
}

func (r *Registry) snapshot() []*ProgressDisplay {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*ProgressDisplay, len(r.displays))
	copy(out, r.displays)
	return out
}

// QueueResize marks a pending resize on every live display. It runs on
// the asynchronous notification timeline and is restricted to idempotent
// flag sets: no drawing, no terminal state. All reflow work happens at
// the next poll point of each display.
func (r *Registry) QueueResize() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.displays {
		d.pendingResize.Store(true)
	}
}

// ResetAll restores every live terminal to cooked mode. Interrupt and
// fatal-error paths route through here so no exit can leave a terminal
// in raw mode.
func (r *Registry) ResetAll() {
	for _, d := range r.snapshot() {
		d.End()
	}
}
