//go:build !unix

package progress

// NotifyResize is a no-op without SIGWINCH; resize events still reach
// displays through the terminal event stream.
func (r *Registry) NotifyResize() (stop func()) {
	return func() {}
}
