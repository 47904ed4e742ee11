//go:build unix

package progress

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// NotifyResize subscribes the registry to SIGWINCH. The handler only
// ever queues the pending flag; it never draws. The returned stop
// function releases the subscription.
func (r *Registry) NotifyResize() (stop func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, unix.SIGWINCH)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-sigCh:
				r.QueueResize()
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(sigCh)
		close(done)
	}
}
