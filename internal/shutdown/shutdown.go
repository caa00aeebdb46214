package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// WithSignal returns a child context that is cancelled on Ctrl+C, SIGTERM,
// or when the parent is done. The cancel func also stops signal delivery.
func WithSignal(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-ctx.Done():
		case <-ch:
			cancel()
		}
	}()

	return ctx, func() {
		signal.Stop(ch)
		cancel()
	}
}
