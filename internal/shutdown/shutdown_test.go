package shutdown

import (
	"context"
	"testing"
	"time"
)

func TestWithSignalParentCancel(t *testing.T) {
	parent, cancelParent := context.WithCancel(context.Background())
	ctx, cancel := WithSignal(parent)
	defer cancel()

	cancelParent()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("child context not cancelled with parent")
	}
}
