package shell

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type closeCounter struct {
	closed atomic.Int32
	ch     chan struct{}
}

func (c *closeCounter) Close() error {
	c.closed.Add(1)
	close(c.ch)
	return nil
}

func TestCloseOnDone_ClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := &closeCounter{ch: make(chan struct{})}
	stop := closeOnDone(ctx, c)
	defer stop()

	cancel()
	select {
	case <-c.ch:
	case <-time.After(time.Second):
		t.Fatal("closer not called after cancel")
	}
	assert.Equal(t, int32(1), c.closed.Load())
}

func TestCloseOnDone_StopEndsWatcher(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := &closeCounter{ch: make(chan struct{})}
	stop := closeOnDone(ctx, c)

	stop()
	// Let the watcher observe stop before ctx ends.
	time.Sleep(20 * time.Millisecond)
	cancel()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), c.closed.Load())
}
