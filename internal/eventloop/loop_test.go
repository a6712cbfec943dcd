package eventloop

import (
	"context"
	"testing"
	"time"
)

func TestLoopCallbackCanPostManyToItself(t *testing.T) {
	loop := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = loop.Run(ctx) }()

	const n = 1000
	finished := make(chan int, 1)
	count := 0
	err := loop.Post(func() {
		for i := 0; i < n; i++ {
			loop.Dispatch(func() {
				count++
				if count == n {
					finished <- count
				}
			})
		}
	})
	if err != nil {
		t.Fatalf("Post: %v", err)
	}

	select {
	case got := <-finished:
		if got != n {
			t.Errorf("ran %d callbacks, want %d", got, n)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("nested posts did not run; loop is stuck")
	}
}

func TestLoopCloseRunsQueuedCallbacks(t *testing.T) {
	loop := NewLoop()
	ran := 0
	for i := 0; i < 3; i++ {
		if err := loop.Post(func() { ran++ }); err != nil {
			t.Fatalf("Post: %v", err)
		}
	}
	loop.Close()

	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}
	if ran != 3 {
		t.Errorf("ran %d callbacks, want 3", ran)
	}
	if err := loop.Post(func() {}); err != ErrClosed {
		t.Errorf("Post after Close = %v, want ErrClosed", err)
	}
}
