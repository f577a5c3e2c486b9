package workpool

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
)

func TestPoolRunsAllJobs(t *testing.T) {
	pool := New(4, nil)
	var count atomic.Int64

	ctx := context.Background()
	for i := 0; i < 20; i++ {
		if err := pool.Submit(ctx, func(context.Context) {
			count.Add(1)
		}); err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
	}
	pool.Wait()

	if count.Load() != 20 {
		t.Errorf("ran %d jobs, want 20", count.Load())
	}
}

func TestPoolBoundsConcurrency(t *testing.T) {
	const maxWorkers = 3
	pool := New(maxWorkers, nil)

	var mu sync.Mutex
	var inFlight, peak int

	ctx := context.Background()
	for i := 0; i < 30; i++ {
		if err := pool.Submit(ctx, func(context.Context) {
			mu.Lock()
			inFlight++
			if inFlight > peak {
				peak = inFlight
			}
			mu.Unlock()

			mu.Lock()
			inFlight--
			mu.Unlock()
		}); err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
	}
	pool.Wait()

	if peak > maxWorkers {
		t.Errorf("peak concurrency %d exceeds limit %d", peak, maxWorkers)
	}
}

func TestSubmitHonorsCancelledContext(t *testing.T) {
	pool := New(1, nil)
	ctx, cancel := context.WithCancel(context.Background())

	block := make(chan struct{})
	if err := pool.Submit(ctx, func(context.Context) { <-block }); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	cancel()
	if err := pool.Submit(ctx, func(context.Context) {}); err == nil {
		t.Error("Submit() after cancel returned nil, want context error")
	}

	close(block)
	pool.Wait()
}

func TestSeenSet(t *testing.T) {
	s := NewSeenSet()
	if !s.Add("a") {
		t.Error("first Add(a) = false, want true")
	}
	if s.Add("a") {
		t.Error("second Add(a) = true, want false")
	}
	if s.Size() != 1 {
		t.Errorf("Size() = %d, want 1", s.Size())
	}
}
