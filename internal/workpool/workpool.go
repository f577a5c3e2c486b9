// Package workpool provides a bounded worker pool used to score listings
// concurrently without hammering the sold-price providers.
package workpool

import (
	"context"
	"sync"

	"github.com/fd1az/card-arbitrage/internal/ratelimit"
)

// Pool runs jobs on at most maxWorkers goroutines, pacing job starts
// through an optional rate limiter.
type Pool struct {
	semaphore chan struct{}
	limiter   *ratelimit.Limiter
	wg        sync.WaitGroup
}

// New creates a pool with the given concurrency. limiter may be nil.
func New(maxWorkers int, limiter *ratelimit.Limiter) *Pool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &Pool{
		semaphore: make(chan struct{}, maxWorkers),
		limiter:   limiter,
	}
}

// Submit enqueues a job. It blocks while all workers are busy and returns
// the context error if ctx is cancelled before the job starts.
func (p *Pool) Submit(ctx context.Context, job func(ctx context.Context)) error {
	select {
	case p.semaphore <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			<-p.semaphore
			return err
		}
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer func() { <-p.semaphore }()
		job(ctx)
	}()
	return nil
}

// Wait blocks until all submitted jobs have completed.
func (p *Pool) Wait() {
	p.wg.Wait()
}

// SeenSet is a thread-safe set for deduplicating listing URLs across pages.
type SeenSet struct {
	mu   sync.RWMutex
	seen map[string]struct{}
}

// NewSeenSet creates an empty SeenSet.
func NewSeenSet() *SeenSet {
	return &SeenSet{seen: make(map[string]struct{})}
}

// Add returns true if the key was newly added, false if already present.
func (s *SeenSet) Add(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.seen[key]; exists {
		return false
	}
	s.seen[key] = struct{}{}
	return true
}

// Size returns the number of unique keys tracked.
func (s *SeenSet) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.seen)
}
