// Package parallel provides a small worker pool used to spread per-source
// graph traversals (such as betweenness accumulation) across goroutines.
// Analyses remain externally synchronous; the pool is an internal
// optimization over an immutable snapshot.
package parallel

import (
	"runtime"
	"sync"
)

// Pool manages a fixed set of worker goroutines consuming a task queue.
type Pool struct {
	workers int
	tasks   chan func()
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex
	closed  bool
}

// NewPool creates a pool with the given worker count. Non-positive counts
// fall back to runtime.NumCPU.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	p := &Pool{
		workers: workers,
		tasks:   make(chan func(), workers*2),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		task()
	}
}

// Submit enqueues a task. It reports false once the pool has been closed.
func (p *Pool) Submit(task func()) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return false
	}
	p.tasks <- task
	return true
}

// Close stops accepting tasks and blocks until in-flight tasks finish.
func (p *Pool) Close() {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.tasks)
		p.mu.Unlock()
	})
	p.wg.Wait()
}

// ForEach runs fn once per item across a transient pool of the given size
// and blocks until every invocation returns. fn must be safe to call from
// multiple goroutines.
func ForEach(items []string, workers int, fn func(item string)) {
	if len(items) == 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(items) {
		workers = len(items)
	}

	p := NewPool(workers)
	var wg sync.WaitGroup
	wg.Add(len(items))
	for _, item := range items {
		item := item
		p.Submit(func() {
			defer wg.Done()
			fn(item)
		})
	}
	wg.Wait()
	p.Close()
}
