package worker

import (
	"context"
	"errors"
	"log"
	"sync"

	"golang.org/x/sync/semaphore"
)

var ErrClosed = errors.New("worker pool closed")

// Pool runs jobs on a bounded number of goroutines. Jobs submitted under
// the same key run one at a time in submission order; jobs under different
// keys, and unkeyed jobs, run in parallel.
type Pool struct {
	sem *semaphore.Weighted

	mu     sync.Mutex
	queues map[int64][]func()
	closed bool
	wg     sync.WaitGroup
}

func New(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{
		sem:    semaphore.NewWeighted(int64(size)),
		queues: make(map[int64][]func()),
	}
}

// Submit queues job behind earlier jobs with the same key.
func (p *Pool) Submit(key int64, job func()) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	if q, busy := p.queues[key]; busy {
		p.queues[key] = append(q, job)
		return nil
	}
	p.queues[key] = []func(){job}
	p.wg.Add(1)
	go p.drain(key)
	return nil
}

// Go runs job without any ordering guarantee.
func (p *Pool) Go(job func()) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.run(job)
	}()
	return nil
}

// Close stops accepting jobs and waits for queued and running ones.
func (p *Pool) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.wg.Wait()
}

func (p *Pool) drain(key int64) {
	defer p.wg.Done()
	for {
		p.mu.Lock()
		q := p.queues[key]
		if len(q) == 0 {
			delete(p.queues, key)
			p.mu.Unlock()
			return
		}
		job := q[0]
		q[0] = nil
		p.queues[key] = q[1:]
		p.mu.Unlock()
		p.run(job)
	}
}

func (p *Pool) run(job func()) {
	// Background: accepted jobs always run, even during shutdown.
	if err := p.sem.Acquire(context.Background(), 1); err != nil {
		return
	}
	defer p.sem.Release(1)
	defer func() {
		if r := recover(); r != nil {
			log.Printf("worker: job panicked: %v", r)
		}
	}()
	job()
}
