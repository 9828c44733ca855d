package worker

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestPool_PerKeyOrder(t *testing.T) {
	p := New(4)
	var mu sync.Mutex
	got := make(map[int64][]int)
	for i := 0; i < 50; i++ {
		for key := int64(0); key < 5; key++ {
			i, key := i, key
			if err := p.Submit(key, func() {
				if i%7 == 0 {
					time.Sleep(time.Millisecond)
				}
				mu.Lock()
				got[key] = append(got[key], i)
				mu.Unlock()
			}); err != nil {
				t.Fatalf("submit: %v", err)
			}
		}
	}
	p.Close()
	for key := int64(0); key < 5; key++ {
		seq := got[key]
		if len(seq) != 50 {
			t.Fatalf("key %d: want 50 jobs, got %d", key, len(seq))
		}
		for i, v := range seq {
			if v != i {
				t.Fatalf("key %d: out of order at %d: %v", key, i, seq)
			}
		}
	}
}

func TestPool_SameKeyNeverOverlaps(t *testing.T) {
	p := New(8)
	var running, overlaps int32
	for i := 0; i < 100; i++ {
		_ = p.Submit(1, func() {
			if atomic.AddInt32(&running, 1) > 1 {
				atomic.AddInt32(&overlaps, 1)
			}
			time.Sleep(100 * time.Microsecond)
			atomic.AddInt32(&running, -1)
		})
	}
	p.Close()
	if overlaps != 0 {
		t.Fatalf("same-key jobs overlapped %d times", overlaps)
	}
}

func TestPool_BoundsConcurrency(t *testing.T) {
	const size = 3
	p := New(size)
	var running, peak int32
	for i := 0; i < 30; i++ {
		job := func() {
			n := atomic.AddInt32(&running, 1)
			for {
				old := atomic.LoadInt32(&peak)
				if n <= old || atomic.CompareAndSwapInt32(&peak, old, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&running, -1)
		}
		if i%2 == 0 {
			_ = p.Submit(int64(i), job)
		} else {
			_ = p.Go(job)
		}
	}
	p.Close()
	if peak > size {
		t.Fatalf("want at most %d concurrent jobs, saw %d", size, peak)
	}
}

func TestPool_CloseDrainsAndRejects(t *testing.T) {
	p := New(1)
	var done int32
	for i := 0; i < 10; i++ {
		_ = p.Submit(7, func() {
			time.Sleep(100 * time.Microsecond)
			atomic.AddInt32(&done, 1)
		})
	}
	p.Close()
	if done != 10 {
		t.Fatalf("want 10 completed jobs, got %d", done)
	}
	if err := p.Submit(7, func() {}); err != ErrClosed {
		t.Fatalf("want ErrClosed, got %v", err)
	}
	if err := p.Go(func() {}); err != ErrClosed {
		t.Fatalf("want ErrClosed, got %v", err)
	}
}

func TestPool_SurvivesPanics(t *testing.T) {
	p := New(2)
	var ran int32
	_ = p.Submit(1, func() { panic("boom") })
	_ = p.Submit(1, func() { atomic.AddInt32(&ran, 1) })
	p.Close()
	if ran != 1 {
		t.Fatalf("job after panic did not run")
	}
}
