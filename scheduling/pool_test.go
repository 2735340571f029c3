package scheduling

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestPoolSubmitRunsFn(t *testing.T) {
	p := New(Config{Workers: 2})
	var ran int32
	var wg sync.WaitGroup
	wg.Add(1)
	err := p.Submit(context.Background(), func() {
		defer wg.Done()
		atomic.AddInt32(&ran, 1)
	})
	if err != nil {
		t.Fatalf("Submit() = %v, want nil", err)
	}
	wg.Wait()
	if atomic.LoadInt32(&ran) != 1 {
		t.Fatalf("ran = %d, want 1", ran)
	}
}

func TestPoolBoundsConcurrency(t *testing.T) {
	p := New(Config{Workers: 2})
	var running int32
	var maxRunning int32
	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		wg.Add(1)
		p.Submit(context.Background(), func() {
			defer wg.Done()
			n := atomic.AddInt32(&running, 1)
			for {
				cur := atomic.LoadInt32(&maxRunning)
				if n <= cur || atomic.CompareAndSwapInt32(&maxRunning, cur, n) {
					break
				}
			}
			time.Sleep(20 * time.Millisecond)
			atomic.AddInt32(&running, -1)
		})
	}
	wg.Wait()
	if atomic.LoadInt32(&maxRunning) > 2 {
		t.Fatalf("max concurrent = %d, want at most 2 (Workers=2)", maxRunning)
	}
}

func TestPoolStopRejectsNewSubmissions(t *testing.T) {
	p := New(Config{Workers: 1})
	p.Stop()
	if !p.IsStopped() {
		t.Fatal("IsStopped() = false after Stop()")
	}
	if err := p.Submit(context.Background(), func() {}); err != ErrPoolStopped {
		t.Fatalf("Submit() after Stop() = %v, want ErrPoolStopped", err)
	}
}

func TestPoolSubmitRespectsContextCancellation(t *testing.T) {
	p := New(Config{Workers: 1})
	var wg sync.WaitGroup
	wg.Add(1)
	block := make(chan struct{})
	p.Submit(context.Background(), func() {
		defer wg.Done()
		<-block
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := p.Submit(ctx, func() {})
	if err == nil {
		t.Fatal("Submit() with an already-cancelled ctx and a full pool = nil, want an error")
	}
	close(block)
	wg.Wait()
}
