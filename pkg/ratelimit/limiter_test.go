package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"
)

// TestNewLimiter tests the Limiter constructor
func TestNewLimiter(t *testing.T) {
	t.Run("ValidRate", func(t *testing.T) {
		limiter := NewLimiter(60, 5)
		if limiter == nil {
			t.Fatal("NewLimiter() returned nil for valid input")
		}
		if limiter.perSecond != 1 {
			t.Errorf("perSecond = %v, want 1", limiter.perSecond)
		}
		if limiter.bucketSize != 5 {
			t.Errorf("bucketSize = %v, want 5", limiter.bucketSize)
		}
	})

	t.Run("ZeroRate", func(t *testing.T) {
		if NewLimiter(0, 1) != nil {
			t.Error("NewLimiter(0) should return nil (no limiting)")
		}
	})

	t.Run("NegativeRate", func(t *testing.T) {
		if NewLimiter(-10, 1) != nil {
			t.Error("NewLimiter(-10) should return nil (no limiting)")
		}
	})

	t.Run("MinimumBurst", func(t *testing.T) {
		limiter := NewLimiter(30, 0)
		if limiter.bucketSize != 1 {
			t.Errorf("bucketSize = %v, want 1", limiter.bucketSize)
		}
	})
}

func TestWait_Burst(t *testing.T) {
	limiter := NewLimiter(60, 3)

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := limiter.Wait(context.Background()); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("burst took %v, want immediate", elapsed)
	}
}

func TestWait_Throttles(t *testing.T) {
	// 600/min is one request every 100ms
	limiter := NewLimiter(600, 1)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := limiter.Wait(ctx); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
	}
	elapsed := time.Since(start)
	if elapsed < 150*time.Millisecond {
		t.Errorf("3 requests took %v, want at least ~200ms", elapsed)
	}
}

func TestWait_Cancelled(t *testing.T) {
	limiter := NewLimiter(1, 1)
	if err := limiter.Wait(context.Background()); err != nil {
		t.Fatalf("first Wait() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	if err := limiter.Wait(ctx); err != context.DeadlineExceeded {
		t.Errorf("Wait() error = %v, want deadline exceeded", err)
	}
	if time.Since(start) > time.Second {
		t.Error("Wait() ignored the context")
	}
}

func TestWait_Nil(t *testing.T) {
	var limiter *Limiter
	if err := limiter.Wait(context.Background()); err != nil {
		t.Errorf("nil limiter Wait() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := limiter.Wait(ctx); err != context.Canceled {
		t.Errorf("nil limiter Wait() on cancelled ctx = %v", err)
	}
}

func TestWait_Concurrent(t *testing.T) {
	limiter := NewLimiter(6000, 10)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- limiter.Wait(context.Background())
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("Wait() error = %v", err)
		}
	}
}
