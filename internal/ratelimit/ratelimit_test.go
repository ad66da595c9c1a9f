package ratelimit

import (
	"sync"
	"testing"
	"time"
)

// newTestLimiter returns a limiter with a controllable clock.
func newTestLimiter(limit int, window time.Duration) (*Limiter, *time.Time) {
	l := New(limit, window)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestLimitedThreshold(t *testing.T) {
	l, _ := newTestLimiter(100, time.Minute)

	for i := 1; i <= 100; i++ {
		if l.Limited("1.2.3.4") {
			t.Fatalf("request %d limited, want admitted", i)
		}
	}
	if !l.Limited("1.2.3.4") {
		t.Error("request 101 admitted, want limited")
	}
}

func TestWindowReset(t *testing.T) {
	l, now := newTestLimiter(2, time.Minute)

	l.Limited("k")
	l.Limited("k")
	if !l.Limited("k") {
		t.Fatal("third request admitted, want limited")
	}

	*now = now.Add(61 * time.Second)
	if l.Limited("k") {
		t.Error("request after window elapsed limited, want admitted")
	}
}

func TestKeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)

	l.Limited("a")
	if l.Limited("b") {
		t.Error("key b limited by key a's traffic")
	}
	if !l.Limited("a") {
		t.Error("key a second request admitted, want limited")
	}
}

func TestDefaults(t *testing.T) {
	l := New(0, 0)
	if l.limit != DefaultLimit {
		t.Errorf("limit = %d, want %d", l.limit, DefaultLimit)
	}
	if l.window != DefaultWindow {
		t.Errorf("window = %v, want %v", l.window, DefaultWindow)
	}
}

func TestSweep(t *testing.T) {
	l, now := newTestLimiter(10, time.Minute)

	l.Limited("a")
	l.Limited("b")
	*now = now.Add(30 * time.Second)
	l.Limited("c")

	*now = now.Add(45 * time.Second) // a and b expired, c still live
	if removed := l.Sweep(); removed != 2 {
		t.Errorf("Sweep removed %d, want 2", removed)
	}
	if l.Len() != 1 {
		t.Errorf("Len = %d, want 1", l.Len())
	}
}

func TestConcurrentAccess(t *testing.T) {
	l := New(1000, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				l.Limited("shared")
				l.Limited("other")
			}
		}()
	}
	wg.Wait()

	// 1000 admitted then limited; the table itself must stay intact.
	if !l.Limited("shared") {
		t.Error("shared key should be over the limit after 1000 requests")
	}
	if l.Len() != 2 {
		t.Errorf("Len = %d, want 2", l.Len())
	}
}
