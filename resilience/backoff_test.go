package resilience

import "testing"

func TestConstantBackoff(t *testing.T) {
	b := ConstantBackoff{DelayMs: 100}
	if b.ComputeDelayMs(1) != 100 || b.ComputeDelayMs(5) != 100 {
		t.Fatal("ConstantBackoff delay should not vary with attempt")
	}
}

func TestLinearBackoffGrowsAndCaps(t *testing.T) {
	b := LinearBackoff{BaseDelayMs: 100, MaxDelayMs: 250}
	cases := map[int]int64{1: 100, 2: 200, 3: 250, 10: 250}
	for attempt, want := range cases {
		if got := b.ComputeDelayMs(attempt); got != want {
			t.Errorf("ComputeDelayMs(%d) = %d, want %d", attempt, got, want)
		}
	}
}

func TestExponentialBackoffDoublesAndCaps(t *testing.T) {
	b := ExponentialBackoff{BaseDelayMs: 100, MaxDelayMs: 1000}
	cases := map[int]int64{1: 100, 2: 200, 3: 400, 4: 800, 5: 1000, 10: 1000}
	for attempt, want := range cases {
		if got := b.ComputeDelayMs(attempt); got != want {
			t.Errorf("ComputeDelayMs(%d) = %d, want %d", attempt, got, want)
		}
	}
}

func TestExponentialBackoffJitterStaysWithinBound(t *testing.T) {
	b := ExponentialBackoff{BaseDelayMs: 100, MaxDelayMs: 1000, Jitter: true}
	for i := 0; i < 50; i++ {
		delay := b.ComputeDelayMs(4)
		if delay < 0 || delay > 800 {
			t.Fatalf("jittered ComputeDelayMs(4) = %d, want within [0, 800]", delay)
		}
	}
}
