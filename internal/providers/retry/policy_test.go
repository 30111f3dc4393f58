package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prefeitura-rio/app-seo-analyzer/internal/models"
)

type hintedError struct {
	after time.Duration
}

func (e *hintedError) Error() string             { return "rate limited" }
func (e *hintedError) RetryAfter() time.Duration { return e.after }

func testPolicy() Policy {
	return Policy{MaxAttempts: 5, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}
}

func TestDelay(t *testing.T) {
	p := Policy{MaxAttempts: 5, BaseDelay: 10 * time.Millisecond, MaxDelay: 50 * time.Millisecond}

	tests := []struct {
		name     string
		failures int
		base     time.Duration
		expected time.Duration
	}{
		{"first failure uses base", 1, 0, 10 * time.Millisecond},
		{"second failure doubles", 2, 0, 20 * time.Millisecond},
		{"third failure", 3, 0, 40 * time.Millisecond},
		{"capped at max", 4, 0, 50 * time.Millisecond},
		{"still capped", 10, 0, 50 * time.Millisecond},
		{"hint replaces base", 1, 30 * time.Millisecond, 30 * time.Millisecond},
		{"hint is doubled and capped", 2, 30 * time.Millisecond, 50 * time.Millisecond},
		{"hint larger than max", 1, time.Minute, 50 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Delay(tt.failures, tt.base); got != tt.expected {
				t.Errorf("Delay(%d, %v) = %v, want %v", tt.failures, tt.base, got, tt.expected)
			}
		})
	}
}

func TestDelayIsMonotonicAndBounded(t *testing.T) {
	p := DefaultPolicy()
	prev := time.Duration(0)
	for n := 1; n <= 20; n++ {
		d := p.Delay(n, 0)
		if d < prev {
			t.Fatalf("Delay(%d) = %v < Delay(%d) = %v", n, d, n-1, prev)
		}
		if d > p.MaxDelay {
			t.Fatalf("Delay(%d) = %v exceeds max %v", n, d, p.MaxDelay)
		}
		prev = d
	}
}

func TestDoSucceedsAfterFailures(t *testing.T) {
	calls := 0
	result, err := Do(context.Background(), testPolicy(), "test", func(ctx context.Context, attempt int) (string, error) {
		calls++
		if attempt < 3 {
			return "", errors.New("falha transitória")
		}
		return "ok", nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "ok" {
		t.Errorf("result = %q, want ok", result)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestDoStopsAtMaxAttempts(t *testing.T) {
	calls := 0
	lastErr := errors.New("still failing")
	_, err := Do(context.Background(), testPolicy(), "test", func(ctx context.Context, attempt int) (int, error) {
		calls++
		return 0, lastErr
	})

	if !errors.Is(err, lastErr) {
		t.Errorf("err = %v, want last error", err)
	}
	if calls != 5 {
		t.Errorf("calls = %d, want 5", calls)
	}
}

func TestDoPermanentStopsImmediately(t *testing.T) {
	quota := errors.New("quota exceeded")
	calls := 0
	_, err := Do(context.Background(), testPolicy(), "test", func(ctx context.Context, attempt int) (int, error) {
		calls++
		return 0, Permanent(quota)
	})

	if !errors.Is(err, quota) {
		t.Errorf("err = %v, want quota error", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestDoUsesRetryAfterHint(t *testing.T) {
	p := Policy{MaxAttempts: 2, BaseDelay: time.Millisecond, MaxDelay: time.Second}

	start := time.Now()
	_, _ = Do(context.Background(), p, "test", func(ctx context.Context, attempt int) (int, error) {
		return 0, &hintedError{after: 60 * time.Millisecond}
	})

	if elapsed := time.Since(start); elapsed < 60*time.Millisecond {
		t.Errorf("elapsed = %v, expected the hinted wait of at least 60ms", elapsed)
	}
}

func TestDoDeadlineBecomesTimeout(t *testing.T) {
	p := Policy{MaxAttempts: 5, BaseDelay: 50 * time.Millisecond, MaxDelay: time.Second}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := Do(ctx, p, "test", func(ctx context.Context, attempt int) (int, error) {
		return 0, errors.New("falha")
	})

	if !errors.Is(err, models.ErrTimeout) {
		t.Errorf("err = %v, want ErrTimeout", err)
	}
}
