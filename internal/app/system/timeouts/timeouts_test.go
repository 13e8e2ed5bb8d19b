package timeouts

import (
	"context"
	"testing"
	"time"
)

func TestConfigure_IgnoresZeroFields(t *testing.T) {
	t.Cleanup(Reset)

	Configure(Config{Short: 7 * time.Second})

	if got := Short(); got != 7*time.Second {
		t.Errorf("Short() = %v, want 7s", got)
	}
	if got := Batch(); got != DefaultBatch {
		t.Errorf("Batch() = %v, want default %v", got, DefaultBatch)
	}
}

func TestConfigureFromEnv(t *testing.T) {
	t.Cleanup(Reset)
	t.Setenv("TIMEOUT_PING", "500ms")
	t.Setenv("TIMEOUT_MEDIUM", "not-a-duration")
	t.Setenv("TIMEOUT_BATCH", "-1s")

	if n := ConfigureFromEnv(); n != 1 {
		t.Fatalf("ConfigureFromEnv() applied %d values, want 1", n)
	}
	if got := Ping(); got != 500*time.Millisecond {
		t.Errorf("Ping() = %v, want 500ms", got)
	}
	if got := Medium(); got != DefaultMedium {
		t.Errorf("Medium() = %v, want default", got)
	}
}

func TestWithTimeout_Expires(t *testing.T) {
	ctx, cancel := WithTimeout(context.Background(), time.Millisecond, nil, "test")
	defer cancel()

	<-ctx.Done()
	if ctx.Err() != context.DeadlineExceeded {
		t.Errorf("ctx.Err() = %v, want DeadlineExceeded", ctx.Err())
	}
}
