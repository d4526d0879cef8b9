package analytics

import (
	"testing"
	"time"
)

func TestRetentionCutoff(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

	cutoff := RetentionCutoff(now, 60)
	if cutoff != "2025-01-14" {
		t.Fatalf("expected 2025-01-14, got %s", cutoff)
	}

	// An event exactly at the cutoff date survives; older ones do not.
	if !("2025-01-13" < cutoff) {
		t.Fatalf("day before cutoff should sort below it")
	}
	if "2025-01-14" < cutoff {
		t.Fatalf("cutoff day itself must be retained")
	}
}
