package timex

import (
	"testing"
	"time"
)

// Reference values for a 1 MHz core clock with a /64 prescaler:
// 15.625 counts per millisecond.
func TestCompareCountReferenceClock(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want uint16
	}{
		{30 * time.Millisecond, 469},
		{200 * time.Millisecond, 3125},
		{110 * time.Millisecond, 1719},
	}
	for _, c := range cases {
		if got := CompareCount(c.d, 1_000_000, 64); got != c.want {
			t.Errorf("CompareCount(%v) = %d, want %d", c.d, got, c.want)
		}
	}
}

func TestCompareCountSaturates(t *testing.T) {
	if got := CompareCount(time.Hour, 1_000_000, 1); got != 0xFFFF {
		t.Errorf("expected saturation at 0xFFFF, got %d", got)
	}
}

func TestCompareCountZeroClock(t *testing.T) {
	// Coerced to a 1 Hz clock; a 1ms delay rounds to zero counts.
	if got := CompareCount(time.Millisecond, 0, 0); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}
