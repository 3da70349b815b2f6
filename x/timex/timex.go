package timex

import "time"

// NowMs returns Unix milliseconds as int64.
func NowMs() int64 { return time.Now().UnixMilli() }

// CompareCount converts a delay into a timer compare value for a counter
// clocked at clockHz divided by prescale, rounded to the nearest count.
// Zero clock or prescale is coerced to 1 to avoid division by zero.
func CompareCount(d time.Duration, clockHz, prescale uint32) uint16 {
	if clockHz == 0 {
		clockHz = 1
	}
	if prescale == 0 {
		prescale = 1
	}
	n := (uint64(d.Nanoseconds())*uint64(clockHz)/uint64(prescale) + 500_000_000) / 1_000_000_000
	if n > 0xFFFF {
		n = 0xFFFF
	}
	return uint16(n)
}
