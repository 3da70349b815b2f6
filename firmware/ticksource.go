package firmware

import (
	"time"

	"taillight-go/hal"
)

// TickSource raises the shared tick-pending flag at a mode-specific period.
// Arm configures and starts the compare timer; Disarm stops it and resets
// its counter so the next Arm begins a fresh period. Firing only sets the
// flag; it is cleared exclusively by the consumer.
type TickSource struct {
	timer hal.CompareTimer
	flags *Flags
}

func NewTickSource(timer hal.CompareTimer, flags *Flags) *TickSource {
	return &TickSource{timer: timer, flags: flags}
}

func (t *TickSource) Arm(period time.Duration) error {
	return t.timer.Start(period, t.flags.SetTick)
}

func (t *TickSource) Disarm() {
	t.timer.Stop()
}
