// Package firmware implements the tail light control logic: a debounced
// button cycles through three animation modes and a power-down sleep mode,
// with each animation advanced by a mode-specific periodic tick. The
// package is pure logic over the hal interfaces; it owns no goroutines.
package firmware

import "time"

// Mode is the operating state of the light.
type Mode uint8

const (
	ModeSweep Mode = iota
	ModeXor
	ModeFlash
	ModeSleep
)

// Next returns the successor in the cyclic mode order.
func (m Mode) Next() Mode {
	if m >= ModeSleep {
		return ModeSweep
	}
	return m + 1
}

func (m Mode) String() string {
	switch m {
	case ModeSweep:
		return "sweep"
	case ModeXor:
		return "xor"
	case ModeFlash:
		return "flash"
	case ModeSleep:
		return "sleep"
	default:
		return "unknown"
	}
}

// ButtonMask is the PressPending bit of the single button.
const ButtonMask uint8 = 1 << 0

// Tick periods per mode. Sleep arms no tick source. On the original
// hardware these map to compare values via timex.CompareCount with a
// 1 MHz clock and a /64 prescaler (469, 3125 and 1719 counts).
const (
	SweepPeriod = 30 * time.Millisecond
	XorPeriod   = 200 * time.Millisecond
	FlashPeriod = 110 * time.Millisecond
)

// SamplePeriod is the debounce sampling cadence.
const SamplePeriod = 10 * time.Millisecond

// DefaultSettle is the unconditional delay before arming the wake trigger
// and entering power-down, allowing in-flight debounce state and bus
// transients to settle. Empirically required by the target's power-down
// entry; not tunable logic.
const DefaultSettle = 500 * time.Millisecond
