// Package hal declares the hardware boundary the firmware runs against:
// a single button input with pin-change interrupt support, an 8-bit LED
// output bank, a compare-match timer, and a power controller.
package hal

import "time"

// Pull selects the pull resistor configuration of an input pin.
type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

type GPIOPin interface {
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
	Toggle()
	Number() int
}

// Edge selection for IRQ.
type Edge uint8

const (
	EdgeNone Edge = iota
	EdgeRising
	EdgeFalling
	EdgeBoth
)

func (e Edge) String() string {
	switch e {
	case EdgeRising:
		return "rising"
	case EdgeFalling:
		return "falling"
	case EdgeBoth:
		return "both"
	default:
		return "none"
	}
}

// IRQPin extends GPIOPin with a level-change interrupt. The handler runs
// to completion before another may begin; it must be short and must not
// block.
type IRQPin interface {
	GPIOPin
	SetIRQ(edge Edge, handler func()) error
	ClearIRQ() error
}

// OutputBank is a bank of 8 independent binary outputs, addressed as one
// byte. Implementations own the physical polarity mapping; callers treat
// on=1.
type OutputBank interface {
	Set(v uint8)
	Toggle()
	Get() uint8
}

// CompareTimer fires the given handler every period once started. Stop
// halts counting and resets the counter, so the next Start begins a fresh
// period with no carry-over phase.
type CompareTimer interface {
	Start(period time.Duration, fire func()) error
	Stop()
}

// PowerController models the deepest sleep state of the part. Sleep blocks
// the calling control path until Wake is invoked; Wake while running is a
// no-op. Asleep reports whether a Sleep call is currently blocked.
type PowerController interface {
	Sleep()
	Wake()
	Asleep() bool
}
