package firmware

import (
	"sync/atomic"

	"taillight-go/hal"
)

// Debouncer filters the raw button input into stable press events using
// two vertical saturating counters plus a last-stable-state byte. Sample
// must be invoked once per SamplePeriod from a periodic source; the filter
// itself runs no goroutines.
//
// The button is wired active-low behind a pull-up, so a low raw level
// reads as pressed. Only released-to-pressed transitions of the debounced
// state are reported, OR'd into the shared PressPending mask.
type Debouncer struct {
	pin   hal.GPIOPin
	mask  uint8
	flags *Flags

	ct0, ct1 uint8
	state    uint8 // last debounced level per bit, 1 = pressed

	presses uint32
}

func NewDebouncer(pin hal.GPIOPin, mask uint8, flags *Flags) *Debouncer {
	return &Debouncer{
		pin:   pin,
		mask:  mask,
		flags: flags,
		// Counters start saturated, the steady-state value, so the first
		// samples after reset cannot fabricate an edge.
		ct0: 0xFF,
		ct1: 0xFF,
	}
}

// Sample advances the filter by one debounce period.
func (d *Debouncer) Sample() {
	var raw uint8
	if !d.pin.Get() {
		raw = d.mask // active-low: pressed reads as electrical low
	}

	i := d.state ^ raw          // bits that differ from the stable state
	d.ct0 = ^(d.ct0 & i)        // reset or count ct0
	d.ct1 = d.ct0 ^ (d.ct1 & i) // reset or count ct1
	i &= d.ct0 & d.ct1          // counted to saturation?
	d.state ^= i                // then toggle the debounced state

	if press := d.state & i; press != 0 { // 0->1: press detect
		d.flags.SetPress(press)
		atomic.AddUint32(&d.presses, 1)
	}
}

// Presses reports how many debounced presses have been detected since
// reset. Safe to read from other goroutines.
func (d *Debouncer) Presses() uint32 {
	return atomic.LoadUint32(&d.presses)
}
