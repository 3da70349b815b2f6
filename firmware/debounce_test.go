package firmware

import (
	"testing"

	"taillight-go/hal"
	"taillight-go/hal/sim"
)

// samples advances the filter n periods.
func samples(d *Debouncer, n int) {
	for i := 0; i < n; i++ {
		d.Sample()
	}
}

func newButton(t *testing.T) *sim.Pin {
	t.Helper()
	pin := sim.NewPin(0)
	if err := pin.ConfigureInput(hal.PullUp); err != nil {
		t.Fatalf("ConfigureInput: %v", err)
	}
	return pin
}

func TestDebounceStablePressDetectedOnce(t *testing.T) {
	pin := newButton(t)
	f := NewFlags()
	d := NewDebouncer(pin, ButtonMask, f)

	pin.SetLevel(false) // press (active low)
	samples(d, 8)

	if got := f.TakePress(ButtonMask); got != ButtonMask {
		t.Fatalf("expected press bit, got %#x", got)
	}
	// Holding the button must not produce further events.
	samples(d, 8)
	if got := f.TakePress(ButtonMask); got != 0 {
		t.Fatalf("held button re-reported: %#x", got)
	}
	if d.Presses() != 1 {
		t.Errorf("press count = %d, want 1", d.Presses())
	}
}

func TestDebounceSingleSampleGlitchFiltered(t *testing.T) {
	pin := newButton(t)
	f := NewFlags()
	d := NewDebouncer(pin, ButtonMask, f)

	pin.SetLevel(false)
	d.Sample() // one noisy sample
	pin.SetLevel(true)
	samples(d, 8)

	if got := f.TakePress(ButtonMask); got != 0 {
		t.Fatalf("glitch produced a press: %#x", got)
	}
}

func TestDebounceReleaseThenPressAgain(t *testing.T) {
	pin := newButton(t)
	f := NewFlags()
	d := NewDebouncer(pin, ButtonMask, f)

	pin.SetLevel(false)
	samples(d, 8)
	pin.SetLevel(true)
	samples(d, 8) // release is debounced too, but emits no event
	if got := f.TakePress(ButtonMask); got != ButtonMask {
		t.Fatalf("first press missing: %#x", got)
	}

	pin.SetLevel(false)
	samples(d, 8)
	if got := f.TakePress(ButtonMask); got != ButtonMask {
		t.Fatalf("second press missing: %#x", got)
	}
	if d.Presses() != 2 {
		t.Errorf("press count = %d, want 2", d.Presses())
	}
}

func TestDebouncePressBurstCoalesces(t *testing.T) {
	pin := newButton(t)
	f := NewFlags()
	d := NewDebouncer(pin, ButtonMask, f)

	// Two full press/release cycles without the consumer running: the
	// pending mask is binary, so the burst reads as one press.
	for i := 0; i < 2; i++ {
		pin.SetLevel(false)
		samples(d, 8)
		pin.SetLevel(true)
		samples(d, 8)
	}

	if got := f.TakePress(ButtonMask); got != ButtonMask {
		t.Fatalf("expected one pending press bit, got %#x", got)
	}
	if got := f.TakePress(ButtonMask); got != 0 {
		t.Fatalf("pending press consumed twice: %#x", got)
	}
	if d.Presses() != 2 {
		t.Errorf("filter observed %d presses, want 2", d.Presses())
	}
}
