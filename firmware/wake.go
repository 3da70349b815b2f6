package firmware

import "taillight-go/hal"

// WakeTrigger is the one-shot edge detector that lifts the power-down
// suspension. Arm enables a level-change interrupt on the button line; the
// handler immediately disarms itself so noise cannot re-trigger it, then
// releases the blocked Sleep call. No debouncing is applied on this path:
// any edge wakes the system, which is the accepted price of keeping the
// debounce timer off while powered down.
type WakeTrigger struct {
	pin   hal.IRQPin
	power hal.PowerController
}

func NewWakeTrigger(pin hal.IRQPin, power hal.PowerController) *WakeTrigger {
	return &WakeTrigger{pin: pin, power: power}
}

func (w *WakeTrigger) Arm() error {
	return w.pin.SetIRQ(hal.EdgeBoth, func() {
		_ = w.pin.ClearIRQ()
		w.power.Wake()
	})
}
