package firmware

import "context"

// Run is the cooperative main loop: run the power-up entry action, then
// forever consume the two pending flags. Within one iteration tick
// processing strictly precedes press processing, so a press arriving in
// the same iteration as a stale tick is never shadowed. The loop blocks
// only in the sleep entry action and while both flags are clear.
//
// Run returns when ctx is done; this is a host-harness concern, the
// embedded loop never terminates.
func (m *Machine) Run(ctx context.Context) error {
	m.Start()
	for {
		if m.flags.TakeTick() {
			m.HandleTick()
		}
		if m.flags.TakePress(ButtonMask) != 0 {
			m.HandlePress()
		}
		if err := m.flags.Wait(ctx); err != nil {
			return err
		}
	}
}
