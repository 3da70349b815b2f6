package firmware

import (
	"time"

	"taillight-go/hal"
)

// Animation is the sweep mode's state: an 8-bit mask with exactly one bit
// set and a travel direction. Xor and Flash carry no animation state.
type Animation struct {
	Tracker   uint8
	Ascending bool
}

// EventKind classifies machine notifications.
type EventKind uint8

const (
	EventModeChanged EventKind = iota
	EventPress
	EventPowerDown
	EventPowerUp
)

// Event is a machine notification for telemetry. Emission must not block;
// a dropped event only loses telemetry, never control behavior.
type Event struct {
	Kind EventKind
	Mode Mode
}

// Emitter receives machine events. Implementations must be non-blocking
// and may report a drop by returning false.
type Emitter interface {
	Emit(ev Event) bool
}

// Params assembles a Machine from its collaborators.
type Params struct {
	Bank    hal.OutputBank
	Ticks   *TickSource
	Wake    *WakeTrigger
	Power   hal.PowerController
	Flags   *Flags
	Emitter Emitter       // optional
	Settle  time.Duration // 0 means DefaultSettle
}

// Machine is the mode state machine. All methods except construction are
// called from the single main-loop goroutine; the machine shares nothing
// with the asynchronous sources except Flags.
type Machine struct {
	bank    hal.OutputBank
	ticks   *TickSource
	wake    *WakeTrigger
	power   hal.PowerController
	flags   *Flags
	emitter Emitter
	settle  time.Duration

	mode Mode
	anim Animation
}

func New(p Params) *Machine {
	settle := p.Settle
	if settle == 0 {
		settle = DefaultSettle
	}
	return &Machine{
		bank:    p.Bank,
		ticks:   p.Ticks,
		wake:    p.Wake,
		power:   p.Power,
		flags:   p.Flags,
		emitter: p.Emitter,
		settle:  settle,
	}
}

// Mode returns the current mode. Main-loop goroutine only.
func (m *Machine) Mode() Mode { return m.mode }

// Animation returns the sweep state. Main-loop goroutine only.
func (m *Machine) Animation() Animation { return m.anim }

// Start performs the power-up transition into sweep mode.
func (m *Machine) Start() {
	m.transition(ModeSweep)
}

// HandleTick applies the current mode's tick action. In sleep mode a tick
// can only mean the wake trigger has fired: sleep entry sets the tick flag
// right after the power-down suspension lifts, so the wake re-entry rides
// the ordinary tick path.
func (m *Machine) HandleTick() {
	switch m.mode {
	case ModeSweep:
		if m.anim.Ascending {
			m.anim.Tracker <<= 1
		} else {
			m.anim.Tracker >>= 1
		}
		if m.anim.Tracker == 0x01 || m.anim.Tracker == 0x80 {
			m.anim.Ascending = !m.anim.Ascending
		}
		m.bank.Set(m.anim.Tracker)
	case ModeXor, ModeFlash:
		m.bank.Toggle()
	case ModeSleep:
		// Just woke up: reset the state machine.
		m.transition(ModeSweep)
	}
}

// HandlePress advances the mode cyclically on a confirmed button press:
// stop the tick source, drop any stale tick, then run the next mode's
// entry action.
func (m *Machine) HandlePress() {
	m.ticks.Disarm()
	m.flags.ClearTick()
	m.emit(Event{Kind: EventPress, Mode: m.mode})
	m.transition(m.mode.Next())
}

func (m *Machine) transition(to Mode) {
	m.mode = to
	m.emit(Event{Kind: EventModeChanged, Mode: to})
	m.enter(to)
}

// enter runs the entry action of the given mode. The sleep case blocks
// until the wake trigger fires.
func (m *Machine) enter(mode Mode) {
	switch mode {
	case ModeSweep:
		m.anim = Animation{Tracker: 0x01, Ascending: true}
		_ = m.ticks.Arm(SweepPeriod)
	case ModeXor:
		m.bank.Set(0x0F)
		_ = m.ticks.Arm(XorPeriod)
	case ModeFlash:
		m.bank.Set(0xFF)
		_ = m.ticks.Arm(FlashPeriod)
	case ModeSleep:
		m.bank.Set(0x00)
		m.emit(Event{Kind: EventPowerDown, Mode: mode})

		time.Sleep(m.settle)
		_ = m.wake.Arm()
		m.power.Sleep()

		m.emit(Event{Kind: EventPowerUp, Mode: mode})
		// Force one extra main-loop pass; tick processing performs the
		// sleep-to-sweep transition.
		m.flags.SetTick()
	}
}

func (m *Machine) emit(ev Event) {
	if m.emitter != nil {
		_ = m.emitter.Emit(ev)
	}
}
