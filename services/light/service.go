// Package light runs the tail light firmware on a hal bundle and bridges
// its events onto the telemetry bus.
package light

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"taillight-go/bus"
	"taillight-go/firmware"
	"taillight-go/hal"
	"taillight-go/types"
	"taillight-go/x/timex"
)

const eventQueueLen = 16

// HW bundles the hardware the firmware drives.
type HW struct {
	Button hal.IRQPin
	Bank   hal.OutputBank
	Timer  hal.CompareTimer
	Power  hal.PowerController
}

type Service struct {
	conn *bus.Connection
	hw   HW
	log  *slog.Logger

	flags   *firmware.Flags
	deb     *firmware.Debouncer
	machine *firmware.Machine

	// Single-threaded publication of firmware events.
	evCh    chan firmware.Event
	frameCh chan uint8

	startMs int64
}

// Params configures the service.
type Params struct {
	HW     HW
	Logger *slog.Logger
	Settle time.Duration // 0 means the firmware default
}

func New(conn *bus.Connection, p Params) *Service {
	log := p.Logger
	if log == nil {
		log = slog.Default()
	}
	s := &Service{
		conn:    conn,
		hw:      p.HW,
		log:     log,
		flags:   firmware.NewFlags(),
		evCh:    make(chan firmware.Event, eventQueueLen),
		frameCh: make(chan uint8, 1),
	}
	s.deb = firmware.NewDebouncer(p.HW.Button, firmware.ButtonMask, s.flags)
	s.machine = firmware.New(firmware.Params{
		Bank:    p.HW.Bank,
		Ticks:   firmware.NewTickSource(p.HW.Timer, s.flags),
		Wake:    firmware.NewWakeTrigger(p.HW.Button, p.HW.Power),
		Power:   p.HW.Power,
		Flags:   s.flags,
		Emitter: s,
		Settle:  p.Settle,
	})
	return s
}

// Emit implements firmware.Emitter: a non-blocking hand-off to the
// publisher goroutine. Dropped events only lose telemetry.
func (s *Service) Emit(ev firmware.Event) bool {
	select {
	case s.evCh <- ev:
		return true
	default:
		return false
	}
}

// FrameWritten feeds an LED bank write into the frame topic. The harness
// hooks it to its bank implementation; only the latest frame is kept when
// the publisher lags.
func (s *Service) FrameWritten(bits uint8) {
	for {
		select {
		case s.frameCh <- bits:
			return
		default:
			select {
			case <-s.frameCh:
			default:
			}
		}
	}
}

// Stats snapshots the firmware counters for the monitor service.
func (s *Service) Stats() types.Stats {
	now := timex.NowMs()
	return types.Stats{
		UptimeMs:        now - s.startMs,
		TicksCoalesced:  s.flags.TicksCoalesced(),
		PressesObserved: s.deb.Presses(),
		TSms:            now,
	}
}

// Run configures the hardware and drives the firmware until ctx is done.
func (s *Service) Run(ctx context.Context) error {
	s.startMs = timex.NowMs()

	if err := s.hw.Button.ConfigureInput(hal.PullUp); err != nil {
		return err
	}
	// Power-up state of the part: all outputs driven on.
	s.hw.Bank.Set(0xFF)

	s.conn.Publish(s.conn.NewMessage(TopicPower,
		types.PowerValue{State: types.PowerRunning, TSms: timex.NowMs()}, true))

	s.log.Debug("light service starting")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.machine.Run(ctx) })
	g.Go(func() error { return s.sampleLoop(ctx) })
	g.Go(func() error { return s.publishLoop(ctx) })
	g.Go(func() error {
		// Shutdown while powered down would leave the machine parked in
		// its sleep entry; issue a spurious wake, which the firmware
		// treats like any other.
		<-ctx.Done()
		s.hw.Power.Wake()
		return nil
	})
	err := g.Wait()
	s.log.Debug("light service stopped")
	return err
}

// sampleLoop is the debounce sampling cadence. The real part's debounce
// timer is stopped in power-down, so sampling is suspended while asleep.
func (s *Service) sampleLoop(ctx context.Context) error {
	tick := time.NewTicker(firmware.SamplePeriod)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
			if !s.hw.Power.Asleep() {
				s.deb.Sample()
			}
		}
	}
}

func (s *Service) publishLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-s.evCh:
			s.publishEvent(ev)
		case bits := <-s.frameCh:
			s.conn.Publish(s.conn.NewMessage(TopicFrame,
				types.FrameValue{Bits: bits, TSms: timex.NowMs()}, true))
		}
	}
}

func (s *Service) publishEvent(ev firmware.Event) {
	now := timex.NowMs()
	switch ev.Kind {
	case firmware.EventModeChanged:
		s.log.Debug("mode change", "mode", ev.Mode.String())
		s.conn.Publish(s.conn.NewMessage(TopicMode,
			types.ModeValue{Mode: ev.Mode.String(), TSms: now}, true))
	case firmware.EventPress:
		s.conn.Publish(s.conn.NewMessage(TopicPress,
			types.PressEvent{TSms: now}, false))
	case firmware.EventPowerDown:
		s.log.Debug("powering down")
		s.conn.Publish(s.conn.NewMessage(TopicPower,
			types.PowerValue{State: types.PowerPoweredDown, TSms: now}, true))
	case firmware.EventPowerUp:
		s.log.Debug("woke from power-down")
		s.conn.Publish(s.conn.NewMessage(TopicPower,
			types.PowerValue{State: types.PowerRunning, TSms: now}, true))
	}
}
