// Package taillight wires the simulated tail light hardware, the firmware
// service and the renderers into a runnable daemon.
package taillight

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"taillight-go/bus"
	"taillight-go/hal/sim"
	"taillight-go/render/serialout"
	"taillight-go/render/term"
	"taillight-go/render/window"
	"taillight-go/services/light"
	"taillight-go/services/monitor"
)

// buttonPin matches the pin the firmware reads the button from.
const buttonPin = 0

// pressHold is how long a simulated press keeps the line low. It has to
// outlast the debounce window.
const pressHold = 80 * time.Millisecond

// Daemon is the main taillight daemon.
type Daemon struct {
	cfg    *Config
	logger *slog.Logger

	bus    *bus.Bus
	button *sim.Pin
	bank   *sim.Bank
	svc    *light.Service
	mon    *monitor.Service
}

// NewDaemon creates a new taillight daemon.
func NewDaemon(cfg *Config, logger *slog.Logger) (*Daemon, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	if logger == nil {
		logger = slog.Default()
	}

	b := bus.NewBus(16)
	button := sim.NewPin(buttonPin)
	bank := sim.NewBank()

	svc := light.New(b.NewConnection("light"), light.Params{
		HW: light.HW{
			Button: button,
			Bank:   bank,
			Timer:  sim.NewTimer(),
			Power:  sim.NewPower(),
		},
		Logger: logger.With("service", "light"),
		Settle: time.Duration(cfg.Settle),
	})
	bank.SetListener(svc.FrameWritten)

	mon := monitor.New(b.NewConnection("monitor"), svc,
		time.Duration(cfg.StatsInterval), logger.With("service", "monitor"))

	return &Daemon{
		cfg:    cfg,
		logger: logger,
		bus:    b,
		button: button,
		bank:   bank,
		svc:    svc,
		mon:    mon,
	}, nil
}

// PressButton simulates a short press of the mode button. The line is
// active low.
func (d *Daemon) PressButton() {
	d.button.SetLevel(false)
	time.AfterFunc(pressHold, func() { d.button.SetLevel(true) })
}

// Run starts the daemon. It blocks until the given context is canceled.
func (d *Daemon) Run(ctx context.Context) error {
	errg, ctx := errgroup.WithContext(ctx)

	errg.Go(func() error { return d.svc.Run(ctx) })
	errg.Go(func() error { return d.mon.Run(ctx) })

	if d.cfg.Renderer == RendererTerm {
		r := term.New(d.bus.NewConnection("term"), os.Stdout)
		errg.Go(func() error { return r.Run(ctx) })
	}

	if d.cfg.Serial != nil {
		sink := serialout.New(d.bus.NewConnection("serial"), serialout.Config{
			Device: d.cfg.Serial.Device,
			Baud:   d.cfg.Serial.Baud,
		}, d.logger.With("service", "serial"))
		errg.Go(func() error { return sink.Run(ctx) })
	}

	return errg.Wait()
}

// RunWindow runs the daemon with the desktop renderer. Ebiten needs the
// calling goroutine, so this must be called from main.
func (d *Daemon) RunWindow(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	werr := window.Run(ctx, d.bank, d.button)
	cancel()
	err := <-done

	if werr != nil && werr != context.Canceled {
		return werr
	}
	return err
}
