// Package serialout forwards LED frames to an external strip controller
// over a serial port using the frameserial protocol.
package serialout

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"go.bug.st/serial"

	"taillight-go/bus"
	"taillight-go/frameserial"
	"taillight-go/services/light"
	"taillight-go/types"
)

const numLEDs = 8

type Config struct {
	Device string
	Baud   int
}

type Sink struct {
	conn *bus.Connection
	cfg  Config
	log  *slog.Logger
}

func New(conn *bus.Connection, cfg Config, log *slog.Logger) *Sink {
	if log == nil {
		log = slog.Default()
	}
	return &Sink{conn: conn, cfg: cfg, log: log}
}

// Run opens the port, announces the strip, then streams frames until ctx
// is done. The port write unblocks on shutdown because the port is closed
// from a watcher goroutine.
func (s *Sink) Run(ctx context.Context) error {
	port, err := serial.Open(s.cfg.Device, &serial.Mode{BaudRate: s.cfg.Baud})
	if err != nil {
		return errors.Wrapf(err, "failed to open serial port %s", s.cfg.Device)
	}
	defer port.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			port.Close()
		case <-stop:
		}
	}()

	if err := frameserial.WritePacket(port, frameserial.InitPacket{NumLEDs: numLEDs}); err != nil {
		return errors.Wrap(err, "failed to write init packet")
	}
	if err := frameserial.WritePacket(port, frameserial.ClearPacket{}); err != nil {
		return errors.Wrap(err, "failed to clear strip")
	}

	frames := s.conn.Subscribe(light.TopicFrame)
	defer frames.Unsubscribe()

	s.log.Debug("serial sink running", "device", s.cfg.Device, "baud", s.cfg.Baud)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-frames.Channel():
			fv, ok := msg.Payload.(types.FrameValue)
			if !ok {
				continue
			}
			if err := frameserial.WritePacket(port, frameserial.FramePacket{Bits: fv.Bits}); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return errors.Wrap(err, "failed to write frame packet")
			}
		}
	}
}
