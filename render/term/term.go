// Package term renders the LED strip state to a terminal, one rewritten
// line fed from the retained frame and mode topics.
package term

import (
	"context"
	"fmt"
	"io"

	"taillight-go/bus"
	"taillight-go/services/light"
	"taillight-go/types"
)

type Renderer struct {
	conn *bus.Connection
	w    io.Writer
}

func New(conn *bus.Connection, w io.Writer) *Renderer {
	return &Renderer{conn: conn, w: w}
}

// Run redraws on every frame or mode update until ctx is done.
func (r *Renderer) Run(ctx context.Context) error {
	frames := r.conn.Subscribe(light.TopicFrame)
	modes := r.conn.Subscribe(light.TopicMode)
	defer frames.Unsubscribe()
	defer modes.Unsubscribe()

	var bits uint8
	var mode string
	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(r.w)
			return ctx.Err()
		case msg := <-frames.Channel():
			if fv, ok := msg.Payload.(types.FrameValue); ok {
				bits = fv.Bits
			}
		case msg := <-modes.Channel():
			if mv, ok := msg.Payload.(types.ModeValue); ok {
				mode = mv.Mode
			}
		}
		r.draw(bits, mode)
	}
}

func (r *Renderer) draw(bits uint8, mode string) {
	// Bit 0 is the leftmost LED.
	line := make([]byte, 0, 32)
	for i := 0; i < 8; i++ {
		if bits&(1<<uint(i)) != 0 {
			line = append(line, []byte("● ")...)
		} else {
			line = append(line, []byte("○ ")...)
		}
	}
	fmt.Fprintf(r.w, "\r[ %s] %-6s", line, mode)
}
