package taillight

import (
	"context"
	"testing"
	"time"

	"taillight-go/bus"
	"taillight-go/services/light"
	"taillight-go/types"
)

func TestDaemonPressCyclesMode(t *testing.T) {
	cfg := &Config{
		Renderer:      RendererNone,
		StatsInterval: TOMLDuration(time.Hour),
		Settle:        TOMLDuration(time.Millisecond),
	}
	d, err := NewDaemon(cfg, nil)
	if err != nil {
		t.Fatalf("NewDaemon: %v", err)
	}

	modes := d.bus.NewConnection("test").Subscribe(light.TopicMode)
	defer modes.Unsubscribe()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	expectMode(t, modes.Channel(), "sweep")
	d.PressButton()
	expectMode(t, modes.Channel(), "xor")

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("daemon did not stop")
	}
}

func TestNewDaemonRejectsInvalidConfig(t *testing.T) {
	if _, err := NewDaemon(&Config{Renderer: "hologram"}, nil); err == nil {
		t.Fatal("NewDaemon accepted an invalid config")
	}
}

func expectMode(t *testing.T, ch <-chan *bus.Message, want string) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case msg := <-ch:
			mv, ok := msg.Payload.(types.ModeValue)
			if !ok {
				continue
			}
			if mv.Mode == want {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for mode %q", want)
		}
	}
}
