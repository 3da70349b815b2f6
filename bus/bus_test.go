package bus

import (
	"testing"
	"time"
)

func recvOne(t *testing.T, sub *Subscription) *Message {
	t.Helper()
	select {
	case got := <-sub.Channel():
		return got
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for message")
		return nil
	}
}

func TestBasicPubSub(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("test")

	sub := conn.Subscribe(Topic{"light", "mode"})

	conn.Publish(conn.NewMessage(Topic{"light", "mode"}, "sweep", false))

	got := recvOne(t, sub)
	if got.Payload.(string) != "sweep" {
		t.Errorf("expected payload 'sweep', got %v", got.Payload)
	}
}

func TestRetainedMessage(t *testing.T) {
	b := NewBus(2)
	conn := b.NewConnection("test")

	conn.Publish(conn.NewMessage(Topic{"light", "frame"}, uint8(0x0F), true))

	// Late subscriber still sees the retained value.
	sub := conn.Subscribe(Topic{"light", "frame"})
	got := recvOne(t, sub)
	if got.Payload.(uint8) != 0x0F {
		t.Errorf("expected retained payload 0x0F, got %v", got.Payload)
	}
}

func TestRetainedCleared(t *testing.T) {
	b := NewBus(2)
	conn := b.NewConnection("test")

	conn.Publish(conn.NewMessage(Topic{"a"}, "v", true))
	conn.Publish(conn.NewMessage(Topic{"a"}, nil, true))

	sub := conn.Subscribe(Topic{"a"})
	select {
	case got := <-sub.Channel():
		t.Fatalf("expected no retained message, got %v", got.Payload)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestNoCrossTopicDelivery(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("test")

	sub := conn.Subscribe(Topic{"light", "mode"})
	conn.Publish(conn.NewMessage(Topic{"light", "frame"}, "nope", false))

	select {
	case got := <-sub.Channel():
		t.Fatalf("unexpected delivery: %v", got.Payload)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestDropOldestWhenFull(t *testing.T) {
	b := NewBus(1)
	conn := b.NewConnection("test")

	sub := conn.Subscribe(Topic{"s"})
	conn.Publish(conn.NewMessage(Topic{"s"}, 1, false))
	conn.Publish(conn.NewMessage(Topic{"s"}, 2, false))

	got := recvOne(t, sub)
	if got.Payload.(int) != 2 {
		t.Errorf("expected newest payload 2, got %v", got.Payload)
	}
}

func TestDisconnectClosesSubscriptions(t *testing.T) {
	b := NewBus(4)
	conn := b.NewConnection("test")
	sub := conn.Subscribe(Topic{"x"})

	conn.Disconnect()

	if _, ok := <-sub.Channel(); ok {
		t.Fatal("expected closed channel after disconnect")
	}

	// A publish after disconnect must not panic or deliver.
	other := b.NewConnection("other")
	other.Publish(other.NewMessage(Topic{"x"}, "y", false))
}
