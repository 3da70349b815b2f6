package sim

import "sync"

// Bank is a simulated 8-bit LED output latch. A single listener may be
// attached to observe every write; the simulator daemon uses it to feed
// the frame topic and the renderers.
type Bank struct {
	mu       sync.Mutex
	bits     uint8
	listener func(uint8)
}

func NewBank() *Bank { return &Bank{} }

func (b *Bank) Set(v uint8) {
	b.mu.Lock()
	b.bits = v
	l := b.listener
	b.mu.Unlock()
	if l != nil {
		l(v)
	}
}

func (b *Bank) Toggle() {
	b.mu.Lock()
	b.bits ^= 0xFF
	v := b.bits
	l := b.listener
	b.mu.Unlock()
	if l != nil {
		l(v)
	}
}

func (b *Bank) Get() uint8 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bits
}

// SetListener attaches the write observer. Must be called before the
// firmware starts driving the bank.
func (b *Bank) SetListener(fn func(uint8)) {
	b.mu.Lock()
	b.listener = fn
	b.mu.Unlock()
}
