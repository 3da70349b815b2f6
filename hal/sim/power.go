package sim

import "sync"

// Power models the power-down primitive: Sleep parks the caller until the
// wake interrupt fires.
type Power struct {
	mu     sync.Mutex
	asleep bool
	wake   chan struct{}
}

func NewPower() *Power {
	return &Power{wake: make(chan struct{}, 1)}
}

func (p *Power) Sleep() {
	p.mu.Lock()
	p.asleep = true
	p.mu.Unlock()

	<-p.wake

	p.mu.Lock()
	p.asleep = false
	p.mu.Unlock()
}

// Wake releases the blocked Sleep. The token is buffered so an edge that
// fires between arming the wake interrupt and the Sleep call itself is not
// lost.
func (p *Power) Wake() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *Power) Asleep() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.asleep
}
