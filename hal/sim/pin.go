// Package sim provides deterministic host implementations of the hal
// interfaces, used by the simulator daemon and by tests.
package sim

import (
	"sync"

	"taillight-go/errcode"
	"taillight-go/hal"
)

// Pin is a simulated GPIO pin. External stimulus (a harness or a renderer
// acting as the physical button) drives it with SetLevel; the firmware side
// reads it with Get and may arm a level-change interrupt on it.
type Pin struct {
	mu      sync.Mutex
	number  int
	output  bool
	level   bool
	pull    hal.Pull
	edge    hal.Edge
	handler func()
}

func NewPin(number int) *Pin {
	return &Pin{number: number}
}

func (p *Pin) ConfigureInput(pull hal.Pull) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.output = false
	p.pull = pull
	// Idle level follows the pull resistor.
	p.level = pull == hal.PullUp
	return nil
}

func (p *Pin) ConfigureOutput(initial bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.output = true
	p.level = initial
	return nil
}

func (p *Pin) Set(level bool) {
	p.mu.Lock()
	if !p.output {
		p.mu.Unlock()
		return
	}
	p.level = level
	p.mu.Unlock()
}

func (p *Pin) Get() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

func (p *Pin) Toggle() {
	p.mu.Lock()
	p.level = !p.level
	p.mu.Unlock()
}

func (p *Pin) Number() int { return p.number }

func (p *Pin) SetIRQ(edge hal.Edge, handler func()) error {
	if edge == hal.EdgeNone || handler == nil {
		return errcode.InvalidParams
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.handler != nil {
		return errcode.IRQInUse
	}
	p.edge = edge
	p.handler = handler
	return nil
}

func (p *Pin) ClearIRQ() error {
	p.mu.Lock()
	p.edge = hal.EdgeNone
	p.handler = nil
	p.mu.Unlock()
	return nil
}

// SetLevel drives the pin from outside the firmware, dispatching the armed
// interrupt handler synchronously when the transition matches the armed
// edge. The handler runs without the pin lock held, ISR-style, so it may
// call ClearIRQ on this pin.
func (p *Pin) SetLevel(level bool) {
	p.mu.Lock()
	prev := p.level
	p.level = level
	var h func()
	if prev != level && p.handler != nil {
		switch p.edge {
		case hal.EdgeBoth:
			h = p.handler
		case hal.EdgeRising:
			if level {
				h = p.handler
			}
		case hal.EdgeFalling:
			if !level {
				h = p.handler
			}
		}
	}
	p.mu.Unlock()
	if h != nil {
		h()
	}
}
