package firmware

import (
	"context"
	"sync"
)

// Flags holds the two pending-event bits shared between the asynchronous
// sources (tick timer, debounce sampler) and the sequential main loop.
// Every read-modify-write is a scoped critical section, so a consumer's
// read-and-clear is indivisible with respect to a concurrent set; this is
// the hosted equivalent of briefly masking interrupts.
//
// At most one tick is ever buffered: a tick that fires while one is still
// pending is coalesced, not queued. Presses OR into a bit mask, so a burst
// of presses between consumer reads is indistinguishable from one.
type Flags struct {
	mu        sync.Mutex
	tick      bool
	press     uint8
	coalesced uint32

	// kick lets the hosted loop park instead of spinning; a set flag
	// always leaves a token here.
	kick chan struct{}
}

func NewFlags() *Flags {
	return &Flags{kick: make(chan struct{}, 1)}
}

// SetTick raises the tick-pending flag. Called from the tick source.
func (f *Flags) SetTick() {
	f.mu.Lock()
	if f.tick {
		f.coalesced++
	}
	f.tick = true
	f.mu.Unlock()
	f.pulse()
}

// TakeTick reads and clears the tick-pending flag in one critical section.
func (f *Flags) TakeTick() bool {
	f.mu.Lock()
	v := f.tick
	f.tick = false
	f.mu.Unlock()
	return v
}

// ClearTick drops any pending tick without consuming it, used when a mode
// change disarms the tick source.
func (f *Flags) ClearTick() {
	f.mu.Lock()
	f.tick = false
	f.mu.Unlock()
}

// SetPress ORs debounced press bits into the pending mask. Called from the
// debounce sampler.
func (f *Flags) SetPress(mask uint8) {
	f.mu.Lock()
	f.press |= mask
	f.mu.Unlock()
	f.pulse()
}

// TakePress reads and clears the requested press bits in one critical
// section.
func (f *Flags) TakePress(mask uint8) uint8 {
	f.mu.Lock()
	got := f.press & mask
	f.press ^= got
	f.mu.Unlock()
	return got
}

// TicksCoalesced reports how many ticks were dropped because one was
// already pending.
func (f *Flags) TicksCoalesced() uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.coalesced
}

func (f *Flags) pulse() {
	select {
	case f.kick <- struct{}{}:
	default:
	}
}

// Wait parks until a flag has been set since the last Wait, or until ctx
// is done.
func (f *Flags) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-f.kick:
		return nil
	}
}
