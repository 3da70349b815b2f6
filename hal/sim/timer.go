package sim

import (
	"sync"
	"time"

	"taillight-go/errcode"
)

// Timer is a wall-clock implementation of hal.CompareTimer. Stop tears the
// ticker goroutine down completely, so a subsequent Start always begins a
// fresh period with no carry-over phase.
type Timer struct {
	mu   sync.Mutex
	stop chan struct{}
}

func NewTimer() *Timer { return &Timer{} }

func (t *Timer) Start(period time.Duration, fire func()) error {
	if period <= 0 || fire == nil {
		return errcode.InvalidParams
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != nil {
		return errcode.TimerRunning
	}
	stop := make(chan struct{})
	t.stop = stop
	go func() {
		tick := time.NewTicker(period)
		defer tick.Stop()
		for {
			select {
			case <-stop:
				return
			case <-tick.C:
				fire()
			}
		}
	}()
	return nil
}

func (t *Timer) Stop() {
	t.mu.Lock()
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
	t.mu.Unlock()
}
