// Package types holds the payloads published on the telemetry bus.
package types

// ModeValue is the retained current operating mode.
type ModeValue struct {
	Mode string `json:"mode"`
	TSms int64  `json:"ts_ms"`
}

// FrameValue is the retained logical LED bank state, on=1 per bit.
type FrameValue struct {
	Bits uint8 `json:"bits"`
	TSms int64 `json:"ts_ms"`
}

// PowerValue is the retained power state, "running" or "powered_down".
type PowerValue struct {
	State string `json:"state"`
	TSms  int64  `json:"ts_ms"`
}

const (
	PowerRunning     = "running"
	PowerPoweredDown = "powered_down"
)

// PressEvent is a non-retained debounced button press notification.
type PressEvent struct {
	TSms int64 `json:"ts_ms"`
}

// Stats is the retained periodic counters document.
type Stats struct {
	UptimeMs        int64  `json:"uptime_ms"`
	TicksCoalesced  uint32 `json:"ticks_coalesced"`
	PressesObserved uint32 `json:"presses_observed"`
	TSms            int64  `json:"ts_ms"`
}
