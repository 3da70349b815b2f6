// Package monitor periodically publishes firmware counters to the bus.
package monitor

import (
	"context"
	"log/slog"
	"time"

	"taillight-go/bus"
	"taillight-go/types"
)

var TopicStats = bus.Topic{"light", "stats"}

const defaultInterval = 10 * time.Second

// StatsSource snapshots the counters to publish.
type StatsSource interface {
	Stats() types.Stats
}

type Service struct {
	conn     *bus.Connection
	src      StatsSource
	interval time.Duration
	log      *slog.Logger
}

func New(conn *bus.Connection, src StatsSource, interval time.Duration, log *slog.Logger) *Service {
	if interval <= 0 {
		interval = defaultInterval
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{conn: conn, src: src, interval: interval, log: log}
}

// Run publishes a retained stats document every interval until ctx is
// done.
func (s *Service) Run(ctx context.Context) error {
	tick := time.NewTicker(s.interval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Debug("monitor service stopping")
			return ctx.Err()
		case <-tick.C:
			st := s.src.Stats()
			s.conn.Publish(s.conn.NewMessage(TopicStats, st, true))
			s.log.Debug("heartbeat",
				"uptime_ms", st.UptimeMs,
				"ticks_coalesced", st.TicksCoalesced,
				"presses", st.PressesObserved)
		}
	}
}
