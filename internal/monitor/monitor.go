package monitor

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/medipresence/presence-api/pkg/metrics"
)

// Monitor is one background check, run on a fixed interval.
type Monitor interface {
	Name() string
	RunCycle(ctx context.Context) error
}

// Runner drives a monitor on its interval until ctx is canceled. A failed
// cycle is logged and counted; the next tick runs regardless.
type Runner struct {
	monitor  Monitor
	interval time.Duration
	metrics  *metrics.Metrics
}

func NewRunner(m Monitor, interval time.Duration, mt *metrics.Metrics) *Runner {
	return &Runner{monitor: m, interval: interval, metrics: mt}
}

func (r *Runner) Start(ctx context.Context) {
	log.Info().
		Str("monitor", r.monitor.Name()).
		Dur("interval", r.interval).
		Msg("starting monitor")

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("monitor", r.monitor.Name()).Msg("monitor stopped")
			return
		case <-ticker.C:
			if err := r.monitor.RunCycle(ctx); err != nil {
				r.metrics.MonitorCycles.WithLabelValues(r.monitor.Name(), "error").Inc()
				log.Error().Err(err).Str("monitor", r.monitor.Name()).Msg("monitor cycle failed")
				continue
			}
			r.metrics.MonitorCycles.WithLabelValues(r.monitor.Name(), "ok").Inc()
		}
	}
}
