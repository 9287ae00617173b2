// Package janitor evicts the state of clients that have gone quiet.
package janitor

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/lumina-market/storefront/internal/infrastructure/metrics"
)

const (
	defaultIdle     = 24 * time.Hour
	defaultInterval = 10 * time.Minute
)

// Sweeper drops entries idle for longer than idle and returns how many it dropped.
type Sweeper interface {
	Sweep(idle time.Duration) int
}

// SweeperFunc adapts a function to Sweeper.
type SweeperFunc func(idle time.Duration) int

func (f SweeperFunc) Sweep(idle time.Duration) int { return f(idle) }

// Janitor periodically sweeps a fixed set of named stores.
type Janitor struct {
	idle     time.Duration
	interval time.Duration
	names    []string
	sweepers []Sweeper
	log      zerolog.Logger
}

// New creates a Janitor. Zero durations fall back to defaults; interval is
// capped at idle so an entry never outlives its deadline by more than one tick.
func New(idle, interval time.Duration, log zerolog.Logger) *Janitor {
	if idle <= 0 {
		idle = defaultIdle
	}
	if interval <= 0 {
		interval = defaultInterval
	}
	if interval > idle {
		interval = idle
	}
	return &Janitor{idle: idle, interval: interval, log: log}
}

// Register adds a store. Call before Start.
func (j *Janitor) Register(name string, s Sweeper) {
	j.names = append(j.names, name)
	j.sweepers = append(j.sweepers, s)
}

// Start launches the sweep loop. It stops when ctx is cancelled.
func (j *Janitor) Start(ctx context.Context) {
	go j.run(ctx)
}

func (j *Janitor) run(ctx context.Context) {
	t := time.NewTicker(j.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			j.SweepOnce()
		}
	}
}

// SweepOnce runs every sweeper once and returns the total evicted.
func (j *Janitor) SweepOnce() int {
	total := 0
	for i, s := range j.sweepers {
		n := s.Sweep(j.idle)
		if n == 0 {
			continue
		}
		total += n
		j.log.Debug().Str("store", j.names[i]).Int("evicted", n).Msg("idle clients swept")
	}
	if total > 0 {
		metrics.ClientsEvictedTotal.Add(float64(total))
	}
	return total
}
