// SPDX-License-Identifier: MIT

package sim

import (
	"context"
	"log/slog"
	"time"
)

// Ticker is the scheduler callback surface. *Simulation implements it;
// Advance numbers ticks itself so other callers can interleave.
type Ticker interface {
	Advance(ctx context.Context) (*TickReport, error)
}

// Engine drives a Ticker forward one tick at a time.
type Engine struct {
	Tick     uint64        // last tick completed by this engine
	Interval time.Duration // pause between ticks; 0 runs flat out
	Logger   *slog.Logger

	// OnReport, if set, receives every tick report.
	OnReport func(*TickReport)

	sim Ticker
}

// NewEngine creates an engine with no pause between ticks.
func NewEngine(t Ticker, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{sim: t, Logger: logger}
}

// Run issues ticks sequentially until ticks have run (0 = until ctx is
// done) or Advance fails. Cancellation is honoured between ticks only; a
// tick in progress runs to completion.
func (e *Engine) Run(ctx context.Context, ticks uint64) error {
	e.Logger.Info("simulation engine started", "tick", e.Tick, "ticks", ticks)
	var moved float64
	for n := uint64(0); ticks == 0 || n < ticks; n++ {
		if err := ctx.Err(); err != nil {
			e.Logger.Info("simulation engine stopped", "tick", e.Tick, "reason", err)
			return err
		}
		rep, err := e.sim.Advance(ctx)
		if err != nil {
			e.Logger.Error("tick failed", "after", e.Tick, "err", err)
			return err
		}
		e.Tick = rep.Tick
		moved += rep.Moved
		if e.OnReport != nil {
			e.OnReport(rep)
		}
		if e.Interval > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(e.Interval):
			}
		}
	}
	e.Logger.Info("simulation engine finished", "tick", e.Tick, "moved", moved)

	return nil
}
