package sim_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/katalvlaran/idpnet/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingTicker struct {
	ticks  []uint64
	failAt uint64
	cancel context.CancelFunc
}

func (c *countingTicker) Advance(_ context.Context) (*sim.TickReport, error) {
	tick := uint64(len(c.ticks)) + 1
	c.ticks = append(c.ticks, tick)
	if tick == c.failAt {
		return nil, errors.New("boom")
	}
	if c.cancel != nil && tick == 2 {
		c.cancel()
	}

	return &sim.TickReport{Tick: tick, Moved: 1}, nil
}

func TestEngine_RunsSequentially(t *testing.T) {
	t.Parallel()
	tk := &countingTicker{}
	e := sim.NewEngine(tk, quiet)
	var reports int
	e.OnReport = func(*sim.TickReport) { reports++ }

	require.NoError(t, e.Run(context.Background(), 3))
	assert.Equal(t, []uint64{1, 2, 3}, tk.ticks)
	assert.Equal(t, uint64(3), e.Tick)
	assert.Equal(t, 3, reports)
}

func TestEngine_StopsOnCancelAndError(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	tk := &countingTicker{cancel: cancel}
	err := sim.NewEngine(tk, quiet).Run(ctx, 0)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []uint64{1, 2}, tk.ticks)

	failing := &countingTicker{failAt: 2}
	err = sim.NewEngine(failing, quiet).Run(context.Background(), 5)
	assert.EqualError(t, err, "boom")
}

func TestEngine_DrivesSimulation(t *testing.T) {
	t.Parallel()
	s := newSim(t, params())
	require.NoError(t, sim.NewEngine(s, quiet).Run(context.Background(), 4))
	assert.Equal(t, uint64(4), s.Tick())
	assert.Equal(t, 100.0, s.Nodes().TotalRefugees())
}

func TestEngine_InterleavedAdvanceStaysMonotonic(t *testing.T) {
	t.Parallel()
	s := newSim(t, params())
	e := sim.NewEngine(s, quiet)

	var (
		mu   sync.Mutex
		seen []uint64
	)
	record := func(rep *sim.TickReport) {
		mu.Lock()
		seen = append(seen, rep.Tick)
		mu.Unlock()
	}
	e.OnReport = record

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		assert.NoError(t, e.Run(context.Background(), 5))
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 5; i++ {
			rep, err := s.Advance(context.Background())
			if assert.NoError(t, err) {
				record(rep)
			}
		}
	}()
	wg.Wait()

	assert.Equal(t, uint64(10), s.Tick())
	assert.ElementsMatch(t, []uint64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, seen)
	assert.LessOrEqual(t, e.Tick, uint64(10))
	assert.GreaterOrEqual(t, e.Tick, uint64(5))
}

func TestAdvance_FollowsOnTick(t *testing.T) {
	t.Parallel()
	s := newSim(t, params())
	_, err := s.OnTick(context.Background(), 7)
	require.NoError(t, err)

	rep, err := s.Advance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(8), rep.Tick)
	assert.Equal(t, uint64(8), s.Tick())
}
