package engine

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"ebiten-wrap/gfx"
	"ebiten-wrap/logging"
)

// Stats summarizes a headless run.
type Stats struct {
	Ticks     int
	Commands  int
	Triangles int
	Culled    int
	Total     time.Duration
	Max       time.Duration
}

// Average returns the mean tick duration.
func (s Stats) Average() time.Duration {
	if s.Ticks == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Ticks)
}

// HeadlessOptions controls RunHeadless.
type HeadlessOptions struct {
	// Ticks to run. Zero runs until ctx is done.
	Ticks int
	// Realtime paces ticks at TPS; otherwise ticks run back to back.
	Realtime bool
	TPS      int
}

// RunHeadless updates and draws the engine onto a NullTarget the size of the
// configured window. It stops after opts.Ticks ticks or when ctx is done.
func (e *Engine) RunHeadless(ctx context.Context, opts HeadlessOptions) (Stats, error) {
	var stats Stats
	if opts.Ticks < 0 {
		return stats, eris.Errorf("ticks must not be negative, got %d", opts.Ticks)
	}
	if opts.Ticks == 0 && !opts.Realtime {
		return stats, eris.New("an unbounded headless run must be realtime")
	}

	target := gfx.NewNullTarget(e.cfg.Window.Size())
	e.Resize(target.Size())

	var tick <-chan time.Time
	if opts.Realtime {
		tps := opts.TPS
		if tps <= 0 {
			tps = e.cfg.TPS
		}
		ticker := time.NewTicker(time.Second / time.Duration(tps))
		defer ticker.Stop()
		tick = ticker.C
	}

	e.logger.Info().
		Int("ticks", opts.Ticks).
		Bool("realtime", opts.Realtime).
		Int("entities", e.World.Len()).
		Msg("headless run started")

	var err error
	for opts.Ticks == 0 || stats.Ticks < opts.Ticks {
		if tick != nil {
			select {
			case <-ctx.Done():
				err = ctx.Err()
			case <-tick:
			}
		} else if ctx.Err() != nil {
			err = ctx.Err()
		}
		if err != nil {
			break
		}
		e.step(target, &stats)
	}

	e.logger.Info().
		Int("ticks", stats.Ticks).
		Dur("total", stats.Total).
		Dur("average", stats.Average()).
		Dur("max", stats.Max).
		Int("triangles", stats.Triangles).
		Int("culled", stats.Culled).
		Msg("headless run finished")
	logging.World(&e.logger, e.World, zerolog.DebugLevel)

	if eris.Is(err, context.Canceled) || eris.Is(err, context.DeadlineExceeded) {
		return stats, nil
	}
	return stats, err
}

func (e *Engine) step(target gfx.Target, stats *Stats) {
	start := time.Now()
	e.Update()
	fs := e.Draw(target)
	d := time.Since(start)

	stats.Ticks++
	stats.Commands += fs.Commands
	stats.Triangles += fs.Triangles
	stats.Culled += fs.Culled
	stats.Total += d
	if d > stats.Max {
		stats.Max = d
	}
	e.logger.Trace().
		Uint64("tick", e.World.Ticks()).
		Int("commands", fs.Commands).
		Dur("duration", d).
		Msg("tick")
}
