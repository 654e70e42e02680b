// Package effect owns the streak ensemble, its lifecycle state machine and
// the frame scheduler that drives it.
package effect

import (
	"fmt"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/lightfall/components"
	"github.com/pthm-cable/lightfall/config"
	"github.com/pthm-cable/lightfall/renderer"
	"github.com/pthm-cable/lightfall/surface"
	"github.com/pthm-cable/lightfall/systems"
)

// landingEpsilon is the distance from the bottom edge at which a falling
// streak counts as landed.
const landingEpsilon = 2.0

// Ensemble owns a fixed collection of streaks and advances them by time
// deltas. All painting happens as a side effect of Advance; the surface is
// exclusively owned by the ensemble during that call.
type Ensemble struct {
	cfg     *config.Config
	surf    surface.Surface
	sampler systems.Sampler

	world  *ecs.World
	mapper *ecs.Map4[
		components.Position,
		components.Velocity,
		components.Twinkle,
		components.Lifecycle,
	]
	filter *ecs.Filter4[
		components.Position,
		components.Velocity,
		components.Twinkle,
		components.Lifecycle,
	]

	trail  *renderer.TrailRenderer
	impact *renderer.ImpactRenderer

	destroyed bool
}

// NewEnsemble validates the configuration and allocates the streaks, each
// independently randomized and scattered across the full region height so
// the ensemble is desynchronized from the first frame.
func NewEnsemble(cfg *config.Config, surf surface.Surface, sampler systems.Sampler) (*Ensemble, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("creating ensemble: %w", err)
	}
	cfg.ComputeDerived()

	world := ecs.NewWorld()
	e := &Ensemble{
		cfg:     cfg,
		surf:    surf,
		sampler: sampler,
		world:   world,
		mapper: ecs.NewMap4[
			components.Position,
			components.Velocity,
			components.Twinkle,
			components.Lifecycle,
		](world),
		filter: ecs.NewFilter4[
			components.Position,
			components.Velocity,
			components.Twinkle,
			components.Lifecycle,
		](world),
		trail:  renderer.NewTrailRenderer(cfg),
		impact: renderer.NewImpactRenderer(cfg),
	}

	width, height := surf.Size()
	for i := 0; i < cfg.Streaks.Density; i++ {
		pos, vel, tw := e.rollStreak(width, height, true)
		lc := components.Lifecycle{Phase: components.PhaseFalling}
		e.mapper.NewEntity(&pos, &vel, &tw, &lc)
	}

	return e, nil
}

// rollStreak draws fresh randomized motion state for one streak. Initial
// spawns scatter across the full height; respawns enter from above the
// visible area so the whole ribbon slides in.
func (e *Ensemble) rollStreak(width, height float64, initial bool) (components.Position, components.Velocity, components.Twinkle) {
	streaks := e.cfg.Streaks

	var y float64
	if initial {
		y = e.sampler.Uniform(0, height)
	} else {
		band := float64(e.cfg.Trail.Length) * e.cfg.Derived.Spacing
		y = -e.sampler.Uniform(0, band)
	}

	pos := components.Position{
		X: e.sampler.Uniform(-streaks.BufferMargin, width+streaks.BufferMargin),
		Y: y,
	}
	vel := components.Velocity{
		X: e.sampler.Uniform(streaks.Wind.Min, streaks.Wind.Max),
		Y: e.sampler.Uniform(streaks.FallSpeed.Min, streaks.FallSpeed.Max),
	}
	tw := components.Twinkle{Phase: e.sampler.Uniform(0, 2*math.Pi)}
	return pos, vel, tw
}

// Advance steps every streak by dt seconds and paints the frame. dt of 0 is
// tolerated (state is untouched, the current frame repaints); large dt is
// accepted as-is, clamping is the scheduler's job.
func (e *Ensemble) Advance(dt float64) error {
	if e.destroyed {
		return ErrDestroyed
	}
	if dt < 0 {
		dt = 0
	}

	// Re-read dimensions every frame so wrap and landing math track resizes.
	width, height := e.surf.Size()
	e.surf.Clear()

	query := e.filter.Query()
	for query.Next() {
		pos, vel, tw, lc := query.Get()

		tw.Phase += e.cfg.Streaks.TwinkleSpeed * dt
		e.step(pos, vel, tw, lc, dt, width, height)
		e.paint(pos, tw, lc, height)
	}

	return nil
}

// step runs the lifecycle state machine for one streak.
func (e *Ensemble) step(
	pos *components.Position,
	vel *components.Velocity,
	tw *components.Twinkle,
	lc *components.Lifecycle,
	dt, width, height float64,
) {
	switch lc.Phase {
	case components.PhaseFalling:
		pos.X += vel.X * dt
		pos.Y += vel.Y * dt
		pos.X = systems.WrapX(pos.X, width, e.cfg.Streaks.BufferMargin)

		if pos.Y >= height-landingEpsilon {
			lc.Phase = components.PhaseFlashing
			lc.Elapsed = 0
			lc.LandedX = pos.X
			lc.LandedY = height - landingEpsilon
		}

	case components.PhaseFlashing:
		lc.Elapsed += dt
		// Closed upper bound: elapsed == duration transitions this tick.
		if lc.Elapsed >= e.cfg.Impact.FlashDuration {
			lc.Phase = components.PhaseMelting
			lc.Elapsed = 0
		}

	case components.PhaseMelting:
		lc.Elapsed += dt
		if lc.Elapsed >= e.cfg.Impact.MeltDuration {
			lc.Phase = components.PhaseWaiting
			lc.Elapsed = 0
			lc.Wait = e.sampler.Uniform(e.cfg.Streaks.RespawnGap.Min, e.cfg.Streaks.RespawnGap.Max)
		}

	case components.PhaseWaiting:
		lc.Wait -= dt
		if lc.Wait <= 0 {
			newPos, newVel, newTw := e.rollStreak(width, height, false)
			*pos = newPos
			*vel = newVel
			*tw = newTw
			lc.Phase = components.PhaseFalling
			lc.Elapsed = 0
			lc.Wait = 0
		}
	}
}

// paint dispatches to the phase renderer.
func (e *Ensemble) paint(
	pos *components.Position,
	tw *components.Twinkle,
	lc *components.Lifecycle,
	height float64,
) {
	switch lc.Phase {
	case components.PhaseFalling:
		e.trail.Draw(e.surf, pos.X, pos.Y, tw.Phase, height)
	case components.PhaseFlashing:
		e.impact.DrawFlash(e.surf, lc.LandedX, lc.LandedY, lc.Elapsed)
	case components.PhaseMelting:
		e.impact.DrawMelt(e.surf, lc.LandedX, lc.LandedY, lc.Elapsed)
	case components.PhaseWaiting:
		// Nothing painted while waiting to respawn.
	}
}

// StreakState is a read-only view of one streak, for snapshots and the HUD.
type StreakState struct {
	Phase   components.Phase
	X, Y    float64
	VX, VY  float64
	Elapsed float64
	Wait    float64
}

// Streaks returns the current state of every streak in stable index order.
func (e *Ensemble) Streaks() []StreakState {
	if e.destroyed {
		return nil
	}
	out := make([]StreakState, 0, e.cfg.Streaks.Density)
	query := e.filter.Query()
	for query.Next() {
		pos, vel, _, lc := query.Get()
		out = append(out, StreakState{
			Phase:   lc.Phase,
			X:       pos.X,
			Y:       pos.Y,
			VX:      vel.X,
			VY:      vel.Y,
			Elapsed: lc.Elapsed,
			Wait:    lc.Wait,
		})
	}
	return out
}

// CountByPhase tallies streaks per lifecycle phase.
func (e *Ensemble) CountByPhase() map[components.Phase]int {
	counts := make(map[components.Phase]int, 4)
	for _, s := range e.Streaks() {
		counts[s.Phase]++
	}
	return counts
}

// Destroy releases all streaks. Idempotent; every later call to Advance
// fails with ErrDestroyed.
func (e *Ensemble) Destroy() {
	if e.destroyed {
		return
	}

	// Collect first; removal during query iteration is not allowed.
	var toRemove []ecs.Entity
	query := e.filter.Query()
	for query.Next() {
		toRemove = append(toRemove, query.Entity())
	}
	for _, entity := range toRemove {
		e.mapper.Remove(entity)
	}

	e.destroyed = true
}
