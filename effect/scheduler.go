package effect

import (
	"time"

	"github.com/pthm-cable/lightfall/systems"
)

// maxFrameDelta caps the dt handed to the ensemble so a stalled host (tab
// switch, debugger, suspend) does not teleport every streak.
const maxFrameDelta = 0.1

// FrameScheduler turns host paint callbacks into clamped time deltas for
// one ensemble. Each instance owns its own last-tick timestamp, so several
// independent overlays never interfere.
type FrameScheduler struct {
	ens       *Ensemble
	paused    bool
	destroyed bool
	last      time.Time
	hasLast   bool
	lastDelta float64
}

// NewFrameScheduler creates a scheduler driving the given ensemble.
func NewFrameScheduler(ens *Ensemble) *FrameScheduler {
	return &FrameScheduler{ens: ens}
}

// Tick advances the ensemble by the time elapsed since the previous tick,
// clamped to [0, maxFrameDelta]. The first tick after construction or
// Resume advances by zero, so no stale interval ever reaches the ensemble.
func (s *FrameScheduler) Tick(now time.Time) error {
	if s.destroyed {
		return ErrDestroyed
	}
	if s.paused {
		return nil
	}

	dt := 0.0
	if s.hasLast {
		dt = now.Sub(s.last).Seconds()
	}
	s.last = now
	s.hasLast = true

	dt = systems.Clamp(dt, 0, maxFrameDelta)
	s.lastDelta = dt

	return s.ens.Advance(dt)
}

// LastDelta reports the dt handed to the ensemble on the most recent tick,
// in seconds.
func (s *FrameScheduler) LastDelta() float64 {
	return s.lastDelta
}

// Pause suspends ticking. Streak state is frozen, not reset.
func (s *FrameScheduler) Pause() error {
	if s.destroyed {
		return ErrDestroyed
	}
	s.paused = true
	return nil
}

// Paused reports whether the scheduler is paused.
func (s *FrameScheduler) Paused() bool {
	return s.paused
}

// Resume resumes ticking, measuring the next dt from the resume instant.
// Resuming a running scheduler is a no-op.
func (s *FrameScheduler) Resume() error {
	if s.destroyed {
		return ErrDestroyed
	}
	if !s.paused {
		return nil
	}
	s.paused = false
	s.hasLast = false
	return nil
}

// Destroy detaches the scheduler. Idempotent.
func (s *FrameScheduler) Destroy() {
	s.destroyed = true
}
