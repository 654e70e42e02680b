package effect

import (
	"time"

	"github.com/pthm-cable/lightfall/config"
	"github.com/pthm-cable/lightfall/surface"
	"github.com/pthm-cable/lightfall/systems"
)

// Handle is the host-facing control surface for one running overlay.
type Handle struct {
	cfg   *config.Config
	surf  surface.Surface
	ens   *Ensemble
	sched *FrameScheduler

	destroyed bool
}

// Start validates the configuration, seeds the ensemble on the given
// surface and returns a running handle. It either fully succeeds or returns
// an error before any frame is scheduled.
func Start(cfg *config.Config, surf surface.Surface, sampler systems.Sampler) (*Handle, error) {
	ens, err := NewEnsemble(cfg, surf, sampler)
	if err != nil {
		return nil, err
	}
	return &Handle{
		cfg:   cfg,
		surf:  surf,
		ens:   ens,
		sched: NewFrameScheduler(ens),
	}, nil
}

// Tick drives one frame. Call it from the host's paint callback.
func (h *Handle) Tick(now time.Time) error {
	if h.destroyed {
		return ErrDestroyed
	}
	return h.sched.Tick(now)
}

// Pause suspends frame scheduling without touching streak state.
func (h *Handle) Pause() error {
	if h.destroyed {
		return ErrDestroyed
	}
	return h.sched.Pause()
}

// Resume resumes frame scheduling; the next delta is measured from the
// resume instant. Resuming a running overlay is a no-op.
func (h *Handle) Resume() error {
	if h.destroyed {
		return ErrDestroyed
	}
	return h.sched.Resume()
}

// Paused reports whether scheduling is currently suspended.
func (h *Handle) Paused() bool {
	return h.sched.Paused()
}

// LastDelta reports the most recent frame's dt in seconds, after clamping.
func (h *Handle) LastDelta() float64 {
	return h.sched.LastDelta()
}

// Ensemble exposes the streak collection for HUD and snapshot consumers.
func (h *Handle) Ensemble() *Ensemble {
	return h.ens
}

// Surface returns the surface the overlay draws on.
func (h *Handle) Surface() surface.Surface {
	return h.surf
}

// Config returns the configuration the overlay was started with.
func (h *Handle) Config() *config.Config {
	return h.cfg
}

// Destroy cancels scheduling, releases all streaks and detaches from the
// surface. Idempotent; any other call after Destroy fails with ErrDestroyed.
func (h *Handle) Destroy() {
	if h.destroyed {
		return
	}
	h.destroyed = true
	h.sched.Destroy()
	h.ens.Destroy()
	if r, ok := h.surf.(interface{ Release() }); ok {
		r.Release()
	}
}
