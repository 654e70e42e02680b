// Package renderer computes and paints the visuals for each streak phase.
package renderer

import (
	"math"

	"github.com/pthm-cable/lightfall/config"
	"github.com/pthm-cable/lightfall/surface"
	"github.com/pthm-cable/lightfall/systems"
)

// cullMargin is the vertical band outside the region within which segments
// are still computed; anything further out is skipped before any fade math.
const cullMargin = 40.0

// glowScale sizes the soft glow relative to the capsule width.
const glowScale = 3.0

// Segment is one computed trail capsule, ready to paint.
type Segment struct {
	Y       float64
	Head    bool
	Opacity float64
}

// TrailRenderer turns a falling streak's position into faded capsule segments.
type TrailRenderer struct {
	cfg *config.Config
}

// NewTrailRenderer creates a trail renderer for the given configuration.
func NewTrailRenderer(cfg *config.Config) *TrailRenderer {
	return &TrailRenderer{cfg: cfg}
}

// Segments computes the visible segments for a streak whose head is at y.
// Index 0 is the head; later indices trail upward at the configured spacing.
func (r *TrailRenderer) Segments(y, twinklePhase, height float64) []Segment {
	trail := r.cfg.Trail
	spacing := r.cfg.Derived.Spacing
	twinkle := 1 + math.Sin(twinklePhase)*r.cfg.Streaks.TwinkleAmplitude

	segs := make([]Segment, 0, trail.Length)
	for i := 0; i < trail.Length; i++ {
		segY := systems.SnapToGrid(y, spacing) - float64(i)*spacing
		if segY < -cullMargin || segY > height+cullMargin {
			continue
		}

		a := 1 - float64(i)/float64(trail.Length)
		if i == 0 {
			a = math.Min(a*trail.HeadBoost, 1)
		}

		// Segments sink into the ground band before impact.
		meltZone := r.cfg.Impact.MeltZone
		if meltZone > 0 && segY > height-meltZone {
			a *= (height - segY) / meltZone
		}

		a *= trail.DimFactor * twinkle
		a = systems.Clamp01(a)
		if a <= 0 {
			continue
		}

		segs = append(segs, Segment{Y: segY, Head: i == 0, Opacity: a})
	}
	return segs
}

// Draw paints the streak's trail onto the surface.
func (r *TrailRenderer) Draw(s surface.Surface, x, y, twinklePhase, height float64) {
	trail := r.cfg.Trail
	for _, seg := range r.Segments(y, twinklePhase, height) {
		length := trail.BodyLength
		if seg.Head {
			length = trail.HeadLength
		}

		if r.cfg.Render.Glow && seg.Opacity > r.cfg.Render.GlowFloor {
			s.FillRadialGradient(x, seg.Y+length/2, trail.Width*glowScale, seg.Opacity*0.35)
		}
		s.FillCapsule(x, seg.Y, trail.Width, length, seg.Opacity)
	}
}
