package renderer

import (
	"github.com/pthm-cable/lightfall/config"
	"github.com/pthm-cable/lightfall/surface"
	"github.com/pthm-cable/lightfall/systems"
)

// haloOpacity scales the wide flash halo relative to the dot.
const haloOpacity = 0.35

// puddleDrop offsets the melt puddle below the landing point.
const puddleDrop = 2.0

// ImpactRenderer paints the landing flash and the melt puddle.
type ImpactRenderer struct {
	cfg *config.Config
}

// NewImpactRenderer creates an impact renderer for the given configuration.
func NewImpactRenderer(cfg *config.Config) *ImpactRenderer {
	return &ImpactRenderer{cfg: cfg}
}

// FlashOpacity returns the flash fade value for the given elapsed time.
func (r *ImpactRenderer) FlashOpacity(elapsed float64) float64 {
	return systems.Clamp01(1 - elapsed/r.cfg.Impact.FlashDuration)
}

// MeltProgress returns the puddle growth fraction for the given elapsed time.
func (r *ImpactRenderer) MeltProgress(elapsed float64) float64 {
	return systems.Clamp01(elapsed / r.cfg.Impact.MeltDuration)
}

// DrawFlash paints the fading halo and dot at the landing point.
func (r *ImpactRenderer) DrawFlash(s surface.Surface, x, y, elapsed float64) {
	a := r.FlashOpacity(elapsed)
	if a <= 0 {
		return
	}
	s.FillRadialGradient(x, y, r.cfg.Impact.HaloRadius, a*haloOpacity)
	s.FillCircle(x, y, r.cfg.Impact.FlashDotRadius, a)
}

// DrawMelt paints the growing, fading puddle below the landing point.
func (r *ImpactRenderer) DrawMelt(s surface.Surface, x, y, elapsed float64) {
	p := r.MeltProgress(elapsed)
	a := 1 - p
	if a <= 0 {
		return
	}
	s.FillCircle(x, y+puddleDrop, systems.Lerp(0, r.cfg.Impact.PuddleRadius, p), a)
}
