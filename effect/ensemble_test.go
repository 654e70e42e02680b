package effect

import (
	"errors"
	"math"
	"testing"

	"github.com/pthm-cable/lightfall/components"
	"github.com/pthm-cable/lightfall/config"
)

// midSampler returns the midpoint of every range, making all randomized
// fields reproducible in closed form.
type midSampler struct{}

func (midSampler) Uniform(min, max float64) float64 { return min + 0.5*(max-min) }

// fakeSurface records paint calls and reports a settable size.
type fakeSurface struct {
	w, h      float64
	clears    int
	capsules  int
	circles   int
	gradients int
}

func (f *fakeSurface) Size() (float64, float64)                    { return f.w, f.h }
func (f *fakeSurface) Clear()                                      { f.clears++ }
func (f *fakeSurface) FillCapsule(x, y, w, h, opacity float64)     { f.capsules++ }
func (f *fakeSurface) FillCircle(x, y, r, opacity float64)         { f.circles++ }
func (f *fakeSurface) FillRadialGradient(x, y, r, opacity float64) { f.gradients++ }

func testConfig() *config.Config {
	cfg := &config.Config{
		Streaks: config.StreaksConfig{
			Density:          1,
			FallSpeed:        config.Range{Min: 100, Max: 100},
			Wind:             config.Range{Min: 0, Max: 0},
			RespawnGap:       config.Range{Min: 1, Max: 1},
			TwinkleAmplitude: 0,
			TwinkleSpeed:     5,
			BufferMargin:     50,
		},
		Trail: config.TrailConfig{
			Length:     4,
			Width:      3,
			HeadLength: 12,
			BodyLength: 9,
			HeadBoost:  1.30,
			DimFactor:  0.92,
		},
		Impact: config.ImpactConfig{
			MeltZone:       30,
			FlashDuration:  0.2,
			MeltDuration:   0.8,
			FlashDotRadius: 2,
			HaloRadius:     10,
			PuddleRadius:   8,
		},
		Render: config.RenderConfig{DPRCap: 2, Glow: true, GlowFloor: 0.12},
	}
	cfg.ComputeDerived()
	return cfg
}

func newTestEnsemble(t *testing.T, cfg *config.Config, w, h float64) (*Ensemble, *fakeSurface) {
	t.Helper()
	surf := &fakeSurface{w: w, h: h}
	ens, err := NewEnsemble(cfg, surf, midSampler{})
	if err != nil {
		t.Fatalf("NewEnsemble failed: %v", err)
	}
	return ens, surf
}

func TestNewEnsembleRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Streaks.Density = -3
	surf := &fakeSurface{w: 100, h: 200}

	_, err := NewEnsemble(cfg, surf, midSampler{})
	if err == nil {
		t.Fatal("NewEnsemble accepted a negative density")
	}
	if !errors.Is(err, config.ErrInvalid) {
		t.Errorf("error %v does not wrap config.ErrInvalid", err)
	}
}

func TestInitialSpawnClosedForm(t *testing.T) {
	ens, _ := newTestEnsemble(t, testConfig(), 100, 200)

	streaks := ens.Streaks()
	if len(streaks) != 1 {
		t.Fatalf("got %d streaks, want 1", len(streaks))
	}
	s := streaks[0]

	// Midpoint sampler: x = mid(-50, 150) = 50, y = mid(0, 200) = 100,
	// vy = 100, vx = 0.
	if s.X != 50 || s.Y != 100 {
		t.Errorf("initial position = (%v, %v), want (50, 100)", s.X, s.Y)
	}
	if s.VX != 0 || s.VY != 100 {
		t.Errorf("initial velocity = (%v, %v), want (0, 100)", s.VX, s.VY)
	}
	if s.Phase != components.PhaseFalling {
		t.Errorf("initial phase = %v, want falling", s.Phase)
	}
}

func TestAdvanceDeterministicIntegration(t *testing.T) {
	ens, _ := newTestEnsemble(t, testConfig(), 100, 200)

	const dt = 0.016
	for i := 0; i < 10; i++ {
		if err := ens.Advance(dt); err != nil {
			t.Fatalf("Advance failed: %v", err)
		}
	}

	s := ens.Streaks()[0]
	want := 100 + 100*dt*10
	if math.Abs(s.Y-want) > 1e-9 {
		t.Errorf("y after 10 frames = %v, want %v", s.Y, want)
	}
}

func TestAdvanceZeroDelta(t *testing.T) {
	ens, surf := newTestEnsemble(t, testConfig(), 100, 200)

	before := ens.Streaks()[0]
	if err := ens.Advance(0); err != nil {
		t.Fatalf("Advance(0) failed: %v", err)
	}
	after := ens.Streaks()[0]

	if before != after {
		t.Errorf("Advance(0) mutated state: %+v -> %+v", before, after)
	}
	if surf.clears != 1 {
		t.Errorf("Advance(0) should still repaint, got %d clears", surf.clears)
	}
}

func TestHorizontalWrapBothDirections(t *testing.T) {
	// Leftward drift wraps to the right margin.
	cfg := testConfig()
	cfg.Streaks.Wind = config.Range{Min: -100, Max: -100}
	ens, _ := newTestEnsemble(t, cfg, 100, 2000)

	// x starts at mid(-50, 150) = 50; one 1.01 s step puts it at -51.
	if err := ens.Advance(1.01); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if got := ens.Streaks()[0].X; got != 150 {
		t.Errorf("leftward wrap: x = %v, want 150", got)
	}

	// Rightward drift wraps to the left margin.
	cfg = testConfig()
	cfg.Streaks.Wind = config.Range{Min: 100, Max: 100}
	ens, _ = newTestEnsemble(t, cfg, 100, 2000)

	if err := ens.Advance(1.01); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if got := ens.Streaks()[0].X; got != -50 {
		t.Errorf("rightward wrap: x = %v, want -50", got)
	}
}

func TestResizeTrackedPerFrame(t *testing.T) {
	// Shrinking the region moves the bottom edge up; the next Advance must
	// land against the new height, not the construction-time one.
	ens, surf := newTestEnsemble(t, testConfig(), 100, 200)

	surf.h = 120
	if err := ens.Advance(0.3); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	// y = 100 + 100*0.3 = 130, past 120-2 but nowhere near the old 198.
	if got := ens.Streaks()[0].Phase; got != components.PhaseFlashing {
		t.Errorf("phase after shrink = %v, want flashing", got)
	}

	// Widening the region moves the wrap band; the teleport target must use
	// the new width.
	cfg := testConfig()
	cfg.Streaks.Wind = config.Range{Min: -100, Max: -100}
	ens, surf = newTestEnsemble(t, cfg, 100, 2000)

	surf.w = 300
	if err := ens.Advance(1.01); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	// x = 50 - 101 = -51 wraps to width+margin = 350 under the new width.
	if got := ens.Streaks()[0].X; got != 350 {
		t.Errorf("x after widen = %v, want 350", got)
	}
}

func TestLandingAfterComputedElapsedTime(t *testing.T) {
	ens, _ := newTestEnsemble(t, testConfig(), 100, 200)

	// y0 = 100, vy = 100: the head reaches height-2 = 198 after 0.98 s.
	// Step in 16 ms frames until the accumulated time passes that point.
	const dt = 0.016
	steps := int(math.Ceil(0.98 / dt))
	for i := 0; i < steps; i++ {
		if err := ens.Advance(dt); err != nil {
			t.Fatalf("Advance failed: %v", err)
		}
	}

	if got := ens.Streaks()[0].Phase; got != components.PhaseFlashing {
		t.Errorf("phase after landing time = %v, want flashing", got)
	}
}

func TestFlashBoundaryIsClosed(t *testing.T) {
	ens, _ := newTestEnsemble(t, testConfig(), 100, 200)

	// Land in one oversized step, then advance by exactly flash_duration.
	if err := ens.Advance(1.0); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if got := ens.Streaks()[0].Phase; got != components.PhaseFlashing {
		t.Fatalf("phase = %v, want flashing", got)
	}

	if err := ens.Advance(0.2); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if got := ens.Streaks()[0].Phase; got != components.PhaseMelting {
		t.Errorf("elapsed == flash_duration should transition on that tick, got %v", got)
	}
}

func TestFullLifecycleAndRespawn(t *testing.T) {
	ens, _ := newTestEnsemble(t, testConfig(), 100, 200)

	advance := func(dt float64) StreakState {
		t.Helper()
		if err := ens.Advance(dt); err != nil {
			t.Fatalf("Advance failed: %v", err)
		}
		return ens.Streaks()[0]
	}

	if s := advance(1.0); s.Phase != components.PhaseFlashing {
		t.Fatalf("after landing: phase = %v, want flashing", s.Phase)
	}
	if s := advance(0.2); s.Phase != components.PhaseMelting {
		t.Fatalf("after flash: phase = %v, want melting", s.Phase)
	}
	s := advance(0.8)
	if s.Phase != components.PhaseWaiting {
		t.Fatalf("after melt: phase = %v, want waiting", s.Phase)
	}
	// Respawn gap range is [1, 1], so the wait is exactly 1 s.
	if s.Wait != 1 {
		t.Fatalf("wait = %v, want 1", s.Wait)
	}

	s = advance(1.0)
	if s.Phase != components.PhaseFalling {
		t.Fatalf("after wait: phase = %v, want falling", s.Phase)
	}
	// Respawn enters from above: y = -mid(0, length*spacing) = -18.
	if s.Y != -18 {
		t.Errorf("respawn y = %v, want -18", s.Y)
	}
	if s.VY != 100 {
		t.Errorf("respawn vy = %v, want re-rolled 100", s.VY)
	}
}

func TestPhaseAlwaysValid(t *testing.T) {
	cfg := testConfig()
	cfg.Streaks.Density = 8
	ens, _ := newTestEnsemble(t, cfg, 100, 200)

	for i := 0; i < 400; i++ {
		if err := ens.Advance(0.016); err != nil {
			t.Fatalf("Advance failed: %v", err)
		}
		for j, s := range ens.Streaks() {
			if s.Phase > components.PhaseWaiting {
				t.Fatalf("frame %d streak %d: invalid phase %d", i, j, s.Phase)
			}
		}
	}
}

// seqSampler cycles through distinct fractions so each spawn gets a
// distinguishable position.
type seqSampler struct{ n int }

func (s *seqSampler) Uniform(min, max float64) float64 {
	s.n++
	frac := float64(s.n%7) / 7.0
	return min + frac*(max-min)
}

func TestStableIterationOrder(t *testing.T) {
	cfg := testConfig()
	cfg.Streaks.Density = 16
	surf := &fakeSurface{w: 100, h: 100000}
	ens, err := NewEnsemble(cfg, surf, &seqSampler{})
	if err != nil {
		t.Fatalf("NewEnsemble failed: %v", err)
	}

	first := ens.Streaks()
	for i := 0; i < 50; i++ {
		if err := ens.Advance(0.016); err != nil {
			t.Fatalf("Advance failed: %v", err)
		}
	}
	second := ens.Streaks()

	if len(first) != len(second) {
		t.Fatalf("streak count changed: %d -> %d", len(first), len(second))
	}
	// Wind is zero, so x never changes while falling: the per-index x
	// sequence must survive 50 frames untouched.
	for i := range second {
		if second[i].X != first[i].X {
			t.Fatalf("streak %d moved in iteration order: x %v -> %v", i, first[i].X, second[i].X)
		}
	}
}

func TestDestroyIsIdempotentAndFailsFast(t *testing.T) {
	ens, _ := newTestEnsemble(t, testConfig(), 100, 200)

	ens.Destroy()
	ens.Destroy() // must not panic

	if got := len(ens.Streaks()); got != 0 {
		t.Errorf("streaks after destroy = %d, want 0", got)
	}
	if err := ens.Advance(0.016); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Advance after destroy = %v, want ErrDestroyed", err)
	}
}
