// Package components defines ECS components for one falling streak.
package components

// Phase identifies the lifecycle state of a streak.
type Phase uint8

const (
	PhaseFalling Phase = iota // Integrating velocity, trail visible
	PhaseFlashing             // Landing flash at the bottom edge
	PhaseMelting              // Growing, fading puddle
	PhaseWaiting              // Idle before respawn, nothing painted
)

// String returns the phase name for logs and snapshots.
func (p Phase) String() string {
	switch p {
	case PhaseFalling:
		return "falling"
	case PhaseFlashing:
		return "flashing"
	case PhaseMelting:
		return "melting"
	case PhaseWaiting:
		return "waiting"
	}
	return "unknown"
}

// Position represents a streak's position in surface-local units.
type Position struct {
	X, Y float64
}

// Velocity represents a streak's fall and drift speed in units per second.
// Both are drawn once per fall cycle.
type Velocity struct {
	X, Y float64
}

// Twinkle holds the per-streak oscillator driving opacity modulation.
type Twinkle struct {
	Phase float64 // radians, advanced every tick
}

// Lifecycle holds the streak's state machine bookkeeping.
type Lifecycle struct {
	Phase   Phase
	Elapsed float64 // seconds since entering Phase
	Wait    float64 // remaining idle seconds, meaningful only in PhaseWaiting
	LandedX float64 // landing point, set on the Falling -> Flashing transition
	LandedY float64
}
