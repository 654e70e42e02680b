package systems

import "testing"

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		v, lo, hi float64
		want      float64
	}{
		{"below", -0.2, 0, 0.1, 0},
		{"inside", 0.016, 0, 0.1, 0.016},
		{"at upper bound", 0.1, 0, 0.1, 0.1},
		{"above", 10, 0, 0.1, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
				t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(2, 6, 0); got != 2 {
		t.Errorf("Lerp(2, 6, 0) = %v, want 2", got)
	}
	if got := Lerp(2, 6, 1); got != 6 {
		t.Errorf("Lerp(2, 6, 1) = %v, want 6", got)
	}
	if got := Lerp(0, 8, 0.5); got != 4 {
		t.Errorf("Lerp(0, 8, 0.5) = %v, want 4", got)
	}
}

func TestClamp01(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		want float64
	}{
		{"below", -0.3, 0},
		{"zero", 0, 0},
		{"inside", 0.42, 0.42},
		{"one", 1, 1},
		{"above", 1.7, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp01(tt.v); got != tt.want {
				t.Errorf("Clamp01(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestWrapX(t *testing.T) {
	const width, margin = 100.0, 50.0

	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{"inside", 40, 40},
		{"at left margin", -50, -50},
		{"past left margin", -51, 150},
		{"at right margin", 150, 150},
		{"past right margin", 151, -50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WrapX(tt.x, width, margin); got != tt.want {
				t.Errorf("WrapX(%v, %v, %v) = %v, want %v", tt.x, width, margin, got, tt.want)
			}
		})
	}
}

func TestSnapToGrid(t *testing.T) {
	if got := SnapToGrid(23.7, 9); got != 18 {
		t.Errorf("SnapToGrid(23.7, 9) = %v, want 18", got)
	}
	if got := SnapToGrid(-4, 9); got != -9 {
		t.Errorf("SnapToGrid(-4, 9) = %v, want -9", got)
	}
}

func TestSamplerBounds(t *testing.T) {
	s := NewSampler(42)
	for i := 0; i < 1000; i++ {
		v := s.Uniform(3, 7)
		if v < 3 || v > 7 {
			t.Fatalf("Uniform(3, 7) = %v, out of range", v)
		}
	}
}

func TestSamplerDegenerateRange(t *testing.T) {
	s := NewSampler(1)
	if got := s.Uniform(5, 5); got != 5 {
		t.Errorf("Uniform(5, 5) = %v, want 5", got)
	}
}

func TestSamplerDeterministicPerSeed(t *testing.T) {
	a := NewSampler(7)
	b := NewSampler(7)
	for i := 0; i < 100; i++ {
		va, vb := a.Uniform(0, 1), b.Uniform(0, 1)
		if va != vb {
			t.Fatalf("draw %d differs: %v vs %v", i, va, vb)
		}
	}
}
