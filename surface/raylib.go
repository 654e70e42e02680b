package surface

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Streak base color, a cold white.
var streakColor = rl.Color{R: 235, G: 242, B: 255, A: 255}

// Raylib renders the overlay into a DPR-scaled backing texture and blits it
// onto the target region. Frame protocol: Clear opens the backing texture,
// the Fill* calls paint into it, Present closes it and draws it to screen.
type Raylib struct {
	target  string
	region  Region
	scale   float32 // capped device pixel ratio
	tex     rl.RenderTexture2D
	drawing bool
}

// NewRaylib acquires a surface over the target region of the current window.
// The raylib window must already be initialized.
func NewRaylib(target string, dprCap float64) (*Raylib, error) {
	if !rl.IsWindowReady() {
		return nil, fmt.Errorf("%w: raylib window not initialized", ErrUnavailable)
	}

	region, err := ResolveRegion(target, rl.GetScreenWidth(), rl.GetScreenHeight())
	if err != nil {
		return nil, err
	}

	scale := rl.GetWindowScaleDPI().X
	if scale < 1 {
		scale = 1
	}
	if float64(scale) > dprCap {
		scale = float32(dprCap)
	}

	s := &Raylib{target: target, region: region, scale: scale}
	if err := s.allocTexture(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Raylib) allocTexture() error {
	s.tex = rl.LoadRenderTexture(
		int32(float32(s.region.W)*s.scale),
		int32(float32(s.region.H)*s.scale),
	)
	if s.tex.ID == 0 {
		return fmt.Errorf("%w: cannot allocate %dx%d backing texture",
			ErrUnavailable, s.region.W, s.region.H)
	}
	return nil
}

// Size re-resolves the target region against the current window dimensions
// and reports the region size in logical units. On resize the backing
// texture is reallocated.
func (s *Raylib) Size() (float64, float64) {
	region, err := ResolveRegion(s.target, rl.GetScreenWidth(), rl.GetScreenHeight())
	if err == nil && region != s.region {
		rl.UnloadRenderTexture(s.tex)
		s.region = region
		// On allocation failure the zero texture ID turns Present into a no-op.
		_ = s.allocTexture()
	}
	return float64(s.region.W), float64(s.region.H)
}

// Clear opens the backing texture for this frame's paint calls.
func (s *Raylib) Clear() {
	if s.tex.ID == 0 {
		return
	}
	rl.BeginTextureMode(s.tex)
	rl.ClearBackground(rl.Blank)
	s.drawing = true
}

// FillCapsule fills a rounded rectangle; roundness 1.0 caps both ends.
func (s *Raylib) FillCapsule(x, y, w, h, opacity float64) {
	if !s.drawing {
		return
	}
	rec := rl.Rectangle{
		X:      (float32(x) - float32(w)/2) * s.scale,
		Y:      float32(y) * s.scale,
		Width:  float32(w) * s.scale,
		Height: float32(h) * s.scale,
	}
	rl.DrawRectangleRounded(rec, 1.0, 8, rl.Fade(streakColor, float32(opacity)))
}

// FillCircle fills a circle centered at (x, y).
func (s *Raylib) FillCircle(x, y, r, opacity float64) {
	if !s.drawing {
		return
	}
	center := rl.Vector2{X: float32(x) * s.scale, Y: float32(y) * s.scale}
	rl.DrawCircleV(center, float32(r)*s.scale, rl.Fade(streakColor, float32(opacity)))
}

// FillRadialGradient fills a circle fading out toward its radius.
func (s *Raylib) FillRadialGradient(x, y, r, opacity float64) {
	if !s.drawing {
		return
	}
	rl.DrawCircleGradient(
		int32(float32(x)*s.scale),
		int32(float32(y)*s.scale),
		float32(r)*s.scale,
		rl.Fade(streakColor, float32(opacity)),
		rl.Fade(streakColor, 0),
	)
}

// Present closes the backing texture and blits it onto the target region.
// Must be called between rl.BeginDrawing and rl.EndDrawing.
func (s *Raylib) Present() {
	if !s.drawing {
		return
	}
	rl.EndTextureMode()
	s.drawing = false

	tw := float32(s.tex.Texture.Width)
	th := float32(s.tex.Texture.Height)
	// Render textures are vertically flipped; negative source height corrects it.
	src := rl.Rectangle{X: 0, Y: 0, Width: tw, Height: -th}
	dst := rl.Rectangle{
		X:      float32(s.region.X),
		Y:      float32(s.region.Y),
		Width:  float32(s.region.W),
		Height: float32(s.region.H),
	}
	rl.DrawTexturePro(s.tex.Texture, src, dst, rl.Vector2{}, 0, rl.White)
}

// Release frees the backing texture. Idempotent.
func (s *Raylib) Release() {
	if s.drawing {
		rl.EndTextureMode()
		s.drawing = false
	}
	if s.tex.ID != 0 {
		rl.UnloadRenderTexture(s.tex)
		s.tex.ID = 0
	}
}
