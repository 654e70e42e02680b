package surface

import "fmt"

// Region is a rectangle in window pixels the overlay is attached to.
type Region struct {
	X, Y, W, H int
}

// ResolveRegion resolves a target spec against the current window size.
// Accepted forms: "full" (the whole window) or "x,y,WxH". A spec that is
// empty, unparsable, or lies outside the window fails with ErrTargetNotFound.
func ResolveRegion(spec string, winW, winH int) (Region, error) {
	if winW <= 0 || winH <= 0 {
		return Region{}, fmt.Errorf("%w: window is %dx%d", ErrTargetNotFound, winW, winH)
	}

	if spec == "full" {
		return Region{X: 0, Y: 0, W: winW, H: winH}, nil
	}
	if spec == "" {
		return Region{}, fmt.Errorf("%w: empty target spec", ErrTargetNotFound)
	}

	var r Region
	if n, err := fmt.Sscanf(spec, "%d,%d,%dx%d", &r.X, &r.Y, &r.W, &r.H); err != nil || n != 4 {
		return Region{}, fmt.Errorf("%w: cannot parse target %q", ErrTargetNotFound, spec)
	}

	// Clip to the window; a region fully outside resolves to nothing.
	if r.X < 0 {
		r.W += r.X
		r.X = 0
	}
	if r.Y < 0 {
		r.H += r.Y
		r.Y = 0
	}
	if r.X+r.W > winW {
		r.W = winW - r.X
	}
	if r.Y+r.H > winH {
		r.H = winH - r.Y
	}
	if r.W <= 0 || r.H <= 0 {
		return Region{}, fmt.Errorf("%w: target %q resolves to an empty region", ErrTargetNotFound, spec)
	}

	return r, nil
}
