// Package surface abstracts the 2D canvas the overlay paints on. The core
// animation only sees the Surface interface; the raylib implementation and
// the target-region plumbing live here so the ensemble stays host-agnostic.
package surface

import "errors"

var (
	// ErrTargetNotFound is returned when the target region spec resolves
	// to nothing the overlay can draw on.
	ErrTargetNotFound = errors.New("surface: target region not found")

	// ErrUnavailable is returned when a drawing context cannot be acquired.
	ErrUnavailable = errors.New("surface: drawing context unavailable")
)

// Surface is the paint capability the animation core draws against.
// Coordinates are region-local units with the origin at the top-left.
// Opacity is [0, 1]; implementations apply their own base color.
type Surface interface {
	// Size reports the current region dimensions. Callers re-read it every
	// frame so wrap-around and landing math track host resizes.
	Size() (width, height float64)

	// Clear erases the region ahead of a frame's paint calls.
	Clear()

	// FillCapsule fills a rounded rectangle centered horizontally on x,
	// with its top edge at y. The corner radius is half the larger of w, h.
	FillCapsule(x, y, w, h, opacity float64)

	// FillCircle fills a circle of radius r centered at (x, y).
	FillCircle(x, y, r, opacity float64)

	// FillRadialGradient fills a circle fading from opacity at the center
	// to fully transparent at radius r.
	FillRadialGradient(x, y, r, opacity float64)
}
