// Package ui renders the demo HUD overlay.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/lightfall/components"
	"github.com/pthm-cable/lightfall/effect"
)

// HUD draws frame and ensemble stats in the window corner.
type HUD struct {
	x, y    int32
	visible bool
}

// NewHUD creates a HUD anchored at the given position.
func NewHUD(x, y int32) *HUD {
	return &HUD{x: x, y: y, visible: true}
}

// Toggle switches HUD visibility.
func (h *HUD) Toggle() bool {
	h.visible = !h.visible
	return h.visible
}

// Draw renders the HUD for the given handle.
func (h *HUD) Draw(handle *effect.Handle, frame int) {
	if !h.visible {
		return
	}

	counts := handle.Ensemble().CountByPhase()
	rl.DrawText(fmt.Sprintf("Frame: %d  dt: %.1f ms  FPS: %d",
		frame, handle.LastDelta()*1000, rl.GetFPS()), h.x, h.y, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Falling: %d  Flashing: %d  Melting: %d  Waiting: %d",
		counts[components.PhaseFalling],
		counts[components.PhaseFlashing],
		counts[components.PhaseMelting],
		counts[components.PhaseWaiting],
	), h.x, h.y+25, 20, rl.White)

	if handle.Paused() {
		rl.DrawText("PAUSED", h.x, h.y+50, 20, rl.Yellow)
	}
}
