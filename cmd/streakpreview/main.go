// Streak overlay preview tool - interactive tuning with sliders.
//
// Usage: go run ./cmd/streakpreview
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/lightfall/config"
	"github.com/pthm-cable/lightfall/effect"
	"github.com/pthm-cable/lightfall/surface"
	"github.com/pthm-cable/lightfall/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
)

// PreviewParams holds the tunable subset of the overlay configuration.
type PreviewParams struct {
	Density      int
	FallSpeedMax float32
	WindSpread   float32
	Twinkle      float32
	MeltZone     float32
	TrailLength  int
	Seed         uint64
}

func defaultParams() PreviewParams {
	return PreviewParams{
		Density:      48,
		FallSpeedMax: 140,
		WindSpread:   12,
		Twinkle:      0.18,
		MeltZone:     36,
		TrailLength:  9,
		Seed:         12345,
	}
}

func applyParams(cfg *config.Config, p PreviewParams) {
	cfg.Streaks.Density = p.Density
	cfg.Streaks.FallSpeed.Max = float64(p.FallSpeedMax)
	if cfg.Streaks.FallSpeed.Min > cfg.Streaks.FallSpeed.Max {
		cfg.Streaks.FallSpeed.Min = cfg.Streaks.FallSpeed.Max
	}
	cfg.Streaks.Wind = config.Range{Min: -float64(p.WindSpread), Max: float64(p.WindSpread)}
	cfg.Streaks.TwinkleAmplitude = float64(p.Twinkle)
	cfg.Impact.MeltZone = float64(p.MeltZone)
	cfg.Trail.Length = p.TrailLength
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Streak Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	params := defaultParams()

	target := fmt.Sprintf("10,10,%dx%d", previewSize, previewSize)
	rebuild := func(p PreviewParams) *effect.Handle {
		cfg, err := config.Load("")
		if err != nil {
			slog.Error("failed to load defaults", "error", err)
			os.Exit(1)
		}
		applyParams(cfg, p)
		cfg.Target = target

		surf, err := surface.NewRaylib(cfg.Target, cfg.Render.DPRCap)
		if err != nil {
			slog.Error("failed to acquire surface", "error", err)
			os.Exit(1)
		}
		handle, err := effect.Start(cfg, surf, systems.NewSampler(p.Seed))
		if err != nil {
			slog.Error("failed to start overlay", "error", err)
			os.Exit(1)
		}
		return handle
	}

	handle := rebuild(params)
	needsRebuild := false

	for !rl.WindowShouldClose() {
		if needsRebuild {
			handle.Destroy()
			handle = rebuild(params)
			needsRebuild = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)

		if err := handle.Tick(time.Now()); err != nil {
			rl.EndDrawing()
			slog.Error("frame tick failed", "error", err)
			os.Exit(1)
		}
		if s, ok := handle.Surface().(*surface.Raylib); ok {
			s.Present()
		}
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Streak Parameters", int32(panelX), int32(panelY), 20, rl.RayWhite)
		panelY += 35

		// Density slider
		rl.DrawText("Density (streak count)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newDensity := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"1", "200",
			float32(params.Density), 1, 200,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Density), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.RayWhite)
		if int(newDensity) != params.Density {
			params.Density = int(newDensity)
			needsRebuild = true
		}
		panelY += 35

		// Fall speed slider
		rl.DrawText("Fall speed max (units/s)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newSpeed := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"40", "400",
			params.FallSpeedMax, 40, 400,
		)
		rl.DrawText(fmt.Sprintf("%.0f", params.FallSpeedMax), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.RayWhite)
		if newSpeed != params.FallSpeedMax {
			params.FallSpeedMax = newSpeed
			needsRebuild = true
		}
		panelY += 35

		// Wind slider
		rl.DrawText("Wind spread (units/s, symmetric)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newWind := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "80",
			params.WindSpread, 0, 80,
		)
		rl.DrawText(fmt.Sprintf("%.0f", params.WindSpread), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.RayWhite)
		if newWind != params.WindSpread {
			params.WindSpread = newWind
			needsRebuild = true
		}
		panelY += 35

		// Twinkle slider
		rl.DrawText("Twinkle amplitude", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newTwinkle := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "0.6",
			params.Twinkle, 0, 0.6,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.Twinkle), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.RayWhite)
		if newTwinkle != params.Twinkle {
			params.Twinkle = newTwinkle
			needsRebuild = true
		}
		panelY += 35

		// Melt zone slider
		rl.DrawText("Melt zone height (units)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newMelt := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "120",
			params.MeltZone, 0, 120,
		)
		rl.DrawText(fmt.Sprintf("%.0f", params.MeltZone), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.RayWhite)
		if newMelt != params.MeltZone {
			params.MeltZone = newMelt
			needsRebuild = true
		}
		panelY += 35

		// Trail length slider
		rl.DrawText("Trail length (segments)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newTrail := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"1", "24",
			float32(params.TrailLength), 1, 24,
		)
		rl.DrawText(fmt.Sprintf("%d", params.TrailLength), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.RayWhite)
		if int(newTrail) != params.TrailLength {
			params.TrailLength = int(newTrail)
			needsRebuild = true
		}
		panelY += 45

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(handle.Paused(), "Resume", "Pause")) {
			if handle.Paused() {
				_ = handle.Resume()
			} else {
				_ = handle.Pause()
			}
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = uint64(rl.GetRandomValue(0, 99999))
			needsRebuild = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams()
			needsRebuild = true
		}
		panelY += 55

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.RayWhite)
		panelY += 25
		for _, line := range yamlLines(params) {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			yaml := ""
			for _, line := range yamlLines(params) {
				yaml += line + "\n"
			}
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}

	handle.Destroy()
}

func yamlLines(p PreviewParams) []string {
	return []string{
		"streaks:",
		fmt.Sprintf("  density: %d", p.Density),
		"  fall_speed:",
		fmt.Sprintf("    max: %.0f", p.FallSpeedMax),
		"  wind:",
		fmt.Sprintf("    min: %.0f", -p.WindSpread),
		fmt.Sprintf("    max: %.0f", p.WindSpread),
		fmt.Sprintf("  twinkle_amplitude: %.2f", p.Twinkle),
		"trail:",
		fmt.Sprintf("  length: %d", p.TrailLength),
		"impact:",
		fmt.Sprintf("  melt_zone: %.0f", p.MeltZone),
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
