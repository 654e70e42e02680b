package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/lightfall/config"
	"github.com/pthm-cable/lightfall/effect"
	"github.com/pthm-cable/lightfall/surface"
	"github.com/pthm-cable/lightfall/systems"
	"github.com/pthm-cable/lightfall/telemetry"
	"github.com/pthm-cable/lightfall/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	target := flag.String("target", "", "Target region override (\"full\" or \"x,y,WxH\")")
	headless := flag.Bool("headless", false, "Run without graphics")
	seed := flag.Uint64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV snapshots and config")
	density := flag.Int("density", -1, "Streak count override (-1 = use config)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// CLI overrides
	if *target != "" {
		cfg.Target = *target
	}
	if *density >= 0 {
		cfg.Streaks.Density = *density
		if err := cfg.Validate(); err != nil {
			slog.Error("invalid density override", "error", err)
			os.Exit(1)
		}
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = uint64(time.Now().UnixNano())
	}
	sampler := systems.NewSampler(rngSeed)

	if *headless {
		runHeadless(cfg, sampler, rngSeed, *maxFrames, *outputDir)
		return
	}
	runGraphical(cfg, sampler, rngSeed, *maxFrames)
}

// runGraphical drives the overlay inside a raylib window.
func runGraphical(cfg *config.Config, sampler systems.Sampler, seed uint64, maxFrames int) {
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Lightfall")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	surf, err := surface.NewRaylib(cfg.Target, cfg.Render.DPRCap)
	if err != nil {
		slog.Error("failed to acquire surface", "error", err, "target", cfg.Target)
		os.Exit(1)
	}

	handle, err := effect.Start(cfg, surf, sampler)
	if err != nil {
		slog.Error("failed to start overlay", "error", err)
		os.Exit(1)
	}

	slog.Info("overlay started",
		"seed", seed,
		"density", cfg.Streaks.Density,
		"target", cfg.Target,
	)

	hud := ui.NewHUD(10, 10)

	frame := 0
	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeySpace) {
			if handle.Paused() {
				if err := handle.Resume(); err != nil {
					slog.Error("resume failed", "error", err)
				} else {
					slog.Info("overlay resumed", "frame", frame)
				}
			} else {
				if err := handle.Pause(); err != nil {
					slog.Error("pause failed", "error", err)
				} else {
					slog.Info("overlay paused", "frame", frame)
				}
			}
		}
		if rl.IsKeyPressed(rl.KeyH) {
			hud.Toggle()
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)

		if err := handle.Tick(time.Now()); err != nil {
			rl.EndDrawing()
			slog.Error("frame tick failed", "error", err)
			os.Exit(1)
		}
		surf.Present()

		hud.Draw(handle, frame)
		rl.EndDrawing()

		frame++
		if maxFrames > 0 && frame >= maxFrames {
			break
		}
	}

	handle.Destroy()
	slog.Info("overlay destroyed", "frames", frame)
}

// headlessSurface is a no-op surface with fixed dimensions for CPU-only runs.
type headlessSurface struct {
	w, h float64
}

func (s *headlessSurface) Size() (float64, float64)                    { return s.w, s.h }
func (s *headlessSurface) Clear()                                      {}
func (s *headlessSurface) FillCapsule(x, y, w, h, opacity float64)     {}
func (s *headlessSurface) FillCircle(x, y, r, opacity float64)         {}
func (s *headlessSurface) FillRadialGradient(x, y, r, opacity float64) {}

// runHeadless steps fixed 16 ms frames and writes CSV snapshots.
func runHeadless(cfg *config.Config, sampler systems.Sampler, seed uint64, maxFrames int, outputDir string) {
	const dt = 1.0 / 60.0

	om, err := telemetry.NewOutputManager(outputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		os.Exit(1)
	}
	defer om.Close()

	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}

	surf := &headlessSurface{w: float64(cfg.Screen.Width), h: float64(cfg.Screen.Height)}
	handle, err := effect.Start(cfg, surf, sampler)
	if err != nil {
		slog.Error("failed to start overlay", "error", err)
		os.Exit(1)
	}
	defer handle.Destroy()

	slog.Info("starting headless run",
		"seed", seed,
		"density", cfg.Streaks.Density,
		"max_frames", maxFrames,
		"output_dir", outputDir,
	)

	frame := 0
	for {
		if err := handle.Ensemble().Advance(dt); err != nil {
			slog.Error("advance failed", "error", err, "frame", frame)
			os.Exit(1)
		}

		if err := om.WriteSnapshot(frame, handle.Ensemble().Streaks()); err != nil {
			slog.Error("snapshot failed", "error", err, "frame", frame)
			os.Exit(1)
		}

		frame++
		if maxFrames > 0 && frame >= maxFrames {
			slog.Info("max frames reached", "frame", frame)
			return
		}
	}
}
