// Package telemetry writes streak state snapshots for headless tuning runs.
package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/lightfall/config"
	"github.com/pthm-cable/lightfall/effect"
)

// StreakRecord is one streak's state at one frame, as written to streaks.csv.
type StreakRecord struct {
	Frame   int     `csv:"frame"`
	Index   int     `csv:"index"`
	Phase   string  `csv:"phase"`
	X       float64 `csv:"x"`
	Y       float64 `csv:"y"`
	VX      float64 `csv:"vx"`
	VY      float64 `csv:"vy"`
	Elapsed float64 `csv:"elapsed"`
	Wait    float64 `csv:"wait"`
}

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir        string
	streakFile *os.File

	headerWritten bool
}

// NewOutputManager creates a new output manager and initializes the output
// directory. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	streakPath := filepath.Join(dir, "streaks.csv")
	f, err := os.Create(streakPath)
	if err != nil {
		return nil, fmt.Errorf("creating streaks.csv: %w", err)
	}

	return &OutputManager{dir: dir, streakFile: f}, nil
}

// WriteConfig saves the effective configuration as YAML for run provenance.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteSnapshot appends one record per streak to streaks.csv.
func (om *OutputManager) WriteSnapshot(frame int, streaks []effect.StreakState) error {
	if om == nil || len(streaks) == 0 {
		return nil
	}

	records := make([]StreakRecord, len(streaks))
	for i, s := range streaks {
		records[i] = StreakRecord{
			Frame:   frame,
			Index:   i,
			Phase:   s.Phase.String(),
			X:       s.X,
			Y:       s.Y,
			VX:      s.VX,
			VY:      s.VY,
			Elapsed: s.Elapsed,
			Wait:    s.Wait,
		}
	}

	if !om.headerWritten {
		if err := gocsv.Marshal(records, om.streakFile); err != nil {
			return fmt.Errorf("writing streaks.csv: %w", err)
		}
		om.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.streakFile); err != nil {
		return fmt.Errorf("writing streaks.csv: %w", err)
	}
	return nil
}

// Close flushes and closes the output files.
func (om *OutputManager) Close() error {
	if om == nil || om.streakFile == nil {
		return nil
	}
	err := om.streakFile.Close()
	om.streakFile = nil
	return err
}
