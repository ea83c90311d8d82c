// Package result stores the artifacts of a headless run: the trip ledger,
// aggregated statistics, and run metadata, one timestamped directory per
// run with a `latest` symlink for convenience.
package result

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mwebber/citysim/internal/sim"
)

func CreateRunDir(baseDir string) (string, error) {
	runsDir := filepath.Join(baseDir, "runs")
	stamp := time.Now().UTC().Format("2006-01-02T15-04-05")
	runDir := filepath.Join(runsDir, stamp)
	runDir, err := filepath.Abs(runDir)
	if err != nil {
		return "", fmt.Errorf("resolving run dir: %w", err)
	}
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", fmt.Errorf("creating run dir: %w", err)
	}
	latest := filepath.Join(baseDir, "latest")
	os.Remove(latest)
	if err := os.Symlink(runDir, latest); err != nil {
		return "", fmt.Errorf("creating latest symlink: %w", err)
	}
	return runDir, nil
}

func WriteRunMeta(runDir string, meta *RunMeta) error {
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return fmt.Errorf("creating run dir: %w", err)
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling meta: %w", err)
	}
	return os.WriteFile(filepath.Join(runDir, "meta.json"), data, 0o644)
}

func ReadRunMeta(path string) (*RunMeta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading meta: %w", err)
	}
	var meta RunMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parsing meta: %w", err)
	}
	return &meta, nil
}

// WriteLedger persists the completion history as trips.json.
func WriteLedger(runDir string, ledger *sim.TripLedger) error {
	data, err := json.MarshalIndent(ledger.All(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling ledger: %w", err)
	}
	return os.WriteFile(filepath.Join(runDir, "trips.json"), data, 0o644)
}

func ReadLedger(path string) (*sim.TripLedger, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}
	var trips []sim.TripRecord
	if err := json.Unmarshal(data, &trips); err != nil {
		return nil, fmt.Errorf("parsing ledger: %w", err)
	}
	ledger := sim.NewLedger()
	for _, t := range trips {
		ledger.Record(t)
	}
	return ledger, nil
}

// WriteStats persists the aggregated outcome as stats.yaml, the textual
// form challenge scoring and reports read back.
func WriteStats(runDir string, rs *RunStats) error {
	data, err := yaml.Marshal(rs)
	if err != nil {
		return fmt.Errorf("marshaling stats: %w", err)
	}
	return os.WriteFile(filepath.Join(runDir, "stats.yaml"), data, 0o644)
}

func ReadStats(path string) (*RunStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading stats: %w", err)
	}
	var rs RunStats
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("parsing stats: %w", err)
	}
	return &rs, nil
}
