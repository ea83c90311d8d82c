package result_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mwebber/citysim/internal/result"
	"github.com/mwebber/citysim/internal/scenario"
	"github.com/mwebber/citysim/internal/sim"
	"github.com/mwebber/citysim/internal/stats"
)

func TestWriteAndReadRunMeta(t *testing.T) {
	dir := t.TempDir()
	meta := &result.RunMeta{
		Scenario:  "weekday",
		Map:       "montlake",
		Seed:      42,
		Seeded:    true,
		FinalTick: "10:30:00",
		Trips:     128,
		Badness:   3,
	}
	if err := result.WriteRunMeta(dir, meta); err != nil {
		t.Fatalf("WriteRunMeta: %v", err)
	}
	got, err := result.ReadRunMeta(filepath.Join(dir, "meta.json"))
	if err != nil {
		t.Fatalf("ReadRunMeta: %v", err)
	}
	if !reflect.DeepEqual(got, meta) {
		t.Errorf("round trip: got %+v, want %+v", got, meta)
	}
}

func TestWriteAndReadLedger(t *testing.T) {
	dir := t.TempDir()
	ledger := sim.NewLedger()
	ledger.Record(sim.TripRecord{Agent: 1, Mode: scenario.ModeBike, Duration: 300})
	ledger.Record(sim.TripRecord{Agent: 2, Mode: scenario.ModeDrive, Duration: 450})
	if err := result.WriteLedger(dir, ledger); err != nil {
		t.Fatalf("WriteLedger: %v", err)
	}
	got, err := result.ReadLedger(filepath.Join(dir, "trips.json"))
	if err != nil {
		t.Fatalf("ReadLedger: %v", err)
	}
	if !reflect.DeepEqual(got.All(), ledger.All()) {
		t.Errorf("round trip: got %v, want %v", got.All(), ledger.All())
	}
}

func TestWriteAndReadStats(t *testing.T) {
	dir := t.TempDir()
	rs := &result.RunStats{
		ByMode: map[scenario.TripMode]stats.Stats{
			scenario.ModeBike: {Count: 40, Min: 120, Max: 900, P50: 480, P90: 800, Mean: 500},
		},
		RouteWaits: map[string]int64{"48": 280},
		Badness:    7,
	}
	if err := result.WriteStats(dir, rs); err != nil {
		t.Fatalf("WriteStats: %v", err)
	}
	got, err := result.ReadStats(filepath.Join(dir, "stats.yaml"))
	if err != nil {
		t.Fatalf("ReadStats: %v", err)
	}
	if !reflect.DeepEqual(got, rs) {
		t.Errorf("round trip: got %+v, want %+v", got, rs)
	}
}

func TestCreateRunDir(t *testing.T) {
	base := t.TempDir()
	runDir, err := result.CreateRunDir(base)
	if err != nil {
		t.Fatalf("CreateRunDir: %v", err)
	}
	if _, err := os.Stat(runDir); os.IsNotExist(err) {
		t.Errorf("run directory not created: %s", runDir)
	}
	latest := filepath.Join(base, "latest")
	target, err := os.Readlink(latest)
	if err != nil {
		t.Fatalf("reading latest symlink: %v", err)
	}
	if target != runDir {
		t.Errorf("latest symlink: got %q, want %q", target, runDir)
	}
}
