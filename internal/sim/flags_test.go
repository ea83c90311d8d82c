package sim_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mwebber/citysim/internal/sim"
)

const mapYAML = `name: montlake
mode_speeds:
  walk: 1.4
  bike: 4.5
  transit: 7.0
  drive: 11.0
route_headways:
  "48": 600
`

const scenarioYAML = `name: weekday
map: montlake
demand:
  - mode: bike
    count: 10
    depart_from: "07:00:00"
    depart_to: "09:00:00"
    min_distance_m: 500
    max_distance_m: 5000
`

func writeFixtures(t *testing.T) (mapsDir, scenarioPath string) {
	t.Helper()
	dir := t.TempDir()
	mapsDir = filepath.Join(dir, "maps")
	if err := os.MkdirAll(mapsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(mapsDir, "montlake.yaml"), []byte(mapYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	scenarioPath = filepath.Join(dir, "weekday.yaml")
	if err := os.WriteFile(scenarioPath, []byte(scenarioYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	return mapsDir, scenarioPath
}

func seedPtr(v uint64) *uint64 { return &v }

func TestInitializeFromScenario(t *testing.T) {
	mapsDir, scenarioPath := writeFixtures(t)
	e, err := sim.Initialize(sim.Flags{
		Load:    scenarioPath,
		RngSeed: seedPtr(42),
		MapsDir: mapsDir,
	})
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if e.ScenarioName() != "weekday" {
		t.Errorf("scenario: got %q", e.ScenarioName())
	}
	if e.PendingTrips() != 10 {
		t.Errorf("pending: got %d, want 10", e.PendingTrips())
	}
	if !e.Seeded() {
		t.Error("expected a seeded engine")
	}
}

func TestInitializeFromBareMap(t *testing.T) {
	mapsDir, _ := writeFixtures(t)
	e, err := sim.Initialize(sim.Flags{
		Load:         filepath.Join(mapsDir, "montlake.yaml"),
		ScenarioName: "headless",
		RngSeed:      seedPtr(1),
		BigSim:       false,
		MapsDir:      mapsDir,
	})
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if e.ScenarioName() != "headless" {
		t.Errorf("scenario: got %q", e.ScenarioName())
	}
	if e.PendingTrips() == 0 {
		t.Error("expected built-in profile demand")
	}
}

func TestInitializeFromSavestate(t *testing.T) {
	mapsDir, scenarioPath := writeFixtures(t)
	e, err := sim.Initialize(sim.Flags{
		Load:    scenarioPath,
		RngSeed: seedPtr(42),
		MapsDir: mapsDir,
	})
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	saveDir := t.TempDir()
	path, err := e.Save(saveDir)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	resumed, err := sim.Initialize(sim.Flags{
		Load:    path,
		MapsDir: mapsDir,
	})
	if err != nil {
		t.Fatalf("Initialize from savestate: %v", err)
	}
	if resumed.PendingTrips() != e.PendingTrips() {
		t.Errorf("pending after resume: got %d, want %d", resumed.PendingTrips(), e.PendingTrips())
	}
	if resumed.Seed() != 42 {
		t.Errorf("restored seed: got %d", resumed.Seed())
	}
}

func TestInitializeRejectsGarbage(t *testing.T) {
	mapsDir, _ := writeFixtures(t)
	bad := filepath.Join(t.TempDir(), "junk.yaml")
	if err := os.WriteFile(bad, []byte("just: some yaml\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := sim.Initialize(sim.Flags{Load: bad, MapsDir: mapsDir, RngSeed: seedPtr(1)}); err == nil {
		t.Error("expected error for unrecognizable input")
	}
	if _, err := sim.Initialize(sim.Flags{Load: "nope.yaml", MapsDir: mapsDir}); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestEntropyRunIsMarkedUnseeded(t *testing.T) {
	mapsDir, scenarioPath := writeFixtures(t)
	e, err := sim.Initialize(sim.Flags{
		Load:    scenarioPath,
		MapsDir: mapsDir,
	})
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if e.Seeded() {
		t.Error("entropy-seeded engine claims to be seeded")
	}
}
