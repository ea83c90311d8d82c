package sim_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mwebber/citysim/internal/clock"
	"github.com/mwebber/citysim/internal/rng"
	"github.com/mwebber/citysim/internal/runner"
	"github.com/mwebber/citysim/internal/sim"
)

func TestSavestateRoundTripFidelity(t *testing.T) {
	const seed = 42
	cut := clock.FromSeconds(2 * 3600)

	// Uninterrupted run.
	full := runToCompletion(t, seed)

	// Interrupted run: same seed, save at the cut, reload, continue.
	e := sim.NewEngine(testMap(), "weekday", rng.Seeded(seed), true)
	if err := sim.Spawn(e, testScenario()); err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	head := sim.NewLedger()
	dir := t.TempDir()
	conds := []runner.HaltCondition{runner.SaveAt(cut, dir)}
	if err := runner.RunUntilDone(e, head, conds); err != nil {
		t.Fatalf("run to save: %v", err)
	}

	path := sim.SavePath(dir, "weekday", e.Time())
	resumed, err := sim.LoadSavestate(path, testMap())
	if err != nil {
		t.Fatalf("LoadSavestate: %v", err)
	}
	if resumed.Time() != e.Time() {
		t.Fatalf("resumed tick %s, want %s", resumed.Time(), e.Time())
	}
	tail := sim.NewLedger()
	if err := runner.RunUntilDone(resumed, tail, nil); err != nil {
		t.Fatalf("resumed run: %v", err)
	}

	combined := append(head.All(), tail.All()...)
	if !reflect.DeepEqual(combined, full) {
		t.Errorf("head+tail (%d trips) differs from uninterrupted run (%d trips)",
			len(combined), len(full))
	}
}

func TestSavestateRejectsWrongMap(t *testing.T) {
	e := sim.NewEngine(testMap(), "weekday", rng.Seeded(1), true)
	if err := sim.Spawn(e, testScenario()); err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	dir := t.TempDir()
	path, err := e.Save(dir)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	other := testMap()
	other.Name = "23rd"
	if _, err := sim.LoadSavestate(path, other); err == nil {
		t.Error("expected error loading a savestate over the wrong map")
	}
}

func TestSavestateIsSelfDescribing(t *testing.T) {
	e := sim.NewEngine(testMap(), "weekday", rng.Seeded(1), true)
	dir := t.TempDir()
	path, err := e.Save(dir)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading savestate: %v", err)
	}
	if !sim.IsSavestate(data) {
		t.Error("saved file not recognized as a savestate")
	}
	if sim.IsSavestate([]byte("mode_speeds:\n  walk: 1.4\n")) {
		t.Error("map yaml misidentified as savestate")
	}
	mapName, err := sim.SavestateMapName(path)
	if err != nil || mapName != "montlake" {
		t.Errorf("SavestateMapName: got %q, %v", mapName, err)
	}
}

func TestSavePathNaming(t *testing.T) {
	got := sim.SavePath("data/save", "headless", clock.FromSeconds(6*3600))
	want := filepath.Join("data/save", "headless", "06-00-00.json")
	if got != want {
		t.Errorf("SavePath: got %q, want %q", got, want)
	}
}

func TestSaveFailurePropagates(t *testing.T) {
	e := sim.NewEngine(testMap(), "weekday", rng.Seeded(1), true)
	if err := sim.Spawn(e, testScenario()); err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	// A file where the savestate directory should go.
	dir := t.TempDir()
	blocked := filepath.Join(dir, "save")
	if err := os.WriteFile(blocked, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	ledger := sim.NewLedger()
	conds := []runner.HaltCondition{runner.SaveAt(clock.FromSeconds(3600), blocked)}
	if err := runner.RunUntilDone(e, ledger, conds); err == nil {
		t.Error("expected a failed save to propagate out of the driver")
	}
}
