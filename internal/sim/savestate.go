package sim

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mwebber/citysim/internal/clock"
	"github.com/mwebber/citysim/internal/rng"
	"github.com/mwebber/citysim/internal/scenario"
)

const savestateSchema = "citysim/savestate@1"

// savestate is the full resumable snapshot of an engine. Completed trips
// live in the run's ledger, not here; resuming produces the ledger tail
// an uninterrupted run would have produced after the snapshot tick.
type savestate struct {
	Schema       string      `json:"schema"`
	MapName      string      `json:"map"`
	ScenarioName string      `json:"scenario"`
	Tick         int64       `json:"tick"`
	RNGSeed      uint64      `json:"rng_seed"`
	RNGPos       uint64      `json:"rng_pos"`
	Seeded       bool        `json:"seeded"`
	NextAgent    int64       `json:"next_agent"`
	LateDone     int         `json:"late_done"`
	Pending      []savedTrip `json:"pending"`
	RouteWaits   map[string]savedWait `json:"route_waits,omitempty"`
}

type savedTrip struct {
	Agent  int64  `json:"agent"`
	Mode   string `json:"mode"`
	Route  string `json:"route,omitempty"`
	Depart int64  `json:"depart"`
	Arrive int64  `json:"arrive"`
	Wait   int64  `json:"wait_s"`
}

type savedWait struct {
	TotalS int64 `json:"total_s"`
	Count  int64 `json:"count"`
}

// SavePath names a savestate by scenario and tick under dir.
func SavePath(dir, scenarioName string, t clock.Tick) string {
	stamp := strings.ReplaceAll(t.Format(), ":", "-")
	return filepath.Join(dir, scenarioName, stamp+".json")
}

// Save writes a complete snapshot of the engine under dir and returns the
// written path. A failed save is reported as failed; callers must not
// treat it as saved.
func (e *Engine) Save(dir string) (string, error) {
	if e.unsorted {
		e.sortPending()
		e.unsorted = false
	}
	st := savestate{
		Schema:       savestateSchema,
		MapName:      e.m.Name,
		ScenarioName: e.scenarioName,
		Tick:         int64(e.now),
		RNGSeed:      e.stream.Seed(),
		RNGPos:       e.stream.Pos(),
		Seeded:       e.seeded,
		NextAgent:    int64(e.nextAgent),
		LateDone:     e.lateDone,
		RouteWaits:   map[string]savedWait{},
	}
	for _, t := range e.pending {
		st.Pending = append(st.Pending, savedTrip{
			Agent:  int64(t.Agent),
			Mode:   string(t.Mode),
			Route:  t.Route,
			Depart: int64(t.Depart),
			Arrive: int64(t.Arrive),
			Wait:   int64(t.Wait),
		})
	}
	for route, w := range e.routeWaits {
		st.RouteWaits[route] = savedWait{TotalS: int64(w.Total), Count: w.Count}
	}

	path := SavePath(dir, e.scenarioName, e.now)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating savestate dir: %w", err)
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling savestate: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing savestate %s: %w", path, err)
	}
	return path, nil
}

// IsSavestate sniffs whether a file is a savestate snapshot, as opposed
// to a map or scenario definition.
func IsSavestate(data []byte) bool {
	var probe struct {
		Schema string `json:"schema"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return false
	}
	return probe.Schema == savestateSchema
}

// SavestateMapName reports which map a savestate was taken over, so the
// caller can load it before reconstructing the engine.
func SavestateMapName(path string) (string, error) {
	st, err := readSavestate(path)
	if err != nil {
		return "", err
	}
	return st.MapName, nil
}

func readSavestate(path string) (*savestate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading savestate %s: %w", path, err)
	}
	var st savestate
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parsing savestate %s: %w", path, err)
	}
	if st.Schema != savestateSchema {
		return nil, fmt.Errorf("savestate %s: unrecognized schema %q", path, st.Schema)
	}
	return &st, nil
}

// LoadSavestate reconstructs an engine from a snapshot. Advancing the
// result is indistinguishable from an uninterrupted run that passed
// through the same tick with the same seed and demand history.
func LoadSavestate(path string, m *scenario.Map) (*Engine, error) {
	st, err := readSavestate(path)
	if err != nil {
		return nil, err
	}
	if m.Name != st.MapName {
		return nil, fmt.Errorf("savestate %s was taken over map %s, got %s", path, st.MapName, m.Name)
	}

	e := NewEngine(m, st.ScenarioName, rng.Restore(st.RNGSeed, st.RNGPos), st.Seeded)
	e.now = clock.Tick(st.Tick)
	e.nextAgent = AgentID(st.NextAgent)
	e.lateDone = st.LateDone
	for _, t := range st.Pending {
		mode, err := scenario.ParseMode(t.Mode)
		if err != nil {
			return nil, fmt.Errorf("savestate %s: %w", path, err)
		}
		e.pending = append(e.pending, pendingTrip{
			Agent:  AgentID(t.Agent),
			Mode:   mode,
			Route:  t.Route,
			Depart: clock.Tick(t.Depart),
			Arrive: clock.Tick(t.Arrive),
			Wait:   clock.Duration(t.Wait),
		})
	}
	e.sortPending()
	for route, w := range st.RouteWaits {
		e.routeWaits[route] = &routeWait{Total: clock.Duration(w.TotalS), Count: w.Count}
	}
	return e, nil
}
