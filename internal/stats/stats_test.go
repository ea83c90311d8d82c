package stats_test

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/mwebber/citysim/internal/clock"
	"github.com/mwebber/citysim/internal/scenario"
	"github.com/mwebber/citysim/internal/sim"
	"github.com/mwebber/citysim/internal/stats"
)

func TestStatsValues(t *testing.T) {
	var h stats.Histogram
	for _, s := range []int64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100} {
		h.Add(clock.Seconds(s))
	}
	s := h.Stats()
	if s.Count != 10 {
		t.Errorf("count: got %d", s.Count)
	}
	if s.Min != clock.Seconds(10) || s.Max != clock.Seconds(100) {
		t.Errorf("min/max: got %s/%s", s.Min, s.Max)
	}
	if s.P50 != clock.Seconds(50) {
		t.Errorf("p50: got %s, want 50s", s.P50)
	}
	if s.P90 != clock.Seconds(90) {
		t.Errorf("p90: got %s, want 1m30s", s.P90)
	}
	if s.Mean != clock.Seconds(55) {
		t.Errorf("mean: got %s, want 55s", s.Mean)
	}
}

func TestSingleObservation(t *testing.T) {
	var h stats.Histogram
	h.Add(clock.Seconds(42))
	s := h.Stats()
	if s.P50 != clock.Seconds(42) || s.P90 != clock.Seconds(42) {
		t.Errorf("percentiles of singleton: got %s/%s", s.P50, s.P90)
	}
}

func TestAggregateOrderIndependent(t *testing.T) {
	records := []sim.TripRecord{
		{Agent: 1, Mode: scenario.ModeBike, Duration: 300},
		{Agent: 2, Mode: scenario.ModeBike, Duration: 600},
		{Agent: 3, Mode: scenario.ModeDrive, Duration: 900},
		{Agent: 4, Mode: scenario.ModeWalk, Duration: 1200},
		{Agent: 5, Mode: scenario.ModeBike, Duration: 450},
		{Agent: 6, Mode: scenario.ModeDrive, Duration: 150},
	}

	ledger := sim.NewLedger()
	for _, r := range records {
		ledger.Record(r)
	}
	want := stats.Aggregate(ledger)

	r := rand.New(rand.NewSource(1))
	for trial := 0; trial < 20; trial++ {
		shuffled := make([]sim.TripRecord, len(records))
		copy(shuffled, records)
		r.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		l := sim.NewLedger()
		for _, rec := range shuffled {
			l.Record(rec)
		}
		if got := stats.Aggregate(l); !reflect.DeepEqual(got, want) {
			t.Fatalf("permutation %d changed aggregate: %v vs %v", trial, got, want)
		}
	}
}

func TestAggregateEmptyLedger(t *testing.T) {
	got := stats.Aggregate(sim.NewLedger())
	if len(got) != 0 {
		t.Errorf("empty ledger produced %d entries: %v", len(got), got)
	}
}
