// Package sim holds the micro-simulation engine and the pieces that feed
// it: demand spawning, the trip ledger, and savestates. One engine value
// is owned exclusively by one run; starting a new run means constructing
// a fresh engine, never reusing an old one.
package sim

import (
	"fmt"
	"math"
	"sort"

	"github.com/mwebber/citysim/internal/clock"
	"github.com/mwebber/citysim/internal/rng"
	"github.com/mwebber/citysim/internal/scenario"
)

type pendingTrip struct {
	Agent  AgentID
	Mode   scenario.TripMode
	Route  string
	Depart clock.Tick
	Arrive clock.Tick
	Wait   clock.Duration
}

type routeWait struct {
	Total clock.Duration
	Count int64
}

// Engine advances simulated time over a map and completes scheduled
// trips. It owns the run's clock and RNG stream; the stream is consumed
// only through engine calls so a seed fully determines the run.
type Engine struct {
	m            *scenario.Map
	scenarioName string
	now          clock.Tick
	stream       *rng.Stream
	seeded       bool

	pending    []pendingTrip // sorted by arrival once sealed
	unsorted   bool
	finished   []TripRecord // completed since last collect
	routeWaits map[string]*routeWait
	lateDone   int // trips that finished after the end-of-day horizon
	nextAgent  AgentID
}

// NewEngine builds a fresh engine at tick zero. seeded records whether
// the stream came from an explicit seed; it is stamped into run metadata
// so nondeterministic runs are never mistaken for reproducible ones.
func NewEngine(m *scenario.Map, scenarioName string, stream *rng.Stream, seeded bool) *Engine {
	return &Engine{
		m:            m,
		scenarioName: scenarioName,
		stream:       stream,
		seeded:       seeded,
		routeWaits:   map[string]*routeWait{},
	}
}

func (e *Engine) Time() clock.Tick      { return e.now }
func (e *Engine) Map() *scenario.Map    { return e.m }
func (e *Engine) ScenarioName() string  { return e.scenarioName }
func (e *Engine) Seeded() bool          { return e.seeded }
func (e *Engine) Seed() uint64          { return e.stream.Seed() }
func (e *Engine) PendingTrips() int     { return len(e.pending) }

// ScheduleTrip adds one future trip. Travel time is computed now, from
// map speeds and the engine's stream, so that advancing is pure clockwork
// afterwards. Transit trips also draw a boarding wait from the route's
// headway, recorded against the route when the trip completes.
func (e *Engine) ScheduleTrip(mode scenario.TripMode, route string, depart clock.Tick, distanceM int64) error {
	speed, err := e.m.Speed(mode)
	if err != nil {
		return err
	}
	travel := clock.Seconds(int64(math.Ceil(float64(distanceM) / speed)))

	var wait clock.Duration
	if mode == scenario.ModeTransit {
		headway, err := e.m.Headway(route)
		if err != nil {
			return err
		}
		wait = e.stream.DurationIn(0, clock.Seconds(headway))
	}

	e.nextAgent++
	e.pending = append(e.pending, pendingTrip{
		Agent:  e.nextAgent,
		Mode:   mode,
		Route:  route,
		Depart: depart,
		Arrive: depart.Add(wait).Add(travel),
		Wait:   wait,
	})
	e.unsorted = true
	return nil
}

// sortPending orders trips by arrival so Advance can complete a prefix.
// Ties break on agent ID to keep completion order reproducible.
func (e *Engine) sortPending() {
	sort.Slice(e.pending, func(i, j int) bool {
		if e.pending[i].Arrive != e.pending[j].Arrive {
			return e.pending[i].Arrive < e.pending[j].Arrive
		}
		return e.pending[i].Agent < e.pending[j].Agent
	})
}

// Advance moves the clock forward by step and completes every trip whose
// arrival falls within the new window. A step either completes fully or
// not at all; there is no partially-advanced state to observe.
func (e *Engine) Advance(step clock.Duration) {
	if step <= 0 {
		return
	}
	if e.unsorted {
		e.sortPending()
		e.unsorted = false
	}
	e.now = e.now.Add(step)

	done := 0
	for done < len(e.pending) && e.pending[done].Arrive <= e.now {
		t := e.pending[done]
		e.finished = append(e.finished, TripRecord{
			Agent:    t.Agent,
			Mode:     t.Mode,
			Duration: t.Arrive.Sub(t.Depart),
		})
		if t.Route != "" {
			w := e.routeWaits[t.Route]
			if w == nil {
				w = &routeWait{}
				e.routeWaits[t.Route] = w
			}
			w.Total += t.Wait
			w.Count++
		}
		if t.Arrive > clock.EndOfDay {
			e.lateDone++
		}
		done++
	}
	e.pending = e.pending[done:]
}

// Done reports engine completion: no scheduled trips remain.
func (e *Engine) Done() bool {
	return len(e.pending) == 0
}

// CollectFinishedTrips drains trips completed since the last call, in
// completion order.
func (e *Engine) CollectFinishedTrips() []TripRecord {
	out := e.finished
	e.finished = nil
	return out
}

// Badness measures induced congestion: the number of trips that did not
// finish within the end-of-day horizon, whether still pending or
// completed late.
func (e *Engine) Badness() int {
	n := e.lateDone
	for _, t := range e.pending {
		if t.Arrive > clock.EndOfDay {
			n++
		}
	}
	return n
}

// RouteWaits returns the average boarding wait observed per transit
// route over completed trips so far.
func (e *Engine) RouteWaits() map[string]clock.Duration {
	out := map[string]clock.Duration{}
	for route, w := range e.routeWaits {
		if w.Count > 0 {
			out[route] = clock.Duration(int64(w.Total) / w.Count)
		}
	}
	return out
}

func (e *Engine) String() string {
	return fmt.Sprintf("engine{%s %s t=%s pending=%d}", e.m.Name, e.scenarioName, e.now, len(e.pending))
}
