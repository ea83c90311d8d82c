package sim

import (
	"github.com/mwebber/citysim/internal/clock"
	"github.com/mwebber/citysim/internal/scenario"
)

// AgentID identifies one traveling agent within a run.
type AgentID int64

// TripRecord is one completed journey. Records are emitted exactly once
// when a trip finishes and never mutated afterwards.
type TripRecord struct {
	Agent    AgentID           `json:"agent"`
	Mode     scenario.TripMode `json:"mode"`
	Duration clock.Duration    `json:"duration_s"`
}

// TripLedger is the append-only completion history of a single run.
// Insertion order is completion order; aggregation treats it as a set.
type TripLedger struct {
	trips []TripRecord
}

func NewLedger() *TripLedger {
	return &TripLedger{}
}

func (l *TripLedger) Record(t TripRecord) {
	l.trips = append(l.trips, t)
}

// All returns the recorded trips in completion order. The returned slice
// is a copy; the ledger itself has no removal operation.
func (l *TripLedger) All() []TripRecord {
	out := make([]TripRecord, len(l.trips))
	copy(out, l.trips)
	return out
}

func (l *TripLedger) Len() int {
	return len(l.trips)
}
