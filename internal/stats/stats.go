// Package stats summarizes trip ledgers into per-mode duration
// statistics. Aggregation is order-independent: any permutation of the
// same records yields identical results.
package stats

import (
	"sort"

	"github.com/mwebber/citysim/internal/clock"
	"github.com/mwebber/citysim/internal/scenario"
	"github.com/mwebber/citysim/internal/sim"
)

// Histogram accumulates observed durations for one mode. Insertion is
// commutative; nothing about the final statistics depends on the order
// durations arrive in.
type Histogram struct {
	durations []clock.Duration
}

func (h *Histogram) Add(d clock.Duration) {
	h.durations = append(h.durations, d)
}

func (h *Histogram) Count() int {
	return len(h.durations)
}

// Stats is an immutable summary derived from a histogram.
type Stats struct {
	Count int64          `json:"count" yaml:"count"`
	Min   clock.Duration `json:"min_s" yaml:"min_s"`
	Max   clock.Duration `json:"max_s" yaml:"max_s"`
	P50   clock.Duration `json:"p50_s" yaml:"p50_s"`
	P90   clock.Duration `json:"p90_s" yaml:"p90_s"`
	Mean  clock.Duration `json:"mean_s" yaml:"mean_s"`
}

// Stats reduces the histogram. Calling it on an empty histogram returns
// the zero Stats; callers aggregating a ledger skip empty modes entirely.
func (h *Histogram) Stats() Stats {
	n := len(h.durations)
	if n == 0 {
		return Stats{}
	}
	sorted := make([]clock.Duration, n)
	copy(sorted, h.durations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var total int64
	for _, d := range sorted {
		total += int64(d)
	}
	return Stats{
		Count: int64(n),
		Min:   sorted[0],
		Max:   sorted[n-1],
		P50:   percentile(sorted, 50),
		P90:   percentile(sorted, 90),
		Mean:  clock.Duration(total / int64(n)),
	}
}

// percentile uses the nearest-rank definition over a sorted slice.
func percentile(sorted []clock.Duration, p int) clock.Duration {
	rank := (p*len(sorted) + 99) / 100
	if rank < 1 {
		rank = 1
	}
	if rank > len(sorted) {
		rank = len(sorted)
	}
	return sorted[rank-1]
}

// Aggregate partitions a ledger by mode and reduces each partition. An
// empty ledger yields an empty map, not zero-filled entries.
func Aggregate(l *sim.TripLedger) map[scenario.TripMode]Stats {
	byMode := map[scenario.TripMode]*Histogram{}
	for _, t := range l.All() {
		h := byMode[t.Mode]
		if h == nil {
			h = &Histogram{}
			byMode[t.Mode] = h
		}
		h.Add(t.Duration)
	}
	out := map[scenario.TripMode]Stats{}
	for mode, h := range byMode {
		out[mode] = h.Stats()
	}
	return out
}
