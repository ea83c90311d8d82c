// Package report renders a run's aggregated statistics for the console
// or for machine consumption.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/mwebber/citysim/internal/result"
	"github.com/mwebber/citysim/internal/scenario"
	"github.com/mwebber/citysim/internal/stats"
)

type modeRow struct {
	Mode  scenario.TripMode `json:"mode"`
	Stats stats.Stats       `json:"stats"`
}

// Generate reads a run directory's stats and writes a summary in the
// requested format (table, markdown, or json).
func Generate(runDir, format string, w io.Writer) error {
	rs, err := result.ReadStats(filepath.Join(runDir, "stats.yaml"))
	if err != nil {
		return err
	}

	rows := sortRows(rs)

	switch format {
	case "markdown":
		return writeMarkdown(rows, rs, w)
	case "json":
		return writeJSON(rows, w)
	default:
		return writeTable(rows, rs, w)
	}
}

// sortRows orders modes canonically (walk, bike, transit, drive) with any
// stragglers after, so reports are stable run to run.
func sortRows(rs *result.RunStats) []modeRow {
	rank := map[scenario.TripMode]int{}
	for i, m := range scenario.Modes() {
		rank[m] = i
	}
	var rows []modeRow
	for mode, s := range rs.ByMode {
		rows = append(rows, modeRow{Mode: mode, Stats: s})
	}
	sort.Slice(rows, func(i, j int) bool {
		ri, iKnown := rank[rows[i].Mode]
		rj, jKnown := rank[rows[j].Mode]
		if iKnown && jKnown {
			return ri < rj
		}
		if iKnown != jKnown {
			return iKnown
		}
		return rows[i].Mode < rows[j].Mode
	})
	return rows
}

func writeTable(rows []modeRow, rs *result.RunStats, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MODE\tTRIPS\tP50\tP90\tMEAN")
	fmt.Fprintln(tw, strings.Repeat("-", 48))
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n",
			r.Mode, r.Stats.Count, r.Stats.P50, r.Stats.P90, r.Stats.Mean)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	writeWaits(rs, w)
	return nil
}

func writeMarkdown(rows []modeRow, rs *result.RunStats, w io.Writer) error {
	fmt.Fprintln(w, "| Mode | Trips | P50 | P90 | Mean |")
	fmt.Fprintln(w, "|---|---|---|---|---|")
	for _, r := range rows {
		fmt.Fprintf(w, "| %s | %d | %s | %s | %s |\n",
			r.Mode, r.Stats.Count, r.Stats.P50, r.Stats.P90, r.Stats.Mean)
	}
	writeWaits(rs, w)
	return nil
}

func writeJSON(rows []modeRow, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func writeWaits(rs *result.RunStats, w io.Writer) {
	if len(rs.RouteWaits) == 0 {
		return
	}
	var routes []string
	for route := range rs.RouteWaits {
		routes = append(routes, route)
	}
	sort.Strings(routes)
	fmt.Fprintln(w)
	for _, route := range routes {
		fmt.Fprintf(w, "route %s: avg wait %ds\n", route, rs.RouteWaits[route])
	}
}
