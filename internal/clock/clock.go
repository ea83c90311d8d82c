// Package clock provides the simulated-time types shared by the engine,
// the driver and the demand spawner. A Tick counts whole simulated seconds
// since the start of the run; a Duration is a span of simulated seconds.
package clock

import (
	"fmt"
	"strconv"
	"strings"
)

type Tick int64

type Duration int64

const (
	Zero Tick = 0

	// EndOfDay is the horizon used by baseline recording: a full 24h of
	// simulated time.
	EndOfDay Tick = 24 * 60 * 60
)

func FromSeconds(n int64) Tick {
	return Tick(n)
}

func Seconds(n int64) Duration {
	return Duration(n)
}

func Minutes(n int64) Duration {
	return Duration(n * 60)
}

func Hours(n int64) Duration {
	return Duration(n * 3600)
}

// Add advances the tick. Overflow is a programming error, not an input
// error; it cannot occur for in-range simulated days.
func (t Tick) Add(d Duration) Tick {
	out := t + Tick(d)
	if d > 0 && out < t {
		panic("clock: tick overflow")
	}
	return out
}

// SinceStart returns the span between t and the run start.
func (t Tick) SinceStart() Duration {
	return Duration(t)
}

// Sub returns the span from earlier to t.
func (t Tick) Sub(earlier Tick) Duration {
	return Duration(t - earlier)
}

func (t Tick) Format() string {
	s := int64(t)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s/60)%60, s%60)
}

func (t Tick) String() string {
	return t.Format()
}

// Parse accepts "hh:mm:ss", "mm:ss", or a bare number of seconds.
// Callers should treat failure as a configuration error to report, not a
// reason to abort the process.
func Parse(text string) (Tick, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Zero, fmt.Errorf("empty time string")
	}
	parts := strings.Split(text, ":")
	if len(parts) > 3 {
		return Zero, fmt.Errorf("malformed time %q", text)
	}
	var total int64
	for _, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil || n < 0 {
			return Zero, fmt.Errorf("malformed time %q", text)
		}
		total = total*60 + n
	}
	return Tick(total), nil
}

func (d Duration) Seconds() int64 {
	return int64(d)
}

func (d Duration) String() string {
	s := int64(d)
	neg := ""
	if s < 0 {
		neg = "-"
		s = -s
	}
	switch {
	case s >= 3600:
		return fmt.Sprintf("%s%dh%dm%ds", neg, s/3600, (s/60)%60, s%60)
	case s >= 60:
		return fmt.Sprintf("%s%dm%ds", neg, s/60, s%60)
	default:
		return fmt.Sprintf("%s%ds", neg, s)
	}
}
