package clock_test

import (
	"testing"

	"github.com/mwebber/citysim/internal/clock"
)

func TestParseFormats(t *testing.T) {
	cases := map[string]clock.Tick{
		"00:00:00": 0,
		"00:00:30": 30,
		"06:30:00": 6*3600 + 30*60,
		"30:00":    1800,
		"90":       90,
	}
	for in, want := range cases {
		got, err := clock.Parse(in)
		if err != nil {
			t.Errorf("Parse(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("Parse(%q): got %d, want %d", in, got, want)
		}
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "abc", "1:2:3:4", "-30", "12:xx:00"} {
		if _, err := clock.Parse(in); err == nil {
			t.Errorf("Parse(%q): expected error", in)
		}
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, tick := range []clock.Tick{0, 1, 59, 60, 3599, 3600, 12345, clock.EndOfDay - 1} {
		got, err := clock.Parse(tick.Format())
		if err != nil {
			t.Fatalf("Parse(Format(%d)): %v", tick, err)
		}
		if got != tick {
			t.Errorf("round trip: got %d, want %d", got, tick)
		}
	}
}

func TestArithmetic(t *testing.T) {
	start := clock.FromSeconds(100)
	later := start.Add(clock.Minutes(2))
	if later != 220 {
		t.Errorf("Add: got %d, want 220", later)
	}
	if later.Sub(start) != clock.Seconds(120) {
		t.Errorf("Sub: got %v", later.Sub(start))
	}
	if !(start < later) {
		t.Error("expected start < later")
	}
}

func TestEndOfDay(t *testing.T) {
	if clock.EndOfDay.Format() != "24:00:00" {
		t.Errorf("EndOfDay format: got %q", clock.EndOfDay.Format())
	}
}

func TestDurationString(t *testing.T) {
	cases := map[clock.Duration]string{
		clock.Seconds(5):   "5s",
		clock.Seconds(90):  "1m30s",
		clock.Hours(1) + clock.Seconds(61): "1h1m1s",
		clock.Seconds(-30): "-30s",
	}
	for d, want := range cases {
		if got := d.String(); got != want {
			t.Errorf("%d.String(): got %q, want %q", d, got, want)
		}
	}
}
