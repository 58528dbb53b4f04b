package dataset

import (
	"math"
	"testing"
)

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in   string
		unit DurationUnit
		want float64
		ok   bool
	}{
		{"3", UnitMinutes, 3, true},
		{"7.5", UnitMinutes, 7.5, true},
		{"90", UnitSeconds, 1.5, true},
		{"4:30", UnitMinutes, 4.5, true},
		{"1:02:00", UnitMinutes, 62, true},
		{"PT1H2M30S", UnitMinutes, 62.5, true},
		{"PT45S", UnitMinutes, 0.75, true},
		{"pt10m", UnitMinutes, 10, true},
		{"P1DT1M", UnitMinutes, 1441, true},
		{"PT", UnitMinutes, 0, false},
		{"1:xx", UnitMinutes, 0, false},
		{"1:2:3:4", UnitMinutes, 0, false},
		{"", UnitMinutes, 0, false},
		{"unknown", UnitMinutes, 0, false},
		{"-3", UnitMinutes, 0, false},
		{"inf:00", UnitMinutes, 0, false},
		{"nan:30", UnitMinutes, 0, false},
		{"Infinity:00:00", UnitMinutes, 0, false},
		{"1:-5", UnitMinutes, 0, false},
		{"1:30.5", UnitMinutes, 90.5 / 60, true},
		{"1,234", UnitSeconds, 1234.0 / 60, true},
		{"1.234.567", UnitMinutes, 1234567, true},
		{"1,5", UnitMinutes, 1.5, true},
	}
	for _, c := range cases {
		got, ok := ParseDuration(c.in, c.unit, NumberFormat{})
		if ok != c.ok || math.Abs(got-c.want) > 1e-9 {
			t.Errorf("ParseDuration(%q, %s) = (%v, %v), want (%v, %v)", c.in, c.unit, got, ok, c.want, c.ok)
		}
	}
}

func TestParseDurationUnit(t *testing.T) {
	if u, err := ParseDurationUnit("Seconds"); err != nil || u != UnitSeconds {
		t.Fatalf("expected seconds, got %q err=%v", u, err)
	}
	if u, err := ParseDurationUnit(""); err != nil || u != UnitMinutes {
		t.Fatalf("expected minutes default, got %q err=%v", u, err)
	}
	if _, err := ParseDurationUnit("hours"); err == nil {
		t.Fatalf("expected error for unsupported unit")
	}
}
