package dataset

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DurationUnit is the unit assumed for plain numeric duration cells.
type DurationUnit string

const (
	UnitMinutes DurationUnit = "minutes"
	UnitSeconds DurationUnit = "seconds"
)

// ParseDurationUnit accepts "minutes"/"min"/"m" and "seconds"/"sec"/"s".
func ParseDurationUnit(s string) (DurationUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "minutes", "minute", "min", "m":
		return UnitMinutes, nil
	case "seconds", "second", "sec", "s":
		return UnitSeconds, nil
	default:
		return "", fmt.Errorf("unsupported duration unit: %s (use minutes|seconds)", s)
	}
}

// ISO-8601 duration as returned by the YouTube Data API, e.g. PT1H2M3S.
var isoDuration = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)

// clockPart is one HH, MM or SS field; only digits with an optional fraction.
var clockPart = regexp.MustCompile(`^\d+(?:\.\d+)?$`)

// ParseDuration converts a duration cell to minutes. Supported forms are
// HH:MM:SS, MM:SS, ISO-8601 (PT#H#M#S) and plain numbers in unit.
// ok is false for blank or unparseable input.
func ParseDuration(s string, unit DurationUnit, nf NumberFormat) (minutes float64, ok bool) {
	raw := strings.ToUpper(cleanNumber(s))
	if raw == "" {
		return 0, false
	}
	if strings.Contains(raw, ":") {
		secs, ok := parseClock(raw)
		if !ok {
			return 0, false
		}
		return secs / 60, true
	}
	if strings.HasPrefix(raw, "P") {
		secs, ok := parseISODuration(raw)
		if !ok {
			return 0, false
		}
		return secs / 60, true
	}
	// Same separator reading as counts: "1,234" is a grouped integer.
	if nf.DecimalSeparator == 0 && groupedInt.MatchString(raw) {
		raw = strings.NewReplacer(",", "", ".", "", " ", "", "'", "").Replace(raw)
	}
	f, ok := parseNumber(raw, nf)
	if !ok || f < 0 {
		return 0, false
	}
	if unit == UnitSeconds {
		return f / 60, true
	}
	return f, true
}

func parseClock(raw string) (float64, bool) {
	parts := strings.Split(raw, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}
	var secs float64
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if !clockPart.MatchString(p) {
			return 0, false
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, false
		}
		secs = secs*60 + v
	}
	return secs, true
}

func parseISODuration(raw string) (float64, bool) {
	m := isoDuration.FindStringSubmatch(raw)
	if m == nil {
		return 0, false
	}
	if m[1] == "" && m[2] == "" && m[3] == "" && m[4] == "" {
		return 0, false
	}
	var secs float64
	for i, mult := range []float64{86400, 3600, 60, 1} {
		if m[i+1] == "" {
			continue
		}
		v, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return 0, false
		}
		secs += v * mult
	}
	return secs, true
}
