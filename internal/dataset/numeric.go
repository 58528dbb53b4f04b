package dataset

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// NumberFormat pins the separators used in numeric cells. A zero rune means
// auto-detect per value.
type NumberFormat struct {
	DecimalSeparator   rune
	ThousandsSeparator rune
}

var groupedInt = regexp.MustCompile(`^[0-9]{1,3}(?:[,. '][0-9]{3})+$`)

// ParseCount parses a non-negative integer count. It never fails: blank,
// malformed, negative or non-finite input yields 0 with fellBack set.
// Fractional values are truncated.
func ParseCount(s string, nf NumberFormat) (n int64, fellBack bool) {
	raw := cleanNumber(s)
	if raw == "" {
		return 0, true
	}
	// "1,234" or "1.234.567" is a grouped integer, not a decimal.
	if nf.DecimalSeparator == 0 && groupedInt.MatchString(raw) {
		raw = strings.NewReplacer(",", "", ".", "", " ", "", "'", "").Replace(raw)
	}
	f, ok := parseNumber(raw, nf)
	if !ok || f < 0 || f >= math.MaxInt64 {
		return 0, true
	}
	return int64(f), false
}

func cleanNumber(s string) string {
	raw := strings.ReplaceAll(s, "\u00A0", " ")
	raw = strings.TrimSpace(raw)
	raw = strings.Trim(raw, `"`)
	return strings.TrimSpace(raw)
}

// parseNumber handles locale separators. With no pinned decimal separator the
// right-most of ',' and '.' is taken as the decimal mark.
func parseNumber(s string, nf NumberFormat) (float64, bool) {
	raw := cleanNumber(s)
	if raw == "" {
		return 0, false
	}
	dec := nf.DecimalSeparator
	thou := nf.ThousandsSeparator
	if dec == 0 {
		cpos := strings.LastIndex(raw, ",")
		dpos := strings.LastIndex(raw, ".")
		if cpos >= 0 && dpos >= 0 {
			if cpos > dpos {
				dec = ','
				thou = '.'
			} else {
				dec = '.'
				thou = ','
			}
		} else if cpos >= 0 {
			dec = ','
		} else {
			dec = '.'
		}
	}
	if thou == 0 {
		for _, sep := range []rune{',', '.', ' ', '\''} {
			if sep != dec {
				raw = strings.ReplaceAll(raw, string(sep), "")
			}
		}
	} else if thou != dec {
		raw = strings.ReplaceAll(raw, string(thou), "")
	}
	if dec != '.' {
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
