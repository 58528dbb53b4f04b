package dataset

import "strings"

const (
	DefaultTitle    = "Untitled"
	DefaultCategory = "Uncategorized"
)

// RawRow maps a source header to its cell value.
type RawRow map[string]string

// VideoRecord is one normalized input row. Numeric fields are never
// negative; values that could not be read are zero and listed in Fallbacks.
type VideoRecord struct {
	Title          string  `json:"title"`
	Category       string  `json:"category"`
	Views          int64   `json:"views"`
	Likes          int64   `json:"likes"`
	Comments       int64   `json:"comments"`
	DurationMin    float64 `json:"duration_minutes"`
	HasDuration    bool    `json:"has_duration"`
	Subscribers    int64   `json:"subscribers,omitempty"`
	HasSubscribers bool    `json:"has_subscribers"`
	Fallbacks      []Field `json:"fallbacks,omitempty"`
}

// FellBack reports whether f was defaulted during normalization.
func (r VideoRecord) FellBack(f Field) bool {
	for _, x := range r.Fallbacks {
		if x == f {
			return true
		}
	}
	return false
}

// Normalizer turns raw rows into VideoRecords using a resolved mapping.
type Normalizer struct {
	Mapping      ColumnMapping
	Number       NumberFormat
	DurationUnit DurationUnit
}

// Normalize never fails. Missing or malformed values are replaced with
// defaults and recorded in the record's Fallbacks.
func (n Normalizer) Normalize(row RawRow) VideoRecord {
	var rec VideoRecord
	fallback := func(f Field) { rec.Fallbacks = append(rec.Fallbacks, f) }

	if v, ok := n.text(row, FieldTitle); ok {
		rec.Title = v
	} else {
		rec.Title = DefaultTitle
		fallback(FieldTitle)
	}
	if v, ok := n.text(row, FieldCategory); ok {
		rec.Category = v
	} else {
		rec.Category = DefaultCategory
		fallback(FieldCategory)
	}

	for _, c := range []struct {
		f   Field
		dst *int64
	}{
		{FieldViews, &rec.Views},
		{FieldLikes, &rec.Likes},
		{FieldComments, &rec.Comments},
	} {
		v, fb := ParseCount(n.cell(row, c.f), n.Number)
		*c.dst = v
		if fb {
			fallback(c.f)
		}
	}

	if d, ok := ParseDuration(n.cell(row, FieldDuration), n.DurationUnit, n.Number); ok {
		rec.DurationMin = d
		rec.HasDuration = true
	} else {
		fallback(FieldDuration)
	}

	// Subscribers are optional; only a present-but-bad value is a fallback.
	if raw := n.cell(row, FieldSubscribers); strings.TrimSpace(raw) != "" {
		v, fb := ParseCount(raw, n.Number)
		rec.Subscribers = v
		rec.HasSubscribers = !fb
		if fb {
			fallback(FieldSubscribers)
		}
	}
	return rec
}

func (n Normalizer) cell(row RawRow, f Field) string {
	h, ok := n.Mapping.Header(f)
	if !ok {
		return ""
	}
	return row[h]
}

func (n Normalizer) text(row RawRow, f Field) (string, bool) {
	v := strings.TrimSpace(n.cell(row, f))
	return v, v != ""
}
