package dataset

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Field is a canonical video record field.
type Field string

const (
	FieldTitle       Field = "title"
	FieldCategory    Field = "category"
	FieldViews       Field = "views"
	FieldLikes       Field = "likes"
	FieldComments    Field = "comments"
	FieldDuration    Field = "duration"
	FieldSubscribers Field = "subscribers"
)

// Fields lists canonical fields in resolution order.
var Fields = []Field{
	FieldTitle,
	FieldCategory,
	FieldViews,
	FieldLikes,
	FieldComments,
	FieldDuration,
	FieldSubscribers,
}

// ParseField maps a field name (any case) to its canonical Field.
func ParseField(name string) (Field, bool) {
	n := Field(NormalizeHeader(name))
	for _, f := range Fields {
		if f == n {
			return f, true
		}
	}
	return "", false
}

// AliasTable maps each canonical field to the header names accepted for it.
type AliasTable map[Field][]string

// DefaultAliases returns a fresh copy of the built-in alias table.
func DefaultAliases() AliasTable {
	return AliasTable{
		FieldTitle:       {"title", "video_title"},
		FieldCategory:    {"category", "channel_title", "channeltitle", "category_name"},
		FieldViews:       {"views", "view_count", "viewcount"},
		FieldLikes:       {"likes", "like_count", "likecount"},
		FieldComments:    {"comments", "comment_count", "commentcount"},
		FieldDuration:    {"duration", "video_length", "length"},
		FieldSubscribers: {"subscribers", "subscriber_count"},
	}
}

// Merge returns a copy of t with extra aliases appended after the existing
// ones. Keys of extra are field names; unknown names are rejected.
func (t AliasTable) Merge(extra map[string][]string) (AliasTable, error) {
	out := make(AliasTable, len(t))
	for f, names := range t {
		out[f] = append([]string(nil), names...)
	}
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		f, ok := ParseField(k)
		if !ok {
			return nil, fmt.Errorf("unknown field in aliases: %q", k)
		}
		for _, name := range extra[k] {
			if NormalizeHeader(name) == "" {
				continue
			}
			out[f] = append(out[f], name)
		}
	}
	return out, nil
}

var headerSeps = regexp.MustCompile(`[\s\-]+`)

// NormalizeHeader folds a header for alias comparison: lowercased, trimmed,
// with runs of whitespace or hyphens collapsed to a single underscore.
func NormalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	return headerSeps.ReplaceAllString(h, "_")
}

// ColumnMapping maps a canonical field to the source header that feeds it.
// Fields with no matching header are absent.
type ColumnMapping map[Field]string

// Header returns the source header for f.
func (m ColumnMapping) Header(f Field) (string, bool) {
	h, ok := m[f]
	return h, ok
}

// Missing lists fields with no source header, in canonical order.
func (m ColumnMapping) Missing() []Field {
	var out []Field
	for _, f := range Fields {
		if _, ok := m[f]; !ok {
			out = append(out, f)
		}
	}
	return out
}

// Resolve matches headers to canonical fields. For each field the first
// header (in input order) whose normalized form is an accepted alias wins.
// A header feeds at most one field.
func Resolve(headers []string, aliases AliasTable) ColumnMapping {
	if aliases == nil {
		aliases = DefaultAliases()
	}
	norm := make([]string, len(headers))
	for i, h := range headers {
		norm[i] = NormalizeHeader(h)
	}
	claimed := make([]bool, len(headers))
	m := ColumnMapping{}
	for _, f := range Fields {
		accepted := make(map[string]struct{}, len(aliases[f]))
		for _, a := range aliases[f] {
			accepted[NormalizeHeader(a)] = struct{}{}
		}
		for i, h := range norm {
			if claimed[i] || h == "" {
				continue
			}
			if _, ok := accepted[h]; ok {
				m[f] = headers[i]
				claimed[i] = true
				break
			}
		}
	}
	return m
}
