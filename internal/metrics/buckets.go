package metrics

import (
	"errors"
	"fmt"
	"strings"
)

// UnknownBucket collects records whose duration could not be read.
const UnknownBucket = "Unknown"

// Bucket is a length category covering durations up to MaxMinutes
// (inclusive). MaxMinutes <= 0 marks the open-ended last bucket.
type Bucket struct {
	Label      string  `json:"label" yaml:"label" mapstructure:"label"`
	MaxMinutes float64 `json:"max_minutes" yaml:"max_minutes" mapstructure:"max_minutes"`
}

// Buckets are ordered by ascending MaxMinutes.
type Buckets []Bucket

// DefaultBuckets returns the standard short/medium/long/very long split.
func DefaultBuckets() Buckets {
	return Buckets{
		{Label: "Short (0-5 min)", MaxMinutes: 5},
		{Label: "Medium (5-15 min)", MaxMinutes: 15},
		{Label: "Long (15-30 min)", MaxMinutes: 30},
		{Label: "Very Long (30+ min)"},
	}
}

// Validate checks labels are unique and bounds strictly increase.
func (b Buckets) Validate() error {
	if len(b) == 0 {
		return errors.New("length buckets: at least one bucket is required")
	}
	seen := map[string]struct{}{}
	prev := -1.0
	for i, bk := range b {
		label := strings.TrimSpace(bk.Label)
		if label == "" {
			return fmt.Errorf("length buckets: bucket %d has no label", i+1)
		}
		if strings.EqualFold(label, UnknownBucket) {
			return fmt.Errorf("length buckets: label %q is reserved", UnknownBucket)
		}
		if _, dup := seen[label]; dup {
			return fmt.Errorf("length buckets: duplicate label %q", label)
		}
		seen[label] = struct{}{}
		if bk.MaxMinutes <= 0 {
			if i != len(b)-1 {
				return fmt.Errorf("length buckets: only the last bucket may be open-ended (%q)", label)
			}
			continue
		}
		if bk.MaxMinutes <= prev {
			return fmt.Errorf("length buckets: max_minutes must increase (%q)", label)
		}
		prev = bk.MaxMinutes
	}
	return nil
}

// Assign returns the bucket label for a duration. Durations past the last
// bounded bucket fall into the last bucket; unknown durations into UnknownBucket.
func (b Buckets) Assign(minutes float64, known bool) string {
	if !known || len(b) == 0 {
		return UnknownBucket
	}
	for _, bk := range b {
		if bk.MaxMinutes <= 0 || minutes <= bk.MaxMinutes {
			return bk.Label
		}
	}
	return b[len(b)-1].Label
}

// Labels returns bucket labels in order followed by UnknownBucket.
func (b Buckets) Labels() []string {
	out := make([]string, 0, len(b)+1)
	for _, bk := range b {
		out = append(out, bk.Label)
	}
	return append(out, UnknownBucket)
}
