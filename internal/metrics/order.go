package metrics

import (
	"sort"

	"github.com/samber/lo"
)

// CategoriesByAvgViews returns category groups sorted by average views,
// highest first. Ties keep first-encounter order.
func (s Summary) CategoriesByAvgViews() []Stats {
	out := append([]Stats(nil), s.Categories...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].AvgViews > out[j].AvgViews })
	return out
}

// LengthsInBucketOrder returns non-empty length groups in configured bucket
// order, with UnknownBucket last.
func (s Summary) LengthsInBucketOrder() []Stats {
	out := append([]Stats(nil), s.Lengths...)
	rank := func(key string) int {
		if i := lo.IndexOf(s.BucketOrder, key); i >= 0 {
			return i
		}
		return len(s.BucketOrder)
	}
	sort.SliceStable(out, func(i, j int) bool { return rank(out[i].Key) < rank(out[j].Key) })
	return out
}
