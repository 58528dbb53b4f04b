// Package metrics aggregates normalized video records into totals and
// per-category and per-length statistics.
package metrics

import (
	"github.com/KaramelBytes/tubestats-cli/internal/dataset"
)

// EngagementRate is (likes + comments) / views, or 0 when views is 0.
func EngagementRate(likes, comments, views int64) float64 {
	if views <= 0 {
		return 0
	}
	return float64(likes+comments) / float64(views)
}

// Stats are the aggregates for one group of records.
type Stats struct {
	Key           string  `json:"key"`
	Videos        int     `json:"videos"`
	TotalViews    int64   `json:"total_views"`
	TotalLikes    int64   `json:"total_likes"`
	TotalComments int64   `json:"total_comments"`
	AvgViews      float64 `json:"avg_views"`
	AvgLikes      float64 `json:"avg_likes"`
	AvgComments   float64 `json:"avg_comments"`
	// EngagementRate is pooled over the group's totals.
	EngagementRate float64 `json:"engagement_rate"`
	// AvgEngagementRate is the mean of per-record rates, zero-view records excluded.
	AvgEngagementRate float64 `json:"avg_engagement_rate"`
	AvgDurationMin    float64 `json:"avg_duration_minutes"`
}

// Totals are dataset-wide sums.
type Totals struct {
	Videos         int   `json:"videos"`
	Views          int64 `json:"views"`
	Likes          int64 `json:"likes"`
	Comments       int64 `json:"comments"`
	Subscribers    int64 `json:"subscribers,omitempty"`
	HasSubscribers bool  `json:"has_subscribers"`
}

// Summary is the full output of Compute.
type Summary struct {
	Totals Totals `json:"totals"`
	// AvgEngagementRate is the mean per-record rate over records with views.
	AvgEngagementRate float64 `json:"avg_engagement_rate"`
	EngagementRate    float64 `json:"engagement_rate"`
	AvgDurationMin    float64 `json:"avg_duration_minutes"`
	// Categories and Lengths are in first-encounter order.
	Categories []Stats `json:"categories"`
	Lengths    []Stats `json:"lengths"`
	// BucketOrder is the configured presentation order of length labels.
	BucketOrder []string `json:"bucket_order"`
}

// Empty reports whether no records were aggregated.
func (s Summary) Empty() bool { return s.Totals.Videos == 0 }

// Category looks up a category group by key.
func (s Summary) Category(key string) (Stats, bool) { return find(s.Categories, key) }

// Length looks up a length bucket group by label.
func (s Summary) Length(key string) (Stats, bool) { return find(s.Lengths, key) }

func find(groups []Stats, key string) (Stats, bool) {
	for _, g := range groups {
		if g.Key == key {
			return g, true
		}
	}
	return Stats{}, false
}

// Compute aggregates records in one pass. Every record contributes to
// exactly one category group and one length group.
func Compute(records []dataset.VideoRecord, buckets Buckets) Summary {
	if len(buckets) == 0 {
		buckets = DefaultBuckets()
	}
	s := Summary{BucketOrder: buckets.Labels()}
	all := &acc{}
	cats := newGroups()
	lengths := newGroups()
	for _, r := range records {
		all.add(r)
		cats.add(r.Category, r)
		lengths.add(buckets.Assign(r.DurationMin, r.HasDuration), r)
		if r.HasSubscribers {
			s.Totals.Subscribers += r.Subscribers
			s.Totals.HasSubscribers = true
		}
	}
	overall := all.stats("")
	s.Totals.Videos = overall.Videos
	s.Totals.Views = overall.TotalViews
	s.Totals.Likes = overall.TotalLikes
	s.Totals.Comments = overall.TotalComments
	s.AvgEngagementRate = overall.AvgEngagementRate
	s.EngagementRate = overall.EngagementRate
	s.AvgDurationMin = overall.AvgDurationMin
	s.Categories = cats.stats()
	s.Lengths = lengths.stats()
	return s
}

// acc is a running accumulator for one group.
type acc struct {
	n                      int
	views, likes, comments int64
	rated                  int
	rateSum                float64
	timed                  int
	durSum                 float64
}

func (a *acc) add(r dataset.VideoRecord) {
	a.n++
	a.views += r.Views
	a.likes += r.Likes
	a.comments += r.Comments
	if r.Views > 0 {
		a.rated++
		a.rateSum += EngagementRate(r.Likes, r.Comments, r.Views)
	}
	if r.HasDuration {
		a.timed++
		a.durSum += r.DurationMin
	}
}

func (a *acc) stats(key string) Stats {
	st := Stats{
		Key:            key,
		Videos:         a.n,
		TotalViews:     a.views,
		TotalLikes:     a.likes,
		TotalComments:  a.comments,
		EngagementRate: EngagementRate(a.likes, a.comments, a.views),
	}
	if a.n > 0 {
		n := float64(a.n)
		st.AvgViews = float64(a.views) / n
		st.AvgLikes = float64(a.likes) / n
		st.AvgComments = float64(a.comments) / n
	}
	if a.rated > 0 {
		st.AvgEngagementRate = a.rateSum / float64(a.rated)
	}
	if a.timed > 0 {
		st.AvgDurationMin = a.durSum / float64(a.timed)
	}
	return st
}

// groups is an insertion-ordered map of accumulators.
type groups struct {
	order []string
	byKey map[string]*acc
}

func newGroups() *groups { return &groups{byKey: map[string]*acc{}} }

func (g *groups) add(key string, r dataset.VideoRecord) {
	a, ok := g.byKey[key]
	if !ok {
		a = &acc{}
		g.byKey[key] = a
		g.order = append(g.order, key)
	}
	a.add(r)
}

func (g *groups) stats() []Stats {
	out := make([]Stats, 0, len(g.order))
	for _, k := range g.order {
		out = append(out, g.byKey[k].stats(k))
	}
	return out
}
