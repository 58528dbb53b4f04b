package metrics

import (
	"testing"

	"github.com/KaramelBytes/tubestats-cli/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func video(cat string, views, likes, comments int64, minutes float64) dataset.VideoRecord {
	return dataset.VideoRecord{
		Title: cat + " video", Category: cat,
		Views: views, Likes: likes, Comments: comments,
		DurationMin: minutes, HasDuration: true,
	}
}

func scenario() []dataset.VideoRecord {
	return []dataset.VideoRecord{
		video("Entertainment", 1000, 50, 10, 3),
		video("Music", 2000, 180, 20, 8),
		video("Entertainment", 3000, 90, 30, 20),
	}
}

func TestCompute_Scenario(t *testing.T) {
	s := Compute(scenario(), DefaultBuckets())

	assert.Equal(t, 3, s.Totals.Videos)
	assert.Equal(t, int64(6000), s.Totals.Views)
	assert.Equal(t, int64(320), s.Totals.Likes)
	assert.Equal(t, int64(60), s.Totals.Comments)

	ent, ok := s.Category("Entertainment")
	require.True(t, ok)
	assert.Equal(t, 2, ent.Videos)
	assert.InDelta(t, 2000, ent.AvgViews, 1e-9)
	assert.InDelta(t, 0.045, ent.EngagementRate, 1e-9)
	assert.InDelta(t, 0.05, ent.AvgEngagementRate, 1e-9)

	music, ok := s.Category("Music")
	require.True(t, ok)
	assert.InDelta(t, 0.10, music.EngagementRate, 1e-9)

	require.Len(t, s.Lengths, 3)
	for key, views := range map[string]int64{
		"Short (0-5 min)":   1000,
		"Medium (5-15 min)": 2000,
		"Long (15-30 min)":  3000,
	} {
		g, ok := s.Length(key)
		require.True(t, ok, key)
		assert.Equal(t, 1, g.Videos, key)
		assert.Equal(t, views, g.TotalViews, key)
	}

	// mean of 0.06, 0.10, 0.04
	assert.InDelta(t, 0.2/3, s.AvgEngagementRate, 1e-9)
	assert.InDelta(t, 31.0/3, s.AvgDurationMin, 1e-9)
}

func TestCompute_TotalsMatchRecordSums(t *testing.T) {
	recs := append(scenario(),
		video("Gaming", 0, 4, 2, 45),
		dataset.VideoRecord{Category: "Gaming", Views: 77, Likes: 1},
	)
	s := Compute(recs, DefaultBuckets())
	var views, likes, comments int64
	for _, r := range recs {
		views += r.Views
		likes += r.Likes
		comments += r.Comments
	}
	assert.Equal(t, views, s.Totals.Views)
	assert.Equal(t, likes, s.Totals.Likes)
	assert.Equal(t, comments, s.Totals.Comments)
}

func TestCompute_GroupingIsPartition(t *testing.T) {
	recs := append(scenario(),
		video("Gaming", 10, 1, 1, 31),
		dataset.VideoRecord{Category: "Gaming", Views: 5},
	)
	s := Compute(recs, DefaultBuckets())

	var catN, lenN int
	var catViews, lenViews int64
	for _, g := range s.Categories {
		catN += g.Videos
		catViews += g.TotalViews
	}
	for _, g := range s.Lengths {
		lenN += g.Videos
		lenViews += g.TotalViews
	}
	assert.Equal(t, len(recs), catN)
	assert.Equal(t, len(recs), lenN)
	assert.Equal(t, s.Totals.Views, catViews)
	assert.Equal(t, s.Totals.Views, lenViews)

	unknown, ok := s.Length(UnknownBucket)
	require.True(t, ok)
	assert.Equal(t, 1, unknown.Videos)
}

func TestCompute_ZeroViewsEngagement(t *testing.T) {
	recs := []dataset.VideoRecord{
		video("Silent", 0, 5, 5, 1),
		video("Loud", 100, 10, 0, 1),
	}
	s := Compute(recs, DefaultBuckets())
	silent, _ := s.Category("Silent")
	assert.Zero(t, silent.EngagementRate)
	assert.Zero(t, silent.AvgEngagementRate)
	// zero-view record excluded from the mean denominator but counted in totals
	assert.InDelta(t, 0.1, s.AvgEngagementRate, 1e-9)
	assert.Equal(t, 2, s.Totals.Videos)
	assert.Equal(t, int64(15), s.Totals.Likes)
}

func TestCompute_Empty(t *testing.T) {
	s := Compute(nil, nil)
	assert.True(t, s.Empty())
	assert.Empty(t, s.Categories)
	assert.Empty(t, s.Lengths)
	assert.Zero(t, s.AvgEngagementRate)
	assert.Equal(t, DefaultBuckets().Labels(), s.BucketOrder)
}

func TestCompute_Subscribers(t *testing.T) {
	recs := scenario()
	recs[0].Subscribers, recs[0].HasSubscribers = 500, true
	recs[2].Subscribers, recs[2].HasSubscribers = 700, true
	s := Compute(recs, DefaultBuckets())
	assert.True(t, s.Totals.HasSubscribers)
	assert.Equal(t, int64(1200), s.Totals.Subscribers)
}

func TestEngagementRate(t *testing.T) {
	assert.Zero(t, EngagementRate(10, 10, 0))
	assert.InDelta(t, 0.25, EngagementRate(20, 5, 100), 1e-12)
	assert.GreaterOrEqual(t, EngagementRate(0, 0, 1), 0.0)
}

func TestOrdering(t *testing.T) {
	recs := []dataset.VideoRecord{
		video("B", 10, 0, 0, 40),
		video("A", 30, 0, 0, 2),
		video("C", 10, 0, 0, 10),
		{Category: "A", Views: 30},
	}
	s := Compute(recs, DefaultBuckets())

	keys := func(gs []Stats) []string {
		out := make([]string, len(gs))
		for i, g := range gs {
			out[i] = g.Key
		}
		return out
	}
	assert.Equal(t, []string{"B", "A", "C"}, keys(s.Categories))
	assert.Equal(t, []string{"A", "B", "C"}, keys(s.CategoriesByAvgViews()))
	assert.Equal(t, []string{"Very Long (30+ min)", "Short (0-5 min)", "Medium (5-15 min)", UnknownBucket}, keys(s.Lengths))
	assert.Equal(t, []string{"Short (0-5 min)", "Medium (5-15 min)", "Very Long (30+ min)", UnknownBucket}, keys(s.LengthsInBucketOrder()))
}
