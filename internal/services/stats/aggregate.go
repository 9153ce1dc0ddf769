package stats

import (
	"sort"
	"time"

	pgrepo "github.com/yansassi23/upduoadm/internal/repo/postgres"
)

const (
	topCitiesLimit = 10
	dayLayout      = "2006-01-02"

	// Bucket label for profiles that never filled in the field.
	unansweredLabel = "Não informado"
)

// ActivityBucket is one calendar day of platform activity.
type ActivityBucket struct {
	Date     string `json:"date"`
	Matches  int    `json:"matches"`
	Messages int    `json:"messages"`
	Signups  int    `json:"signups"`
}

// GrowthPoint is one calendar day of the signup series.
type GrowthPoint struct {
	Date         string `json:"date"`
	Users        int    `json:"users"`
	PremiumUsers int    `json:"premiumUsers"`
}

// CategoryCount is one slice of a categorical distribution.
type CategoryCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Ratios are the derived metrics of the analytics view.
type Ratios struct {
	PremiumConversionRate float64 `json:"premiumConversionRate"`
	AvgMatchesPerUser     float64 `json:"avgMatchesPerUser"`
	AvgMessagesPerMatch   float64 `json:"avgMessagesPerMatch"`
}

// BucketDaily folds event timestamps into exactly days calendar
// buckets ending on now's local day. Events outside the window are
// dropped, days without events stay at zero.
func BucketDaily(now time.Time, days int, matches, messages, signups []time.Time) []ActivityBucket {
	if days <= 0 {
		return []ActivityBucket{}
	}

	buckets := make([]ActivityBucket, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		day := now.AddDate(0, 0, i-days+1).Format(dayLayout)
		buckets[i] = ActivityBucket{Date: day}
		index[day] = i
	}

	fold := func(events []time.Time, bump func(*ActivityBucket)) {
		for _, at := range events {
			if i, ok := index[at.Format(dayLayout)]; ok {
				bump(&buckets[i])
			}
		}
	}
	fold(matches, func(b *ActivityBucket) { b.Matches++ })
	fold(messages, func(b *ActivityBucket) { b.Messages++ })
	fold(signups, func(b *ActivityBucket) { b.Signups++ })

	return buckets
}

// GrowthSeries folds signup records into a per-day series of new and
// new-premium registrations, sorted by day ascending.
func GrowthSeries(signups []pgrepo.SignupRecord) []GrowthPoint {
	byDay := make(map[string]*GrowthPoint)
	for _, signup := range signups {
		day := signup.CreatedAt.Format(dayLayout)
		point, ok := byDay[day]
		if !ok {
			point = &GrowthPoint{Date: day}
			byDay[day] = point
		}
		point.Users++
		if signup.IsPremium {
			point.PremiumUsers++
		}
	}

	series := make([]GrowthPoint, 0, len(byDay))
	for _, point := range byDay {
		series = append(series, *point)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })
	return series
}

// TopCities counts city values and keeps the ten largest buckets.
// Empty values collapse into the unanswered bucket.
func TopCities(values []string) []CategoryCount {
	counts := countCategories(values)
	if len(counts) > topCitiesLimit {
		counts = counts[:topCitiesLimit]
	}
	return counts
}

// RankDistribution counts rank values without truncation.
func RankDistribution(values []string) []CategoryCount {
	return countCategories(values)
}

func countCategories(values []string) []CategoryCount {
	byLabel := make(map[string]int)
	for _, value := range values {
		if value == "" {
			value = unansweredLabel
		}
		byLabel[value]++
	}

	counts := make([]CategoryCount, 0, len(byLabel))
	for label, count := range byLabel {
		counts = append(counts, CategoryCount{Label: label, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Label < counts[j].Label
	})
	return counts
}

// DeriveRatios computes the derived metrics, with every division
// guarded so an empty platform reports zeros instead of NaN.
func DeriveRatios(totalUsers, premiumUsers, totalMatches, totalMessages int) Ratios {
	var ratios Ratios
	if totalUsers > 0 {
		ratios.PremiumConversionRate = float64(premiumUsers) / float64(totalUsers) * 100
		ratios.AvgMatchesPerUser = float64(totalMatches) / float64(totalUsers)
	}
	if totalMatches > 0 {
		ratios.AvgMessagesPerMatch = float64(totalMessages) / float64(totalMatches)
	}
	return ratios
}
