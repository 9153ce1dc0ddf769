package stats

import (
	"testing"
	"time"

	pgrepo "github.com/yansassi23/upduoadm/internal/repo/postgres"
)

func TestBucketDailyZeroFillsWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	matches := []time.Time{
		time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), // outside the window
	}
	messages := []time.Time{
		time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC),
	}
	signups := []time.Time{
		time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
	}

	buckets := BucketDaily(now, 7, matches, messages, signups)
	if len(buckets) != 7 {
		t.Fatalf("expected 7 buckets, got %d", len(buckets))
	}
	if buckets[0].Date != "2026-03-04" || buckets[6].Date != "2026-03-10" {
		t.Fatalf("unexpected window bounds: %s .. %s", buckets[0].Date, buckets[6].Date)
	}
	if buckets[6].Matches != 2 {
		t.Fatalf("expected 2 matches on the last day, got %d", buckets[6].Matches)
	}
	if buckets[3].Matches != 1 {
		t.Fatalf("expected 1 match on 2026-03-07, got %d", buckets[3].Matches)
	}
	if buckets[5].Messages != 1 {
		t.Fatalf("expected 1 message on 2026-03-09, got %d", buckets[5].Messages)
	}
	if buckets[0].Signups != 1 {
		t.Fatalf("expected 1 signup on 2026-03-04, got %d", buckets[0].Signups)
	}

	total := 0
	for _, b := range buckets {
		total += b.Matches
	}
	if total != 3 {
		t.Fatalf("expected the out-of-window match to be dropped, counted %d", total)
	}
}

func TestBucketDailyEmptyInput(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	buckets := BucketDaily(now, 1, nil, nil, nil)
	if len(buckets) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(buckets))
	}
	if buckets[0] != (ActivityBucket{Date: "2026-03-10"}) {
		t.Fatalf("expected a zero bucket, got %+v", buckets[0])
	}
}

func TestGrowthSeries(t *testing.T) {
	signups := []pgrepo.SignupRecord{
		{CreatedAt: time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC), IsPremium: true},
		{CreatedAt: time.Date(2026, 3, 9, 11, 0, 0, 0, time.UTC)},
		{CreatedAt: time.Date(2026, 3, 8, 9, 0, 0, 0, time.UTC)},
	}

	series := GrowthSeries(signups)
	if len(series) != 2 {
		t.Fatalf("expected 2 points, got %d", len(series))
	}
	if series[0].Date != "2026-03-08" || series[1].Date != "2026-03-09" {
		t.Fatalf("expected ascending dates, got %s then %s", series[0].Date, series[1].Date)
	}
	if series[1].Users != 2 || series[1].PremiumUsers != 1 {
		t.Fatalf("unexpected counts for 2026-03-09: %+v", series[1])
	}
}

func TestGrowthSeriesEmpty(t *testing.T) {
	if series := GrowthSeries(nil); len(series) != 0 {
		t.Fatalf("expected empty series, got %d points", len(series))
	}
}

func TestTopCitiesTruncatesAndBucketsUnanswered(t *testing.T) {
	weights := map[string]int{
		"Manaus": 12, "Belém": 11, "Recife": 10, "Fortaleza": 9,
		"Salvador": 8, "Curitiba": 7, "Porto Alegre": 6, "Goiânia": 5,
		"Campinas": 4, "": 3, "Santos": 2, "Niterói": 1,
	}
	values := make([]string, 0)
	for city, n := range weights {
		for i := 0; i < n; i++ {
			values = append(values, city)
		}
	}

	counts := TopCities(values)
	if len(counts) != topCitiesLimit {
		t.Fatalf("expected %d buckets, got %d", topCitiesLimit, len(counts))
	}
	if counts[0].Label != "Manaus" || counts[0].Count != 12 {
		t.Fatalf("unexpected top bucket: %+v", counts[0])
	}
	if counts[9].Label != unansweredLabel || counts[9].Count != 3 {
		t.Fatalf("expected the unanswered bucket to close the top ten, got %+v", counts[9])
	}
}

func TestRankDistributionKeepsAllBuckets(t *testing.T) {
	values := []string{"Mítico", "Lenda", "Lenda", "", "Épico"}
	counts := RankDistribution(values)
	if len(counts) != 4 {
		t.Fatalf("expected 4 buckets, got %d", len(counts))
	}
	if counts[0].Label != "Lenda" || counts[0].Count != 2 {
		t.Fatalf("unexpected top bucket: %+v", counts[0])
	}
}

func TestDeriveRatios(t *testing.T) {
	tests := []struct {
		name           string
		users          int
		premium        int
		matches        int
		messages       int
		wantConversion float64
		wantPerUser    float64
		wantPerMatch   float64
	}{
		{name: "typical", users: 200, premium: 40, matches: 100, messages: 500, wantConversion: 20, wantPerUser: 0.5, wantPerMatch: 5},
		{name: "empty platform", users: 0, premium: 0, matches: 0, messages: 0},
		{name: "no matches", users: 10, premium: 1, matches: 0, messages: 0, wantConversion: 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveRatios(tc.users, tc.premium, tc.matches, tc.messages)
			if got.PremiumConversionRate != tc.wantConversion {
				t.Fatalf("conversion rate: got %v want %v", got.PremiumConversionRate, tc.wantConversion)
			}
			if got.AvgMatchesPerUser != tc.wantPerUser {
				t.Fatalf("matches per user: got %v want %v", got.AvgMatchesPerUser, tc.wantPerUser)
			}
			if got.AvgMessagesPerMatch != tc.wantPerMatch {
				t.Fatalf("messages per match: got %v want %v", got.AvgMessagesPerMatch, tc.wantPerMatch)
			}
		})
	}
}
