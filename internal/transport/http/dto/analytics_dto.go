package dto

import "time"

type GrowthPointResponse struct {
	Date         string `json:"date"`
	Users        int    `json:"users"`
	PremiumUsers int    `json:"premium_users"`
}

type CategoryCountResponse struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type ActivityBucketResponse struct {
	Date     string `json:"date"`
	Matches  int    `json:"matches"`
	Messages int    `json:"messages"`
	Signups  int    `json:"signups"`
}

type AnalyticsResponse struct {
	Range                 string                   `json:"range"`
	TotalUsers            int                      `json:"total_users"`
	PremiumUsers          int                      `json:"premium_users"`
	TotalMatches          int                      `json:"total_matches"`
	TotalMessages         int                      `json:"total_messages"`
	TotalDiamonds         int64                    `json:"total_diamonds"`
	PremiumConversionRate float64                  `json:"premium_conversion_rate"`
	AvgMatchesPerUser     float64                  `json:"avg_matches_per_user"`
	AvgMessagesPerMatch   float64                  `json:"avg_messages_per_match"`
	UserGrowth            []GrowthPointResponse    `json:"user_growth"`
	CityDistribution      []CategoryCountResponse  `json:"city_distribution"`
	RankDistribution      []CategoryCountResponse  `json:"rank_distribution"`
	DailyActivity         []ActivityBucketResponse `json:"daily_activity"`
	GeneratedAt           time.Time                `json:"generated_at"`
}
