package dto

import "time"

type DashboardOverviewResponse struct {
	Range         string    `json:"range"`
	TotalUsers    int       `json:"total_users"`
	ActiveUsers   int       `json:"active_users"`
	TotalMatches  int       `json:"total_matches"`
	TotalMessages int       `json:"total_messages"`
	TodayMatches  int       `json:"today_matches"`
	TodaySignups  int       `json:"today_signups"`
	GeneratedAt   time.Time `json:"generated_at"`
}
