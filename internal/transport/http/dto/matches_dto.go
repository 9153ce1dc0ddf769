package dto

import "time"

type MatchItemResponse struct {
	ID        string                 `json:"id"`
	CreatedAt time.Time              `json:"created_at"`
	User1     ProfileDisplayResponse `json:"user1"`
	User2     ProfileDisplayResponse `json:"user2"`
}

type MatchesResponse struct {
	Items []MatchItemResponse `json:"items"`
}

type MatchStatsResponse struct {
	Total     int     `json:"total"`
	Today     int     `json:"today"`
	ThisWeek  int     `json:"this_week"`
	AvgPerDay float64 `json:"avg_per_day"`
}
