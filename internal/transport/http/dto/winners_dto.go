package dto

import "time"

type WinnerItemResponse struct {
	ID          string                 `json:"id"`
	DrawDate    string                 `json:"draw_date"`
	PrizeAmount int                    `json:"prize_amount"`
	AwardedAt   time.Time              `json:"awarded_at"`
	PromoPosted bool                   `json:"promo_posted"`
	User        ProfileDisplayResponse `json:"user"`
}

type WinnersResponse struct {
	Items []WinnerItemResponse `json:"items"`
}

type WinnerStatsResponse struct {
	Total        int   `json:"total"`
	ThisMonth    int   `json:"this_month"`
	PrizeTotal   int64 `json:"prize_total"`
	PendingPromo int   `json:"pending_promo"`
}

type AddWinnerRequest struct {
	UserID      string `json:"user_id"`
	DrawDate    string `json:"draw_date"`
	PrizeAmount int    `json:"prize_amount"`
}

type SetPromoPostedRequest struct {
	Posted bool `json:"posted"`
}
