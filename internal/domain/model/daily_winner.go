package model

import "time"

// DailyWinner links a profile to a draw date. At most one winner per
// draw date, enforced by a unique constraint on draw_date.
type DailyWinner struct {
	ID          string
	UserID      string
	DrawDate    time.Time
	PrizeAmount int
	AwardedAt   time.Time
	PromoPosted bool
	CreatedAt   time.Time

	User ProfileDisplay
}
