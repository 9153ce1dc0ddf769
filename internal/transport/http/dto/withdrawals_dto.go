package dto

import "time"

type WithdrawalItemResponse struct {
	ID          string                 `json:"id"`
	Amount      int                    `json:"amount"`
	GameUserID  string                 `json:"game_user_id"`
	GameZoneID  string                 `json:"game_zone_id"`
	Status      string                 `json:"status"`
	AdminNotes  string                 `json:"admin_notes"`
	CreatedAt   time.Time              `json:"created_at"`
	ProcessedAt *time.Time             `json:"processed_at,omitempty"`
	User        ProfileDisplayResponse `json:"user"`
}

type WithdrawalsResponse struct {
	Items []WithdrawalItemResponse `json:"items"`
}

type WithdrawalStatsResponse struct {
	PendingCount   int   `json:"pending_count"`
	CompletedCount int   `json:"completed_count"`
	TotalAmount    int64 `json:"total_amount"`
	PendingAmount  int64 `json:"pending_amount"`
}

type UpdateWithdrawalStatusRequest struct {
	Status     string `json:"status"`
	AdminNotes string `json:"admin_notes"`
}
