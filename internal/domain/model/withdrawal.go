package model

import (
	"time"

	"github.com/yansassi23/upduoadm/internal/domain/enums"
)

// DiamondWithdrawal converts in-app diamonds into credit on an external
// game account.
type DiamondWithdrawal struct {
	ID          string
	UserID      string
	Amount      int
	GameUserID  string
	GameZoneID  string
	Status      enums.WithdrawalStatus
	AdminNotes  string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	ProcessedAt *time.Time

	User ProfileDisplay
}
