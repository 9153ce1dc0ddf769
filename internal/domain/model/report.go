package model

import (
	"time"

	"github.com/yansassi23/upduoadm/internal/domain/enums"
)

type Report struct {
	ID         string
	ReporterID string
	ReportedID string
	Reason     enums.ReportReason
	Status     enums.ReportStatus
	Comment    string
	CreatedAt  time.Time
	UpdatedAt  *time.Time

	Reporter ProfileDisplay
	Reported ProfileDisplay
}
