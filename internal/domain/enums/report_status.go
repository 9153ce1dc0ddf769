package enums

import "strings"

type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "pending"
	ReportStatusReviewed ReportStatus = "reviewed"
	ReportStatusResolved ReportStatus = "resolved"
)

func ParseReportStatus(value string) (ReportStatus, bool) {
	switch ReportStatus(strings.ToLower(strings.TrimSpace(value))) {
	case ReportStatusPending:
		return ReportStatusPending, true
	case ReportStatusReviewed:
		return ReportStatusReviewed, true
	case ReportStatusResolved:
		return ReportStatusResolved, true
	default:
		return "", false
	}
}

// CanTransition encodes the forward-only review flow:
// pending -> reviewed -> resolved, with resolved terminal. Skipping
// straight from pending to resolved is allowed.
func (s ReportStatus) CanTransition(next ReportStatus) bool {
	switch s {
	case ReportStatusPending:
		return next == ReportStatusReviewed || next == ReportStatusResolved
	case ReportStatusReviewed:
		return next == ReportStatusResolved
	default:
		return false
	}
}
