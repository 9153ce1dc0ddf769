package dto

import "time"

type ReportItemResponse struct {
	ID        string                 `json:"id"`
	Reason    string                 `json:"reason"`
	Status    string                 `json:"status"`
	Comment   string                 `json:"comment"`
	CreatedAt time.Time              `json:"created_at"`
	Reporter  ProfileDisplayResponse `json:"reporter"`
	Reported  ProfileDisplayResponse `json:"reported"`
}

type ReportsResponse struct {
	Items []ReportItemResponse `json:"items"`
}

type ReportCountsResponse struct {
	Pending  int `json:"pending"`
	Reviewed int `json:"reviewed"`
	Resolved int `json:"resolved"`
}

type UpdateReportStatusRequest struct {
	Status string `json:"status"`
}
