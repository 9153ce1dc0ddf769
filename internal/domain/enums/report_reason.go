package enums

import "strings"

type ReportReason string

const (
	ReportReasonInappropriateContent ReportReason = "inappropriate_content"
	ReportReasonHarassment           ReportReason = "harassment"
	ReportReasonFakeProfile          ReportReason = "fake_profile"
	ReportReasonSpam                 ReportReason = "spam"
	ReportReasonUnderage             ReportReason = "underage"
	ReportReasonViolence             ReportReason = "violence"
	ReportReasonHateSpeech           ReportReason = "hate_speech"
	ReportReasonNudity               ReportReason = "nudity"
	ReportReasonOther                ReportReason = "other"
)

func ReportReasons() []ReportReason {
	return []ReportReason{
		ReportReasonInappropriateContent,
		ReportReasonHarassment,
		ReportReasonFakeProfile,
		ReportReasonSpam,
		ReportReasonUnderage,
		ReportReasonViolence,
		ReportReasonHateSpeech,
		ReportReasonNudity,
		ReportReasonOther,
	}
}

func ParseReportReason(value string) (ReportReason, bool) {
	reason := ReportReason(strings.ToLower(strings.TrimSpace(value)))
	for _, known := range ReportReasons() {
		if reason == known {
			return reason, true
		}
	}
	return "", false
}
