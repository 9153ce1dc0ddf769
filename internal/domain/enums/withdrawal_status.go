package enums

import "strings"

type WithdrawalStatus string

const (
	WithdrawalStatusPending   WithdrawalStatus = "pending"
	WithdrawalStatusApproved  WithdrawalStatus = "approved"
	WithdrawalStatusCompleted WithdrawalStatus = "completed"
	WithdrawalStatusRejected  WithdrawalStatus = "rejected"
)

func ParseWithdrawalStatus(value string) (WithdrawalStatus, bool) {
	switch WithdrawalStatus(strings.ToLower(strings.TrimSpace(value))) {
	case WithdrawalStatusPending:
		return WithdrawalStatusPending, true
	case WithdrawalStatusApproved:
		return WithdrawalStatusApproved, true
	case WithdrawalStatusCompleted:
		return WithdrawalStatusCompleted, true
	case WithdrawalStatusRejected:
		return WithdrawalStatusRejected, true
	default:
		return "", false
	}
}

// CanTransition encodes the payout flow: pending -> approved -> completed,
// or pending -> rejected. Completed and rejected are terminal.
func (s WithdrawalStatus) CanTransition(next WithdrawalStatus) bool {
	switch s {
	case WithdrawalStatusPending:
		return next == WithdrawalStatusApproved || next == WithdrawalStatusRejected
	case WithdrawalStatusApproved:
		return next == WithdrawalStatusCompleted
	default:
		return false
	}
}

// Terminal reports whether no further transition is possible.
func (s WithdrawalStatus) Terminal() bool {
	return s == WithdrawalStatusCompleted || s == WithdrawalStatusRejected
}
