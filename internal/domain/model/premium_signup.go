package model

import "time"

// PremiumSignup is a pending upgrade request. Approval promotes the
// profile and removes the request in one transaction; rejection only
// removes the request.
type PremiumSignup struct {
	ID        string
	UserID    string
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time

	User ProfileDisplay
}
