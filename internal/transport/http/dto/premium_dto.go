package dto

import "time"

type PremiumSignupResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

type PremiumSignupsResponse struct {
	Items []PremiumSignupResponse `json:"items"`
}
