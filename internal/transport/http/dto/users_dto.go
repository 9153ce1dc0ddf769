package dto

import "time"

type UserResponse struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Email              string     `json:"email"`
	Age                int        `json:"age"`
	City               string     `json:"city"`
	Bio                string     `json:"bio"`
	AvatarURL          string     `json:"avatar_url"`
	CurrentRank        string     `json:"current_rank"`
	IsPremium          bool       `json:"is_premium"`
	IsActive           bool       `json:"is_active"`
	DiamondCount       int        `json:"diamond_count"`
	CreatedAt          time.Time  `json:"created_at"`
	PremiumActivatedAt *time.Time `json:"premium_activated_at,omitempty"`
}

type UsersResponse struct {
	Items []UserResponse `json:"items"`
}

type SetActiveRequest struct {
	Active bool `json:"active"`
}

type SetPremiumRequest struct {
	Premium bool `json:"premium"`
}

type GrantDiamondsRequest struct {
	Amount int `json:"amount"`
}

type DiamondBalanceResponse struct {
	OK           bool `json:"ok"`
	DiamondCount int  `json:"diamond_count"`
}
