package model

import "time"

// Profile is the dating profile as the admin panel sees it. The app
// owns the row; this side only reads it and flips a few admin-managed
// fields (premium, diamonds, active).
type Profile struct {
	ID                 string
	Name               string
	Email              string
	Age                int
	City               string
	Bio                string
	AvatarURL          string
	CurrentRank        string
	IsPremium          bool
	IsActive           bool
	DiamondCount       int
	CreatedAt          time.Time
	UpdatedAt          *time.Time
	PremiumActivatedAt *time.Time
}

// ProfileDisplay is the fixed projection attached to rows that
// reference a profile by id.
type ProfileDisplay struct {
	Name      string
	Email     string
	AvatarURL string
}
