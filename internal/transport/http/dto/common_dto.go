package dto

type OKResponse struct {
	OK bool `json:"ok"`
}

type ProfileDisplayResponse struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}
