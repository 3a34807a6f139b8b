package dto

type UserRegisterRequestDTO struct {
	Login      string `json:"login" example:"user1"`
	Password   string `json:"password" example:"secret"`
	InviteCode string `json:"invite_code,omitempty" example:"KJ7TQ2ZR"`
}

type UserLoginRequestDTO struct {
	Login    string `json:"login" example:"user1"`
	Password string `json:"password" example:"secret"`
}

type TokenResponseDTO struct {
	Token string `json:"token"`
}
