package dto

type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	Role        *string  `json:"role"`
	UserID      *FlexInt `json:"user_id"`
	Email       string   `json:"email"`
}

type UserDetailResponse struct {
	ID         *FlexInt `json:"id"`
	UserID     *FlexInt `json:"user_id"`
	Username   string   `json:"username"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Role       *string  `json:"role"`
	IsVerified *bool    `json:"is_verified"`
	Verified   *bool    `json:"verified"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

type UpdateProfileRequest struct {
	Username string `json:"username"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type TeamMemberRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password,omitempty"`
}
