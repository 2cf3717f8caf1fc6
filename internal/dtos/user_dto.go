package dtos

// RegisterRequest carries the multipart form fields for account creation.
// Required-field checks happen in the handler so each miss gets its own
// message.
type RegisterRequest struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	Phone    string `form:"phone"`
	Address  string `form:"address"`
	Password string `form:"password"`
	Role     string `form:"role"`

	FirstChoice  string `form:"firstChoice"`
	SecondChoice string `form:"secondChoice"`
	ThirdChoice  string `form:"thirdChoice"`
}

type LoginRequest struct {
	Role     string `json:"role"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Name    string `form:"name"`
	Email   string `form:"email"`
	Phone   string `form:"phone"`
	Address string `form:"address"`

	FirstChoice  string `form:"firstChoice"`
	SecondChoice string `form:"secondChoice"`
	ThirdChoice  string `form:"thirdChoice"`
}

type UpdatePasswordRequest struct {
	OldPassword     string `json:"oldPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}
