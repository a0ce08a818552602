package models

const RoleAdmin = "ADMIN"

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	Username    string `json:"username" validate:"required,min=3,max=50"`
	FullName    string `json:"fullName" validate:"required"`
	PhoneNumber string `json:"phoneNumber,omitempty" validate:"omitempty,max=20"`
	Address     string `json:"address,omitempty" validate:"omitempty,max=500"`
}

// AuthResponse is what the store API returns for a successful login.
type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// AuthUser is the signed-in identity kept on the session.
type AuthUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (u *AuthUser) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
