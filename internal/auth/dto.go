package auth

import (
	"github.com/perfval/perfval-backend/internal/users"
)

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest carries the fields needed to create an account.
type RegisterRequest struct {
	Username   string  `json:"username" validate:"required,min=3,max=30"`
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password" validate:"required,min=6"`
	FirstName  string  `json:"firstName" validate:"required"`
	LastName   string  `json:"lastName" validate:"required"`
	Role       string  `json:"role" validate:"omitempty,oneof=employee manager hr admin"`
	Department string  `json:"department" validate:"required"`
	EmployeeID *string `json:"employeeId" validate:"omitempty"`
}

// LoginResponse is returned by login and register.
type LoginResponse struct {
	Message string         `json:"message"`
	Token   string         `json:"token"`
	User    *users.UserDTO `json:"user"`
}

// UpdateProfileRequest carries the mutable profile fields.
type UpdateProfileRequest struct {
	FirstName  *string `json:"firstName" validate:"omitempty,min=1"`
	LastName   *string `json:"lastName" validate:"omitempty,min=1"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Department *string `json:"department" validate:"omitempty,min=1"`
}

// ChangePasswordRequest verifies the current credential before replacing it.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}
