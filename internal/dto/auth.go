package dto

import (
	"strings"

	"github.com/taskwise/taskwise-api/internal/models"
)

// RegisterRequest is the payload for creating a new account.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate returns every field-level problem with the request.
func (r *RegisterRequest) Validate() []FieldError {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)

	var errs []FieldError
	if e := ValidateUserName(r.Name); e != nil {
		errs = append(errs, *e)
	}
	if e := ValidateEmail(r.Email); e != nil {
		errs = append(errs, *e)
	}
	if e := ValidatePassword(r.Password); e != nil {
		errs = append(errs, *e)
	}
	return errs
}

// LoginRequest is the payload for authenticating.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate returns every field-level problem with the request.
func (r *LoginRequest) Validate() []FieldError {
	r.Email = strings.TrimSpace(r.Email)

	var errs []FieldError
	if e := ValidateEmail(r.Email); e != nil {
		errs = append(errs, *e)
	}
	if r.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "Password is required"})
	}
	return errs
}

// UserDTO represents a user in API responses
type UserDTO struct {
	ID     uint64 `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

// AuthResponse carries a freshly minted token together with its user.
type AuthResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Avatar: user.Avatar,
	}
}
