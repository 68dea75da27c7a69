// Package dto contains Data Transfer Objects for API request and response structures
package dto

import "time"

// SignupRequest represents the signup form data
type SignupRequest struct {
	Username        string  `json:"username" validate:"required,username_format"`
	Password        string  `json:"password" validate:"required,password_policy"`
	ConfirmPassword string  `json:"confirmPassword" validate:"required"`
	Email           *string `json:"email,omitempty" validate:"omitempty,email,max=100"`
	Organization    string  `json:"organization" validate:"required,max=100"`
	Role            string  `json:"role,omitempty" validate:"omitempty"`
	Phone           string  `json:"phone" validate:"required,phone_number"`
	DroneExperience bool    `json:"droneExperience"`
	TermsAgreed     bool    `json:"termsAgreed" validate:"eq=true"`
}

// SignupResponse represents the response after a successful signup
type SignupResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	UserID   uint   `json:"userId"`
	Username string `json:"username"`
}

// LoginRequest represents the login form data
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserInfo represents user data returned at login, password hash excluded
type UserInfo struct {
	ID              uint      `json:"id"`
	Username        string    `json:"username"`
	Email           *string   `json:"email"`
	Organization    string    `json:"organization"`
	Role            string    `json:"role"`
	Phone           string    `json:"phone"`
	DroneExperience bool      `json:"droneExperience"`
	CreatedAt       time.Time `json:"createdAt"`
}

// LoginResponse represents the response after a successful login.
// The token is a placeholder string, not a real credential.
type LoginResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	User    UserInfo `json:"user"`
	Token   string   `json:"token"`
}

// CheckUsernameResponse reports whether a username is already taken
type CheckUsernameResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Exists  bool   `json:"exists"`
}

// CheckAdminResponse reports whether a user has the admin role
type CheckAdminResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	IsAdmin  bool   `json:"isAdmin"`
	Username string `json:"username"`
}
