package models

import "time"

// User is a website account created through the public signup form.
type User struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Username     string  `gorm:"size:20;not null;uniqueIndex:uk_users_username" json:"username"`
	PasswordHash string  `gorm:"size:255;not null" json:"-"` // Never serialize password hash
	Email        *string `gorm:"size:100;uniqueIndex:uk_users_email" json:"email,omitempty"`
	Organization string  `gorm:"size:100;not null" json:"organization"`
	Role         Role    `gorm:"size:20;not null;default:'GENERAL'" json:"role"`

	// Digits only, 10-11 characters. Normalized before persistence.
	Phone string `gorm:"size:11;not null" json:"phone"`

	DroneExperience bool `gorm:"not null;default:false" json:"droneExperience"`
	TermsAgreed     bool `gorm:"not null" json:"termsAgreed"`

	EmailVerified  bool `gorm:"not null;default:false" json:"emailVerified"`
	AccountLocked  bool `gorm:"not null;default:false" json:"accountLocked"`
	AccountEnabled bool `gorm:"not null;default:true" json:"accountEnabled"`

	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `gorm:"not null;index:idx_users_created_at" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserFilter represents filter criteria for user queries
type UserFilter struct {
	ID             *uint
	Username       *string
	Email          *string
	Organization   *string
	Role           *Role
	Phone          *string
	AccountEnabled *bool
	AccountLocked  *bool
	CreatedAfter   *time.Time
	CreatedBefore  *time.Time
}
