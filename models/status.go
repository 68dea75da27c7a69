// Package models contains domain entities and business models for the website backend
package models

import (
	"fmt"
	"strings"
)

// InquiryStatus tracks admin handling progress of a submitted form.
type InquiryStatus string

const (
	StatusPending    InquiryStatus = "PENDING"
	StatusInProgress InquiryStatus = "IN_PROGRESS"
	StatusCompleted  InquiryStatus = "COMPLETED"
	StatusCancelled  InquiryStatus = "CANCELLED"
)

// ParseInquiryStatus parses a status value case-insensitively.
func ParseInquiryStatus(s string) (InquiryStatus, error) {
	switch InquiryStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, nil
	case StatusInProgress:
		return StatusInProgress, nil
	case StatusCompleted:
		return StatusCompleted, nil
	case StatusCancelled:
		return StatusCancelled, nil
	default:
		return "", fmt.Errorf("invalid status value: %s", s)
	}
}

// Role classifies a registered user.
type Role string

const (
	RoleStudent    Role = "STUDENT"
	RoleTeacher    Role = "TEACHER"
	RoleInstructor Role = "INSTRUCTOR"
	RoleGeneral    Role = "GENERAL"
	RoleAdmin      Role = "ADMIN"
)

// ParseRole maps a raw role string onto a known role. Empty, numeric, or
// unknown input falls back to GENERAL rather than failing signup.
func ParseRole(s string) Role {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || isDigits(trimmed) {
		return RoleGeneral
	}
	switch Role(strings.ToUpper(trimmed)) {
	case RoleStudent:
		return RoleStudent
	case RoleTeacher:
		return RoleTeacher
	case RoleInstructor:
		return RoleInstructor
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleGeneral
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
