// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"time"

	"github.com/nallijaku/backend/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	Updates(ctx context.Context, id uint, updates map[string]any) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// UserRepository defines operations for website accounts
type UserRepository interface {
	Repository[models.User, models.UserFilter]
	ByUsername(ctx context.Context, username string) (*models.User, error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateLastLogin(ctx context.Context, userID uint, at time.Time) error
}

// EducationInquiryRepository defines operations for education inquiries
type EducationInquiryRepository interface {
	Repository[models.EducationInquiry, models.EducationInquiryFilter]
	ByPhoneNumber(ctx context.Context, phoneNumber string) (*models.EducationInquiry, error)
	ByStatus(ctx context.Context, status models.InquiryStatus) ([]*models.EducationInquiry, error)
	SearchByOrganizationName(ctx context.Context, organizationName string) ([]*models.EducationInquiry, error)
	SearchByContactPerson(ctx context.Context, contactPerson string) ([]*models.EducationInquiry, error)
	ByInterestType(ctx context.Context, interestType string) ([]*models.EducationInquiry, error)
	Recent(ctx context.Context, limit int) ([]*models.EducationInquiry, error)
	CountByStatus(ctx context.Context, status models.InquiryStatus) (int64, error)
	ByCreatedAtBetween(ctx context.Context, start, end time.Time) ([]*models.EducationInquiry, error)
}

// PartnerApplicationRepository defines operations for partner applications
type PartnerApplicationRepository interface {
	Repository[models.PartnerApplication, models.PartnerApplicationFilter]
	ByPhoneNumber(ctx context.Context, phoneNumber string) (*models.PartnerApplication, error)
	ByEmail(ctx context.Context, email string) (*models.PartnerApplication, error)
	ByStatus(ctx context.Context, status models.InquiryStatus) ([]*models.PartnerApplication, error)
	SearchByApplicantName(ctx context.Context, applicantName string) ([]*models.PartnerApplication, error)
	SearchByLocation(ctx context.Context, location string) ([]*models.PartnerApplication, error)
	ByCertification(ctx context.Context, certificationType string) ([]*models.PartnerApplication, error)
	Recent(ctx context.Context, limit int) ([]*models.PartnerApplication, error)
	CountByStatus(ctx context.Context, status models.InquiryStatus) (int64, error)
	WithScheduledInterview(ctx context.Context) ([]*models.PartnerApplication, error)
	ByInterviewBetween(ctx context.Context, start, end time.Time) ([]*models.PartnerApplication, error)
	ByCreatedAtBetween(ctx context.Context, start, end time.Time) ([]*models.PartnerApplication, error)
}
