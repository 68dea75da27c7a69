package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nallijaku/backend/models"
	"github.com/nallijaku/backend/utils"
	"gorm.io/gorm"
)

// ErrUnknownCertificationType is returned when a certification filter key is not recognized
var ErrUnknownCertificationType = errors.New("unknown certification type")

// PartnerApplicationRepositoryImpl implements PartnerApplicationRepository interface
type PartnerApplicationRepositoryImpl struct {
	*BaseRepository[models.PartnerApplication, models.PartnerApplicationFilter]
}

// NewPartnerApplicationRepository creates a new partner application repository
func NewPartnerApplicationRepository(db *gorm.DB) PartnerApplicationRepository {
	return &PartnerApplicationRepositoryImpl{
		BaseRepository: NewBaseRepository[models.PartnerApplication, models.PartnerApplicationFilter](db),
	}
}

// ByPhoneNumber retrieves the most recent application submitted from a phone number
func (r *PartnerApplicationRepositoryImpl) ByPhoneNumber(ctx context.Context, phoneNumber string) (*models.PartnerApplication, error) {
	filter := models.PartnerApplicationFilter{PhoneNumber: &phoneNumber}
	applications, err := r.ByFilter(ctx, filter, "created_at DESC", 1, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to find application by phone number: %w", err)
	}

	if len(applications) == 0 {
		return nil, nil
	}

	return applications[0], nil
}

// ByEmail retrieves the most recent application submitted from an email address
func (r *PartnerApplicationRepositoryImpl) ByEmail(ctx context.Context, email string) (*models.PartnerApplication, error) {
	filter := models.PartnerApplicationFilter{Email: &email}
	applications, err := r.ByFilter(ctx, filter, "created_at DESC", 1, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to find application by email: %w", err)
	}

	if len(applications) == 0 {
		return nil, nil
	}

	return applications[0], nil
}

// ByStatus retrieves all applications with the given status, newest first
func (r *PartnerApplicationRepositoryImpl) ByStatus(ctx context.Context, status models.InquiryStatus) ([]*models.PartnerApplication, error) {
	filter := models.PartnerApplicationFilter{Status: &status}
	return r.ByFilter(ctx, filter, "created_at DESC", 0, 0)
}

// SearchByApplicantName retrieves applications whose applicant name contains the given text
func (r *PartnerApplicationRepositoryImpl) SearchByApplicantName(ctx context.Context, applicantName string) ([]*models.PartnerApplication, error) {
	filter := models.PartnerApplicationFilter{ApplicantName: &applicantName}
	return r.ByFilter(ctx, filter, "created_at DESC", 0, 0)
}

// SearchByLocation retrieves applications whose preferred location contains the given text
func (r *PartnerApplicationRepositoryImpl) SearchByLocation(ctx context.Context, location string) ([]*models.PartnerApplication, error) {
	filter := models.PartnerApplicationFilter{Location: &location}
	return r.ByFilter(ctx, filter, "created_at DESC", 0, 0)
}

// ByCertification retrieves applications holding the given certification.
// Recognized keys are practical, class1, class2, class3 and instructor.
func (r *PartnerApplicationRepositoryImpl) ByCertification(ctx context.Context, certificationType string) ([]*models.PartnerApplication, error) {
	var filter models.PartnerApplicationFilter

	switch certificationType {
	case "practical":
		filter.PracticalCert = utils.ToPtr(true)
	case "class1":
		filter.Class1Cert = utils.ToPtr(true)
	case "class2":
		filter.Class2Cert = utils.ToPtr(true)
	case "class3":
		filter.Class3Cert = utils.ToPtr(true)
	case "instructor":
		filter.InstructorCert = utils.ToPtr(true)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCertificationType, certificationType)
	}

	return r.ByFilter(ctx, filter, "created_at DESC", 0, 0)
}

// Recent retrieves the most recently submitted applications
func (r *PartnerApplicationRepositoryImpl) Recent(ctx context.Context, limit int) ([]*models.PartnerApplication, error) {
	return r.ByFilter(ctx, models.PartnerApplicationFilter{}, "created_at DESC", limit, 0)
}

// CountByStatus returns the number of applications with the given status
func (r *PartnerApplicationRepositoryImpl) CountByStatus(ctx context.Context, status models.InquiryStatus) (int64, error) {
	return r.Count(ctx, models.PartnerApplicationFilter{Status: &status})
}

// WithScheduledInterview retrieves applications that have an interview scheduled,
// ordered by interview time
func (r *PartnerApplicationRepositoryImpl) WithScheduledInterview(ctx context.Context) ([]*models.PartnerApplication, error) {
	filter := models.PartnerApplicationFilter{HasScheduledInterview: utils.ToPtr(true)}
	return r.ByFilter(ctx, filter, "interview_scheduled_at ASC", 0, 0)
}

// ByInterviewBetween retrieves applications with an interview scheduled within the given range
func (r *PartnerApplicationRepositoryImpl) ByInterviewBetween(ctx context.Context, start, end time.Time) ([]*models.PartnerApplication, error) {
	filter := models.PartnerApplicationFilter{InterviewAfter: &start, InterviewBefore: &end}
	return r.ByFilter(ctx, filter, "interview_scheduled_at ASC", 0, 0)
}

// ByCreatedAtBetween retrieves applications submitted within the given time range
func (r *PartnerApplicationRepositoryImpl) ByCreatedAtBetween(ctx context.Context, start, end time.Time) ([]*models.PartnerApplication, error) {
	filter := models.PartnerApplicationFilter{CreatedAfter: &start, CreatedBefore: &end}
	return r.ByFilter(ctx, filter, "created_at DESC", 0, 0)
}

// ByFilter retrieves applications based on filter criteria
func (r *PartnerApplicationRepositoryImpl) ByFilter(ctx context.Context, filter models.PartnerApplicationFilter, orderBy string, limit, offset int) ([]*models.PartnerApplication, error) {
	db := r.getDB(ctx)

	var applications []*models.PartnerApplication
	query := r.applyFilter(db, filter)

	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	err := query.Find(&applications).Error
	if err != nil {
		return nil, err
	}

	return applications, nil
}

// Count returns the number of applications matching the filter
func (r *PartnerApplicationRepositoryImpl) Count(ctx context.Context, filter models.PartnerApplicationFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	var application models.PartnerApplication
	query := r.applyFilter(db.Model(&application), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any application matching the filter exists
func (r *PartnerApplicationRepositoryImpl) Exists(ctx context.Context, filter models.PartnerApplicationFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *PartnerApplicationRepositoryImpl) applyFilter(db *gorm.DB, filter models.PartnerApplicationFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}
	if filter.ApplicantName != nil {
		db = db.Where("applicant_name LIKE ?", "%"+*filter.ApplicantName+"%")
	}
	if filter.Location != nil {
		db = db.Where("location LIKE ?", "%"+*filter.Location+"%")
	}
	if filter.PhoneNumber != nil {
		db = db.Where("phone_number = ?", *filter.PhoneNumber)
	}
	if filter.Email != nil {
		db = db.Where("email = ?", *filter.Email)
	}
	if filter.AssignedAdmin != nil {
		db = db.Where("assigned_admin = ?", *filter.AssignedAdmin)
	}
	if filter.PracticalCert != nil {
		db = db.Where("practical_cert = ?", *filter.PracticalCert)
	}
	if filter.Class1Cert != nil {
		db = db.Where("class1_cert = ?", *filter.Class1Cert)
	}
	if filter.Class2Cert != nil {
		db = db.Where("class2_cert = ?", *filter.Class2Cert)
	}
	if filter.Class3Cert != nil {
		db = db.Where("class3_cert = ?", *filter.Class3Cert)
	}
	if filter.InstructorCert != nil {
		db = db.Where("instructor_cert = ?", *filter.InstructorCert)
	}
	if filter.HasScheduledInterview != nil {
		if *filter.HasScheduledInterview {
			db = db.Where("interview_scheduled_at IS NOT NULL")
		} else {
			db = db.Where("interview_scheduled_at IS NULL")
		}
	}
	if filter.InterviewAfter != nil {
		db = db.Where("interview_scheduled_at >= ?", *filter.InterviewAfter)
	}
	if filter.InterviewBefore != nil {
		db = db.Where("interview_scheduled_at <= ?", *filter.InterviewBefore)
	}
	if filter.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		db = db.Where("created_at <= ?", *filter.CreatedBefore)
	}

	return db
}
