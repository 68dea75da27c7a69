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

// ErrUnknownInterestType is returned when an interest-type filter key is not recognized
var ErrUnknownInterestType = errors.New("unknown interest type")

// EducationInquiryRepositoryImpl implements EducationInquiryRepository interface
type EducationInquiryRepositoryImpl struct {
	*BaseRepository[models.EducationInquiry, models.EducationInquiryFilter]
}

// NewEducationInquiryRepository creates a new education inquiry repository
func NewEducationInquiryRepository(db *gorm.DB) EducationInquiryRepository {
	return &EducationInquiryRepositoryImpl{
		BaseRepository: NewBaseRepository[models.EducationInquiry, models.EducationInquiryFilter](db),
	}
}

// ByPhoneNumber retrieves the most recent inquiry submitted from a phone number
func (r *EducationInquiryRepositoryImpl) ByPhoneNumber(ctx context.Context, phoneNumber string) (*models.EducationInquiry, error) {
	filter := models.EducationInquiryFilter{PhoneNumber: &phoneNumber}
	inquiries, err := r.ByFilter(ctx, filter, "created_at DESC", 1, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to find inquiry by phone number: %w", err)
	}

	if len(inquiries) == 0 {
		return nil, nil
	}

	return inquiries[0], nil
}

// ByStatus retrieves all inquiries with the given status, newest first
func (r *EducationInquiryRepositoryImpl) ByStatus(ctx context.Context, status models.InquiryStatus) ([]*models.EducationInquiry, error) {
	filter := models.EducationInquiryFilter{Status: &status}
	return r.ByFilter(ctx, filter, "created_at DESC", 0, 0)
}

// SearchByOrganizationName retrieves inquiries whose organization name contains the given text
func (r *EducationInquiryRepositoryImpl) SearchByOrganizationName(ctx context.Context, organizationName string) ([]*models.EducationInquiry, error) {
	filter := models.EducationInquiryFilter{OrganizationName: &organizationName}
	return r.ByFilter(ctx, filter, "created_at DESC", 0, 0)
}

// SearchByContactPerson retrieves inquiries whose contact person contains the given text
func (r *EducationInquiryRepositoryImpl) SearchByContactPerson(ctx context.Context, contactPerson string) ([]*models.EducationInquiry, error) {
	filter := models.EducationInquiryFilter{ContactPerson: &contactPerson}
	return r.ByFilter(ctx, filter, "created_at DESC", 0, 0)
}

// ByInterestType retrieves inquiries flagged with the given consultation interest.
// Recognized keys are purchase, visit, career and booth.
func (r *EducationInquiryRepositoryImpl) ByInterestType(ctx context.Context, interestType string) ([]*models.EducationInquiry, error) {
	var filter models.EducationInquiryFilter

	switch interestType {
	case "purchase":
		filter.PurchaseInquiry = utils.ToPtr(true)
	case "visit":
		filter.SchoolVisit = utils.ToPtr(true)
	case "career":
		filter.CareerExperience = utils.ToPtr(true)
	case "booth":
		filter.BoothEntrustment = utils.ToPtr(true)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownInterestType, interestType)
	}

	return r.ByFilter(ctx, filter, "created_at DESC", 0, 0)
}

// Recent retrieves the most recently submitted inquiries
func (r *EducationInquiryRepositoryImpl) Recent(ctx context.Context, limit int) ([]*models.EducationInquiry, error) {
	return r.ByFilter(ctx, models.EducationInquiryFilter{}, "created_at DESC", limit, 0)
}

// CountByStatus returns the number of inquiries with the given status
func (r *EducationInquiryRepositoryImpl) CountByStatus(ctx context.Context, status models.InquiryStatus) (int64, error) {
	return r.Count(ctx, models.EducationInquiryFilter{Status: &status})
}

// ByCreatedAtBetween retrieves inquiries submitted within the given time range
func (r *EducationInquiryRepositoryImpl) ByCreatedAtBetween(ctx context.Context, start, end time.Time) ([]*models.EducationInquiry, error) {
	filter := models.EducationInquiryFilter{CreatedAfter: &start, CreatedBefore: &end}
	return r.ByFilter(ctx, filter, "created_at DESC", 0, 0)
}

// ByFilter retrieves inquiries based on filter criteria
func (r *EducationInquiryRepositoryImpl) ByFilter(ctx context.Context, filter models.EducationInquiryFilter, orderBy string, limit, offset int) ([]*models.EducationInquiry, error) {
	db := r.getDB(ctx)

	var inquiries []*models.EducationInquiry
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

	err := query.Find(&inquiries).Error
	if err != nil {
		return nil, err
	}

	return inquiries, nil
}

// Count returns the number of inquiries matching the filter
func (r *EducationInquiryRepositoryImpl) Count(ctx context.Context, filter models.EducationInquiryFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	var inquiry models.EducationInquiry
	query := r.applyFilter(db.Model(&inquiry), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any inquiry matching the filter exists
func (r *EducationInquiryRepositoryImpl) Exists(ctx context.Context, filter models.EducationInquiryFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *EducationInquiryRepositoryImpl) applyFilter(db *gorm.DB, filter models.EducationInquiryFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}
	if filter.OrganizationName != nil {
		db = db.Where("organization_name LIKE ?", "%"+*filter.OrganizationName+"%")
	}
	if filter.ContactPerson != nil {
		db = db.Where("contact_person LIKE ?", "%"+*filter.ContactPerson+"%")
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
	if filter.PurchaseInquiry != nil {
		db = db.Where("purchase_inquiry = ?", *filter.PurchaseInquiry)
	}
	if filter.SchoolVisit != nil {
		db = db.Where("school_visit = ?", *filter.SchoolVisit)
	}
	if filter.CareerExperience != nil {
		db = db.Where("career_experience = ?", *filter.CareerExperience)
	}
	if filter.BoothEntrustment != nil {
		db = db.Where("booth_entrustment = ?", *filter.BoothEntrustment)
	}
	if filter.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		db = db.Where("created_at <= ?", *filter.CreatedBefore)
	}

	return db
}
