package businessflow

import (
	"context"
	"fmt"
	"strconv"

	"github.com/nallijaku/backend/app/dto"
	"github.com/nallijaku/backend/models"
	"github.com/nallijaku/backend/repository"
	"github.com/nallijaku/backend/utils"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// EducationInquiryFlow handles submission and admin processing of
// education inquiries
type EducationInquiryFlow interface {
	Submit(ctx context.Context, req *dto.EducationInquiryRequest, metadata *ClientMetadata) (*dto.SubmitInquiryResponse, error)
	List(ctx context.Context, status, organizationName, contactPerson, interestType string) ([]*models.EducationInquiry, error)
	Get(ctx context.Context, id uint) (*models.EducationInquiry, error)
	UpdateStatus(ctx context.Context, id uint, status, adminUsername string) (*models.EducationInquiry, error)
	AddNotes(ctx context.Context, id uint, notes, adminUsername string) (*models.EducationInquiry, error)
	Recent(ctx context.Context) ([]*models.EducationInquiry, error)
	PendingCount(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id uint) error
}

// EducationInquiryFlowImpl implements the education inquiry business flow
type EducationInquiryFlowImpl struct {
	inquiryRepo repository.EducationInquiryRepository
	rc          *redis.Client
	db          *gorm.DB
}

// NewEducationInquiryFlow creates a new education inquiry flow instance.
// The redis client is optional; a nil client degrades to database counts.
func NewEducationInquiryFlow(inquiryRepo repository.EducationInquiryRepository, rc *redis.Client, db *gorm.DB) EducationInquiryFlow {
	return &EducationInquiryFlowImpl{
		inquiryRepo: inquiryRepo,
		rc:          rc,
		db:          db,
	}
}

// Submit validates the inquiry and persists it inside one transaction.
// A prior inquiry from the same phone number attaches a warning to the
// response but never blocks creation.
func (s *EducationInquiryFlowImpl) Submit(ctx context.Context, req *dto.EducationInquiryRequest, metadata *ClientMetadata) (*dto.SubmitInquiryResponse, error) {
	if !req.PrivacyAgreed {
		return nil, ErrPrivacyNotAgreed
	}

	phone := utils.NormalizePhone(req.PhoneNumber)
	if !utils.IsValidPhone(phone) {
		return nil, NewBusinessError("INVALID_PHONE", "phone number must be 10-11 digits", nil)
	}

	inquiry := &models.EducationInquiry{
		OrganizationName: req.OrganizationName,
		ContactPerson:    req.ContactPerson,
		PhoneNumber:      phone,
		Email:            req.Email,
		StudentCount:     req.StudentCount,
		Grade:            req.Grade,
		PreferredDate:    req.PreferredDate,
		Message:          req.Message,
		PurchaseInquiry:  req.PurchaseInquiry,
		SchoolVisit:      req.SchoolVisit,
		CareerExperience: req.CareerExperience,
		BoothEntrustment: req.BoothEntrustment,
		OtherInquiry:     req.OtherInquiry,
		OtherText:        req.OtherText,
		PrivacyAgreed:    req.PrivacyAgreed,
		ContactAgreed:    req.ContactAgreedOrDefault(),
		MarketingAgreed:  req.MarketingAgreed,
		Status:           models.StatusPending,
	}

	var warning string

	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		existing, err := s.inquiryRepo.ByPhoneNumber(txCtx, phone)
		if err != nil {
			return err
		}
		if existing != nil {
			warning = "An inquiry from this phone number has already been received."
		}

		return s.inquiryRepo.Save(txCtx, inquiry)
	})
	if err != nil {
		return nil, err
	}

	s.invalidatePendingCount(ctx)

	return &dto.SubmitInquiryResponse{
		Success:   true,
		Message:   "Your education inquiry has been received. We will contact you shortly.",
		Warning:   warning,
		InquiryID: inquiry.ID,
		Data:      inquiry,
	}, nil
}

// List applies at most one filter, in a fixed precedence order: status,
// then organization name, then contact person, then interest type, then
// everything.
func (s *EducationInquiryFlowImpl) List(ctx context.Context, status, organizationName, contactPerson, interestType string) ([]*models.EducationInquiry, error) {
	switch {
	case status != "":
		parsed, err := models.ParseInquiryStatus(status)
		if err != nil {
			return nil, NewBusinessError("INVALID_STATUS", fmt.Sprintf("invalid status value: %s", status), ErrInvalidStatus)
		}
		return s.inquiryRepo.ByStatus(ctx, parsed)
	case organizationName != "":
		return s.inquiryRepo.SearchByOrganizationName(ctx, organizationName)
	case contactPerson != "":
		return s.inquiryRepo.SearchByContactPerson(ctx, contactPerson)
	case interestType != "":
		inquiries, err := s.inquiryRepo.ByInterestType(ctx, interestType)
		if err != nil {
			return nil, NewBusinessError("INVALID_INTEREST_TYPE", fmt.Sprintf("invalid interest type: %s", interestType), ErrInvalidInterestType)
		}
		return inquiries, nil
	default:
		return s.inquiryRepo.ByFilter(ctx, models.EducationInquiryFilter{}, "created_at DESC", 0, 0)
	}
}

// Get retrieves a single inquiry by id
func (s *EducationInquiryFlowImpl) Get(ctx context.Context, id uint) (*models.EducationInquiry, error) {
	inquiry, err := s.inquiryRepo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inquiry == nil {
		return nil, ErrInquiryNotFound
	}

	return inquiry, nil
}

// UpdateStatus transitions the inquiry status and records which admin
// handled it. The processed timestamp is stamped on the transition to
// COMPLETED and never cleared afterwards.
func (s *EducationInquiryFlowImpl) UpdateStatus(ctx context.Context, id uint, status, adminUsername string) (*models.EducationInquiry, error) {
	parsed, err := models.ParseInquiryStatus(status)
	if err != nil {
		return nil, NewBusinessError("INVALID_STATUS", fmt.Sprintf("invalid status value: %s", status), ErrInvalidStatus)
	}

	admin := adminUsername
	if admin == "" {
		admin = "admin"
	}

	var inquiry *models.EducationInquiry

	err = repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		var err error
		inquiry, err = s.inquiryRepo.ByID(txCtx, id)
		if err != nil {
			return err
		}
		if inquiry == nil {
			return ErrInquiryNotFound
		}

		updates := map[string]any{
			"status":         parsed,
			"assigned_admin": admin,
		}
		if parsed == models.StatusCompleted {
			updates["processed_at"] = utils.UTCNow()
		}

		if err := s.inquiryRepo.Updates(txCtx, id, updates); err != nil {
			return err
		}

		inquiry, err = s.inquiryRepo.ByID(txCtx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidatePendingCount(ctx)

	return inquiry, nil
}

// AddNotes attaches a free-text admin note to the inquiry
func (s *EducationInquiryFlowImpl) AddNotes(ctx context.Context, id uint, notes, adminUsername string) (*models.EducationInquiry, error) {
	admin := adminUsername
	if admin == "" {
		admin = "admin"
	}

	var inquiry *models.EducationInquiry

	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		var err error
		inquiry, err = s.inquiryRepo.ByID(txCtx, id)
		if err != nil {
			return err
		}
		if inquiry == nil {
			return ErrInquiryNotFound
		}

		updates := map[string]any{
			"admin_notes":    notes,
			"assigned_admin": admin,
		}

		if err := s.inquiryRepo.Updates(txCtx, id, updates); err != nil {
			return err
		}

		inquiry, err = s.inquiryRepo.ByID(txCtx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return inquiry, nil
}

// Recent retrieves the newest inquiries for the admin dashboard
func (s *EducationInquiryFlowImpl) Recent(ctx context.Context) ([]*models.EducationInquiry, error) {
	return s.inquiryRepo.Recent(ctx, utils.RecentLimit)
}

// PendingCount returns the number of inquiries awaiting processing,
// served from the cache when one is configured.
func (s *EducationInquiryFlowImpl) PendingCount(ctx context.Context) (int64, error) {
	if s.rc != nil {
		if cached, err := s.rc.Get(ctx, utils.EducationPendingCountCacheKey).Result(); err == nil {
			if count, err := strconv.ParseInt(cached, 10, 64); err == nil {
				return count, nil
			}
		}
	}

	count, err := s.inquiryRepo.CountByStatus(ctx, models.StatusPending)
	if err != nil {
		return 0, err
	}

	if s.rc != nil {
		_ = s.rc.Set(ctx, utils.EducationPendingCountCacheKey, strconv.FormatInt(count, 10), utils.PendingCountCacheTTL).Err()
	}

	return count, nil
}

// Delete removes an inquiry. Not exposed through the admin HTTP surface.
func (s *EducationInquiryFlowImpl) Delete(ctx context.Context, id uint) error {
	inquiry, err := s.inquiryRepo.ByID(ctx, id)
	if err != nil {
		return err
	}
	if inquiry == nil {
		return ErrInquiryNotFound
	}

	if err := s.inquiryRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidatePendingCount(ctx)

	return nil
}

func (s *EducationInquiryFlowImpl) invalidatePendingCount(ctx context.Context) {
	if s.rc == nil {
		return
	}
	_ = s.rc.Del(ctx, utils.EducationPendingCountCacheKey).Err()
}
