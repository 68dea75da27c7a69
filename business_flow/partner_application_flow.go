package businessflow

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/nallijaku/backend/app/dto"
	"github.com/nallijaku/backend/models"
	"github.com/nallijaku/backend/repository"
	"github.com/nallijaku/backend/utils"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// PartnerApplicationFlow handles submission and admin processing of
// partner applications, including interview scheduling
type PartnerApplicationFlow interface {
	Submit(ctx context.Context, req *dto.PartnerApplicationRequest, metadata *ClientMetadata) (*dto.SubmitApplicationResponse, error)
	List(ctx context.Context, status, applicantName, location, certification string) ([]*models.PartnerApplication, error)
	Get(ctx context.Context, id uint) (*models.PartnerApplication, error)
	UpdateStatus(ctx context.Context, id uint, status, adminUsername string) (*models.PartnerApplication, error)
	AddNotes(ctx context.Context, id uint, notes, adminUsername string) (*models.PartnerApplication, error)
	ScheduleInterview(ctx context.Context, id uint, interviewDate, adminUsername string) (*models.PartnerApplication, error)
	AddInterviewNotes(ctx context.Context, id uint, notes, adminUsername string) (*models.PartnerApplication, error)
	ScheduledInterviews(ctx context.Context) ([]*models.PartnerApplication, error)
	Recent(ctx context.Context) ([]*models.PartnerApplication, error)
	PendingCount(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id uint) error
}

// PartnerApplicationFlowImpl implements the partner application business flow
type PartnerApplicationFlowImpl struct {
	applicationRepo repository.PartnerApplicationRepository
	rc              *redis.Client
	db              *gorm.DB
}

// NewPartnerApplicationFlow creates a new partner application flow instance.
// The redis client is optional; a nil client degrades to database counts.
func NewPartnerApplicationFlow(applicationRepo repository.PartnerApplicationRepository, rc *redis.Client, db *gorm.DB) PartnerApplicationFlow {
	return &PartnerApplicationFlowImpl{
		applicationRepo: applicationRepo,
		rc:              rc,
		db:              db,
	}
}

// Submit validates the application and persists it inside one transaction.
// A prior application from the same email attaches a warning to the
// response but never blocks creation.
func (s *PartnerApplicationFlowImpl) Submit(ctx context.Context, req *dto.PartnerApplicationRequest, metadata *ClientMetadata) (*dto.SubmitApplicationResponse, error) {
	if !req.PrivacyAgreed {
		return nil, ErrPrivacyNotAgreed
	}
	if !req.HasCertification() {
		return nil, ErrCertificationRequired
	}

	phone := utils.NormalizePhone(req.PhoneNumber)
	if !utils.IsValidPhone(phone) {
		return nil, NewBusinessError("INVALID_PHONE", "phone number must be 10-11 digits", nil)
	}

	application := &models.PartnerApplication{
		ApplicantName:   req.ApplicantName,
		PhoneNumber:     phone,
		Email:           req.Email,
		Location:        utils.EmptyToNil(req.Location),
		Experience:      utils.EmptyToNil(req.Experience),
		PracticalCert:   req.PracticalCert,
		Class1Cert:      req.Class1Cert,
		Class2Cert:      req.Class2Cert,
		Class3Cert:      req.Class3Cert,
		InstructorCert:  req.InstructorCert,
		OtherCert:       req.OtherCert,
		OtherCertText:   req.OtherCertText,
		PrivacyAgreed:   req.PrivacyAgreed,
		MarketingAgreed: req.MarketingAgreed,
		Status:          models.StatusPending,
	}

	var warning string

	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		existing, err := s.applicationRepo.ByEmail(txCtx, req.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			warning = "An application from this email address has already been received."
		}

		return s.applicationRepo.Save(txCtx, application)
	})
	if err != nil {
		return nil, err
	}

	s.invalidatePendingCount(ctx)

	return &dto.SubmitApplicationResponse{
		Success:       true,
		Message:       "Your partner application has been received. We will contact you shortly.",
		Warning:       warning,
		ApplicationID: application.ID,
		Data:          application,
	}, nil
}

// List applies at most one filter, in a fixed precedence order: status,
// then applicant name, then location, then certification, then everything.
func (s *PartnerApplicationFlowImpl) List(ctx context.Context, status, applicantName, location, certification string) ([]*models.PartnerApplication, error) {
	switch {
	case status != "":
		parsed, err := models.ParseInquiryStatus(status)
		if err != nil {
			return nil, NewBusinessError("INVALID_STATUS", fmt.Sprintf("invalid status value: %s", status), ErrInvalidStatus)
		}
		return s.applicationRepo.ByStatus(ctx, parsed)
	case applicantName != "":
		return s.applicationRepo.SearchByApplicantName(ctx, applicantName)
	case location != "":
		return s.applicationRepo.SearchByLocation(ctx, location)
	case certification != "":
		applications, err := s.applicationRepo.ByCertification(ctx, certification)
		if err != nil {
			return nil, NewBusinessError("INVALID_CERTIFICATION_TYPE", fmt.Sprintf("invalid certification type: %s", certification), ErrInvalidCertificationType)
		}
		return applications, nil
	default:
		return s.applicationRepo.ByFilter(ctx, models.PartnerApplicationFilter{}, "created_at DESC", 0, 0)
	}
}

// Get retrieves a single application by id
func (s *PartnerApplicationFlowImpl) Get(ctx context.Context, id uint) (*models.PartnerApplication, error) {
	application, err := s.applicationRepo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if application == nil {
		return nil, ErrApplicationNotFound
	}

	return application, nil
}

// UpdateStatus transitions the application status and records which admin
// handled it. The processed timestamp is stamped on the transition to
// COMPLETED and never cleared afterwards.
func (s *PartnerApplicationFlowImpl) UpdateStatus(ctx context.Context, id uint, status, adminUsername string) (*models.PartnerApplication, error) {
	parsed, err := models.ParseInquiryStatus(status)
	if err != nil {
		return nil, NewBusinessError("INVALID_STATUS", fmt.Sprintf("invalid status value: %s", status), ErrInvalidStatus)
	}

	admin := adminUsername
	if admin == "" {
		admin = "admin"
	}

	var application *models.PartnerApplication

	err = repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		var err error
		application, err = s.applicationRepo.ByID(txCtx, id)
		if err != nil {
			return err
		}
		if application == nil {
			return ErrApplicationNotFound
		}

		updates := map[string]any{
			"status":         parsed,
			"assigned_admin": admin,
		}
		if parsed == models.StatusCompleted {
			updates["processed_at"] = utils.UTCNow()
		}

		if err := s.applicationRepo.Updates(txCtx, id, updates); err != nil {
			return err
		}

		application, err = s.applicationRepo.ByID(txCtx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidatePendingCount(ctx)

	return application, nil
}

// AddNotes attaches a free-text admin note to the application
func (s *PartnerApplicationFlowImpl) AddNotes(ctx context.Context, id uint, notes, adminUsername string) (*models.PartnerApplication, error) {
	return s.update(ctx, id, map[string]any{
		"admin_notes":    notes,
		"assigned_admin": resolveAdmin(adminUsername),
	})
}

// ScheduleInterview sets the interview timestamp and forces the
// application into IN_PROGRESS regardless of its prior status.
func (s *PartnerApplicationFlowImpl) ScheduleInterview(ctx context.Context, id uint, interviewDate, adminUsername string) (*models.PartnerApplication, error) {
	scheduledAt, err := time.Parse(utils.InterviewDateLayout, interviewDate)
	if err != nil {
		return nil, NewBusinessError("INVALID_INTERVIEW_DATE", fmt.Sprintf("invalid interview date: %s", interviewDate), ErrInvalidInterviewDate)
	}

	application, err := s.update(ctx, id, map[string]any{
		"interview_scheduled_at": scheduledAt,
		"assigned_admin":         resolveAdmin(adminUsername),
		"status":                 models.StatusInProgress,
	})
	if err != nil {
		return nil, err
	}

	s.invalidatePendingCount(ctx)

	return application, nil
}

// AddInterviewNotes attaches free-text interview feedback to the application
func (s *PartnerApplicationFlowImpl) AddInterviewNotes(ctx context.Context, id uint, notes, adminUsername string) (*models.PartnerApplication, error) {
	return s.update(ctx, id, map[string]any{
		"interview_notes": notes,
		"assigned_admin":  resolveAdmin(adminUsername),
	})
}

// ScheduledInterviews retrieves every application with an interview on the
// calendar, soonest first
func (s *PartnerApplicationFlowImpl) ScheduledInterviews(ctx context.Context) ([]*models.PartnerApplication, error) {
	return s.applicationRepo.WithScheduledInterview(ctx)
}

// Recent retrieves the newest applications for the admin dashboard
func (s *PartnerApplicationFlowImpl) Recent(ctx context.Context) ([]*models.PartnerApplication, error) {
	return s.applicationRepo.Recent(ctx, utils.RecentLimit)
}

// PendingCount returns the number of applications awaiting processing,
// served from the cache when one is configured.
func (s *PartnerApplicationFlowImpl) PendingCount(ctx context.Context) (int64, error) {
	if s.rc != nil {
		if cached, err := s.rc.Get(ctx, utils.PartnerPendingCountCacheKey).Result(); err == nil {
			if count, err := strconv.ParseInt(cached, 10, 64); err == nil {
				return count, nil
			}
		}
	}

	count, err := s.applicationRepo.CountByStatus(ctx, models.StatusPending)
	if err != nil {
		return 0, err
	}

	if s.rc != nil {
		_ = s.rc.Set(ctx, utils.PartnerPendingCountCacheKey, strconv.FormatInt(count, 10), utils.PendingCountCacheTTL).Err()
	}

	return count, nil
}

// Delete removes an application. Not exposed through the admin HTTP surface.
func (s *PartnerApplicationFlowImpl) Delete(ctx context.Context, id uint) error {
	application, err := s.applicationRepo.ByID(ctx, id)
	if err != nil {
		return err
	}
	if application == nil {
		return ErrApplicationNotFound
	}

	if err := s.applicationRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidatePendingCount(ctx)

	return nil
}

// update applies the column updates inside one transaction and reloads the
// record, failing when the id does not exist.
func (s *PartnerApplicationFlowImpl) update(ctx context.Context, id uint, updates map[string]any) (*models.PartnerApplication, error) {
	var application *models.PartnerApplication

	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		var err error
		application, err = s.applicationRepo.ByID(txCtx, id)
		if err != nil {
			return err
		}
		if application == nil {
			return ErrApplicationNotFound
		}

		if err := s.applicationRepo.Updates(txCtx, id, updates); err != nil {
			return err
		}

		application, err = s.applicationRepo.ByID(txCtx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return application, nil
}

func (s *PartnerApplicationFlowImpl) invalidatePendingCount(ctx context.Context) {
	if s.rc == nil {
		return
	}
	_ = s.rc.Del(ctx, utils.PartnerPendingCountCacheKey).Err()
}

func resolveAdmin(adminUsername string) string {
	if adminUsername == "" {
		return "admin"
	}
	return adminUsername
}
