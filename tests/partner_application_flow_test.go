package tests

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/nallijaku/backend/app/dto"
	businessflow "github.com/nallijaku/backend/business_flow"
	"github.com/nallijaku/backend/models"
	"github.com/nallijaku/backend/repository"
	testingutil "github.com/nallijaku/backend/testing"
	"github.com/nallijaku/backend/utils"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applicationRequest(email string) *dto.PartnerApplicationRequest {
	return &dto.PartnerApplicationRequest{
		ApplicantName: "Jung Instructor",
		PhoneNumber:   "010-2222-3333",
		Email:         email,
		Location:      "Incheon",
		Experience:    "5 years of drone piloting",
		PracticalCert: true,
		PrivacyAgreed: true,
	}
}

func TestSubmitPartnerApplication(t *testing.T) {
	withTestDB(t, func(testDB *testingutil.TestDB) {
		applicationRepo := repository.NewPartnerApplicationRepository(testDB.DB)
		flow := businessflow.NewPartnerApplicationFlow(applicationRepo, nil, testDB.DB)
		metadata := businessflow.NewClientMetadata("127.0.0.1", "test-agent")

		t.Run("SuccessfulSubmission", func(t *testing.T) {
			result, err := flow.Submit(context.Background(), applicationRequest("jung@example.com"), metadata)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, result.Success)
			assert.Empty(t, result.Warning)
			assert.NotZero(t, result.ApplicationID)

			application, err := applicationRepo.ByID(context.Background(), result.ApplicationID)
			require.NoError(t, err)
			require.NotNil(t, application)
			assert.Equal(t, "01022223333", application.PhoneNumber, "phone must be stored digits-only")
			assert.Equal(t, models.StatusPending, application.Status)
			require.NotNil(t, application.Location)
			assert.Equal(t, "Incheon", *application.Location)
			assert.True(t, application.PracticalCert)
		})

		t.Run("DuplicateEmailWarnsButCreates", func(t *testing.T) {
			first, err := flow.Submit(context.Background(), applicationRequest("dup@example.com"), metadata)
			require.NoError(t, err)
			assert.Empty(t, first.Warning)

			second, err := flow.Submit(context.Background(), applicationRequest("dup@example.com"), metadata)
			require.NoError(t, err)
			assert.True(t, second.Success)
			assert.Equal(t, "An application from this email address has already been received.", second.Warning)
			assert.NotEqual(t, first.ApplicationID, second.ApplicationID)
		})

		t.Run("NoCertificationSelected", func(t *testing.T) {
			req := applicationRequest("nocert@example.com")
			req.PracticalCert = false

			_, err := flow.Submit(context.Background(), req, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsCertificationRequired(err))
		})

		t.Run("PrivacyNotAgreed", func(t *testing.T) {
			req := applicationRequest("noprivacy@example.com")
			req.PrivacyAgreed = false

			_, err := flow.Submit(context.Background(), req, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsPrivacyNotAgreed(err))
		})
	})
}

func TestPartnerApplicationFormRemap(t *testing.T) {
	form := &dto.PartnerApplicationForm{
		ContactPerson:    "Han Instructor",
		Phone:            "010-4444-5555",
		Email:            "han@example.com",
		Location:         "Gwangju",
		Experience:       "2 years",
		Other:            true,
		OtherCertText:    utils.ToPtr("FPV racing license"),
		PrivacyAgreement: true,
	}

	req := form.ToRequest()
	assert.Equal(t, "Han Instructor", req.ApplicantName)
	assert.Equal(t, "010-4444-5555", req.PhoneNumber)
	assert.True(t, req.OtherCert)
	assert.True(t, req.PrivacyAgreed)
	require.NotNil(t, req.OtherCertText)
	assert.Equal(t, "FPV racing license", *req.OtherCertText)
}

func TestPartnerApplicationAdminFlow(t *testing.T) {
	withTestDB(t, func(testDB *testingutil.TestDB) {
		fixtures := testingutil.NewTestFixtures(testDB)
		applicationRepo := repository.NewPartnerApplicationRepository(testDB.DB)
		flow := businessflow.NewPartnerApplicationFlow(applicationRepo, nil, testDB.DB)

		t.Run("StatusLifecycle", func(t *testing.T) {
			application, err := fixtures.CreateTestPartnerApplication(models.StatusPending)
			require.NoError(t, err)

			updated, err := flow.UpdateStatus(context.Background(), application.ID, "completed", "manager")
			require.NoError(t, err)
			assert.Equal(t, models.StatusCompleted, updated.Status)
			require.NotNil(t, updated.ProcessedAt)
			processedAt := *updated.ProcessedAt

			updated, err = flow.UpdateStatus(context.Background(), application.ID, "in_progress", "reviewer")
			require.NoError(t, err)
			assert.Equal(t, models.StatusInProgress, updated.Status)
			require.NotNil(t, updated.ProcessedAt)
			assert.WithinDuration(t, processedAt, *updated.ProcessedAt, 0)
		})

		t.Run("InvalidStatus", func(t *testing.T) {
			application, err := fixtures.CreateTestPartnerApplication(models.StatusPending)
			require.NoError(t, err)

			_, err = flow.UpdateStatus(context.Background(), application.ID, "FINISHED", "admin")
			require.Error(t, err)
			assert.True(t, businessflow.IsInvalidStatus(err))
		})

		t.Run("UnknownID", func(t *testing.T) {
			_, err := flow.Get(context.Background(), 999999)
			require.Error(t, err)
			assert.True(t, businessflow.IsNotFound(err))
		})

		t.Run("ScheduleInterviewForcesInProgress", func(t *testing.T) {
			application, err := fixtures.CreateTestPartnerApplication(models.StatusPending)
			require.NoError(t, err)

			updated, err := flow.ScheduleInterview(context.Background(), application.ID, "2026-09-15 14:30", "manager")
			require.NoError(t, err)
			assert.Equal(t, models.StatusInProgress, updated.Status)
			require.NotNil(t, updated.InterviewScheduledAt)
			expected := time.Date(2026, 9, 15, 14, 30, 0, 0, time.UTC)
			assert.True(t, updated.InterviewScheduledAt.Equal(expected))
			require.NotNil(t, updated.AssignedAdmin)
			assert.Equal(t, "manager", *updated.AssignedAdmin)
		})

		t.Run("InvalidInterviewDate", func(t *testing.T) {
			application, err := fixtures.CreateTestPartnerApplication(models.StatusPending)
			require.NoError(t, err)

			_, err = flow.ScheduleInterview(context.Background(), application.ID, "next tuesday", "manager")
			require.Error(t, err)
			assert.True(t, businessflow.IsInvalidInterviewDate(err))
		})

		t.Run("InterviewNotes", func(t *testing.T) {
			application, err := fixtures.CreateTestPartnerApplication(models.StatusInProgress)
			require.NoError(t, err)

			updated, err := flow.AddInterviewNotes(context.Background(), application.ID, "strong practical skills", "manager")
			require.NoError(t, err)
			require.NotNil(t, updated.InterviewNotes)
			assert.Equal(t, "strong practical skills", *updated.InterviewNotes)
		})

		t.Run("ScheduledInterviewsSoonestFirst", func(t *testing.T) {
			late, err := fixtures.CreateTestPartnerApplication(models.StatusPending)
			require.NoError(t, err)
			early, err := fixtures.CreateTestPartnerApplication(models.StatusPending)
			require.NoError(t, err)

			_, err = flow.ScheduleInterview(context.Background(), late.ID, "2026-10-20 10:00", "manager")
			require.NoError(t, err)
			_, err = flow.ScheduleInterview(context.Background(), early.ID, "2026-10-01 10:00", "manager")
			require.NoError(t, err)

			scheduled, err := flow.ScheduledInterviews(context.Background())
			require.NoError(t, err)
			require.GreaterOrEqual(t, len(scheduled), 2)
			for i := 1; i < len(scheduled); i++ {
				require.NotNil(t, scheduled[i].InterviewScheduledAt)
				assert.False(t, scheduled[i].InterviewScheduledAt.Before(*scheduled[i-1].InterviewScheduledAt))
			}
		})
	})
}

func TestPartnerApplicationListFilters(t *testing.T) {
	withTestDB(t, func(testDB *testingutil.TestDB) {
		fixtures := testingutil.NewTestFixtures(testDB)
		applicationRepo := repository.NewPartnerApplicationRepository(testDB.DB)
		flow := businessflow.NewPartnerApplicationFlow(applicationRepo, nil, testDB.DB)

		_, err := fixtures.CreateTestPartnerApplication(models.StatusPending)
		require.NoError(t, err)
		_, err = fixtures.CreateTestPartnerApplication(models.StatusInProgress)
		require.NoError(t, err)

		t.Run("ByStatus", func(t *testing.T) {
			applications, err := flow.List(context.Background(), "in_progress", "", "", "")
			require.NoError(t, err)
			assert.Len(t, applications, 1)
		})

		t.Run("ByApplicantSubstring", func(t *testing.T) {
			applications, err := flow.List(context.Background(), "", "Lee", "", "")
			require.NoError(t, err)
			assert.Len(t, applications, 2)

			applications, err = flow.List(context.Background(), "", "Park", "", "")
			require.NoError(t, err)
			assert.Empty(t, applications)
		})

		t.Run("ByLocationSubstring", func(t *testing.T) {
			applications, err := flow.List(context.Background(), "", "", "Seoul", "")
			require.NoError(t, err)
			assert.Len(t, applications, 2)
		})

		t.Run("ByCertification", func(t *testing.T) {
			applications, err := flow.List(context.Background(), "", "", "", "practical")
			require.NoError(t, err)
			assert.Len(t, applications, 2)

			applications, err = flow.List(context.Background(), "", "", "", "instructor")
			require.NoError(t, err)
			assert.Empty(t, applications)
		})

		t.Run("UnknownCertification", func(t *testing.T) {
			_, err := flow.List(context.Background(), "", "", "", "class9")
			require.Error(t, err)
			assert.True(t, businessflow.IsInvalidFilter(err))
		})

		t.Run("NoFilterListsAll", func(t *testing.T) {
			applications, err := flow.List(context.Background(), "", "", "", "")
			require.NoError(t, err)
			assert.Len(t, applications, 2)
		})
	})
}

func TestPartnerApplicationPendingCount(t *testing.T) {
	withTestDB(t, func(testDB *testingutil.TestDB) {
		fixtures := testingutil.NewTestFixtures(testDB)
		applicationRepo := repository.NewPartnerApplicationRepository(testDB.DB)

		_, err := fixtures.CreateTestPartnerApplication(models.StatusPending)
		require.NoError(t, err)
		_, err = fixtures.CreateTestPartnerApplication(models.StatusPending)
		require.NoError(t, err)
		_, err = fixtures.CreateTestPartnerApplication(models.StatusCancelled)
		require.NoError(t, err)

		t.Run("WithoutCache", func(t *testing.T) {
			flow := businessflow.NewPartnerApplicationFlow(applicationRepo, nil, testDB.DB)

			count, err := flow.PendingCount(context.Background())
			require.NoError(t, err)
			assert.Equal(t, int64(2), count)
		})

		t.Run("InterviewSchedulingInvalidatesCache", func(t *testing.T) {
			mr := miniredis.RunT(t)
			rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
			flow := businessflow.NewPartnerApplicationFlow(applicationRepo, rc, testDB.DB)

			count, err := flow.PendingCount(context.Background())
			require.NoError(t, err)
			require.Equal(t, int64(2), count)

			pending, err := flow.List(context.Background(), "PENDING", "", "", "")
			require.NoError(t, err)
			require.NotEmpty(t, pending)

			// Scheduling moves the application to IN_PROGRESS, so the
			// cached pending count must not survive it
			_, err = flow.ScheduleInterview(context.Background(), pending[0].ID, "2026-11-05 09:00", "manager")
			require.NoError(t, err)

			count, err = flow.PendingCount(context.Background())
			require.NoError(t, err)
			assert.Equal(t, int64(1), count)
		})
	})
}
