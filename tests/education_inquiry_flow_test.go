package tests

import (
	"context"
	"testing"

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

func inquiryRequest(phone string) *dto.EducationInquiryRequest {
	return &dto.EducationInquiryRequest{
		OrganizationName: "Busan Middle School",
		ContactPerson:    "Park Teacher",
		PhoneNumber:      phone,
		Email:            "park@school.kr",
		SchoolVisit:      true,
		PrivacyAgreed:    true,
	}
}

func TestSubmitEducationInquiry(t *testing.T) {
	withTestDB(t, func(testDB *testingutil.TestDB) {
		inquiryRepo := repository.NewEducationInquiryRepository(testDB.DB)
		flow := businessflow.NewEducationInquiryFlow(inquiryRepo, nil, testDB.DB)
		metadata := businessflow.NewClientMetadata("127.0.0.1", "test-agent")

		t.Run("SuccessfulSubmission", func(t *testing.T) {
			result, err := flow.Submit(context.Background(), inquiryRequest("010-1111-2222"), metadata)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, result.Success)
			assert.Equal(t, "Your education inquiry has been received. We will contact you shortly.", result.Message)
			assert.Empty(t, result.Warning)
			assert.NotZero(t, result.InquiryID)

			inquiry, err := inquiryRepo.ByID(context.Background(), result.InquiryID)
			require.NoError(t, err)
			require.NotNil(t, inquiry)
			assert.Equal(t, "01011112222", inquiry.PhoneNumber, "phone must be stored digits-only")
			assert.Equal(t, models.StatusPending, inquiry.Status)
			assert.True(t, inquiry.ContactAgreed, "contact agreement defaults to true when omitted")
		})

		t.Run("DuplicatePhoneWarnsButCreates", func(t *testing.T) {
			first, err := flow.Submit(context.Background(), inquiryRequest("010-3333-4444"), metadata)
			require.NoError(t, err)
			assert.Empty(t, first.Warning)

			second, err := flow.Submit(context.Background(), inquiryRequest("010-3333-4444"), metadata)
			require.NoError(t, err)
			assert.True(t, second.Success)
			assert.Equal(t, "An inquiry from this phone number has already been received.", second.Warning)
			assert.NotEqual(t, first.InquiryID, second.InquiryID)
		})

		t.Run("PrivacyNotAgreed", func(t *testing.T) {
			req := inquiryRequest("010-5555-6666")
			req.PrivacyAgreed = false

			_, err := flow.Submit(context.Background(), req, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsPrivacyNotAgreed(err))
		})

		t.Run("ExplicitContactAgreedFalse", func(t *testing.T) {
			req := inquiryRequest("010-7777-8888")
			req.ContactAgreed = utils.ToPtr(false)

			result, err := flow.Submit(context.Background(), req, metadata)
			require.NoError(t, err)

			inquiry, err := inquiryRepo.ByID(context.Background(), result.InquiryID)
			require.NoError(t, err)
			require.NotNil(t, inquiry)
			assert.False(t, inquiry.ContactAgreed)
		})
	})
}

func TestEducationInquiryFormRemap(t *testing.T) {
	form := &dto.EducationInquiryForm{
		SchoolName:       "Daegu High School",
		ContactPerson:    "Choi Teacher",
		Phone:            "010-9999-0000",
		Email:            "choi@school.kr",
		Other:            true,
		OtherText:        utils.ToPtr("drone coding camp"),
		PrivacyAgreement: true,
	}

	req := form.ToRequest()
	assert.Equal(t, "Daegu High School", req.OrganizationName)
	assert.Equal(t, "010-9999-0000", req.PhoneNumber)
	assert.True(t, req.OtherInquiry)
	assert.True(t, req.PrivacyAgreed)
	require.NotNil(t, req.OtherText)
	assert.Equal(t, "drone coding camp", *req.OtherText)
}

func TestEducationInquiryAdminFlow(t *testing.T) {
	withTestDB(t, func(testDB *testingutil.TestDB) {
		fixtures := testingutil.NewTestFixtures(testDB)
		inquiryRepo := repository.NewEducationInquiryRepository(testDB.DB)
		flow := businessflow.NewEducationInquiryFlow(inquiryRepo, nil, testDB.DB)

		t.Run("StatusLifecycle", func(t *testing.T) {
			inquiry, err := fixtures.CreateTestEducationInquiry(models.StatusPending)
			require.NoError(t, err)

			// COMPLETED stamps the processed timestamp
			updated, err := flow.UpdateStatus(context.Background(), inquiry.ID, "completed", "manager")
			require.NoError(t, err)
			assert.Equal(t, models.StatusCompleted, updated.Status)
			require.NotNil(t, updated.AssignedAdmin)
			assert.Equal(t, "manager", *updated.AssignedAdmin)
			require.NotNil(t, updated.ProcessedAt)
			processedAt := *updated.ProcessedAt

			// A later transition keeps the original processed timestamp
			updated, err = flow.UpdateStatus(context.Background(), inquiry.ID, "IN_PROGRESS", "reviewer")
			require.NoError(t, err)
			assert.Equal(t, models.StatusInProgress, updated.Status)
			require.NotNil(t, updated.AssignedAdmin)
			assert.Equal(t, "reviewer", *updated.AssignedAdmin)
			require.NotNil(t, updated.ProcessedAt)
			assert.WithinDuration(t, processedAt, *updated.ProcessedAt, 0)
		})

		t.Run("DefaultAdminUsername", func(t *testing.T) {
			inquiry, err := fixtures.CreateTestEducationInquiry(models.StatusPending)
			require.NoError(t, err)

			updated, err := flow.UpdateStatus(context.Background(), inquiry.ID, "CANCELLED", "")
			require.NoError(t, err)
			require.NotNil(t, updated.AssignedAdmin)
			assert.Equal(t, "admin", *updated.AssignedAdmin)
		})

		t.Run("InvalidStatus", func(t *testing.T) {
			inquiry, err := fixtures.CreateTestEducationInquiry(models.StatusPending)
			require.NoError(t, err)

			_, err = flow.UpdateStatus(context.Background(), inquiry.ID, "DONE", "admin")
			require.Error(t, err)
			assert.True(t, businessflow.IsInvalidStatus(err))
		})

		t.Run("UnknownID", func(t *testing.T) {
			_, err := flow.UpdateStatus(context.Background(), 999999, "COMPLETED", "admin")
			require.Error(t, err)
			assert.True(t, businessflow.IsNotFound(err))

			_, err = flow.Get(context.Background(), 999999)
			require.Error(t, err)
			assert.True(t, businessflow.IsNotFound(err))
		})

		t.Run("AddNotes", func(t *testing.T) {
			inquiry, err := fixtures.CreateTestEducationInquiry(models.StatusPending)
			require.NoError(t, err)

			updated, err := flow.AddNotes(context.Background(), inquiry.ID, "called back, awaiting reply", "manager")
			require.NoError(t, err)
			require.NotNil(t, updated.AdminNotes)
			assert.Equal(t, "called back, awaiting reply", *updated.AdminNotes)
			require.NotNil(t, updated.AssignedAdmin)
			assert.Equal(t, "manager", *updated.AssignedAdmin)
		})
	})
}

func TestEducationInquiryListFilters(t *testing.T) {
	withTestDB(t, func(testDB *testingutil.TestDB) {
		fixtures := testingutil.NewTestFixtures(testDB)
		inquiryRepo := repository.NewEducationInquiryRepository(testDB.DB)
		flow := businessflow.NewEducationInquiryFlow(inquiryRepo, nil, testDB.DB)

		_, err := fixtures.CreateTestEducationInquiry(models.StatusPending)
		require.NoError(t, err)
		_, err = fixtures.CreateTestEducationInquiry(models.StatusPending)
		require.NoError(t, err)
		completed, err := fixtures.CreateTestEducationInquiry(models.StatusCompleted)
		require.NoError(t, err)

		t.Run("ByStatusCaseInsensitive", func(t *testing.T) {
			inquiries, err := flow.List(context.Background(), "pending", "", "", "")
			require.NoError(t, err)
			assert.Len(t, inquiries, 2)

			inquiries, err = flow.List(context.Background(), "COMPLETED", "", "", "")
			require.NoError(t, err)
			require.Len(t, inquiries, 1)
			assert.Equal(t, completed.ID, inquiries[0].ID)
		})

		t.Run("ByOrganizationSubstring", func(t *testing.T) {
			inquiries, err := flow.List(context.Background(), "", "Elementary", "", "")
			require.NoError(t, err)
			assert.Len(t, inquiries, 3)

			inquiries, err = flow.List(context.Background(), "", "University", "", "")
			require.NoError(t, err)
			assert.Empty(t, inquiries)
		})

		t.Run("ByInterestType", func(t *testing.T) {
			inquiries, err := flow.List(context.Background(), "", "", "", "visit")
			require.NoError(t, err)
			assert.Len(t, inquiries, 3)

			inquiries, err = flow.List(context.Background(), "", "", "", "purchase")
			require.NoError(t, err)
			assert.Empty(t, inquiries)
		})

		t.Run("UnknownInterestType", func(t *testing.T) {
			_, err := flow.List(context.Background(), "", "", "", "robots")
			require.Error(t, err)
			assert.True(t, businessflow.IsInvalidFilter(err))
		})

		t.Run("NoFilterListsAllNewestFirst", func(t *testing.T) {
			inquiries, err := flow.List(context.Background(), "", "", "", "")
			require.NoError(t, err)
			require.Len(t, inquiries, 3)
			for i := 1; i < len(inquiries); i++ {
				assert.False(t, inquiries[i].CreatedAt.After(inquiries[i-1].CreatedAt))
			}
		})

		t.Run("Recent", func(t *testing.T) {
			inquiries, err := flow.Recent(context.Background())
			require.NoError(t, err)
			assert.Len(t, inquiries, 3)
		})
	})
}

func TestEducationInquiryPendingCount(t *testing.T) {
	withTestDB(t, func(testDB *testingutil.TestDB) {
		fixtures := testingutil.NewTestFixtures(testDB)
		inquiryRepo := repository.NewEducationInquiryRepository(testDB.DB)

		_, err := fixtures.CreateTestEducationInquiry(models.StatusPending)
		require.NoError(t, err)
		_, err = fixtures.CreateTestEducationInquiry(models.StatusPending)
		require.NoError(t, err)
		_, err = fixtures.CreateTestEducationInquiry(models.StatusCompleted)
		require.NoError(t, err)

		t.Run("WithoutCache", func(t *testing.T) {
			flow := businessflow.NewEducationInquiryFlow(inquiryRepo, nil, testDB.DB)

			count, err := flow.PendingCount(context.Background())
			require.NoError(t, err)
			assert.Equal(t, int64(2), count)
		})

		t.Run("WithCache", func(t *testing.T) {
			mr := miniredis.RunT(t)
			rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
			flow := businessflow.NewEducationInquiryFlow(inquiryRepo, rc, testDB.DB)

			count, err := flow.PendingCount(context.Background())
			require.NoError(t, err)
			assert.Equal(t, int64(2), count)

			// First call populates the cache
			cached, err := mr.Get(utils.EducationPendingCountCacheKey)
			require.NoError(t, err)
			assert.Equal(t, "2", cached)

			// A stale cached value is served as-is until invalidated
			require.NoError(t, mr.Set(utils.EducationPendingCountCacheKey, "7"))
			count, err = flow.PendingCount(context.Background())
			require.NoError(t, err)
			assert.Equal(t, int64(7), count)
		})

		t.Run("StatusChangeInvalidatesCache", func(t *testing.T) {
			mr := miniredis.RunT(t)
			rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
			flow := businessflow.NewEducationInquiryFlow(inquiryRepo, rc, testDB.DB)

			count, err := flow.PendingCount(context.Background())
			require.NoError(t, err)
			require.Equal(t, int64(2), count)

			pending, err := flow.List(context.Background(), "PENDING", "", "", "")
			require.NoError(t, err)
			require.NotEmpty(t, pending)

			_, err = flow.UpdateStatus(context.Background(), pending[0].ID, "COMPLETED", "admin")
			require.NoError(t, err)

			count, err = flow.PendingCount(context.Background())
			require.NoError(t, err)
			assert.Equal(t, int64(1), count)
		})
	})
}
