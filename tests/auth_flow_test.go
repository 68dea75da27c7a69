package tests

import (
	"context"
	"fmt"
	"testing"

	"github.com/nallijaku/backend/app/dto"
	businessflow "github.com/nallijaku/backend/business_flow"
	"github.com/nallijaku/backend/models"
	"github.com/nallijaku/backend/repository"
	testingutil "github.com/nallijaku/backend/testing"
	"github.com/nallijaku/backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signupRequest(username string) *dto.SignupRequest {
	email := fmt.Sprintf("%s@example.com", username)
	return &dto.SignupRequest{
		Username:        username,
		Password:        "SecurePass123!",
		ConfirmPassword: "SecurePass123!",
		Email:           &email,
		Organization:    "Seoul Elementary School",
		Phone:           "010-1234-5678",
		TermsAgreed:     true,
	}
}

func TestSignup(t *testing.T) {
	withTestDB(t, func(testDB *testingutil.TestDB) {
		userRepo := repository.NewUserRepository(testDB.DB)
		authFlow := businessflow.NewAuthFlow(userRepo, testDB.DB)
		metadata := businessflow.NewClientMetadata("127.0.0.1", "test-agent")

		t.Run("SuccessfulSignup", func(t *testing.T) {
			result, err := authFlow.Signup(context.Background(), signupRequest("newuser1"), metadata)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, result.Success)
			assert.Equal(t, "Signup completed successfully.", result.Message)
			assert.NotZero(t, result.UserID)
			assert.Equal(t, "newuser1", result.Username)

			// Verify persisted state
			user, err := userRepo.ByUsername(context.Background(), "newuser1")
			require.NoError(t, err)
			require.NotNil(t, user)
			assert.Equal(t, models.RoleGeneral, user.Role)
			assert.Equal(t, "01012345678", user.Phone, "phone must be stored digits-only")
			assert.NotEqual(t, "SecurePass123!", user.PasswordHash)
			assert.True(t, user.AccountEnabled)
		})

		t.Run("SignupWithRole", func(t *testing.T) {
			req := signupRequest("studentuser")
			req.Role = "student"

			result, err := authFlow.Signup(context.Background(), req, metadata)
			require.NoError(t, err)
			assert.True(t, result.Success)

			user, err := userRepo.ByUsername(context.Background(), "studentuser")
			require.NoError(t, err)
			require.NotNil(t, user)
			assert.Equal(t, models.RoleStudent, user.Role)
		})

		t.Run("UnknownRoleFallsBackToGeneral", func(t *testing.T) {
			req := signupRequest("oddrole1")
			req.Role = "123"

			_, err := authFlow.Signup(context.Background(), req, metadata)
			require.NoError(t, err)

			user, err := userRepo.ByUsername(context.Background(), "oddrole1")
			require.NoError(t, err)
			require.NotNil(t, user)
			assert.Equal(t, models.RoleGeneral, user.Role)
		})

		t.Run("PasswordMismatchCreatesNothing", func(t *testing.T) {
			req := signupRequest("mismatch1")
			req.ConfirmPassword = "Different123!"

			_, err := authFlow.Signup(context.Background(), req, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsPasswordMismatch(err))

			user, err := userRepo.ByUsername(context.Background(), "mismatch1")
			require.NoError(t, err)
			assert.Nil(t, user, "no record may exist after a rejected signup")
		})

		t.Run("DuplicateUsername", func(t *testing.T) {
			_, err := authFlow.Signup(context.Background(), signupRequest("taken123"), metadata)
			require.NoError(t, err)

			req := signupRequest("taken123")
			other := "other@example.com"
			req.Email = &other

			_, err = authFlow.Signup(context.Background(), req, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsUsernameAlreadyExists(err))
		})

		t.Run("DuplicateEmail", func(t *testing.T) {
			_, err := authFlow.Signup(context.Background(), signupRequest("emailowner"), metadata)
			require.NoError(t, err)

			req := signupRequest("someoneelse")
			email := "emailowner@example.com"
			req.Email = &email

			_, err = authFlow.Signup(context.Background(), req, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsEmailAlreadyExists(err))
		})

		t.Run("TermsNotAgreed", func(t *testing.T) {
			req := signupRequest("noterms1")
			req.TermsAgreed = false

			_, err := authFlow.Signup(context.Background(), req, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsBadRequest(err))
		})

		t.Run("InvalidPhone", func(t *testing.T) {
			req := signupRequest("badphone")
			req.Phone = "12345"

			_, err := authFlow.Signup(context.Background(), req, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsBadRequest(err))
		})
	})
}

func TestLogin(t *testing.T) {
	withTestDB(t, func(testDB *testingutil.TestDB) {
		userRepo := repository.NewUserRepository(testDB.DB)
		authFlow := businessflow.NewAuthFlow(userRepo, testDB.DB)
		metadata := businessflow.NewClientMetadata("127.0.0.1", "test-agent")

		_, err := authFlow.Signup(context.Background(), signupRequest("loginuser"), metadata)
		require.NoError(t, err)

		t.Run("SuccessfulLogin", func(t *testing.T) {
			result, err := authFlow.Login(context.Background(), &dto.LoginRequest{
				Username: "loginuser",
				Password: "SecurePass123!",
			}, metadata)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, result.Success)
			assert.Equal(t, "loginuser", result.User.Username)
			assert.Equal(t, fmt.Sprintf("%s%d", utils.SessionTokenPrefix, result.User.ID), result.Token)

			// Login stamps the last-login timestamp
			user, err := userRepo.ByUsername(context.Background(), "loginuser")
			require.NoError(t, err)
			require.NotNil(t, user)
			assert.NotNil(t, user.LastLoginAt)
		})

		t.Run("UnknownUsername", func(t *testing.T) {
			_, err := authFlow.Login(context.Background(), &dto.LoginRequest{
				Username: "ghost",
				Password: "SecurePass123!",
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsNotFound(err))
		})

		t.Run("WrongPassword", func(t *testing.T) {
			_, err := authFlow.Login(context.Background(), &dto.LoginRequest{
				Username: "loginuser",
				Password: "WrongPass123!",
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsIncorrectPassword(err))
		})

		t.Run("LockedAccount", func(t *testing.T) {
			require.NoError(t, testDB.DB.Model(&models.User{}).
				Where("username = ?", "loginuser").
				Update("account_locked", true).Error)
			defer testDB.DB.Model(&models.User{}).
				Where("username = ?", "loginuser").
				Update("account_locked", false)

			_, err := authFlow.Login(context.Background(), &dto.LoginRequest{
				Username: "loginuser",
				Password: "SecurePass123!",
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsAccountLocked(err))
		})

		t.Run("DisabledAccount", func(t *testing.T) {
			require.NoError(t, testDB.DB.Model(&models.User{}).
				Where("username = ?", "loginuser").
				Update("account_enabled", false).Error)

			_, err := authFlow.Login(context.Background(), &dto.LoginRequest{
				Username: "loginuser",
				Password: "SecurePass123!",
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsAccountDisabled(err))
		})
	})
}

func TestUsernameAndAdminLookups(t *testing.T) {
	withTestDB(t, func(testDB *testingutil.TestDB) {
		fixtures := testingutil.NewTestFixtures(testDB)
		userRepo := repository.NewUserRepository(testDB.DB)
		authFlow := businessflow.NewAuthFlow(userRepo, testDB.DB)

		_, err := fixtures.CreateTestUser("plainuser")
		require.NoError(t, err)
		_, err = fixtures.CreateTestAdmin("adminuser")
		require.NoError(t, err)

		t.Run("UsernameExists", func(t *testing.T) {
			exists, err := authFlow.UsernameExists(context.Background(), "plainuser")
			require.NoError(t, err)
			assert.True(t, exists)

			exists, err = authFlow.UsernameExists(context.Background(), "nobody")
			require.NoError(t, err)
			assert.False(t, exists)
		})

		t.Run("IsAdmin", func(t *testing.T) {
			isAdmin, err := authFlow.IsAdmin(context.Background(), "adminuser")
			require.NoError(t, err)
			assert.True(t, isAdmin)

			isAdmin, err = authFlow.IsAdmin(context.Background(), "plainuser")
			require.NoError(t, err)
			assert.False(t, isAdmin)

			isAdmin, err = authFlow.IsAdmin(context.Background(), "nobody")
			require.NoError(t, err)
			assert.False(t, isAdmin)
		})
	})
}
