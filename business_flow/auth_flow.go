// Package businessflow contains the core business logic for account workflows
package businessflow

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/nallijaku/backend/app/dto"
	"github.com/nallijaku/backend/models"
	"github.com/nallijaku/backend/repository"
	"github.com/nallijaku/backend/utils"
	"gorm.io/gorm"
)

// AuthFlow handles signup, login and account lookups
type AuthFlow interface {
	Signup(ctx context.Context, req *dto.SignupRequest, metadata *ClientMetadata) (*dto.SignupResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	IsAdmin(ctx context.Context, username string) (bool, error)
}

// AuthFlowImpl implements the auth business flow
type AuthFlowImpl struct {
	userRepo repository.UserRepository
	db       *gorm.DB
}

// NewAuthFlow creates a new auth flow instance
func NewAuthFlow(userRepo repository.UserRepository, db *gorm.DB) AuthFlow {
	return &AuthFlowImpl{
		userRepo: userRepo,
		db:       db,
	}
}

// Signup validates the signup form and creates the account inside one
// transaction. The duplicate pre-check is best-effort; the database unique
// constraints are the final arbiter for concurrent attempts.
func (s *AuthFlowImpl) Signup(ctx context.Context, req *dto.SignupRequest, metadata *ClientMetadata) (*dto.SignupResponse, error) {
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	if !req.TermsAgreed {
		return nil, ErrTermsNotAgreed
	}

	phone := utils.NormalizePhone(req.Phone)
	if !utils.IsValidPhone(phone) {
		return nil, NewBusinessError("INVALID_PHONE", "phone number must be 10-11 digits", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:        req.Username,
		PasswordHash:    string(hash),
		Email:           req.Email,
		Organization:    req.Organization,
		Role:            models.ParseRole(req.Role),
		Phone:           phone,
		DroneExperience: req.DroneExperience,
		TermsAgreed:     req.TermsAgreed,
		AccountEnabled:  true,
	}

	err = repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		exists, err := s.userRepo.ExistsByUsername(txCtx, req.Username)
		if err != nil {
			return fmt.Errorf("failed to check username: %w", err)
		}
		if exists {
			return ErrUsernameAlreadyExists
		}

		if req.Email != nil && *req.Email != "" {
			exists, err := s.userRepo.ExistsByEmail(txCtx, *req.Email)
			if err != nil {
				return fmt.Errorf("failed to check email: %w", err)
			}
			if exists {
				return ErrEmailAlreadyExists
			}
		}

		if err := s.userRepo.Save(txCtx, user); err != nil {
			// Lost the race against a concurrent signup with the same
			// username or email; surface it as the same conflict.
			if repository.IsDuplicateKey(err) {
				return ErrUsernameAlreadyExists
			}
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.SignupResponse{
		Success:  true,
		Message:  "Signup completed successfully.",
		UserID:   user.ID,
		Username: user.Username,
	}, nil
}

// Login checks the credentials and account state, stamps the last login
// time and returns the user info with a placeholder token.
func (s *AuthFlowImpl) Login(ctx context.Context, req *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error) {
	user, err := s.userRepo.ByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrIncorrectPassword
	}

	if !user.AccountEnabled {
		return nil, ErrAccountDisabled
	}
	if user.AccountLocked {
		return nil, ErrAccountLocked
	}

	now := utils.UTCNow()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}

	return &dto.LoginResponse{
		Success: true,
		Message: "Login successful.",
		User: dto.UserInfo{
			ID:              user.ID,
			Username:        user.Username,
			Email:           user.Email,
			Organization:    user.Organization,
			Role:            string(user.Role),
			Phone:           user.Phone,
			DroneExperience: user.DroneExperience,
			CreatedAt:       user.CreatedAt,
		},
		Token: fmt.Sprintf("%s%d", utils.SessionTokenPrefix, user.ID),
	}, nil
}

// UsernameExists reports whether a username is already taken
func (s *AuthFlowImpl) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.userRepo.ExistsByUsername(ctx, username)
}

// IsAdmin reports whether the named user holds the admin role. A missing
// user is simply not an admin.
func (s *AuthFlowImpl) IsAdmin(ctx context.Context, username string) (bool, error) {
	user, err := s.userRepo.ByUsername(ctx, username)
	if err != nil {
		return false, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return false, nil
	}

	return user.IsAdmin(), nil
}
