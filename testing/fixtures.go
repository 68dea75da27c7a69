package testing

import (
	"fmt"
	"math/rand"

	"github.com/nallijaku/backend/models"
	"github.com/nallijaku/backend/utils"
	"golang.org/x/crypto/bcrypt"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// randomPhone returns a normalized 11-digit mobile number starting with 010.
func randomPhone() string {
	return fmt.Sprintf("010%08d", rand.Intn(100000000))
}

// CreateTestUser creates a persisted user account with a bcrypt-hashed
// default password of "TestPass123!".
func (tf *TestFixtures) CreateTestUser(username string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("TestPass123!"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	email := fmt.Sprintf("%s.%d@example.com", username, rand.Intn(10000000))

	user := &models.User{
		Username:       username,
		PasswordHash:   string(hashedPassword),
		Email:          &email,
		Organization:   "Test Elementary School",
		Role:           models.RoleGeneral,
		Phone:          randomPhone(),
		TermsAgreed:    true,
		AccountEnabled: true,
	}

	if err := tf.DB.DB.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create test user: %w", err)
	}

	return user, nil
}

// CreateTestAdmin creates a persisted user with the ADMIN role.
func (tf *TestFixtures) CreateTestAdmin(username string) (*models.User, error) {
	user, err := tf.CreateTestUser(username)
	if err != nil {
		return nil, err
	}

	if err := tf.DB.DB.Model(user).Update("role", models.RoleAdmin).Error; err != nil {
		return nil, fmt.Errorf("failed to promote test user: %w", err)
	}
	user.Role = models.RoleAdmin

	return user, nil
}

// CreateTestEducationInquiry creates a persisted education inquiry with
// the given status.
func (tf *TestFixtures) CreateTestEducationInquiry(status models.InquiryStatus) (*models.EducationInquiry, error) {
	inquiry := &models.EducationInquiry{
		OrganizationName: "Seoul Elementary School",
		ContactPerson:    "Kim Teacher",
		PhoneNumber:      randomPhone(),
		Email:            fmt.Sprintf("inquiry.%d@example.com", rand.Intn(10000000)),
		StudentCount:     utils.ToPtr("30"),
		Grade:            utils.ToPtr("5th grade"),
		SchoolVisit:      true,
		PrivacyAgreed:    true,
		ContactAgreed:    true,
		Status:           status,
	}

	if err := tf.DB.DB.Create(inquiry).Error; err != nil {
		return nil, fmt.Errorf("failed to create test inquiry: %w", err)
	}

	return inquiry, nil
}

// CreateTestPartnerApplication creates a persisted partner application
// with the given status.
func (tf *TestFixtures) CreateTestPartnerApplication(status models.InquiryStatus) (*models.PartnerApplication, error) {
	application := &models.PartnerApplication{
		ApplicantName: "Lee Instructor",
		PhoneNumber:   randomPhone(),
		Email:         fmt.Sprintf("partner.%d@example.com", rand.Intn(10000000)),
		Location:      utils.ToPtr("Seoul"),
		Experience:    utils.ToPtr("3 years of drone instruction"),
		PracticalCert: true,
		PrivacyAgreed: true,
		Status:        status,
	}

	if err := tf.DB.DB.Create(application).Error; err != nil {
		return nil, fmt.Errorf("failed to create test application: %w", err)
	}

	return application, nil
}
