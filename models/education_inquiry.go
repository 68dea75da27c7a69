package models

import "time"

// EducationInquiry is a drone-education inquiry submitted by a school or
// other organization through the public website form.
type EducationInquiry struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	OrganizationName string `gorm:"size:100;not null;index:idx_education_inquiries_organization_name" json:"organizationName"`
	ContactPerson    string `gorm:"size:50;not null" json:"contactPerson"`
	PhoneNumber      string `gorm:"size:15;not null;index:idx_education_inquiries_phone_number" json:"phoneNumber"`
	Email            string `gorm:"size:100;not null" json:"email"`

	StudentCount  *string `gorm:"size:50" json:"studentCount,omitempty"`
	Grade         *string `gorm:"size:50" json:"grade,omitempty"`
	PreferredDate *string `gorm:"size:100" json:"preferredDate,omitempty"`
	Message       *string `gorm:"type:text" json:"message,omitempty"`

	// Consultation interest checkboxes
	PurchaseInquiry  bool    `gorm:"not null;default:false" json:"purchaseInquiry"`
	SchoolVisit      bool    `gorm:"not null;default:false" json:"schoolVisit"`
	CareerExperience bool    `gorm:"not null;default:false" json:"careerExperience"`
	BoothEntrustment bool    `gorm:"not null;default:false" json:"boothEntrustment"`
	OtherInquiry     bool    `gorm:"not null;default:false" json:"otherInquiry"`
	OtherText        *string `gorm:"type:text" json:"otherText,omitempty"`

	PrivacyAgreed   bool `gorm:"not null" json:"privacyAgreed"`
	ContactAgreed   bool `gorm:"not null;default:true" json:"contactAgreed"`
	MarketingAgreed bool `gorm:"not null;default:false" json:"marketingAgreed"`

	// Admin handling
	Status        InquiryStatus `gorm:"size:20;not null;default:'PENDING';index:idx_education_inquiries_status" json:"status"`
	AssignedAdmin *string       `gorm:"size:50" json:"assignedAdmin,omitempty"`
	AdminNotes    *string       `gorm:"type:text" json:"adminNotes,omitempty"`
	ProcessedAt   *time.Time    `json:"processedAt,omitempty"`

	CreatedAt time.Time `gorm:"not null;index:idx_education_inquiries_created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (EducationInquiry) TableName() string {
	return "education_inquiries"
}

// EducationInquiryFilter represents filter criteria for inquiry queries
type EducationInquiryFilter struct {
	ID               *uint
	Status           *InquiryStatus
	OrganizationName *string // substring match
	ContactPerson    *string // substring match
	PhoneNumber      *string
	Email            *string
	AssignedAdmin    *string
	PurchaseInquiry  *bool
	SchoolVisit      *bool
	CareerExperience *bool
	BoothEntrustment *bool
	CreatedAfter     *time.Time
	CreatedBefore    *time.Time
}
