package models

import "time"

// PartnerApplication is an application to join as a drone instructor or
// education partner, submitted through the public website form.
type PartnerApplication struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	ApplicantName string  `gorm:"size:50;not null;index:idx_partner_applications_applicant_name" json:"applicantName"`
	PhoneNumber   string  `gorm:"size:15;not null;index:idx_partner_applications_phone_number" json:"phoneNumber"`
	Email         string  `gorm:"size:100;not null" json:"email"`
	Location      *string `gorm:"size:100" json:"location,omitempty"`
	Experience    *string `gorm:"type:text" json:"experience,omitempty"`

	// Drone certification checkboxes. At least one must be set at creation.
	PracticalCert  bool    `gorm:"not null;default:false" json:"practicalCert"`
	Class1Cert     bool    `gorm:"not null;default:false" json:"class1Cert"`
	Class2Cert     bool    `gorm:"not null;default:false" json:"class2Cert"`
	Class3Cert     bool    `gorm:"not null;default:false" json:"class3Cert"`
	InstructorCert bool    `gorm:"not null;default:false" json:"instructorCert"`
	OtherCert      bool    `gorm:"not null;default:false" json:"otherCert"`
	OtherCertText  *string `gorm:"type:text" json:"otherCertText,omitempty"`

	PrivacyAgreed   bool `gorm:"not null" json:"privacyAgreed"`
	MarketingAgreed bool `gorm:"not null;default:false" json:"marketingAgreed"`

	// Admin handling
	Status        InquiryStatus `gorm:"size:20;not null;default:'PENDING';index:idx_partner_applications_status" json:"status"`
	AssignedAdmin *string       `gorm:"size:50" json:"assignedAdmin,omitempty"`
	AdminNotes    *string       `gorm:"type:text" json:"adminNotes,omitempty"`
	ProcessedAt   *time.Time    `json:"processedAt,omitempty"`

	// Interview scheduling
	InterviewScheduledAt *time.Time `json:"interviewScheduledAt,omitempty"`
	InterviewNotes       *string    `gorm:"type:text" json:"interviewNotes,omitempty"`

	CreatedAt time.Time `gorm:"not null;index:idx_partner_applications_created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (PartnerApplication) TableName() string {
	return "partner_applications"
}

// HasCertification reports whether at least one certification flag is set.
func (p *PartnerApplication) HasCertification() bool {
	return p.PracticalCert || p.Class1Cert || p.Class2Cert ||
		p.Class3Cert || p.InstructorCert || p.OtherCert
}

// PartnerApplicationFilter represents filter criteria for application queries
type PartnerApplicationFilter struct {
	ID                    *uint
	Status                *InquiryStatus
	ApplicantName         *string // substring match
	Location              *string // substring match
	PhoneNumber           *string
	Email                 *string
	AssignedAdmin         *string
	PracticalCert         *bool
	Class1Cert            *bool
	Class2Cert            *bool
	Class3Cert            *bool
	InstructorCert        *bool
	HasScheduledInterview *bool
	InterviewAfter        *time.Time
	InterviewBefore       *time.Time
	CreatedAfter          *time.Time
	CreatedBefore         *time.Time
}
