package dto

import "github.com/nallijaku/backend/utils"

// EducationInquiryRequest is the strict submission body for an education inquiry
type EducationInquiryRequest struct {
	OrganizationName string  `json:"organizationName" validate:"required,max=100"`
	ContactPerson    string  `json:"contactPerson" validate:"required,max=50"`
	PhoneNumber      string  `json:"phoneNumber" validate:"required,phone_number"`
	Email            string  `json:"email" validate:"required,email,max=100"`
	StudentCount     *string `json:"studentCount,omitempty" validate:"omitempty,max=50"`
	Grade            *string `json:"grade,omitempty" validate:"omitempty,max=50"`
	PreferredDate    *string `json:"preferredDate,omitempty" validate:"omitempty,max=100"`
	Message          *string `json:"message,omitempty"`

	PurchaseInquiry  bool    `json:"purchaseInquiry"`
	SchoolVisit      bool    `json:"schoolVisit"`
	CareerExperience bool    `json:"careerExperience"`
	BoothEntrustment bool    `json:"boothEntrustment"`
	OtherInquiry     bool    `json:"otherInquiry"`
	OtherText        *string `json:"otherText,omitempty"`

	PrivacyAgreed   bool  `json:"privacyAgreed" validate:"eq=true"`
	ContactAgreed   *bool `json:"contactAgreed,omitempty"`
	MarketingAgreed bool  `json:"marketingAgreed"`
}

// EducationInquiryForm is the lenient submission body using the frontend's
// field names. It is remapped to the canonical request before validation.
type EducationInquiryForm struct {
	SchoolName       string  `json:"schoolName"`
	ContactPerson    string  `json:"contactPerson"`
	Phone            string  `json:"phone"`
	Email            string  `json:"email"`
	StudentCount     *string `json:"studentCount,omitempty"`
	Grade            *string `json:"grade,omitempty"`
	PreferredDate    *string `json:"preferredDate,omitempty"`
	Message          *string `json:"message,omitempty"`
	PurchaseInquiry  bool    `json:"purchaseInquiry"`
	SchoolVisit      bool    `json:"schoolVisit"`
	CareerExperience bool    `json:"careerExperience"`
	BoothEntrustment bool    `json:"boothEntrustment"`
	Other            bool    `json:"other"`
	OtherText        *string `json:"otherText,omitempty"`
	PrivacyAgreement bool    `json:"privacyAgreement"`
	ContactAgreed    *bool   `json:"contactAgreed,omitempty"`
	MarketingAgreed  bool    `json:"marketingAgreed"`
}

// ToRequest remaps frontend field names to the canonical request shape
func (f *EducationInquiryForm) ToRequest() *EducationInquiryRequest {
	return &EducationInquiryRequest{
		OrganizationName: f.SchoolName,
		ContactPerson:    f.ContactPerson,
		PhoneNumber:      f.Phone,
		Email:            f.Email,
		StudentCount:     f.StudentCount,
		Grade:            f.Grade,
		PreferredDate:    f.PreferredDate,
		Message:          f.Message,
		PurchaseInquiry:  f.PurchaseInquiry,
		SchoolVisit:      f.SchoolVisit,
		CareerExperience: f.CareerExperience,
		BoothEntrustment: f.BoothEntrustment,
		OtherInquiry:     f.Other,
		OtherText:        f.OtherText,
		PrivacyAgreed:    f.PrivacyAgreement,
		ContactAgreed:    f.ContactAgreed,
		MarketingAgreed:  f.MarketingAgreed,
	}
}

// ContactAgreedOrDefault resolves the optional contact agreement, defaulting to true
func (r *EducationInquiryRequest) ContactAgreedOrDefault() bool {
	if r.ContactAgreed == nil {
		return true
	}
	return utils.IsTrue(r.ContactAgreed)
}

// SubmitInquiryResponse is returned after a successful inquiry submission
type SubmitInquiryResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Warning   string `json:"warning,omitempty"`
	InquiryID uint   `json:"inquiryId"`
	Data      any    `json:"data"`
}

// InquiryListResponse is returned by list and filter queries
type InquiryListResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Count   int    `json:"count"`
}

// PendingCountResponse carries the number of records awaiting processing
type PendingCountResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	PendingCount int64  `json:"pendingCount"`
}
