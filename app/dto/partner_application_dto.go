package dto

// PartnerApplicationRequest is the strict submission body for a partner application
type PartnerApplicationRequest struct {
	ApplicantName string `json:"applicantName" validate:"required,max=50"`
	PhoneNumber   string `json:"phoneNumber" validate:"required,phone_number"`
	Email         string `json:"email" validate:"required,email,max=100"`
	Location      string `json:"location" validate:"required,max=100"`
	Experience    string `json:"experience" validate:"required"`

	PracticalCert  bool    `json:"practicalCert"`
	Class1Cert     bool    `json:"class1Cert"`
	Class2Cert     bool    `json:"class2Cert"`
	Class3Cert     bool    `json:"class3Cert"`
	InstructorCert bool    `json:"instructorCert"`
	OtherCert      bool    `json:"otherCert"`
	OtherCertText  *string `json:"otherCertText,omitempty"`

	PrivacyAgreed   bool `json:"privacyAgreed" validate:"eq=true"`
	MarketingAgreed bool `json:"marketingAgreed"`
}

// HasCertification reports whether at least one certification flag is set
func (r *PartnerApplicationRequest) HasCertification() bool {
	return r.PracticalCert || r.Class1Cert || r.Class2Cert ||
		r.Class3Cert || r.InstructorCert || r.OtherCert
}

// PartnerApplicationForm is the lenient submission body using the frontend's
// field names. It is remapped to the canonical request before validation.
type PartnerApplicationForm struct {
	ContactPerson    string  `json:"contactPerson"`
	Phone            string  `json:"phone"`
	Email            string  `json:"email"`
	Location         string  `json:"location"`
	Experience       string  `json:"experience"`
	PracticalCert    bool    `json:"practicalCert"`
	Class1Cert       bool    `json:"class1Cert"`
	Class2Cert       bool    `json:"class2Cert"`
	Class3Cert       bool    `json:"class3Cert"`
	InstructorCert   bool    `json:"instructorCert"`
	Other            bool    `json:"other"`
	OtherCertText    *string `json:"otherCertText,omitempty"`
	PrivacyAgreement bool    `json:"privacyAgreement"`
	MarketingAgreed  bool    `json:"marketingAgreed"`
}

// ToRequest remaps frontend field names to the canonical request shape
func (f *PartnerApplicationForm) ToRequest() *PartnerApplicationRequest {
	return &PartnerApplicationRequest{
		ApplicantName:   f.ContactPerson,
		PhoneNumber:     f.Phone,
		Email:           f.Email,
		Location:        f.Location,
		Experience:      f.Experience,
		PracticalCert:   f.PracticalCert,
		Class1Cert:      f.Class1Cert,
		Class2Cert:      f.Class2Cert,
		Class3Cert:      f.Class3Cert,
		InstructorCert:  f.InstructorCert,
		OtherCert:       f.Other,
		OtherCertText:   f.OtherCertText,
		PrivacyAgreed:   f.PrivacyAgreement,
		MarketingAgreed: f.MarketingAgreed,
	}
}

// SubmitApplicationResponse is returned after a successful application submission
type SubmitApplicationResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	Warning       string `json:"warning,omitempty"`
	ApplicationID uint   `json:"applicationId"`
	Data          any    `json:"data"`
}
