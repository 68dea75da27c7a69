package handlers

import (
	"encoding/json"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/nallijaku/backend/app/dto"
	businessflow "github.com/nallijaku/backend/business_flow"
)

// PartnerApplicationHandlerInterface defines the contract for application handlers
type PartnerApplicationHandlerInterface interface {
	Submit(c fiber.Ctx) error
	List(c fiber.Ctx) error
	Get(c fiber.Ctx) error
	UpdateStatus(c fiber.Ctx) error
	AddNotes(c fiber.Ctx) error
	ScheduleInterview(c fiber.Ctx) error
	AddInterviewNotes(c fiber.Ctx) error
	ScheduledInterviews(c fiber.Ctx) error
	Recent(c fiber.Ctx) error
	PendingCount(c fiber.Ctx) error
}

// PartnerApplicationHandler handles partner application HTTP requests
type PartnerApplicationHandler struct {
	applicationFlow businessflow.PartnerApplicationFlow
	validator       *validator.Validate
}

// NewPartnerApplicationHandler creates a new partner application handler
func NewPartnerApplicationHandler(applicationFlow businessflow.PartnerApplicationFlow) *PartnerApplicationHandler {
	return &PartnerApplicationHandler{
		applicationFlow: applicationFlow,
		validator:       newValidator(),
	}
}

func (h *PartnerApplicationHandler) failureResponse(c fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func (h *PartnerApplicationHandler) validationErrorResponse(c fiber.Ctx, details any) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.APIResponse{
		Success: false,
		Message: "Validation failed",
		Error: dto.ErrorDetail{
			Code:    "VALIDATION_ERROR",
			Details: details,
		},
	})
}

// decodeSubmission accepts either the strict body or the frontend form
// shape. The form shape is recognized by the absence of the canonical
// applicantName key and remapped before validation.
func (h *PartnerApplicationHandler) decodeSubmission(body []byte) (*dto.PartnerApplicationRequest, error) {
	var req dto.PartnerApplicationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, err
	}
	if req.ApplicantName != "" {
		return &req, nil
	}

	var form dto.PartnerApplicationForm
	if err := json.Unmarshal(body, &form); err != nil {
		return nil, err
	}

	return form.ToRequest(), nil
}

// Submit handles an application submission from the public website form
func (h *PartnerApplicationHandler) Submit(c fiber.Ctx) error {
	req, err := h.decodeSubmission(c.Body())
	if err != nil {
		return h.failureResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.validator.Struct(req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.validationErrorResponse(c, validationErrors)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.applicationFlow.Submit(createRequestContext(c, "/partner-applications"), req, metadata)
	if err != nil {
		if businessflow.IsPrivacyNotAgreed(err) {
			return h.failureResponse(c, fiber.StatusBadRequest, "Privacy agreement is required")
		}
		if businessflow.IsCertificationRequired(err) {
			return h.failureResponse(c, fiber.StatusBadRequest, "At least one drone certification must be selected")
		}
		if businessflow.IsBadRequest(err) {
			return h.failureResponse(c, fiber.StatusBadRequest, err.Error())
		}

		log.Println("Application submission failed", err)
		return h.failureResponse(c, fiber.StatusInternalServerError, "Failed to submit application")
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// List handles the admin listing with optional single filter
func (h *PartnerApplicationHandler) List(c fiber.Ctx) error {
	status := c.Query("status")
	applicantName := c.Query("applicantName")
	location := c.Query("location")
	certification := c.Query("certification")

	applications, err := h.applicationFlow.List(createRequestContext(c, "/partner-applications"), status, applicantName, location, certification)
	if err != nil {
		if businessflow.IsInvalidStatus(err) || businessflow.IsInvalidFilter(err) {
			return h.failureResponse(c, fiber.StatusBadRequest, err.Error())
		}

		log.Println("Application listing failed", err)
		return h.failureResponse(c, fiber.StatusInternalServerError, "Failed to list applications")
	}

	return c.Status(fiber.StatusOK).JSON(dto.InquiryListResponse{
		Success: true,
		Message: "Applications retrieved.",
		Data:    applications,
		Count:   len(applications),
	})
}

// Get handles the admin lookup of a single application
func (h *PartnerApplicationHandler) Get(c fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return h.failureResponse(c, fiber.StatusBadRequest, "Invalid id")
	}

	application, err := h.applicationFlow.Get(createRequestContext(c, "/partner-applications/:id"), id)
	if err != nil {
		if businessflow.IsNotFound(err) {
			return h.failureResponse(c, fiber.StatusNotFound, "Application not found")
		}

		log.Println("Application lookup failed", err)
		return h.failureResponse(c, fiber.StatusInternalServerError, "Failed to retrieve application")
	}

	return c.Status(fiber.StatusOK).JSON(dto.APIResponse{
		Success: true,
		Message: "Application retrieved.",
		Data:    application,
	})
}

// UpdateStatus handles the admin status transition
func (h *PartnerApplicationHandler) UpdateStatus(c fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return h.failureResponse(c, fiber.StatusBadRequest, "Invalid id")
	}

	status := c.Query("status")
	adminUsername := c.Query("adminUsername")

	application, err := h.applicationFlow.UpdateStatus(createRequestContext(c, "/partner-applications/:id/status"), id, status, adminUsername)
	if err != nil {
		if businessflow.IsInvalidStatus(err) {
			return h.failureResponse(c, fiber.StatusBadRequest, "Invalid status value: "+status)
		}
		if businessflow.IsNotFound(err) {
			return h.failureResponse(c, fiber.StatusNotFound, "Application not found")
		}

		log.Println("Application status update failed", err)
		return h.failureResponse(c, fiber.StatusInternalServerError, "Failed to update status")
	}

	return c.Status(fiber.StatusOK).JSON(dto.APIResponse{
		Success: true,
		Message: "Application status updated.",
		Data:    application,
	})
}

// AddNotes handles the admin note attachment
func (h *PartnerApplicationHandler) AddNotes(c fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return h.failureResponse(c, fiber.StatusBadRequest, "Invalid id")
	}

	notes := c.Query("notes")
	adminUsername := c.Query("adminUsername")

	application, err := h.applicationFlow.AddNotes(createRequestContext(c, "/partner-applications/:id/notes"), id, notes, adminUsername)
	if err != nil {
		if businessflow.IsNotFound(err) {
			return h.failureResponse(c, fiber.StatusNotFound, "Application not found")
		}

		log.Println("Application notes update failed", err)
		return h.failureResponse(c, fiber.StatusInternalServerError, "Failed to add notes")
	}

	return c.Status(fiber.StatusOK).JSON(dto.APIResponse{
		Success: true,
		Message: "Admin notes added.",
		Data:    application,
	})
}

// ScheduleInterview handles the interview scheduling transition
func (h *PartnerApplicationHandler) ScheduleInterview(c fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return h.failureResponse(c, fiber.StatusBadRequest, "Invalid id")
	}

	interviewDate := c.Query("interviewDate")
	adminUsername := c.Query("adminUsername")

	application, err := h.applicationFlow.ScheduleInterview(createRequestContext(c, "/partner-applications/:id/interview"), id, interviewDate, adminUsername)
	if err != nil {
		if businessflow.IsInvalidInterviewDate(err) {
			return h.failureResponse(c, fiber.StatusBadRequest, "Invalid interview date: "+interviewDate)
		}
		if businessflow.IsNotFound(err) {
			return h.failureResponse(c, fiber.StatusNotFound, "Application not found")
		}

		log.Println("Interview scheduling failed", err)
		return h.failureResponse(c, fiber.StatusInternalServerError, "Failed to schedule interview")
	}

	return c.Status(fiber.StatusOK).JSON(dto.APIResponse{
		Success: true,
		Message: "Interview scheduled.",
		Data:    application,
	})
}

// AddInterviewNotes handles the interview feedback attachment
func (h *PartnerApplicationHandler) AddInterviewNotes(c fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return h.failureResponse(c, fiber.StatusBadRequest, "Invalid id")
	}

	notes := c.Query("notes")
	adminUsername := c.Query("adminUsername")

	application, err := h.applicationFlow.AddInterviewNotes(createRequestContext(c, "/partner-applications/:id/interview-notes"), id, notes, adminUsername)
	if err != nil {
		if businessflow.IsNotFound(err) {
			return h.failureResponse(c, fiber.StatusNotFound, "Application not found")
		}

		log.Println("Interview notes update failed", err)
		return h.failureResponse(c, fiber.StatusInternalServerError, "Failed to add interview notes")
	}

	return c.Status(fiber.StatusOK).JSON(dto.APIResponse{
		Success: true,
		Message: "Interview notes added.",
		Data:    application,
	})
}

// ScheduledInterviews handles the admin calendar view
func (h *PartnerApplicationHandler) ScheduledInterviews(c fiber.Ctx) error {
	applications, err := h.applicationFlow.ScheduledInterviews(createRequestContext(c, "/partner-applications/interviews"))
	if err != nil {
		log.Println("Scheduled interviews lookup failed", err)
		return h.failureResponse(c, fiber.StatusInternalServerError, "Failed to retrieve scheduled interviews")
	}

	return c.Status(fiber.StatusOK).JSON(dto.InquiryListResponse{
		Success: true,
		Message: "Scheduled interviews retrieved.",
		Data:    applications,
		Count:   len(applications),
	})
}

// Recent handles the admin dashboard view of the newest applications
func (h *PartnerApplicationHandler) Recent(c fiber.Ctx) error {
	applications, err := h.applicationFlow.Recent(createRequestContext(c, "/partner-applications/recent"))
	if err != nil {
		log.Println("Recent applications lookup failed", err)
		return h.failureResponse(c, fiber.StatusInternalServerError, "Failed to retrieve recent applications")
	}

	return c.Status(fiber.StatusOK).JSON(dto.InquiryListResponse{
		Success: true,
		Message: "Recent applications retrieved.",
		Data:    applications,
		Count:   len(applications),
	})
}

// PendingCount handles the admin dashboard pending counter
func (h *PartnerApplicationHandler) PendingCount(c fiber.Ctx) error {
	count, err := h.applicationFlow.PendingCount(createRequestContext(c, "/partner-applications/pending/count"))
	if err != nil {
		log.Println("Pending application count failed", err)
		return h.failureResponse(c, fiber.StatusInternalServerError, "Failed to count pending applications")
	}

	return c.Status(fiber.StatusOK).JSON(dto.PendingCountResponse{
		Success:      true,
		Message:      "Pending application count retrieved.",
		PendingCount: count,
	})
}
