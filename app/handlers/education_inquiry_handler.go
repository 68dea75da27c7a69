package handlers

import (
	"encoding/json"
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/nallijaku/backend/app/dto"
	businessflow "github.com/nallijaku/backend/business_flow"
)

// EducationInquiryHandlerInterface defines the contract for inquiry handlers
type EducationInquiryHandlerInterface interface {
	Submit(c fiber.Ctx) error
	List(c fiber.Ctx) error
	Get(c fiber.Ctx) error
	UpdateStatus(c fiber.Ctx) error
	AddNotes(c fiber.Ctx) error
	Recent(c fiber.Ctx) error
	PendingCount(c fiber.Ctx) error
}

// EducationInquiryHandler handles education inquiry HTTP requests
type EducationInquiryHandler struct {
	inquiryFlow businessflow.EducationInquiryFlow
	validator   *validator.Validate
}

// NewEducationInquiryHandler creates a new education inquiry handler
func NewEducationInquiryHandler(inquiryFlow businessflow.EducationInquiryFlow) *EducationInquiryHandler {
	return &EducationInquiryHandler{
		inquiryFlow: inquiryFlow,
		validator:   newValidator(),
	}
}

func (h *EducationInquiryHandler) failureResponse(c fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func (h *EducationInquiryHandler) validationErrorResponse(c fiber.Ctx, details any) error {
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
// organizationName key and remapped before validation.
func (h *EducationInquiryHandler) decodeSubmission(body []byte) (*dto.EducationInquiryRequest, error) {
	var req dto.EducationInquiryRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, err
	}
	if req.OrganizationName != "" {
		return &req, nil
	}

	var form dto.EducationInquiryForm
	if err := json.Unmarshal(body, &form); err != nil {
		return nil, err
	}

	return form.ToRequest(), nil
}

// Submit handles an inquiry submission from the public website form
func (h *EducationInquiryHandler) Submit(c fiber.Ctx) error {
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

	result, err := h.inquiryFlow.Submit(createRequestContext(c, "/education-inquiries"), req, metadata)
	if err != nil {
		if businessflow.IsPrivacyNotAgreed(err) {
			return h.failureResponse(c, fiber.StatusBadRequest, "Privacy agreement is required")
		}
		if businessflow.IsBadRequest(err) {
			return h.failureResponse(c, fiber.StatusBadRequest, err.Error())
		}

		log.Println("Inquiry submission failed", err)
		return h.failureResponse(c, fiber.StatusInternalServerError, "Failed to submit inquiry")
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// List handles the admin listing with optional single filter
func (h *EducationInquiryHandler) List(c fiber.Ctx) error {
	status := c.Query("status")
	organizationName := c.Query("organizationName")
	contactPerson := c.Query("contactPerson")
	interestType := c.Query("interestType")

	inquiries, err := h.inquiryFlow.List(createRequestContext(c, "/education-inquiries"), status, organizationName, contactPerson, interestType)
	if err != nil {
		if businessflow.IsInvalidStatus(err) || businessflow.IsInvalidFilter(err) {
			return h.failureResponse(c, fiber.StatusBadRequest, err.Error())
		}

		log.Println("Inquiry listing failed", err)
		return h.failureResponse(c, fiber.StatusInternalServerError, "Failed to list inquiries")
	}

	return c.Status(fiber.StatusOK).JSON(dto.InquiryListResponse{
		Success: true,
		Message: "Inquiries retrieved.",
		Data:    inquiries,
		Count:   len(inquiries),
	})
}

// Get handles the admin lookup of a single inquiry
func (h *EducationInquiryHandler) Get(c fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return h.failureResponse(c, fiber.StatusBadRequest, "Invalid id")
	}

	inquiry, err := h.inquiryFlow.Get(createRequestContext(c, "/education-inquiries/:id"), id)
	if err != nil {
		if businessflow.IsNotFound(err) {
			return h.failureResponse(c, fiber.StatusNotFound, "Inquiry not found")
		}

		log.Println("Inquiry lookup failed", err)
		return h.failureResponse(c, fiber.StatusInternalServerError, "Failed to retrieve inquiry")
	}

	return c.Status(fiber.StatusOK).JSON(dto.APIResponse{
		Success: true,
		Message: "Inquiry retrieved.",
		Data:    inquiry,
	})
}

// UpdateStatus handles the admin status transition
func (h *EducationInquiryHandler) UpdateStatus(c fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return h.failureResponse(c, fiber.StatusBadRequest, "Invalid id")
	}

	status := c.Query("status")
	adminUsername := c.Query("adminUsername")

	inquiry, err := h.inquiryFlow.UpdateStatus(createRequestContext(c, "/education-inquiries/:id/status"), id, status, adminUsername)
	if err != nil {
		if businessflow.IsInvalidStatus(err) {
			return h.failureResponse(c, fiber.StatusBadRequest, "Invalid status value: "+status)
		}
		if businessflow.IsNotFound(err) {
			return h.failureResponse(c, fiber.StatusNotFound, "Inquiry not found")
		}

		log.Println("Inquiry status update failed", err)
		return h.failureResponse(c, fiber.StatusInternalServerError, "Failed to update status")
	}

	return c.Status(fiber.StatusOK).JSON(dto.APIResponse{
		Success: true,
		Message: "Inquiry status updated.",
		Data:    inquiry,
	})
}

// AddNotes handles the admin note attachment
func (h *EducationInquiryHandler) AddNotes(c fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return h.failureResponse(c, fiber.StatusBadRequest, "Invalid id")
	}

	notes := c.Query("notes")
	adminUsername := c.Query("adminUsername")

	inquiry, err := h.inquiryFlow.AddNotes(createRequestContext(c, "/education-inquiries/:id/notes"), id, notes, adminUsername)
	if err != nil {
		if businessflow.IsNotFound(err) {
			return h.failureResponse(c, fiber.StatusNotFound, "Inquiry not found")
		}

		log.Println("Inquiry notes update failed", err)
		return h.failureResponse(c, fiber.StatusInternalServerError, "Failed to add notes")
	}

	return c.Status(fiber.StatusOK).JSON(dto.APIResponse{
		Success: true,
		Message: "Admin notes added.",
		Data:    inquiry,
	})
}

// Recent handles the admin dashboard view of the newest inquiries
func (h *EducationInquiryHandler) Recent(c fiber.Ctx) error {
	inquiries, err := h.inquiryFlow.Recent(createRequestContext(c, "/education-inquiries/recent"))
	if err != nil {
		log.Println("Recent inquiries lookup failed", err)
		return h.failureResponse(c, fiber.StatusInternalServerError, "Failed to retrieve recent inquiries")
	}

	return c.Status(fiber.StatusOK).JSON(dto.InquiryListResponse{
		Success: true,
		Message: "Recent inquiries retrieved.",
		Data:    inquiries,
		Count:   len(inquiries),
	})
}

// PendingCount handles the admin dashboard pending counter
func (h *EducationInquiryHandler) PendingCount(c fiber.Ctx) error {
	count, err := h.inquiryFlow.PendingCount(createRequestContext(c, "/education-inquiries/pending/count"))
	if err != nil {
		log.Println("Pending inquiry count failed", err)
		return h.failureResponse(c, fiber.StatusInternalServerError, "Failed to count pending inquiries")
	}

	return c.Status(fiber.StatusOK).JSON(dto.PendingCountResponse{
		Success:      true,
		Message:      "Pending inquiry count retrieved.",
		PendingCount: count,
	})
}

func parseIDParam(c fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
