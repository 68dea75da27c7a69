// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/nallijaku/backend/app/dto"
	businessflow "github.com/nallijaku/backend/business_flow"
)

// AuthHandlerInterface defines the contract for authentication handlers
type AuthHandlerInterface interface {
	Signup(c fiber.Ctx) error
	Login(c fiber.Ctx) error
	Logout(c fiber.Ctx) error
	Me(c fiber.Ctx) error
	CheckUsername(c fiber.Ctx) error
	CheckAdmin(c fiber.Ctx) error
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authFlow  businessflow.AuthFlow
	validator *validator.Validate
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authFlow businessflow.AuthFlow) *AuthHandler {
	return &AuthHandler{
		authFlow:  authFlow,
		validator: newValidator(),
	}
}

func (h *AuthHandler) failureResponse(c fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func (h *AuthHandler) validationErrorResponse(c fiber.Ctx, details any) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.APIResponse{
		Success: false,
		Message: "Validation failed",
		Error: dto.ErrorDetail{
			Code:    "VALIDATION_ERROR",
			Details: details,
		},
	})
}

// Signup handles the account registration process
func (h *AuthHandler) Signup(c fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.failureResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	// Validate request
	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.validationErrorResponse(c, validationErrors)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.authFlow.Signup(createRequestContext(c, "/auth/signup"), &req, metadata)
	if err != nil {
		// Conflicts deliberately answer 400, matching the public contract
		if businessflow.IsUsernameAlreadyExists(err) {
			return h.failureResponse(c, fiber.StatusBadRequest, "username already in use")
		}
		if businessflow.IsEmailAlreadyExists(err) {
			return h.failureResponse(c, fiber.StatusBadRequest, "email already in use")
		}
		if businessflow.IsPasswordMismatch(err) {
			return h.failureResponse(c, fiber.StatusBadRequest, "password confirmation mismatch")
		}
		if businessflow.IsBadRequest(err) {
			return h.failureResponse(c, fiber.StatusBadRequest, err.Error())
		}

		log.Println("Signup failed", err)
		return h.failureResponse(c, fiber.StatusInternalServerError, "Signup failed")
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// Login handles the credential check and placeholder token issuance
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.failureResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.validationErrorResponse(c, validationErrors)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))

	result, err := h.authFlow.Login(createRequestContext(c, "/auth/login"), &req, metadata)
	if err != nil {
		if businessflow.IsUserNotFound(err) || businessflow.IsIncorrectPassword(err) {
			return h.failureResponse(c, fiber.StatusBadRequest, "Invalid username or password")
		}
		if businessflow.IsAccountDisabled(err) {
			return h.failureResponse(c, fiber.StatusBadRequest, "Account is disabled")
		}
		if businessflow.IsAccountLocked(err) {
			return h.failureResponse(c, fiber.StatusBadRequest, "Account is locked")
		}

		log.Println("Login failed", err)
		return h.failureResponse(c, fiber.StatusInternalServerError, "Login failed")
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// Logout acknowledges the logout. Sessions are placeholder strings, so
// there is nothing to revoke server-side.
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Logged out successfully.",
	})
}

// Me returns the current user. Placeholder until real sessions exist.
func (h *AuthHandler) Me(c fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "User info retrieved.",
		"data":    fiber.Map{},
	})
}

// CheckUsername reports whether a username is already taken
func (h *AuthHandler) CheckUsername(c fiber.Ctx) error {
	username := c.Params("username")

	exists, err := h.authFlow.UsernameExists(createRequestContext(c, "/auth/check-username"), username)
	if err != nil {
		log.Println("Username check failed", err)
		return h.failureResponse(c, fiber.StatusInternalServerError, "Username check failed")
	}

	message := "Username is available."
	if exists {
		message = "Username is already in use."
	}

	return c.Status(fiber.StatusOK).JSON(dto.CheckUsernameResponse{
		Success: true,
		Message: message,
		Exists:  exists,
	})
}

// CheckAdmin reports whether the named user holds the admin role
func (h *AuthHandler) CheckAdmin(c fiber.Ctx) error {
	username := c.Params("username")

	isAdmin, err := h.authFlow.IsAdmin(createRequestContext(c, "/auth/check-admin"), username)
	if err != nil {
		log.Println("Admin check failed", err)
		return h.failureResponse(c, fiber.StatusInternalServerError, "Admin check failed")
	}

	message := "Regular user."
	if isAdmin {
		message = "User has the admin role."
	}

	return c.Status(fiber.StatusOK).JSON(dto.CheckAdminResponse{
		Success:  true,
		Message:  message,
		IsAdmin:  isAdmin,
		Username: username,
	})
}
