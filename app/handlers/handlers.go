// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/nallijaku/backend/utils"
)

func getValidationErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return err.Field() + " must be at least " + err.Param() + " characters"
	case "max":
		return err.Field() + " must be at most " + err.Param() + " characters"
	case "eq":
		return err.Field() + " must be " + err.Param()
	case "username_format":
		return "Username must be 4-20 characters of letters, digits and underscores"
	case "password_policy":
		return "Password must be 8-50 characters with lower, upper, digit and special characters"
	case "phone_number":
		return "Phone number must be 10-11 digits"
	default:
		return err.Field() + " is invalid"
	}
}

// newValidator builds the shared validator with the custom validations
// used by the submission DTOs.
func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterValidation("username_format", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if len(value) < utils.UsernameMinLength || len(value) > utils.UsernameMaxLength {
			return false
		}
		for _, char := range value {
			if !((char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') ||
				(char >= '0' && char <= '9') || char == '_') {
				return false
			}
		}
		return true
	})

	v.RegisterValidation("password_policy", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if len(value) < utils.PasswordMinLength || len(value) > utils.PasswordMaxLength {
			return false
		}

		hasLower := false
		hasUpper := false
		hasDigit := false
		hasSpecial := false

		for _, char := range value {
			switch {
			case char >= 'a' && char <= 'z':
				hasLower = true
			case char >= 'A' && char <= 'Z':
				hasUpper = true
			case char >= '0' && char <= '9':
				hasDigit = true
			default:
				hasSpecial = true
			}
		}

		return hasLower && hasUpper && hasDigit && hasSpecial
	})

	// Accepts the dashed frontend form; digits are enforced after
	// normalization.
	v.RegisterValidation("phone_number", func(fl validator.FieldLevel) bool {
		return utils.IsValidPhone(utils.NormalizePhone(fl.Field().String()))
	})

	return v
}

// createRequestContext creates a context with timeout and request-scoped values
func createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	// Request-scoped values for observability
	ctx = context.WithValue(ctx, "request_id", c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, "ip_address", c.IP())
	ctx = context.WithValue(ctx, "endpoint", endpoint)
	ctx = context.WithValue(ctx, "cancel_func", cancel) // Store cancel function for cleanup

	return ctx
}
