// Package router provides HTTP routing, middleware configuration, and server setup for the web application
package router

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/compress"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/google/uuid"
	"github.com/nallijaku/backend/app/dto"
	"github.com/nallijaku/backend/app/handlers"
	"github.com/nallijaku/backend/app/middleware"
	"github.com/nallijaku/backend/config"
	"github.com/nallijaku/backend/utils"
)

// Router interface for HTTP routing
type Router interface {
	SetupRoutes()
	Start(address string) error
	GetApp() *fiber.App
}

// FiberRouter implements Router using Fiber v3
type FiberRouter struct {
	app                *fiber.App
	cfg                *config.ProductionConfig
	authHandler        handlers.AuthHandlerInterface
	inquiryHandler     handlers.EducationInquiryHandlerInterface
	applicationHandler handlers.PartnerApplicationHandlerInterface
}

// NewFiberRouter creates a new Fiber router
func NewFiberRouter(
	cfg *config.ProductionConfig,
	authHandler handlers.AuthHandlerInterface,
	inquiryHandler handlers.EducationInquiryHandlerInterface,
	applicationHandler handlers.PartnerApplicationHandlerInterface,
) Router {
	app := fiber.New(fiber.Config{
		AppName:      "Nallijaku API",
		ServerHeader: "Nallijaku",
		ErrorHandler: errorHandler,
		BodyLimit:    cfg.Server.BodyLimit,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	return &FiberRouter{
		app:                app,
		cfg:                cfg,
		authHandler:        authHandler,
		inquiryHandler:     inquiryHandler,
		applicationHandler: applicationHandler,
	}
}

// SetupRoutes configures all application routes
func (r *FiberRouter) SetupRoutes() {
	log.Println("Setting up routes...")

	r.setupMiddleware()

	// Health check route
	r.app.Get("/health", r.healthCheck)

	// Auth endpoints
	auth := r.app.Group("/auth")
	auth.Post("/signup", r.authHandler.Signup)
	auth.Post("/login", r.authHandler.Login)
	auth.Post("/logout", r.authHandler.Logout)
	auth.Get("/me", r.authHandler.Me)
	auth.Get("/check-username/:username", r.authHandler.CheckUsername)
	auth.Get("/check-admin/:username", r.authHandler.CheckAdmin)

	// Education inquiry endpoints. Static segments are registered before
	// the :id routes so /recent does not match as an id.
	inquiries := r.app.Group("/education-inquiries")
	inquiries.Post("/", r.inquiryHandler.Submit)
	inquiries.Get("/", r.inquiryHandler.List)
	inquiries.Get("/recent", r.inquiryHandler.Recent)
	inquiries.Get("/pending/count", r.inquiryHandler.PendingCount)
	inquiries.Get("/:id", r.inquiryHandler.Get)
	inquiries.Put("/:id/status", r.inquiryHandler.UpdateStatus)
	inquiries.Put("/:id/notes", r.inquiryHandler.AddNotes)

	// Partner application endpoints
	applications := r.app.Group("/partner-applications")
	applications.Post("/", r.applicationHandler.Submit)
	applications.Get("/", r.applicationHandler.List)
	applications.Get("/recent", r.applicationHandler.Recent)
	applications.Get("/pending/count", r.applicationHandler.PendingCount)
	applications.Get("/interviews", r.applicationHandler.ScheduledInterviews)
	applications.Get("/:id", r.applicationHandler.Get)
	applications.Put("/:id/status", r.applicationHandler.UpdateStatus)
	applications.Put("/:id/notes", r.applicationHandler.AddNotes)
	applications.Put("/:id/interview", r.applicationHandler.ScheduleInterview)
	applications.Put("/:id/interview-notes", r.applicationHandler.AddInterviewNotes)

	// Not found handler
	r.app.Use(r.notFoundHandler)

	log.Println("Routes configured successfully")
}

// setupMiddleware configures global middleware
func (r *FiberRouter) setupMiddleware() {
	// Request ID middleware - must be first
	r.app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return uuid.NewString()
		},
	}))

	// Security headers middleware
	r.app.Use(helmet.New(helmet.Config{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))

	// CORS middleware with the configured origin set
	r.app.Use(cors.New(cors.Config{
		AllowOrigins:     r.cfg.CORS.AllowedOrigins,
		AllowMethods:     r.cfg.CORS.AllowedMethods,
		AllowHeaders:     r.cfg.CORS.AllowedHeaders,
		AllowCredentials: r.cfg.CORS.AllowCredentials,
		MaxAge:           r.cfg.CORS.MaxAge,
	}))

	// Compression middleware
	r.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// Structured request logging
	r.app.Use(logger.New(logger.Config{
		Format:     `{"time":"${time}","request_id":"${locals:requestid}","level":"info","method":"${method}","path":"${path}","ip":"${ip}","status":${status},"latency":"${latency}"}` + "\n",
		TimeFormat: time.RFC3339,
		TimeZone:   "UTC",
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))

	// Prometheus HTTP metrics
	if r.cfg.Metrics.Enabled {
		r.app.Use(middleware.Metrics())
	}

	// Recovery middleware
	r.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			log.Printf(`{"time":"%s","level":"error","request_id":"%s","event":"panic","error":"%v","path":"%s","method":"%s","ip":"%s"}`,
				utils.UTCNowRFC3339(),
				c.Locals("requestid"),
				e,
				c.Path(),
				c.Method(),
				c.IP(),
			)
		},
	}))
}

// Start starts the HTTP server
func (r *FiberRouter) Start(address string) error {
	log.Printf("Starting server on %s", address)
	return r.app.Listen(address)
}

// GetApp returns the Fiber app instance
func (r *FiberRouter) GetApp() *fiber.App {
	return r.app
}

// Health check endpoint
func (r *FiberRouter) healthCheck(c fiber.Ctx) error {
	return c.JSON(dto.APIResponse{
		Success: true,
		Message: "Service is healthy",
		Data: fiber.Map{
			"status":    "ok",
			"timestamp": utils.UTCNow().Unix(),
			"service":   "nallijaku-backend",
		},
	})
}

// 404 handler
func (r *FiberRouter) notFoundHandler(c fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.APIResponse{
		Success: false,
		Message: "The requested resource was not found",
		Error: dto.ErrorDetail{
			Code: "NOT_FOUND",
			Details: fiber.Map{
				"path":       c.Path(),
				"method":     c.Method(),
				"request_id": c.Locals("requestid"),
			},
		},
	})
}

// Global error handler
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	log.Printf("Error %d: %v", code, err)

	return c.Status(code).JSON(dto.APIResponse{
		Success: false,
		Message: "An internal server error occurred",
		Error: dto.ErrorDetail{
			Code: "INTERNAL_ERROR",
			Details: fiber.Map{
				"timestamp":  utils.UTCNow().Unix(),
				"request_id": c.Locals("requestid"),
			},
		},
	})
}
