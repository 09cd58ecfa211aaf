package handlers

import (
	"time"

	"github.com/forgeline/leaddesk/internal/config"
	"github.com/forgeline/leaddesk/internal/ingest"
	"github.com/forgeline/leaddesk/internal/mailer"
	"github.com/forgeline/leaddesk/internal/middleware"
	"github.com/forgeline/leaddesk/internal/services"
	"github.com/forgeline/leaddesk/internal/storage"
	"github.com/forgeline/leaddesk/internal/types"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

// SubmitRateWindow is the period SUBMIT_RATE_LIMIT counts submissions over, per client IP
const SubmitRateWindow = 15 * time.Minute

// Deps are the components the routes are served from
type Deps struct {
	Config      *config.Config
	DB          *gorm.DB
	Ingestor    *ingest.Ingestor
	Mailer      mailer.Mailer
	Files       storage.Store
	Auth        *services.AuthService
	Submissions *services.SubmissionStore
	SEO         *services.SEOService
	Templates   *services.TemplateService
}

// SetupRoutes registers the public, admin and upload routes
func SetupRoutes(app *fiber.App, d Deps) {
	submissions := &SubmissionHandler{Ingestor: d.Ingestor}
	status := &StatusHandler{Config: d.Config, DB: d.DB, Mailer: d.Mailer}
	seo := &SEOHandler{SEO: d.SEO}
	admin := &AdminHandler{Auth: d.Auth, Submissions: d.Submissions}
	templates := &TemplateHandler{Templates: d.Templates}
	uploads := &UploadHandler{Store: d.Files}

	api := app.Group("/api")

	// Public routes
	submit := []fiber.Handler{submissions.SendEmail}
	if d.Config.SubmitRateLimit > 0 {
		submit = append([]fiber.Handler{limiter.New(limiter.Config{
			Max:          d.Config.SubmitRateLimit,
			Expiration:   SubmitRateWindow,
			KeyGenerator: middleware.ClientIP,
			LimitReached: func(c *fiber.Ctx) error {
				return &types.CustomError{
					Code:    fiber.StatusTooManyRequests,
					Message: "Too many submissions, please try again later",
					Type:    "rateLimit",
				}
			},
		})}, submit...)
	}
	api.Post("/send-email", submit...)

	api.Get("/health", status.Health)
	api.Get("/smtp-status", status.SMTPStatus)
	api.Get("/admin-email", status.AdminEmail)
	api.Get("/seo/*", seo.Lookup)

	// Admin routes
	adminAPI := api.Group("/admin")
	adminAPI.Post("/login", admin.Login)

	auth := middleware.AuthAdmin(d.Auth)
	adminAPI.Get("/me", auth, admin.Me)
	adminAPI.Get("/submissions", auth, admin.ListSubmissions)
	adminAPI.Get("/submissions/:id", auth, admin.GetSubmission)
	adminAPI.Delete("/submissions/:id", auth, admin.DeleteSubmission)
	adminAPI.Get("/stats", auth, admin.Stats)
	adminAPI.Get("/seo", auth, seo.List)
	adminAPI.Get("/seo/*", auth, seo.Get)
	adminAPI.Post("/seo", auth, seo.Upsert)
	adminAPI.Get("/email-templates", auth, templates.List)
	adminAPI.Post("/email-templates", auth, templates.Upsert)

	app.Get("/uploads/:name", uploads.Serve)
}
