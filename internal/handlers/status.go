package handlers

import (
	"errors"
	"io"
	"mime"
	"path/filepath"
	"time"

	"github.com/forgeline/leaddesk/internal/config"
	"github.com/forgeline/leaddesk/internal/mailer"
	"github.com/forgeline/leaddesk/internal/services"
	"github.com/forgeline/leaddesk/internal/storage"
	"github.com/forgeline/leaddesk/internal/types"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// StatusHandler serves health and configuration probes
type StatusHandler struct {
	Config *config.Config
	DB     *gorm.DB
	Mailer mailer.Mailer
}

// Health handles GET /api/health
// @Summary Service health
// @Description Liveness plus database and SMTP reachability. Submissions are accepted while dependencies are down, so this always responds 200.
// @Tags Status
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *StatusHandler) Health(c *fiber.Ctx) error {
	result := services.HealthCheck(c.UserContext(), h.Config, h.DB)

	return c.JSON(fiber.Map{
		"status":    result.Status,
		"message":   "Server is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"database":  result.Database,
		"smtp":      result.SMTP,
		"error":     result.ErrorMessage,
	})
}

// SMTPStatusResponse reports mail readiness
type SMTPStatusResponse struct {
	Configured bool   `json:"configured"`
	Verified   bool   `json:"verified"`
	Host       string `json:"host,omitempty"`
	Port       int    `json:"port,omitempty"`
	Secure     bool   `json:"secure"`
}

// SMTPStatus handles GET /api/smtp-status
// @Summary SMTP status
// @Description Whether SMTP settings are present and the relay accepts them
// @Tags Status
// @Produce json
// @Success 200 {object} SMTPStatusResponse
// @Router /smtp-status [get]
func (h *StatusHandler) SMTPStatus(c *fiber.Ctx) error {
	resp := SMTPStatusResponse{
		Configured: h.Mailer.Configured(),
		Secure:     h.Config.SMTP.Secure,
	}
	if resp.Configured {
		resp.Verified = h.Mailer.Verify(c.UserContext())
		resp.Host = h.Config.SMTP.Host
		resp.Port = h.Config.SMTP.Port
	}
	return c.JSON(resp)
}

// AdminEmail handles GET /api/admin-email
// @Summary Operator address
// @Tags Status
// @Produce json
// @Success 200 {object} map[string]string
// @Router /admin-email [get]
func (h *StatusHandler) AdminEmail(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"adminEmail": h.Config.AdminEmail})
}

// UploadHandler serves stored uploads from the configured store
type UploadHandler struct {
	Store storage.Store
}

// Serve handles GET /uploads/:name
// @Summary Download an uploaded file
// @Tags Uploads
// @Produce octet-stream
// @Param name path string true "Generated file name"
// @Success 200 {file} file
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /uploads/{name} [get]
func (h *UploadHandler) Serve(c *fiber.Ctx) error {
	name, err := storage.CleanName(c.Params("name"))
	if err != nil {
		return types.NotFound("File not found", "uploads")
	}

	rc, err := h.Store.Open(c.UserContext(), name)
	if errors.Is(err, storage.ErrNotFound) {
		return types.NotFound("File not found", "uploads")
	}
	if err != nil {
		return err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return err
	}

	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		c.Set(fiber.HeaderContentType, ct)
	} else {
		c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	}
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+name+`"`)
	c.Set(fiber.HeaderXContentTypeOptions, "nosniff")

	return c.Send(data)
}
