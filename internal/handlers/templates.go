package handlers

import (
	"github.com/forgeline/leaddesk/internal/models"
	"github.com/forgeline/leaddesk/internal/services"
	"github.com/forgeline/leaddesk/internal/types"
	"github.com/forgeline/leaddesk/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// TemplateHandler serves the admin email template editor
type TemplateHandler struct {
	Templates *services.TemplateService
}

// TemplateRequest is the upsert body. With an id only subject and body are changed.
type TemplateRequest struct {
	ID           types.FlexUint64 `json:"id" swaggertype:"integer"`
	FormType     string           `json:"form_type"`
	TemplateType string           `json:"template_type"`
	Subject      string           `json:"subject"`
	Body         string           `json:"body"`
}

// List handles GET /api/admin/email-templates
// @Summary List email templates
// @Description Seeds the defaults when none exist
// @Tags Admin
// @Produce json
// @Success 200 {array} models.EmailTemplate
// @Security BearerAuth
// @Router /admin/email-templates [get]
func (h *TemplateHandler) List(c *fiber.Ctx) error {
	rows, err := h.Templates.List(c.UserContext())
	if err != nil {
		return serviceError(err, "")
	}
	return utils.DataResponse(c, rows)
}

// Upsert handles POST /api/admin/email-templates
// @Summary Create or update an email template
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body TemplateRequest true "Template"
// @Success 200 {object} models.EmailTemplate
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /admin/email-templates [post]
func (h *TemplateHandler) Upsert(c *fiber.Ctx) error {
	var body TemplateRequest
	if err := c.BodyParser(&body); err != nil {
		return types.BadRequest("Invalid request body", "request.body")
	}

	tpl, err := h.Templates.Upsert(c.UserContext(), &models.EmailTemplate{
		ID:           body.ID.Uint64(),
		FormType:     body.FormType,
		TemplateType: body.TemplateType,
		Subject:      body.Subject,
		Body:         body.Body,
	})
	if err != nil {
		return serviceError(err, "Email template not found")
	}

	return utils.DataResponse(c, tpl)
}
