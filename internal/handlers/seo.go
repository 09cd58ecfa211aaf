package handlers

import (
	"net/url"

	"github.com/forgeline/leaddesk/internal/models"
	"github.com/forgeline/leaddesk/internal/services"
	"github.com/forgeline/leaddesk/internal/types"
	"github.com/forgeline/leaddesk/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// SEOHandler serves page metadata
type SEOHandler struct {
	SEO *services.SEOService
}

// SEORequest is the upsert body; keywords may be a string or an array
type SEORequest struct {
	PagePath      string                 `json:"page_path"`
	Title         string                 `json:"title"`
	Description   string                 `json:"description"`
	Keywords      types.FlexList[string] `json:"keywords" swaggertype:"array,string"`
	OGTitle       string                 `json:"og_title"`
	OGDescription string                 `json:"og_description"`
	OGImage       string                 `json:"og_image"`
	CanonicalURL  string                 `json:"canonical_url"`
}

func pagePath(c *fiber.Ctx) string {
	raw := c.Params("*")
	if raw == "" {
		raw = c.Params("path")
	}
	if p, err := url.PathUnescape(raw); err == nil {
		return services.NormalizePath(p)
	}
	return services.NormalizePath(raw)
}

// Lookup handles GET /api/seo/*
// @Summary Page metadata
// @Description Always succeeds; unknown paths get the site default with a canonical URL for the path
// @Tags SEO
// @Produce json
// @Param path path string true "Page path"
// @Success 200 {object} models.SEOMeta
// @Router /seo/{path} [get]
func (h *SEOHandler) Lookup(c *fiber.Ctx) error {
	return utils.DataResponse(c, h.SEO.Lookup(c.UserContext(), pagePath(c)))
}

// List handles GET /api/admin/seo
// @Summary List page metadata
// @Tags Admin
// @Produce json
// @Success 200 {array} models.SEOMeta
// @Security BearerAuth
// @Router /admin/seo [get]
func (h *SEOHandler) List(c *fiber.Ctx) error {
	rows, err := h.SEO.List(c.UserContext())
	if err != nil {
		return serviceError(err, "")
	}
	return utils.DataResponse(c, rows)
}

// Get handles GET /api/admin/seo/*
// @Summary Get stored page metadata
// @Tags Admin
// @Produce json
// @Param path path string true "Page path"
// @Success 200 {object} models.SEOMeta
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /admin/seo/{path} [get]
func (h *SEOHandler) Get(c *fiber.Ctx) error {
	meta, err := h.SEO.Get(c.UserContext(), pagePath(c))
	if err != nil {
		return serviceError(err, "SEO metadata not found")
	}
	return utils.DataResponse(c, meta)
}

// Upsert handles POST /api/admin/seo
// @Summary Create or replace page metadata
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body SEORequest true "Page metadata"
// @Success 200 {object} models.SEOMeta
// @Failure 400 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /admin/seo [post]
func (h *SEOHandler) Upsert(c *fiber.Ctx) error {
	var body SEORequest
	if err := c.BodyParser(&body); err != nil {
		return types.BadRequest("Invalid request body", "request.body")
	}

	meta, err := h.SEO.Upsert(c.UserContext(), &models.SEOMeta{
		PagePath:      body.PagePath,
		Title:         body.Title,
		Description:   body.Description,
		Keywords:      types.Join(body.Keywords),
		OGTitle:       body.OGTitle,
		OGDescription: body.OGDescription,
		OGImage:       body.OGImage,
		CanonicalURL:  body.CanonicalURL,
	})
	if err != nil {
		return serviceError(err, "")
	}

	return utils.DataResponse(c, meta)
}
