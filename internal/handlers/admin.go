package handlers

import (
	"errors"

	"github.com/forgeline/leaddesk/internal/middleware"
	"github.com/forgeline/leaddesk/internal/models"
	"github.com/forgeline/leaddesk/internal/services"
	"github.com/forgeline/leaddesk/internal/types"
	"github.com/forgeline/leaddesk/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler serves the authenticated admin API
type AdminHandler struct {
	Auth        *services.AuthService
	Submissions *services.SubmissionStore
}

// LoginRequest is the admin login body. Username may also be an email address.
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token
type LoginResponse struct {
	Success bool              `json:"success"`
	Token   string            `json:"token"`
	User    *models.AdminUser `json:"user"`
}

// Login handles POST /api/admin/login
// @Summary Admin login
// @Description Verifies a username or email and password and returns a bearer token
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /admin/login [post]
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var body LoginRequest
	if err := c.BodyParser(&body); err != nil {
		return types.BadRequest("Invalid request body", "request.body")
	}

	identifier := body.Username
	if identifier == "" {
		identifier = body.Email
	}
	if identifier == "" || body.Password == "" {
		return types.BadRequest("Username and password are required", "auth.login")
	}

	token, user, err := h.Auth.Login(c.UserContext(), identifier, body.Password)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		log.Info("admin login refused", "username", identifier, "ip", middleware.ClientIP(c))
		return types.Unauthorized("Invalid credentials", "auth.login")
	case errors.Is(err, services.ErrInactiveUser):
		return types.Unauthorized("Account is disabled", "auth.inactive")
	case err != nil:
		return serviceError(err, "")
	}

	log.Info("admin logged in", "username", user.Username, "ip", middleware.ClientIP(c))
	return c.JSON(LoginResponse{Success: true, Token: token, User: user})
}

// Me handles GET /api/admin/me
// @Summary Current admin
// @Description Returns the admin user bound to the bearer token
// @Tags Admin
// @Produce json
// @Success 200 {object} models.AdminUser
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /admin/me [get]
func (h *AdminHandler) Me(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "user": middleware.CurrentUser(c)})
}

// ListSubmissions handles GET /api/admin/submissions
// @Summary List submissions
// @Description Filtered, sorted and paginated submissions
// @Tags Admin
// @Produce json
// @Param page query int false "Page, default 1"
// @Param limit query int false "Page size, default 20, max 100"
// @Param formType query string false "contact, quote, certification or all"
// @Param search query string false "Matches name, email or message"
// @Param dateFilter query string false "today, week or month"
// @Param sortBy query string false "id, created_at, name, email or form_type"
// @Param sortOrder query string false "asc or desc"
// @Success 200 {object} services.SubmissionPage
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /admin/submissions [get]
func (h *AdminHandler) ListSubmissions(c *fiber.Ctx) error {
	q := services.SubmissionQuery{
		Page:       c.QueryInt("page", 1),
		Limit:      c.QueryInt("limit", services.DefaultPageSize),
		FormType:   c.Query("formType"),
		Search:     c.Query("search"),
		DateFilter: c.Query("dateFilter"),
		SortBy:     c.Query("sortBy"),
		SortOrder:  c.Query("sortOrder"),
	}

	page, err := h.Submissions.List(c.UserContext(), q)
	if err != nil {
		return serviceError(err, "")
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       page.Data,
		"pagination": page.Pagination,
	})
}

// GetSubmission handles GET /api/admin/submissions/:id
// @Summary Get submission
// @Tags Admin
// @Produce json
// @Param id path int true "Submission ID"
// @Success 200 {object} models.Submission
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /admin/submissions/{id} [get]
func (h *AdminHandler) GetSubmission(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	sub, err := h.Submissions.Get(c.UserContext(), id)
	if err != nil {
		return serviceError(err, "Submission not found")
	}

	return utils.DataResponse(c, sub)
}

// DeleteSubmission handles DELETE /api/admin/submissions/:id
// @Summary Delete submission
// @Description Deletes the row only; uploaded files are kept
// @Tags Admin
// @Produce json
// @Param id path int true "Submission ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /admin/submissions/{id} [delete]
func (h *AdminHandler) DeleteSubmission(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	if err := h.Submissions.Delete(c.UserContext(), id); err != nil {
		return serviceError(err, "Submission not found")
	}

	if user := middleware.CurrentUser(c); user != nil {
		log.Info("submission deleted", "id", id, "by", user.Username)
	}
	return utils.MessageResponse(c, "Submission deleted successfully")
}

// Stats handles GET /api/admin/stats
// @Summary Submission statistics
// @Tags Admin
// @Produce json
// @Success 200 {object} services.SubmissionStats
// @Security BearerAuth
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.Submissions.Stats(c.UserContext())
	if err != nil {
		return serviceError(err, "")
	}
	return utils.DataResponse(c, stats)
}
