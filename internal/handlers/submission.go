// submission.go
//
// Lead capture, notification and admin backend for the leaddesk marketing site
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of leaddesk.
// leaddesk is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// leaddesk is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with leaddesk.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"strings"

	"github.com/forgeline/leaddesk/internal/ingest"
	"github.com/forgeline/leaddesk/internal/middleware"
	"github.com/forgeline/leaddesk/internal/types"
	"github.com/gofiber/fiber/v2"
)

// bodyHeadroom covers the form fields and multipart framing around the uploads
const bodyHeadroom = 2 * 1024 * 1024

// BodyLimit is the request size that admits both upload slots at maxFileSize
func BodyLimit(maxFileSize int64) int {
	if maxFileSize <= 0 {
		maxFileSize = ingest.DefaultMaxFileSize
	}
	return int(int64(len(ingest.Slots))*maxFileSize + bodyHeadroom)
}

// SubmissionHandler serves the public lead capture endpoint
type SubmissionHandler struct {
	Ingestor *ingest.Ingestor
}

// SendEmail handles POST /api/send-email
// @Summary Submit a lead capture form
// @Description Accepts JSON or multipart form data (with cadFile and rfqFile uploads), stores the submission and notifies the operator and the customer
// @Tags Submissions
// @Accept json,mpfd
// @Produce json
// @Param body body object true "formType, formData, customerEmail, adminEmail, recaptchaToken"
// @Success 200 {object} ingest.Response
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} ingest.Response
// @Router /send-email [post]
func (h *SubmissionHandler) SendEmail(c *fiber.Ctx) error {
	var (
		req *ingest.Request
		err error
	)

	if strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm) {
		form, ferr := c.MultipartForm()
		if ferr != nil {
			return types.BadRequest("Invalid multipart form data", "request.multipart")
		}
		req, err = ingest.DecodeMultipart(form)
	} else {
		req, err = ingest.DecodeJSON(c.Body())
	}
	if err != nil {
		return err
	}

	req.ClientIP = middleware.ClientIP(c)
	req.UserAgent = c.Get(fiber.HeaderUserAgent)

	resp, err := h.Ingestor.Submit(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.Status(resp.Status).JSON(resp)
}
