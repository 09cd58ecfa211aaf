// common.go
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
	"errors"
	"fmt"
	"strconv"

	"github.com/ansel1/merry"
	"github.com/forgeline/leaddesk/internal/database"
	"github.com/forgeline/leaddesk/internal/ingest"
	"github.com/forgeline/leaddesk/internal/services"
	"github.com/forgeline/leaddesk/internal/types"
	"github.com/forgeline/leaddesk/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/powerman/structlog"
)

var log = structlog.New(structlog.KeyUnit, "handlers")

// ErrorHandler converts every error reaching fiber into {success: false, message}.
// Outside production the stack trace of unexpected errors is attached.
// maxFileSize is the per-file upload limit quoted when a body exceeds BodyLimit.
func ErrorHandler(production bool, maxFileSize int64) fiber.ErrorHandler {
	if maxFileSize <= 0 {
		maxFileSize = ingest.DefaultMaxFileSize
	}
	return func(c *fiber.Ctx, err error) error {
		body := utils.ErrorResponseStruct{Message: err.Error()}
		code := fiber.StatusInternalServerError

		var ce *types.CustomError
		var fe *fiber.Error
		switch {
		case errors.Is(err, fiber.ErrRequestEntityTooLarge):
			code = fiber.StatusRequestEntityTooLarge
			body.Message = fmt.Sprintf("File too large: uploads are limited to %dMB each", maxFileSize/(1024*1024))
			body.Type = "upload.tooLarge"
		case errors.As(err, &ce):
			code = ce.Code
			body.Message = ce.Message
			body.Type = ce.Type
		case errors.As(err, &fe):
			code = fe.Code
			body.Message = fe.Message
		default:
			code = merry.HTTPCode(err)
			if msg := merry.UserMessage(err); msg != "" {
				body.Message = msg
			}
			if code >= fiber.StatusInternalServerError {
				log.PrintErr("request failed", "method", c.Method(), "path", c.Path(), "err", err)
				if !production {
					body.Stack = merry.Stacktrace(err)
				}
			}
		}

		return c.Status(code).JSON(body)
	}
}

// paramID parses the :id route parameter
func paramID(c *fiber.Ctx) (uint64, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, types.BadRequest("Invalid id", "request.id")
	}
	return id, nil
}

// serviceError maps service failures to HTTP errors
func serviceError(err error, notFound string) error {
	var dbErr *database.Error
	switch {
	case errors.Is(err, services.ErrNotFound):
		return types.NotFound(notFound, "notFound")
	case errors.Is(err, services.ErrInvalid):
		return types.BadRequest(err.Error(), "validation")
	case errors.As(err, &dbErr):
		log.PrintErr("database error", "reason", dbErr.Reason, "err", dbErr.Err)
		return &types.CustomError{Code: fiber.StatusServiceUnavailable, Message: dbErr.Hint(), Type: "database." + string(dbErr.Reason)}
	}
	return merry.Wrap(err)
}
