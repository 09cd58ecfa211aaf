// main.go
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

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/forgeline/leaddesk/internal/config"
	"github.com/forgeline/leaddesk/internal/database"
	"github.com/forgeline/leaddesk/internal/handlers"
	"github.com/forgeline/leaddesk/internal/ingest"
	"github.com/forgeline/leaddesk/internal/mailer"
	"github.com/forgeline/leaddesk/internal/middleware"
	"github.com/forgeline/leaddesk/internal/services"
	"github.com/forgeline/leaddesk/internal/storage"
	"github.com/forgeline/leaddesk/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	swagger "github.com/gofiber/swagger"
	"github.com/powerman/structlog"

	_ "github.com/forgeline/leaddesk/docs/api" // Swagger docs
)

// @title Leaddesk API
// @version 1.0.0
// @description Lead capture, notification and admin backend
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:5000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

var log = structlog.New(structlog.KeyUnit, "main")

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	utils.InitLog(cfg.IsProduction())

	// Open the pool; nothing is dialled until first use
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer log.ErrIfFail(func() error { return database.Close(db) })

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	files, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to open upload store: %v", err)
	}

	mail := mailer.New(cfg.SMTP)
	store := services.NewSubmissionStore(db, cfg)
	templates := services.NewTemplateService(db)

	options := []ingest.Option{ingest.WithTemplates(templates)}
	if cfg.Recaptcha.Enabled() {
		options = append(options, ingest.WithVerifier(services.NewRecaptchaVerifier(cfg.Recaptcha)))
	} else {
		log.Warn("RECAPTCHA_SECRET not set, captcha tokens are not verified")
	}

	ingestor := ingest.New(store, files, mail, ingest.Options{
		AdminEmail:  cfg.AdminEmail,
		AlertEmail:  cfg.AlertEmail(),
		AdminBCC:    cfg.AdminBCC,
		MaxFileSize: cfg.Storage.MaxFileSize,
		SiteName:    cfg.Site.Name,
	}, options...)

	// Dependencies may be down at boot; both checks only log
	go func() {
		if err := store.Init(ctx); err != nil {
			var dbErr *database.Error
			if errors.As(err, &dbErr) {
				log.Warn("database not ready, will retry on first submission", "reason", dbErr.Reason, "hint", dbErr.Hint())
			} else {
				log.Warn("database not ready, will retry on first submission", "err", err)
			}
			return
		}
		if _, err := templates.Seed(ctx); err != nil {
			log.Warn("failed to seed email templates", "err", err)
		}
	}()
	go func() {
		switch {
		case !mail.Configured():
			log.Warn("SMTP not configured, notifications will be skipped")
		case mail.Verify(ctx):
			log.Info("SMTP connection verified", "host", cfg.SMTP.Host)
		default:
			log.Warn("SMTP verification failed, sends will still be attempted", "host", cfg.SMTP.Host)
		}
	}()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(cfg.IsProduction(), cfg.Storage.MaxFileSize),
		BodyLimit:             handlers.BodyLimit(cfg.Storage.MaxFileSize),
		DisableStartupMessage: cfg.IsProduction(),
	})

	// Global middleware
	app.Use(recover.New(recover.Config{EnableStackTrace: !cfg.IsProduction()}))
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New(helmet.Config{CrossOriginResourcePolicy: "cross-origin"}))
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigins}))
	app.Use(compress.New())
	app.Use(middleware.RequestMeta())

	// Prometheus metrics
	prometheus := fiberprometheus.New("leaddesk")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	handlers.SetupRoutes(app, handlers.Deps{
		Config:      cfg,
		DB:          db,
		Ingestor:    ingestor,
		Mailer:      mail,
		Files:       files,
		Auth:        services.NewAuthService(db, cfg.Auth),
		Submissions: store,
		SEO:         services.NewSEOService(db, cfg.Site),
		Templates:   templates,
	})

	// Built frontend, with client side routing falling back to index.html
	if cfg.StaticDir != "" {
		app.Static("/", cfg.StaticDir, fiber.Static{Compress: true, Index: "index.html"})
		app.Get("/*", func(c *fiber.Ctx) error {
			if strings.HasPrefix(c.Path(), "/api/") {
				return c.Next()
			}
			return c.SendFile(filepath.Join(cfg.StaticDir, "index.html"))
		})
	}

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return utils.NotFoundResponse(c, "Route not found")
	})

	go func() {
		<-ctx.Done()
		log.Info("gracefully shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.PrintErr("shutdown failed", "err", err)
		}
	}()

	// Start server
	log.Info("starting server", "port", cfg.Port, "env", cfg.Env)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	// Outstanding operator alerts finish before exit
	ingestor.Wait()
	log.Info("server stopped")
}
