// ingestor.go
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

package ingest

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	netmail "net/mail"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ansel1/merry"
	"github.com/forgeline/leaddesk/internal/database"
	"github.com/forgeline/leaddesk/internal/mailer"
	"github.com/forgeline/leaddesk/internal/metrics"
	"github.com/forgeline/leaddesk/internal/models"
	"github.com/forgeline/leaddesk/internal/storage"
	"github.com/powerman/structlog"
	"golang.org/x/sync/errgroup"
)

var log = structlog.New(structlog.KeyUnit, "ingest")

// Store persists submissions
type Store interface {
	Create(ctx context.Context, s *models.Submission) error
}

// TemplateSource looks up stored email templates
type TemplateSource interface {
	Find(ctx context.Context, formType, role string) (*models.EmailTemplate, error)
}

// Verifier checks a captcha token
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

// Options are the server side settings the orchestrator needs
type Options struct {
	AdminEmail   string
	AlertEmail   string
	AdminBCC     []string
	MaxFileSize  int64
	SiteName     string
	AlertTimeout time.Duration
}

// Ingestor runs the submission pipeline: validate, normalize, persist, notify
type Ingestor struct {
	store     Store
	files     storage.Store
	mail      mailer.Mailer
	templates TemplateSource
	captcha   Verifier
	opts      Options
	now       func() time.Time
	alerts    sync.WaitGroup
}

// Option customizes an Ingestor
type Option func(*Ingestor)

// WithTemplates enables stored admin templates as fallback content
func WithTemplates(t TemplateSource) Option {
	return func(in *Ingestor) {
		in.templates = t
	}
}

// WithVerifier enables captcha verification
func WithVerifier(v Verifier) Option {
	return func(in *Ingestor) {
		in.captcha = v
	}
}

// WithClock replaces the time source
func WithClock(now func() time.Time) Option {
	return func(in *Ingestor) {
		in.now = now
	}
}

// New creates an Ingestor
func New(store Store, files storage.Store, m mailer.Mailer, opts Options, options ...Option) *Ingestor {
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = DefaultMaxFileSize
	}
	if opts.AlertTimeout <= 0 {
		opts.AlertTimeout = 30 * time.Second
	}
	in := &Ingestor{
		store: store,
		files: files,
		mail:  m,
		opts:  opts,
		now:   time.Now,
	}
	for _, opt := range options {
		opt(in)
	}
	return in
}

// Response is the composite outcome returned to the submitter
type Response struct {
	Status        int           `json:"-"`
	Success       bool          `json:"success"`
	Message       string        `json:"message"`
	SubmissionID  *uint64       `json:"submissionId"`
	Warning       *string       `json:"warning"`
	AdminEmail    mailer.Result `json:"adminEmail"`
	CustomerEmail mailer.Result `json:"customerEmail"`
}

// Submit processes one request. A non-nil error is a rejection (HTTP 400, or 500
// when an upload could not be stored) with no database write and no email.
// Every other outcome is a Response, including the composite hard failure.
func (in *Ingestor) Submit(ctx context.Context, req *Request) (*Response, error) {
	// side effects complete even if the client goes away
	ctx = context.WithoutCancel(ctx)

	if err := in.validate(ctx, req); err != nil {
		metrics.RecordSubmission(formKind(req.FormType), metrics.OutcomeRejected)
		return nil, err
	}

	sub := Normalize(req.FormType, req.FormData, req.CustomerEmail.To)
	sub.IPAddress = req.ClientIP
	sub.UserAgent = req.UserAgent
	if len(req.RawFormData) > 0 {
		if data, err := models.NewJSON(req.RawFormData); err == nil {
			sub.FormData = data
		}
	}
	if sub.EmailMissing {
		log.Warn("submission has no contact email, storing placeholder", "formType", sub.FormType, "name", sub.Name)
	}

	attachments, err := in.storeFiles(ctx, req.Files, sub)
	if err != nil {
		metrics.RecordSubmission(sub.FormType, metrics.OutcomeRejected)
		return nil, merry.Wrap(err).WithHTTPCode(http.StatusInternalServerError).WithUserMessage("Failed to store uploaded file")
	}

	admin := in.adminMessage(ctx, sub, req.AdminEmail, attachments)
	customer := mailer.Message{
		To:      strings.TrimSpace(req.CustomerEmail.To),
		Subject: req.CustomerEmail.Subject,
		HTML:    req.CustomerEmail.HTML,
	}

	resp := &Response{}

	var dbErr *database.Error
	if err := in.store.Create(ctx, sub); err != nil {
		dbErr = database.Classify(err).(*database.Error)
		metrics.RecordPersistenceFailure(string(dbErr.Reason))
		log.PrintErr("failed to save submission", "reason", dbErr.Reason, "formType", sub.FormType, "err", dbErr.Err)
	} else {
		id := sub.ID
		resp.SubmissionID = &id
		log.Info("submission saved", "id", id, "formType", sub.FormType)
	}

	if !in.mail.Configured() {
		notConfigured := mailer.Result{Error: mailer.ErrNotConfigured.Error(), NotConfigured: true}
		resp.AdminEmail, resp.CustomerEmail = notConfigured, notConfigured
		in.composeNotConfigured(resp, sub, dbErr)
		return resp, nil
	}

	var g errgroup.Group
	g.Go(func() error {
		resp.AdminEmail = in.sendAdmin(ctx, admin)
		metrics.RecordEmail("admin", resp.AdminEmail.Success)
		return nil
	})
	g.Go(func() error {
		resp.CustomerEmail = in.mail.Send(ctx, customer)
		metrics.RecordEmail("customer", resp.CustomerEmail.Success)
		return nil
	})
	_ = g.Wait()

	if dbErr != nil {
		in.dispatchAlert(sub, dbErr)
	}

	in.compose(resp, sub, dbErr)
	return resp, nil
}

// Wait blocks until every dispatched operator alert has finished
func (in *Ingestor) Wait() {
	in.alerts.Wait()
}

func (in *Ingestor) validate(ctx context.Context, req *Request) error {
	ce := req.CustomerEmail
	if ce == nil || strings.TrimSpace(ce.To) == "" || strings.TrimSpace(ce.Subject) == "" || strings.TrimSpace(ce.HTML) == "" {
		return badRequest("Missing required customer email fields (to, subject, html)")
	}
	if _, err := netmail.ParseAddress(strings.TrimSpace(ce.To)); err != nil {
		return badRequest("Invalid customer email address")
	}

	for _, field := range Slots {
		if fh := req.Files[field]; fh != nil {
			if err := ValidateUpload(field, fh, in.opts.MaxFileSize); err != nil {
				return err
			}
		}
	}
	for field := range req.Files {
		if _, ok := allowedExtensions[field]; !ok {
			return badRequest(fmt.Sprintf("Unexpected file field: %s", field))
		}
	}

	if in.captcha != nil {
		if err := in.captcha.Verify(ctx, req.RecaptchaToken, req.ClientIP); err != nil {
			log.Warn("captcha rejected", "ip", req.ClientIP, "err", err)
			return badRequest("reCAPTCHA verification failed")
		}
	}

	return nil
}

// storeFiles writes every upload before the submission row can reference it
func (in *Ingestor) storeFiles(ctx context.Context, files map[string]*multipart.FileHeader, sub *models.Submission) ([]mailer.Attachment, error) {
	var attachments []mailer.Attachment

	for _, field := range Slots {
		fh := files[field]
		if fh == nil {
			continue
		}

		src, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", field, err)
		}
		name := storage.GenerateName(field, filepath.Ext(fh.Filename), in.now())
		rel, err := in.files.Save(ctx, name, src, fh.Size, fh.Header.Get("Content-Type"))
		_ = src.Close()
		if err != nil {
			return nil, err
		}

		switch field {
		case FieldCAD:
			sub.CADFilePath = &rel
		case FieldRFQ:
			sub.RFQFilePath = &rel
		}

		stored := rel
		attachments = append(attachments, mailer.Attachment{
			Name: filepath.Base(fh.Filename),
			Open: func() (io.ReadCloser, error) {
				return in.files.Open(ctx, stored)
			},
		})
	}

	return attachments, nil
}

func (in *Ingestor) sendAdmin(ctx context.Context, msg mailer.Message) mailer.Result {
	if msg.To == "" {
		log.Warn("ADMIN_EMAIL is not set, skipping operator notification")
		return mailer.Result{Error: "operator address not configured"}
	}
	return in.mail.Send(ctx, msg)
}

// dispatchAlert sends the operator alert on its own goroutine. Its failure is only logged.
func (in *Ingestor) dispatchAlert(sub *models.Submission, dbErr *database.Error) {
	if in.opts.AlertEmail == "" {
		log.Warn("no alert address configured, database failure not reported", "reason", dbErr.Reason)
		return
	}

	msg := alertMessage(in.opts.AlertEmail, sub, dbErr, in.now())

	in.alerts.Add(1)
	go func() {
		defer in.alerts.Done()
		defer func() {
			if r := recover(); r != nil {
				log.PrintErr("operator alert panicked", "panic", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), in.opts.AlertTimeout)
		defer cancel()

		res := in.mail.Send(ctx, msg)
		metrics.RecordEmail("alert", res.Success)
		if !res.Success {
			log.Warn("operator alert failed", "to", msg.To, "err", res.Error)
		}
	}()
}

func (in *Ingestor) composeNotConfigured(resp *Response, sub *models.Submission, dbErr *database.Error) {
	resp.Status = http.StatusOK
	resp.Success = true
	if dbErr == nil {
		resp.Message = "Form submitted successfully"
		resp.Warning = warning("Email service not configured. Your submission was saved but no notification emails were sent.")
	} else {
		resp.Message = "Form received"
		resp.Warning = warning("Email service not configured and the submission could not be saved to the database.")
	}
	log.Warn("SMTP not configured, skipped notifications", "formType", sub.FormType)
	metrics.RecordSubmission(sub.FormType, metrics.OutcomeDegraded)
}

func (in *Ingestor) compose(resp *Response, sub *models.Submission, dbErr *database.Error) {
	adminOK, customerOK := resp.AdminEmail.Success, resp.CustomerEmail.Success
	persisted := dbErr == nil

	resp.Status = http.StatusOK
	resp.Success = true
	outcome := metrics.OutcomeDegraded

	switch {
	case persisted && adminOK && customerOK:
		resp.Message = "Form submitted successfully"
		outcome = metrics.OutcomeComplete
	case persisted && !adminOK && !customerOK:
		resp.Message = "Form submitted successfully"
		resp.Warning = warning("Your submission was saved but notification emails could not be sent.")
	case persisted && !adminOK:
		resp.Message = "Form submitted successfully"
		resp.Warning = warning("Your submission was saved but our team could not be notified by email.")
	case persisted && !customerOK:
		resp.Message = "Form submitted successfully"
		resp.Warning = warning("Your submission was saved but the confirmation email could not be sent.")
	case adminOK || customerOK:
		resp.Message = "Form received"
		// the classified reason goes to logs, metrics and the operator alert only
		resp.Warning = warning("Your submission was emailed but could not be saved. Our team has been notified.")
	default:
		resp.Status = http.StatusInternalServerError
		resp.Success = false
		resp.Message = "Failed to process your submission. Please try again later or contact us directly."
		outcome = metrics.OutcomeFailed
		log.PrintErr("submission lost: database and both emails failed", "formType", sub.FormType, "email", sub.Email)
	}

	metrics.RecordSubmission(sub.FormType, outcome)
}

func warning(s string) *string {
	return &s
}

func formKind(kind string) string {
	if kind = strings.ToLower(strings.TrimSpace(kind)); kind != "" {
		return kind
	}
	return models.FormTypeContact
}
