// mailer.go
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

package mailer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/forgeline/leaddesk/internal/config"
	"github.com/powerman/structlog"
	"github.com/wneessen/go-mail"
)

var log = structlog.New(structlog.KeyUnit, "mailer")

// ErrNotConfigured is reported when a required SMTP setting is missing
var ErrNotConfigured = errors.New("email service not configured")

// Attachment is a named file read lazily at send time
type Attachment struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// Message is one outbound HTML email
type Message struct {
	To          string
	Subject     string
	HTML        string
	BCC         []string
	Attachments []Attachment
}

// Result is the outcome of one send. Send never returns an error value.
type Result struct {
	Success       bool   `json:"success"`
	MessageID     string `json:"messageId,omitempty"`
	Error         string `json:"error,omitempty"`
	NotConfigured bool   `json:"-"`
}

// Mailer is the notification gateway
type Mailer interface {
	Send(ctx context.Context, msg Message) Result
	Verify(ctx context.Context) bool
	Configured() bool
}

// Transport delivers composed messages
type Transport interface {
	Send(ctx context.Context, msg *mail.Msg) error
	Verify(ctx context.Context) error
}

// SMTPMailer sends mail through an SMTP server using go-mail
type SMTPMailer struct {
	cfg       config.SMTPConfig
	transport Transport
}

// Option customizes an SMTPMailer
type Option func(*SMTPMailer)

// WithTransport replaces the SMTP transport
func WithTransport(t Transport) Option {
	return func(m *SMTPMailer) {
		m.transport = t
	}
}

// New creates the mailer. Missing credentials are not an error here; they
// surface as a NotConfigured result on every send.
func New(cfg config.SMTPConfig, opts ...Option) *SMTPMailer {
	m := &SMTPMailer{cfg: cfg}
	for _, opt := range opts {
		opt(m)
	}
	if m.transport == nil && cfg.Configured() {
		m.transport = &smtpTransport{cfg: cfg}
	}
	return m
}

// Configured implements Mailer
func (m *SMTPMailer) Configured() bool {
	return m.cfg.Configured() && m.transport != nil
}

// Send implements Mailer
func (m *SMTPMailer) Send(ctx context.Context, msg Message) (result Result) {
	if !m.Configured() {
		return Result{Error: ErrNotConfigured.Error(), NotConfigured: true}
	}

	defer func() {
		if r := recover(); r != nil {
			log.PrintErr("panic while sending email", "to", msg.To, "panic", r)
			result = Result{Error: fmt.Sprintf("send aborted: %v", r)}
		}
	}()

	composed, err := m.compose(msg)
	if err != nil {
		log.Warn("failed to compose email", "to", msg.To, "err", err)
		return Result{Error: err.Error()}
	}

	if err := m.transport.Send(ctx, composed); err != nil {
		log.Warn("failed to send email", "to", msg.To, "subject", msg.Subject, "err", err)
		return Result{Error: err.Error()}
	}

	id := messageID(composed)
	log.Info("email sent", "to", msg.To, "messageId", id)
	return Result{Success: true, MessageID: id}
}

// Verify implements Mailer
func (m *SMTPMailer) Verify(ctx context.Context) bool {
	if !m.Configured() {
		return false
	}
	if err := m.transport.Verify(ctx); err != nil {
		log.Warn("SMTP verification failed", "host", m.cfg.Host, "err", err)
		return false
	}
	return true
}

func (m *SMTPMailer) compose(msg Message) (*mail.Msg, error) {
	if strings.TrimSpace(msg.To) == "" {
		return nil, errors.New("missing recipient")
	}

	from := m.cfg.FromEmail
	if from == "" {
		from = m.cfg.User
	}

	out := mail.NewMsg()
	if err := out.FromFormat(m.cfg.FromName, from); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	if err := out.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}
	if len(msg.BCC) > 0 {
		if err := out.Bcc(msg.BCC...); err != nil {
			return nil, fmt.Errorf("invalid bcc: %w", err)
		}
	}
	out.Subject(msg.Subject)
	out.SetBodyString(mail.TypeTextHTML, msg.HTML)
	out.SetDate()
	out.SetMessageID()

	for _, a := range msg.Attachments {
		if err := attach(out, a); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func attach(out *mail.Msg, a Attachment) error {
	rc, err := a.Open()
	if err != nil {
		return fmt.Errorf("open attachment %s: %w", a.Name, err)
	}
	defer log.ErrIfFail(rc.Close)

	if err := out.AttachReader(a.Name, rc); err != nil {
		return fmt.Errorf("attach %s: %w", a.Name, err)
	}
	return nil
}

func messageID(msg *mail.Msg) string {
	if ids := msg.GetGenHeader(mail.HeaderMessageID); len(ids) > 0 {
		return ids[0]
	}
	return ""
}

// smtpTransport dials a fresh SMTP session per send
type smtpTransport struct {
	cfg config.SMTPConfig
}

func (t *smtpTransport) client() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(t.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(t.cfg.User),
		mail.WithPassword(t.cfg.Password),
		mail.WithTimeout(15 * time.Second),
	}
	if t.cfg.Secure {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	return mail.NewClient(t.cfg.Host, opts...)
}

func (t *smtpTransport) Send(ctx context.Context, msg *mail.Msg) error {
	c, err := t.client()
	if err != nil {
		return err
	}
	return c.DialAndSendWithContext(ctx, msg)
}

func (t *smtpTransport) Verify(ctx context.Context) error {
	c, err := t.client()
	if err != nil {
		return err
	}
	if err := c.DialWithContext(ctx); err != nil {
		return err
	}
	return c.Close()
}
