package testutil

import (
	"context"
	"io"
	"sync"

	"github.com/forgeline/leaddesk/internal/mailer"
)

// FakeMailer records messages instead of sending them
type FakeMailer struct {
	mu         sync.Mutex
	configured bool
	failures   map[string]string
	sent       []mailer.Message
	attached   map[string][]string
	VerifyOK   bool
}

// NewFakeMailer returns a configured fake whose sends all succeed
func NewFakeMailer() *FakeMailer {
	return &FakeMailer{configured: true, failures: map[string]string{}, attached: map[string][]string{}, VerifyOK: true}
}

// NewUnconfiguredMailer returns a fake that reports missing SMTP settings
func NewUnconfiguredMailer() *FakeMailer {
	m := NewFakeMailer()
	m.configured = false
	return m
}

// FailFor makes sends to the recipient fail with the given reason
func (m *FakeMailer) FailFor(to, reason string) *FakeMailer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[to] = reason
	return m
}

// Configured implements mailer.Mailer
func (m *FakeMailer) Configured() bool {
	return m.configured
}

// Verify implements mailer.Mailer
func (m *FakeMailer) Verify(ctx context.Context) bool {
	return m.configured && m.VerifyOK
}

// Send implements mailer.Mailer. Attachments are read so tests can assert on their content.
func (m *FakeMailer) Send(ctx context.Context, msg mailer.Message) mailer.Result {
	if !m.configured {
		return mailer.Result{Error: mailer.ErrNotConfigured.Error(), NotConfigured: true}
	}

	var contents []string
	for _, a := range msg.Attachments {
		rc, err := a.Open()
		if err != nil {
			return mailer.Result{Error: err.Error()}
		}
		data, _ := io.ReadAll(rc)
		_ = rc.Close()
		contents = append(contents, string(data))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sent = append(m.sent, msg)
	if reason, ok := m.failures[msg.To]; ok {
		return mailer.Result{Error: reason}
	}
	m.attached[msg.To] = append(m.attached[msg.To], contents...)
	return mailer.Result{Success: true, MessageID: "<fake-" + msg.To + ">"}
}

// Sent returns every attempted message
func (m *FakeMailer) Sent() []mailer.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mailer.Message(nil), m.sent...)
}

// SentTo returns the attempted messages for one recipient
func (m *FakeMailer) SentTo(to string) []mailer.Message {
	var out []mailer.Message
	for _, msg := range m.Sent() {
		if msg.To == to {
			out = append(out, msg)
		}
	}
	return out
}

// Attached returns the content of attachments successfully delivered to a recipient
func (m *FakeMailer) Attached(to string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.attached[to]...)
}
