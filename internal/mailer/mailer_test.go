package mailer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/forgeline/leaddesk/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

type recordingTransport struct {
	mu      sync.Mutex
	sent    []*mail.Msg
	sendErr error
	panics  bool
}

func (r *recordingTransport) Send(ctx context.Context, msg *mail.Msg) error {
	if r.panics {
		panic("transport exploded")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return r.sendErr
}

func (r *recordingTransport) Verify(ctx context.Context) error {
	return r.sendErr
}

func smtpConfig() config.SMTPConfig {
	return config.SMTPConfig{
		Host:      "smtp.example.com",
		Port:      587,
		User:      "mailer@example.com",
		Password:  "secret",
		FromName:  "Acme Castings",
		FromEmail: "noreply@example.com",
	}
}

func TestSendNotConfigured(t *testing.T) {
	transport := &recordingTransport{}
	m := New(config.SMTPConfig{Host: "smtp.example.com"}, WithTransport(transport))

	assert.False(t, m.Configured())
	assert.False(t, m.Verify(context.Background()))

	res := m.Send(context.Background(), Message{To: "jane@example.com", Subject: "Hi", HTML: "<p>Hi</p>"})
	assert.False(t, res.Success)
	assert.True(t, res.NotConfigured)
	assert.Equal(t, ErrNotConfigured.Error(), res.Error)
	assert.Empty(t, transport.sent)
}

func TestSendComposesMessage(t *testing.T) {
	transport := &recordingTransport{}
	m := New(smtpConfig(), WithTransport(transport))
	require.True(t, m.Configured())

	opened := false
	res := m.Send(context.Background(), Message{
		To:      "sales@example.com",
		Subject: "New quote request",
		HTML:    "<p>Quote</p>",
		BCC:     []string{"audit@example.com"},
		Attachments: []Attachment{{
			Name: "part.step",
			Open: func() (io.ReadCloser, error) {
				opened = true
				return io.NopCloser(strings.NewReader("ISO-10303-21;")), nil
			},
		}},
	})

	require.True(t, res.Success, res.Error)
	assert.NotEmpty(t, res.MessageID)
	assert.True(t, opened)
	require.Len(t, transport.sent, 1)

	var buf bytes.Buffer
	_, err := transport.sent[0].WriteTo(&buf)
	require.NoError(t, err)
	raw := buf.String()
	assert.Contains(t, raw, "To: <sales@example.com>")
	assert.Contains(t, raw, "Subject: New quote request")
	assert.Contains(t, raw, `"Acme Castings" <noreply@example.com>`)
	assert.Contains(t, raw, "part.step")
	assert.Equal(t, []string{"<audit@example.com>"}, transport.sent[0].GetAddrHeaderString(mail.HeaderBcc))
}

func TestSendFailuresAreResults(t *testing.T) {
	transport := &recordingTransport{sendErr: errors.New("450 mailbox busy")}
	m := New(smtpConfig(), WithTransport(transport))

	res := m.Send(context.Background(), Message{To: "jane@example.com", Subject: "Hi", HTML: "x"})
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "mailbox busy")
	assert.False(t, m.Verify(context.Background()))

	res = m.Send(context.Background(), Message{To: "", Subject: "Hi", HTML: "x"})
	assert.False(t, res.Success)
	assert.Equal(t, "missing recipient", res.Error)

	res = m.Send(context.Background(), Message{
		To: "jane@example.com", Subject: "Hi", HTML: "x",
		Attachments: []Attachment{{Name: "gone.pdf", Open: func() (io.ReadCloser, error) { return nil, errors.New("missing") }}},
	})
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "gone.pdf")
}

func TestSendRecoversFromPanic(t *testing.T) {
	m := New(smtpConfig(), WithTransport(&recordingTransport{panics: true}))

	res := m.Send(context.Background(), Message{To: "jane@example.com", Subject: "Hi", HTML: "x"})
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "transport exploded")
}
