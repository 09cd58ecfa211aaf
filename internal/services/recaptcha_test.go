package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/forgeline/leaddesk/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func siteverify(t *testing.T, body string, seen *http.Request) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if seen != nil {
			*seen = *r
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRecaptchaVerifier(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		token   string
		wantErr error
	}{
		{name: "v2 success", body: `{"success": true}`, token: "tok"},
		{name: "v3 score above minimum", body: `{"success": true, "score": 0.9}`, token: "tok"},
		{name: "v3 score below minimum", body: `{"success": true, "score": 0.1}`, token: "tok", wantErr: ErrCaptchaFailed},
		{name: "rejected", body: `{"success": false, "error-codes": ["invalid-input-response"]}`, token: "tok", wantErr: ErrCaptchaFailed},
		{name: "missing token", body: `{"success": true}`, token: "  ", wantErr: ErrCaptchaMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := siteverify(t, tt.body, nil)
			v := NewRecaptchaVerifier(config.RecaptchaConfig{Secret: "s3cret", MinScore: 0.5, VerifyURL: srv.URL})

			err := v.Verify(context.Background(), tt.token, "203.0.113.9")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRecaptchaVerifier_SendsForm(t *testing.T) {
	var seen http.Request
	srv := siteverify(t, `{"success": true}`, &seen)
	v := NewRecaptchaVerifier(config.RecaptchaConfig{Secret: "s3cret", VerifyURL: srv.URL})

	require.NoError(t, v.Verify(context.Background(), "tok", "203.0.113.9"))
	assert.Equal(t, http.MethodPost, seen.Method)
	assert.Equal(t, "s3cret", seen.PostForm.Get("secret"))
	assert.Equal(t, "tok", seen.PostForm.Get("response"))
	assert.Equal(t, "203.0.113.9", seen.PostForm.Get("remoteip"))
}

func TestRecaptchaVerifier_Unreachable(t *testing.T) {
	srv := siteverify(t, `{"success": true}`, nil)
	srv.Close()

	v := NewRecaptchaVerifier(config.RecaptchaConfig{Secret: "s3cret", VerifyURL: srv.URL})
	assert.Error(t, v.Verify(context.Background(), "tok", ""))
}
