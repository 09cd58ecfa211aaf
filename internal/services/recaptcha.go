package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/forgeline/leaddesk/internal/config"
	"github.com/gofiber/fiber/v2"
)

var (
	ErrCaptchaMissing = errors.New("captcha token missing")
	ErrCaptchaFailed  = errors.New("captcha verification failed")
)

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	Score      *float64 `json:"score"`
	Action     string   `json:"action"`
	Hostname   string   `json:"hostname"`
	ErrorCodes []string `json:"error-codes"`
}

// RecaptchaVerifier checks tokens against the siteverify endpoint
type RecaptchaVerifier struct {
	cfg     config.RecaptchaConfig
	timeout time.Duration
}

// NewRecaptchaVerifier creates a RecaptchaVerifier
func NewRecaptchaVerifier(cfg config.RecaptchaConfig) *RecaptchaVerifier {
	return &RecaptchaVerifier{cfg: cfg, timeout: 5 * time.Second}
}

// Verify returns nil when the token is accepted. v3 scores below the configured minimum are refused.
func (v *RecaptchaVerifier) Verify(ctx context.Context, token, remoteIP string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrCaptchaMissing
	}

	timeout := v.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(deadline))
	}

	args := fiber.AcquireArgs()
	defer fiber.ReleaseArgs(args)
	args.Set("secret", v.cfg.Secret)
	args.Set("response", token)
	if remoteIP != "" {
		args.Set("remoteip", remoteIP)
	}

	var resp siteverifyResponse
	code, _, errs := fiber.Post(v.cfg.VerifyURL).Form(args).Timeout(timeout).Struct(&resp)
	if len(errs) > 0 {
		return fmt.Errorf("siteverify request failed: %w", errors.Join(errs...))
	}
	if code != fiber.StatusOK {
		return fmt.Errorf("siteverify returned status %d", code)
	}

	if !resp.Success {
		return fmt.Errorf("%w: %s", ErrCaptchaFailed, strings.Join(resp.ErrorCodes, ","))
	}
	if resp.Score != nil && *resp.Score < v.cfg.MinScore {
		return fmt.Errorf("%w: score %.2f below %.2f", ErrCaptchaFailed, *resp.Score, v.cfg.MinScore)
	}

	return nil
}
