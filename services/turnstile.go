package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"learned_site/config"
)

var turnstileVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

// Widget actions; the form renders one and siteverify echoes it back, so a
// token solved on the newsletter box cannot be replayed on the contact form
const (
	CaptchaActionContact    = "contact"
	CaptchaActionNewsletter = "newsletter"
)

type TurnstileResponse struct {
	Success     bool      `json:"success"`
	ChallengeTS time.Time `json:"challenge_ts"`
	Hostname    string    `json:"hostname"`
	Action      string    `json:"action"`
	ErrorCodes  []string  `json:"error-codes"`
}

// CaptchaVerifier checks Turnstile tokens submitted with the public forms
type CaptchaVerifier struct {
	secret   string
	hostname string // empty skips the hostname check
	endpoint string
	client   *http.Client
}

// NewCaptchaVerifier builds a verifier from config. The solving hostname is
// only enforced in production, where it must match APP_URL.
func NewCaptchaVerifier(cfg *config.Config) *CaptchaVerifier {
	v := &CaptchaVerifier{
		secret:   cfg.TurnstileSecretKey,
		endpoint: turnstileVerifyURL,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
	if cfg.Environment == "production" {
		if u, err := url.Parse(cfg.AppURL); err == nil {
			v.hostname = u.Hostname()
		}
	}
	return v
}

// Enabled reports whether a secret is configured
func (v *CaptchaVerifier) Enabled() bool {
	return v.secret != ""
}

// Verify checks token for action. Every rejection wraps ErrCaptchaFailed.
func (v *CaptchaVerifier) Verify(ctx context.Context, token, ip, action string) error {
	if token == "" {
		return fmt.Errorf("%w: missing token", ErrCaptchaFailed)
	}

	form := url.Values{
		"secret":   {v.secret},
		"response": {token},
	}
	if ip != "" {
		form.Set("remoteip", ip)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build siteverify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to verify token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("siteverify returned status %d", resp.StatusCode)
	}

	var result TurnstileResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode turnstile response: %w", err)
	}

	switch {
	case !result.Success:
		return fmt.Errorf("%w: error codes %v", ErrCaptchaFailed, result.ErrorCodes)
	case result.Action != "" && result.Action != action:
		return fmt.Errorf("%w: token solved for %q, not %q", ErrCaptchaFailed, result.Action, action)
	case v.hostname != "" && !strings.EqualFold(result.Hostname, v.hostname):
		return fmt.Errorf("%w: token solved on %q", ErrCaptchaFailed, result.Hostname)
	}
	return nil
}
