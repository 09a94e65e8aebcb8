package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"learned_site/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// siteverifyServer answers every request with resp and passes each posted
// form to the returned channel
func siteverifyServer(t *testing.T, status int, resp TurnstileResponse) (*httptest.Server, <-chan url.Values) {
	t.Helper()
	forms := make(chan url.Values, 4)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err == nil {
			forms <- r.PostForm
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(server.Close)
	return server, forms
}

func newTestVerifier(t *testing.T, cfg *config.Config, endpoint string) *CaptchaVerifier {
	t.Helper()
	oldURL := turnstileVerifyURL
	turnstileVerifyURL = endpoint
	t.Cleanup(func() { turnstileVerifyURL = oldURL })
	return NewCaptchaVerifier(cfg)
}

func TestNewCaptchaVerifier(t *testing.T) {
	assert.False(t, NewCaptchaVerifier(&config.Config{}).Enabled())
	assert.True(t, NewCaptchaVerifier(&config.Config{TurnstileSecretKey: "secret"}).Enabled())

	dev := NewCaptchaVerifier(&config.Config{Environment: "development", AppURL: "http://localhost:8080"})
	assert.Empty(t, dev.hostname)

	prod := NewCaptchaVerifier(&config.Config{Environment: "production", AppURL: "https://learned.example.org"})
	assert.Equal(t, "learned.example.org", prod.hostname)
}

func TestCaptchaVerifierVerify(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{TurnstileSecretKey: "secret"}

	t.Run("Missing token", func(t *testing.T) {
		v := newTestVerifier(t, cfg, "http://127.0.0.1:0")
		err := v.Verify(ctx, "", "127.0.0.1", CaptchaActionContact)
		assert.ErrorIs(t, err, ErrCaptchaFailed)
		assert.Contains(t, err.Error(), "missing token")
	})

	t.Run("Success sends secret, token and ip", func(t *testing.T) {
		server, forms := siteverifyServer(t, http.StatusOK, TurnstileResponse{Success: true, Action: CaptchaActionContact})
		v := newTestVerifier(t, cfg, server.URL)

		require.NoError(t, v.Verify(ctx, "valid-token", "1.1.1.1", CaptchaActionContact))
		form := <-forms
		assert.Equal(t, "secret", form.Get("secret"))
		assert.Equal(t, "valid-token", form.Get("response"))
		assert.Equal(t, "1.1.1.1", form.Get("remoteip"))
	})

	t.Run("Widget without action", func(t *testing.T) {
		server, _ := siteverifyServer(t, http.StatusOK, TurnstileResponse{Success: true})
		v := newTestVerifier(t, cfg, server.URL)
		assert.NoError(t, v.Verify(ctx, "valid-token", "", CaptchaActionNewsletter))
	})

	t.Run("Failure with error codes", func(t *testing.T) {
		server, _ := siteverifyServer(t, http.StatusOK, TurnstileResponse{
			ErrorCodes: []string{"invalid-input-response", "timeout-or-duplicate"},
		})
		v := newTestVerifier(t, cfg, server.URL)

		err := v.Verify(ctx, "invalid-token", "1.1.1.1", CaptchaActionContact)
		assert.ErrorIs(t, err, ErrCaptchaFailed)
		assert.Contains(t, err.Error(), "invalid-input-response")
	})

	t.Run("Action mismatch", func(t *testing.T) {
		server, _ := siteverifyServer(t, http.StatusOK, TurnstileResponse{Success: true, Action: CaptchaActionNewsletter})
		v := newTestVerifier(t, cfg, server.URL)

		err := v.Verify(ctx, "valid-token", "1.1.1.1", CaptchaActionContact)
		assert.ErrorIs(t, err, ErrCaptchaFailed)
		assert.Contains(t, err.Error(), `"newsletter"`)
	})

	t.Run("Hostname checked in production", func(t *testing.T) {
		server, _ := siteverifyServer(t, http.StatusOK, TurnstileResponse{Success: true, Hostname: "evil.example.com"})
		prodCfg := &config.Config{TurnstileSecretKey: "secret", Environment: "production", AppURL: "https://learned.example.org"}

		err := newTestVerifier(t, prodCfg, server.URL).Verify(ctx, "valid-token", "", CaptchaActionContact)
		assert.ErrorIs(t, err, ErrCaptchaFailed)

		assert.NoError(t, newTestVerifier(t, cfg, server.URL).Verify(ctx, "valid-token", "", CaptchaActionContact))
	})

	t.Run("Non-200 status", func(t *testing.T) {
		server, _ := siteverifyServer(t, http.StatusInternalServerError, TurnstileResponse{Success: true})
		v := newTestVerifier(t, cfg, server.URL)

		err := v.Verify(ctx, "token", "", CaptchaActionContact)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "status 500")
	})

	t.Run("Malformed JSON response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("{ malformed json }"))
		}))
		defer server.Close()
		v := newTestVerifier(t, cfg, server.URL)

		err := v.Verify(ctx, "token", "", CaptchaActionContact)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode")
	})

	t.Run("Unreachable endpoint", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		v := newTestVerifier(t, cfg, server.URL)
		server.Close()

		err := v.Verify(ctx, "token", "", CaptchaActionContact)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to verify token")
	})

	t.Run("Cancelled context", func(t *testing.T) {
		server, _ := siteverifyServer(t, http.StatusOK, TurnstileResponse{Success: true})
		v := newTestVerifier(t, cfg, server.URL)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		assert.Error(t, v.Verify(cancelled, "token", "", CaptchaActionContact))
	})
}
