package partials

import (
	"context"
	"strings"
	"testing"

	"learned_site/services"

	"github.com/stretchr/testify/assert"
)

func TestContactForm(t *testing.T) {
	t.Run("Empty state", func(t *testing.T) {
		var html string
		assert.NotPanics(t, func() {
			html = render(t, ContactForm(context.Background(), ContactFormState{}))
		})

		assert.Contains(t, html, `id="contact-form"`)
		assert.NotContains(t, html, "form-error")
		assert.NotContains(t, html, `aria-invalid`)
		assert.NotContains(t, html, "cf-turnstile")
	})

	t.Run("Validation error", func(t *testing.T) {
		state := ContactFormState{
			Values:           services.ContactForm{Name: "Ana Lopez"},
			Error:            &services.FormError{MessageKey: services.MsgContactInvalid, Fields: []string{"email", "message"}},
			TurnstileSiteKey: "site-key",
		}
		html := render(t, ContactForm(context.Background(), state))

		assert.Contains(t, html, `<p class="form-error" role="alert">Please fill in all required fields.</p>`)
		assert.Contains(t, html, `value="Ana Lopez"`)
		// email and message are marked, name is not
		assert.Equal(t, 2, strings.Count(html, `aria-invalid="true"`))
		assert.Contains(t, html, `data-sitekey="site-key"`)
		assert.Contains(t, html, `data-action="contact"`)
	})
}

func TestNewsletterForm(t *testing.T) {
	html := render(t, NewsletterForm(context.Background(), "reader", &services.FormError{MessageKey: services.MsgNewsletterInvalid, Fields: []string{"email"}}, "site-key"))

	assert.Contains(t, html, `id="newsletter-form"`)
	assert.Contains(t, html, `value="reader"`)
	assert.Contains(t, html, `aria-invalid="true"`)
	assert.Contains(t, html, `data-action="newsletter"`)
}

func TestFormErrorTextNil(t *testing.T) {
	assert.Empty(t, formErrorText(context.Background(), nil))
}
