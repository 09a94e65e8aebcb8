package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"learned_site/config"

	"github.com/google/uuid"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Translation keys for form feedback
const (
	MsgContactInvalid    = "contact.invalid"
	MsgContactSuccess    = "contact.success"
	MsgContactFailure    = "contact.failure"
	MsgNewsletterInvalid = "newsletter.invalid"
	MsgNewsletterSuccess = "newsletter.success"
	MsgCaptchaFailed     = "contact.captcha_failed"
)

var ErrCaptchaFailed = errors.New("captcha verification failed")

// FormError reports a rejected form. MessageKey is a translation key and
// Fields names the inputs to highlight.
type FormError struct {
	MessageKey string
	Fields     []string
}

func (e *FormError) Error() string {
	if len(e.Fields) == 0 {
		return e.MessageKey
	}
	return fmt.Sprintf("%s: %s", e.MessageKey, strings.Join(e.Fields, ", "))
}

// HasField reports whether name was flagged as invalid
func (e *FormError) HasField(name string) bool {
	if e == nil {
		return false
	}
	for _, f := range e.Fields {
		if f == name {
			return true
		}
	}
	return false
}

// ContactForm is a submitted contact form
type ContactForm struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Phone   string `json:"phone" form:"phone"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message"`
}

// Sanitize strips markup from every field
func (f *ContactForm) Sanitize() {
	f.Name = SanitizeText(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = SanitizeText(f.Phone)
	f.Subject = SanitizeText(f.Subject)
	f.Message = SanitizeText(f.Message)
}

// ContactSubmission is an accepted contact form
type ContactSubmission struct {
	Reference  string
	Form       ContactForm
	ReceivedAt time.Time
}

// ValidateEmail checks the basic shape of an email address
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// ValidateContactForm requires name, email and message, and a well-formed email
func ValidateContactForm(form ContactForm) error {
	var fields []string
	if strings.TrimSpace(form.Name) == "" {
		fields = append(fields, "name")
	}
	if !ValidateEmail(form.Email) {
		fields = append(fields, "email")
	}
	if strings.TrimSpace(form.Message) == "" {
		fields = append(fields, "message")
	}
	if len(fields) > 0 {
		return &FormError{MessageKey: MsgContactInvalid, Fields: fields}
	}
	return nil
}

// ValidateNewsletter checks a newsletter signup address
func ValidateNewsletter(email string) error {
	if !ValidateEmail(email) {
		return &FormError{MessageKey: MsgNewsletterInvalid, Fields: []string{"email"}}
	}
	return nil
}

// ContactService accepts contact and newsletter submissions and forwards
// them by email
type ContactService struct {
	cfg     *config.Config
	captcha *CaptchaVerifier
	send    func(*config.Config, *Email) error
}

// NewContactService creates a ContactService that delivers with SendEmail
func NewContactService(cfg *config.Config) *ContactService {
	return &ContactService{cfg: cfg, captcha: NewCaptchaVerifier(cfg), send: SendEmail}
}

// verifyCaptcha checks the Turnstile token when a secret is configured. An
// unreachable siteverify endpoint also rejects the submission.
func (s *ContactService) verifyCaptcha(ctx context.Context, token, ip, action string) error {
	if !s.captcha.Enabled() {
		return nil
	}
	if err := s.captcha.Verify(ctx, token, ip, action); err != nil {
		log.Printf("[WARNING] Turnstile verification failed for %s (%s): %v", ip, action, err)
		return ErrCaptchaFailed
	}
	return nil
}

// SubmitContact validates form and sends it to the contact inbox
func (s *ContactService) SubmitContact(ctx context.Context, form ContactForm, captchaToken, ip string) (*ContactSubmission, error) {
	if err := s.verifyCaptcha(ctx, captchaToken, ip, CaptchaActionContact); err != nil {
		return nil, err
	}

	form.Sanitize()
	if err := ValidateContactForm(form); err != nil {
		return nil, err
	}

	submission := &ContactSubmission{
		Reference:  strings.ToUpper(uuid.NewString()[:8]),
		Form:       form,
		ReceivedAt: time.Now(),
	}

	email := BuildContactNotificationEmail(s.cfg.ContactInbox, submission)
	if err := s.send(s.cfg, email); err != nil {
		return nil, fmt.Errorf("failed to deliver contact message %s: %w", submission.Reference, err)
	}

	log.Printf("[INFO] Contact message %s received from %s", submission.Reference, form.Email)
	return submission, nil
}

// SubscribeNewsletter validates address and sends the welcome message in lang
func (s *ContactService) SubscribeNewsletter(ctx context.Context, address, captchaToken, ip, lang string) error {
	if err := s.verifyCaptcha(ctx, captchaToken, ip, CaptchaActionNewsletter); err != nil {
		return err
	}

	address = strings.TrimSpace(address)
	if err := ValidateNewsletter(address); err != nil {
		return err
	}

	email := BuildNewsletterWelcomeEmail(address, s.cfg.AppURL, lang)
	if err := s.send(s.cfg, email); err != nil {
		return fmt.Errorf("failed to send newsletter welcome: %w", err)
	}

	log.Printf("[INFO] Newsletter signup: %s", address)
	return nil
}
