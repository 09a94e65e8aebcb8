package services

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io/fs"
	"log"
	"path"
	"strings"
	texttemplate "text/template"

	"learned_site/config"
	"learned_site/services/i18n"

	"github.com/resend/resend-go/v2"
)

//go:embed emails/*.html emails/*.txt
var embeddedEmails embed.FS

// emailTemplates is the template filesystem; tests swap it out
var emailTemplates fs.FS = embeddedEmails

// Email represents an email message
type Email struct {
	To       []string
	ReplyTo  string
	Subject  string
	HTMLBody string
	TextBody string
}

// buildEmailWithFallback renders templateName for lang, falling back to the English
// template when the localized one is missing or broken
func buildEmailWithFallback(templateName, lang string, data interface{}, to string) *Email {
	htmlBody, textBody, err := loadTemplate(templateName, lang, data)
	if err != nil {
		log.Printf("Error loading %s email template for lang %s: %v", templateName, lang, err)
		if lang != "en" {
			htmlBody, textBody, err = loadTemplate(templateName, "en", data)
			if err != nil {
				log.Printf("Error loading default 'en' template for %s: %v", templateName, err)
			}
		}
	}

	return &Email{
		To:       []string{to},
		HTMLBody: htmlBody,
		TextBody: textBody,
	}
}

// loadTemplate renders emails/<name>_<lang>.html/.txt, or emails/<name>.html/.txt
// when no localized version exists
func loadTemplate(templateName, lang string, data interface{}) (string, string, error) {
	read := func(ext string) (string, []byte, error) {
		name := path.Join("emails", fmt.Sprintf("%s_%s%s", templateName, lang, ext))
		content, err := fs.ReadFile(emailTemplates, name)
		if err == nil {
			return name, content, nil
		}
		name = path.Join("emails", templateName+ext)
		content, err = fs.ReadFile(emailTemplates, name)
		if err != nil {
			return "", nil, fmt.Errorf("failed to read template %s: %w", name, err)
		}
		return name, content, nil
	}

	htmlName, htmlSrc, err := read(".html")
	if err != nil {
		return "", "", err
	}
	htmlTmpl, err := htmltemplate.New(path.Base(htmlName)).Parse(string(htmlSrc))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse template %s: %w", htmlName, err)
	}
	var htmlBuf bytes.Buffer
	if err := htmlTmpl.Execute(&htmlBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s: %w", htmlName, err)
	}

	textName, textSrc, err := read(".txt")
	if err != nil {
		return "", "", err
	}
	textTmpl, err := texttemplate.New(path.Base(textName)).Parse(string(textSrc))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse template %s: %w", textName, err)
	}
	var textBuf bytes.Buffer
	if err := textTmpl.Execute(&textBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s: %w", textName, err)
	}

	return htmlBuf.String(), textBuf.String(), nil
}

// SendEmail sends an email using Resend API
func SendEmail(cfg *config.Config, email *Email) error {
	// In development mode, log the email instead of sending
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}
	if email.HTMLBody == "" && email.TextBody == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	client := resend.NewClient(cfg.ResendAPIKey)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTMLBody,
		Text:    email.TextBody,
	}
	if email.ReplyTo != "" {
		params.ReplyTo = email.ReplyTo
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %w", err)
	}

	log.Printf("Email sent successfully via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// logEmailToConsole logs email details in place of sending
func logEmailToConsole(email *Email) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\nEMAIL (test mode - not sent)\n%s", separator, separator)
	log.Printf("To: %v", email.To)
	if email.ReplyTo != "" {
		log.Printf("Reply-To: %s", email.ReplyTo)
	}
	log.Printf("Subject: %s", email.Subject)
	log.Printf("\n--- TEXT BODY ---\n%s", email.TextBody)
	log.Printf("%s\n", separator)
}

// ContactNotificationData is the data for the contact_notification template
type ContactNotificationData struct {
	Reference string
	Name      string
	Email     string
	Phone     string
	Subject   string
	Message   string
}

// BuildContactNotificationEmail creates the message sent to the site inbox
// for a contact form submission. Replies go to the visitor.
func BuildContactNotificationEmail(inbox string, submission *ContactSubmission) *Email {
	data := ContactNotificationData{
		Reference: submission.Reference,
		Name:      submission.Form.Name,
		Email:     submission.Form.Email,
		Phone:     submission.Form.Phone,
		Subject:   submission.Form.Subject,
		Message:   submission.Form.Message,
	}

	subject := submission.Form.Subject
	if subject == "" {
		subject = submission.Form.Name
	}

	email := buildEmailWithFallback("contact_notification", "en", data, inbox)
	email.ReplyTo = submission.Form.Email
	email.Subject = i18n.Translate("en", "email.subject.contact", map[string]interface{}{"subject": subject})
	return email
}

// NewsletterWelcomeData is the data for the newsletter_welcome template
type NewsletterWelcomeData struct {
	CoursesURL string
}

// BuildNewsletterWelcomeEmail creates the confirmation sent to a new subscriber
func BuildNewsletterWelcomeEmail(subscriber, appURL, lang string) *Email {
	email := buildEmailWithFallback("newsletter_welcome", lang, NewsletterWelcomeData{CoursesURL: appURL + "/courses"}, subscriber)
	email.Subject = i18n.Translate(lang, "email.subject.newsletter")
	return email
}

// SendEmailAsync sends an email in the background; failures are only logged
func SendEmailAsync(cfg *config.Config, email *Email) {
	emailCopy := &Email{
		To:       append([]string{}, email.To...),
		ReplyTo:  email.ReplyTo,
		Subject:  email.Subject,
		HTMLBody: email.HTMLBody,
		TextBody: email.TextBody,
	}

	go func(cfg *config.Config, email *Email) {
		if err := SendEmail(cfg, email); err != nil {
			log.Printf("Error sending async email: %v", err)
		}
	}(cfg, emailCopy)
}
