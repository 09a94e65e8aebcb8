package partials

import (
	"context"

	"learned_site/middleware"
	"learned_site/services"
	"learned_site/services/i18n"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const (
	ContactFormID    = "contact-form"
	NewsletterFormID = "newsletter-form"
)

func csrfInput(ctx context.Context) g.Node {
	return Input(Type("hidden"), Name(middleware.CSRFFormField), Value(middleware.CSRFTokenFromContext(ctx)))
}

func turnstileWidget(siteKey, action string) g.Node {
	if siteKey == "" {
		return nil
	}
	return Div(Class("cf-turnstile"), g.Attr("data-sitekey", siteKey), g.Attr("data-action", action))
}

// ContactFormState carries submitted values and validation errors back into
// the form
type ContactFormState struct {
	Values           services.ContactForm
	Error            *services.FormError
	TurnstileSiteKey string
}

// ContactForm posts with htmx and swaps itself; without JavaScript it posts
// to the same URL and the page is re-rendered
func ContactForm(ctx context.Context, s ContactFormState) g.Node {
	return Form(
		ID(ContactFormID),
		Class("contact-form"),
		Action("/contact"),
		Method("post"),
		g.Attr("hx-post", "/contact"),
		g.Attr("hx-swap", "outerHTML"),
		g.Attr("novalidate"),
		csrfInput(ctx),
		g.Iff(s.Error != nil, func() g.Node {
			return P(Class("form-error"), g.Attr("role", "alert"), g.Text(formErrorText(ctx, s.Error)))
		}),
		formField(ctx, "name", "text", s.Values.Name, true, s.Error),
		formField(ctx, "email", "email", s.Values.Email, true, s.Error),
		formField(ctx, "phone", "tel", s.Values.Phone, false, s.Error),
		formField(ctx, "subject", "text", s.Values.Subject, false, s.Error),
		Div(
			Class("form-field"),
			Label(For("contact-message"), g.Text(i18n.T(ctx, "contact.message")), Span(Class("required"), g.Text(" *"))),
			Textarea(
				ID("contact-message"),
				Name("message"),
				g.Attr("rows", "5"),
				Required(),
				g.If(s.Error.HasField("message"), g.Attr("aria-invalid", "true")),
				g.Text(s.Values.Message),
			),
		),
		turnstileWidget(s.TurnstileSiteKey, services.CaptchaActionContact),
		Button(Type("submit"), Class("button"), g.Text(i18n.T(ctx, "contact.button"))),
	)
}

func formField(ctx context.Context, name, inputType, value string, required bool, formErr *services.FormError) g.Node {
	id := "contact-" + name
	return Div(
		Class("form-field"),
		Label(
			For(id),
			g.Text(i18n.T(ctx, "contact."+name)),
			g.If(required, Span(Class("required"), g.Text(" *"))),
		),
		Input(
			ID(id),
			Type(inputType),
			Name(name),
			Value(value),
			g.If(required, Required()),
			g.If(formErr.HasField(name), g.Attr("aria-invalid", "true")),
		),
	)
}

// NewsletterForm is the signup box on the home page
func NewsletterForm(ctx context.Context, email string, formErr *services.FormError, turnstileSiteKey string) g.Node {
	return Form(
		ID(NewsletterFormID),
		Class("newsletter-form"),
		Action("/newsletter"),
		Method("post"),
		g.Attr("hx-post", "/newsletter"),
		g.Attr("hx-swap", "outerHTML"),
		g.Attr("novalidate"),
		csrfInput(ctx),
		Label(For("newsletter-email"), Class("sr-only"), g.Text(i18n.T(ctx, "newsletter.placeholder"))),
		Input(
			ID("newsletter-email"),
			Type("email"),
			Name("email"),
			Value(email),
			Placeholder(i18n.T(ctx, "newsletter.placeholder")),
			Required(),
			g.If(formErr.HasField("email"), g.Attr("aria-invalid", "true")),
		),
		turnstileWidget(turnstileSiteKey, services.CaptchaActionNewsletter),
		Button(Type("submit"), Class("button"), g.Text(i18n.T(ctx, "newsletter.button"))),
	)
}

// formErrorText translates a FormError message key
func formErrorText(ctx context.Context, err *services.FormError) string {
	if err == nil {
		return ""
	}
	return i18n.T(ctx, err.MessageKey)
}
