package pages

import (
	"context"

	"learned_site/services"
	"learned_site/services/i18n"
	"learned_site/templates/components"
	"learned_site/templates/partials"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Contact renders the contact page
func Contact(page components.PageConfig, form partials.ContactFormState) templ.Component {
	return components.Lazy(func(ctx context.Context) g.Node {
		page.Active = "contact"
		form.TurnstileSiteKey = page.TurnstileSiteKey
		return components.Layout(ctx, page,
			Section(
				Class("page-header container"),
				H1(g.Text(i18n.T(ctx, "contact.title"))),
				P(g.Text(i18n.T(ctx, "contact.subtitle"))),
			),
			Div(Class("container"), partials.ContactForm(ctx, form)),
		)
	})
}

// ContactFormResponse is the htmx response to a contact post: the form,
// reset or with errors, plus an out-of-band toast
func ContactFormResponse(form partials.ContactFormState, notice components.Notice) templ.Component {
	return components.Lazy(func(ctx context.Context) g.Node {
		return g.Group([]g.Node{
			partials.ContactForm(ctx, form),
			components.NotificationOOB(ctx, notice),
		})
	})
}

// NewsletterFormResponse is the htmx response to a newsletter post
func NewsletterFormResponse(email string, formErr *services.FormError, turnstileSiteKey string, notice components.Notice) templ.Component {
	return components.Lazy(func(ctx context.Context) g.Node {
		return g.Group([]g.Node{
			partials.NewsletterForm(ctx, email, formErr, turnstileSiteKey),
			components.NotificationOOB(ctx, notice),
		})
	})
}
