package handlers

import (
	"errors"
	"net/http"

	"learned_site/services"
	"learned_site/templates/components"
	"learned_site/templates/pages"
	"learned_site/templates/partials"

	"github.com/labstack/echo/v4"
)

const turnstileField = "cf-turnstile-response"

// ContactPageHandler renders the contact form
func ContactPageHandler(c echo.Context) error {
	cfg := getConfig(c)
	page := pageConfig(c, GetSEO(cfg, "contact", locale(c)))
	return render(c, http.StatusOK, pages.Contact(page, partials.ContactFormState{}))
}

// submissionStatus maps a submission error to a response status and notice
func submissionStatus(err error, failureKey string) (int, components.Notice) {
	var formErr *services.FormError
	switch {
	case errors.As(err, &formErr):
		return http.StatusUnprocessableEntity, components.Notice{Kind: components.NotifyError, MessageKey: formErr.MessageKey}
	case errors.Is(err, services.ErrCaptchaFailed):
		return http.StatusBadRequest, components.Notice{Kind: components.NotifyError, MessageKey: services.MsgCaptchaFailed}
	default:
		return http.StatusInternalServerError, components.Notice{Kind: components.NotifyError, MessageKey: failureKey}
	}
}

// ContactPostHandler accepts the contact form. htmx requests get the form
// back with a toast; plain posts get the whole page.
func ContactPostHandler(c echo.Context) error {
	cfg := getConfig(c)

	var form services.ContactForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form data")
	}

	service := services.NewContactService(cfg)
	_, err := service.SubmitContact(c.Request().Context(), form, c.FormValue(turnstileField), c.RealIP())

	status := http.StatusOK
	notice := components.Notice{Kind: components.NotifySuccess, MessageKey: services.MsgContactSuccess}
	state := partials.ContactFormState{TurnstileSiteKey: cfg.TurnstileSiteKey}

	if err != nil {
		status, notice = submissionStatus(err, services.MsgContactFailure)
		if status == http.StatusInternalServerError {
			c.Logger().Errorf("contact submission failed: %v", err)
		}
		// Keep what the visitor typed
		state.Values = form
		var formErr *services.FormError
		if errors.As(err, &formErr) {
			state.Error = formErr
		}
	}

	if isHTMX(c) {
		return render(c, status, pages.ContactFormResponse(state, notice))
	}

	page := pageConfig(c, GetSEO(cfg, "contact", locale(c)))
	page.Notice = &notice
	return render(c, status, pages.Contact(page, state))
}

// NewsletterPostHandler subscribes an address and sends the welcome email
// in the visitor's language
func NewsletterPostHandler(c echo.Context) error {
	cfg := getConfig(c)
	address := c.FormValue("email")

	service := services.NewContactService(cfg)
	err := service.SubscribeNewsletter(c.Request().Context(), address, c.FormValue(turnstileField), c.RealIP(), locale(c))

	status := http.StatusOK
	notice := components.Notice{Kind: components.NotifySuccess, MessageKey: services.MsgNewsletterSuccess}
	var formErr *services.FormError

	if err != nil {
		status, notice = submissionStatus(err, services.MsgContactFailure)
		if status == http.StatusInternalServerError {
			c.Logger().Errorf("newsletter signup failed: %v", err)
		}
		errors.As(err, &formErr)
	}

	if isHTMX(c) {
		email := ""
		if err != nil {
			email = address
		}
		return render(c, status, pages.NewsletterFormResponse(email, formErr, cfg.TurnstileSiteKey, notice))
	}

	page := pageConfig(c, GetSEO(cfg, "home", locale(c)))
	page.Notice = &notice
	return render(c, status, pages.Home(page, getCatalog(c)))
}
