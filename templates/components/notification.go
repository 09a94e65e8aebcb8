package components

import (
	"context"

	"learned_site/services/i18n"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Notification types
const (
	NotifySuccess = "success"
	NotifyError   = "error"
	NotifyInfo    = "info"
)

// Notice is a toast message. MessageKey is a translation key.
type Notice struct {
	Kind       string
	MessageKey string
}

// NotificationRegion is the live region toasts are appended to. notice, if
// set, is shown on first paint.
func NotificationRegion(ctx context.Context, notice *Notice) g.Node {
	return Div(
		ID("notifications"),
		Class("notifications"),
		g.Attr("aria-live", "polite"),
		g.Iff(notice != nil, func() g.Node {
			return Notification(ctx, notice.Kind, i18n.T(ctx, notice.MessageKey))
		}),
	)
}

// Notification renders a dismissible toast. site.js removes it after a few
// seconds or when the close button is pressed.
func Notification(ctx context.Context, kind, message string) g.Node {
	switch kind {
	case NotifySuccess, NotifyError, NotifyInfo:
	default:
		kind = NotifyInfo
	}

	role := "status"
	if kind == NotifyError {
		role = "alert"
	}

	return Div(
		Class("notification notification-"+kind),
		g.Attr("role", role),
		g.Attr("data-notification", ""),
		Span(Class("notification-message"), g.Text(message)),
		Button(
			Type("button"),
			Class("notification-close"),
			g.Attr("aria-label", i18n.T(ctx, "notification.close")),
			g.Attr("data-dismiss", "notification"),
			g.Text("×"),
		),
	)
}

// NotificationOOB wraps a toast for an htmx out-of-band append to the
// notification region
func NotificationOOB(ctx context.Context, notice Notice) g.Node {
	return Div(
		g.Attr("hx-swap-oob", "beforeend:#notifications"),
		Notification(ctx, notice.Kind, i18n.T(ctx, notice.MessageKey)),
	)
}
