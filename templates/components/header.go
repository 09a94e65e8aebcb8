package components

import (
	"context"
	"strings"
	"time"

	"learned_site/services/i18n"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

type navItem struct {
	Key  string
	Href string
}

var navItems = []navItem{
	{Key: "home", Href: "/"},
	{Key: "courses", Href: "/courses"},
	{Key: "contact", Href: "/contact"},
}

func Logo(ctx context.Context) g.Node {
	return A(
		Href("/"),
		Class("logo"),
		Span(Class("logo-mark"), g.Text("L")),
		Span(Class("logo-text"), g.Text(i18n.T(ctx, "site.name"))),
	)
}

// SiteHeader renders the top bar with navigation, the header search box and
// the mobile menu toggle. site.js drives the menu.
func SiteHeader(ctx context.Context, active string) g.Node {
	return Header(
		Class("site-header"),
		Div(
			Class("container header-inner"),
			Logo(ctx),
			Nav(
				ID("site-nav"),
				Class("site-nav"),
				g.Attr("aria-label", "Main"),
				Ul(
					g.Map(navItems, func(item navItem) g.Node {
						return Li(
							A(
								Href(item.Href),
								g.Text(i18n.T(ctx, "nav."+item.Key)),
								g.If(item.Key == active, g.Attr("aria-current", "page")),
							),
						)
					}),
				),
			),
			HeaderSearch(ctx),
			LanguageSwitch(ctx),
			Button(
				Type("button"),
				Class("menu-toggle"),
				g.Attr("aria-controls", "site-nav"),
				g.Attr("aria-expanded", "false"),
				g.Attr("aria-label", i18n.T(ctx, "nav.menu")),
				g.Attr("data-label-open", i18n.T(ctx, "nav.menu")),
				g.Attr("data-label-close", i18n.T(ctx, "nav.close_menu")),
				Span(Class("menu-bar")),
				Span(Class("menu-bar")),
				Span(Class("menu-bar")),
			),
		),
	)
}

// HeaderSearch submits a plain GET to the courses page so it works from
// every page, with or without JavaScript
func HeaderSearch(ctx context.Context) g.Node {
	return Form(
		Class("header-search"),
		Action("/courses"),
		Method("get"),
		g.Attr("role", "search"),
		Label(For("header-search-input"), Class("sr-only"), g.Text(i18n.T(ctx, "nav.search"))),
		Input(
			ID("header-search-input"),
			Type("search"),
			Name("q"),
			Placeholder(i18n.T(ctx, "nav.search_placeholder")),
		),
		Button(Type("submit"), g.Text(i18n.T(ctx, "nav.search"))),
	)
}

func LanguageSwitch(ctx context.Context) g.Node {
	current := i18n.GetLocale(ctx)
	return Div(
		Class("lang-switch"),
		g.Map(i18n.Supported(), func(lang string) g.Node {
			return A(
				Href("?lang="+lang),
				g.Attr("hreflang", lang),
				g.If(lang == current, Class("active")),
				g.Text(strings.ToUpper(lang)),
			)
		}),
	)
}

func SiteFooter(ctx context.Context) g.Node {
	return Footer(
		Class("site-footer"),
		Div(
			Class("container footer-inner"),
			Logo(ctx),
			P(Class("tagline"), g.Text(i18n.T(ctx, "site.tagline"))),
			P(
				Class("copyright"),
				g.Textf("© %d %s. %s", time.Now().Year(), i18n.T(ctx, "site.name"), i18n.T(ctx, "footer.rights")),
			),
		),
	)
}
