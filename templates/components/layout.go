package components

import (
	"context"
	"fmt"

	"learned_site/middleware"
	"learned_site/models"
	"learned_site/services/i18n"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

// PageConfig describes the page being wrapped by Layout
type PageConfig struct {
	SEO *models.SEO
	// Active is the nav entry to highlight: "home", "courses" or "contact"
	Active string
	// TurnstileSiteKey loads the Turnstile widget script when set
	TurnstileSiteKey string
	// Scripts are extra static assets, relative to /static/
	Scripts []string
	// Notice is a toast shown on first paint, e.g. after a form post
	// without JavaScript
	Notice *Notice
}

func Layout(ctx context.Context, config PageConfig, content ...g.Node) g.Node {
	lang := i18n.GetLocale(ctx)
	nonce := middleware.GetNonce(ctx)

	seo := config.SEO
	if seo == nil {
		seo = models.DefaultSEO(i18n.T(ctx, "site.name"), i18n.T(ctx, "site.tagline"))
	}

	csrfHeaders := fmt.Sprintf(`{%q: %q}`, middleware.CSRFHeader, middleware.CSRFTokenFromContext(ctx))

	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Lang(lang),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				SEOHead(seo),
				Link(Rel("icon"), Type("image/svg+xml"), Href(middleware.AssetURL(ctx, "images/favicon.svg"))),
				Link(Rel("stylesheet"), Href(middleware.AssetURL(ctx, "css/style.css"))),
				Script(Src(htmxSrc), g.Attr("nonce", nonce), Defer()),
				g.If(config.TurnstileSiteKey != "",
					Script(Src("https://challenges.cloudflare.com/turnstile/v0/api.js"), g.Attr("nonce", nonce), g.Attr("async"), Defer()),
				),
			),
			Body(
				g.Attr("hx-headers", csrfHeaders),
				SiteHeader(ctx, config.Active),
				Main(ID("main"), Class("site-main"), g.Group(content)),
				SiteFooter(ctx),
				NotificationRegion(ctx, config.Notice),
				Script(Src(middleware.AssetURL(ctx, "js/site.js")), g.Attr("nonce", nonce), Defer()),
				g.Map(config.Scripts, func(asset string) g.Node {
					return Script(Src(middleware.AssetURL(ctx, asset)), g.Attr("nonce", nonce), Defer())
				}),
			),
		),
	})
}

// SEOHead renders title, description, canonical, Open Graph and hreflang tags
func SEOHead(seo *models.SEO) g.Node {
	return g.Group([]g.Node{
		TitleEl(g.Text(seo.Title)),
		Meta(Name("description"), Content(seo.Description)),
		g.If(seo.Keywords != "", Meta(Name("keywords"), Content(seo.Keywords))),
		g.If(seo.NoIndex, Meta(Name("robots"), Content("noindex, nofollow"))),
		g.If(seo.Canonical != "", Link(Rel("canonical"), Href(seo.Canonical))),
		g.If(seo.Canonical != "", g.Map(seo.AltLocales, func(alt string) g.Node {
			return Link(Rel("alternate"), g.Attr("hreflang", alt), Href(seo.Canonical+"?lang="+alt))
		})),
		Meta(g.Attr("property", "og:title"), Content(seo.GetOGTitle())),
		Meta(g.Attr("property", "og:description"), Content(seo.GetOGDesc())),
		Meta(g.Attr("property", "og:type"), Content(seo.OGType)),
		g.If(seo.Locale != "", Meta(g.Attr("property", "og:locale"), Content(seo.Locale))),
		g.If(seo.OGImage != "", Meta(g.Attr("property", "og:image"), Content(seo.OGImage))),
		Meta(Name("twitter:card"), Content(seo.TwitterCard)),
	})
}
