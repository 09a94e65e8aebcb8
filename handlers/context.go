package handlers

import (
	"bytes"
	"context"

	"learned_site/config"
	"learned_site/middleware"
	"learned_site/models"
	"learned_site/services"
	"learned_site/templates/components"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Context keys set by the server for every request
const (
	ConfigKey  = "config"
	CatalogKey = "catalog"
)

// WithDependencies makes config and catalog available to handlers
func WithDependencies(cfg *config.Config, catalog *services.Catalog) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ConfigKey, cfg)
			c.Set(CatalogKey, catalog)
			return next(c)
		}
	}
}

func getConfig(c echo.Context) *config.Config {
	return c.Get(ConfigKey).(*config.Config)
}

func getCatalog(c echo.Context) *services.Catalog {
	return c.Get(CatalogKey).(*services.Catalog)
}

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// pageConfig builds the layout settings shared by every full page
func pageConfig(c echo.Context, seo *models.SEO) components.PageConfig {
	cfg := getConfig(c)
	return components.PageConfig{
		SEO:              seo,
		TurnstileSiteKey: cfg.TurnstileSiteKey,
	}
}

// render writes component as the HTML response with the given status
func render(c echo.Context, status int, component templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// renderString renders component to a string, for websocket messages
func renderString(ctx context.Context, component templ.Component) (string, error) {
	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// locale is the request language chosen by the Locale middleware
func locale(c echo.Context) string {
	return middleware.GetLocale(c)
}
