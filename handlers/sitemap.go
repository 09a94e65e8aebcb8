package handlers

import (
	"encoding/xml"
	"net/http"
	"net/url"
	"strings"

	"learned_site/services"

	"github.com/labstack/echo/v4"
)

type SitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float32 `xml:"priority,omitempty"`
}

type SitemapURLSet struct {
	XMLName string       `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// GetSitemapHandler generates the XML sitemap: the static pages plus one
// courses URL per category
func GetSitemapHandler(c echo.Context) error {
	baseURL := getConfig(c).AppURL

	urls := []SitemapURL{
		{Loc: baseURL + "/", ChangeFreq: "weekly", Priority: 1.0},
		{Loc: baseURL + "/courses", ChangeFreq: "weekly", Priority: 0.9},
		{Loc: baseURL + "/contact", ChangeFreq: "monthly", Priority: 0.6},
	}

	for _, category := range getCatalog(c).CategoryValues() {
		query := url.Values{services.ParamCategory: {category}}
		urls = append(urls, SitemapURL{
			Loc:        baseURL + "/courses?" + query.Encode(),
			ChangeFreq: "weekly",
			Priority:   0.8,
		})
	}

	urlSet := SitemapURLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationXML)
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}

	encoder := xml.NewEncoder(c.Response().Writer)
	encoder.Indent("", "  ")
	return encoder.Encode(urlSet)
}

// RobotsHandler keeps crawlers off the fragment, API and websocket routes.
// Outside production everything is disallowed.
func RobotsHandler(c echo.Context) error {
	cfg := getConfig(c)

	var b strings.Builder
	b.WriteString("User-agent: *\n")
	if cfg.Environment != "production" {
		b.WriteString("Disallow: /\n")
		return c.String(http.StatusOK, b.String())
	}
	b.WriteString("Disallow: /htmx/\n")
	b.WriteString("Disallow: /api/\n")
	b.WriteString("Disallow: /ws/\n")
	b.WriteString("\nSitemap: " + cfg.AppURL + "/sitemap.xml\n")
	return c.String(http.StatusOK, b.String())
}

// HealthHandler reports liveness and the loaded catalog size
func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"courses": len(getCatalog(c).Courses),
	})
}
