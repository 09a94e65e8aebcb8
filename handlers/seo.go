package handlers

import (
	"learned_site/config"
	"learned_site/models"
	"learned_site/services/i18n"
)

type pageMeta struct {
	Path           string
	TitleKey       string
	DescriptionKey string
	Keywords       string
	TwitterCard    string
}

// SEO configurations for public pages
var pageSEO = map[string]pageMeta{
	"home": {
		Path:           "/",
		TitleKey:       "home.title",
		DescriptionKey: "home.subtitle",
		Keywords:       "continuing education, adult classes, online courses, Bradenton, Lakewood Ranch, Venice",
		TwitterCard:    "summary_large_image",
	},
	"courses": {
		Path:           "/courses",
		TitleKey:       "courses.title",
		DescriptionKey: "courses.subtitle",
		Keywords:       "course catalog, business courses, technology courses, art classes, language classes",
		TwitterCard:    "summary_large_image",
	},
	"contact": {
		Path:           "/contact",
		TitleKey:       "contact.title",
		DescriptionKey: "contact.subtitle",
		Keywords:       "contact, course questions, registration help",
		TwitterCard:    "summary",
	},
}

// GetSEO returns the SEO configuration for a page in lang, or nil for an
// unknown page
func GetSEO(cfg *config.Config, page, lang string) *models.SEO {
	meta, ok := pageSEO[page]
	if !ok {
		return nil
	}

	siteName := i18n.Translate(lang, "site.name")
	title := i18n.Translate(lang, meta.TitleKey) + " | " + siteName
	if page == "home" {
		title = siteName + " - " + i18n.Translate(lang, "site.tagline")
	}

	var alternates []string
	for _, other := range i18n.Supported() {
		if other != lang {
			alternates = append(alternates, other)
		}
	}

	seo := models.DefaultSEO(title, i18n.Translate(lang, meta.DescriptionKey)).
		WithCanonical(cfg.AppURL+meta.Path).
		WithKeywords(meta.Keywords).
		WithLocale(lang, alternates...)
	seo.TwitterCard = meta.TwitterCard
	if cfg.Environment != "production" {
		seo.WithNoIndex()
	}
	return seo
}
