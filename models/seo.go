package models

// SEO contains metadata for search engines and link previews
type SEO struct {
	Title       string
	Description string
	Keywords    string   // comma-separated
	Canonical   string   // absolute URL
	OGTitle     string   // defaults to Title
	OGDesc      string   // defaults to Description
	OGImage     string   // absolute URL, optional
	OGType      string   // website, article
	TwitterCard string   // summary, summary_large_image
	NoIndex     bool     // adds robots noindex
	Locale      string   // page language, e.g. "en"
	AltLocales  []string // other languages for hreflang links
}

// DefaultSEO returns SEO for an English website page
func DefaultSEO(title, description string) *SEO {
	return &SEO{
		Title:       title,
		Description: description,
		OGType:      "website",
		TwitterCard: "summary_large_image",
		Locale:      "en",
	}
}

func (s *SEO) WithCanonical(url string) *SEO {
	s.Canonical = url
	return s
}

func (s *SEO) WithKeywords(keywords string) *SEO {
	s.Keywords = keywords
	return s
}

// WithLocale sets the page language and the languages it is also offered in
func (s *SEO) WithLocale(locale string, altLocales ...string) *SEO {
	s.Locale = locale
	s.AltLocales = altLocales
	return s
}

func (s *SEO) WithNoIndex() *SEO {
	s.NoIndex = true
	return s
}

// GetOGTitle returns OGTitle or falls back to Title
func (s *SEO) GetOGTitle() string {
	if s.OGTitle != "" {
		return s.OGTitle
	}
	return s.Title
}

// GetOGDesc returns OGDesc or falls back to Description
func (s *SEO) GetOGDesc() string {
	if s.OGDesc != "" {
		return s.OGDesc
	}
	return s.Description
}
