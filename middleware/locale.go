package middleware

import (
	"net/http"
	"time"

	"learned_site/config"
	"learned_site/services/i18n"

	"github.com/labstack/echo/v4"
	"golang.org/x/text/language"
)

const langCookieName = "lang"

// Locale middleware handles language detection and persistence.
// Priority:
// 1. Query param "lang" (sets cookie)
// 2. Cookie "lang"
// 3. Accept-Language header
// 4. Default ("en")
func Locale(cfg *config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			lang := c.QueryParam("lang")
			if lang != "" {
				if !i18n.IsSupported(lang) {
					lang = "en"
				}
				c.SetCookie(languageCookie(cfg, lang))
			} else if cookie, err := c.Cookie(langCookieName); err == nil && i18n.IsSupported(cookie.Value) {
				lang = cookie.Value
			}

			if lang == "" {
				lang = matchAcceptLanguage(c.Request().Header.Get("Accept-Language"))
			}

			c.Set("locale", lang)
			c.SetRequest(c.Request().WithContext(i18n.WithLocale(c.Request().Context(), lang)))

			return next(c)
		}
	}
}

// matchAcceptLanguage picks the best loaded locale for an Accept-Language header
func matchAcceptLanguage(header string) string {
	supported := i18n.Supported()
	if header == "" || len(supported) == 0 {
		return "en"
	}

	// English first so it wins ties and unmatched headers
	tags := []language.Tag{language.English}
	for _, lang := range supported {
		if lang == "en" {
			continue
		}
		if tag, err := language.Parse(lang); err == nil {
			tags = append(tags, tag)
		}
	}

	accepted, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(accepted) == 0 {
		return "en"
	}

	_, index, confidence := language.NewMatcher(tags).Match(accepted...)
	if confidence == language.No {
		return "en"
	}
	base, _ := tags[index].Base()
	return base.String()
}

func languageCookie(cfg *config.Config, lang string) *http.Cookie {
	return &http.Cookie{
		Name:     langCookieName,
		Value:    lang,
		Expires:  time.Now().Add(24 * 365 * time.Hour),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   cfg != nil && cfg.Environment == "production",
	}
}

// SetLanguageCookie sets the language cookie
func SetLanguageCookie(c echo.Context, lang string) {
	cfg, _ := c.Get("config").(*config.Config)
	c.SetCookie(languageCookie(cfg, lang))
}

// GetLocale returns the current locale from context
func GetLocale(c echo.Context) string {
	val := c.Get("locale")
	if lang, ok := val.(string); ok {
		return lang
	}
	return "en"
}
