package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"learned_site/config"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestGetCSRFToken(t *testing.T) {
	e := echo.New()

	t.Run("TokenExists", func(t *testing.T) {
		c := e.NewContext(nil, nil)
		expectedToken := "test-csrf-token"
		c.Set("csrf", expectedToken)

		token := GetCSRFToken(c)
		assert.Equal(t, expectedToken, token)
	})

	t.Run("TokenMissing", func(t *testing.T) {
		c := e.NewContext(nil, nil)

		token := GetCSRFToken(c)
		assert.Equal(t, "", token)
	})

	t.Run("TokenInvalidType", func(t *testing.T) {
		c := e.NewContext(nil, nil)
		c.Set("csrf", 123) // Not a string

		token := GetCSRFToken(c)
		assert.Equal(t, "", token)
	})
}

func TestCSRFMiddleware(t *testing.T) {
	e := echo.New()
	cfg := &config.Config{Environment: "development"}

	var ctxToken string
	handler := CSRF(cfg)(func(c echo.Context) error {
		ctxToken = CSRFTokenFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/contact", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	assert.NoError(t, handler(c))

	token := GetCSRFToken(c)
	assert.NotEmpty(t, token)
	assert.Equal(t, token, ctxToken)

	var cookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "_csrf" {
			cookie = ck
		}
	}
	assert.NotNil(t, cookie)

	t.Run("Post without token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/contact", nil)
		req.AddCookie(cookie)
		c := e.NewContext(req, httptest.NewRecorder())

		err := handler(c)
		he, ok := err.(*echo.HTTPError)
		if assert.True(t, ok) {
			assert.Contains(t, []int{http.StatusBadRequest, http.StatusForbidden}, he.Code)
		}
	})

	t.Run("Post with form token passes", func(t *testing.T) {
		form := url.Values{CSRFFormField: {token}}
		req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()

		assert.NoError(t, handler(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Post with header token passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/newsletter", nil)
		req.Header.Set(CSRFHeader, token)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()

		assert.NoError(t, handler(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
