package handlers

import (
	"net/http"

	"learned_site/templates/pages"

	"github.com/labstack/echo/v4"
)

// HomeHandler renders the landing page with featured courses and the FAQ
func HomeHandler(c echo.Context) error {
	cfg := getConfig(c)
	page := pageConfig(c, GetSEO(cfg, "home", locale(c)))
	component := pages.Home(page, getCatalog(c))
	return render(c, http.StatusOK, component)
}
