package handlers

import (
	"net/http"

	"learned_site/services"
	"learned_site/templates/pages"
	"learned_site/templates/partials"

	"github.com/labstack/echo/v4"
)

const liveCoursesPath = "/ws/courses"

// buildCourseFilter replays the request's query string against a fresh
// filter over the catalog
func buildCourseFilter(c echo.Context) *services.CourseFilter {
	query := services.ParseCourseQuery(c.QueryParams())
	return query.Build(getCatalog(c), getConfig(c).PageSize)
}

func courseListing(c echo.Context, filter *services.CourseFilter) partials.CourseListing {
	return partials.CourseListing{
		State:   filter.State(),
		View:    filter.View(),
		Catalog: getCatalog(c),
		LiveURL: liveCoursesPath,
	}
}

// CoursesPageHandler renders the courses page for the state in the URL
func CoursesPageHandler(c echo.Context) error {
	cfg := getConfig(c)
	listing := courseListing(c, buildCourseFilter(c))
	page := pageConfig(c, GetSEO(cfg, "courses", locale(c)))
	return render(c, http.StatusOK, pages.Courses(page, listing))
}

// CoursesHTMXHandler returns the course partial for htmx requests. A
// request targeting the whole courses block gets the filter form too, so
// chip removal resets the matching input.
func CoursesHTMXHandler(c echo.Context) error {
	filter := buildCourseFilter(c)
	state := filter.State()

	if !isHTMX(c) {
		return c.Redirect(http.StatusSeeOther, services.CoursesURL("/courses", state))
	}

	listing := courseListing(c, filter)
	c.Response().Header().Set("HX-Replace-Url", services.CoursesURL("/courses", state))

	if c.Request().Header.Get("HX-Target") == partials.CoursesMainID {
		return render(c, http.StatusOK, pages.CoursesMainPartial(listing))
	}
	return render(c, http.StatusOK, pages.CourseResultsPartial(listing))
}

// CoursesResponse is the JSON form of a filter result
type CoursesResponse struct {
	State services.FilterState `json:"state"`
	View  services.CourseView  `json:"view"`
}

// CoursesAPIHandler returns the filter state and view as JSON
func CoursesAPIHandler(c echo.Context) error {
	filter := buildCourseFilter(c)
	return c.JSON(http.StatusOK, CoursesResponse{
		State: filter.State(),
		View:  filter.View(),
	})
}
