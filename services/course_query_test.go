package services

import (
	"net/url"
	"testing"

	"learned_site/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryCatalog() *Catalog {
	courses := numberedCourses(14, "design")
	courses = append(courses, sampleCourses()...)
	return &Catalog{
		Categories: []models.FacetOption{{Value: "design", Label: "Design & Arts"}, {Value: "business", Label: "Business"}},
		Locations:  []models.FacetOption{{Value: "bradenton", Label: "SCF Bradenton"}},
		Formats:    []models.FacetOption{{Value: "online", Label: "Online"}},
		Courses:    courses,
	}
}

func TestParseCourseQuery(t *testing.T) {
	values, err := url.ParseQuery("category=design&q=Intro&location=bradenton&format=online&shown=12&hash=%23design")
	require.NoError(t, err)

	q := ParseCourseQuery(values)
	require.NotNil(t, q.Category)
	assert.Equal(t, "design", *q.Category)
	assert.Equal(t, "Intro", q.Search)
	assert.Equal(t, "bradenton", q.Location)
	assert.Equal(t, "online", q.Format)
	assert.Equal(t, 12, q.Shown)
	assert.Equal(t, "#design", q.Hash)

	t.Run("Absent category stays nil", func(t *testing.T) {
		q := ParseCourseQuery(url.Values{})
		assert.Nil(t, q.Category)
		assert.Zero(t, q.Shown)
	})

	t.Run("Bad shown ignored", func(t *testing.T) {
		assert.Zero(t, ParseCourseQuery(url.Values{ParamShown: {"-6"}}).Shown)
		assert.Zero(t, ParseCourseQuery(url.Values{ParamShown: {"lots"}}).Shown)
	})
}

func TestCourseQueryBuild(t *testing.T) {
	catalog := queryCatalog()

	t.Run("Facets replayed", func(t *testing.T) {
		category := "design"
		f := CourseQuery{Category: &category, Format: "online"}.Build(catalog, 6)

		state := f.State()
		assert.Equal(t, "design", state.Category)
		assert.Equal(t, "online", state.Format)
		assert.Equal(t, 6, state.VisibleCount)
		// 14 numbered design courses are online, plus "UX Fundamentals"
		assert.Equal(t, 15, f.View().TotalMatches)
	})

	t.Run("Hash seeds category", func(t *testing.T) {
		f := CourseQuery{Hash: "#business"}.Build(catalog, 6)
		assert.Equal(t, "business", f.State().Category)
	})

	t.Run("Explicit category overrides hash", func(t *testing.T) {
		empty := ""
		f := CourseQuery{Hash: "#business", Category: &empty}.Build(catalog, 6)
		assert.Equal(t, CategoryAll, f.State().Category)
	})

	t.Run("Shown rounds up to whole pages", func(t *testing.T) {
		f := CourseQuery{Shown: 7}.Build(catalog, 6)
		assert.Equal(t, 12, f.State().VisibleCount)
		assert.Len(t, f.View().VisibleRecords, 12)
		assert.Equal(t, 10, f.View().RemainingCount)
	})

	t.Run("Shown capped at matches", func(t *testing.T) {
		f := CourseQuery{Shown: 600}.Build(catalog, 6)
		view := f.View()
		assert.Equal(t, 24, f.State().VisibleCount)
		assert.False(t, view.HasMore)
		assert.Len(t, view.VisibleRecords, 22)
		assert.Equal(t, 0, view.RemainingCount)
	})

	t.Run("Search is applied before paging", func(t *testing.T) {
		f := CourseQuery{Search: "  PYTHON ", Shown: 12}.Build(catalog, 6)
		assert.Equal(t, "python", f.State().Search)
		assert.Equal(t, 6, f.State().VisibleCount)
		assert.Equal(t, 1, f.View().TotalMatches)
	})
}

func TestStateQuery(t *testing.T) {
	assert.Empty(t, StateQuery(FilterState{Category: CategoryAll, VisibleCount: 6, PageSize: 6}))

	values := StateQuery(FilterState{
		Category:     "design",
		Search:       "intro",
		Location:     "venice",
		Format:       "online",
		VisibleCount: 12,
		PageSize:     6,
	})
	assert.Equal(t, "category=design&format=online&location=venice&q=intro&shown=12", values.Encode())
}

func TestStateQueryRoundTrip(t *testing.T) {
	catalog := queryCatalog()
	category := "design"
	original := CourseQuery{Category: &category, Search: "course", Shown: 12}.Build(catalog, 6)

	rebuilt := ParseCourseQuery(StateQuery(original.State())).Build(catalog, 6)
	assert.Equal(t, original.State(), rebuilt.State())
	assert.Equal(t, original.View(), rebuilt.View())
}

func TestStateWithout(t *testing.T) {
	state := FilterState{Category: "design", Search: "intro", Format: "online", VisibleCount: 18, PageSize: 6}

	without := StateWithout(state, FilterSearch)
	assert.Equal(t, "", without.Search)
	assert.Equal(t, "design", without.Category)
	assert.Equal(t, 6, without.VisibleCount)

	assert.Equal(t, CategoryAll, StateWithout(state, FilterCategory).Category)
	assert.Equal(t, state, StateWithout(state, FilterKey("sort")))
}

func TestCoursesURL(t *testing.T) {
	state := FilterState{Category: CategoryAll, VisibleCount: 6, PageSize: 6}
	assert.Equal(t, "/courses", CoursesURL("/courses", state))

	state.Search = "art"
	assert.Equal(t, "/courses?q=art", CoursesURL("/courses", state))
	assert.Equal(t, "/htmx/courses?x=1&q=art", CoursesURL("/htmx/courses?x=1", state))
	assert.Equal(t, "/courses?q=art&shown=12", CoursesURL("/courses", StateWithMore(state)))
}
