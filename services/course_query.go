package services

import (
	"net/url"
	"strconv"
	"strings"
)

// Query parameter names used by the course pages
const (
	ParamCategory = "category"
	ParamSearch   = "q"
	ParamLocation = "location"
	ParamFormat   = "format"
	ParamShown    = "shown"
	ParamHash     = "hash"
)

// CourseQuery is the filter state carried in a URL. Pointers distinguish
// "not present" from "present but empty".
type CourseQuery struct {
	Category *string
	Search   string
	Location string
	Format   string
	Shown    int
	Hash     string
}

// ParseCourseQuery reads a CourseQuery from URL values. Invalid or
// negative shown values are ignored.
func ParseCourseQuery(values url.Values) CourseQuery {
	q := CourseQuery{
		Search:   values.Get(ParamSearch),
		Location: values.Get(ParamLocation),
		Format:   values.Get(ParamFormat),
		Hash:     values.Get(ParamHash),
	}
	if values.Has(ParamCategory) {
		category := values.Get(ParamCategory)
		q.Category = &category
	}
	if shown, err := strconv.Atoi(values.Get(ParamShown)); err == nil && shown > 0 {
		q.Shown = shown
	}
	return q
}

// Build creates a filter for catalog and replays the query against it, so
// the result is the same as a visitor making those selections by hand
func (q CourseQuery) Build(catalog *Catalog, pageSize int) *CourseFilter {
	f := catalog.NewFilter(pageSize, q.Hash)

	if q.Category != nil {
		f.SetCategory(*q.Category)
	}
	if q.Search != "" {
		f.SetSearch(q.Search)
	}
	if q.Location != "" {
		f.SetLocation(q.Location)
	}
	if q.Format != "" {
		f.SetFormat(q.Format)
	}

	// shown rounds up to whole pages and stops once everything is visible
	for f.State().VisibleCount < q.Shown && f.View().HasMore {
		f.LoadMore()
	}
	return f
}

// StateQuery encodes state as URL values. Defaults are omitted so an
// unfiltered first page encodes to nothing.
func StateQuery(state FilterState) url.Values {
	values := url.Values{}
	if state.Category != "" && state.Category != CategoryAll {
		values.Set(ParamCategory, state.Category)
	}
	if state.Search != "" {
		values.Set(ParamSearch, state.Search)
	}
	if state.Location != "" {
		values.Set(ParamLocation, state.Location)
	}
	if state.Format != "" {
		values.Set(ParamFormat, state.Format)
	}
	if state.PageSize > 0 && state.VisibleCount > state.PageSize {
		values.Set(ParamShown, strconv.Itoa(state.VisibleCount))
	}
	return values
}

// StateWithout returns state with one facet cleared and pagination reset,
// which is what RemoveFilter does
func StateWithout(state FilterState, key FilterKey) FilterState {
	switch key {
	case FilterCategory:
		state.Category = CategoryAll
	case FilterSearch:
		state.Search = ""
	case FilterLocation:
		state.Location = ""
	case FilterFormat:
		state.Format = ""
	default:
		return state
	}
	state.VisibleCount = state.PageSize
	return state
}

// StateWithMore returns state after one LoadMore step
func StateWithMore(state FilterState) FilterState {
	state.VisibleCount += state.PageSize
	return state
}

// CoursesURL builds a URL for path carrying state, e.g. "/courses?q=art"
func CoursesURL(path string, state FilterState) string {
	encoded := StateQuery(state).Encode()
	if encoded == "" {
		return path
	}
	if strings.Contains(path, "?") {
		return path + "&" + encoded
	}
	return path + "?" + encoded
}
