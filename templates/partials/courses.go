package partials

import (
	"context"
	"strconv"

	"learned_site/models"
	"learned_site/services"
	"learned_site/services/i18n"
	"learned_site/templates/components"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Element ids shared with courses.js and the htmx handlers
const (
	CoursesMainID   = "courses-main"
	CourseResultsID = "course-results"
	CourseFiltersID = "course-filters"
	CourseSearchID  = "course-search"
)

const htmxCoursesPath = "/htmx/courses"

// CourseListing is what the course partials render
type CourseListing struct {
	State   services.FilterState
	View    services.CourseView
	Catalog *services.Catalog
	// LiveURL enables the websocket session in courses.js when set
	LiveURL string
}

// CoursesMain renders the filter form and the results. Chip removal and
// "clear all" swap this whole block so the form inputs follow the state.
func CoursesMain(ctx context.Context, l CourseListing) g.Node {
	return Div(
		ID(CoursesMainID),
		Class("courses-layout"),
		g.If(l.LiveURL != "", g.Attr("data-live-url", l.LiveURL)),
		g.Attr("data-state", components.JSON(l.State)),
		CourseFilters(ctx, l),
		CourseResults(ctx, l),
	)
}

// CourseFilters is the category sidebar plus search, location and format
// controls. Without JavaScript it is a plain GET form.
func CourseFilters(ctx context.Context, l CourseListing) g.Node {
	return Form(
		ID(CourseFiltersID),
		Class("course-filters"),
		Action("/courses"),
		Method("get"),
		g.Attr("hx-get", htmxCoursesPath),
		g.Attr("hx-target", "#"+CourseResultsID),
		g.Attr("hx-swap", "outerHTML"),
		g.Attr("hx-trigger", "change, input changed delay:300ms from:#"+CourseSearchID+", submit"),
		g.Attr("hx-sync", "this:replace"),
		CategorySidebar(ctx, l),
		Div(
			Class("filter-bar"),
			Label(For(CourseSearchID), Class("sr-only"), g.Text(i18n.T(ctx, "nav.search"))),
			Input(
				ID(CourseSearchID),
				Type("search"),
				Name(services.ParamSearch),
				Value(l.State.Search),
				Placeholder(i18n.T(ctx, "courses.search_placeholder")),
				g.Attr("autocomplete", "off"),
				g.Attr("data-live-event", services.EventSearch),
			),
			facetSelect(ctx, services.ParamLocation, services.EventLocation, "courses.location", "courses.any_location", l.Catalog.Locations, l.State.Location),
			facetSelect(ctx, services.ParamFormat, services.EventFormat, "courses.format", "courses.any_format", l.Catalog.Formats, l.State.Format),
			NoScript(Button(Type("submit"), g.Text(i18n.T(ctx, "nav.search")))),
		),
	)
}

// CategorySidebar lists every category with its course count as radio
// buttons, so a category change is an ordinary form change
func CategorySidebar(ctx context.Context, l CourseListing) g.Node {
	counts := l.Catalog.CategoryCounts()

	return Aside(
		Class("category-sidebar"),
		FieldSet(
			Legend(g.Text(i18n.T(ctx, "courses.sidebar_title"))),
			categoryOption(ctx, services.CategoryAll, i18n.T(ctx, "courses.all_categories"), len(l.Catalog.Courses), l.State.Category),
			g.Map(l.Catalog.Categories, func(o models.FacetOption) g.Node {
				return categoryOption(ctx, o.Value, o.Label, counts[o.Value], l.State.Category)
			}),
		),
	)
}

func categoryOption(ctx context.Context, value, label string, count int, selected string) g.Node {
	id := "category-" + value
	return Div(
		Class("category-option"),
		Input(
			ID(id),
			Type("radio"),
			Name(services.ParamCategory),
			Value(value),
			g.If(value == selected, Checked()),
			g.Attr("data-live-event", services.EventCategory),
		),
		Label(
			For(id),
			Span(Class("category-label"), g.Text(label)),
			Span(Class("category-count"), g.Text(i18n.FormatNumber(ctx, count))),
		),
	)
}

func facetSelect(ctx context.Context, name, event, labelKey, anyKey string, options []models.FacetOption, selected string) g.Node {
	id := "filter-" + name
	return Div(
		Class("facet"),
		Label(For(id), g.Text(i18n.T(ctx, labelKey))),
		Select(
			ID(id),
			Name(name),
			g.Attr("data-live-event", event),
			Option(Value(""), g.Text(i18n.T(ctx, anyKey))),
			g.Map(options, func(o models.FacetOption) g.Node {
				return Option(Value(o.Value), g.If(o.Value == selected, Selected()), g.Text(o.Label))
			}),
		),
	)
}

// CourseResults is the count, chips, grid and load-more button
func CourseResults(ctx context.Context, l CourseListing) g.Node {
	labels := l.Catalog.Labels()
	return Section(
		ID(CourseResultsID),
		Class("course-results"),
		g.Attr("aria-live", "polite"),
		P(
			Class("course-count"),
			g.Text(i18n.T(ctx, "courses.count", map[string]interface{}{"count": i18n.FormatNumber(ctx, l.View.TotalMatches)})),
		),
		FilterChips(ctx, l),
		g.If(l.View.TotalMatches == 0, P(Class("course-empty"), g.Text(i18n.T(ctx, "courses.empty")))),
		Div(
			Class("course-grid"),
			g.Map(l.View.VisibleRecords, func(course models.Course) g.Node {
				return CourseCard(ctx, course, labels)
			}),
		),
		g.If(l.View.HasMore, LoadMoreButton(ctx, l)),
	)
}

// FilterChips shows one removable chip per active filter, in display order
func FilterChips(ctx context.Context, l CourseListing) g.Node {
	if len(l.View.ActiveFilterChips) == 0 {
		return nil
	}

	return Div(
		Class("filter-chips"),
		g.Map(l.View.ActiveFilterChips, func(chip services.FilterChip) g.Node {
			next := services.StateWithout(l.State, chip.Key)
			return Span(
				Class("filter-chip filter-chip-"+string(chip.Key)),
				Span(Class("filter-chip-label"), g.Text(chip.Label)),
				A(
					Class("filter-chip-remove"),
					Href(services.CoursesURL("/courses", next)),
					g.Attr("hx-get", services.CoursesURL(htmxCoursesPath, next)),
					g.Attr("hx-target", "#"+CoursesMainID),
					g.Attr("hx-swap", "outerHTML"),
					g.Attr("data-live-event", services.EventRemove),
					g.Attr("data-live-value", string(chip.Key)),
					g.Attr("aria-label", i18n.T(ctx, "courses.remove_filter")+": "+chip.Label),
					g.Text("×"),
				),
			)
		}),
		A(
			Class("filter-clear"),
			Href("/courses"),
			g.Attr("hx-get", htmxCoursesPath+"?"+services.ParamCategory+"="+services.CategoryAll),
			g.Attr("hx-target", "#"+CoursesMainID),
			g.Attr("hx-swap", "outerHTML"),
			g.Attr("data-live-event", services.EventClear),
			g.Text(i18n.T(ctx, "courses.clear_all")),
		),
	)
}

// LoadMoreButton reveals the next page. Its text carries the remaining count.
func LoadMoreButton(ctx context.Context, l CourseListing) g.Node {
	next := services.StateWithMore(l.State)
	return Div(
		Class("load-more"),
		A(
			Class("button load-more-button"),
			Href(services.CoursesURL("/courses", next)),
			g.Attr("hx-get", services.CoursesURL(htmxCoursesPath, next)),
			g.Attr("hx-target", "#"+CourseResultsID),
			g.Attr("hx-swap", "outerHTML"),
			g.Attr("data-live-event", services.EventMore),
			g.Text(i18n.T(ctx, "courses.load_more", map[string]interface{}{"remaining": i18n.FormatNumber(ctx, l.View.RemainingCount)})),
		),
	)
}

// CourseCard renders one course
func CourseCard(ctx context.Context, course models.Course, labels services.LabelTable) g.Node {
	return Article(
		Class("course-card"),
		g.Attr("data-category", course.Category),
		g.Attr("data-course-id", strconv.Itoa(course.ID)),
		g.If(course.Image != "", Img(Src(course.Image), Alt(course.Title), g.Attr("loading", "lazy"))),
		Div(
			Class("course-card-body"),
			Span(Class("course-category"), g.Text(labels.Lookup(services.FilterCategory, course.Category))),
			g.If(course.Badge != "", Span(Class("course-badge"), g.Text(course.Badge))),
			H3(Class("course-title"), g.Text(course.Title)),
			P(Class("course-details"), g.Text(course.DetailText)),
			g.If(course.URL != "", A(Class("course-link"), Href(course.URL), g.Text(i18n.T(ctx, "courses.details")))),
		),
	)
}
