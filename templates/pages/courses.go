package pages

import (
	"context"

	"learned_site/services/i18n"
	"learned_site/templates/components"
	"learned_site/templates/partials"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Courses renders the full courses page
func Courses(page components.PageConfig, listing partials.CourseListing) templ.Component {
	return components.Lazy(func(ctx context.Context) g.Node {
		page.Active = "courses"
		page.Scripts = append(page.Scripts, "js/courses.js")
		return components.Layout(ctx, page,
			Section(
				Class("page-header container"),
				H1(g.Text(i18n.T(ctx, "courses.title"))),
				P(g.Text(i18n.T(ctx, "courses.subtitle"))),
			),
			Div(Class("container"), partials.CoursesMain(ctx, listing)),
		)
	})
}

// CoursesMainPartial is the htmx response for chip removal and clear all
func CoursesMainPartial(listing partials.CourseListing) templ.Component {
	return components.Lazy(func(ctx context.Context) g.Node {
		return partials.CoursesMain(ctx, listing)
	})
}

// CourseResultsPartial is the htmx response for filter and load-more requests
func CourseResultsPartial(listing partials.CourseListing) templ.Component {
	return components.Lazy(func(ctx context.Context) g.Node {
		return partials.CourseResults(ctx, listing)
	})
}
