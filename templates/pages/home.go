package pages

import (
	"context"

	"learned_site/models"
	"learned_site/services"
	"learned_site/services/i18n"
	"learned_site/templates/components"
	"learned_site/templates/partials"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// maxFeatured caps the featured course row on the home page
const maxFeatured = 3

// Home renders the landing page: hero, category tiles, featured courses,
// FAQ and newsletter signup
func Home(page components.PageConfig, catalog *services.Catalog) templ.Component {
	return components.Lazy(func(ctx context.Context) g.Node {
		page.Active = "home"
		return components.Layout(ctx, page,
			Section(
				Class("hero"),
				Div(
					Class("container"),
					H1(g.Text(i18n.T(ctx, "home.title"))),
					P(Class("hero-subtitle"), g.Text(i18n.T(ctx, "home.subtitle"))),
					A(Class("button button-primary"), Href("/courses"), g.Text(i18n.T(ctx, "home.browse"))),
				),
			),
			categoryTiles(ctx, catalog),
			featuredCourses(ctx, catalog),
			faqSection(ctx, catalog.FAQ),
			Section(
				Class("newsletter container"),
				H2(g.Text(i18n.T(ctx, "newsletter.title"))),
				P(g.Text(i18n.T(ctx, "newsletter.subtitle"))),
				partials.NewsletterForm(ctx, "", nil, page.TurnstileSiteKey),
			),
		)
	})
}

// categoryTiles link to the courses page with the category as a URL
// fragment; courses.js turns the fragment into the initial category
func categoryTiles(ctx context.Context, catalog *services.Catalog) g.Node {
	counts := catalog.CategoryCounts()
	return Section(
		Class("category-tiles container"),
		H2(g.Text(i18n.T(ctx, "courses.sidebar_title"))),
		Ul(
			g.Map(catalog.Categories, func(o models.FacetOption) g.Node {
				return Li(
					A(
						Href("/courses#"+o.Value),
						Class("category-tile"),
						Span(Class("category-label"), g.Text(o.Label)),
						Span(Class("category-count"), g.Text(i18n.FormatNumber(ctx, counts[o.Value]))),
					),
				)
			}),
		),
	)
}

func featuredCourses(ctx context.Context, catalog *services.Catalog) g.Node {
	var featured []models.Course
	for _, course := range catalog.Courses {
		if course.Badge != "" {
			featured = append(featured, course)
		}
		if len(featured) == maxFeatured {
			break
		}
	}
	if len(featured) == 0 {
		return nil
	}

	labels := catalog.Labels()
	return Section(
		Class("featured container"),
		H2(g.Text(i18n.T(ctx, "home.featured"))),
		Div(
			Class("course-grid"),
			g.Map(featured, func(course models.Course) g.Node {
				return partials.CourseCard(ctx, course, labels)
			}),
		),
	)
}

// faqSection is a native details/summary accordion. Answers are sanitized
// HTML rendered from markdown when the catalog was loaded.
func faqSection(ctx context.Context, faq []models.FAQItem) g.Node {
	if len(faq) == 0 {
		return nil
	}
	return Section(
		Class("faq container"),
		ID("faq"),
		H2(g.Text(i18n.T(ctx, "home.faq_title"))),
		g.Map(faq, func(item models.FAQItem) g.Node {
			return Details(
				Class("faq-item"),
				Summary(g.Text(item.Question)),
				Div(Class("faq-answer"), g.Raw(item.AnswerHTML)),
			)
		}),
	)
}
