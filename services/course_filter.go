package services

import (
	"strings"

	"learned_site/models"

	"golang.org/x/text/cases"
)

const (
	// DefaultPageSize is how many courses each "load more" step reveals
	DefaultPageSize = 6
	// CategoryAll is the category sentinel that matches every course
	CategoryAll = "all"
)

// FilterKey names one facet of the course filter
type FilterKey string

const (
	FilterCategory FilterKey = "category"
	FilterSearch   FilterKey = "search"
	FilterLocation FilterKey = "location"
	FilterFormat   FilterKey = "format"
)

// chipOrder is the display precedence of active filter chips
var chipOrder = []FilterKey{FilterCategory, FilterSearch, FilterLocation, FilterFormat}

// LabelTable maps facet values to human readable labels, per facet
type LabelTable map[FilterKey]map[string]string

// Lookup returns the label for value, or value itself when no mapping exists
func (t LabelTable) Lookup(key FilterKey, value string) string {
	if labels, ok := t[key]; ok {
		if label, ok := labels[value]; ok && label != "" {
			return label
		}
	}
	return value
}

// FilterState is the current selection of the course filter
type FilterState struct {
	Category     string `json:"category"`
	Search       string `json:"search"`
	Location     string `json:"location"`
	Format       string `json:"format"`
	VisibleCount int    `json:"visible_count"`
	PageSize     int    `json:"page_size"`
}

// FilterChip is an active, removable filter badge
type FilterChip struct {
	Key   FilterKey `json:"key"`
	Label string    `json:"label"`
}

// CourseView is everything the page needs to reflect the filter state
type CourseView struct {
	VisibleRecords    []models.Course `json:"visible_records"`
	TotalMatches      int             `json:"total_matches"`
	ActiveFilterChips []FilterChip    `json:"active_filter_chips"`
	HasMore           bool            `json:"has_more"`
	RemainingCount    int             `json:"remaining_count"`
}

// CourseFilterOptions configures a CourseFilter at construction time
type CourseFilterOptions struct {
	PageSize int
	Labels   LabelTable
	// Categories is the set of known category tags. InitialCategory is only
	// honoured when it is one of them.
	Categories      []string
	InitialCategory string
}

// foldedCourse caches the case-folded text of a course for matching
type foldedCourse struct {
	title   string
	details string
}

// CourseFilter holds the filter state for one page view over a fixed course
// list. It is not safe for concurrent use; FilterSession serializes access.
type CourseFilter struct {
	courses []models.Course
	folded  []foldedCourse
	labels  LabelTable
	caser   cases.Caser
	state   FilterState
	view    CourseView
}

// NewCourseFilter creates a filter over courses and computes the initial view
func NewCourseFilter(courses []models.Course, opts CourseFilterOptions) *CourseFilter {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	f := &CourseFilter{
		courses: courses,
		folded:  make([]foldedCourse, len(courses)),
		labels:  opts.Labels,
		caser:   cases.Fold(),
		state: FilterState{
			Category:     CategoryAll,
			VisibleCount: pageSize,
			PageSize:     pageSize,
		},
	}

	for i, course := range courses {
		f.folded[i] = foldedCourse{
			title:   f.fold(course.Title),
			details: f.fold(course.DetailText),
		}
	}

	initial := ParseFragment(opts.InitialCategory)
	for _, known := range opts.Categories {
		if initial != "" && known == initial {
			f.state.Category = initial
			break
		}
	}

	f.recompute()
	return f
}

// ParseFragment strips the leading '#' of a URL fragment
func ParseFragment(fragment string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(fragment), "#"))
}

// SetCategory selects a category; an empty tag selects every category
func (f *CourseFilter) SetCategory(tag string) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		tag = CategoryAll
	}
	f.state.Category = tag
	f.resetAndRecompute()
}

// SetSearch sets the free-text search term. Empty clears it.
func (f *CourseFilter) SetSearch(term string) {
	f.state.Search = f.fold(strings.TrimSpace(term))
	f.resetAndRecompute()
}

// SetLocation sets the location facet. Empty clears it.
func (f *CourseFilter) SetLocation(value string) {
	f.state.Location = strings.TrimSpace(value)
	f.resetAndRecompute()
}

// SetFormat sets the format facet. Empty clears it.
func (f *CourseFilter) SetFormat(value string) {
	f.state.Format = strings.TrimSpace(value)
	f.resetAndRecompute()
}

// RemoveFilter clears one facet back to its default. Unknown keys only reset
// pagination.
func (f *CourseFilter) RemoveFilter(key FilterKey) {
	switch key {
	case FilterCategory:
		f.state.Category = CategoryAll
	case FilterSearch:
		f.state.Search = ""
	case FilterLocation:
		f.state.Location = ""
	case FilterFormat:
		f.state.Format = ""
	}
	f.resetAndRecompute()
}

// ClearAll resets every facet and the pagination cursor
func (f *CourseFilter) ClearAll() {
	f.state.Category = CategoryAll
	f.state.Search = ""
	f.state.Location = ""
	f.state.Format = ""
	f.resetAndRecompute()
}

// LoadMore reveals the next page of matches without touching the facets
func (f *CourseFilter) LoadMore() {
	f.state.VisibleCount += f.state.PageSize
	f.recompute()
}

// View returns the current view. The returned slices are copies.
func (f *CourseFilter) View() CourseView {
	view := f.view
	view.VisibleRecords = append([]models.Course(nil), f.view.VisibleRecords...)
	view.ActiveFilterChips = append([]FilterChip(nil), f.view.ActiveFilterChips...)
	return view
}

// State returns the current filter state
func (f *CourseFilter) State() FilterState {
	return f.state
}

func (f *CourseFilter) resetAndRecompute() {
	f.state.VisibleCount = f.state.PageSize
	f.recompute()
}

func (f *CourseFilter) recompute() {
	visible := make([]models.Course, 0, f.state.PageSize)
	total := 0
	for i, course := range f.courses {
		if !f.matches(course, f.folded[i]) {
			continue
		}
		total++
		if len(visible) < f.state.VisibleCount {
			visible = append(visible, course)
		}
	}

	remaining := total - f.state.VisibleCount
	if remaining < 0 {
		remaining = 0
	}

	f.view = CourseView{
		VisibleRecords:    visible,
		TotalMatches:      total,
		ActiveFilterChips: f.chips(),
		HasMore:           total > f.state.VisibleCount,
		RemainingCount:    remaining,
	}
}

func (f *CourseFilter) matches(course models.Course, folded foldedCourse) bool {
	if f.state.Category != CategoryAll && course.Category != f.state.Category {
		return false
	}

	if f.state.Search != "" &&
		!strings.Contains(folded.title, f.state.Search) &&
		!strings.Contains(folded.details, f.state.Search) {
		return false
	}

	// Location has no structured field upstream; containment in the details
	// text is the best available signal.
	if f.state.Location != "" && !strings.Contains(folded.details, f.fold(f.state.Location)) {
		return false
	}

	// Only "online" can exclude a course. Nothing marks a course as in-person.
	if f.fold(f.state.Format) == "online" && !strings.Contains(folded.details, "online") {
		return false
	}

	return true
}

func (f *CourseFilter) chips() []FilterChip {
	chips := make([]FilterChip, 0, len(chipOrder))
	for _, key := range chipOrder {
		switch key {
		case FilterCategory:
			if f.state.Category != CategoryAll {
				chips = append(chips, FilterChip{Key: key, Label: f.labels.Lookup(key, f.state.Category)})
			}
		case FilterSearch:
			if f.state.Search != "" {
				chips = append(chips, FilterChip{Key: key, Label: f.state.Search})
			}
		case FilterLocation:
			if f.state.Location != "" {
				chips = append(chips, FilterChip{Key: key, Label: f.labels.Lookup(key, f.state.Location)})
			}
		case FilterFormat:
			if f.state.Format != "" {
				chips = append(chips, FilterChip{Key: key, Label: f.labels.Lookup(key, f.state.Format)})
			}
		}
	}
	return chips
}

func (f *CourseFilter) fold(s string) string {
	return f.caser.String(s)
}
