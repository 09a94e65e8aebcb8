package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"learned_site/data"
	"learned_site/models"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// Spreadsheet layout for catalog exports
const (
	CoursesSheet = "Courses"
	OptionsSheet = "Options"
	FAQSheet     = "FAQ"
)

var ErrEmptyCatalog = errors.New("catalog has no courses")

// Catalog is the static course collection plus the labels used to display
// filter options. It is loaded once and never modified afterwards.
type Catalog struct {
	Categories []models.FacetOption `yaml:"categories"`
	Locations  []models.FacetOption `yaml:"locations"`
	Formats    []models.FacetOption `yaml:"formats"`
	Courses    []models.Course      `yaml:"courses"`
	FAQ        []models.FAQItem     `yaml:"faq,omitempty"`
}

// LoadCatalog reads the catalog at path from storage. An empty path loads
// the catalog bundled with the binary.
func LoadCatalog(ctx context.Context, storage StorageProvider, path string) (*Catalog, error) {
	if path == "" {
		log.Println("Loading embedded course catalog")
		return ParseCatalogYAML(data.DefaultCatalog)
	}

	reader, _, err := storage.Get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s from %s: %w", path, storage.Name(), err)
	}
	defer reader.Close()

	var catalog *Catalog
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		catalog, err = ParseCatalogXLSX(reader)
	case ".yaml", ".yml":
		var content []byte
		content, err = io.ReadAll(reader)
		if err == nil {
			catalog, err = ParseCatalogYAML(content)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format: %s", path)
	}
	if err != nil {
		return nil, err
	}

	log.Printf("Loaded course catalog %s (%d courses)", path, len(catalog.Courses))
	return catalog, nil
}

// ParseCatalogYAML decodes a YAML catalog
func ParseCatalogYAML(content []byte) (*Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(content, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := catalog.prepare(); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// ParseCatalogXLSX reads a spreadsheet export. The Courses sheet is required;
// Options (facet, value, label) and FAQ (question, answer) are optional.
func ParseCatalogXLSX(r io.Reader) (*Catalog, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	courseRows, err := f.GetRows(CoursesSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s sheet: %w", CoursesSheet, err)
	}

	var catalog Catalog
	for _, row := range sheetRecords(courseRows) {
		catalog.Courses = append(catalog.Courses, models.Course{
			Category:   row["category"],
			Title:      row["title"],
			DetailText: row["details"],
			URL:        row["url"],
			Image:      row["image"],
			Badge:      row["badge"],
		})
	}

	if optionRows, err := f.GetRows(OptionsSheet); err == nil {
		for _, row := range sheetRecords(optionRows) {
			option := models.FacetOption{Value: row["value"], Label: row["label"]}
			if option.Value == "" {
				continue
			}
			switch FilterKey(strings.ToLower(row["facet"])) {
			case FilterCategory:
				catalog.Categories = append(catalog.Categories, option)
			case FilterLocation:
				catalog.Locations = append(catalog.Locations, option)
			case FilterFormat:
				catalog.Formats = append(catalog.Formats, option)
			}
		}
	}

	if faqRows, err := f.GetRows(FAQSheet); err == nil {
		for _, row := range sheetRecords(faqRows) {
			catalog.FAQ = append(catalog.FAQ, models.FAQItem{Question: row["question"], Answer: row["answer"]})
		}
	}

	if err := catalog.prepare(); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// EncodeYAML serializes the catalog in the format ParseCatalogYAML reads
func (c *Catalog) EncodeYAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}
	return buf.Bytes(), nil
}

// Labels returns the facet label lookup table for filter chips
func (c *Catalog) Labels() LabelTable {
	table := LabelTable{
		FilterCategory: make(map[string]string, len(c.Categories)),
		FilterLocation: make(map[string]string, len(c.Locations)),
		FilterFormat:   make(map[string]string, len(c.Formats)),
	}
	for _, o := range c.Categories {
		table[FilterCategory][o.Value] = o.Label
	}
	for _, o := range c.Locations {
		table[FilterLocation][o.Value] = o.Label
	}
	for _, o := range c.Formats {
		table[FilterFormat][o.Value] = o.Label
	}
	return table
}

// CategoryValues returns the known category tags in display order
func (c *Catalog) CategoryValues() []string {
	values := make([]string, 0, len(c.Categories))
	for _, o := range c.Categories {
		values = append(values, o.Value)
	}
	return values
}

// CategoryCounts returns the number of courses per category tag
func (c *Catalog) CategoryCounts() map[string]int {
	counts := make(map[string]int, len(c.Categories))
	for _, course := range c.Courses {
		counts[course.Category]++
	}
	return counts
}

// NewFilter creates a course filter for one page view
func (c *Catalog) NewFilter(pageSize int, initialCategory string) *CourseFilter {
	return NewCourseFilter(c.Courses, CourseFilterOptions{
		PageSize:        pageSize,
		Labels:          c.Labels(),
		Categories:      c.CategoryValues(),
		InitialCategory: initialCategory,
	})
}

// prepare normalizes loaded records, numbers the courses and renders FAQ
// answers
func (c *Catalog) prepare() error {
	courses := c.Courses[:0]
	for _, course := range c.Courses {
		course.Title = strings.TrimSpace(course.Title)
		course.Category = strings.TrimSpace(course.Category)
		course.DetailText = strings.TrimSpace(course.DetailText)
		if course.Title == "" {
			continue
		}
		course.ID = len(courses)
		courses = append(courses, course)
	}
	c.Courses = courses

	if len(c.Courses) == 0 {
		return ErrEmptyCatalog
	}

	// Without category options the course tags are the known categories,
	// in first-seen order
	if len(c.Categories) == 0 {
		seen := make(map[string]bool)
		for _, course := range c.Courses {
			if course.Category == "" || seen[course.Category] {
				continue
			}
			seen[course.Category] = true
			c.Categories = append(c.Categories, models.FacetOption{Value: course.Category, Label: course.Category})
		}
	}

	for i := range c.FAQ {
		rendered, err := RenderMarkdown(c.FAQ[i].Answer)
		if err != nil {
			return fmt.Errorf("failed to render FAQ %q: %w", c.FAQ[i].Question, err)
		}
		c.FAQ[i].AnswerHTML = rendered
	}

	return nil
}

// sheetRecords maps data rows to lower-cased header names. Rows shorter than
// the header get empty values.
func sheetRecords(rows [][]string) []map[string]string {
	if len(rows) < 2 {
		return nil
	}

	header := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(name))
	}

	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(map[string]string, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(row) {
				record[name] = strings.TrimSpace(row[i])
			} else {
				record[name] = ""
			}
		}
		records = append(records, record)
	}
	return records
}
