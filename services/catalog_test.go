package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const testCatalogYAML = `
categories:
  - value: design
    label: Art & Design
  - value: business
    label: Business
locations:
  - value: venice
    label: SCF Venice
formats:
  - value: online
    label: Online
courses:
  - category: design
    title: "  Watercolor  "
    details: SCF Venice | 4 weeks
  - category: business
    title: ""
    details: dropped because it has no title
  - category: business
    title: Bookkeeping
    details: Online | Self-paced
faq:
  - question: Refunds?
    answer: "Yes, **always**."
`

func buildCatalogWorkbook(t *testing.T, withOptions bool) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", CoursesSheet)
	rows := [][]interface{}{
		{"Category", "Title", "Details", "Badge"},
		{"technology", "Python for Beginners", "Online | 8 weeks", "New"},
		{"technology", "Excel Intermediate", "SCF Bradenton"},
		{"design", "", "skipped"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, f.SetSheetRow(CoursesSheet, cell, &row))
	}

	if withOptions {
		_, err := f.NewSheet(OptionsSheet)
		require.NoError(t, err)
		options := [][]interface{}{
			{"facet", "value", "label"},
			{"category", "technology", "Computers & Technology"},
			{"location", "bradenton", "SCF Bradenton"},
			{"format", "online", "Online"},
			{"format", "", "ignored"},
		}
		for i, row := range options {
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, f.SetSheetRow(OptionsSheet, cell, &row))
		}

		_, err = f.NewSheet(FAQSheet)
		require.NoError(t, err)
		faq := [][]interface{}{
			{"Question", "Answer"},
			{"Is parking free?", "Yes, with a *permit*."},
		}
		for i, row := range faq {
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, f.SetSheetRow(FAQSheet, cell, &row))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseCatalogYAML(t *testing.T) {
	catalog, err := ParseCatalogYAML([]byte(testCatalogYAML))
	require.NoError(t, err)

	require.Len(t, catalog.Courses, 2)
	assert.Equal(t, "Watercolor", catalog.Courses[0].Title)
	assert.Equal(t, 0, catalog.Courses[0].ID)
	assert.Equal(t, "Bookkeeping", catalog.Courses[1].Title)
	assert.Equal(t, 1, catalog.Courses[1].ID)

	require.Len(t, catalog.FAQ, 1)
	assert.Contains(t, catalog.FAQ[0].AnswerHTML, "<strong>always</strong>")

	assert.Equal(t, []string{"design", "business"}, catalog.CategoryValues())
	assert.Equal(t, map[string]int{"design": 1, "business": 1}, catalog.CategoryCounts())

	labels := catalog.Labels()
	assert.Equal(t, "Art & Design", labels.Lookup(FilterCategory, "design"))
	assert.Equal(t, "SCF Venice", labels.Lookup(FilterLocation, "venice"))
	assert.Equal(t, "Online", labels.Lookup(FilterFormat, "online"))
}

func TestParseCatalogYAMLErrors(t *testing.T) {
	t.Run("Malformed", func(t *testing.T) {
		_, err := ParseCatalogYAML([]byte("courses: [unterminated"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse catalog")
	})

	t.Run("No courses", func(t *testing.T) {
		_, err := ParseCatalogYAML([]byte("categories: []\ncourses: []\n"))
		assert.ErrorIs(t, err, ErrEmptyCatalog)
	})
}

func TestParseCatalogXLSX(t *testing.T) {
	catalog, err := ParseCatalogXLSX(buildCatalogWorkbook(t, true))
	require.NoError(t, err)

	require.Len(t, catalog.Courses, 2)
	assert.Equal(t, "Python for Beginners", catalog.Courses[0].Title)
	assert.Equal(t, "New", catalog.Courses[0].Badge)
	assert.Equal(t, "SCF Bradenton", catalog.Courses[1].DetailText)
	assert.Empty(t, catalog.Courses[1].Badge)

	assert.Len(t, catalog.Categories, 1)
	assert.Len(t, catalog.Locations, 1)
	assert.Len(t, catalog.Formats, 1)

	require.Len(t, catalog.FAQ, 1)
	assert.Contains(t, catalog.FAQ[0].AnswerHTML, "<em>permit</em>")
}

func TestParseCatalogXLSXWithoutOptionalSheets(t *testing.T) {
	catalog, err := ParseCatalogXLSX(buildCatalogWorkbook(t, false))
	require.NoError(t, err)

	assert.Len(t, catalog.Courses, 2)
	assert.Empty(t, catalog.FAQ)

	// Categories fall back to the course tags so fragments still seed the filter
	assert.Equal(t, []string{"technology"}, catalog.CategoryValues())
	assert.Equal(t, "technology", catalog.Labels().Lookup(FilterCategory, "technology"))

	f := catalog.NewFilter(6, "#technology")
	assert.Equal(t, "technology", f.State().Category)
}

func TestParseCatalogYAMLDerivesCategories(t *testing.T) {
	catalog, err := ParseCatalogYAML([]byte(`courses:
  - category: design
    title: Watercolor
  - category: business
    title: Bookkeeping
  - category: design
    title: Photography
  - title: Uncategorized
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"design", "business"}, catalog.CategoryValues())
	assert.Equal(t, map[string]int{"design": 2, "business": 1, "": 1}, catalog.CategoryCounts())
}

func TestParseCatalogXLSXMissingCoursesSheet(t *testing.T) {
	f := excelize.NewFile()
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	f.Close()

	_, err = ParseCatalogXLSX(buf)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), CoursesSheet)
}

func TestLoadCatalog(t *testing.T) {
	ctx := context.Background()
	storage := NewLocalStorage(t.TempDir())

	t.Run("Embedded default", func(t *testing.T) {
		catalog, err := LoadCatalog(ctx, storage, "")
		require.NoError(t, err)
		assert.NotEmpty(t, catalog.Courses)
		assert.NotEmpty(t, catalog.Categories)
		assert.NotEmpty(t, catalog.FAQ)
	})

	t.Run("YAML from storage", func(t *testing.T) {
		require.NoError(t, storage.Put(ctx, "catalog.yaml", []byte(testCatalogYAML), "application/yaml"))

		catalog, err := LoadCatalog(ctx, storage, "catalog.yaml")
		require.NoError(t, err)
		assert.Len(t, catalog.Courses, 2)
	})

	t.Run("XLSX from storage", func(t *testing.T) {
		buf := buildCatalogWorkbook(t, true)
		require.NoError(t, storage.Put(ctx, "catalog.xlsx", buf.Bytes(), contentTypeFor("catalog.xlsx")))

		catalog, err := LoadCatalog(ctx, storage, "catalog.xlsx")
		require.NoError(t, err)
		assert.Len(t, catalog.Courses, 2)
	})

	t.Run("Unsupported extension", func(t *testing.T) {
		require.NoError(t, storage.Put(ctx, "catalog.csv", []byte("a,b"), "text/csv"))

		_, err := LoadCatalog(ctx, storage, "catalog.csv")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported catalog format")
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := LoadCatalog(ctx, storage, "nope.yaml")
		assert.Error(t, err)
	})
}

func TestCatalogEncodeYAMLRoundTrip(t *testing.T) {
	catalog, err := ParseCatalogXLSX(buildCatalogWorkbook(t, true))
	require.NoError(t, err)

	encoded, err := catalog.EncodeYAML()
	require.NoError(t, err)
	assert.NotContains(t, string(encoded), "<em>")

	decoded, err := ParseCatalogYAML(encoded)
	require.NoError(t, err)
	assert.Equal(t, catalog.Courses, decoded.Courses)
	assert.Equal(t, catalog.Labels(), decoded.Labels())
}

func TestCatalogNewFilter(t *testing.T) {
	catalog, err := ParseCatalogYAML([]byte(testCatalogYAML))
	require.NoError(t, err)

	f := catalog.NewFilter(6, "#design")
	assert.Equal(t, "design", f.State().Category)
	chips := f.View().ActiveFilterChips
	require.Len(t, chips, 1)
	assert.Equal(t, "Art & Design", chips[0].Label)

	f = catalog.NewFilter(6, "#unknown")
	assert.Equal(t, CategoryAll, f.State().Category)
}
