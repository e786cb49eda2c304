package fsbc

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"

	"github.com/smetadoc/fsnbconv/internal/catalog"
)

func countHeadings(doc string, level int) int {
	prefix := strings.Repeat("#", level) + " "
	n := 0
	for _, line := range strings.Split(doc, "\n") {
		if strings.HasPrefix(line, prefix) && !strings.HasPrefix(line, prefix+"#") {
			n++
		}
	}
	return n
}

func renderToString(t *testing.T, meta catalog.Metadata, records []catalog.ResourceRecord, sum catalog.Summary) string {
	t.Helper()
	var buf bytes.Buffer
	err := NewRenderer().Render(context.Background(), &buf, meta, records, sum)
	require.NoError(t, err)
	return buf.String()
}

func TestRender(t *testing.T) {
	ctx := context.Background()

	t.Run("end to end from sample catalog", func(t *testing.T) {
		result, err := NewParser().Parse(ctx, []byte(sampleCatalog))
		require.NoError(t, err)

		sum := catalog.Summary{
			Candidates: result.Candidates,
			Created:    len(result.Records),
			Errors:     result.Errors,
		}
		doc := renderToString(t, result.Metadata, result.Records, sum)

		// One document heading plus one category heading and the
		// summary heading at level 1.
		assert.Equal(t, 3, countHeadings(doc, 1))
		assert.Equal(t, 1, countHeadings(doc, 2))
		assert.Equal(t, 1, countHeadings(doc, 3))
		assert.Equal(t, 1, countHeadings(doc, 4))
		assert.Equal(t, 2, countHeadings(doc, 5))

		// One table header per group plus the per-category summary table.
		assert.Equal(t, 2, strings.Count(doc, "| Код | Наименование |"))

		assert.Contains(t, doc, "**Утверждающий акт:** 421/пр")
		assert.Contains(t, doc, "- **Прочитано ресурсов в XML:** 3")
		assert.Contains(t, doc, "- **Создано записей в документе:** 2")
		assert.Contains(t, doc, "- **Пропущено (ошибки):** 1")
	})

	t.Run("document is valid markdown", func(t *testing.T) {
		result, err := NewParser().Parse(ctx, []byte(sampleCatalog))
		require.NoError(t, err)

		doc := renderToString(t, result.Metadata, result.Records, catalog.Summary{})

		var html bytes.Buffer
		assert.NoError(t, goldmark.Convert([]byte(doc), &html))
		assert.NotZero(t, html.Len())
	})
}

func TestRenderParentChangeForcesGroupReemission(t *testing.T) {
	rec := func(section, group, code string) catalog.ResourceRecord {
		return catalog.ResourceRecord{
			CategoryType: "Материалы",
			BookCode:     "01", BookName: "Книга",
			PartCode: "01.1", PartName: "Часть",
			SectionCode: section, SectionName: "Раздел",
			GroupCode: group, GroupName: "Группа",
			Code: code, Name: "Ресурс", MeasureUnit: "т", Cost: "1",
		}
	}

	// Identical group code under two different sections: the section
	// change must reset the group tracker and re-emit heading and table.
	records := []catalog.ResourceRecord{
		rec("01.1.01", "G", "a"),
		rec("01.1.02", "G", "b"),
	}

	doc := renderToString(t, catalog.Metadata{}, records, catalog.Summary{})

	assert.Equal(t, 2, countHeadings(doc, 4))
	assert.Equal(t, 2, countHeadings(doc, 5))
	assert.Equal(t, 2, strings.Count(doc, "| Код | Наименование |"))
}

func TestRenderEscapesPipes(t *testing.T) {
	records := []catalog.ResourceRecord{{
		CategoryType: "Материалы",
		Code:         "x",
		Name:         "A|B",
		MeasureUnit:  "шт",
		Cost:         "1",
	}}

	doc := renderToString(t, catalog.Metadata{}, records, catalog.Summary{})

	assert.Contains(t, doc, `A\|B`)

	for _, line := range strings.Split(doc, "\n") {
		if strings.Contains(line, `A\|B`) {
			// The escaped pipe must not add a table column.
			assert.Equal(t, 6, strings.Count(line, " | ")+2)
		}
	}
}

func TestRenderEmptyRecordSet(t *testing.T) {
	doc := renderToString(t, catalog.Metadata{}, nil, catalog.Summary{Candidates: 5, Errors: 5})

	assert.Contains(t, doc, "- **Прочитано ресурсов в XML:** 5")
	assert.Contains(t, doc, "- **Создано записей в документе:** 0")
}
