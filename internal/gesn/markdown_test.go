package gesn

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

func sampleWork() catalog.GesnWorkRecord {
	return catalog.GesnWorkRecord{
		SbornikCode: "01", SbornikName: "Земляные работы",
		OtdelCode: "1", OtdelName: "Механизированные работы",
		TableCode: "01-01-001", TableName: "Разработка грунта",
		NameGroupBegin: "Разработка грунта",
		Code:           "01-01-001-01",
		EndName:        "экскаватором",
		MeasureUnit:    "1000 м3 грунта",
		FullName:       "Разработка грунта экскаватором",
		ContentItems:   []string{"Разработка грунта.", "Очистка ковша."},
		Resources: []catalog.GesnWorkResource{
			{Code: "91.01.01-035", EndName: "Экскаваторы", Quantity: "8,77", MeasureUnit: "маш.-ч"},
		},
		Nr: "95", Sp: "50",
	}
}

func TestBreadcrumb(t *testing.T) {
	t.Run("skips empty levels", func(t *testing.T) {
		got := Breadcrumb(sampleWork())
		assert.Equal(t,
			`Сборник 01 "Земляные работы" > Отдел 1 "Механизированные работы" > Таблица 01-01-001`,
			got,
		)
	})

	t.Run("empty hierarchy yields empty breadcrumb", func(t *testing.T) {
		assert.Equal(t, "", Breadcrumb(catalog.GesnWorkRecord{Code: "x"}))
	})
}

func TestGesnRender(t *testing.T) {
	ctx := context.Background()

	meta := catalog.GesnMetadata{
		PriceLevel:   "01.01.2022",
		BaseName:     "ФСНБ-2022",
		DecreeName:   "Приказ № 1046/пр",
		CategoryType: "ГЭСН",
	}

	t.Run("per-work sections and summary", func(t *testing.T) {
		records := []catalog.GesnWorkRecord{sampleWork()}
		sum := catalog.Summary{Candidates: 2, Created: 1, Errors: 1}

		var buf bytes.Buffer
		err := NewRenderer().Render(ctx, &buf, meta, records, sum)
		require.NoError(t, err)
		doc := buf.String()

		assert.Contains(t, doc, "# "+DefaultTitle)
		assert.Contains(t, doc, "**База:** ФСНБ-2022")
		assert.Contains(t, doc, "## ГЭСН 01-01-001-01 — Разработка грунта экскаватором")
		assert.Contains(t, doc, "**Код нормы:** 01-01-001-01")
		assert.Contains(t, doc, `**Расположение:** Сборник 01 "Земляные работы"`)
		assert.Contains(t, doc, "**Нр:** 95 | **Сп:** 50")
		assert.Contains(t, doc, "- Разработка грунта.")
		assert.Contains(t, doc, "### Ресурсы")
		assert.Contains(t, doc, "| 91.01.01-035 | Экскаваторы | маш.-ч | 8,77 |")
		assert.Contains(t, doc, "# Сводная информация по конвертации")
		assert.Contains(t, doc, "| Пропущено с ошибками | 1 |")
		assert.Contains(t, doc, "| Общее количество ресурсов | 1 |")
		assert.Contains(t, doc, "| Общее количество пунктов состава работ | 2 |")
	})

	t.Run("custom title", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewRenderer(WithTitle("ГЭСНм: Монтаж оборудования"))
		err := r.Render(ctx, &buf, meta, nil, catalog.Summary{})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "# ГЭСНм: Монтаж оборудования")
	})

	t.Run("optional blocks are omitted", func(t *testing.T) {
		w := sampleWork()
		w.ContentItems = nil
		w.Resources = nil
		w.Nr, w.Sp = "", ""

		var buf bytes.Buffer
		err := NewRenderer().Render(ctx, &buf, meta, []catalog.GesnWorkRecord{w}, catalog.Summary{})
		require.NoError(t, err)
		doc := buf.String()

		assert.NotContains(t, doc, "### Состав работ")
		assert.NotContains(t, doc, "### Ресурсы")
		assert.NotContains(t, doc, "**Нр:**")
	})

	t.Run("pipes are escaped in cells", func(t *testing.T) {
		w := sampleWork()
		w.Resources[0].EndName = "Экскаваторы|краны"

		var buf bytes.Buffer
		err := NewRenderer().Render(ctx, &buf, meta, []catalog.GesnWorkRecord{w}, catalog.Summary{})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), `Экскаваторы\|краны`)
	})

	t.Run("document is valid markdown", func(t *testing.T) {
		var buf bytes.Buffer
		err := NewRenderer().Render(ctx, &buf, meta, []catalog.GesnWorkRecord{sampleWork()}, catalog.Summary{})
		require.NoError(t, err)

		var html bytes.Buffer
		assert.NoError(t, goldmark.Convert(buf.Bytes(), &html))
		assert.NotZero(t, html.Len())
	})

	t.Run("separator after every work", func(t *testing.T) {
		records := []catalog.GesnWorkRecord{sampleWork(), sampleWork()}
		var buf bytes.Buffer
		err := NewRenderer().Render(ctx, &buf, meta, records, catalog.Summary{})
		require.NoError(t, err)

		// One after the metadata block, one after each work.
		assert.Equal(t, 3, strings.Count(buf.String(), "---\n"))
	})
}
