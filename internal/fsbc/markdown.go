package fsbc

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/smetadoc/fsnbconv/internal/catalog"
	"github.com/smetadoc/fsnbconv/internal/markdown"
	"github.com/smetadoc/fsnbconv/internal/progress"
)

type RendererOption func(*Renderer)

func WithRendererLogger(logger *zap.Logger) RendererOption {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func WithRendererProgress(fn progress.Func) RendererOption {
	return func(r *Renderer) {
		r.progress = fn
	}
}

// Renderer writes a parsed ФСБЦ catalog as one Markdown document with
// nested headings per hierarchy level and a table per resource group.
type Renderer struct {
	logger           *zap.Logger
	progress         progress.Func
	progressInterval int
}

func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		logger:           zap.NewNop(),
		progressInterval: 1000,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// tracker remembers the last emitted key for one hierarchy level. The
// zero value is distinct from any real key, including the empty string.
type tracker struct {
	set bool
	val string
}

func (t *tracker) changed(val string) bool {
	if t.set && t.val == val {
		return false
	}
	t.set = true
	t.val = val
	return true
}

func (t *tracker) reset() {
	t.set = false
	t.val = ""
}

// Render emits the document for records in their given order. Records
// are not re-sorted: source document order is the grouping key, records
// sharing a group are contiguous in a well-formed catalog.
func (r *Renderer) Render(ctx context.Context, w io.Writer, meta catalog.Metadata, records []catalog.ResourceRecord, sum catalog.Summary) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# Федеральный сборник базовых цен на материалы и оборудование\n\n")
	fmt.Fprintf(bw, "**Утверждающий акт:** %s  \n", meta.ApprovingActNumber)
	fmt.Fprintf(bw, "**Дата утверждения:** %s\n\n", meta.ApprovingActDate)
	fmt.Fprintf(bw, "---\n\n")

	var curCat, curBook, curPart, curSection, curGroup tracker

	for i, rec := range records {
		if curCat.changed(rec.CategoryType) {
			fmt.Fprintf(bw, "# %s\n\n", rec.CategoryType)
			curBook.reset()
			curPart.reset()
			curSection.reset()
			curGroup.reset()
		}
		if curBook.changed(rec.BookCode) {
			fmt.Fprintf(bw, "## %s. %s\n\n", rec.BookCode, rec.BookName)
			curPart.reset()
			curSection.reset()
			curGroup.reset()
		}
		if curPart.changed(rec.PartCode) {
			fmt.Fprintf(bw, "### %s. %s\n\n", rec.PartCode, rec.PartName)
			curSection.reset()
			curGroup.reset()
		}
		if curSection.changed(rec.SectionCode) {
			fmt.Fprintf(bw, "#### %s. %s\n\n", rec.SectionCode, rec.SectionName)
			curGroup.reset()
		}
		if curGroup.changed(rec.GroupCode) {
			fmt.Fprintf(bw, "##### %s. %s\n\n", rec.GroupCode, rec.GroupName)
			fmt.Fprintf(bw, "| Код | Наименование | Ед. изм. | Стоимость | Опт. стоимость |\n")
			fmt.Fprintf(bw, "|-----|-------------|----------|-----------|----------------|\n")
		}

		fmt.Fprintf(bw, "| %s | %s | %s | %s | %s |\n",
			rec.Code,
			markdown.Escape(rec.Name),
			rec.MeasureUnit,
			rec.Cost,
			rec.OptCost,
		)

		if i%r.progressInterval == 0 {
			progress.Emit(r.progress, i, len(records))
		}
	}

	r.writeSummary(bw, records, sum)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	progress.Done(r.progress)
	return nil
}

func (r *Renderer) writeSummary(w io.Writer, records []catalog.ResourceRecord, sum catalog.Summary) {
	// Per-category counts in first-seen order.
	catCounts := make(map[string]int)
	var catOrder []string
	bookCodes := make(map[string]struct{})
	groupCodes := make(map[string]struct{})
	for _, rec := range records {
		if _, ok := catCounts[rec.CategoryType]; !ok {
			catOrder = append(catOrder, rec.CategoryType)
		}
		catCounts[rec.CategoryType]++
		bookCodes[rec.BookCode] = struct{}{}
		groupCodes[rec.GroupCode] = struct{}{}
	}

	fmt.Fprintf(w, "\n---\n\n")
	fmt.Fprintf(w, "# Сводная информация по конвертации\n\n")
	fmt.Fprintf(w, "- **Прочитано ресурсов в XML:** %d\n", sum.Candidates)
	fmt.Fprintf(w, "- **Создано записей в документе:** %d\n", len(records))
	fmt.Fprintf(w, "- **Пропущено (ошибки):** %d\n", sum.Errors)
	fmt.Fprintf(w, "- **Книг (разделов верхнего уровня):** %d\n", len(bookCodes))
	fmt.Fprintf(w, "- **Групп ресурсов:** %d\n\n", len(groupCodes))
	fmt.Fprintf(w, "**По категориям:**\n\n")
	fmt.Fprintf(w, "| Категория | Кол-во ресурсов |\n")
	fmt.Fprintf(w, "|-----------|-----------------|\n")
	for _, cat := range catOrder {
		fmt.Fprintf(w, "| %s | %d |\n", markdown.Escape(cat), catCounts[cat])
	}
	fmt.Fprintf(w, "\n")
}
