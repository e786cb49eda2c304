package gesn

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/smetadoc/fsnbconv/internal/catalog"
	"github.com/smetadoc/fsnbconv/internal/markdown"
	"github.com/smetadoc/fsnbconv/internal/progress"
)

// DefaultTitle is used when the caller does not name the document.
const DefaultTitle = "ГЭСН: Государственные элементные сметные нормы"

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

func WithTitle(title string) RendererOption {
	return func(r *Renderer) {
		if title != "" {
			r.title = title
		}
	}
}

// Renderer writes a parsed labor-norm catalog as one Markdown document,
// one level-2 section per work with an inline hierarchy breadcrumb.
type Renderer struct {
	logger           *zap.Logger
	progress         progress.Func
	progressInterval int
	title            string
	printer          *message.Printer
}

func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		logger:           zap.NewNop(),
		progressInterval: 500,
		title:            DefaultTitle,
		printer:          message.NewPrinter(language.Russian),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Breadcrumb builds the human-readable location of a work from its
// non-empty hierarchy levels.
func Breadcrumb(w catalog.GesnWorkRecord) string {
	var parts []string
	if w.SbornikCode != "" {
		parts = append(parts, fmt.Sprintf("Сборник %s %q", w.SbornikCode, w.SbornikName))
	}
	if w.OtdelCode != "" {
		parts = append(parts, fmt.Sprintf("Отдел %s %q", w.OtdelCode, w.OtdelName))
	}
	if w.RazdelCode != "" {
		parts = append(parts, fmt.Sprintf("Раздел %s %q", w.RazdelCode, w.RazdelName))
	}
	if w.PodrazdelCode != "" {
		parts = append(parts, fmt.Sprintf("Подраздел %s %q", w.PodrazdelCode, w.PodrazdelName))
	}
	if w.TableCode != "" {
		parts = append(parts, fmt.Sprintf("Таблица %s", w.TableCode))
	}
	return strings.Join(parts, " > ")
}

// Render emits the document for records in their given order.
func (r *Renderer) Render(ctx context.Context, w io.Writer, meta catalog.GesnMetadata, records []catalog.GesnWorkRecord, sum catalog.Summary) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# %s\n\n", r.title)
	fmt.Fprintf(bw, "**База:** %s  \n", meta.BaseName)
	fmt.Fprintf(bw, "**Ценовой уровень:** %s  \n", meta.PriceLevel)
	fmt.Fprintf(bw, "**Основание:** %s  \n", meta.DecreeName)
	fmt.Fprintf(bw, "**Категория:** %s\n\n", meta.CategoryType)
	fmt.Fprintf(bw, "---\n\n")

	totalResources := 0
	totalContentItems := 0

	for i, rec := range records {
		totalResources += len(rec.Resources)
		totalContentItems += len(rec.ContentItems)

		fmt.Fprintf(bw, "## ГЭСН %s — %s\n\n", rec.Code, markdown.Escape(rec.FullName))
		fmt.Fprintf(bw, "**Код нормы:** %s  \n", rec.Code)
		fmt.Fprintf(bw, "**Единица измерения:** %s  \n", rec.MeasureUnit)
		fmt.Fprintf(bw, "**Расположение:** %s  \n", markdown.Escape(Breadcrumb(rec)))
		if rec.Nr != "" || rec.Sp != "" {
			fmt.Fprintf(bw, "**Нр:** %s | **Сп:** %s\n", rec.Nr, rec.Sp)
		}
		fmt.Fprintf(bw, "\n")

		if len(rec.ContentItems) > 0 {
			fmt.Fprintf(bw, "### Состав работ\n\n")
			for _, item := range rec.ContentItems {
				fmt.Fprintf(bw, "- %s\n", markdown.Escape(item))
			}
			fmt.Fprintf(bw, "\n")
		}

		if len(rec.Resources) > 0 {
			fmt.Fprintf(bw, "### Ресурсы\n\n")
			fmt.Fprintf(bw, "| Код ресурса | Наименование | Ед. изм. | Количество |\n")
			fmt.Fprintf(bw, "|---|---|---|---|\n")
			for _, res := range rec.Resources {
				fmt.Fprintf(bw, "| %s | %s | %s | %s |\n",
					res.Code,
					markdown.Escape(res.EndName),
					res.MeasureUnit,
					res.Quantity,
				)
			}
			fmt.Fprintf(bw, "\n")
		}

		fmt.Fprintf(bw, "---\n\n")

		if i%r.progressInterval == 0 {
			progress.Emit(r.progress, i, len(records))
		}
	}

	fmt.Fprintf(bw, "# Сводная информация по конвертации\n\n")
	fmt.Fprintf(bw, "| Параметр | Значение |\n")
	fmt.Fprintf(bw, "|---|---|\n")
	r.printer.Fprintf(bw, "| Всего обработано элементов Work в XML | %d |\n", sum.Candidates)
	r.printer.Fprintf(bw, "| Успешно создано записей в Markdown | %d |\n", len(records))
	r.printer.Fprintf(bw, "| Пропущено с ошибками | %d |\n", sum.Errors)
	r.printer.Fprintf(bw, "| Общее количество ресурсов | %d |\n", totalResources)
	r.printer.Fprintf(bw, "| Общее количество пунктов состава работ | %d |\n", totalContentItems)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	progress.Done(r.progress)
	return nil
}
