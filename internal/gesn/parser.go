package gesn

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/smetadoc/fsnbconv/internal/catalog"
	"github.com/smetadoc/fsnbconv/internal/progress"
)

// sectionTypes maps the source container type labels onto the five
// hierarchy levels of a labor-norm catalog.
var sectionTypes = map[string]string{
	"Сборник":   "sbornik",
	"Отдел":     "otdel",
	"Раздел":    "razdel",
	"Подраздел": "podrazdel",
	"Таблица":   "table",
}

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// Result holds everything one ГЭСН parse produced. Candidates is the
// exact count of Work leaf events seen.
type Result struct {
	Metadata   catalog.GesnMetadata
	Records    []catalog.GesnWorkRecord
	Candidates int
	Errors     int
}

type ParserOption func(*Parser)

func WithLogger(logger *zap.Logger) ParserOption {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

func WithProgress(fn progress.Func) ParserOption {
	return func(p *Parser) {
		p.progress = fn
	}
}

// Parser is a streaming parser for the ГЭСН and ГЭСНм labor-norm
// catalogs. It holds no state between calls and is safe to reuse.
type Parser struct {
	logger           *zap.Logger
	progress         progress.Func
	progressInterval int
}

func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{
		logger:           zap.NewNop(),
		progressInterval: 200,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseFile reads and parses the catalog at path.
func (p *Parser) ParseFile(ctx context.Context, path string) (*Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return p.Parse(ctx, raw)
}

// workLeaf accumulates the pieces of the Work element currently open.
type workLeaf struct {
	code    string
	endName string
	unit    string

	contentItems []string
	resources    []catalog.GesnWorkResource
	nr, sp       string
	nrSpSeen     bool

	inContent   bool
	inResources bool
	inNrSp      bool
}

// Parse consumes a full catalog document. A failure while extracting a
// single Work is counted and skipped, never fatal; only an XML
// well-formedness or I/O failure aborts the parse.
func (p *Parser) Parse(ctx context.Context, raw []byte) (*Result, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)

	// Progress denominator only, the returned counters are exact.
	estimate := bytes.Count(raw, []byte("<Work "))
	if estimate == 0 {
		estimate = 1
	}

	var (
		res   Result
		stack catalog.SectionStack

		// Valid only between the NameGroup open and close events,
		// attached to every Work closed in between.
		nameGroupBegin string

		inWork bool
		work   workLeaf
	)

	dec := xml.NewDecoder(bytes.NewReader(raw))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing catalog XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "base":
				res.Metadata.PriceLevel = attrValue(t, "PriceLevel")
				res.Metadata.BaseName = attrValue(t, "BaseName")
			case "ResourceCategory":
				res.Metadata.CategoryType = attrValue(t, "Type")
				res.Metadata.CodePrefix = attrValue(t, "CodePrefix")
			case "Decree":
				res.Metadata.DecreeName = attrValue(t, "Name")
			case "Section":
				stack.Push(catalog.Section{
					Type: attrValue(t, "Type"),
					Code: attrValue(t, "Code"),
					Name: attrValue(t, "Name"),
				})
			case "NameGroup":
				nameGroupBegin = attrValue(t, "BeginName")
			case "Work":
				inWork = true
				work = workLeaf{
					code:    attrValue(t, "Code"),
					endName: attrValue(t, "EndName"),
					unit:    attrValue(t, "MeasureUnit"),
				}
			case "Content":
				if inWork {
					work.inContent = true
				}
			case "Item":
				if inWork && work.inContent {
					if text := attrValue(t, "Text"); text != "" {
						work.contentItems = append(work.contentItems, text)
					}
				}
			case "Resources":
				if inWork {
					work.inResources = true
				}
			case "Resource":
				if inWork && work.inResources {
					work.resources = append(work.resources, catalog.GesnWorkResource{
						Code:        attrValue(t, "Code"),
						EndName:     attrValue(t, "EndName"),
						Quantity:    attrValue(t, "Quantity"),
						MeasureUnit: attrValue(t, "MeasureUnit"),
					})
				}
			case "NrSp":
				if inWork {
					work.inNrSp = true
				}
			case "ReasonItem":
				// First pair wins.
				if inWork && work.inNrSp && !work.nrSpSeen {
					work.nrSpSeen = true
					work.nr = attrValue(t, "Nr")
					work.sp = attrValue(t, "Sp")
				}
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "Content":
				work.inContent = false
			case "Resources":
				work.inResources = false
			case "NrSp":
				work.inNrSp = false
			case "Work":
				inWork = false
				res.Candidates++
				if res.Candidates%p.progressInterval == 0 {
					progress.Emit(p.progress, res.Candidates, estimate)
				}
				rec, err := buildWork(work, nameGroupBegin, &stack)
				if err != nil {
					res.Errors++
					p.logger.Debug("dropping work",
						zap.String("code", work.code),
						zap.Error(err),
					)
					continue
				}
				res.Records = append(res.Records, rec)
			case "NameGroup":
				nameGroupBegin = ""
			case "Section":
				stack.Pop()
			}
		}
	}

	progress.Done(p.progress)
	return &res, nil
}

func buildWork(work workLeaf, nameGroupBegin string, stack *catalog.SectionStack) (catalog.GesnWorkRecord, error) {
	levels := make(map[string]catalog.Section, len(sectionTypes))
	for label, key := range sectionTypes {
		if sec, ok := stack.Current(label); ok {
			levels[key] = sec
		}
	}

	rec := catalog.GesnWorkRecord{
		SbornikCode:   levels["sbornik"].Code,
		SbornikName:   levels["sbornik"].Name,
		OtdelCode:     levels["otdel"].Code,
		OtdelName:     levels["otdel"].Name,
		RazdelCode:    levels["razdel"].Code,
		RazdelName:    levels["razdel"].Name,
		PodrazdelCode: levels["podrazdel"].Code,
		PodrazdelName: levels["podrazdel"].Name,
		TableCode:     levels["table"].Code,
		TableName:     levels["table"].Name,

		NameGroupBegin: nameGroupBegin,
		Code:           work.code,
		EndName:        work.endName,
		MeasureUnit:    work.unit,
		FullName:       catalog.FullName(nameGroupBegin, work.endName),

		ContentItems: work.contentItems,
		Resources:    work.resources,
		Nr:           work.nr,
		Sp:           work.sp,
	}

	if err := rec.Validate(); err != nil {
		return catalog.GesnWorkRecord{}, err
	}
	return rec, nil
}

func attrValue(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
