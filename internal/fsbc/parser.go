package fsbc

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/smetadoc/fsnbconv/internal/catalog"
	"github.com/smetadoc/fsnbconv/internal/progress"
)

// Source container type labels, as they appear in the catalog.
const (
	typeBook    = "Книга"
	typePart    = "Часть"
	typeSection = "Раздел"
	typeGroup   = "Группа"
)

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// Result holds everything one ФСБЦ parse produced. Candidates is the
// exact count of Resource leaf events seen; Errors counts the leaves
// that were dropped. Candidates == len(Records) + Errors.
type Result struct {
	Metadata   catalog.Metadata
	Records    []catalog.ResourceRecord
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

// Parser is a streaming ФСБЦ catalog parser. It holds no state between
// calls and is safe to reuse for a new source.
type Parser struct {
	logger           *zap.Logger
	progress         progress.Func
	progressInterval int
}

func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{
		logger:           zap.NewNop(),
		progressInterval: 500,
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

// Parse consumes a full catalog document. Record-level problems are
// counted and skipped; an XML well-formedness failure aborts the whole
// parse and no partial result is returned.
func (p *Parser) Parse(ctx context.Context, raw []byte) (*Result, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)

	// Advisory denominator for progress reporting only. The returned
	// candidate count is the exact number of leaf events.
	estimate := bytes.Count(raw, []byte("<Resource "))
	if estimate == 0 {
		estimate = 1
	}

	var (
		res             Result
		stack           catalog.SectionStack
		currentCategory string

		inResource bool
		leaf       resourceLeaf
		textElem   string
		textBuf    strings.Builder
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
			case "ResourceCategory":
				// Categories never nest, a single slot suffices.
				currentCategory = attrValue(t, "Type")
			case "Section":
				stack.Push(catalog.Section{
					Type: attrValue(t, "Type"),
					Code: attrValue(t, "Code"),
					Name: attrValue(t, "Name"),
				})
			case "Resource":
				inResource = true
				leaf = resourceLeaf{
					code: attrValue(t, "Code"),
					name: attrValue(t, "Name"),
					unit: attrValue(t, "MeasureUnit"),
				}
			case "Price":
				// First Price descendant of the open Resource wins.
				if inResource && !leaf.priceFound {
					leaf.priceFound = true
					leaf.cost = attrValue(t, "Cost")
					leaf.optCost = attrValue(t, "OptCost")
				}
			case "ApprovingActNumber", "ApprovingActDate":
				textElem = t.Name.Local
				textBuf.Reset()
			}

		case xml.CharData:
			if textElem != "" {
				textBuf.Write(t)
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "ApprovingActNumber":
				res.Metadata.ApprovingActNumber = textBuf.String()
				textElem = ""
			case "ApprovingActDate":
				res.Metadata.ApprovingActDate = textBuf.String()
				textElem = ""
			case "Resource":
				inResource = false
				res.Candidates++
				if res.Candidates%p.progressInterval == 0 {
					progress.Emit(p.progress, res.Candidates, estimate)
				}
				rec, err := buildRecord(leaf, currentCategory, &stack)
				if err != nil {
					res.Errors++
					p.logger.Debug("dropping resource",
						zap.String("code", leaf.code),
						zap.Error(err),
					)
					continue
				}
				res.Records = append(res.Records, rec)
			case "Section":
				stack.Pop()
			}
		}
	}

	progress.Done(p.progress)
	return &res, nil
}

type resourceLeaf struct {
	code       string
	name       string
	unit       string
	cost       string
	optCost    string
	priceFound bool
}

func buildRecord(leaf resourceLeaf, category string, stack *catalog.SectionStack) (catalog.ResourceRecord, error) {
	if !leaf.priceFound {
		return catalog.ResourceRecord{}, fmt.Errorf("resource %q has no price element", leaf.code)
	}

	book, _ := stack.Current(typeBook)
	part, _ := stack.Current(typePart)
	section, _ := stack.Current(typeSection)
	group, _ := stack.Current(typeGroup)

	rec := catalog.ResourceRecord{
		CategoryType: category,
		BookCode:     book.Code,
		BookName:     book.Name,
		PartCode:     part.Code,
		PartName:     part.Name,
		SectionCode:  section.Code,
		SectionName:  section.Name,
		GroupCode:    group.Code,
		GroupName:    group.Name,
		Code:         leaf.code,
		Name:         leaf.name,
		MeasureUnit:  leaf.unit,
		Cost:         leaf.cost,
		OptCost:      leaf.optCost,
	}

	if err := rec.Validate(); err != nil {
		return catalog.ResourceRecord{}, err
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
