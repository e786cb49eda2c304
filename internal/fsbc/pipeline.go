package fsbc

import (
	"bytes"
	"context"
	"io"

	"github.com/smetadoc/fsnbconv/internal/catalog"
)

type PipelineOption func(*Pipeline)

func WithParser(parser *Parser) PipelineOption {
	return func(p *Pipeline) {
		p.parser = parser
	}
}

func WithRenderer(renderer *Renderer) PipelineOption {
	return func(p *Pipeline) {
		p.renderer = renderer
	}
}

// Pipeline couples the ФСБЦ parser and renderer into a single
// source-bytes-to-document conversion.
type Pipeline struct {
	parser   *Parser
	renderer *Renderer
}

func NewPipeline(opts ...PipelineOption) *Pipeline {
	p := &Pipeline{}
	for _, opt := range opts {
		opt(p)
	}
	if p.parser == nil {
		p.parser = NewParser()
	}
	if p.renderer == nil {
		p.renderer = NewRenderer()
	}
	return p
}

func (p *Pipeline) Name() string {
	return "fsbc"
}

// Convert parses raw catalog bytes and renders the full Markdown
// document into memory, so a failed conversion never produces output.
func (p *Pipeline) Convert(ctx context.Context, raw []byte) (io.Reader, catalog.Summary, error) {
	result, err := p.parser.Parse(ctx, raw)
	if err != nil {
		return nil, catalog.Summary{}, err
	}

	sum := catalog.Summary{
		Candidates: result.Candidates,
		Created:    len(result.Records),
		Errors:     result.Errors,
	}

	var buf bytes.Buffer
	if err := p.renderer.Render(ctx, &buf, result.Metadata, result.Records, sum); err != nil {
		return nil, catalog.Summary{}, err
	}
	return &buf, sum, nil
}
