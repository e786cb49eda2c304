package converter

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/smetadoc/fsnbconv/internal"
	"github.com/smetadoc/fsnbconv/internal/catalog"
)

// Pipeline turns raw catalog bytes into a rendered document plus the
// counters of the run.
type Pipeline interface {
	Name() string
	Convert(ctx context.Context, raw []byte) (io.Reader, catalog.Summary, error)
}

type Option func(*Converter)

func WithLogger(logger *zap.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithPipeline(pipeline Pipeline) Option {
	return func(c *Converter) {
		c.pipeline = pipeline
	}
}

func WithRepository(repository internal.Repository) Option {
	return func(c *Converter) {
		c.repository = repository
	}
}

// Converter runs one catalog conversion end to end: read the source,
// convert through the pipeline, write the document through the
// repository. Each Run owns its own state; a Converter may be reused
// for independent runs but not concurrently within one run.
type Converter struct {
	logger     *zap.Logger
	pipeline   Pipeline
	repository internal.Repository
}

func New(opts ...Option) *Converter {
	c := &Converter{
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run converts the catalog at sourcePath and stores the document under
// destKey. The returned summary is valid only when err is nil.
func (c *Converter) Run(ctx context.Context, sourcePath, destKey string) (catalog.Summary, error) {
	start := time.Now()

	raw, err := os.ReadFile(sourcePath)
	if err != nil {
		return catalog.Summary{}, fmt.Errorf("reading catalog: %w", err)
	}

	c.logger.Info("converting catalog",
		zap.String("pipeline", c.pipeline.Name()),
		zap.String("source", sourcePath),
		zap.Int("source_bytes", len(raw)),
	)

	doc, sum, err := c.pipeline.Convert(ctx, raw)
	if err != nil {
		return catalog.Summary{}, err
	}

	if err := c.repository.Write(ctx, destKey, doc); err != nil {
		return catalog.Summary{}, fmt.Errorf("storing document: %w", err)
	}

	sum.Source = sourcePath
	sum.StartTime = start
	sum.EndTime = time.Now()
	sum.Completed = true

	c.logger.Info("conversion complete",
		zap.String("dest", destKey),
		zap.Int("candidates", sum.Candidates),
		zap.Int("created", sum.Created),
		zap.Int("errors", sum.Errors),
		zap.Duration("elapsed", sum.EndTime.Sub(sum.StartTime)),
	)

	return sum, nil
}
