package config

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/smetadoc/fsnbconv/internal"
	"github.com/smetadoc/fsnbconv/internal/converter"
	"github.com/smetadoc/fsnbconv/internal/fsbc"
	"github.com/smetadoc/fsnbconv/internal/gesn"
	"github.com/smetadoc/fsnbconv/internal/local"
	"github.com/smetadoc/fsnbconv/internal/progress"
	"github.com/smetadoc/fsnbconv/internal/s3"
)

// NewLogger builds a development logger at the configured level.
func NewLogger(c *Config) (*zap.Logger, error) {
	zc := zap.NewDevelopmentConfig()
	if c.Global.Logger.Level != "" {
		level, err := zap.ParseAtomicLevel(c.Global.Logger.Level)
		if err != nil {
			return nil, fmt.Errorf("parsing logger level: %w", err)
		}
		zc.Level = level
	}
	return zc.Build()
}

// InitializeRepository builds the configured document destination.
func InitializeRepository(c *Config, logger *zap.Logger) (internal.Repository, error) {
	switch c.Converter.Repository.Type {
	case "", "local":
		return local.New(
			c.Converter.Repository.LocalConfig.Path,
			local.WithLogger(logger),
		), nil
	case "s3":
		return s3.New(
			s3.WithLogger(logger),
			s3.WithRegion(c.Converter.Repository.S3Config.Region),
			s3.WithBucket(c.Converter.Repository.S3Config.Bucket),
			s3.WithPrefix(c.Converter.Repository.S3Config.Prefix),
			s3.WithEndpoint(c.Converter.Repository.S3Config.Endpoint),
			s3.WithForcePathStyle(c.Converter.Repository.S3Config.ForcePathStyle),
		), nil
	default:
		return nil, fmt.Errorf("unknown repository type: %s", c.Converter.Repository.Type)
	}
}

// InitializePipeline builds the configured catalog pipeline.
func InitializePipeline(c *Config, logger *zap.Logger, fn progress.Func) (converter.Pipeline, error) {
	switch c.Converter.Catalog {
	case "fsbc":
		return fsbc.NewPipeline(
			fsbc.WithParser(fsbc.NewParser(
				fsbc.WithLogger(logger),
				fsbc.WithProgress(fn),
			)),
			fsbc.WithRenderer(fsbc.NewRenderer(
				fsbc.WithRendererLogger(logger),
				fsbc.WithRendererProgress(fn),
			)),
		), nil
	case "gesn":
		return gesn.NewPipeline(
			gesn.WithParser(gesn.NewParser(
				gesn.WithLogger(logger),
				gesn.WithProgress(fn),
			)),
			gesn.WithRenderer(gesn.NewRenderer(
				gesn.WithRendererLogger(logger),
				gesn.WithRendererProgress(fn),
				gesn.WithTitle(c.Converter.Title),
			)),
		), nil
	default:
		return nil, fmt.Errorf("unknown catalog type: %s", c.Converter.Catalog)
	}
}

// InitializeConverter wires pipeline, repository and logger into a
// ready-to-run converter.
func InitializeConverter(c *Config, logger *zap.Logger, fn progress.Func) (*converter.Converter, error) {
	pipeline, err := InitializePipeline(c, logger, fn)
	if err != nil {
		return nil, err
	}

	repository, err := InitializeRepository(c, logger)
	if err != nil {
		return nil, err
	}

	return converter.New(
		converter.WithLogger(logger),
		converter.WithPipeline(pipeline),
		converter.WithRepository(repository),
	), nil
}
