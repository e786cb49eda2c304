package inspect

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/smetadoc/fsnbconv/internal/config"
	"github.com/smetadoc/fsnbconv/internal/fsbc"
	"github.com/smetadoc/fsnbconv/internal/gesn"
)

// report is what inspect prints: the catalog-level attributes plus the
// parse counters, without writing any document.
type report struct {
	Metadata   any `yaml:"metadata"`
	Candidates int `yaml:"candidates"`
	Created    int `yaml:"created"`
	Errors     int `yaml:"errors"`
}

func NewCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Parses a catalog and prints its metadata and counters as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			c, err := config.NewFromFile(configPath)
			if err != nil {
				return err
			}

			logger, err := config.NewLogger(c)
			if err != nil {
				return err
			}
			defer logger.Sync()
			l := logger.Named("inspect")

			var r report
			switch c.Converter.Catalog {
			case "fsbc":
				result, err := fsbc.NewParser(fsbc.WithLogger(l)).ParseFile(ctx, c.Converter.Source)
				if err != nil {
					return err
				}
				r = report{
					Metadata:   result.Metadata,
					Candidates: result.Candidates,
					Created:    len(result.Records),
					Errors:     result.Errors,
				}
			case "gesn":
				result, err := gesn.NewParser(gesn.WithLogger(l)).ParseFile(ctx, c.Converter.Source)
				if err != nil {
					return err
				}
				r = report{
					Metadata:   result.Metadata,
					Candidates: result.Candidates,
					Created:    len(result.Records),
					Errors:     result.Errors,
				}
			default:
				return fmt.Errorf("unknown catalog type: %s", c.Converter.Catalog)
			}

			bs, err := yaml.Marshal(r)
			if err != nil {
				return err
			}

			fmt.Println(string(bs))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	cmd.MarkFlagRequired("config")

	return cmd
}
