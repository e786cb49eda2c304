package convert

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/smetadoc/fsnbconv/internal/config"
)

func newGesnCommand() *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "gesn",
		Short: "Converts a ГЭСН/ГЭСНм labor-norm catalog to Markdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			c, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			c.Converter.Catalog = "gesn"
			if title != "" {
				c.Converter.Title = title
			}

			logger, err := config.NewLogger(c)
			if err != nil {
				return err
			}
			defer logger.Sync()

			cid := uuid.Must(uuid.NewUUID())
			l := logger.Named("convert.gesn").With(
				zap.String("conversion_id", cid.String()),
			)
			l.Info("starting conversion")

			conv, err := config.InitializeConverter(c, l, func(percent int) {
				l.Debug("progress", zap.Int("percent", percent))
			})
			if err != nil {
				return err
			}

			sum, err := conv.Run(ctx, c.Converter.Source, c.Converter.Output)
			if err != nil {
				return err
			}

			l.Info("summary", zap.Any("summary", sum))
			return nil
		},
	}

	commonFlags(cmd)
	cmd.Flags().StringVarP(&title, "title", "t", "", "Document title, overrides the config")
	return cmd
}
