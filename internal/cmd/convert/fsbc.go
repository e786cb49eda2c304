package convert

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/smetadoc/fsnbconv/internal/config"
)

func newFsbcCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fsbc",
		Short: "Converts a ФСБЦ resource-price catalog to Markdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			c, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			c.Converter.Catalog = "fsbc"

			logger, err := config.NewLogger(c)
			if err != nil {
				return err
			}
			defer logger.Sync()

			cid := uuid.Must(uuid.NewUUID())
			l := logger.Named("convert.fsbc").With(
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
	return cmd
}
