package convert

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/smetadoc/fsnbconv/internal/config"
)

func NewCommand() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "convert",
		Short: "Converts a catalog XML file into a Markdown document",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newFsbcCommand())
	cmd.AddCommand(newGesnCommand())
	return cmd
}

func commonFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "", "Path to config file")
	cmd.MarkFlagRequired("config")
	cmd.Flags().StringP("source", "s", "", "Catalog XML file, overrides the config")
	cmd.Flags().StringP("output", "o", "", "Output document key, overrides the config")
}

// loadConfig reads the YAML config and applies flag and FSNBCONV_* env
// overrides bound through viper. Binding happens at run time so the
// invoked subcommand's flags win.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	c, err := config.NewFromFile(configPath)
	if err != nil {
		return nil, err
	}

	viper.BindPFlag("source", cmd.Flags().Lookup("source"))
	viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	viper.AutomaticEnv()
	viper.SetEnvPrefix("FSNBCONV")

	if v := viper.GetString("source"); v != "" {
		c.Converter.Source = v
	}
	if v := viper.GetString("output"); v != "" {
		c.Converter.Output = v
	}

	return c, nil
}
