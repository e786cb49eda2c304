package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smetadoc/fsnbconv/internal/cmd/convert"
	"github.com/smetadoc/fsnbconv/internal/cmd/inspect"
)

func NewRootCommand() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "fsnbconv",
		Short: "Converts FSNB construction-cost catalogs (ФСБЦ, ГЭСН) to Markdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(convert.NewCommand())
	cmd.AddCommand(inspect.NewCommand())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
