// Package cmd implements the overheid command-line interface.
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/overheid-search/cmd/common"
	"github.com/jonesrussell/overheid-search/cmd/compile"
	"github.com/jonesrussell/overheid-search/cmd/search"
	"github.com/jonesrussell/overheid-search/cmd/serve"
)

// rootCmd represents the root command for the overheid CLI.
var rootCmd = &cobra.Command{
	Use:           "overheid",
	Short:         "Search Dutch government publications",
	Long:          `Search gateway for the overheid.nl SRU 2.0 repository.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().String(common.FlagConfig, "", "config file (default is ./config.yml or $CONFIG_PATH)")
	rootCmd.PersistentFlags().Bool(common.FlagDebug, false, "enable debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := common.NewCommandDeps(cmd)
			if err != nil {
				return err
			}
			cmd.Printf("overheid version %s\n", deps.Config.Service.Version)
			return nil
		},
	})

	rootCmd.AddCommand(serve.Command())
	rootCmd.AddCommand(compile.Command())
	rootCmd.AddCommand(search.Command())
}
