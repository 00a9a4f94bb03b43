package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GoStoreRating/GoStoreRating/internal/config"
)

func init() { //nolint: gochecknoinits
	configCmd.Flags().StringVar(&dumpConfigPath, "config", "./etc/", "Directory holding main.toml")
	configCmd.Flags().BoolVar(&dumpJSON, "json", false, "Print the config as JSON")

	rootCmd.AddCommand(configCmd)
}

var (
	dumpConfigPath string
	dumpJSON       bool

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := config.ReadConfig(dumpConfigPath)
			if err != nil {
				return err
			}

			dump := config.DumpConfig
			if dumpJSON {
				dump = config.DumpConfigJSON
			}

			out, err := dump(&c)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)

			return err
		},
	}
)
