// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "storerate",
	Short: "storerate is a small web service to rate stores",
	Long: `storerate lets administrators register stores with a map link and an image,
lets users rate every store once per mobile number and serves the average ratings.`,
	Args:          cobra.OnlyValidArgs,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
