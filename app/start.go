package app

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/GoStoreRating/GoStoreRating/internal/config"
	"github.com/GoStoreRating/GoStoreRating/internal/daemon"
	"github.com/GoStoreRating/GoStoreRating/internal/logger"
)

func init() { //nolint: gochecknoinits
	startCmd.Flags().StringVar(&configPath, "config", "./etc/", "Directory holding main.toml")
	startCmd.Flags().BoolVar(&devMode, "dev", false, "Enable dev mode")
	startCmd.Flags().BoolVar(&fastShutDown, "fast-shutdown", false, "Skip the check alive drain on shutdown")

	rootCmd.AddCommand(startCmd)
}

var (
	configPath string // Path to the configuration directory

	cfg          config.Config
	devMode      bool
	fastShutDown bool

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the storerate web service",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			var err error

			if cfg, err = config.ReadConfig(configPath); err != nil {
				return errors.Wrap(err, "failed to read config")
			}

			if devMode {
				cfg.DevMode = true
			}

			if fastShutDown {
				cfg.Webserver.FastShutDown = true
			}

			if err = logger.Init(cfg.Log); err != nil {
				return errors.Wrap(err, "failed to init logger")
			}

			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			d, err := daemon.New(&cfg)
			if err != nil {
				return err
			}

			return d.Start()
		},
	}
)
