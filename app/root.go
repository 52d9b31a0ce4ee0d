// Package app implements the command line interface of the site.
package app

import (
	"github.com/spf13/cobra"

	"github.com/gywan/gywan-site/internal/config"
	"github.com/gywan/gywan-site/internal/logger"
)

var configPath string // directory holding main.toml

var rootCmd = &cobra.Command{
	Use:   "gywan-site",
	Short: "GYWAN site is the website and donation service of the Girls and Young Women Advancement Network",
	Long: `GYWAN site serves the public website of the Girls and Young Women Advancement Network:
events, success stories, blog, resource library, contact and newsletter forms,
card donations through Stripe and offline pledges, plus a small admin dashboard.`,
	Args:          cobra.OnlyValidArgs,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./etc/", "directory containing main.toml")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the configuration and initializes logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.ReadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if err := logger.Init(cfg.Log); err != nil {
		return nil, err
	}

	return &cfg, nil
}
