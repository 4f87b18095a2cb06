package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inglebright-earth/my-dash-a/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "lucas-dash",
	Short: "LUCAS survey point classification pipeline",
	Long:  "Classifies Eurostat LUCAS survey points into land-use classes, accumulates per-country yearly summaries, and serves a dashboard with map and chart views.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
