// Package cmd wires the checkride CLI.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/akozyrev/checkride/internal/config"
	"github.com/akozyrev/checkride/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "checkride",
	Short: "Cockpit panorama trainer",
	Long:  "Checkride — terminal trainer for locating cockpit instruments on panorama images, checklist by checklist.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CHECKRIDE_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to the config directory")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error")

	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves settings with flag > env > file > default precedence.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configDir, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, err
	}
	if lv, _ := cmd.Flags().GetString("log-level"); lv != "" {
		cfg.LogLevel = lv
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	return cfg, nil
}

// resolveDBPath returns the database path from config/flags, falling back
// to the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return "", err
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
