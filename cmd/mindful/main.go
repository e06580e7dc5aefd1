// Package main implements the mindful CLI tool.
package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "mindful",
	Short:         "MindfulTask - one focus at a time, in Eisenhower order",
	SilenceUsage:  true,
	SilenceErrors: false,
}

var (
	rootDataDir string
	rootStore   string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDataDir, "data-dir", "", "Directory holding tasks and emotions (overrides config)")
	rootCmd.PersistentFlags().StringVar(&rootStore, "store", "", "Store backend: file, sqlite, or badger (overrides config)")
}
