package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/framecheck/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "framecheck",
	Short: "Framecheck validates tabular data against typed column schemas",
	Long:  `Framecheck checks that a dataset's columns match a declared schema exactly (names, types, order), optionally coercing the data toward the schema and running registered data-quality checks.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		return logging.New(slog.LevelDebug)
	}
	return logging.New(slog.LevelInfo)
}
