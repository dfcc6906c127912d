// Package main provides the CLI entry point for walink.
package main

import (
	"fmt"
	"os"

	"github.com/contactforge/walink/pkg/walink"
	"github.com/contactforge/walink/pkg/walink/table"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	dir          string
	sourceColumn string
	targetColumn string
	countryCode  string
	logLevel     string
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "walink",
		Short: "Rewrite contact exports with WhatsApp deep links",
		Long: `walink scans a directory for contact-export tables (CSV or XLSX),
normalizes the phone column of every row, and writes the matching
https://wa.me/ link into the website column, rewriting each file in place.`,
		Args: cobra.NoArgs,
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory to scan for tables")
	rootCmd.Flags().StringVar(&sourceColumn, "source-column", envOr("WALINK_SOURCE_COLUMN", walink.DefaultSourceColumn), "Column holding raw phone text")
	rootCmd.Flags().StringVar(&targetColumn, "target-column", envOr("WALINK_TARGET_COLUMN", walink.DefaultTargetColumn), "Column receiving the generated link")
	rootCmd.Flags().StringVar(&countryCode, "country-code", envOr("WALINK_COUNTRY_CODE", walink.DefaultCountryCode), "International prefix for generated links")
	rootCmd.Flags().StringVar(&logLevel, "log-level", envOr("WALINK_LOG_LEVEL", "info"), "Log level: debug, info, warn, error")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("directory not found: %s", dir)
	}

	level, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", logLevel)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	opts := walink.Options{
		SourceColumn: sourceColumn,
		TargetColumn: targetColumn,
		CountryCode:  countryCode,
	}
	return walink.NewProcessor(opts, logger).Run(table.DirLister(dir))
}

// envOr returns the environment value for key, or fallback when unset.
// Called after godotenv.Load so .env values seed flag defaults.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
