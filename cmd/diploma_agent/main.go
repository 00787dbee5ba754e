// Package main provides the diploma_agent CLI: diploma text extraction, the
// repository gallery and the HTTP API server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/diploma-scanner/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configFile string
	verbose    bool
	logFile    string
	logger     = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "diploma_agent",
	Short: "Diploma text extraction and repository gallery",
	Long: "diploma_agent turns the text of a bilingual (French/English) diploma into a structured record, " +
		"lists a GitHub user's repositories as a paged gallery, and serves both over HTTP.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		build := logging.New
		if logFile != "" {
			build = func(verbose bool) (*zap.Logger, error) {
				return logging.NewWithOutput(verbose, logFile)
			}
		}
		l, err := build(verbose)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print summaries and debug logs to stderr")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write JSON logs to this file instead of stderr")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
