package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"adam/catalog"
	"adam/config"
	"adam/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries the state shared by all subcommands
type app struct {
	settings config.Settings
	logger   *zap.Logger

	// Global flags
	verbose   bool
	apiURL    string
	dataDir   string
	dataURL   string
	s3Bucket  string
	s3Prefix  string
	redisAddr string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "adam",
		Short: "Browse and filter the ADAM language-learning article catalog",
		Long: `adam browses a catalog of language-learning articles.

Articles are grouped by language and can be filtered by topic, ILR
level and ILR range. Records come from a local data directory, a static
file host, an S3 bucket, or a running catalog server (--api-url).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.settings = a.applyFlags(cmd, config.Load())

			// The browser owns the terminal and logs to a file instead
			if cmd.Name() == "browse" {
				return nil
			}
			logger, err := logging.New(a.verbose || a.settings.Debug)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringVar(&a.apiURL, "api-url", "", "Catalog server URL; overrides the other sources")
	flags.StringVar(&a.dataDir, "data-dir", "", "Local catalog directory (or set ADAM_DATA_DIR)")
	flags.StringVar(&a.dataURL, "data-url", "", "Static catalog host URL (or set ADAM_DATA_URL)")
	flags.StringVar(&a.s3Bucket, "s3-bucket", "", "Catalog S3 bucket (or set S3_BUCKET)")
	flags.StringVar(&a.s3Prefix, "s3-prefix", "", "Key prefix inside the S3 bucket (or set S3_PREFIX)")
	flags.StringVar(&a.redisAddr, "redis-addr", "", "Redis address for the catalog cache (or set REDIS_ADDR)")

	rootCmd.AddCommand(newLanguagesCmd(a))
	rootCmd.AddCommand(newSearchCmd(a))
	rootCmd.AddCommand(newBrowseCmd(a))
	rootCmd.AddCommand(newNotifyCmd(a))
	return rootCmd
}

// applyFlags overrides environment settings with explicitly set flags
func (a *app) applyFlags(cmd *cobra.Command, s config.Settings) config.Settings {
	changed := cmd.Flags().Changed
	if changed("data-dir") {
		s.DataDir = a.dataDir
	}
	if changed("data-url") {
		s.DataURL = a.dataURL
	}
	if changed("s3-bucket") {
		s.S3Bucket = a.s3Bucket
	}
	if changed("s3-prefix") {
		s.S3Prefix = a.s3Prefix
	}
	if changed("redis-addr") {
		s.RedisAddr = a.redisAddr
	}
	return s
}

// openLoader returns the catalog loader selected by the flags and a
// function releasing it
func (a *app) openLoader(ctx context.Context, logger *zap.Logger) (catalog.Loader, func() error, error) {
	if a.apiURL != "" {
		return catalog.NewAPIClient(a.apiURL), func() error { return nil }, nil
	}
	src, err := catalog.NewSource(ctx, a.settings, logger)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("Catalog source ready", zap.String("source", src.Name), zap.Bool("cached", src.Cache != nil))
	return src, src.Close, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
