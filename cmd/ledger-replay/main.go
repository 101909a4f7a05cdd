package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/iho/ledgerreplay/internal/adapter/csvio"
	"github.com/iho/ledgerreplay/internal/infrastructure/config"
	"github.com/iho/ledgerreplay/internal/infrastructure/idgen"
	"github.com/iho/ledgerreplay/internal/infrastructure/logger"
	"github.com/iho/ledgerreplay/internal/infrastructure/metrics"
	"github.com/iho/ledgerreplay/internal/usecase"
)

type options struct {
	envFile      string
	logLevel     string
	logFormat    string
	lockedPolicy string
	metricsFile  string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
	stop()
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "ledger-replay <path>",
		Short: "Replay a ledger entry file into client account balances",
		Long: `Reads deposits, withdrawals, disputes, resolves and chargebacks from a CSV file
(columns type,client,tx,amount), applies them in order and prints the resulting
client accounts (client,available,held,total,locked) to stdout.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args[0])
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&opts.envFile, "env-file", "", "Load environment variables from a dotenv file")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log format: json, console (overrides LOG_FORMAT)")
	flags.StringVar(&opts.lockedPolicy, "locked-policy", "", "What to do with entries for locked accounts: abort, skip (overrides LOCKED_ACCOUNT_POLICY)")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the run (overrides METRICS_FILE)")

	return rootCmd
}

func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.LoadFile(opts.envFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = opts.logFormat
	}
	if flags.Changed("locked-policy") {
		cfg.LockedPolicy = opts.lockedPolicy
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = opts.metricsFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cmd *cobra.Command, opts *options, path string) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cmd.ErrOrStderr(),
	})

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	replayUC := usecase.NewReplayUseCase(
		idgen.NewULIDGenerator(),
		log.With().Str("source", path).Logger(),
		m,
		usecase.LockedPolicy(cfg.LockedPolicy),
	)

	_, runErr := replayUC.Run(
		cmd.Context(),
		csvio.NewEntryReader(file),
		csvio.NewAccountWriter(cmd.OutOrStdout()),
	)

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile, registry); err != nil {
			log.Error().Err(err).Str("path", cfg.MetricsFile).Msg("failed to write metrics")
			if runErr == nil {
				return fmt.Errorf("write metrics: %w", err)
			}
		}
	}

	return runErr
}
