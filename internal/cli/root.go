package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pacectl/pacectl/internal/observability"
	"github.com/pacectl/pacectl/internal/observability/logging"
	otelobs "github.com/pacectl/pacectl/internal/observability/otel"
	"github.com/pacectl/pacectl/internal/observability/receipt"
	"github.com/pacectl/pacectl/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pacectl",
	Short: "Cluster property validation and diagnostics",
	Long: `pacectl validates and inspects Pacemaker-style cluster configuration.
Property changes are checked against agent metadata and live watchdog
state before anything is written.`,
	Version:           version.BuildVersion(),
	PersistentPreRunE: setupObservability,
	PersistentPostRun: teardownObservability,
}

var (
	logFormatFlag    string
	logLevelFlag     string
	logOutputFlag    string
	otelFlag         bool
	otelEndpointFlag string
	otelProtocolFlag string
	otelInsecureFlag bool
	otelSampleFlag   float64
	receiptFlag      string
	receiptModeFlag  string
)

// Closed in teardownObservability after the command finishes.
var (
	activeLogger logging.Logger
	activeOtel   *otelobs.Handle
	activeWriter receipt.Writer
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&logFormatFlag, "log-format", "pretty", "Log format: pretty or jsonl")
	pf.StringVar(&logLevelFlag, "log-level", "info", "Log level: debug, info, warn, or error")
	pf.StringVar(&logOutputFlag, "log-output", "stderr", "Log destination: stderr or a file path")
	pf.BoolVar(&otelFlag, "otel", false, "Enable OpenTelemetry tracing")
	pf.StringVar(&otelEndpointFlag, "otel-endpoint", "", "OTLP endpoint (defaults per protocol)")
	pf.StringVar(&otelProtocolFlag, "otel-protocol", otelobs.ProtocolHTTP, "OTLP protocol: otlphttp or otlpgrpc")
	pf.BoolVar(&otelInsecureFlag, "otel-insecure", false, "Allow insecure OTLP connections")
	pf.Float64Var(&otelSampleFlag, "otel-sample-ratio", 1.0, "Trace sampling ratio (0..1)")
	pf.StringVar(&receiptFlag, "receipt", "", "Write an audit receipt to this path")
	pf.StringVar(&receiptModeFlag, "receipt-mode", "overwrite", "Receipt write mode: overwrite or append")

	rootCmd.AddCommand(GetPropertyCmd())
	rootCmd.AddCommand(GetConstraintCmd())
}

func setupObservability(cmd *cobra.Command, args []string) error {
	ctx := observability.WithOpID(cmd.Context())

	log, err := logging.NewLogger(logging.Config{
		Format: logFormatFlag,
		Level:  logLevelFlag,
		Output: logOutputFlag,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	activeLogger = log
	ctx = logging.WithLogger(ctx, log)

	if otelFlag {
		cfg := otelobs.DefaultConfig()
		cfg.Enabled = true
		cfg.Endpoint = otelEndpointFlag
		cfg.Protocol = otelProtocolFlag
		cfg.Insecure = otelInsecureFlag
		cfg.SampleRatio = otelSampleFlag

		handle, initErr := otelobs.Init(ctx, cfg)
		if initErr != nil {
			return fmt.Errorf("failed to initialize tracing: %w", initErr)
		}
		activeOtel = handle
		ctx = otelobs.WithHandle(ctx, handle)
	}

	if receiptFlag != "" {
		writer, writerErr := receipt.NewWriter(receiptFlag, receiptModeFlag)
		if writerErr != nil {
			return fmt.Errorf("failed to open receipt: %w", writerErr)
		}
		activeWriter = writer
		ctx = receipt.WithWriter(ctx, writer)
	}

	cmd.SetContext(ctx)
	return nil
}

func teardownObservability(cmd *cobra.Command, args []string) {
	if activeOtel != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = activeOtel.Shutdown(shutdownCtx)
		cancel()
	}
	if activeWriter != nil {
		_ = activeWriter.Close()
	}
	if activeLogger != nil {
		_ = activeLogger.Close()
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
