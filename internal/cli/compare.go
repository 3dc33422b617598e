package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sdejongh/tablediff/pkg/compare"
	"github.com/sdejongh/tablediff/pkg/config"
	"github.com/sdejongh/tablediff/pkg/engine"
	"github.com/sdejongh/tablediff/pkg/logging"
	"github.com/sdejongh/tablediff/pkg/output"
	"github.com/sdejongh/tablediff/pkg/storage"
)

// CompareFlags holds compare command flags
type CompareFlags struct {
	Local      string
	Remote     string
	Output     string
	Format     string
	Exclude    []string
	DiffReport string
	DiffFormat string
	ExitCode   bool
	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

var compareFlags CompareFlags

// ExitError asks the caller to exit with Code without printing anything
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewCompareCommand creates the compare command
func NewCompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare a local and a remote table directory",
		Long: `Compare the YAML table files of two directories. Files present on one
side only are listed; files present on both sides are parsed and compared
structurally, ignoring key order and sequence order. The result is written
as a JSON report (compare_output.json by default).`,
		Args: cobra.NoArgs,
		RunE: runCompare,
	}

	cmd.Flags().StringVarP(&compareFlags.Local, "local", "l", "", "local table directory (default from config: ./local_tables/)")
	cmd.Flags().StringVarP(&compareFlags.Remote, "remote", "r", "", "remote table directory (default from config: ./remote_tables/)")
	cmd.Flags().StringVarP(&compareFlags.Output, "output", "o", "", "report file path (default from config: compare_output.json)")
	cmd.Flags().StringVar(&compareFlags.Format, "format", "", "console output format: human, json")
	cmd.Flags().StringSliceVar(&compareFlags.Exclude, "exclude", []string{}, "glob patterns of entry names to ignore")
	cmd.Flags().StringVar(&compareFlags.DiffReport, "diff-report", "", "write differences report to file")
	cmd.Flags().StringVar(&compareFlags.DiffFormat, "diff-format", "human", "differences report format: human, json")
	cmd.Flags().BoolVar(&compareFlags.ExitCode, "exit-code", false, "exit with status 1 when differences are found")

	// Logging flags
	cmd.Flags().StringVar(&compareFlags.LogFile, "log-file", "", "write logs to file (enables logging)")
	cmd.Flags().StringVar(&compareFlags.LogFormat, "log-format", "text", "log format: text, json")
	cmd.Flags().StringVar(&compareFlags.LogLevel, "log-level", "info", "log level: debug, info, warn, error")

	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Validate flags
	if err := validateCompareFlags(); err != nil {
		return err
	}

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with command-line flags
	applyFlagsToConfig(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	operation, err := createCompareOperation(cfg)
	if err != nil {
		return fmt.Errorf("failed to create compare operation: %w", err)
	}

	// Create storage backends
	local, err := storage.NewLocal(operation.LocalDir)
	if err != nil {
		return fmt.Errorf("failed to create local backend: %w", err)
	}
	defer local.Close()

	remote, err := storage.NewLocal(operation.RemoteDir)
	if err != nil {
		return fmt.Errorf("failed to create remote backend: %w", err)
	}
	defer remote.Close()

	reportDir, reportName := filepath.Split(operation.OutputPath)
	if reportDir == "" {
		reportDir = "."
	}
	reportBackend, err := storage.NewLocal(reportDir)
	if err != nil {
		return fmt.Errorf("failed to create report backend: %w", err)
	}
	defer reportBackend.Close()

	formatter := createFormatter(cfg, cmd.OutOrStdout())

	logger, err := createLogger(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	comparator := compare.NewStructuralComparator(cfg.DiffOptions())
	eng := engine.NewEngine(local, remote, comparator, formatter, logger, operation)

	report, err := eng.Run(ctx)
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	overwrite, err := reportBackend.Exists(ctx, reportName)
	if err != nil {
		return fmt.Errorf("failed to check report file: %w", err)
	}
	if err := output.WriteReport(ctx, reportBackend, reportName, report); err != nil {
		return err
	}
	logger.Info(ctx, "Report written", logging.Fields{
		"operation_id": operation.ID,
		"path":         filepath.Join(reportBackend.Root(), reportName),
		"overwrite":    overwrite,
	})

	// Write differences report if requested
	// Show report if:
	// - --diff-report is specified (write to file)
	// - --diff-format is explicitly set (write to stdout)
	if compareFlags.DiffReport != "" || cmd.Flags().Changed("diff-format") {
		if err := output.WriteDifferencesReport(report, compareFlags.DiffReport, compareFlags.DiffFormat); err != nil {
			return fmt.Errorf("failed to write differences report: %w", err)
		}
	}

	if compareFlags.ExitCode {
		if code := report.Status().ExitCode(); code != 0 {
			return &ExitError{Code: code}
		}
	}
	return nil
}

// createFormatter picks the console formatter for the configuration
func createFormatter(cfg *config.Config, stdout io.Writer) output.Formatter {
	if cfg.Output.Quiet {
		stdout = io.Discard
	}

	switch {
	case cfg.Output.Format == "json":
		return output.NewJSONFormatter(stdout)
	case cfg.Output.Progress && !cfg.Output.Quiet:
		return output.NewProgressFormatter(stdout)
	default:
		return output.NewHumanFormatter(stdout)
	}
}

// createLogger creates a logger based on configuration. Logging goes to the
// configured file, or to stderr when enabled without one.
func createLogger(cfg config.LoggingConfig, stderr io.Writer) (logging.Logger, error) {
	if !cfg.Enabled {
		return logging.NewNullLogger(), nil
	}

	format := logging.ParseFormat(cfg.Format)
	level := logging.ParseLevel(cfg.Level)

	if cfg.File == "" {
		return logging.NewStreamLogger(stderr, format, level), nil
	}

	return logging.NewFileLogger(logging.FileLoggerConfig{
		Path:       cfg.File,
		Format:     format,
		Level:      level,
		MaxSize:    10 * 1024 * 1024, // 10 MB
		MaxBackups: 5,
	})
}
