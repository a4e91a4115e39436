// Package cli wires the oracle into a cobra command reading one candidate
// from stdin and printing one literal to stdout.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ahrav/go-oracle/infrastructure/console"
	"github.com/ahrav/go-oracle/infrastructure/middleware"
	"github.com/ahrav/go-oracle/internal/application"
	"github.com/ahrav/go-oracle/internal/logging"
)

// Exit codes returned by Execute.
const (
	ExitOK    = 0
	ExitError = 1
)

// program holds what one command invocation builds before evaluating.
type program struct {
	configYAML []byte
	config     *application.ProgramConfig
	logger     *zap.Logger
	metrics    *middleware.PrometheusMetrics
}

// NewCommand returns a command that evaluates the candidate on stdin with
// the program described by configYAML and prints the result to stdout.
// Logs go to stderr. The command takes no flags and no arguments.
func NewCommand(name string, configYAML []byte, stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	p := &program{configYAML: configYAML}

	cmd := &cobra.Command{
		Use:           name,
		Short:         "Read an integer from stdin and print the oracle's answer",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return p.setup(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer func() {
				p.logMetrics()
				_ = p.logger.Sync()
			}()
			return p.run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.CompletionOptions.DisableDefaultCmd = true

	return cmd
}

// setup loads the embedded configuration and builds the logger and metrics.
func (p *program) setup(stderr io.Writer) error {
	loader, err := application.NewConfigLoader()
	if err != nil {
		return err
	}

	config, err := loader.Load(p.configYAML)
	if err != nil {
		return fmt.Errorf("failed to load program config: %w", err)
	}

	logger, err := logging.New(config.Log.Level, stderr)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	p.config = config
	p.logger = logger
	p.metrics = middleware.NewPrometheusMetrics()
	return nil
}

// logMetrics writes the run's metric totals at debug level.
func (p *program) logMetrics() {
	if !p.logger.Core().Enabled(zap.DebugLevel) {
		return
	}
	snapshot, err := p.metrics.Snapshot()
	if err != nil {
		p.logger.Warn("metrics unavailable", zap.Error(err))
		return
	}
	p.logger.Debug("metrics snapshot", zap.Any("metrics", snapshot))
}

// run evaluates one candidate read from stdin.
func (p *program) run(ctx context.Context, stdin io.Reader, stdout io.Writer) error {
	runner, err := application.NewRunner(p.config, application.NewDefaultUnitRegistry(), p.metrics, p.logger)
	if err != nil {
		return fmt.Errorf("failed to build runner: %w", err)
	}

	candidate, err := console.ReadCandidate(stdin, p.config.Input.BitSize)
	if err != nil {
		p.logger.Warn("rejected input", zap.Error(err))
		return err
	}

	result, err := runner.Evaluate(ctx, candidate, nil)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	return console.WriteOutput(stdout, result.Output, p.config.Output.TrailingNewline)
}

// Execute runs cmd and returns the process exit code. Errors are printed
// to the command's stderr as "error: <message>".
func Execute(cmd *cobra.Command) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
		return ExitError
	}
	return ExitOK
}
