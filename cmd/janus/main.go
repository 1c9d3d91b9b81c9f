package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/janus-lang/janus/pkg/config"
)

// cliConfig holds the flags and positional argument cobra parses,
// mirroring the teacher's main.go Config struct.
type cliConfig struct {
	Debug    bool
	JSONLogs bool
	File     string
}

func main() {
	var cfg cliConfig

	rootCmd := &cobra.Command{
		Use:   "janus [flags] [file]",
		Short: "Janus usage-counting type checker and shell",
		Long: `Janus is a small bidirectionally-typed, usage-counting calculus.
It checks erased/linear/unrestricted resource usage at compile time
over a dependently-typed core with multiplicative and additive pairs.`,
		Example: `  # Start the interactive shell
  janus

  # Load and run a script, then exit
  janus script.janus

  # Start the shell with debug logging enabled
  janus --debug`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				cfg.File = args[0]
				return run(cmd.Context(), cfg)
			}
			return runInteractive(cfg)
		},
	}

	rootCmd.Flags().BoolVarP(&cfg.Debug, "debug", "d", false, "Enable debug logging")
	rootCmd.Flags().BoolVar(&cfg.JSONLogs, "json-logs", false, "Emit structured JSON logs instead of coloured text")

	ctx := context.Background()
	if err := fang.Execute(ctx, rootCmd,
		fang.WithVersion("v0.1.0"),
		fang.WithCommit("dev"),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(1)
	}
}

// run loads and evaluates every statement of a single file in order,
// then exits without entering the interactive loop.
func run(ctx context.Context, cfg cliConfig) error {
	logger := newLogger(cfg.Debug, cfg.JSONLogs)
	state := NewIState(os.Stdout)
	if err := loadFile(state, cfg.File, logger); err != nil {
		return fmt.Errorf("running %s: %w", cfg.File, err)
	}
	return nil
}

// runInteractive resolves the user's janus.toml/xdg configuration and
// drops into the read-eval-print loop.
func runInteractive(cfg cliConfig) error {
	logger := newLogger(cfg.Debug, cfg.JSONLogs)

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	rcfg, err := config.Resolve(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to resolve janus.toml: %v\n", err)
		rcfg = config.Default()
	}

	code := runREPL(rcfg, logger)
	if code != 0 {
		os.Exit(code)
	}
	return nil
}
