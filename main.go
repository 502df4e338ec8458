// Package main provides a tool to detect hardcoded colors and theme-variable misuse
// in interactive widget sources.
// Run: cd scripts/check-style-tokens && go run . -C ../..
// Or:  go run -C scripts/check-style-tokens . -C "$PWD"
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cmdr/scripts/check-style-tokens/config"
	"cmdr/scripts/check-style-tokens/lint"
	"cmdr/scripts/check-style-tokens/locator"
	"cmdr/scripts/check-style-tokens/logger"
	"cmdr/scripts/check-style-tokens/report"
)

const (
	exitClean = 0
	exitFail  = 1
)

type options struct {
	dir        string
	configPath string
	format     string
	color      string
	verbose    bool
	listRules  bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	exitCode := exitClean
	cmd := newRootCmd(stdout, stderr, &exitCode)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFail
	}
	return exitCode
}

func newRootCmd(stdout, stderr io.Writer, exitCode *int) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "check-style-tokens",
		Short: "Check widget sources for hardcoded colors and theme variable misuse",
		Long: `Scans topics/*/interactive.* and topics/*/widgets/*.js under the work dir.

Colors must be read from the theme through an accessor such as
getToken('token-name', '#fallback'). A color literal is only allowed as the
fallback argument of such a call. Theme variables (var(--x)) must never be
written as strings into inline styles or other string literals.

Exits 1 if any violation is found or the run fails.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.listRules {
				return report.ListRules(stdout)
			}

			log := logger.New(stderr, opts.verbose)
			defer func() { _ = log.Sync() }()

			code, err := checkStyleTokens(cmd, opts, stdout, stderr, log)
			if err != nil {
				log.Errorw("style token check failed", "error", err)
				*exitCode = exitFail
				return nil
			}
			*exitCode = code
			return nil
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVarP(&opts.dir, "dir", "C", ".", "Work dir to scan")
	flags.StringVar(&opts.configPath, "config", "",
		fmt.Sprintf("Config file (default: <dir>/%s if present)", config.DefaultFileName))
	flags.StringVar(&opts.format, "format", config.FormatText, "Output format: text, json, sarif or yaml")
	flags.StringVar(&opts.color, "color", config.ColorAuto, "Color text output: auto, always or never")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log progress details to stderr")
	flags.BoolVar(&opts.listRules, "list-rules", false, "Print the rule catalog and exit")

	return cmd
}

// checkStyleTokens runs one lint pass and reports it. Violations are not errors:
// they only change the returned exit code.
func checkStyleTokens(cmd *cobra.Command, opts *options, stdout, stderr io.Writer, log *zap.SugaredLogger) (int, error) {
	ws, err := locator.OpenWorkspace(opts.dir)
	if err != nil {
		return exitFail, err
	}

	cfg, err := loadConfig(cmd, opts, ws.Root)
	if err != nil {
		return exitFail, err
	}
	if cfg.Source != "" {
		log.Debugw("loaded config", "path", cfg.Source)
	}

	linter, err := lint.New(append(lint.DefaultAccessors(), cfg.Accessors...), log)
	if err != nil {
		return exitFail, err
	}

	result, err := linter.Run(ws, locator.Patterns)
	if err != nil {
		return exitFail, err
	}
	log.Debugw("lint finished", "files", len(result.Files), "violations", result.Count(),
		"by_rule", result.CountByRule())

	out := stdout
	if cfg.Format == config.FormatText {
		out = stderr
	}
	reporter := report.New(out, cfg.Format, useColor(cfg.Color, stderr))
	if err := reporter.Report(result); err != nil {
		return exitFail, err
	}

	return result.ExitCode(), nil
}

// loadConfig merges flags over the config file over defaults.
func loadConfig(cmd *cobra.Command, opts *options, workDir string) (config.Config, error) {
	cfg, err := config.Load(workDir, opts.configPath)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = opts.format
	}
	if flags.Changed("color") {
		cfg.Color = opts.color
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
