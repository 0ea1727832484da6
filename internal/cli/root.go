package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/envcompose/internal/config"
	"github.com/roach88/envcompose/internal/host"
	"github.com/roach88/envcompose/internal/scenario"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	TargetOS   string
	PHPDir     string
	ExtDir     string
	PHPVersion string

	logLevel slog.Level
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command. cfg supplies flag defaults.
func NewRootCommand(cfg config.Config) *cobra.Command {
	opts := &RootOptions{}
	if level, err := cfg.Level(); err == nil {
		opts.logLevel = level
	}

	cmd := &cobra.Command{
		Use:   "envcompose",
		Short: "envcompose - compose PHP test environments",
		Long: `Compose test execution environments from orthogonal scenarios.

A scenario set picks one capability per category (SAPI, filesystem, socket,
code cache, path style, integrations). envcompose completes a set with
defaults, checks it against the target host and renders the INI directives
the interpreter runs with.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			configureLogging(cmd, opts)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", cfg.Format, "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.TargetOS, "target-os", cfg.TargetOS, "target operating system (default: running system)")
	cmd.PersistentFlags().StringVar(&opts.PHPDir, "php-dir", cfg.PHPDir, "PHP build directory")
	cmd.PersistentFlags().StringVar(&opts.ExtDir, "ext-dir", cfg.ExtDir, "extension directory (default: <php-dir>/ext)")
	cmd.PersistentFlags().StringVar(&opts.PHPVersion, "php-version", cfg.PHPVersion, "PHP build version, used for version-bound scenarios")

	// Add subcommands
	cmd.AddCommand(NewINICommand(opts))
	cmd.AddCommand(NewSetCommand(opts))
	cmd.AddCommand(NewComposeCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func configureLogging(cmd *cobra.Command, opts *RootOptions) {
	level := opts.logLevel
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// config mirrors the effective flag values back into a config.Config so the
// host and build come from one place.
func (o *RootOptions) config() config.Config {
	return config.Config{
		Format:     o.Format,
		TargetOS:   o.TargetOS,
		PHPDir:     o.PHPDir,
		ExtDir:     o.ExtDir,
		PHPVersion: o.PHPVersion,
	}
}

func (o *RootOptions) env() scenario.Env {
	cfg := o.config()
	return scenario.Env{
		Host:    cfg.Host(),
		Build:   cfg.Build(),
		Console: host.NewSlogConsole(slog.Default()),
	}
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:  o.Format,
		Writer:  cmd.OutOrStdout(),
		Diag:    cmd.ErrOrStderr(),
		Verbose: o.Verbose,
	}
}
