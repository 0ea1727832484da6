package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/envcompose/internal/ini"
	"github.com/roach88/envcompose/internal/scenario"
)

// ComposeOptions holds flags for the compose command.
type ComposeOptions struct {
	*RootOptions
	BaseINI string
	PWD     string
	Setup   bool
	Layer   string

	// IDs produces configuration IDs. Defaults to UUIDv7.
	IDs scenario.IDGenerator
}

// ComposeResult is the JSON payload of compose.
type ComposeResult struct {
	Set       string    `json:"set"`
	ShortName string    `json:"short_name"`
	CLIArgs   string    `json:"cli_args"`
	INI       string    `json:"ini"`
	Hash      string    `json:"hash"`
	UAC       UACResult `json:"uac"`
	Handles   []string  `json:"handles,omitempty"`
}

// UACResult reports the elevation flags of a configuration.
type UACResult struct {
	Setup bool `json:"setup"`
	Start bool `json:"start"`
}

// NewComposeCommand creates the compose command.
func NewComposeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ComposeOptions{RootOptions: rootOpts, IDs: scenario.UUIDv7Generator{}}

	cmd := &cobra.Command{
		Use:   "compose <set-file>",
		Short: "Compose a run configuration from a scenario set",
		Long: `Compose a run configuration from a scenario set.

The set is completed with defaults and checked against the target host.
Every scenario that contributes directives is applied, in set order, on top
of the base INI (the harness defaults unless --ini is given).

With --setup, scenarios that need it are set up for the selected layer and
released again before the command exits.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompose(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.BaseINI, "ini", "", "base INI file (default: harness defaults)")
	cmd.Flags().StringVar(&opts.PWD, "pwd", "", "working directory substituted for {PWD} in --ini")
	cmd.Flags().BoolVar(&opts.Setup, "setup", false, "set up and release scenarios")
	cmd.Flags().StringVar(&opts.Layer, "layer", scenario.LayerFunctionalCore.String(), "permutation layer")

	return cmd
}

func runCompose(opts *ComposeOptions, path string, cmd *cobra.Command) (err error) {
	formatter := opts.formatter(cmd)

	layer, err := scenario.ParseLayer(opts.Layer)
	if err != nil {
		_ = formatter.Error(ErrCodeInvalidFlag, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeInvalidFlag+": invalid --layer", err)
	}

	set, err := scenario.LoadSetFile(path)
	if err != nil {
		return failCommand(formatter, "load set", err)
	}

	var base *ini.Store
	if opts.BaseINI != "" {
		base, err = loadINI(opts.BaseINI, opts.PWD)
		if err != nil {
			return failCommand(formatter, "load base INI", err)
		}
	}

	env := opts.env()
	conf, err := scenario.Compose(env, set, base, opts.IDs)
	if err != nil {
		return failCommand(formatter, "compose", err)
	}
	formatter.VerboseLog("Composed %s from %s", conf.ID, path)

	result := ComposeResult{
		Set:       conf.Set.Name(),
		ShortName: conf.Set.ShortName(layer),
		CLIArgs:   conf.CLIArgs(),
		INI:       conf.INIText(),
		Hash:      conf.INI.Hash(),
		UAC: UACResult{
			Setup: conf.Set.UACRequiredForSetup(),
			Start: conf.Set.UACRequiredForStart(),
		},
	}

	if opts.Setup {
		handles, setupErr := conf.Set.Setup(cmd.Context(), env, layer)
		defer func() {
			if releaseErr := scenario.Release(handles); releaseErr != nil && err == nil {
				err = failCommand(formatter, "release", releaseErr)
			}
		}()
		if setupErr != nil {
			return failCommand(formatter, "setup", setupErr)
		}
		for _, h := range handles {
			result.Handles = append(result.Handles, h.NameWithVersion())
		}
	}

	if formatter.JSON() {
		return formatter.SuccessWithID(conf.ID, result)
	}

	if err := formatter.SuccessWithID(conf.ID, nil); err != nil {
		return err
	}
	fmt.Fprintf(formatter.Writer, "Scenarios: %s\n", result.Set)
	if result.UAC.Setup || result.UAC.Start {
		fmt.Fprintf(formatter.Writer, "UAC: setup=%t start=%t\n", result.UAC.Setup, result.UAC.Start)
	}
	for _, h := range result.Handles {
		fmt.Fprintf(formatter.Writer, "Setup: %s\n", h)
	}
	fmt.Fprintf(formatter.Writer, "Args:%s\n", result.CLIArgs)
	fmt.Fprintln(formatter.Writer)
	fmt.Fprint(formatter.Writer, result.INI)
	return nil
}
