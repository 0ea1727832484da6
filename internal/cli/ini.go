package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/envcompose/internal/ini"
)

// INIOptions holds flags shared by the ini subcommands.
type INIOptions struct {
	*RootOptions
	PWD string
}

// DirectiveResult is one directive in JSON output.
type DirectiveResult struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// INIResult is the JSON payload of ini subcommands.
type INIResult struct {
	Directives []DirectiveResult `json:"directives"`
	Hash       string            `json:"hash"`
	CLIArgs    string            `json:"cli_args,omitempty"`
}

// NewINICommand creates the ini command group.
func NewINICommand(rootOpts *RootOptions) *cobra.Command {
	opts := &INIOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "ini",
		Short: "Inspect INI directive files",
		Long: `Parse INI directive files and render them.

Without a file argument the harness default directives are used. With --pwd,
{PWD} placeholders are replaced by the given directory and path separators
are normalized.`,
	}
	cmd.PersistentFlags().StringVar(&opts.PWD, "pwd", "", "working directory substituted for {PWD}")

	cmd.AddCommand(newINIShowCommand(opts))
	cmd.AddCommand(newINIArgsCommand(opts))
	cmd.AddCommand(newINIExtensionsCommand(opts))

	return cmd
}

func newINIShowCommand(opts *INIOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show [file]",
		Short:         "Print directives in text form",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runINI(opts, cmd, args, func(s *ini.Store) *ini.Store { return s }, false)
		},
	}
}

func newINIArgsCommand(opts *INIOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "args [file]",
		Short:         "Print directives as interpreter -d arguments",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runINI(opts, cmd, args, func(s *ini.Store) *ini.Store { return s }, true)
		},
	}
}

func newINIExtensionsCommand(opts *INIOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "extensions [file]",
		Short:         "Print only the extension loading directives",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runINI(opts, cmd, args, (*ini.Store).ExtensionsOnly, false)
		},
	}
}

func runINI(opts *INIOptions, cmd *cobra.Command, args []string, view func(*ini.Store) *ini.Store, asArgs bool) error {
	formatter := opts.formatter(cmd)

	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	store, err := loadINI(path, opts.PWD)
	if err != nil {
		return failCommand(formatter, "load INI", err)
	}
	if path != "" {
		formatter.VerboseLog("Parsed %d directive(s) from %s", store.CountDirectives(), path)
	}

	store = view(store)
	windows := opts.env().Host.IsWindows()

	if formatter.JSON() {
		result := iniResult(store)
		if asArgs {
			result.CLIArgs = store.CLIArgs(windows)
		}
		return formatter.Success(result)
	}

	if asArgs {
		fmt.Fprintln(formatter.Writer, store.CLIArgs(windows))
		return nil
	}
	fmt.Fprint(formatter.Writer, store.String())
	return nil
}

// loadINI reads path, or returns the default directives when path is empty.
func loadINI(path, pwd string) (*ini.Store, error) {
	if path == "" {
		return ini.Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read INI file: %w", err)
	}
	if pwd != "" {
		return ini.ParseDir(string(data), pwd), nil
	}
	return ini.Parse(string(data)), nil
}

func iniResult(store *ini.Store) INIResult {
	result := INIResult{
		Directives: make([]DirectiveResult, 0, store.CountDirectives()),
		Hash:       store.Hash(),
	}
	for _, name := range store.Directives() {
		values, _ := store.GetAll(name)
		result.Directives = append(result.Directives, DirectiveResult{Name: name, Values: values})
	}
	return result
}
