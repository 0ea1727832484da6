package cli

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/roach88/envcompose/internal/scenario"
)

// SetOptions holds flags for the set subcommands.
type SetOptions struct {
	*RootOptions
	Complete bool
	As       string // "xml" | "yaml"
	Layer    string
}

// ScenarioResult describes one capability in JSON output.
type ScenarioResult struct {
	Kind        string            `json:"kind"`
	Category    string            `json:"category"`
	Name        string            `json:"name"`
	Implemented bool              `json:"implemented"`
	Fields      map[string]string `json:"fields,omitempty"`
}

// SetResult is the JSON payload of set subcommands.
type SetResult struct {
	Name      string           `json:"name"`
	ShortName string           `json:"short_name"`
	Scenarios []ScenarioResult `json:"scenarios"`
}

// SetCheckResult is the check outcome of one set file.
type SetCheckResult struct {
	Path   string   `json:"path"`
	Valid  bool     `json:"valid"`
	Set    string   `json:"set,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

// SetValidateResult is the JSON payload of set validate.
type SetValidateResult struct {
	Valid bool             `json:"valid"`
	Sets  []SetCheckResult `json:"sets"`
}

// NewSetCommand creates the set command group.
func NewSetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Inspect and check scenario set files",
		Long: `Load scenario set files (.xml, .yaml or .yml) and inspect or check them.

YAML sets are validated against the set schema before decoding. Unknown
scenario kinds are always an error.`,
	}
	cmd.PersistentFlags().StringVar(&opts.Layer, "layer", scenario.LayerFunctionalCore.String(), "permutation layer used for short names and setup")

	cmd.AddCommand(newSetShowCommand(opts))
	cmd.AddCommand(newSetValidateCommand(opts))

	return cmd
}

func newSetShowCommand(opts *SetOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "show <file>",
		Short:         "Print a scenario set",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetShow(opts, args[0], cmd)
		},
	}
	cmd.Flags().BoolVar(&opts.Complete, "complete", false, "fill missing categories with defaults")
	cmd.Flags().StringVar(&opts.As, "as", "xml", "text rendering of the set (xml|yaml)")
	return cmd
}

func newSetValidateCommand(opts *SetOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file|glob>...",
		Short: "Check scenario sets against the target host",
		Long: `Complete each set with defaults and check that every scenario is
implemented and supported on the target host.

Arguments may be glob patterns, including ** (e.g. "sets/**/*.yaml").
A pattern that matches nothing is treated as a literal path.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetValidate(opts, args, cmd)
		},
	}
}

func runSetShow(opts *SetOptions, path string, cmd *cobra.Command) error {
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
	formatter.VerboseLog("Loaded %d scenario(s) from %s", set.Len(), path)
	if opts.Complete {
		set.CompleteWithDefaults()
	}

	if formatter.JSON() {
		return formatter.Success(setResult(set, layer))
	}

	switch opts.As {
	case "yaml":
		out, err := scenario.EncodeSetYAML(set)
		if err != nil {
			return failCommand(formatter, "encode set", err)
		}
		_, err = formatter.Writer.Write(out)
		return err
	case "xml":
		if err := scenario.WriteSet(formatter.Writer, set); err != nil {
			return failCommand(formatter, "encode set", err)
		}
		fmt.Fprintln(formatter.Writer)
		return nil
	default:
		_ = formatter.Error(ErrCodeInvalidFlag, fmt.Sprintf("invalid --as %q: must be xml or yaml", opts.As), nil)
		return NewExitError(ExitCommandError, ErrCodeInvalidFlag+": invalid --as")
	}
}

func runSetValidate(opts *SetOptions, patterns []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	paths, err := expandPatterns(patterns)
	if err != nil {
		_ = formatter.Error(ErrCodeInvalidFlag, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeInvalidFlag+": invalid pattern", err)
	}

	env := opts.env()
	result := SetValidateResult{Valid: true, Sets: make([]SetCheckResult, 0, len(paths))}
	var (
		firstErr error
		failed   int
		failCode string
	)
	for _, path := range paths {
		check, code, err := checkSetFile(env, path)
		result.Sets = append(result.Sets, check)
		if err == nil {
			continue
		}
		result.Valid = false
		failed++
		if firstErr == nil {
			firstErr, failCode = err, code
		}
	}

	if formatter.JSON() {
		_ = formatter.Success(result)
	} else {
		for _, check := range result.Sets {
			printSetCheck(formatter, check, len(paths) > 1)
		}
	}

	if firstErr == nil {
		return nil
	}
	return WrapExitError(exitCode(failCode), fmt.Sprintf("%s: set check failed for %d of %d file(s)", failCode, failed, len(paths)), firstErr)
}

// checkSetFile loads, completes and checks one set file. Load and check
// problems both land in the returned result.
func checkSetFile(env scenario.Env, path string) (SetCheckResult, string, error) {
	set, err := scenario.LoadSetFile(path)
	if err != nil {
		return SetCheckResult{Path: path, Errors: []string{err.Error()}}, errorCode(err), err
	}
	set.CompleteWithDefaults()

	if err := set.Check(env); err != nil {
		return SetCheckResult{Path: path, Set: set.Name(), Errors: splitJoined(err)}, errorCode(err), err
	}
	return SetCheckResult{Path: path, Valid: true, Set: set.Name()}, "", nil
}

func printSetCheck(formatter *OutputFormatter, check SetCheckResult, withPath bool) {
	mark := "✓"
	if !check.Valid {
		mark = "✗"
	}
	label := check.Set
	switch {
	case label == "":
		label = check.Path
	case withPath:
		label = check.Path + ": " + label
	}
	fmt.Fprintf(formatter.Writer, "%s %s\n", mark, label)
	for _, p := range check.Errors {
		fmt.Fprintf(formatter.Writer, "  %s\n", p)
	}
}

// expandPatterns resolves glob patterns to file paths in argument order.
// Duplicates are dropped.
func expandPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}
	for _, pattern := range patterns {
		if !doublestar.ValidatePathPattern(pattern) {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expand %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			add(pattern)
			continue
		}
		for _, m := range matches {
			add(m)
		}
	}
	return paths, nil
}

func setResult(set *scenario.Set, layer scenario.Layer) SetResult {
	result := SetResult{
		Name:      set.Name(),
		ShortName: set.ShortName(layer),
		Scenarios: make([]ScenarioResult, 0, set.Len()),
	}
	for _, c := range set.Capabilities() {
		sr := ScenarioResult{
			Kind:        c.Kind(),
			Category:    string(c.Category()),
			Name:        c.Name(),
			Implemented: c.IsImplemented(),
		}
		if fields := c.CustomFields(); len(fields) > 0 {
			sr.Fields = make(map[string]string, len(fields))
			for _, f := range fields {
				sr.Fields[f.Name] = f.Value
			}
		}
		result.Scenarios = append(result.Scenarios, sr)
	}
	return result
}

// splitJoined flattens an errors.Join result into one message per error.
func splitJoined(err error) []string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, splitJoined(e)...)
		}
		return out
	}
	return []string{err.Error()}
}
