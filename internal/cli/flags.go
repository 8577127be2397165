package cli

import (
	stderrors "errors"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/repro/internal/errors"
	"github.com/mrz1836/repro/internal/pipeline"
)

// Exit codes for the CLI. The check command only uses ExitSuccess and
// ExitAuditFailed.
const (
	ExitSuccess           = 0
	ExitAuditFailed       = 1
	ExitManifestSyntax    = 1
	ExitMissingSource     = 2
	ExitSourceUnavailable = 3
	ExitMissingExecutable = 4
	ExitExternalTool      = 5
	ExitInternal          = 6
)

// Output format constants.
const (
	// OutputText is the default human-readable output format.
	OutputText = "text"
	// OutputJSON is the machine-readable JSON output format.
	OutputJSON = "json"
)

// GlobalFlags holds flags available to all commands.
type GlobalFlags struct {
	// Output specifies the output format (text or json).
	Output string
	// Verbose enables debug-level logging.
	Verbose bool
	// Quiet suppresses non-essential output (warn level only).
	Quiet bool
}

// AddGlobalFlags adds global flags to a command.
// These flags are available to all subcommands via PersistentFlags.
func AddGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) {
	cmd.PersistentFlags().StringVarP(&flags.Output, "output", "o", OutputText, "output format (text|json)")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "suppress non-essential output")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// BindGlobalFlags binds global flags to Viper so they can also be set with
// REPRO_ environment variables (e.g., REPRO_OUTPUT, REPRO_VERBOSE).
func BindGlobalFlags(v *viper.Viper, cmd *cobra.Command) error {
	// Root().PersistentFlags() finds the root flags from any subcommand.
	rootFlags := cmd.Root().PersistentFlags()

	for _, name := range []string{"output", "verbose", "quiet"} {
		if err := v.BindPFlag(name, rootFlags.Lookup(name)); err != nil {
			return err
		}
	}

	v.SetEnvPrefix("REPRO")
	v.AutomaticEnv()

	return nil
}

// ValidOutputFormats returns the list of valid output format values.
func ValidOutputFormats() []string {
	return []string{OutputText, OutputJSON}
}

// IsValidOutputFormat checks if the given format is a valid output format.
func IsValidOutputFormat(format string) bool {
	return slices.Contains(ValidOutputFormats(), format)
}

// categoryExitCodes maps pipeline failure categories to process exit codes.
var categoryExitCodes = map[pipeline.Category]int{ //nolint:gochecknoglobals // lookup table
	pipeline.CategoryNone:              ExitSuccess,
	pipeline.CategoryManifestSyntax:    ExitManifestSyntax,
	pipeline.CategoryMissingSource:     ExitMissingSource,
	pipeline.CategorySourceUnavailable: ExitSourceUnavailable,
	pipeline.CategoryMissingExecutable: ExitMissingExecutable,
	pipeline.CategoryExternalTool:      ExitExternalTool,
	pipeline.CategoryInternal:          ExitInternal,
}

// ExitCodeForError returns the process exit code for err. An audit with
// actionable items exits 1; pipeline failures exit with their category's
// code; everything else, including invalid flags and interruption, exits
// ExitInternal.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if stderrors.Is(err, errors.ErrAuditFailed) {
		return ExitAuditFailed
	}
	if code, ok := categoryExitCodes[pipeline.CategoryOf(err)]; ok {
		return code
	}
	return ExitInternal
}
