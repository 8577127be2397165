package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mrz1836/repro/internal/audit"
	"github.com/mrz1836/repro/internal/config"
	"github.com/mrz1836/repro/internal/errors"
	"github.com/mrz1836/repro/internal/tui"
)

type checkOptions struct {
	dir string
}

func newCheckCmd(flags *GlobalFlags) *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:     "check",
		Aliases: []string{"audit"},
		Short:   "Audit a project for reproducibility readiness",
		Long: `Audit a project for the conditions that let others reproduce it.

The git checks confirm the code is committed, pushed and has a remote. The dev
container checks confirm a parseable configuration names a base image or a
Dockerfile. Every failing item comes with a remediation.

Exit code is 0 when there is nothing to act on and 1 otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd.Context(), cmd, flags, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "dir", "d", "", "project directory (default: current directory)")

	return cmd
}

func runCheck(ctx context.Context, cmd *cobra.Command, flags *GlobalFlags, opts *checkOptions) error {
	logger := GetLogger()
	ctx = logger.WithContext(ctx)
	out := tui.NewOutput(cmd.OutOrStdout(), flags.Output)

	cfg, err := config.Load(ctx)
	if err != nil {
		return reportError(out, flags, err)
	}

	dir, err := projectDir(opts.dir)
	if err != nil {
		return reportError(out, flags, err)
	}
	logger.Debug().Str("dir", dir).Msg("auditing project")

	inspector := &audit.ProjectInspector{Dir: dir, Timeout: cfg.Audit.InspectTimeout}
	report := audit.Run(ctx, audit.DefaultChecks(inspector)...)

	if err := out.Report(report); err != nil {
		return err
	}
	if items := report.ActionableItems(); len(items) > 0 {
		return fmt.Errorf("%w: %d actionable item(s)", errors.ErrAuditFailed, len(items))
	}
	return nil
}

// projectDir resolves the --dir flag to an absolute directory.
func projectDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, "failed to get working directory")
		}
		return wd, nil
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve %s", dir)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read project directory %s", dir)
	}
	if !info.IsDir() {
		return "", errors.Wrapf(errors.ErrEmptyValue, "%s is not a directory", dir)
	}
	return abs, nil
}

// reportError prints err in JSON mode and marks it as reported. In text mode
// it is returned unchanged for Execute to print.
func reportError(out tui.Output, flags *GlobalFlags, err error) error {
	if flags.Output != OutputJSON {
		return err
	}
	out.Error(err)
	return fmt.Errorf("%w: %w", errors.ErrJSONErrorOutput, err)
}
