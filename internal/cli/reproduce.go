package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mrz1836/repro/internal/config"
	"github.com/mrz1836/repro/internal/container"
	"github.com/mrz1836/repro/internal/environment"
	"github.com/mrz1836/repro/internal/errors"
	"github.com/mrz1836/repro/internal/git"
	"github.com/mrz1836/repro/internal/logging"
	"github.com/mrz1836/repro/internal/manifest"
	"github.com/mrz1836/repro/internal/pipeline"
	"github.com/mrz1836/repro/internal/tui"
)

// commandDeps holds the collaborators commands create, so tests can
// replace the container engine and the interactive prompt.
type commandDeps struct {
	newEngine   func(binary string, liveOut io.Writer) container.Engine
	interactive func() bool
	confirm     func(title, description string) (bool, error)
}

func defaultDeps() *commandDeps {
	return &commandDeps{
		newEngine: func(binary string, liveOut io.Writer) container.Engine {
			return container.NewCLIEngine(binary, liveOut)
		},
		interactive: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) //nolint:gosec // G115: fd fits in int
		},
		confirm: confirmRun,
	}
}

type reproduceOptions struct {
	yes         bool
	network     bool
	noNetwork   bool
	keepWorkDir bool
}

func newReproduceCmd(flags *GlobalFlags, deps *commandDeps) *cobra.Command {
	opts := &reproduceOptions{}

	cmd := &cobra.Command{
		Use:     "reproduce <manifest>",
		Aliases: []string{"run"},
		Short:   "Fetch, build and run a recorded experiment",
		Long: `Reproduce the experiment recorded in a metadata manifest.

The source is cloned at the recorded commit into a temporary directory; an
SCP-style locator (git@host:path) falls back to https://host/path. An existing
dev container configuration is used to build the image, otherwise one is
generated. The image is then built and the recorded command run in it.

The temporary directory is removed afterwards unless --keep-workdir is set.

Exit codes:
  0  the experiment ran
  1  the manifest is not valid YAML
  2  the manifest does not record the source
  3  no candidate repository URL could be cloned at the commit
  4  the manifest does not record the command
  5  the container build or run failed
  6  any other error`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReproduce(cmd.Context(), cmd, flags, opts, deps, args[0])
		},
	}

	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "run without asking for confirmation")
	cmd.Flags().BoolVar(&opts.network, "network", false, "allow the experiment to access the network")
	cmd.Flags().BoolVar(&opts.noNetwork, "no-network", false, "run the experiment without network access")
	cmd.Flags().BoolVar(&opts.keepWorkDir, "keep-workdir", false, "keep the temporary working directory")
	cmd.MarkFlagsMutuallyExclusive("network", "no-network")

	return cmd
}

func runReproduce(ctx context.Context, cmd *cobra.Command, flags *GlobalFlags, opts *reproduceOptions, deps *commandDeps, manifestPath string) error {
	logger := GetLogger()
	ctx = logger.WithContext(ctx)
	out := tui.NewOutput(cmd.OutOrStdout(), flags.Output)
	jsonMode := flags.Output == OutputJSON

	cfg, err := config.Load(ctx)
	if err != nil {
		return reportError(out, flags, err)
	}

	networkAccess := cfg.Container.NetworkAccess
	switch {
	case opts.network:
		networkAccess = true
	case opts.noNetwork:
		networkAccess = false
	}

	if !opts.yes && !jsonMode && deps.interactive() {
		if err := confirmManifest(manifestPath, networkAccess, deps.confirm); err != nil {
			return err
		}
	}

	var liveOut io.Writer
	if !jsonMode {
		liveOut = cmd.ErrOrStderr()
	}

	resolver := git.NewResolver(cfg.Source.HTTPSFallback, cfg.Source.CloneTimeout)
	if !jsonMode {
		resolver.OnFallback = fallbackWarner(out)
	}

	p := &pipeline.Pipeline{
		Loader:        pipeline.LoaderFunc(manifest.Load),
		Resolver:      resolver,
		Builder:       environment.NewBuilder(cfg.Environment),
		Runner:        container.NewRunner(deps.newEngine(cfg.Container.Engine, liveOut), cfg.Container),
		NetworkAccess: networkAccess,
		KeepWorkDir:   opts.keepWorkDir,
	}
	if !jsonMode {
		p.OnTransition = stagePrinter(out)
	}

	result, err := p.Run(ctx, manifestPath)
	if jsonMode {
		if encErr := out.JSON(result); encErr != nil {
			return encErr
		}
		if err != nil {
			return fmt.Errorf("%w: %w", errors.ErrJSONErrorOutput, err)
		}
		return nil
	}

	if opts.keepWorkDir && result != nil && result.Workdir != "" {
		out.Info("working directory kept at " + result.Workdir)
	}
	return err
}

// confirmManifest asks before running the recorded command. A manifest
// that cannot be read is not prompted for; the pipeline reports it.
func confirmManifest(path string, networkAccess bool, confirm func(title, description string) (bool, error)) error {
	m, err := manifest.Load(path)
	if err != nil {
		return nil //nolint:nilerr // reported by the pipeline with its exit code
	}
	argv, err := m.Command()
	if err != nil {
		return nil //nolint:nilerr // reported by the pipeline with its exit code
	}

	description := "$ " + strings.Join(argv, " ")
	if src, srcErr := m.Source(); srcErr == nil {
		description = fmt.Sprintf("%s @ %s\n%s", src.Repository, src.Commit, description)
	}
	if !networkAccess {
		description += "\n(network disabled)"
	}

	ok, err := confirm("Run the recorded experiment?", description)
	if err != nil {
		return errors.Wrap(err, "confirmation prompt failed")
	}
	if !ok {
		return errors.ErrOperationCanceled
	}
	return nil
}

func confirmRun(title, description string) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes, run it").
				Negative("No, cancel").
				Value(&ok),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		if stderrors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// fallbackWarner prints a WARN line when the resolver moves on to the next
// source candidate. Credentials in either URL are redacted.
func fallbackWarner(out tui.Output) func(failed, next string) {
	return func(failed, next string) {
		out.Warning(fmt.Sprintf("could not fetch %s, trying %s",
			logging.RedactIfSensitive("url", failed), logging.RedactIfSensitive("url", next)))
	}
}

// stagePrinter prints an OK status line for every completed stage.
func stagePrinter(out tui.Output) func(pipeline.Transition) {
	return func(t pipeline.Transition) {
		if t.To == pipeline.Failed {
			return
		}
		msg := tui.StageTitle(t.To.String())
		if t.Detail != "" {
			msg += ": " + t.Detail
		}
		out.Success(msg)
	}
}
