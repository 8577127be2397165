// Package git provides Git operations for repro.
// This file resolves a recorded source locator into a local checkout.
package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrz1836/repro/internal/errors"
	"github.com/mrz1836/repro/internal/logging"
)

// scpLocator matches SCP-style locators such as git@github.com:org/repo.git.
var scpLocator = regexp.MustCompile(`^([^@]*)@([A-Za-z0-9.-]+):(.*)$`) //nolint:gochecknoglobals // compiled once

// Candidates returns the URLs to try for a recorded locator, in order.
// The literal locator always comes first. An SCP-style locator is followed
// by its https://<host>/<path> equivalent.
func Candidates(locator string) []string {
	candidates := []string{locator}
	if m := scpLocator.FindStringSubmatch(locator); m != nil {
		candidates = append(candidates, fmt.Sprintf("https://%s/%s", m[2], m[3]))
	}
	return candidates
}

// Cloner performs the two git steps of a fetch attempt.
type Cloner interface {
	// Clone clones url into dest. dest exists and is empty.
	Clone(ctx context.Context, url, dest string) error

	// Checkout checks out rev in the repository at dir.
	Checkout(ctx context.Context, dir, rev string) error
}

// CLICloner implements Cloner with the git CLI. Credential prompts are
// disabled so an unreachable candidate fails instead of waiting for input.
type CLICloner struct{}

// Clone runs git clone.
func (CLICloner) Clone(ctx context.Context, url, dest string) error {
	_, err := RunCommandEnv(ctx, "", noPrompt(), "clone", "--", url, dest)
	return err
}

// Checkout runs git checkout. A revision starting with "-" is rejected so
// it cannot be read as an option.
func (CLICloner) Checkout(ctx context.Context, dir, rev string) error {
	if rev == "" || strings.HasPrefix(rev, "-") {
		return fmt.Errorf("%w: invalid revision %q", errors.ErrGitOperation, rev)
	}
	_, err := RunCommandEnv(ctx, dir, noPrompt(), "checkout", "--quiet", rev)
	return err
}

func noPrompt() []string {
	env := []string{"GIT_TERMINAL_PROMPT=0"}
	if os.Getenv("GIT_SSH_COMMAND") == "" {
		env = append(env, "GIT_SSH_COMMAND=ssh -o BatchMode=yes")
	}
	return env
}

// Resolver fetches source snapshots by trying each candidate URL in turn.
type Resolver struct {
	// Cloner performs the clone and checkout. Defaults to CLICloner.
	Cloner Cloner

	// DisableHTTPSFallback restricts the candidates to the literal locator.
	DisableHTTPSFallback bool

	// Timeout bounds a single attempt. Zero means no limit.
	Timeout time.Duration

	// OnFallback, when set, is called before each candidate after the
	// first, with the candidate that failed and the one about to be tried.
	OnFallback func(failed, next string)
}

// NewResolver returns a Resolver that uses the git CLI.
func NewResolver(httpsFallback bool, timeout time.Duration) *Resolver {
	return &Resolver{
		Cloner:               CLICloner{},
		DisableHTTPSFallback: !httpsFallback,
		Timeout:              timeout,
	}
}

// Fetch clones the first candidate for locator that can be checked out at
// commit into dest, which must exist and be empty. A failed attempt leaves
// dest empty before the next candidate is tried.
//
// When every candidate fails the returned error is a *errors.SourceUnavailableError
// listing each attempt. Context cancellation stops the loop and is returned as is.
func (r *Resolver) Fetch(ctx context.Context, locator, commit, dest string) (*Repository, error) {
	logger := zerolog.Ctx(ctx)

	candidates := Candidates(locator)
	if r.DisableHTTPSFallback {
		candidates = candidates[:1]
	}

	cloner := r.Cloner
	if cloner == nil {
		cloner = CLICloner{}
	}

	attempts := make([]errors.Attempt, 0, len(candidates))
	for i, url := range candidates {
		if i > 0 {
			logger.Warn().
				Str("url", logging.RedactIfSensitive("url", url)).
				Str("previous", logging.RedactIfSensitive("url", candidates[i-1])).
				Msg("falling back to next source candidate")
			if r.OnFallback != nil {
				r.OnFallback(candidates[i-1], url)
			}
		}

		err := r.attempt(ctx, cloner, url, commit, dest)
		if err == nil {
			logger.Info().Str("url", logging.RedactIfSensitive("url", url)).Str("commit", commit).Msg("source fetched")
			return &Repository{
				Dir:    dest,
				URL:    url,
				Commit: resolveHead(ctx, dest, commit),
			}, nil
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		logger.Warn().Err(err).Str("url", logging.RedactIfSensitive("url", url)).Msg("source candidate failed")
		attempts = append(attempts, errors.Attempt{URL: url, Err: err})

		if cleanErr := emptyDir(dest); cleanErr != nil {
			return nil, errors.Wrapf(cleanErr, "failed to clean %s after failed attempt", dest)
		}
	}

	return nil, &errors.SourceUnavailableError{
		Locator:  locator,
		Commit:   commit,
		Attempts: attempts,
	}
}

func (r *Resolver) attempt(ctx context.Context, cloner Cloner, url, commit, dest string) error {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	if err := cloner.Clone(ctx, url, dest); err != nil {
		return fmt.Errorf("clone: %w", err)
	}
	if err := cloner.Checkout(ctx, dest, commit); err != nil {
		return fmt.Errorf("checkout %s: %w", commit, err)
	}
	return nil
}

// resolveHead returns the full hash of HEAD in dir, or fallback when it
// cannot be read. The lookup never escapes dir into an enclosing repository.
func resolveHead(ctx context.Context, dir, fallback string) string {
	ceiling := "GIT_CEILING_DIRECTORIES=" + filepath.Dir(filepath.Clean(dir))
	head, err := RunCommandEnv(ctx, dir, []string{ceiling}, "rev-parse", "--verify", "HEAD")
	if err != nil || head == "" {
		return fallback
	}
	return head
}

// emptyDir removes everything inside dir but keeps dir itself.
func emptyDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}
