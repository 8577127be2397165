package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/repro/internal/audit"
	reproerrors "github.com/mrz1836/repro/internal/errors"
)

func TestOutputInterface(t *testing.T) {
	var buf bytes.Buffer
	var _ Output = NewTTYOutput(&buf)
	var _ Output = NewJSONOutput(&buf)
}

func TestNewOutput(t *testing.T) {
	var buf bytes.Buffer
	assert.IsType(t, &JSONOutput{}, NewOutput(&buf, FormatJSON))
	assert.IsType(t, &TTYOutput{}, NewOutput(&buf, FormatText))
	assert.IsType(t, &JSONOutput{}, NewOutput(&buf, FormatAuto), "a buffer is not a terminal")
}

func TestTTYOutput_StatusLines(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	out := NewTTYOutput(&buf)
	out.Success("Repository is at git@host:org/repo.git#abc")
	out.Warning("Failed to clone from git@host:org/repo.git")
	out.Info("working directory /tmp/repro-1")

	lines := strings.Split(strings.TrimSpace(stripANSI(buf.String())), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "✓ Repository is at git@host:org/repo.git#abc", lines[0])
	assert.Equal(t, "⚠ Failed to clone from git@host:org/repo.git", lines[1])
	assert.Equal(t, "ℹ working directory /tmp/repro-1", lines[2])
}

func TestTTYOutput_ErrorWithAction(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	out := NewTTYOutput(&buf)
	out.Error(fmt.Errorf("%w: key not found", reproerrors.ErrMissingExecutable))

	output := stripANSI(buf.String())
	assert.Contains(t, output, "✗ executable metadata missing from manifest: key not found")
	assert.Contains(t, output, "▸ Try: Record implementation.executable.cmd")
}

func TestTTYOutput_ErrorWithoutAction(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	NewTTYOutput(&buf).Error(assert.AnError)

	assert.Equal(t, "✗ "+assert.AnError.Error()+"\n", stripANSI(buf.String()))
}

func passingReport() audit.Report {
	return audit.Report{
		Checks: []audit.CheckResult{{
			Name:    "Git Repository",
			Outcome: audit.Success,
			Results: []audit.SubCheckResult{
				{Name: "Repository", Message: "/src/project", Outcome: audit.Success},
				{Name: "Commit", Message: "0123abc", Outcome: audit.Success},
			},
		}},
		Hints: []audit.Hint{},
	}
}

func failingReport() audit.Report {
	return audit.Report{
		Checks: []audit.CheckResult{{
			Name:    "Git Repository",
			Outcome: audit.Fail,
			Results: []audit.SubCheckResult{
				{Name: "Repository", Message: "Not a git repository", Outcome: audit.Fail, Hint: audit.HintUseGit},
			},
		}},
		Hints: []audit.Hint{*audit.HintUseGit},
	}
}

func TestTTYOutput_Report_AllGood(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	require.NoError(t, NewTTYOutput(&buf).WithWidth(40).Report(passingReport()))

	lines := strings.Split(stripANSI(buf.String()), "\n")
	assert.Equal(t, "Git Repository "+strings.Repeat("·", 17)+" [PASS]", lines[0])
	assert.Equal(t, "  ✓ Repository              /src/project", lines[1])
	assert.Equal(t, "  ✓ Commit                  0123abc", lines[2])
	assert.Contains(t, buf.String(), "All good. Nothing left to do!")
	assert.NotContains(t, buf.String(), "actionable item")
}

func TestTTYOutput_Report_ActionableItems(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	require.NoError(t, NewTTYOutput(&buf).WithWidth(60).Report(failingReport()))

	output := stripANSI(buf.String())
	assert.Contains(t, output, "[FAIL]")
	assert.Contains(t, output, "  ✗ Repository              Not a git repository")
	assert.Contains(t, output, "1 actionable item(s)")
	assert.Contains(t, output, audit.HintUseGit.Title)
	assert.Contains(t, output, "git init")
}

func TestTTYOutput_Report_NarrowTerminalKeepsDots(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	require.NoError(t, NewTTYOutput(&buf).WithWidth(5).Report(passingReport()))
	assert.True(t, strings.HasPrefix(stripANSI(buf.String()), "Git Repository ··· [PASS]"))
}

func TestJSONOutput_StatusLines(t *testing.T) {
	var buf bytes.Buffer
	out := NewJSONOutput(&buf)
	out.Success("fetched")
	out.Warning("fallback")
	out.Info("note")

	dec := json.NewDecoder(&buf)
	var types []string
	for dec.More() {
		var msg map[string]string
		require.NoError(t, dec.Decode(&msg))
		types = append(types, msg["type"])
	}
	assert.Equal(t, []string{"ok", "warn", "info"}, types)
}

func TestJSONOutput_Error(t *testing.T) {
	var buf bytes.Buffer
	NewJSONOutput(&buf).Error(fmt.Errorf("%w: no such file", reproerrors.ErrManifestSyntax))

	var got map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "error", got["type"])
	assert.Contains(t, got["message"], "no such file")
	assert.NotEmpty(t, got["suggestion"])
}

func TestJSONOutput_Report(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONOutput(&buf).Report(failingReport()))

	var got struct {
		Checks []struct {
			Name    string `json:"name"`
			Outcome string `json:"outcome"`
		} `json:"checks"`
		Items    []audit.Hint `json:"actionable_items"`
		ExitCode int          `json:"exit_code"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got.Checks, 1)
	assert.Equal(t, "FAIL", got.Checks[0].Outcome)
	assert.Equal(t, []audit.Hint{*audit.HintUseGit}, got.Items)
	assert.Equal(t, 1, got.ExitCode)
}
