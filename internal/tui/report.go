package tui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// subcheckNameWidth aligns subcheck messages in a column.
const subcheckNameWidth = 23

//nolint:gochecknoglobals // cached renderers, keyed by wrap width
var (
	renderers   = map[int]*glamour.TermRenderer{}
	renderersMu sync.Mutex
)

// markdownRenderer returns a cached glamour renderer for the given width.
// It returns nil when no renderer can be built.
func markdownRenderer(width int) *glamour.TermRenderer {
	renderersMu.Lock()
	defer renderersMu.Unlock()

	if r, ok := renderers[width]; ok {
		return r
	}
	style := glamour.WithAutoStyle()
	if !HasColorSupport() {
		style = glamour.WithStandardStyle("notty")
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return nil
	}
	renderers[width] = r
	return r
}

// renderRemediation writes hint markdown indented under its title, falling
// back to the raw text when it cannot be rendered.
func renderRemediation(w io.Writer, markdown string, width int) {
	if renderer := markdownRenderer(max(width-4, 20)); renderer != nil {
		if rendered, err := renderer.Render(markdown); err == nil {
			for _, line := range strings.Split(strings.Trim(rendered, "\n"), "\n") {
				_, _ = fmt.Fprintf(w, "  %s\n", line)
			}
			return
		}
	}
	for _, line := range strings.Split(markdown, "\n") {
		_, _ = fmt.Fprintf(w, "  %s\n", line)
	}
}

func dotLeader(n int) string {
	return strings.Repeat("·", n)
}
