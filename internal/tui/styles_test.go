package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasColorSupport(t *testing.T) {
	t.Run("NO_COLOR set", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		assert.False(t, HasColorSupport())
	})
	t.Run("dumb terminal", func(t *testing.T) {
		t.Setenv("TERM", "dumb")
		assert.False(t, HasColorSupport())
	})
}

func TestStageTitle(t *testing.T) {
	assert.Equal(t, "Source Fetched", StageTitle("source_fetched"))
	assert.Equal(t, "Manifest Loaded", StageTitle("manifest_loaded"))
	assert.Equal(t, "Failed", StageTitle("failed"))
}

func TestStripANSI(t *testing.T) {
	assert.Equal(t, "PASS", stripANSI("\x1b[1;32mPASS\x1b[0m"))
	assert.Equal(t, "link", stripANSI("\x1b]8;;https://example.com\x07link\x1b]8;;\x07"))
	assert.Equal(t, 4, visibleWidth("\x1b[31m✗ ok\x1b[0m"))
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab   ", padRight("ab", 5))
	assert.Equal(t, "abcdef", padRight("abcdef", 3))
	assert.Equal(t, "\x1b[1mab\x1b[0m ", padRight("\x1b[1mab\x1b[0m", 3))
	assert.Equal(t, "実験 ", padRight("実験", 5))
}
