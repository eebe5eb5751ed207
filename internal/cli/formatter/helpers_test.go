package formatter

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes ANSI escape codes so assertions are terminal-independent.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "Campa…", Truncate("Campaign planning", 6))
	assert.Equal(t, "ab", Truncate("ab", 1))
}

func TestRenderBox_IncludesTitle(t *testing.T) {
	out := stripANSI(RenderBox("submitted", "3 records"))
	assert.Contains(t, out, "SUBMITTED")
	assert.Contains(t, out, "3 records")
}
