package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveEmbeddedNewlineReplacesByDefault(t *testing.T) {
	out := removeEmbeddedNewline("line1\nline2", false, " ")
	assert.Equal(t, "line1 line2", out)
}

func TestRemoveEmbeddedNewlineCutsAtFirstNewline(t *testing.T) {
	out := removeEmbeddedNewline("line1\nline2\nline3", true, " ")
	assert.Equal(t, "line1", out)
}

func TestRemoveEmbeddedNewlineLeavesPlainFieldUnchanged(t *testing.T) {
	out := removeEmbeddedNewline("no newline here", true, " ")
	assert.Equal(t, "no newline here", out)
}
