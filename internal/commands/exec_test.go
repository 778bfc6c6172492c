package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandExecTemplateSubstitutesFieldsAndPercent(t *testing.T) {
	line, err := expandExecTemplate("echo %1 %% %2", []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, "echo a % b", line)
}

func TestExpandExecTemplateRejectsOutOfRangeField(t *testing.T) {
	_, err := expandExecTemplate("echo %3", []string{"a", "b"})
	assert.Error(t, err)
}

func TestExpandExecTemplateRejectsTrailingPercent(t *testing.T) {
	_, err := expandExecTemplate("echo %", nil)
	assert.Error(t, err)
}

func TestSplitNonEmptyLinesDropsBlankLines(t *testing.T) {
	lines := splitNonEmptyLines("a\n\nb\n")
	assert.Equal(t, []string{"a", "b"}, lines)
}
