package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPadRecordExtendsWithReusedLastValue(t *testing.T) {
	out := padRecord([]string{"a", "b"}, 5, []string{"x", "y"})
	assert.Equal(t, []string{"a", "b", "x", "y", "y"}, out)
}

func TestPadRecordLeavesLongRecordsUnchanged(t *testing.T) {
	out := padRecord([]string{"a", "b", "c"}, 2, []string{"x"})
	assert.Equal(t, []string{"a", "b", "c"}, out)
}
