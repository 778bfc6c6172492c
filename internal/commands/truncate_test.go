package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateRecordDropsTrailingFields(t *testing.T) {
	out := truncateRecord([]string{"a", "b", "c", "d"}, 2)
	assert.Equal(t, []string{"a", "b"}, out)
}

func TestTruncateRecordLeavesShortRecordsUnchanged(t *testing.T) {
	out := truncateRecord([]string{"a"}, 5)
	assert.Equal(t, []string{"a"}, out)
}
