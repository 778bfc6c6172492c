package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendMultiLineFlushesAtFixedCount(t *testing.T) {
	group, ready := appendMultiLine([]string{"a"}, "b", 2, "")
	assert.True(t, ready)
	assert.Equal(t, []string{"a", "b"}, group)
}

func TestAppendMultiLineKeepsAccumulatingBelowCount(t *testing.T) {
	group, ready := appendMultiLine([]string{"a"}, "b", 3, "")
	assert.False(t, ready)
	assert.Equal(t, []string{"a", "b"}, group)
}

func TestAppendMultiLineFlushesOnSeparatorWithoutAppendingIt(t *testing.T) {
	group, ready := appendMultiLine([]string{"a", "b"}, "---", 0, "---")
	assert.True(t, ready)
	assert.Equal(t, []string{"a", "b"}, group)
}

func TestAppendMultiLineAppendsNonSeparatorLines(t *testing.T) {
	group, ready := appendMultiLine(nil, "a", 0, "---")
	assert.False(t, ready)
	assert.Equal(t, []string{"a"}, group)
}
