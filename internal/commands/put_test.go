package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertAtAppendsWithoutPosition(t *testing.T) {
	out := insertAt([]string{"a", "b"}, "x", 0, false)
	assert.Equal(t, []string{"a", "b", "x"}, out)
}

func TestInsertAtInsertsAtGivenPosition(t *testing.T) {
	out := insertAt([]string{"a", "b", "c"}, "x", 2, true)
	assert.Equal(t, []string{"a", "x", "b", "c"}, out)
}

func TestInsertAtClampsPositionPastEnd(t *testing.T) {
	out := insertAt([]string{"a"}, "x", 99, true)
	assert.Equal(t, []string{"a", "x"}, out)
}

func TestExpandPutTokenLeavesLiteralUnchanged(t *testing.T) {
	assert.Equal(t, "literal", expandPutToken("literal", 1))
}

func TestExpandPutTokenCount(t *testing.T) {
	assert.Equal(t, "3", expandPutToken("@COUNT", 3))
}
