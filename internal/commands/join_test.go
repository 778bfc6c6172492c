package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJoinKeyPairsParsesCommaList(t *testing.T) {
	pairs, err := parseJoinKeyPairs("1:2,3:4")
	require.NoError(t, err)
	assert.Equal(t, []joinKeyPair{{left: 0, right: 1}, {left: 2, right: 3}}, pairs)
}

func TestParseJoinKeyPairsRejectsMissingColon(t *testing.T) {
	_, err := parseJoinKeyPairs("01")
	assert.Error(t, err)
}

func TestJoinKeyJoinsFieldsCaseSensitiveByDefault(t *testing.T) {
	key := joinKey([]string{"East", "1"}, []int{0}, false)
	assert.Equal(t, "East", key)
}

func TestJoinKeyLowercasesWhenIgnoreCaseRequested(t *testing.T) {
	key := joinKey([]string{"East", "1"}, []int{0}, true)
	assert.Equal(t, "east", key)
}

func TestBuildJoinedRecordDropsRightKeyByDefault(t *testing.T) {
	pairs := []joinKeyPair{{left: 0, right: 0}}
	joined := buildJoinedRecord([]string{"east", "1"}, []string{"east", "x"}, pairs, false)
	assert.Equal(t, []string{"east", "1", "x"}, joined)
}

func TestBuildJoinedRecordKeepsRightKeyWhenRequested(t *testing.T) {
	pairs := []joinKeyPair{{left: 0, right: 0}}
	joined := buildJoinedRecord([]string{"east", "1"}, []string{"east", "x"}, pairs, true)
	assert.Equal(t, []string{"east", "1", "east", "x"}, joined)
}

func TestJoinUnmatchedOutputWithOuterWritesRowUnpadded(t *testing.T) {
	rec, write := joinUnmatchedOutput([]string{"C", "3"}, false, true)
	assert.True(t, write)
	assert.Equal(t, []string{"C", "3"}, rec)
}

func TestJoinUnmatchedOutputWithInvertWritesRowUnpadded(t *testing.T) {
	rec, write := joinUnmatchedOutput([]string{"C", "3"}, true, false)
	assert.True(t, write)
	assert.Equal(t, []string{"C", "3"}, rec)
}

func TestJoinUnmatchedOutputWithNeitherFlagDropsRow(t *testing.T) {
	_, write := joinUnmatchedOutput([]string{"C", "3"}, false, false)
	assert.False(t, write)
}
