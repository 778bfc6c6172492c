package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nbutterworth/csvfix/internal/datefmt"
)

func TestRewriteDateFieldSuccess(t *testing.T) {
	mask, err := datefmt.ParseMask("d/m/y")
	require.NoError(t, err)

	out, ok := rewriteDateField([]string{"name", "25/12/2020"}, 1, mask)

	assert.True(t, ok)
	assert.Equal(t, []string{"name", "2020-12-25"}, out)
}

func TestRewriteDateFieldFailureLeavesRecordUnchanged(t *testing.T) {
	mask, err := datefmt.ParseMask("d/m/y")
	require.NoError(t, err)

	out, ok := rewriteDateField([]string{"name", "not-a-date"}, 1, mask)

	assert.False(t, ok)
	assert.Equal(t, []string{"name", "not-a-date"}, out)
}

func TestParseDatePolicyRecognizesAllNames(t *testing.T) {
	for _, name := range []string{"all", "good", "bad"} {
		_, err := parseDatePolicy(name)
		assert.NoError(t, err)
	}
}

func TestParseDatePolicyRejectsUnknownName(t *testing.T) {
	_, err := parseDatePolicy("ugly")
	assert.Error(t, err)
}
