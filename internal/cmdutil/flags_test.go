package cmdutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkipTreatsEmptyExpressionResultAsTruthy(t *testing.T) {
	fs := NewFlagSet("test")
	require.NoError(t, fs.Parse([]string{"-skip", "$5"}))

	skip, err := fs.Skip([]string{"a"})
	require.NoError(t, err)
	assert.True(t, skip)
}

func TestSkipTreatsZeroAsFalsy(t *testing.T) {
	fs := NewFlagSet("test")
	require.NoError(t, fs.Parse([]string{"-skip", "0"}))

	skip, err := fs.Skip([]string{"a"})
	require.NoError(t, err)
	assert.False(t, skip)
}

func TestPassTreatsEmptyExpressionResultAsTruthy(t *testing.T) {
	fs := NewFlagSet("test")
	require.NoError(t, fs.Parse([]string{"-pass", "$5"}))

	pass, err := fs.Pass([]string{"a"})
	require.NoError(t, err)
	assert.True(t, pass)
}
