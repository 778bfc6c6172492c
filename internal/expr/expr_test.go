package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eval(t *testing.T, text string, fields ...string) string {
	t.Helper()
	e, err := Compile(text)
	require.NoError(t, err)
	v, err := e.Eval(fields)
	require.NoError(t, err)

	return v
}

func TestArithmetic(t *testing.T) {
	assert.Equal(t, "42", eval(t, "$2+1", "x", "41"))
	assert.Equal(t, "6", eval(t, "2*3"))
	assert.Equal(t, "1", eval(t, "10/10"))
}

func TestStringConcatenationFallback(t *testing.T) {
	assert.Equal(t, "x42", eval(t, `$1+$2`, "x", "42"))
}

func TestComparisonAndBoolean(t *testing.T) {
	assert.Equal(t, "1", eval(t, "$1 == 41", "41"))
	assert.Equal(t, "0", eval(t, "$1 != 41", "41"))
	assert.Equal(t, "1", eval(t, `$1 == "abc"`, "abc"))
	assert.Equal(t, "1", eval(t, "$1 > 1 && $2 < 10", "5", "3"))
	assert.Equal(t, "1", eval(t, "$1 > 100 || $2 < 10", "5", "3"))
	assert.Equal(t, "0", eval(t, "!($1 > 1)", "5"))
}

func TestDivisionByZero(t *testing.T) {
	e, err := Compile("$1/0")
	require.NoError(t, err)
	_, err = e.Eval([]string{"5"})
	assert.Error(t, err)
}

func TestMissingParamIsEmptyString(t *testing.T) {
	assert.Equal(t, "", eval(t, "$5"))
}

func TestTruthyTreatsEmptyStringAsTrue(t *testing.T) {
	assert.True(t, truthy(""))
	assert.True(t, truthy("anything"))
	assert.False(t, truthy("0"))
}

func TestRNGSeed(t *testing.T) {
	SetRNGSeed(42)
	assert.Equal(t, int64(42), RNGSeed())
}
