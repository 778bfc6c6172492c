package csvcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLineTrailingSeparator(t *testing.T) {
	rec, err := ParseLine("1,2,", ',', false)
	require.NoError(t, err)
	assert.Equal(t, Record{"1", "2", ""}, rec)
}

func TestParseLineQuotedFields(t *testing.T) {
	rec, err := ParseLine(`"1","2",`, ',', false)
	require.NoError(t, err)
	assert.Equal(t, Record{"1", "2", ""}, rec)
}

func TestParseLineNoSeparator(t *testing.T) {
	rec, err := ParseLine("onlyfield", ',', false)
	require.NoError(t, err)
	assert.Equal(t, Record{"onlyfield"}, rec)
}

func TestParseLineDoubledQuoteEscape(t *testing.T) {
	rec, err := ParseLine(`"e""f",g`, ',', false)
	require.NoError(t, err)
	assert.Equal(t, Record{`e"f`, "g"}, rec)
}

func TestParseLineEmbeddedNewline(t *testing.T) {
	rec, err := ParseLine("\"a\nb\",c", ',', false)
	require.NoError(t, err)
	assert.Equal(t, Record{"a\nb", "c"}, rec)
}

func TestParseLineUnterminatedQuote(t *testing.T) {
	_, err := ParseLine(`"unterminated`, ',', false)
	assert.ErrorIs(t, err, ErrUnterminatedQuote)
}

func TestParseLineUnexpectedQuoteStrict(t *testing.T) {
	_, err := ParseLine(`ab"cd,e`, ',', true)
	assert.ErrorIs(t, err, ErrUnexpectedQuote)
}

func TestParseLineUnexpectedQuoteLax(t *testing.T) {
	rec, err := ParseLine(`ab"cd,e`, ',', false)
	require.NoError(t, err)
	assert.Equal(t, Record{`ab"cd`, "e"}, rec)
}

func TestIsValidSeparator(t *testing.T) {
	assert.True(t, IsValidSeparator(';'))
	assert.True(t, IsValidSeparator('|'))
	assert.False(t, IsValidSeparator('"'))
	assert.False(t, IsValidSeparator('a'))
	assert.False(t, IsValidSeparator('5'))
	assert.False(t, IsValidSeparator(' '))
}
