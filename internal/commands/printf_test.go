package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrintfFormatSplitsLiteralsAndConversions(t *testing.T) {
	directives, err := parsePrintfFormat("id=%d name=%s%%")

	assert.NoError(t, err)
	assert.Equal(t, []printfDirective{
		{literal: "id="},
		{conv: 'd'},
		{literal: " name="},
		{conv: 's'},
		{literal: "%"},
	}, directives)
}

func TestParsePrintfFormatRecognizesSkipDirective(t *testing.T) {
	directives, err := parsePrintfFormat("%@-%s")

	assert.NoError(t, err)
	assert.Equal(t, byte('@'), directives[0].conv)
	assert.Equal(t, byte('s'), directives[2].conv)
}

func TestParsePrintfFormatRejectsUnknownConversion(t *testing.T) {
	_, err := parsePrintfFormat("%z")
	assert.Error(t, err)
}

func TestRenderPrintfAppliesConversionsInOrder(t *testing.T) {
	directives, err := parsePrintfFormat("%s=%d")
	assert.NoError(t, err)

	out, err := renderPrintf(directives, []string{"x", "42"}, false)

	assert.NoError(t, err)
	assert.Equal(t, "x=42", out)
}

func TestRenderPrintfSkipDirectiveConsumesFieldWithoutEmitting(t *testing.T) {
	directives, err := parsePrintfFormat("%@%s")
	assert.NoError(t, err)

	out, err := renderPrintf(directives, []string{"skip-me", "keep-me"}, false)

	assert.NoError(t, err)
	assert.Equal(t, "keep-me", out)
}

func TestRenderPrintfQuoteDoublesEmbeddedQuotes(t *testing.T) {
	directives, err := parsePrintfFormat("%s")
	assert.NoError(t, err)

	out, err := renderPrintf(directives, []string{`a"b`}, true)

	assert.NoError(t, err)
	assert.Equal(t, `"a""b"`, out)
}

func TestConvertPrintfValueHex(t *testing.T) {
	out, err := convertPrintfValue('x', "255")

	assert.NoError(t, err)
	assert.Equal(t, "ff", out)
}

func TestConvertPrintfValueRejectsNonNumeric(t *testing.T) {
	_, err := convertPrintfValue('d', "abc")
	assert.Error(t, err)
}
