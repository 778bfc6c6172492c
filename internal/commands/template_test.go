package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTemplateFieldReferences(t *testing.T) {
	parts, err := parseTemplate("name={1}, amount={2}")

	assert.NoError(t, err)

	out, err := renderTemplate(parts, []string{"Ann", "42"})
	assert.NoError(t, err)
	assert.Equal(t, "name=Ann, amount=42", out)
}

func TestParseTemplateEscapes(t *testing.T) {
	parts, err := parseTemplate(`line1\nline2\t\{literal\}`)
	assert.NoError(t, err)

	out, err := renderTemplate(parts, nil)
	assert.NoError(t, err)
	assert.Equal(t, "line1\nline2\t{literal}", out)
}

func TestParseTemplateExpression(t *testing.T) {
	parts, err := parseTemplate("total={@$1+$2}")
	assert.NoError(t, err)

	out, err := renderTemplate(parts, []string{"2", "3"})
	assert.NoError(t, err)
	assert.Equal(t, "total=5", out)
}

func TestParseTemplateUnterminatedBraceIsError(t *testing.T) {
	_, err := parseTemplate("name={1")
	assert.Error(t, err)
}

func TestParseTemplateInvalidFieldReferenceIsError(t *testing.T) {
	_, err := parseTemplate("{abc}")
	assert.Error(t, err)
}
