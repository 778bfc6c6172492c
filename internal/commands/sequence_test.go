package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSequenceValuePlain(t *testing.T) {
	assert.Equal(t, "5", formatSequenceValue(5, 0, "@"))
}

func TestFormatSequenceValueZeroPadded(t *testing.T) {
	assert.Equal(t, "005", formatSequenceValue(5, 3, "@"))
}

func TestFormatSequenceValueAppliesMask(t *testing.T) {
	assert.Equal(t, "ID-007", formatSequenceValue(7, 3, "ID-@"))
}
