package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseISODateParsesValidDate(t *testing.T) {
	d, err := parseISODate("2020-12-25")

	assert.NoError(t, err)
	assert.Equal(t, 2020, d.Year)
	assert.Equal(t, 12, d.Month)
	assert.Equal(t, 25, d.Day)
}

func TestParseISODateRejectsMalformedInput(t *testing.T) {
	_, err := parseISODate("not-a-date")
	assert.Error(t, err)
}
