package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectFieldsReordersAndPadsMissing(t *testing.T) {
	rec := []string{"a", "b", "c"}

	out := selectFields(rec, []int{2, 0, 5})

	assert.Equal(t, []string{"c", "a", ""}, out)
}

func TestResolveNameOrderMapsHeaderNames(t *testing.T) {
	header := []string{"id", "name", "amount"}

	out := resolveNameOrder(header, []string{"amount", "id", "missing"})

	assert.Equal(t, []int{2, 0, -1}, out)
}

func TestSelectFieldsOptOmitsMissingWhenRequested(t *testing.T) {
	rec := []string{"a", "b"}

	out := selectFieldsOpt(rec, []int{0, 5, 1}, true)

	assert.Equal(t, []string{"a", "b"}, out)
}
