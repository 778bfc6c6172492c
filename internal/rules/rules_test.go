package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredRuleFlagsMissingField(t *testing.T) {
	r, err := New("required", []int{0, 2}, nil)
	require.NoError(t, err)

	results := r.Apply([]string{"a", "b"})
	require.Len(t, results, 1)
	assert.Equal(t, 2, results[0].FieldIndex)
}

func TestNotEmptyRuleFlagsWhitespaceOnly(t *testing.T) {
	r, err := New("notempty", []int{0, 1}, nil)
	require.NoError(t, err)

	results := r.Apply([]string{"a", "   "})
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].FieldIndex)
}

func TestValuesRule(t *testing.T) {
	r, err := New("values", []int{0}, []string{"red", "green", "blue"})
	require.NoError(t, err)

	assert.Empty(t, r.Apply([]string{"red"}))
	assert.NotEmpty(t, r.Apply([]string{"purple"}))
}

func TestNotValuesRule(t *testing.T) {
	r, err := New("notvalues", []int{0}, []string{"bad"})
	require.NoError(t, err)

	assert.Empty(t, r.Apply([]string{"ok"}))
	assert.NotEmpty(t, r.Apply([]string{"bad"}))
}

func TestNumericRuleWithoutRanges(t *testing.T) {
	r, err := New("numeric", []int{0}, nil)
	require.NoError(t, err)

	assert.Empty(t, r.Apply([]string{"3.14"}))
	assert.NotEmpty(t, r.Apply([]string{"abc"}))
}

func TestNumericRuleWithRanges(t *testing.T) {
	r, err := New("numeric", []int{0}, []string{"0:10", "90:100"})
	require.NoError(t, err)

	assert.Empty(t, r.Apply([]string{"5"}))
	assert.Empty(t, r.Apply([]string{"95"}))
	assert.NotEmpty(t, r.Apply([]string{"50"}))
}

func TestLengthRule(t *testing.T) {
	r, err := New("length", []int{0}, []string{"1:3"})
	require.NoError(t, err)

	assert.Empty(t, r.Apply([]string{"ab"}))
	assert.NotEmpty(t, r.Apply([]string{"abcd"}))
}

func TestFieldsRule(t *testing.T) {
	r, err := New("fields", nil, []string{"2:3"})
	require.NoError(t, err)

	assert.Empty(t, r.Apply([]string{"a", "b"}))
	assert.NotEmpty(t, r.Apply([]string{"a"}))
	assert.NotEmpty(t, r.Apply([]string{"a", "b", "c", "d"}))
}

func TestLookupRule(t *testing.T) {
	dir := t.TempDir()
	lookupFile := filepath.Join(dir, "codes.csv")
	require.NoError(t, os.WriteFile(lookupFile, []byte("US,United States\nCA,Canada\n"), 0o644))

	r, err := New("lookup", nil, []string{"1:1", lookupFile})
	require.NoError(t, err)

	assert.Empty(t, r.Apply([]string{"US", "anything"}))
	assert.NotEmpty(t, r.Apply([]string{"FR", "anything"}))
}

func TestDateRuleMaskOnly(t *testing.T) {
	r, err := New("date", []int{0}, []string{"d/m/y"})
	require.NoError(t, err)

	assert.Empty(t, r.Apply([]string{"5/3/2024"}))
	assert.NotEmpty(t, r.Apply([]string{"32/3/2024"}))
}

func TestDateRuleWithRange(t *testing.T) {
	r, err := New("date", []int{0}, []string{"d/m/y", "2024-01-01:2024-12-31"})
	require.NoError(t, err)

	assert.Empty(t, r.Apply([]string{"5/3/2024"}))
	assert.NotEmpty(t, r.Apply([]string{"5/3/2025"}))
}

func TestNewUnknownRuleIsError(t *testing.T) {
	_, err := New("bogus", nil, nil)
	assert.Error(t, err)
}
