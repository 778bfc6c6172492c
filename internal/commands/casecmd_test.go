package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleCaseCapitalizesEachWord(t *testing.T) {
	assert.Equal(t, "John Q Public", titleCase("JOHN Q public"))
}

func TestTitleCasePreservesWhitespaceRuns(t *testing.T) {
	assert.Equal(t, "A  B", titleCase("a  b"))
}

func TestCaseCommandConvertFn(t *testing.T) {
	upper := &caseCommand{mode: caseUpper}
	lower := &caseCommand{mode: caseLower}
	mixed := &caseCommand{mode: caseMixed}

	assert.Equal(t, "ABC", upper.convertFn()("aBc"))
	assert.Equal(t, "abc", lower.convertFn()("aBc"))
	assert.Equal(t, "Abc", mixed.convertFn()("aBc"))
}

func TestCaseCommandNames(t *testing.T) {
	assert.Equal(t, "upper", (&caseCommand{mode: caseUpper}).Name())
	assert.Equal(t, "lower", (&caseCommand{mode: caseLower}).Name())
	assert.Equal(t, "mixed", (&caseCommand{mode: caseMixed}).Name())
}
