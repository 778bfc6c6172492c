package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccumulateSquashRecordSumsNumericFields(t *testing.T) {
	g := &squashGroup{
		sums:     make([]float64, 3),
		summable: make([]bool, 3),
		seen:     make([]bool, 3),
	}
	keySet := map[int]bool{0: true}

	accumulateSquashRecord(g, []string{"east", "10", "5"}, keySet)
	accumulateSquashRecord(g, []string{"east", "3", "2"}, keySet)

	assert.Equal(t, 13.0, g.sums[1])
	assert.Equal(t, 7.0, g.sums[2])
	assert.True(t, g.summable[1])
	assert.True(t, g.summable[2])
}

func TestAccumulateSquashRecordIgnoresNonNumericField(t *testing.T) {
	g := &squashGroup{
		sums:     make([]float64, 2),
		summable: make([]bool, 2),
		seen:     make([]bool, 2),
	}
	keySet := map[int]bool{0: true}

	accumulateSquashRecord(g, []string{"east", "not-a-number"}, keySet)

	assert.False(t, g.summable[1])
}
