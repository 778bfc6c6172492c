package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileSplitRouterNumbersKeysSequentially(t *testing.T) {
	r := &fileSplitRouter{prefix: "split", ext: ".csv", dir: ".", numbered: map[string]int{}}

	assert.Equal(t, "split0.csv", r.fileNameFor("east"))
	assert.Equal(t, "split1.csv", r.fileNameFor("west"))
	assert.Equal(t, "split0.csv", r.fileNameFor("east"))
}

func TestFileSplitRouterDerivesNameFromKeyWhenRequested(t *testing.T) {
	r := &fileSplitRouter{prefix: "split", ext: ".csv", dir: ".", useKeyNames: true, numbered: map[string]int{}}

	assert.Equal(t, "split_east.csv", r.fileNameFor("east"))
}

func TestFileSplitRouterSanitizesKeySeparatorInDerivedName(t *testing.T) {
	r := &fileSplitRouter{prefix: "split", ext: ".csv", dir: ".", useKeyNames: true, numbered: map[string]int{}}

	assert.Equal(t, "split_east_retail.csv", r.fileNameFor("east\x1fretail"))
}
