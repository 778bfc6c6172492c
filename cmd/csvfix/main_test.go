package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunWithNoArgsPrintsBanner(t *testing.T) {
	var out, errOut bytes.Buffer

	status := run([]string{"csvfix"}, &out, &errOut)

	assert.Equal(t, 0, status)
	assert.Contains(t, out.String(), "csvfix")
	assert.Empty(t, errOut.String())
}

func TestRunWithUsageListsCommands(t *testing.T) {
	var out, errOut bytes.Buffer

	status := run([]string{"csvfix", "usage"}, &out, &errOut)

	assert.Equal(t, 0, status)
	assert.Contains(t, out.String(), "echo")
}

func TestRunWithHelpAndNameShowsCommandHelp(t *testing.T) {
	var out, errOut bytes.Buffer

	status := run([]string{"csvfix", "help", "echo"}, &out, &errOut)

	assert.Equal(t, 0, status)
	assert.Contains(t, out.String(), "echo:")
}

func TestRunWithUnknownCommandFails(t *testing.T) {
	var out, errOut bytes.Buffer

	status := run([]string{"csvfix", "nosuchcommand"}, &out, &errOut)

	assert.NotEqual(t, 0, status)
	assert.Contains(t, errOut.String(), "unknown command")
}
