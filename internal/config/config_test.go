package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	p := filepath.Join(dir, FileName())
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))

	return p
}

func TestLoadFileParsesDefaultsAndAlias(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "# a comment\n\ndefaults -smq -ibl\nalias o order -fn a,b\n")

	cfg, err := loadFile(filepath.Join(dir, FileName()))
	require.NoError(t, err)
	assert.Equal(t, "-smq -ibl", cfg.Defaults)
	assert.Equal(t, "order -fn a,b", cfg.Aliases["o"])
}

func TestLoadFileDuplicateDefaultsIsError(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "defaults -smq\ndefaults -ibl\n")

	_, err := loadFile(filepath.Join(dir, FileName()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "once only")
}

func TestLoadFileDuplicateAliasIsError(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "alias o order\nalias o head\n")

	_, err := loadFile(filepath.Join(dir, FileName()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate alias")
}

func TestLoadFileInvalidDirectiveIsError(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "bogus thing\n")

	_, err := loadFile(filepath.Join(dir, FileName()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration entry")
}

func TestLoadFileMissingReturnsNilNil(t *testing.T) {
	dir := t.TempDir()
	cfg, err := loadFile(filepath.Join(dir, FileName()))
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestRewriteArgsAlias(t *testing.T) {
	cfg := &Config{Aliases: map[string]string{"o": "order -fn a,b"}}

	out, err := cfg.RewriteArgs([]string{"csvfix", "o", "in.csv"})
	require.NoError(t, err)
	assert.Equal(t, []string{"csvfix", "order", "-fn", "a,b", "in.csv"}, out)
}

func TestRewriteArgsDefaults(t *testing.T) {
	cfg := &Config{Defaults: "-smq -ibl", Aliases: map[string]string{}}

	out, err := cfg.RewriteArgs([]string{"csvfix", "echo", "in.csv"})
	require.NoError(t, err)
	assert.Equal(t, []string{"csvfix", "echo", "-smq", "-ibl", "in.csv"}, out)
}

func TestRewriteArgsNoMatchReturnsUnchanged(t *testing.T) {
	cfg := &Config{Aliases: map[string]string{}}

	out, err := cfg.RewriteArgs([]string{"csvfix", "echo", "in.csv"})
	require.NoError(t, err)
	assert.Equal(t, []string{"csvfix", "echo", "in.csv"}, out)
}

func TestTokenizeRespectsQuotedSpans(t *testing.T) {
	toks, err := Tokenize(`-hdr "a b" -sep ,`)
	require.NoError(t, err)
	assert.Equal(t, []string{"-hdr", "a b", "-sep", ","}, toks)
}

func TestTokenizeUnbalancedQuoteIsError(t *testing.T) {
	_, err := Tokenize(`-hdr "a b`)
	assert.Error(t, err)
}
