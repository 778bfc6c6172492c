package csvcore

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamEmbeddedNewlineAdvancesLineNumber(t *testing.T) {
	s := NewStream(strings.NewReader("\"a\nb\",c\n"), StreamOptions{})

	rec, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, Record{"a\nb", "c"}, rec)
	assert.Equal(t, 2, s.LineNumber())

	_, err = s.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestStreamIgnoreBlankLines(t *testing.T) {
	s := NewStream(strings.NewReader("1,2\n\n   \n3,4\n"), StreamOptions{IgnoreBlankLines: true})

	r1, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, Record{"1", "2"}, r1)

	r2, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, Record{"3", "4"}, r2)
}

func TestStreamBuildColumnMap(t *testing.T) {
	s := NewStream(strings.NewReader("name,age\nalice,30\n"), StreamOptions{BuildColumnMap: true})

	rec, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, Record{"alice", "30"}, rec)

	idx, ok := s.ColumnIndex("age")
	require.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestStreamSkipHeaderRecord(t *testing.T) {
	s := NewStream(strings.NewReader("h1,h2\n1,2\n"), StreamOptions{SkipHeaderRecord: true})

	rec, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, Record{"1", "2"}, rec)
}

func TestStreamDuplicateColumnNameIsError(t *testing.T) {
	s := NewStream(strings.NewReader("a,a\n1,2\n"), StreamOptions{BuildColumnMap: true})

	_, err := s.Next()
	assert.Error(t, err)
}
