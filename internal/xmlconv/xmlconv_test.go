package xmlconv

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromXMLEmitsOneRecordPerOccurrence(t *testing.T) {
	doc := `<rows><row id="1">Alice</row><row id="2">Bob</row></rows>`

	recs, err := FromXML(strings.NewReader(doc), FromXMLOptions{RecordPath: "rows@row", IncludeAttrs: true})
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"1", "Alice"}, {"2", "Bob"}}, recs)
}

func TestFromXMLWithoutAttrsOmitsThem(t *testing.T) {
	doc := `<rows><row id="1">Alice</row></rows>`

	recs, err := FromXML(strings.NewReader(doc), FromXMLOptions{RecordPath: "row"})
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"Alice"}}, recs)
}

func TestFromXMLExcludesPaths(t *testing.T) {
	doc := `<rows><meta><row id="9">skip me</row></meta><row id="1">keep</row></rows>`

	recs, err := FromXML(strings.NewReader(doc), FromXMLOptions{
		RecordPath:   "row",
		IncludeAttrs: true,
		ExcludePaths: []string{"rows@meta"},
	})
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"1", "keep"}}, recs)
}

func TestFromXMLJoinsMultiLineText(t *testing.T) {
	doc := "<row>line one\nline two</row>"

	recs, err := FromXML(strings.NewReader(doc), FromXMLOptions{RecordPath: "row", TextJoinSep: "|"})
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"line one|line two"}}, recs)
}

func TestWriteXHTMLTable(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteXHTMLTable(&buf, []string{"name", "age"}, [][]string{{"Alice", "30"}}))

	out := buf.String()
	assert.Contains(t, out, "<th>name</th>")
	assert.Contains(t, out, "<td>Alice</td>")
}

func TestRenderSpecWithoutGrouping(t *testing.T) {
	var buf bytes.Buffer

	spec := Spec{RootTag: "data", RecordTag: "row", FieldTags: []string{"name", "age"}}
	require.NoError(t, RenderSpec(&buf, [][]string{{"Alice", "30"}}, spec))

	out := buf.String()
	assert.Contains(t, out, "<data>")
	assert.Contains(t, out, "<row>")
	assert.Contains(t, out, "<name>Alice</name>")
	assert.Contains(t, out, "<age>30</age>")
}

func TestRenderSpecEscapesAttributeValues(t *testing.T) {
	var buf bytes.Buffer

	spec := Spec{
		RootTag:    "orders",
		GroupTag:   "customer",
		RecordTag:  "order",
		Attributes: map[int]string{0: "note"},
	}

	records := [][]string{{`a & b <c> "d"`}}

	require.NoError(t, RenderSpec(&buf, records, spec))

	out := buf.String()
	assert.Contains(t, out, `note="a &amp; b &lt;c&gt; &#34;d&#34;"`)
	assert.NotContains(t, out, `note="a & b`)
}

func TestRenderSpecWithGroupingAndAttributesAndCDATA(t *testing.T) {
	var buf bytes.Buffer

	spec := Spec{
		RootTag:     "orders",
		GroupTag:    "customer",
		RecordTag:   "order",
		FieldTags:   []string{"", "id", "note"},
		GroupFields: []int{0},
		Attributes:  map[int]string{1: "id"},
		CDATAFields: map[int]bool{2: true},
	}

	records := [][]string{
		{"alice", "1", "first"},
		{"alice", "2", "second"},
		{"bob", "3", "third"},
	}

	require.NoError(t, RenderSpec(&buf, records, spec))

	out := buf.String()
	assert.Contains(t, out, `<order id="1">`)
	assert.Contains(t, out, "<![CDATA[first]]>")
	assert.Equal(t, 2, strings.Count(out, "<customer>"))
}
