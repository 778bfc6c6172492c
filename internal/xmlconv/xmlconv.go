/*
Package xmlconv is the from_xml/to_xml commands' stand-in for spec.md's
C11 external XML tree/event parser collaborator. It is a thin adapter
over the standard library's encoding/xml.Decoder: csvfix's own domain
logic is the tag-path matching, attribute/child-text extraction, and
grouped-element rendering built on top of it, not a general-purpose
XML tree library, so there is nothing here an ecosystem dependency
would replace.
*/
package xmlconv

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/nbutterworth/csvfix/internal/csverr"
)

// FromXMLOptions configures FromXML.
type FromXMLOptions struct {
	RecordPath      string   // "tag1@tag2@..."; suffix-matched against the current DOM path
	IncludeParent   bool     // not read by FromXML: ancestor tags' attribute/text data is never included
	IncludeAttrs    bool     // include the record tag's attributes as fields
	ExcludePaths    []string // "@"-separated paths to skip entirely (and their subtrees)
	TextJoinSep     string   // separator used to join a multi-line text node's lines; default "\n"
}

type xmlRecord struct {
	attrs []string
	text  strings.Builder
}

// FromXML parses r as XML and emits one record per occurrence of the
// element named by opts.RecordPath. A record's fields are, in order:
// the record tag's attribute values (if IncludeAttrs), then the
// concatenation of the record element's own text content, with child
// element text appended in document order.
func FromXML(r io.Reader, opts FromXMLOptions) ([][]string, error) {
	if opts.TextJoinSep == "" {
		opts.TextJoinSep = "\n"
	}

	wantPath := strings.Split(opts.RecordPath, "@")
	excluded := make(map[string]bool, len(opts.ExcludePaths))
	for _, p := range opts.ExcludePaths {
		excluded[p] = true
	}

	dec := xml.NewDecoder(r)

	var (
		records []xmlRecord
		path    []string
		depth   int
		inRec   = -1 // path-stack depth at which the current record started, -1 if not recording
		skip    = -1 // path-stack depth of an excluded subtree currently being skipped, -1 if none
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csverr.Newf("parsing XML: %v", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			path = append(path, t.Name.Local)
			depth++

			if skip >= 0 {
				continue
			}

			if excluded[strings.Join(path, "@")] {
				skip = depth

				continue
			}

			if inRec < 0 && pathMatches(path, wantPath) {
				inRec = depth

				rec := xmlRecord{}
				if opts.IncludeAttrs {
					for _, a := range t.Attr {
						rec.attrs = append(rec.attrs, a.Value)
					}
				}
				records = append(records, rec)
			}

		case xml.CharData:
			if inRec >= 0 && skip < 0 {
				cur := &records[len(records)-1]
				for _, line := range splitNonEmptyLines(string(t)) {
					if cur.text.Len() > 0 {
						cur.text.WriteString(opts.TextJoinSep)
					}
					cur.text.WriteString(line)
				}
			}

		case xml.EndElement:
			if skip == depth {
				skip = -1
			}
			if inRec == depth {
				inRec = -1
			}

			depth--
			path = path[:len(path)-1]
		}
	}

	out := make([][]string, len(records))
	for i, rec := range records {
		out[i] = append(append([]string{}, rec.attrs...), rec.text.String())
	}

	return out, nil
}

// splitNonEmptyLines splits s on newlines, trims surrounding
// whitespace from each line, and drops lines left empty by that
// trim (the whitespace-only text nodes XML formatting introduces
// between elements).
func splitNonEmptyLines(s string) []string {
	var out []string

	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}

	return out
}

func pathMatches(path, want []string) bool {
	if len(path) < len(want) {
		return false
	}

	offset := len(path) - len(want)
	for i, name := range want {
		if path[offset+i] != name {
			return false
		}
	}

	return true
}

// WriteXHTMLTable renders records as an XHTML table, the default
// to_xml output described in spec.md §4.11.
func WriteXHTMLTable(w io.Writer, header []string, records [][]string) error {
	fmt.Fprintln(w, `<table>`)

	if len(header) > 0 {
		fmt.Fprintln(w, "  <tr>")
		for _, h := range header {
			fmt.Fprintf(w, "    <th>%s</th>\n", escapeText(h))
		}
		fmt.Fprintln(w, "  </tr>")
	}

	for _, rec := range records {
		fmt.Fprintln(w, "  <tr>")
		for _, field := range rec {
			fmt.Fprintf(w, "    <td>%s</td>\n", escapeText(field))
		}
		fmt.Fprintln(w, "  </tr>")
	}

	fmt.Fprintln(w, `</table>`)

	return nil
}

func escapeText(s string) string {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return s
	}

	return b.String()
}

// Spec describes an indent-structured XML rendering of CSV records,
// spec.md §4.11's grouped to_xml mode: records sharing the values of
// GroupFields become one parent element wrapping one child element
// per row of the group. Rows are not deduplicated, and each child
// element carries all of the row's fields, grouping fields included.
type Spec struct {
	RootTag     string
	GroupTag    string // wraps each distinct group of GroupFields values
	RecordTag   string // wraps each ungrouped row (or each row within a group)
	FieldTags   []string // tag name per field, by index; empty entry uses "field{n}"
	GroupFields []int    // zero-based field indexes that define a group
	Attributes  map[int]string // field index -> attribute name, rendered on RecordTag instead of as a child element
	CDATAFields map[int]bool   // field indexes rendered as CDATA sections
}

// RenderSpec writes records as grouped, indent-structured XML per
// spec.
func RenderSpec(w io.Writer, records [][]string, spec Spec) error {
	fmt.Fprintf(w, "<%s>\n", spec.RootTag)

	if len(spec.GroupFields) == 0 {
		for _, rec := range records {
			if err := writeRecordElement(w, "  ", rec, spec); err != nil {
				return err
			}
		}

		fmt.Fprintf(w, "</%s>\n", spec.RootTag)

		return nil
	}

	groups, order := groupRecords(records, spec.GroupFields)

	for _, key := range order {
		fmt.Fprintf(w, "  <%s>\n", spec.GroupTag)

		for _, rec := range groups[key] {
			if err := writeRecordElement(w, "    ", rec, spec); err != nil {
				return err
			}
		}

		fmt.Fprintf(w, "  </%s>\n", spec.GroupTag)
	}

	fmt.Fprintf(w, "</%s>\n", spec.RootTag)

	return nil
}

func groupRecords(records [][]string, groupFields []int) (map[string][][]string, []string) {
	groups := map[string][][]string{}

	var order []string

	for _, rec := range records {
		key, _ := buildGroupKey(rec, groupFields)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], rec)
	}

	sort.Strings(order) // deterministic when keys happen to collide across non-adjacent rows

	return groups, order
}

func buildGroupKey(rec []string, fields []int) (string, bool) {
	parts := make([]string, len(fields))

	for i, idx := range fields {
		if idx < 0 || idx >= len(rec) {
			return "", false
		}

		parts[i] = rec[idx]
	}

	return strings.Join(parts, "\x1f"), true
}

func writeRecordElement(w io.Writer, indent string, rec []string, spec Spec) error {
	var attrs strings.Builder

	for idx, name := range spec.Attributes {
		if idx < 0 || idx >= len(rec) {
			continue
		}

		fmt.Fprintf(&attrs, " %s=\"%s\"", name, escapeText(rec[idx]))
	}

	fmt.Fprintf(w, "%s<%s%s>\n", indent, spec.RecordTag, attrs.String())

	for i, field := range rec {
		if _, isAttr := spec.Attributes[i]; isAttr {
			continue
		}

		tag := fieldTag(spec.FieldTags, i)

		if spec.CDATAFields[i] {
			fmt.Fprintf(w, "%s  <%s><![CDATA[%s]]></%s>\n", indent, tag, field, tag)
		} else {
			fmt.Fprintf(w, "%s  <%s>%s</%s>\n", indent, tag, escapeText(field), tag)
		}
	}

	fmt.Fprintf(w, "%s</%s>\n", indent, spec.RecordTag)

	return nil
}

func fieldTag(tags []string, i int) string {
	if i < len(tags) && tags[i] != "" {
		return tags[i]
	}

	return fmt.Sprintf("field%d", i+1)
}
