package commands

import (
	"io"
	"strings"

	"github.com/nbutterworth/csvfix/internal/cmdutil"
	"github.com/nbutterworth/csvfix/internal/csverr"
	"github.com/nbutterworth/csvfix/internal/registry"
	"github.com/nbutterworth/csvfix/internal/xmlconv"
)

func init() {
	registry.Register("to_xml", func() registry.Command { return &toXMLCommand{} })
}

// toXMLCommand renders CSV input as XML: by default an XHTML table,
// or, when -root is given, an indent-structured
// document with optional grouping, attributes, and CDATA fields.
type toXMLCommand struct{}

func (c *toXMLCommand) Name() string { return "to_xml" }

func (c *toXMLCommand) Help() string {
	return cmdutil.ExpandHelp("convert CSV input to XML#ALL,SKIP,PASS")
}

func (c *toXMLCommand) Run(args []string, stdout, stderr io.Writer) int {
	fs := cmdutil.NewFlagSet("to_xml")

	var rootTag, groupTag, recordTag, fieldTagsRaw, groupFieldsRaw, attrsRaw, cdataRaw string

	fs.Set.StringVar(&rootTag, "root", "", "root element tag; enables the structured spec mode")
	fs.Set.StringVar(&groupTag, "gt", "group", "group-wrapper element tag")
	fs.Set.StringVar(&recordTag, "rt", "row", "record element tag")
	fs.Set.StringVar(&fieldTagsRaw, "ft", "", "comma-separated field element tags, in field order")
	fs.Set.StringVar(&groupFieldsRaw, "gf", "", "fields that form the grouping key")
	fs.Set.StringVar(&attrsRaw, "af", "", "comma-separated field:attrname pairs rendered as record attributes instead of child elements")
	fs.Set.StringVar(&cdataRaw, "cf", "", "comma-separated 1-based field indexes to wrap in CDATA")

	m, err := openManager(fs, args)
	if err != nil {
		return fail(stderr, err)
	}
	defer m.Close()

	var records [][]string
	var header []string
	first := true

	for {
		rec, err := m.ReadRecord()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fail(stderr, err)
		}

		skip, err := fs.Skip(rec)
		if err != nil {
			return fail(stderr, err)
		}
		if skip {
			continue
		}

		pass, err := fs.Pass(rec)
		if err != nil {
			return fail(stderr, err)
		}
		if pass {
			if err := m.WriteRecord(rec, false); err != nil {
				return fail(stderr, err)
			}

			continue
		}

		if first {
			header = rec
			first = false
		}

		records = append(records, rec)
	}

	if rootTag == "" {
		if err := xmlconv.WriteXHTMLTable(m.Writer(), header, records); err != nil {
			return fail(stderr, err)
		}

		return 0
	}

	spec, err := buildXMLSpec(rootTag, groupTag, recordTag, fieldTagsRaw, groupFieldsRaw, attrsRaw, cdataRaw)
	if err != nil {
		return fail(stderr, err)
	}

	if err := xmlconv.RenderSpec(m.Writer(), records, spec); err != nil {
		return fail(stderr, err)
	}

	return 0
}

func buildXMLSpec(rootTag, groupTag, recordTag, fieldTagsRaw, groupFieldsRaw, attrsRaw, cdataRaw string) (xmlconv.Spec, error) {
	spec := xmlconv.Spec{
		RootTag:   rootTag,
		GroupTag:  groupTag,
		RecordTag: recordTag,
	}

	if fieldTagsRaw != "" {
		spec.FieldTags = strings.Split(fieldTagsRaw, ",")
	}

	if groupFieldsRaw != "" {
		fields, err := cmdutil.ParseFieldList(groupFieldsRaw)
		if err != nil {
			return xmlconv.Spec{}, err
		}
		spec.GroupFields = fields
	}

	if attrsRaw != "" {
		spec.Attributes = map[int]string{}
		for _, pair := range strings.Split(attrsRaw, ",") {
			idxStr, name, ok := strings.Cut(pair, ":")
			if !ok {
				return xmlconv.Spec{}, csverr.Newf("invalid attribute spec %q (want field:name)", pair)
			}

			fields, err := cmdutil.ParseFieldList(idxStr)
			if err != nil || len(fields) != 1 {
				return xmlconv.Spec{}, csverr.Newf("invalid attribute field index %q", idxStr)
			}

			spec.Attributes[fields[0]] = name
		}
	}

	if cdataRaw != "" {
		fields, err := cmdutil.ParseFieldList(cdataRaw)
		if err != nil {
			return xmlconv.Spec{}, err
		}

		spec.CDATAFields = map[int]bool{}
		for _, f := range fields {
			spec.CDATAFields[f] = true
		}
	}

	return spec, nil
}
