package gedcom_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/gedgraph/pkg/errcode"
	"github.com/gnames/gedgraph/pkg/gedcom"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseFile(t *testing.T, name string) *gedcom.Document {
	f, err := os.Open(filepath.Join("testdata", name))
	require.NoError(t, err)
	defer f.Close()

	doc, err := gedcom.Parse(f)
	require.NoError(t, err)
	return doc
}

func TestParse(t *testing.T) {
	doc := parseFile(t, "smith.ged")

	require.NotNil(t, doc.Header)
	assert.Len(t, doc.Records, 5)
	assert.Len(t, doc.Individuals(), 3)
	assert.Len(t, doc.Families(), 1)

	indi := doc.Individuals()[0]
	assert.Equal(t, "@I1@", gedcom.XrefOf(indi))
	assert.Equal(t, "John /Smith/", gedcom.ChildValue(indi, "NAME"))

	birt := gedcom.Child(indi, "BIRT")
	require.NotNil(t, birt)
	assert.Equal(t, "ABT 1850", gedcom.ChildValue(birt, "DATE"))

	note := gedcom.Child(indi, "NOTE")
	require.NotNil(t, note)
	assert.Equal(t, "Served in the militia.", note.Value())

	notes := doc.Notes()
	assert.Equal(t, "Buried next to his father\nin the old cemetery.", notes["@N1@"])
}

func TestHeaderAttrs(t *testing.T) {
	doc := parseFile(t, "smith.ged")
	h := doc.HeaderAttrs()
	assert.Equal(t, "FamilyTreeBuilder", h.SourceSystem)
	assert.Equal(t, "5.1", h.SourceVersion)
	assert.Equal(t, "5.5.1", h.GedcomVersion)
	assert.Equal(t, "UTF-8", h.Charset)
	assert.Equal(t, "English", h.Language)

	doc, err := gedcom.Parse(strings.NewReader("0 @I1@ INDI\n1 NAME A /B/\n"))
	require.NoError(t, err)
	assert.Nil(t, doc.Header)
	assert.Equal(t, gedcom.HeaderAttrs{}, doc.HeaderAttrs())
}

func TestParseTolerance(t *testing.T) {
	tests := []struct {
		msg   string
		input string
		indi  int
	}{
		{"bom and crlf", "\uFEFF0 HEAD\r\n0 @I1@ INDI\r\n1 NAME A /B/\r\n0 TRLR\r\n", 1},
		{"blank lines", "0 HEAD\n\n0 @I1@ INDI\n\n1 SEX M\n", 1},
		{"indented lines", "0 HEAD\n  0 @I1@ INDI\n    1 SEX M\n", 1},
		{"lower case tag", "0 HEAD\n0 @I1@ indi\n1 name A /B/\n", 1},
		{"no individuals", "0 HEAD\n1 CHAR UTF-8\n0 TRLR\n", 0},
	}

	for _, v := range tests {
		doc, err := gedcom.Parse(strings.NewReader(v.input))
		require.NoError(t, err, v.msg)
		assert.Len(t, doc.Individuals(), v.indi, v.msg)
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		msg   string
		input string
	}{
		{"empty", ""},
		{"only spaces", "   \n\n"},
		{"not gedcom", "<html><body>hello</body></html>"},
		{"starts deep", "1 NAME A /B/\n"},
		{"level jump", "0 HEAD\n0 @I1@ INDI\n2 DATE 1900\n"},
		{"bad xref", "0 HEAD\n0 @I1 INDI\n"},
		{"xref without tag", "0 HEAD\n0 @I1@\n"},
		{"bad tag", "0 HEAD\n0 @I1@ IN-DI\n"},
	}

	for _, v := range tests {
		doc, err := gedcom.Parse(strings.NewReader(v.input))
		require.Error(t, err, v.msg)
		assert.Nil(t, doc, v.msg)

		gnErr, ok := err.(*gn.Error)
		require.True(t, ok, v.msg)
		assert.Equal(t, errcode.ImportMalformedFileError, gnErr.Code, v.msg)
	}
}
