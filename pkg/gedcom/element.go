// Package gedcom reads GEDCOM 5.5 text into a tree of elements and
// extracts flat attribute bags for individuals and families.
//
// The extractor only relies on the Element interface, so any GEDCOM
// library can be plugged in by wrapping its nodes.
package gedcom

// Element is a node of a GEDCOM tree: a tag, a scalar value and
// nested elements.
type Element interface {
	Tag() string
	Value() string
	Children() []Element
}

// Referable is implemented by elements that carry a cross-reference id,
// such as "@I1@" on an INDI record.
type Referable interface {
	Xref() string
}

// Node is the Element produced by Parse.
type Node struct {
	Level    int
	XrefID   string
	TagName  string
	Val      string
	Line     int
	Elements []*Node
}

func (n *Node) Tag() string   { return n.TagName }
func (n *Node) Value() string { return n.Val }
func (n *Node) Xref() string  { return n.XrefID }

func (n *Node) Children() []Element {
	res := make([]Element, len(n.Elements))
	for i := range n.Elements {
		res[i] = n.Elements[i]
	}
	return res
}

// Document is a parsed GEDCOM file.
type Document struct {
	// Header is the HEAD record, nil if the file has none.
	Header Element

	// Records are all level-0 records except HEAD and TRLR, in file order.
	Records []Element
}

// Individuals returns INDI records in file order.
func (d *Document) Individuals() []Element {
	return d.byTag("INDI")
}

// Families returns FAM records in file order.
func (d *Document) Families() []Element {
	return d.byTag("FAM")
}

// Notes maps NOTE record ids to their text.
func (d *Document) Notes() map[string]string {
	res := make(map[string]string)
	for _, v := range d.byTag("NOTE") {
		id := XrefOf(v)
		if id == "" {
			continue
		}
		res[id] = v.Value()
	}
	return res
}

func (d *Document) byTag(tag string) []Element {
	var res []Element
	for _, v := range d.Records {
		if v.Tag() == tag {
			res = append(res, v)
		}
	}
	return res
}

// XrefOf returns the cross-reference id of an element or an empty string.
func XrefOf(el Element) string {
	if r, ok := el.(Referable); ok {
		return r.Xref()
	}
	return ""
}

// Child returns the first direct child with the given tag.
func Child(el Element, tag string) Element {
	for _, v := range el.Children() {
		if v.Tag() == tag {
			return v
		}
	}
	return nil
}

// ChildValue returns the value of the first direct child with the given
// tag, or an empty string.
func ChildValue(el Element, tag string) string {
	if c := Child(el, tag); c != nil {
		return c.Value()
	}
	return ""
}

// HeaderAttrs is the provenance found in the HEAD record.
type HeaderAttrs struct {
	SourceSystem  string `json:"source_system,omitempty"`
	SourceVersion string `json:"source_version,omitempty"`
	GedcomVersion string `json:"gedcom_version,omitempty"`
	Charset       string `json:"charset,omitempty"`
	Language      string `json:"language,omitempty"`
}

// HeaderAttrs reads HEAD.SOUR, HEAD.GEDC.VERS, HEAD.CHAR and HEAD.LANG.
func (d *Document) HeaderAttrs() HeaderAttrs {
	var res HeaderAttrs
	if d.Header == nil {
		return res
	}
	if sour := Child(d.Header, "SOUR"); sour != nil {
		res.SourceSystem = sour.Value()
		res.SourceVersion = ChildValue(sour, "VERS")
	}
	if gedc := Child(d.Header, "GEDC"); gedc != nil {
		res.GedcomVersion = ChildValue(gedc, "VERS")
	}
	res.Charset = ChildValue(d.Header, "CHAR")
	res.Language = ChildValue(d.Header, "LANG")
	return res
}
