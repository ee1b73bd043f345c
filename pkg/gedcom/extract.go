package gedcom

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gnames/gedgraph/pkg/gendate"
)

// LivingBirthYear is the recency threshold for living-status inference:
// a person born after this year without any death record is presumed
// living.
var LivingBirthYear = 1900

// noteSeparator joins multiple NOTE values of one record.
const noteSeparator = "; "

var personEvents = map[string]string{
	"BIRT": "birth",
	"CHR":  "christening",
	"BAPM": "baptism",
	"DEAT": "death",
	"BURI": "burial",
	"CREM": "cremation",
	"RESI": "residence",
	"EMIG": "emigration",
	"IMMI": "immigration",
	"NATU": "naturalization",
	"CENS": "census",
	"GRAD": "graduation",
	"RETI": "retirement",
	"OCCU": "occupation",
	"EVEN": "event",
}

var familyEvents = map[string]string{
	"MARR": "marriage",
	"ENGA": "engagement",
	"DIV":  "divorce",
	"EVEN": "event",
}

// EventAttrs is a dated occurrence found under an INDI or FAM record.
type EventAttrs struct {
	Type        string
	Date        gendate.Date
	Place       PlaceAttrs
	Description string
}

// PlaceAttrs is the content of a PLAC tag.
type PlaceAttrs struct {
	Name      string
	Latitude  *float64
	Longitude *float64
}

// PersonAttrs is the flat view of one INDI record.
type PersonAttrs struct {
	// Xref is the record id from the file, for example "@I1@".
	Xref string

	GivenNames string
	Surname    string
	Nickname   string
	MaidenName string

	// Gender is "M", "F" or "U".
	Gender string

	BirthDate  gendate.Date
	BirthPlace PlaceAttrs
	DeathDate  gendate.Date
	DeathPlace PlaceAttrs

	// Deceased is true when the record has a DEAT tag, dated or not.
	Deceased bool
	IsLiving bool

	Occupation string
	Education  string
	Religion   string
	Notes      string

	Events []EventAttrs
}

// FamilyAttrs is the flat view of one FAM record.
type FamilyAttrs struct {
	Xref         string
	HusbandRef   string
	WifeRef      string
	ChildrenRefs []string

	// ChildSubtypes holds non-biological pedigree per child ref:
	// "adoptive", "step" or "foster".
	ChildSubtypes map[string]string

	MarriageDate  gendate.Date
	MarriagePlace PlaceAttrs
	DivorceDate   gendate.Date
	Divorced      bool

	Events []EventAttrs
}

// Extractor turns INDI and FAM elements into attribute bags.
type Extractor struct {
	notes map[string]string
}

// NewExtractor creates an Extractor. Notes resolve NOTE pointers such as
// "1 NOTE @N1@" to the text of the referenced record; nil is allowed.
func NewExtractor(notes map[string]string) *Extractor {
	if notes == nil {
		notes = map[string]string{}
	}
	return &Extractor{notes: notes}
}

// Person extracts an INDI record. Unknown tags are skipped.
func (e *Extractor) Person(el Element) (PersonAttrs, error) {
	res := PersonAttrs{Gender: "U"}
	if el == nil || el.Tag() != "INDI" {
		return res, fmt.Errorf("expected INDI record, got %s", tagOf(el))
	}
	res.Xref = XrefOf(el)

	var notes, occupations []string
	var primaryName bool
	for _, v := range el.Children() {
		switch tag := v.Tag(); tag {
		case "NAME":
			e.name(v, &res, &primaryName)
		case "SEX":
			res.Gender = gender(v.Value())
		case "NOTE":
			if n := e.note(v.Value()); n != "" {
				notes = append(notes, n)
			}
		case "EDUC":
			res.Education = appendText(res.Education, v.Value())
		case "RELI":
			res.Religion = appendText(res.Religion, v.Value())
		default:
			typ, ok := personEvents[tag]
			if !ok {
				continue
			}
			ev := event(typ, v)
			res.Events = append(res.Events, ev)
			switch tag {
			case "BIRT":
				if !res.BirthDate.Known() && res.BirthDate.Text == "" {
					res.BirthDate, res.BirthPlace = ev.Date, ev.Place
				}
			case "DEAT":
				res.Deceased = true
				if !res.DeathDate.Known() && res.DeathDate.Text == "" {
					res.DeathDate, res.DeathPlace = ev.Date, ev.Place
				}
			case "OCCU":
				if s := strings.TrimSpace(v.Value()); s != "" {
					occupations = append(occupations, s)
				}
			}
		}
	}
	res.Notes = strings.Join(notes, noteSeparator)
	res.Occupation = strings.Join(occupations, noteSeparator)

	if !res.Deceased && res.BirthDate.Known() &&
		res.BirthDate.Year > LivingBirthYear {
		res.IsLiving = true
	}
	return res, nil
}

// Family extracts a FAM record. Unknown tags are skipped.
func (e *Extractor) Family(el Element) (FamilyAttrs, error) {
	var res FamilyAttrs
	if el == nil || el.Tag() != "FAM" {
		return res, fmt.Errorf("expected FAM record, got %s", tagOf(el))
	}
	res.Xref = XrefOf(el)

	for _, v := range el.Children() {
		switch tag := v.Tag(); tag {
		case "HUSB":
			if res.HusbandRef == "" {
				res.HusbandRef = strings.TrimSpace(v.Value())
			}
		case "WIFE":
			if res.WifeRef == "" {
				res.WifeRef = strings.TrimSpace(v.Value())
			}
		case "CHIL":
			ref := strings.TrimSpace(v.Value())
			if ref == "" {
				continue
			}
			res.ChildrenRefs = append(res.ChildrenRefs, ref)
			if sub := pedigree(v); sub != "" {
				if res.ChildSubtypes == nil {
					res.ChildSubtypes = make(map[string]string)
				}
				res.ChildSubtypes[ref] = sub
			}
		default:
			typ, ok := familyEvents[tag]
			if !ok {
				continue
			}
			ev := event(typ, v)
			res.Events = append(res.Events, ev)
			switch tag {
			case "MARR":
				if res.MarriageDate.Text == "" {
					res.MarriageDate, res.MarriagePlace = ev.Date, ev.Place
				}
			case "DIV":
				res.Divorced = true
				if res.DivorceDate.Text == "" {
					res.DivorceDate = ev.Date
				}
			}
		}
	}
	return res, nil
}

func (e *Extractor) name(el Element, p *PersonAttrs, primary *bool) {
	given, surname := SplitName(el.Value())
	if g := strings.TrimSpace(ChildValue(el, "GIVN")); g != "" {
		given = g
	}
	if s := strings.TrimSpace(ChildValue(el, "SURN")); s != "" {
		surname = s
	}
	if n := strings.TrimSpace(ChildValue(el, "NICK")); n != "" && p.Nickname == "" {
		p.Nickname = n
	}

	typ := strings.ToLower(strings.TrimSpace(ChildValue(el, "TYPE")))
	if typ == "birth" || typ == "maiden" {
		p.MaidenName = surname
	}
	if *primary || typ == "married" || typ == "aka" {
		return
	}
	*primary = true
	p.GivenNames = given
	p.Surname = surname
}

func (e *Extractor) note(v string) string {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "@") && strings.HasSuffix(v, "@") {
		return strings.TrimSpace(e.notes[v])
	}
	return v
}

// SplitName splits a GEDCOM personal name such as "John /Smith/ Jr." into
// given names and surname. Without slashes the whole value is the given
// name.
func SplitName(v string) (string, string) {
	v = strings.TrimSpace(v)
	first := strings.Index(v, "/")
	if first < 0 {
		return collapse(v), ""
	}
	given := v[:first]
	rest := v[first+1:]
	surname := rest
	if second := strings.Index(rest, "/"); second >= 0 {
		surname = rest[:second]
	}
	return collapse(given), collapse(surname)
}

func gender(v string) string {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case "M":
		return "M"
	case "F":
		return "F"
	default:
		return "U"
	}
}

func event(typ string, el Element) EventAttrs {
	res := EventAttrs{Type: typ}
	if c := Child(el, "DATE"); c != nil {
		res.Date = gendate.Parse(c.Value())
	}
	if c := Child(el, "PLAC"); c != nil {
		res.Place = place(c)
	}

	desc := strings.TrimSpace(el.Value())
	if strings.EqualFold(desc, "Y") {
		desc = ""
	}
	if t := strings.TrimSpace(ChildValue(el, "TYPE")); t != "" {
		desc = strings.TrimSpace(t + " " + desc)
	}
	res.Description = desc
	return res
}

func place(el Element) PlaceAttrs {
	res := PlaceAttrs{Name: collapse(el.Value())}
	m := Child(el, "MAP")
	if m == nil {
		return res
	}
	res.Latitude = coordinate(ChildValue(m, "LATI"), "N", "S")
	res.Longitude = coordinate(ChildValue(m, "LONG"), "E", "W")
	return res
}

// coordinate reads GEDCOM coordinates like "N51.5072" or "W0.1276".
func coordinate(v, pos, neg string) *float64 {
	v = strings.ToUpper(strings.TrimSpace(v))
	if v == "" {
		return nil
	}
	sign := 1.0
	switch {
	case strings.HasPrefix(v, pos):
		v = v[1:]
	case strings.HasPrefix(v, neg):
		v = v[1:]
		sign = -1
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	f *= sign
	return &f
}

func pedigree(el Element) string {
	vals := []string{
		ChildValue(el, "PEDI"),
		ChildValue(el, "_FREL"),
		ChildValue(el, "_MREL"),
	}
	for _, v := range vals {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "adopted", "adoptive":
			return "adoptive"
		case "step", "stepchild":
			return "step"
		case "foster":
			return "foster"
		}
	}
	return ""
}

func appendText(s, v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return s
	}
	if s == "" {
		return v
	}
	return s + noteSeparator + v
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func tagOf(el Element) string {
	if el == nil {
		return "nothing"
	}
	return el.Tag()
}
