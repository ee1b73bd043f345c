package schema

import (
	"fmt"
	"strings"
	"time"
)

// centenarian is the age after which a person without a death record is
// no longer shown as living in a life span.
const centenarian = 100

// FullName joins given names and surname, "Unknown" if both are empty.
func (p *Person) FullName() string {
	var parts []string
	if p.GivenNames != "" {
		parts = append(parts, p.GivenNames)
	}
	if p.Surname != "" {
		parts = append(parts, p.Surname)
	}
	if len(parts) == 0 {
		return "Unknown"
	}
	return strings.Join(parts, " ")
}

// DisplayName prefers the nickname: "Jack (John Smith)".
func (p *Person) DisplayName() string {
	if p.Nickname != "" {
		return fmt.Sprintf("%s (%s)", p.Nickname, p.FullName())
	}
	return p.FullName()
}

// LifeSpan renders birth and death years, for example "1850-1920",
// "1850-?" or "1950-present".
func (p *Person) LifeSpan() string {
	return p.lifeSpan(time.Now())
}

func (p *Person) lifeSpan(now time.Time) string {
	birth := "?"
	if p.BirthDate != nil {
		birth = p.BirthDate.Format("2006")
	}
	switch {
	case p.DeathDate != nil:
		return birth + "-" + p.DeathDate.Format("2006")
	case !p.IsLiving:
		return birth + "-?"
	case p.BirthDate == nil:
		return "?-?"
	}
	if age, ok := p.AgeAt(now); ok && age >= centenarian {
		return birth + "-?"
	}
	return birth + "-present"
}

// AgeAt returns age in full years at the given time. If the person died
// before t, the age at death is returned. The boolean is false when the
// birth date is unknown.
func (p *Person) AgeAt(t time.Time) (int, bool) {
	if p.BirthDate == nil {
		return 0, false
	}
	end := t
	if p.DeathDate != nil && p.DeathDate.Before(end) {
		end = *p.DeathDate
	}
	b := *p.BirthDate
	age := end.Year() - b.Year()
	if end.Month() < b.Month() ||
		(end.Month() == b.Month() && end.Day() < b.Day()) {
		age--
	}
	return max(0, age), true
}

// Other returns the id of the opposite end of the relationship.
func (r *Relationship) Other(personID string) string {
	if r.Person1ID == personID {
		return r.Person2ID
	}
	return r.Person1ID
}

// Description names the related person as seen from the person with
// fromID, for example "father" or "wife". Gender of the related person
// is "M", "F" or anything else for unknown.
func (r *Relationship) Description(fromID, otherGender string) string {
	switch r.Type {
	case RelParentChild:
		if r.Person1ID == fromID {
			return gendered(otherGender, "son", "daughter", "child")
		}
		return gendered(otherGender, "father", "mother", "parent")
	case RelSpouse:
		return gendered(otherGender, "husband", "wife", "spouse")
	case RelSibling:
		return gendered(otherGender, "brother", "sister", "sibling")
	}
	return string(r.Type)
}

func gendered(gender, male, female, unknown string) string {
	switch gender {
	case "M":
		return male
	case "F":
		return female
	}
	return unknown
}

// NewPlace splits a comma separated place name into locality, county,
// state or province and country. The first part is the locality and the
// last is the country.
func NewPlace(id, sourceID, name string) Place {
	res := Place{ID: id, SourceID: sourceID, Name: name}
	var parts []string
	for _, v := range strings.Split(name, ",") {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	switch len(parts) {
	case 0:
	case 1:
		res.Locality = parts[0]
	case 2:
		res.Locality, res.Country = parts[0], parts[1]
	case 3:
		res.Locality, res.StateProvince, res.Country = parts[0], parts[1], parts[2]
	default:
		l := len(parts)
		res.Locality = parts[0]
		res.County = parts[l-3]
		res.StateProvince = parts[l-2]
		res.Country = parts[l-1]
	}
	return res
}

// DisplayName joins non-empty address parts, falling back to Name.
func (p *Place) DisplayName() string {
	var parts []string
	if p.Locality != "" {
		parts = append(parts, p.Locality)
	}
	if p.County != "" && p.County != p.Locality {
		parts = append(parts, p.County)
	}
	if p.StateProvince != "" {
		parts = append(parts, p.StateProvince)
	}
	if p.Country != "" {
		parts = append(parts, p.Country)
	}
	if len(parts) == 0 {
		return p.Name
	}
	return strings.Join(parts, ", ")
}
