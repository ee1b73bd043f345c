package ioimport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gedgraph/internal/iostore"
	"github.com/gnames/gedgraph/pkg/family"
	"github.com/gnames/gedgraph/pkg/gedcom"
	"github.com/gnames/gedgraph/pkg/schema"
	"github.com/gnames/gnuuid"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// placeBatch is the number of places inserted per statement.
const placeBatch = 500

// writer stores extracted records of one source. Each INDI and FAM record
// is written under its own savepoint, so a failed record is rolled back
// alone and the import continues.
type writer struct {
	src *schema.Source

	// places maps a normalized place name to its id.
	places map[string]string

	// people maps GEDCOM ids to person ids.
	people map[string]string

	// primary holds keys of relationships that already have a primary
	// row.
	primary map[string]bool

	stats family.ImportStats
	bar   *pb.ProgressBar
}

func newWriter(src *schema.Source) *writer {
	return &writer{
		src:     src,
		places:  make(map[string]string),
		people:  make(map[string]string),
		primary: make(map[string]bool),
		stats:   family.ImportStats{Errors: []string{}},
	}
}

func (w *writer) write(ctx context.Context, tx *gorm.DB, recs *records) error {
	if err := w.writePlaces(tx, recs); err != nil {
		return err
	}

	for _, r := range recs.persons {
		if err := ctx.Err(); err != nil {
			return CancelledError(err)
		}
		w.person(tx, r)
		w.tick()
	}

	for _, r := range recs.families {
		if err := ctx.Err(); err != nil {
			return CancelledError(err)
		}
		w.family(tx, r)
		w.tick()
	}
	return nil
}

func (w *writer) tick() {
	if w.bar != nil {
		w.bar.Increment()
	}
}

// writePlaces inserts every distinct place of the file.
func (w *writer) writePlaces(tx *gorm.DB, recs *records) error {
	var res []schema.Place
	add := func(pa gedcom.PlaceAttrs) {
		key := placeKey(pa.Name)
		if key == "" {
			return
		}
		if _, ok := w.places[key]; ok {
			return
		}
		id := gnuuid.New(w.src.ID + "|" + key).String()
		w.places[key] = id
		pl := schema.NewPlace(id, w.src.ID, pa.Name)
		pl.Latitude, pl.Longitude = pa.Latitude, pa.Longitude
		res = append(res, pl)
	}

	for _, r := range recs.persons {
		add(r.attrs.BirthPlace)
		add(r.attrs.DeathPlace)
		for _, v := range r.attrs.Events {
			add(v.Place)
		}
	}
	for _, r := range recs.families {
		add(r.attrs.MarriagePlace)
		for _, v := range r.attrs.Events {
			add(v.Place)
		}
	}

	if len(res) == 0 {
		return nil
	}
	if err := tx.CreateInBatches(res, placeBatch).Error; err != nil {
		return iostore.WriteError("places", err)
	}
	return nil
}

func (w *writer) placeID(name string) *string {
	id, ok := w.places[placeKey(name)]
	if !ok {
		return nil
	}
	return &id
}

func placeKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

func (w *writer) person(tx *gorm.DB, r personRec) {
	if r.err != nil {
		w.recordError("Individual", r.xref, r.err)
		return
	}
	a := r.attrs
	if _, dup := w.people[a.Xref]; dup && a.Xref != "" {
		w.recordError("Individual", a.Xref, errors.New("duplicate record id"))
		return
	}

	p := w.newPerson(a)
	events := w.newEvents(p.ID, nil, a.Events)
	err := tx.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&p).Error; err != nil {
			return err
		}
		if len(events) == 0 {
			return nil
		}
		return tx.Create(&events).Error
	})
	if err != nil {
		w.recordError("Individual", a.Xref, err)
		return
	}

	if a.Xref != "" {
		w.people[a.Xref] = p.ID
	}
	w.stats.PersonsImported++
	w.stats.EventsImported += len(events)
}

func (w *writer) newPerson(a gedcom.PersonAttrs) schema.Person {
	return schema.Person{
		ID:                 uuid.NewString(),
		SourceID:           w.src.ID,
		GedcomID:           a.Xref,
		GivenNames:         a.GivenNames,
		Surname:            a.Surname,
		MaidenName:         a.MaidenName,
		Nickname:           a.Nickname,
		Gender:             a.Gender,
		BirthDate:          a.BirthDate.Time(),
		BirthDateText:      a.BirthDate.Text,
		BirthDateQualifier: string(a.BirthDate.Qualifier),
		BirthPlace:         a.BirthPlace.Name,
		BirthPlaceID:       w.placeID(a.BirthPlace.Name),
		DeathDate:          a.DeathDate.Time(),
		DeathDateText:      a.DeathDate.Text,
		DeathDateQualifier: string(a.DeathDate.Qualifier),
		DeathPlace:         a.DeathPlace.Name,
		DeathPlaceID:       w.placeID(a.DeathPlace.Name),
		IsLiving:           a.IsLiving && !a.Deceased,
		Occupation:         a.Occupation,
		Education:          a.Education,
		Religion:           a.Religion,
		Notes:              a.Notes,
	}
}

// newEvents converts extracted events. The first event of each type is
// the primary one.
func (w *writer) newEvents(
	personID string,
	otherID *string,
	evs []gedcom.EventAttrs,
) []schema.Event {
	res := make([]schema.Event, 0, len(evs))
	seen := make(map[string]bool)
	for _, v := range evs {
		res = append(res, schema.Event{
			ID:            uuid.NewString(),
			SourceID:      w.src.ID,
			PersonID:      personID,
			OtherPersonID: otherID,
			EventType:     v.Type,
			Date:          v.Date.Time(),
			DateQualifier: string(v.Date.Qualifier),
			DateText:      v.Date.Text,
			PlaceID:       w.placeID(v.Place.Name),
			PlaceText:     v.Place.Name,
			Description:   v.Description,
			IsPrimary:     !seen[v.Type],
		})
		seen[v.Type] = true
	}
	return res
}

type child struct {
	id      string
	subtype string
}

// family links spouses and children of a FAM record. References to
// individuals that were not imported are reported, the resolvable part
// of the family is still stored.
func (w *writer) family(tx *gorm.DB, r familyRec) {
	if r.err != nil {
		w.recordError("Family", r.xref, r.err)
		return
	}
	f := r.attrs

	var missing []string
	resolve := func(ref string) string {
		if ref == "" {
			return ""
		}
		id, ok := w.people[ref]
		if !ok {
			missing = append(missing, ref)
		}
		return id
	}
	husband := resolve(f.HusbandRef)
	wife := resolve(f.WifeRef)
	var children []child
	for _, ref := range f.ChildrenRefs {
		id := resolve(ref)
		if id == "" {
			continue
		}
		sub := f.ChildSubtypes[ref]
		if sub == "" {
			sub = schema.SubtypeBiological
		}
		children = append(children, child{id: id, subtype: sub})
	}

	keys := make(map[string]bool)
	var rels []schema.Relationship
	if husband != "" && wife != "" && husband != wife {
		rels = append(rels, w.spouse(husband, wife, f, keys))
	}
	for _, parent := range []string{husband, wife} {
		if parent == "" {
			continue
		}
		for _, c := range children {
			if c.id == parent {
				continue
			}
			rels = append(rels, w.parentChild(parent, c, keys))
		}
	}
	events := w.familyEvents(husband, wife, f.Events)

	if len(rels)+len(events) > 0 {
		err := tx.Transaction(func(tx *gorm.DB) error {
			if len(rels) > 0 {
				if err := tx.Create(&rels).Error; err != nil {
					return err
				}
			}
			if len(events) > 0 {
				return tx.Create(&events).Error
			}
			return nil
		})
		if err != nil {
			w.recordError("Family", f.Xref, err)
			return
		}
	}

	maps.Copy(w.primary, keys)
	w.stats.RelationshipsImported += len(rels)
	w.stats.EventsImported += len(events)
	if len(missing) > 0 {
		err := fmt.Errorf("unknown individual %s", strings.Join(missing, ", "))
		w.recordError("Family", f.Xref, err)
	}
}

func (w *writer) spouse(
	husband, wife string,
	f gedcom.FamilyAttrs,
	keys map[string]bool,
) schema.Relationship {
	a, b := husband, wife
	if b < a {
		a, b = b, a
	}
	return schema.Relationship{
		ID:               uuid.NewString(),
		SourceID:         w.src.ID,
		Person1ID:        husband,
		Person2ID:        wife,
		Type:             schema.RelSpouse,
		IsPrimary:        w.claimPrimary(a+"|"+b+"|spouse", keys),
		MarriageDate:     f.MarriageDate.Time(),
		MarriageDateText: f.MarriageDate.Text,
		MarriagePlace:    f.MarriagePlace.Name,
		MarriagePlaceID:  w.placeID(f.MarriagePlace.Name),
		DivorceDate:      f.DivorceDate.Time(),
		IsCurrent:        !f.Divorced,
		Confidence:       schema.ConfidenceHigh,
	}
}

func (w *writer) parentChild(
	parent string,
	c child,
	keys map[string]bool,
) schema.Relationship {
	return schema.Relationship{
		ID:         uuid.NewString(),
		SourceID:   w.src.ID,
		Person1ID:  parent,
		Person2ID:  c.id,
		Type:       schema.RelParentChild,
		Subtype:    c.subtype,
		IsPrimary:  w.claimPrimary(parent+"|"+c.id+"|parent-child", keys),
		IsCurrent:  true,
		Confidence: schema.ConfidenceHigh,
	}
}

// claimPrimary returns true for the first relationship with the key.
// Repeated pairs, for example a couple listed in two FAM records, are
// stored as non-primary.
func (w *writer) claimPrimary(key string, keys map[string]bool) bool {
	if w.primary[key] || keys[key] {
		return false
	}
	keys[key] = true
	return true
}

// familyEvents attaches family events to the husband, or to the wife
// when there is no husband, and points to the other spouse.
func (w *writer) familyEvents(
	husband, wife string,
	evs []gedcom.EventAttrs,
) []schema.Event {
	owner, other := husband, wife
	if owner == "" {
		owner, other = wife, ""
	}
	if owner == "" || len(evs) == 0 {
		return nil
	}
	var otherID *string
	if other != "" && other != owner {
		otherID = &other
	}
	return w.newEvents(owner, otherID, evs)
}

func (w *writer) recordError(kind, xref string, err error) {
	if xref == "" {
		xref = "without id"
	}
	entry := fmt.Sprintf("%s %s: %v", kind, xref, err)
	w.stats.Errors = append(w.stats.Errors, entry)
	slog.Warn("Skipped GEDCOM record",
		"source_id", w.src.ID,
		"record", kind,
		"id", xref,
		"error", err,
	)
}
