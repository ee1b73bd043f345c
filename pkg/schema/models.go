// Package schema provides database schema models for gedgraph.
// Every genealogical row belongs to exactly one Source, the imported
// GEDCOM file it came from.
package schema

import (
	"time"

	"gorm.io/datatypes"
)

// SourceStatus is the lifecycle state of an import.
type SourceStatus string

const (
	StatusPending    SourceStatus = "pending"
	StatusProcessing SourceStatus = "processing"
	StatusCompleted  SourceStatus = "completed"
	StatusError      SourceStatus = "error"
)

// RelationshipType is the kind of edge between two persons.
type RelationshipType string

const (
	// RelParentChild edges point from the parent (Person1) to the
	// child (Person2).
	RelParentChild RelationshipType = "parent-child"

	// RelSpouse edges are symmetric in meaning.
	RelSpouse RelationshipType = "spouse"

	// RelSibling edges are symmetric in meaning.
	RelSibling RelationshipType = "sibling"
)

// Relationship subtypes for parent-child edges.
const (
	SubtypeBiological = "biological"
	SubtypeAdoptive   = "adoptive"
	SubtypeStep       = "step"
	SubtypeFoster     = "foster"
)

// Confidence levels of relationships.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Source is one imported GEDCOM file.
type Source struct {
	// ID is a random UUID.
	ID string `gorm:"type:varchar(36);primaryKey" json:"id"`

	// Name is a human-friendly title, the file name by default.
	Name string `gorm:"type:varchar(255);not null" json:"name"`

	// Filename is the name of the uploaded file.
	Filename string `gorm:"type:varchar(255)" json:"filename"`

	// FileHash is the hex SHA-256 of the file bytes. Identical content
	// cannot be imported twice.
	FileHash string `gorm:"type:varchar(64);not null;uniqueIndex" json:"file_hash"`

	// FileSize is the size of the file in bytes.
	FileSize int64 `json:"file_size"`

	// Status is pending, processing, completed or error.
	Status SourceStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	// ErrorMessage explains why an import ended in error status.
	ErrorMessage string `gorm:"type:text" json:"error_message,omitempty"`

	// ImportedAt is the time the import started.
	ImportedAt time.Time `json:"imported_at"`

	PersonsCount       int `json:"persons_count"`
	FamiliesCount      int `json:"families_count"`
	RelationshipsCount int `json:"relationships_count"`
	EventsCount        int `json:"events_count"`

	// Metadata keeps provenance from the GEDCOM header.
	Metadata datatypes.JSON `json:"metadata,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Person is an individual from an INDI record.
type Person struct {
	// ID is a random UUID.
	ID string `gorm:"type:varchar(36);primaryKey" json:"id"`

	// SourceID links the person to the imported file.
	SourceID string `gorm:"type:varchar(36);not null;index:idx_person_source_name,priority:1" json:"source_id"`
	Source   *Source `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	// GedcomID is the record id from the file, for example "@I1@".
	GedcomID string `gorm:"type:varchar(50);index" json:"gedcom_id"`

	GivenNames string `gorm:"type:varchar(255);index:idx_person_source_name,priority:3" json:"given_names"`
	Surname    string `gorm:"type:varchar(255);index:idx_person_source_name,priority:2" json:"surname"`
	MaidenName string `gorm:"type:varchar(255)" json:"maiden_name,omitempty"`
	Nickname   string `gorm:"type:varchar(100)" json:"nickname,omitempty"`

	// Gender is "M", "F" or "U".
	Gender string `gorm:"type:varchar(1);not null;default:U" json:"gender"`

	// BirthDate is nil when the date text could not be normalized.
	BirthDate          *time.Time `json:"birth_date"`
	BirthDateText      string     `gorm:"type:varchar(100)" json:"birth_date_text,omitempty"`
	BirthDateQualifier string     `gorm:"type:varchar(20)" json:"birth_date_qualifier,omitempty"`
	BirthPlace         string     `gorm:"type:varchar(255)" json:"birth_place,omitempty"`
	BirthPlaceID       *string    `gorm:"type:varchar(36)" json:"birth_place_id,omitempty"`

	DeathDate          *time.Time `json:"death_date"`
	DeathDateText      string     `gorm:"type:varchar(100)" json:"death_date_text,omitempty"`
	DeathDateQualifier string     `gorm:"type:varchar(20)" json:"death_date_qualifier,omitempty"`
	DeathPlace         string     `gorm:"type:varchar(255)" json:"death_place,omitempty"`
	DeathPlaceID       *string    `gorm:"type:varchar(36)" json:"death_place_id,omitempty"`

	// IsLiving is inferred at import from the absence of a death record
	// and a recent birth.
	IsLiving bool `gorm:"not null" json:"is_living"`

	Occupation string `gorm:"type:varchar(255)" json:"occupation,omitempty"`
	Education  string `gorm:"type:text" json:"education,omitempty"`
	Religion   string `gorm:"type:varchar(100)" json:"religion,omitempty"`
	Notes      string `gorm:"type:text" json:"notes,omitempty"`

	// PrivateNotes are never serialized.
	PrivateNotes string `gorm:"type:text" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Relationship is a typed edge between two persons of the same source.
// At most one primary relationship of a given type exists per ordered
// pair; the partial unique index is created by the schema manager.
type Relationship struct {
	ID       string  `gorm:"type:varchar(36);primaryKey" json:"id"`
	SourceID string  `gorm:"type:varchar(36);not null;index" json:"source_id"`
	Source   *Source `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	// Person1ID is the parent for parent-child edges.
	Person1ID string  `gorm:"type:varchar(36);not null;index" json:"person1_id"`
	Person1   *Person `gorm:"foreignKey:Person1ID;constraint:OnDelete:CASCADE" json:"-"`

	// Person2ID is the child for parent-child edges.
	Person2ID string  `gorm:"type:varchar(36);not null;index" json:"person2_id"`
	Person2   *Person `gorm:"foreignKey:Person2ID;constraint:OnDelete:CASCADE" json:"-"`

	Type    RelationshipType `gorm:"column:relationship_type;type:varchar(20);not null;index" json:"relationship_type"`
	Subtype string           `gorm:"column:relationship_subtype;type:varchar(20)" json:"relationship_subtype,omitempty"`

	IsPrimary bool `gorm:"not null" json:"is_primary"`

	MarriageDate     *time.Time `json:"marriage_date,omitempty"`
	MarriageDateText string     `gorm:"type:varchar(100)" json:"marriage_date_text,omitempty"`
	MarriagePlace    string     `gorm:"type:varchar(255)" json:"marriage_place,omitempty"`
	MarriagePlaceID  *string    `gorm:"type:varchar(36)" json:"marriage_place_id,omitempty"`
	DivorceDate      *time.Time `json:"divorce_date,omitempty"`
	IsCurrent        bool       `gorm:"not null" json:"is_current"`

	Confidence string `gorm:"type:varchar(10)" json:"confidence"`
	Notes      string `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Event is a dated life event of a person. Family events such as marriage
// belong to one spouse and point to the other with OtherPersonID.
type Event struct {
	ID       string  `gorm:"type:varchar(36);primaryKey" json:"id"`
	SourceID string  `gorm:"type:varchar(36);not null;index" json:"source_id"`
	Source   *Source `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	PersonID string  `gorm:"type:varchar(36);not null;index" json:"person_id"`
	Person   *Person `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	OtherPersonID *string `gorm:"type:varchar(36)" json:"other_person_id,omitempty"`

	// EventType is birth, death, marriage, residence and so on.
	EventType     string     `gorm:"type:varchar(50);not null;index" json:"event_type"`
	Date          *time.Time `json:"event_date"`
	DateQualifier string     `gorm:"type:varchar(20)" json:"date_qualifier,omitempty"`
	DateText      string     `gorm:"type:varchar(100)" json:"date_text,omitempty"`

	PlaceID   *string `gorm:"type:varchar(36)" json:"place_id,omitempty"`
	PlaceText string  `gorm:"type:varchar(255)" json:"place_text,omitempty"`

	Description string `gorm:"type:text" json:"description,omitempty"`
	IsPrimary   bool   `gorm:"not null" json:"is_primary"`
}

// Place is a location mentioned in PLAC tags. Places are shared by all
// records of one source that spell the place the same way.
type Place struct {
	// ID is a UUIDv5 of the source id and the normalized place name.
	ID       string  `gorm:"type:varchar(36);primaryKey" json:"id"`
	SourceID string  `gorm:"type:varchar(36);not null;index" json:"source_id"`
	Source   *Source `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	// Name is the place text as found in the file.
	Name string `gorm:"type:varchar(255);not null" json:"name"`

	Locality      string `gorm:"type:varchar(100)" json:"locality,omitempty"`
	County        string `gorm:"type:varchar(100)" json:"county,omitempty"`
	StateProvince string `gorm:"type:varchar(100)" json:"state_province,omitempty"`
	Country       string `gorm:"type:varchar(100)" json:"country,omitempty"`

	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func (Source) TableName() string       { return "sources" }
func (Person) TableName() string       { return "persons" }
func (Relationship) TableName() string { return "relationships" }
func (Event) TableName() string        { return "events" }
func (Place) TableName() string        { return "places" }
