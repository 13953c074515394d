// Package cv defines the in-memory CV document model edited by the builder.
//
// A Document is the single authoritative copy of one CV for the duration of
// an editing session. It is never persisted server-side; the only durable
// outcomes are the exported PDF and the raw JSON the user can save manually.
package cv

import (
	"strings"

	"github.com/google/uuid"
)

// PersonalInfo holds the free-text header fields of the CV.
// None of them are required; empty values are simply not rendered.
type PersonalInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Title     string `json:"title"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Summary   string `json:"summary"`
}

// Experience is one work-history entry. Dates are month name + year strings
// chosen from the catalog; Current suppresses the end date.
type Experience struct {
	ID          uuid.UUID `json:"id"`
	Position    string    `json:"position"`
	Company     string    `json:"company"`
	StartMonth  string    `json:"startMonth"`
	StartYear   string    `json:"startYear"`
	EndMonth    string    `json:"endMonth"`
	EndYear     string    `json:"endYear"`
	Current     bool      `json:"current"`
	Description string    `json:"description"`
}

// Education is one education entry.
type Education struct {
	ID          uuid.UUID `json:"id"`
	Degree      string    `json:"degree"`
	Institution string    `json:"institution"`
	StartMonth  string    `json:"startMonth"`
	StartYear   string    `json:"startYear"`
	EndMonth    string    `json:"endMonth"`
	EndYear     string    `json:"endYear"`
	Description string    `json:"description"`
}

// Language is a language/proficiency pair. Level is drawn from LanguageLevels.
type Language struct {
	ID       uuid.UUID `json:"id"`
	Language string    `json:"language"`
	Level    string    `json:"level"`
}

// Certification is a loosely structured certificate entry.
type Certification struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Issuer string    `json:"issuer"`
	Year   string    `json:"year"`
}

// Project is a loosely structured project entry.
type Project struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Date         string    `json:"date"`
	Description  string    `json:"description"`
	Technologies []string  `json:"technologies,omitempty"`
}

// Document is the root aggregate of one CV editing session.
// Invariant: the key set of OptionalFields always equals EnabledFields.
type Document struct {
	PersonalInfo   PersonalInfo      `json:"personalInfo"`
	Photo          string            `json:"photo,omitempty"`
	EnabledFields  []string          `json:"enabledFields"`
	OptionalFields map[string]string `json:"optionalFields"`
	Experience     []Experience      `json:"experience"`
	Education      []Education       `json:"education"`
	Skills         []string          `json:"skills"`
	Languages      []Language        `json:"languages"`
	Certifications []Certification   `json:"certifications"`
	Projects       []Project         `json:"projects"`
}

// NewDocument returns an empty document with all collections initialized.
func NewDocument() *Document {
	return &Document{
		EnabledFields:  []string{},
		OptionalFields: map[string]string{},
		Experience:     []Experience{},
		Education:      []Education{},
		Skills:         []string{},
		Languages:      []Language{},
		Certifications: []Certification{},
		Projects:       []Project{},
	}
}

// Personal field names accepted by SetPersonalField.
const (
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldTitle     = "title"
	FieldEmail     = "email"
	FieldPhone     = "phone"
	FieldAddress   = "address"
	FieldSummary   = "summary"
)

// SetPersonalField replaces one scalar in PersonalInfo. Values are accepted
// as-is; only the field name itself is checked against the closed set.
func (d *Document) SetPersonalField(field, value string) error {
	switch field {
	case FieldFirstName:
		d.PersonalInfo.FirstName = value
	case FieldLastName:
		d.PersonalInfo.LastName = value
	case FieldTitle:
		d.PersonalInfo.Title = value
	case FieldEmail:
		d.PersonalInfo.Email = value
	case FieldPhone:
		d.PersonalInfo.Phone = value
	case FieldAddress:
		d.PersonalInfo.Address = value
	case FieldSummary:
		d.PersonalInfo.Summary = value
	default:
		return ErrUnknownField
	}
	return nil
}

// SetPhoto replaces the embedded photo wholesale. The value is either a
// public URL or a data URI; the document does not inspect it.
func (d *Document) SetPhoto(photo string) {
	d.Photo = photo
}

// ClearPhoto removes the photo independently of any re-upload.
func (d *Document) ClearPhoto() {
	d.Photo = ""
}

// ToggleOptionalField enables a disabled optional field (inserting an empty
// value) or disables an enabled one (dropping its value; re-enabling starts
// blank on purpose).
func (d *Document) ToggleOptionalField(id string) error {
	if _, err := Describe(id); err != nil {
		return err
	}
	for i, enabled := range d.EnabledFields {
		if enabled == id {
			d.EnabledFields = append(d.EnabledFields[:i], d.EnabledFields[i+1:]...)
			delete(d.OptionalFields, id)
			return nil
		}
	}
	d.EnabledFields = append(d.EnabledFields, id)
	d.OptionalFields[id] = ""
	return nil
}

// SetOptionalFieldValue sets the value of an enabled optional field.
func (d *Document) SetOptionalFieldValue(id, value string) error {
	if _, err := Describe(id); err != nil {
		return err
	}
	if _, ok := d.OptionalFields[id]; !ok {
		return ErrFieldDisabled
	}
	d.OptionalFields[id] = value
	return nil
}

// AddSkill appends a skill badge. Blank input is ignored; an exact duplicate
// (case-sensitive) is rejected so the caller can surface a notice.
func (d *Document) AddSkill(skill string) error {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return nil
	}
	for _, s := range d.Skills {
		if s == skill {
			return ErrDuplicateSkill
		}
	}
	d.Skills = append(d.Skills, skill)
	return nil
}

// RemoveSkill removes a skill by exact value. Unknown skills are a no-op.
func (d *Document) RemoveSkill(skill string) {
	for i, s := range d.Skills {
		if s == skill {
			d.Skills = append(d.Skills[:i], d.Skills[i+1:]...)
			return
		}
	}
}

// NormalizeImported reconciles a document decoded from user-supplied JSON
// with the editing invariants: every enabled field has a value entry, values
// without an enabled field are dropped, duplicate or unknown enabled ids are
// dropped, and list entries arriving without an id get a fresh one.
func (d *Document) NormalizeImported() {
	if d.OptionalFields == nil {
		d.OptionalFields = map[string]string{}
	}

	enabled := make([]string, 0, len(d.EnabledFields))
	keep := make(map[string]bool, len(d.EnabledFields))
	for _, id := range d.EnabledFields {
		if _, err := Describe(id); err != nil || keep[id] {
			continue
		}
		keep[id] = true
		enabled = append(enabled, id)
		if _, ok := d.OptionalFields[id]; !ok {
			d.OptionalFields[id] = ""
		}
	}
	d.EnabledFields = enabled
	for id := range d.OptionalFields {
		if !keep[id] {
			delete(d.OptionalFields, id)
		}
	}

	for i := range d.Experience {
		if d.Experience[i].ID == uuid.Nil {
			d.Experience[i].ID = uuid.New()
		}
	}
	for i := range d.Education {
		if d.Education[i].ID == uuid.Nil {
			d.Education[i].ID = uuid.New()
		}
	}
	for i := range d.Languages {
		if d.Languages[i].ID == uuid.Nil {
			d.Languages[i].ID = uuid.New()
		}
	}
	for i := range d.Certifications {
		if d.Certifications[i].ID == uuid.Nil {
			d.Certifications[i].ID = uuid.New()
		}
	}
	for i := range d.Projects {
		if d.Projects[i].ID == uuid.Nil {
			d.Projects[i].ID = uuid.New()
		}
	}
}

// Clone returns a deep copy of the document. Renderers consume clones so a
// render can never mutate the session's authoritative state.
func (d *Document) Clone() *Document {
	c := *d
	c.EnabledFields = append([]string{}, d.EnabledFields...)
	c.OptionalFields = make(map[string]string, len(d.OptionalFields))
	for k, v := range d.OptionalFields {
		c.OptionalFields[k] = v
	}
	c.Experience = append([]Experience{}, d.Experience...)
	c.Education = append([]Education{}, d.Education...)
	c.Skills = append([]string{}, d.Skills...)
	c.Languages = append([]Language{}, d.Languages...)
	c.Certifications = append([]Certification{}, d.Certifications...)
	c.Projects = make([]Project, len(d.Projects))
	for i, p := range d.Projects {
		p.Technologies = append([]string{}, p.Technologies...)
		c.Projects[i] = p
	}
	return &c
}
