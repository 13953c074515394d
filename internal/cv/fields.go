package cv

import (
	"fmt"
	"strconv"
	"time"
)

// FieldType tags an optional field with the input affordance and formatting
// rule it uses. Six renderer surfaces interpret values through this tag, so
// it is the single piece of information they all must agree on.
type FieldType string

// Optional field value types.
const (
	TypeText     FieldType = "text"
	TypeDate     FieldType = "date"
	TypeSelect   FieldType = "select"
	TypeURL      FieldType = "url"
	TypeTextarea FieldType = "textarea"
)

// OptionalField describes one entry of the closed optional-field catalog.
// The catalog is immutable and process-wide.
type OptionalField struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Type        FieldType `json:"type"`
	Options     []string  `json:"options,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
}

// Optional field identifiers.
const (
	FieldBirthDate      = "birthDate"
	FieldBirthPlace     = "birthPlace"
	FieldDrivingLicense = "drivingLicense"
	FieldNationality    = "nationality"
	FieldMaritalStatus  = "maritalStatus"
	FieldLinkedIn       = "linkedin"
	FieldWebsite        = "website"
	FieldFreeText       = "freeText"
)

// optionalFields is the catalog, in display order. Labels are the French
// forms used on the rendered document.
var optionalFields = []OptionalField{
	{ID: FieldBirthDate, Label: "Date de naissance", Type: TypeDate},
	{ID: FieldBirthPlace, Label: "Lieu de naissance", Type: TypeText},
	{
		ID:          FieldDrivingLicense,
		Label:       "Permis de conduire",
		Type:        TypeText,
		Placeholder: "Ex: B, C1, D",
	},
	{ID: FieldNationality, Label: "Nationalité", Type: TypeText},
	{
		ID:      FieldMaritalStatus,
		Label:   "État civil",
		Type:    TypeSelect,
		Options: []string{"Célibataire", "Marié/ée", "Divorcié/ée", "Veuf/veuve"},
	},
	{ID: FieldLinkedIn, Label: "LinkedIn", Type: TypeURL},
	{ID: FieldWebsite, Label: "Site web", Type: TypeURL},
	{
		ID:          FieldFreeText,
		Label:       "Informations complémentaires",
		Type:        TypeTextarea,
		Placeholder: "Ajoutez toute information supplémentaire à inclure dans votre CV...",
	},
}

// Fields returns the optional-field catalog in display order.
func Fields() []OptionalField {
	out := make([]OptionalField, len(optionalFields))
	copy(out, optionalFields)
	return out
}

// Describe looks up one catalog entry by identifier.
func Describe(id string) (OptionalField, error) {
	for _, f := range optionalFields {
		if f.ID == id {
			return f, nil
		}
	}
	return OptionalField{}, fmt.Errorf("%w: %q", ErrUnknownField, id)
}

// Months lists the French month names offered by the date pickers.
var months = []string{
	"Janvier", "Février", "Mars", "Avril", "Mai", "Juin",
	"Juillet", "Août", "Septembre", "Octobre", "Novembre", "Décembre",
}

// Months returns the month names used for entry start/end dates.
func Months() []string {
	out := make([]string, len(months))
	copy(out, months)
	return out
}

// Years returns the selectable years, newest first, covering 50 years.
func Years() []string {
	current := time.Now().Year()
	out := make([]string, 0, 50)
	for i := 0; i < 50; i++ {
		out = append(out, strconv.Itoa(current-i))
	}
	return out
}

// languageLevels is the fixed proficiency enumeration.
var languageLevels = []string{
	"Débutant", "Intermédiaire", "Avancé", "Langue maternelle",
}

// LanguageLevels returns the proficiency enumeration for language entries.
func LanguageLevels() []string {
	out := make([]string, len(languageLevels))
	copy(out, languageLevels)
	return out
}
