// Package render turns a CV document into its on-screen and print
// presentations. All six template surfaces consume one shared projection
// (View), so labels, icons and value formatting cannot drift between the
// preview and the exported document.
package render

import (
	"html/template"
	"strings"
	"time"

	"github.com/tempsuisse/platform/internal/cv"
)

// OngoingLabel replaces the end date of an entry still in progress.
const OngoingLabel = "Presente"

// ContactLine is one personal contact row (email, phone, address).
type ContactLine struct {
	Key   string
	Icon  string
	Value string
}

// DetailLine is one enabled optional field, formatted for display.
// Label is empty for the free-text field, which renders without one.
type DetailLine struct {
	Key   string
	Icon  string
	Label string
	Value string
}

// Text renders the line the way list-style templates print it.
func (l DetailLine) Text() string {
	if l.Label == "" {
		return l.Value
	}
	return l.Label + ": " + l.Value
}

// EntryView is a dated list entry (experience or education).
type EntryView struct {
	Title       string
	Subtitle    string
	DateRange   string
	Description string
}

// LanguageView is a language/proficiency row.
type LanguageView struct {
	Name  string
	Level string
}

// CertificationView is a certificate row.
type CertificationView struct {
	Name   string
	Issuer string
	Year   string
}

// ProjectView is a project block.
type ProjectView struct {
	Name         string
	Date         string
	Description  string
	Technologies []string
}

// View is the pure projection of a document that every template consumes.
type View struct {
	FirstName      string
	LastName       string
	FullName       string
	Title          string
	Summary        string
	Photo          template.URL
	Contacts       []ContactLine
	Details        []DetailLine
	Experience     []EntryView
	Education      []EntryView
	Skills         []string
	Languages      []LanguageView
	Certifications []CertificationView
	Projects       []ProjectView
}

var contactIcons = map[string]string{
	"email":   "✉️",
	"phone":   "📱",
	"address": "📍",
}

var fieldIcons = map[string]string{
	cv.FieldDrivingLicense: "🚗",
	cv.FieldBirthDate:      "📅",
	cv.FieldBirthPlace:     "📌",
	cv.FieldNationality:    "🌍",
	cv.FieldMaritalStatus:  "❤️",
	cv.FieldLinkedIn:       "💼",
	cv.FieldWebsite:        "🌐",
}

// BuildView projects a document snapshot into a View. It is a pure function
// of the document: it never mutates its input and equal documents produce
// equal views.
func BuildView(doc *cv.Document) View {
	v := View{
		FirstName: doc.PersonalInfo.FirstName,
		LastName:  doc.PersonalInfo.LastName,
		FullName:  strings.TrimSpace(doc.PersonalInfo.FirstName + " " + doc.PersonalInfo.LastName),
		Title:     doc.PersonalInfo.Title,
		Summary:   doc.PersonalInfo.Summary,
		Photo:     template.URL(doc.Photo),
	}

	for _, c := range []struct{ key, value string }{
		{"email", doc.PersonalInfo.Email},
		{"phone", doc.PersonalInfo.Phone},
		{"address", doc.PersonalInfo.Address},
	} {
		if c.value == "" {
			continue
		}
		v.Contacts = append(v.Contacts, ContactLine{Key: c.key, Icon: contactIcons[c.key], Value: c.value})
	}

	// Optional fields in their enabled order. An empty value means "not
	// provided" and does not render at all.
	for _, id := range doc.EnabledFields {
		value := doc.OptionalFields[id]
		if line, ok := FormatOptionalField(id, value); ok {
			v.Details = append(v.Details, line)
		}
	}

	for _, e := range doc.Experience {
		v.Experience = append(v.Experience, EntryView{
			Title:       e.Position,
			Subtitle:    e.Company,
			DateRange:   FormatDateRange(e.StartMonth, e.StartYear, e.EndMonth, e.EndYear, e.Current),
			Description: e.Description,
		})
	}
	for _, e := range doc.Education {
		v.Education = append(v.Education, EntryView{
			Title:       e.Degree,
			Subtitle:    e.Institution,
			DateRange:   FormatDateRange(e.StartMonth, e.StartYear, e.EndMonth, e.EndYear, false),
			Description: e.Description,
		})
	}

	v.Skills = append(v.Skills, doc.Skills...)
	for _, l := range doc.Languages {
		v.Languages = append(v.Languages, LanguageView{Name: l.Language, Level: l.Level})
	}
	for _, c := range doc.Certifications {
		v.Certifications = append(v.Certifications, CertificationView{Name: c.Name, Issuer: c.Issuer, Year: c.Year})
	}
	for _, p := range doc.Projects {
		v.Projects = append(v.Projects, ProjectView{
			Name:         p.Name,
			Date:         p.Date,
			Description:  p.Description,
			Technologies: append([]string{}, p.Technologies...),
		})
	}

	return v
}

// FormatOptionalField applies the catalog's formatting rule for one optional
// field. It reports false when the value is empty or the id is unknown.
func FormatOptionalField(id, value string) (DetailLine, bool) {
	if value == "" {
		return DetailLine{}, false
	}
	field, err := cv.Describe(id)
	if err != nil {
		return DetailLine{}, false
	}

	display := value
	if field.Type == cv.TypeDate {
		if t, err := time.Parse("2006-01-02", value); err == nil {
			display = t.Format("02.01.2006")
		}
	}

	label := field.Label
	if field.Type == cv.TypeTextarea {
		// Free text renders as-is, without a label prefix.
		label = ""
	}

	return DetailLine{Key: id, Icon: fieldIcons[id], Label: label, Value: display}, true
}

// FormatDateRange joins month/year pairs into a display range, substituting
// OngoingLabel for the end when the entry is still current.
func FormatDateRange(startMonth, startYear, endMonth, endYear string, current bool) string {
	start := joinMonthYear(startMonth, startYear)
	if current {
		if start == "" {
			return OngoingLabel
		}
		return start + " - " + OngoingLabel
	}
	end := joinMonthYear(endMonth, endYear)
	switch {
	case start == "" && end == "":
		return ""
	case end == "":
		return start
	case start == "":
		return end
	default:
		return start + " - " + end
	}
}

func joinMonthYear(month, year string) string {
	return strings.TrimSpace(strings.TrimSpace(month) + " " + strings.TrimSpace(year))
}
