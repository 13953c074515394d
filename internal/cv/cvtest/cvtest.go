// Package cvtest provides document fixtures shared by renderer and handler
// tests.
package cvtest

import "github.com/tempsuisse/platform/internal/cv"

// FullDocument returns a document with every optional field enabled and
// valued, every list populated, and a photo set. Tests use it to exercise
// the widest rendering surface.
func FullDocument() *cv.Document {
	doc := cv.NewDocument()
	_ = doc.SetPersonalField(cv.FieldFirstName, "Ana")
	_ = doc.SetPersonalField(cv.FieldLastName, "Keller")
	_ = doc.SetPersonalField(cv.FieldTitle, "Ingénieure en automatisation")
	_ = doc.SetPersonalField(cv.FieldEmail, "ana.keller@example.ch")
	_ = doc.SetPersonalField(cv.FieldPhone, "+41 79 555 12 34")
	_ = doc.SetPersonalField(cv.FieldAddress, "Rue du Lac 3, 1003 Lausanne")
	_ = doc.SetPersonalField(cv.FieldSummary, "Ingénieure expérimentée dans l'industrie horlogère.")
	doc.SetPhoto("https://res.cloudinary.com/demo/image/upload/ana.jpg")

	values := map[string]string{
		cv.FieldBirthDate:      "1990-05-17",
		cv.FieldBirthPlace:     "Lausanne",
		cv.FieldDrivingLicense: "B, C1",
		cv.FieldNationality:    "Suisse",
		cv.FieldMaritalStatus:  "Célibataire",
		cv.FieldLinkedIn:       "linkedin.com/in/anakeller",
		cv.FieldWebsite:        "anakeller.ch",
		cv.FieldFreeText:       "Disponible de suite",
	}
	for _, f := range cv.Fields() {
		_ = doc.ToggleOptionalField(f.ID)
		_ = doc.SetOptionalFieldValue(f.ID, values[f.ID])
	}

	doc.AddExperience(cv.Experience{
		Position:    "Ingénieure",
		Company:     "Acme",
		StartMonth:  "Janvier",
		StartYear:   "2020",
		Current:     true,
		Description: "Automatisation des lignes de production.",
	})
	doc.AddEducation(cv.Education{
		Degree:      "Master en microtechnique",
		Institution: "EPFL",
		StartMonth:  "Septembre",
		StartYear:   "2012",
		EndMonth:    "Juin",
		EndYear:     "2017",
		Description: "Spécialisation en robotique.",
	})
	_ = doc.AddSkill("Soudure")
	_ = doc.AddSkill("Automation")
	doc.AddLanguage(cv.Language{Language: "Français", Level: "Langue maternelle"})
	doc.AddLanguage(cv.Language{Language: "Allemand", Level: "Intermédiaire"})
	doc.AddCertification(cv.Certification{Name: "CAS Robotique", Issuer: "HES-SO", Year: "2019"})
	doc.AddProject(cv.Project{
		Name:         "Chaîne d'assemblage v2",
		Date:         "2021",
		Description:  "Refonte complète de la chaîne d'assemblage.",
		Technologies: []string{"PLC", "Go"},
	})
	return doc
}
