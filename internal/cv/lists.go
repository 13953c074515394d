package cv

import "github.com/google/uuid"

// List mutations address entries by a stable ID assigned at add time, so an
// update or removal can never hit the wrong entry when the list shifts.
// Patches are shallow merges: nil fields keep their prior value.

// ExperiencePatch is a partial update of an Experience entry.
type ExperiencePatch struct {
	Position    *string `json:"position,omitempty"`
	Company     *string `json:"company,omitempty"`
	StartMonth  *string `json:"startMonth,omitempty"`
	StartYear   *string `json:"startYear,omitempty"`
	EndMonth    *string `json:"endMonth,omitempty"`
	EndYear     *string `json:"endYear,omitempty"`
	Current     *bool   `json:"current,omitempty"`
	Description *string `json:"description,omitempty"`
}

// EducationPatch is a partial update of an Education entry.
type EducationPatch struct {
	Degree      *string `json:"degree,omitempty"`
	Institution *string `json:"institution,omitempty"`
	StartMonth  *string `json:"startMonth,omitempty"`
	StartYear   *string `json:"startYear,omitempty"`
	EndMonth    *string `json:"endMonth,omitempty"`
	EndYear     *string `json:"endYear,omitempty"`
	Description *string `json:"description,omitempty"`
}

// LanguagePatch is a partial update of a Language entry.
type LanguagePatch struct {
	Language *string `json:"language,omitempty"`
	Level    *string `json:"level,omitempty"`
}

// CertificationPatch is a partial update of a Certification entry.
type CertificationPatch struct {
	Name   *string `json:"name,omitempty"`
	Issuer *string `json:"issuer,omitempty"`
	Year   *string `json:"year,omitempty"`
}

// ProjectPatch is a partial update of a Project entry.
type ProjectPatch struct {
	Name         *string   `json:"name,omitempty"`
	Date         *string   `json:"date,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Technologies *[]string `json:"technologies,omitempty"`
}

func apply[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func indexByID[E any](list []E, id uuid.UUID, idOf func(E) uuid.UUID) (int, bool) {
	for i, e := range list {
		if idOf(e) == id {
			return i, true
		}
	}
	return 0, false
}

func removeAt[E any](list []E, i int) []E {
	return append(list[:i], list[i+1:]...)
}

// AddExperience appends an entry, assigning its ID, and returns it.
func (d *Document) AddExperience(e Experience) Experience {
	e.ID = uuid.New()
	d.Experience = append(d.Experience, e)
	return e
}

// UpdateExperience shallow-merges a patch into the entry with the given ID.
func (d *Document) UpdateExperience(id uuid.UUID, p ExperiencePatch) error {
	i, ok := indexByID(d.Experience, id, func(e Experience) uuid.UUID { return e.ID })
	if !ok {
		return ErrEntryNotFound
	}
	e := &d.Experience[i]
	apply(&e.Position, p.Position)
	apply(&e.Company, p.Company)
	apply(&e.StartMonth, p.StartMonth)
	apply(&e.StartYear, p.StartYear)
	apply(&e.EndMonth, p.EndMonth)
	apply(&e.EndYear, p.EndYear)
	apply(&e.Current, p.Current)
	apply(&e.Description, p.Description)
	return nil
}

// RemoveExperience removes the entry with the given ID.
func (d *Document) RemoveExperience(id uuid.UUID) error {
	i, ok := indexByID(d.Experience, id, func(e Experience) uuid.UUID { return e.ID })
	if !ok {
		return ErrEntryNotFound
	}
	d.Experience = removeAt(d.Experience, i)
	return nil
}

// AddEducation appends an entry, assigning its ID, and returns it.
func (d *Document) AddEducation(e Education) Education {
	e.ID = uuid.New()
	d.Education = append(d.Education, e)
	return e
}

// UpdateEducation shallow-merges a patch into the entry with the given ID.
func (d *Document) UpdateEducation(id uuid.UUID, p EducationPatch) error {
	i, ok := indexByID(d.Education, id, func(e Education) uuid.UUID { return e.ID })
	if !ok {
		return ErrEntryNotFound
	}
	e := &d.Education[i]
	apply(&e.Degree, p.Degree)
	apply(&e.Institution, p.Institution)
	apply(&e.StartMonth, p.StartMonth)
	apply(&e.StartYear, p.StartYear)
	apply(&e.EndMonth, p.EndMonth)
	apply(&e.EndYear, p.EndYear)
	apply(&e.Description, p.Description)
	return nil
}

// RemoveEducation removes the entry with the given ID.
func (d *Document) RemoveEducation(id uuid.UUID) error {
	i, ok := indexByID(d.Education, id, func(e Education) uuid.UUID { return e.ID })
	if !ok {
		return ErrEntryNotFound
	}
	d.Education = removeAt(d.Education, i)
	return nil
}

// AddLanguage appends an entry, assigning its ID, and returns it.
func (d *Document) AddLanguage(l Language) Language {
	l.ID = uuid.New()
	d.Languages = append(d.Languages, l)
	return l
}

// UpdateLanguage shallow-merges a patch into the entry with the given ID.
func (d *Document) UpdateLanguage(id uuid.UUID, p LanguagePatch) error {
	i, ok := indexByID(d.Languages, id, func(l Language) uuid.UUID { return l.ID })
	if !ok {
		return ErrEntryNotFound
	}
	l := &d.Languages[i]
	apply(&l.Language, p.Language)
	apply(&l.Level, p.Level)
	return nil
}

// RemoveLanguage removes the entry with the given ID.
func (d *Document) RemoveLanguage(id uuid.UUID) error {
	i, ok := indexByID(d.Languages, id, func(l Language) uuid.UUID { return l.ID })
	if !ok {
		return ErrEntryNotFound
	}
	d.Languages = removeAt(d.Languages, i)
	return nil
}

// AddCertification appends an entry, assigning its ID, and returns it.
func (d *Document) AddCertification(c Certification) Certification {
	c.ID = uuid.New()
	d.Certifications = append(d.Certifications, c)
	return c
}

// UpdateCertification shallow-merges a patch into the entry with the given ID.
func (d *Document) UpdateCertification(id uuid.UUID, p CertificationPatch) error {
	i, ok := indexByID(d.Certifications, id, func(c Certification) uuid.UUID { return c.ID })
	if !ok {
		return ErrEntryNotFound
	}
	c := &d.Certifications[i]
	apply(&c.Name, p.Name)
	apply(&c.Issuer, p.Issuer)
	apply(&c.Year, p.Year)
	return nil
}

// RemoveCertification removes the entry with the given ID.
func (d *Document) RemoveCertification(id uuid.UUID) error {
	i, ok := indexByID(d.Certifications, id, func(c Certification) uuid.UUID { return c.ID })
	if !ok {
		return ErrEntryNotFound
	}
	d.Certifications = removeAt(d.Certifications, i)
	return nil
}

// AddProject appends an entry, assigning its ID, and returns it.
func (d *Document) AddProject(p Project) Project {
	p.ID = uuid.New()
	d.Projects = append(d.Projects, p)
	return p
}

// UpdateProject shallow-merges a patch into the entry with the given ID.
func (d *Document) UpdateProject(id uuid.UUID, patch ProjectPatch) error {
	i, ok := indexByID(d.Projects, id, func(p Project) uuid.UUID { return p.ID })
	if !ok {
		return ErrEntryNotFound
	}
	pr := &d.Projects[i]
	apply(&pr.Name, patch.Name)
	apply(&pr.Date, patch.Date)
	apply(&pr.Description, patch.Description)
	if patch.Technologies != nil {
		pr.Technologies = append([]string{}, (*patch.Technologies)...)
	}
	return nil
}

// RemoveProject removes the entry with the given ID.
func (d *Document) RemoveProject(id uuid.UUID) error {
	i, ok := indexByID(d.Projects, id, func(p Project) uuid.UUID { return p.ID })
	if !ok {
		return ErrEntryNotFound
	}
	d.Projects = removeAt(d.Projects, i)
	return nil
}
