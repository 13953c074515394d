package cv

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetPersonalField(t *testing.T) {
	doc := NewDocument()

	require.NoError(t, doc.SetPersonalField(FieldFirstName, "Ana"))
	require.NoError(t, doc.SetPersonalField(FieldLastName, "Keller"))
	require.NoError(t, doc.SetPersonalField(FieldSummary, ""))

	assert.Equal(t, "Ana", doc.PersonalInfo.FirstName)
	assert.Equal(t, "Keller", doc.PersonalInfo.LastName)

	err := doc.SetPersonalField("nickname", "x")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestToggleOptionalField_InvariantHolds(t *testing.T) {
	doc := NewDocument()

	// Arbitrary toggle sequence; after every call the enabled set and the
	// value map keys must match exactly.
	sequence := []string{
		FieldNationality, FieldBirthDate, FieldNationality,
		FieldFreeText, FieldBirthDate, FieldBirthDate,
	}
	for _, id := range sequence {
		require.NoError(t, doc.ToggleOptionalField(id))
		assert.Len(t, doc.OptionalFields, len(doc.EnabledFields))
		for _, enabled := range doc.EnabledFields {
			_, ok := doc.OptionalFields[enabled]
			assert.True(t, ok, "enabled field %q missing from value map", enabled)
		}
	}

	// nationality toggled twice (off), freeText once (on), birthDate three
	// times (on).
	assert.ElementsMatch(t, []string{FieldFreeText, FieldBirthDate}, doc.EnabledFields)
}

func TestToggleOptionalField_ReEnableStartsBlank(t *testing.T) {
	doc := NewDocument()

	require.NoError(t, doc.ToggleOptionalField(FieldNationality))
	require.NoError(t, doc.SetOptionalFieldValue(FieldNationality, "Suisse"))
	require.NoError(t, doc.ToggleOptionalField(FieldNationality))
	require.NoError(t, doc.ToggleOptionalField(FieldNationality))

	assert.Equal(t, "", doc.OptionalFields[FieldNationality])
}

func TestNormalizeImported_RepairsOptionalFields(t *testing.T) {
	doc := NewDocument()
	doc.EnabledFields = []string{FieldNationality, FieldNationality, "starSign"}
	doc.OptionalFields = map[string]string{FieldBirthPlace: "Lausanne"}

	doc.NormalizeImported()

	assert.Equal(t, []string{FieldNationality}, doc.EnabledFields)
	assert.Equal(t, map[string]string{FieldNationality: ""}, doc.OptionalFields)

	// The repaired field is editable again.
	require.NoError(t, doc.SetOptionalFieldValue(FieldNationality, "Suisse"))
	assert.Equal(t, "Suisse", doc.OptionalFields[FieldNationality])
}

func TestNormalizeImported_AssignsMissingEntryIDs(t *testing.T) {
	doc := NewDocument()
	doc.Experience = []Experience{{Position: "A"}, {Position: "B"}}
	doc.Languages = []Language{{Language: "Français"}}
	kept := uuid.New()
	doc.Education = []Education{{ID: kept, Degree: "Master"}}

	doc.NormalizeImported()

	assert.NotEqual(t, uuid.Nil, doc.Experience[0].ID)
	assert.NotEqual(t, uuid.Nil, doc.Experience[1].ID)
	assert.NotEqual(t, doc.Experience[0].ID, doc.Experience[1].ID)
	assert.NotEqual(t, uuid.Nil, doc.Languages[0].ID)
	assert.Equal(t, kept, doc.Education[0].ID)
}

func TestToggleOptionalField_UnknownID(t *testing.T) {
	doc := NewDocument()
	assert.ErrorIs(t, doc.ToggleOptionalField("shoeSize"), ErrUnknownField)
}

func TestSetOptionalFieldValue_RequiresEnabled(t *testing.T) {
	doc := NewDocument()

	err := doc.SetOptionalFieldValue(FieldNationality, "Suisse")
	assert.ErrorIs(t, err, ErrFieldDisabled)

	require.NoError(t, doc.ToggleOptionalField(FieldNationality))
	require.NoError(t, doc.SetOptionalFieldValue(FieldNationality, "Suisse"))
	assert.Equal(t, "Suisse", doc.OptionalFields[FieldNationality])
}

func TestAddSkill_Deduplicates(t *testing.T) {
	doc := NewDocument()

	require.NoError(t, doc.AddSkill("Soudure"))
	assert.ErrorIs(t, doc.AddSkill("Soudure"), ErrDuplicateSkill)
	require.NoError(t, doc.AddSkill("Cariste"))

	assert.Equal(t, []string{"Soudure", "Cariste"}, doc.Skills)
}

func TestAddSkill_BlankIsNoOp(t *testing.T) {
	doc := NewDocument()
	require.NoError(t, doc.AddSkill("   "))
	assert.Empty(t, doc.Skills)
}

func TestRemoveSkill(t *testing.T) {
	doc := NewDocument()
	require.NoError(t, doc.AddSkill("Soudure"))
	require.NoError(t, doc.AddSkill("Cariste"))

	doc.RemoveSkill("Soudure")
	assert.Equal(t, []string{"Cariste"}, doc.Skills)

	// Unknown value is a no-op.
	doc.RemoveSkill("Peinture")
	assert.Equal(t, []string{"Cariste"}, doc.Skills)
}

func TestExperienceList_AddUpdateRemove(t *testing.T) {
	doc := NewDocument()

	added := doc.AddExperience(Experience{
		Position:   "Ingénieure",
		Company:    "Acme",
		StartMonth: "Janvier",
		StartYear:  "2020",
		Current:    true,
	})
	require.NotEqual(t, uuid.Nil, added.ID)
	require.Len(t, doc.Experience, 1)

	// Patch merges; untouched fields keep their prior values.
	company := "Acme SA"
	require.NoError(t, doc.UpdateExperience(added.ID, ExperiencePatch{Company: &company}))
	assert.Equal(t, "Acme SA", doc.Experience[0].Company)
	assert.Equal(t, "Ingénieure", doc.Experience[0].Position)
	assert.True(t, doc.Experience[0].Current)

	require.NoError(t, doc.RemoveExperience(added.ID))
	assert.Empty(t, doc.Experience)

	assert.ErrorIs(t, doc.UpdateExperience(added.ID, ExperiencePatch{}), ErrEntryNotFound)
	assert.ErrorIs(t, doc.RemoveExperience(added.ID), ErrEntryNotFound)
}

func TestListOrder_IsInsertionOrder(t *testing.T) {
	doc := NewDocument()
	doc.AddEducation(Education{Degree: "CFC"})
	doc.AddEducation(Education{Degree: "Brevet"})
	first := doc.AddEducation(Education{Degree: "Master"})

	require.NoError(t, doc.RemoveEducation(doc.Education[0].ID))
	assert.Equal(t, "Brevet", doc.Education[0].Degree)
	assert.Equal(t, "Master", doc.Education[1].Degree)
	assert.Equal(t, first.ID, doc.Education[1].ID)
}

func TestProjectPatch_ReplacesTechnologies(t *testing.T) {
	doc := NewDocument()
	p := doc.AddProject(Project{Name: "Site vitrine", Technologies: []string{"Go"}})

	techs := []string{"Go", "PostgreSQL"}
	require.NoError(t, doc.UpdateProject(p.ID, ProjectPatch{Technologies: &techs}))
	assert.Equal(t, []string{"Go", "PostgreSQL"}, doc.Projects[0].Technologies)

	// The patch slice is copied, not aliased.
	techs[0] = "Rust"
	assert.Equal(t, "Go", doc.Projects[0].Technologies[0])
}

func TestClone_IsDeep(t *testing.T) {
	doc := NewDocument()
	require.NoError(t, doc.SetPersonalField(FieldFirstName, "Ana"))
	require.NoError(t, doc.ToggleOptionalField(FieldNationality))
	require.NoError(t, doc.AddSkill("Soudure"))
	doc.AddExperience(Experience{Position: "Ingénieure"})

	clone := doc.Clone()
	require.NoError(t, clone.SetPersonalField(FieldFirstName, "Eva"))
	require.NoError(t, clone.SetOptionalFieldValue(FieldNationality, "Italienne"))
	clone.Skills[0] = "Peinture"
	clone.Experience[0].Position = "Technicienne"

	assert.Equal(t, "Ana", doc.PersonalInfo.FirstName)
	assert.Equal(t, "", doc.OptionalFields[FieldNationality])
	assert.Equal(t, "Soudure", doc.Skills[0])
	assert.Equal(t, "Ingénieure", doc.Experience[0].Position)
}
