package cv

import "errors"

var (
	// ErrUnknownField is returned for a field identifier outside the closed
	// catalog (optional fields) or the personal-info field set.
	ErrUnknownField = errors.New("unknown field")

	// ErrFieldDisabled is returned when setting a value on an optional field
	// that has not been enabled.
	ErrFieldDisabled = errors.New("optional field is not enabled")

	// ErrDuplicateSkill is returned when a skill is already present.
	ErrDuplicateSkill = errors.New("skill already added")

	// ErrEntryNotFound is returned when a list mutation targets an entry ID
	// that does not exist (anymore) in the list.
	ErrEntryNotFound = errors.New("entry not found")
)
