// Package person defines the on-disk person record format and its adapter to
// the layout engine's schema.
//
// Records are deliberately close to how genealogy data is authored by hand:
// string ids, string genders, and an optional per-spouse marriage status map.
// The package validates a record set once at the boundary; downstream
// packages work with the tolerant engine semantics (dangling references are
// skipped, not rejected).
package person

import (
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/genogram/pkg/errors"
	"github.com/matzehuels/genogram/pkg/genogram"
)

// Record is one person as authored in an input document. All relationship
// fields hold ids of other records; missing ids are tolerated by the engine.
type Record struct {
	ID        string   `json:"id" toml:"id"`
	Name      string   `json:"name,omitempty" toml:"name,omitempty"`
	Gender    string   `json:"gender" toml:"gender"`
	FatherIDs []string `json:"father_ids,omitempty" toml:"father_ids,omitempty"`
	MotherIDs []string `json:"mother_ids,omitempty" toml:"mother_ids,omitempty"`
	SpouseIDs []string `json:"spouse_ids,omitempty" toml:"spouse_ids,omitempty"`

	// Marriages maps a spouse id to a status string ("married", "divorced",
	// "separated"). Spouses without an entry default to married.
	Marriages map[string]string `json:"marriages,omitempty" toml:"marriages,omitempty"`
}

// ParseGender maps an authored gender string to the engine's gender. It
// accepts the full words and their single-letter forms, case-insensitively.
func ParseGender(s string) (genogram.Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return genogram.Male, nil
	case "female", "f":
		return genogram.Female, nil
	default:
		return genogram.Male, errors.New(errors.ErrCodeInvalidGender, "unknown gender %q", s)
	}
}

// ParseStatus maps an authored marriage status string to the engine's status.
// An empty string means married.
func ParseStatus(s string) (genogram.MarriageStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "married":
		return genogram.StatusMarried, nil
	case "divorced":
		return genogram.StatusDivorced, nil
	case "separated":
		return genogram.StatusSeparated, nil
	default:
		return genogram.StatusMarried, errors.New(errors.ErrCodeInvalidInput, "unknown marriage status %q", s)
	}
}

// Schema adapts Record to the engine's field accessors. Gender strings that
// fail to parse fall back to male; Validate catches them before layout.
type Schema struct{}

func (Schema) ID(r Record) string          { return r.ID }
func (Schema) FatherIDs(r Record) []string { return r.FatherIDs }
func (Schema) MotherIDs(r Record) []string { return r.MotherIDs }
func (Schema) SpouseIDs(r Record) []string { return r.SpouseIDs }

func (Schema) Gender(r Record) genogram.Gender {
	g, _ := ParseGender(r.Gender)
	return g
}

// Classifier returns a marriage status classifier backed by the records'
// Marriages maps. Either side of the pair may carry the entry; the husband's
// takes precedence. Unknown status strings classify as married.
func Classifier() genogram.Classifier[Record] {
	return func(p, s Record) genogram.MarriageStatus {
		if raw, ok := p.Marriages[s.ID]; ok {
			st, _ := ParseStatus(raw)
			return st
		}
		if raw, ok := s.Marriages[p.ID]; ok {
			st, _ := ParseStatus(raw)
			return st
		}
		return genogram.StatusMarried
	}
}

// AssignIDs backfills a fresh UUID for every record with an empty id and
// returns the number of ids assigned. Relationship fields are left untouched;
// they can only reference ids the author wrote out.
func AssignIDs(records []Record) int {
	var n int
	for i := range records {
		if records[i].ID == "" {
			records[i].ID = uuid.NewString()
			n++
		}
	}
	return n
}

// Validate checks a record set for structural problems: duplicate ids, empty
// ids, unparseable genders and unparseable marriage statuses. Dangling
// relationship references are not an error.
func Validate(records []Record) error {
	seen := make(map[string]bool, len(records))
	for i, r := range records {
		if r.ID == "" {
			return errors.New(errors.ErrCodeInvalidInput, "person %d has no id", i)
		}
		if seen[r.ID] {
			return errors.New(errors.ErrCodeDuplicateID, "duplicate person id %q", r.ID)
		}
		seen[r.ID] = true

		if _, err := ParseGender(r.Gender); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidGender, err, "person %q", r.ID)
		}
		for spouse, status := range r.Marriages {
			if _, err := ParseStatus(status); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "person %q, spouse %q", r.ID, spouse)
			}
		}
	}
	return nil
}
