package genogram

// Gender drives couple grouping and layout ordering.
// No values beyond male and female are defined.
type Gender int

const (
	// Male persons anchor couple groups and are placed first within them.
	Male Gender = iota
	// Female persons join the group of the male that lists them as a
	// spouse, or form a singleton group when unmarried.
	Female
)

// String returns the lowercase name of the gender.
func (g Gender) String() string {
	if g == Female {
		return "female"
	}
	return "male"
}

// Schema is the capability interface through which the layout core reads
// person data. The data owner implements it once for its own record type;
// the core never depends on a concrete data shape.
//
// All methods must be pure: same input, same output, no side effects.
// Id values must be stable and unique across the person set; the package
// does not validate uniqueness. Relationship id lists may be nil or empty,
// and may contain ids with no matching person (dangling references are
// tolerated and excluded from derived lookups).
type Schema[E any] interface {
	// ID returns the stable, unique identifier of the person.
	ID(person E) string

	// FatherIDs returns zero or more father references.
	FatherIDs(person E) []string

	// MotherIDs returns zero or more mother references.
	MotherIDs(person E) []string

	// SpouseIDs returns the declared spouses. A marriage may be declared
	// on either partner; the relationship is treated as bidirectional.
	SpouseIDs(person E) []string

	// Gender returns the person's gender.
	Gender(person E) Gender
}

// MarriageStatus classifies one marriage relationship.
type MarriageStatus string

// Marriage statuses. StatusMarried is the default when no classifier
// is configured.
const (
	StatusMarried   MarriageStatus = "married"
	StatusDivorced  MarriageStatus = "divorced"
	StatusSeparated MarriageStatus = "separated"
)

// Classifier reports the marriage status between a person and one of their
// spouses. It is optional; a nil classifier treats every marriage as
// StatusMarried.
type Classifier[E any] func(person, spouse E) MarriageStatus
