package genogram

// Shared test fixtures. testPerson is the reference Schema implementation
// used across the package tests; production callers implement Schema over
// their own record types (see pkg/person).

type testPerson struct {
	id      string
	fathers []string
	mothers []string
	spouses []string
	gender  Gender
}

type testSchema struct{}

func (testSchema) ID(p testPerson) string          { return p.id }
func (testSchema) FatherIDs(p testPerson) []string { return p.fathers }
func (testSchema) MotherIDs(p testPerson) []string { return p.mothers }
func (testSchema) SpouseIDs(p testPerson) []string { return p.spouses }
func (testSchema) Gender(p testPerson) Gender      { return p.gender }

// testOptions matches the canonical example dimensions used throughout the
// tests: 150x150 boxes, 30 same-generation gap, 60 inter-generation gap.
func testOptions() Options {
	return Options{
		BoxWidth:   150,
		BoxHeight:  150,
		Spacing:    30,
		RunSpacing: 60,
	}
}

func newTestEngine(persons []testPerson, opts Options) *Engine[testPerson] {
	e := NewEngine[testPerson](testSchema{}, opts)
	e.SetPersons(persons)
	return e
}

// male and female are shorthand constructors for fixture persons.
func male(id string, fathers, mothers, spouses []string) testPerson {
	return testPerson{id: id, fathers: fathers, mothers: mothers, spouses: spouses, gender: Male}
}

func female(id string, fathers, mothers, spouses []string) testPerson {
	return testPerson{id: id, fathers: fathers, mothers: mothers, spouses: spouses, gender: Female}
}

// oneFamily is a male root with two spouses and three children: two fathered
// with the first spouse, one with the second.
func oneFamily() []testPerson {
	return []testPerson{
		male("h", nil, nil, []string{"w1", "w2"}),
		female("w1", nil, nil, nil),
		female("w2", nil, nil, nil),
		male("c1", []string{"h"}, []string{"w1"}, nil),
		female("c2", []string{"h"}, []string{"w1"}, nil),
		male("c3", []string{"h"}, []string{"w2"}, nil),
	}
}

func positionsByID(placements []Placement) map[string]Point {
	m := make(map[string]Point, len(placements))
	for _, p := range placements {
		m[p.ID] = Point{X: p.X, Y: p.Y}
	}
	return m
}
