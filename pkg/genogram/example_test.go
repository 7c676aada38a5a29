package genogram_test

import (
	"fmt"

	"github.com/matzehuels/genogram/pkg/genogram"
)

// person is a minimal caller-owned record with a Schema implementation.
type person struct {
	ID      string
	Fathers []string
	Mothers []string
	Spouses []string
	Female  bool
}

type schema struct{}

func (schema) ID(p person) string          { return p.ID }
func (schema) FatherIDs(p person) []string { return p.Fathers }
func (schema) MotherIDs(p person) []string { return p.Mothers }
func (schema) SpouseIDs(p person) []string { return p.Spouses }
func (schema) Gender(p person) genogram.Gender {
	if p.Female {
		return genogram.Female
	}
	return genogram.Male
}

func ExampleEngine_Compute() {
	engine := genogram.NewEngine[person](schema{}, genogram.Options{
		BoxWidth:   150,
		BoxHeight:  150,
		Spacing:    30,
		RunSpacing: 60,
	})
	engine.SetPersons([]person{
		{ID: "adam", Spouses: []string{"eve"}},
		{ID: "eve", Female: true},
		{ID: "cain", Fathers: []string{"adam"}, Mothers: []string{"eve"}},
		{ID: "abel", Fathers: []string{"adam"}, Mothers: []string{"eve"}},
	})

	placements, connections := engine.Compute()
	for _, p := range placements {
		fmt.Printf("%s at (%.0f, %.0f)\n", p.ID, p.X, p.Y)
	}
	fmt.Printf("%d connectors\n", len(connections))

	// Output:
	// adam at (60, 60)
	// eve at (240, 60)
	// cain at (60, 270)
	// abel at (240, 270)
	// 4 connectors
}
