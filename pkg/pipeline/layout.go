package pipeline

import (
	"github.com/matzehuels/genogram/pkg/diagram"
	"github.com/matzehuels/genogram/pkg/genogram"
	"github.com/matzehuels/genogram/pkg/person"
)

// GenerateLayout runs a layout and routing pass over the records and returns
// the serializable layout document. Display labels come from the records'
// names.
func GenerateLayout(records []person.Record, opts Options) (diagram.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return diagram.Layout{}, err
	}

	engine := genogram.NewEngine[person.Record](person.Schema{}, opts.LayoutOptions(),
		genogram.WithClassifier[person.Record](person.Classifier()))
	engine.SetPersons(records)

	labels := make(map[string]string, len(records))
	for _, rec := range records {
		if rec.Name != "" {
			labels[rec.ID] = rec.Name
		}
	}

	return diagram.Capture(engine, labels), nil
}
