// Package pkg provides the core libraries for genogram layout and rendering.
//
// # Overview
//
// Genogram turns structured family data into genogram diagrams: squares for
// males, circles for females, marriage lines between spouses, and descent
// lines down to children. The pkg directory is organized into five areas:
//
//  1. [genogram] - The layout engine (relationship index, ordering, routing)
//  2. [person] - Person records, parsing, and validation (TOML/JSON)
//  3. [diagram] / [render] - Serializable layouts and SVG/PNG/PDF output
//  4. [pipeline] - Orchestration (load → layout → render) with caching
//  5. [cache] / [observability] / [errors] - Infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	family.toml / family.json
//	         ↓
//	    [person] package (decode, id assignment, validation)
//	         ↓
//	    [genogram] package (relationship index + recursive layout + routing)
//	         ↓
//	    [diagram] package (serializable shapes and connectors)
//	         ↓
//	    [render] package (SVG, and PDF/PNG conversion)
//
// # Quick Start
//
// Load a family file and render it:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/genogram/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    Source:  "family.toml",
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Use the layout engine directly with a custom entity type:
//
//	engine := genogram.NewEngine[person.Record](person.Schema{}, genogram.Options{})
//	engine.SetPersons(records)
//	if err := engine.Compute(); err != nil {
//	    log.Fatal(err)
//	}
//	for _, n := range engine.Nodes() {
//	    fmt.Println(n.ID, n.Box.X, n.Box.Y)
//	}
//
// # Main Packages
//
// [genogram] - The generic layout engine. Builds a relationship index from a
// Schema, orders children deterministically, lays out couple groups
// generation by generation, and routes marriage and descent connectors.
//
// [person] - The concrete person record with TOML and JSON codecs, gender
// and marriage-status parsing, id backfilling, and validation.
//
// [diagram] - Serializable layout documents (shapes plus connectors) shared
// by the CLI, the HTTP API, and the cache.
//
// [render] - SVG rendering of layout documents, plus PDF/PNG conversion via
// rsvg-convert. [render/nodelink] renders the raw relationship graph through
// Graphviz as an alternative view.
//
// [pipeline] - The load → layout → render pipeline used by both CLI and
// HTTP server, with per-stage caching keyed on content hashes.
//
// [cache] - Cache interface with file, redis, and null implementations, and
// the key derivation for each pipeline stage.
//
// [observability] - Hook registry for pipeline, cache, and server events.
// No-op by default; deployments register their own backends.
//
// [errors] - Structured errors with machine-readable codes shared by the
// CLI and the HTTP API.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/genogram/... # Layout engine only
//	go test -run Example       # Examples only
//
// [genogram]: https://pkg.go.dev/github.com/matzehuels/genogram/pkg/genogram
// [person]: https://pkg.go.dev/github.com/matzehuels/genogram/pkg/person
// [diagram]: https://pkg.go.dev/github.com/matzehuels/genogram/pkg/diagram
// [render]: https://pkg.go.dev/github.com/matzehuels/genogram/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/genogram/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/genogram/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/genogram/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/genogram/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/genogram/pkg/errors
package pkg
