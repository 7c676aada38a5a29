// Package render turns serialized genogram layouts into visual output.
//
// # Overview
//
// The package consumes [diagram.Layout] documents: positioned person shapes
// plus resolved connector draw requests. It performs no geometry of its own;
// everything it draws was decided by the layout engine and the connection
// router.
//
//   - [RenderSVG]: the primary genogram sink. Males are drawn as squares,
//     females as circles, following standard genogram notation. Marriage
//     paths, junction markers and child connectors are emitted as-is.
//   - [ToPDF] and [ToPNG]: convert any SVG to other formats using the
//     external rsvg-convert tool (from librsvg).
//   - [nodelink]: a structural alternative view rendered through Graphviz,
//     useful for inspecting the relationship graph without layout semantics.
//
// # Usage
//
//	l := diagram.Capture(engine, labels)
//	svg := render.RenderSVG(l)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0) // 2x scale
//
// [nodelink]: github.com/matzehuels/genogram/pkg/render/nodelink
// [diagram.Layout]: github.com/matzehuels/genogram/pkg/diagram
package render
