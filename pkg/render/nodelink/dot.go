// Package nodelink renders the raw relationship graph of a person set as a
// Graphviz node-link diagram.
//
// Unlike the genogram sink, this view ignores layout semantics entirely:
// Graphviz decides the positions. It is the quickest way to inspect the
// structure of a family file, including dangling references, before running
// a full layout.
package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/genogram/pkg/genogram"
	"github.com/matzehuels/genogram/pkg/person"
	"github.com/matzehuels/genogram/pkg/render"
)

// Options configures node-link diagram generation.
type Options struct {
	// Detailed includes gender and marriage status in node labels.
	// When false, only the person's display name is shown.
	Detailed bool
}

// ToDOT converts a person set to Graphviz DOT format. Males are drawn as
// boxes, females as ellipses. Marriage edges are undirected; divorced and
// separated marriages render dashed. Parent edges point from parent to child.
func ToDOT(records []person.Record, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=filled, fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	byID := make(map[string]person.Record, len(records))
	for _, r := range records {
		byID[r.ID] = r
		fmt.Fprintf(&buf, "  %q [%s];\n", r.ID, strings.Join(fmtAttrs(r, opts.Detailed), ", "))
	}

	classify := person.Classifier()
	buf.WriteString("\n")
	for _, r := range records {
		for _, s := range r.SpouseIDs {
			spouse, ok := byID[s]
			if !ok {
				continue
			}
			attrs := "dir=none, constraint=false"
			if classify(r, spouse) != genogram.StatusMarried {
				attrs += ", style=dashed"
			}
			fmt.Fprintf(&buf, "  %q -> %q [%s];\n", r.ID, s, attrs)
		}
		for _, p := range append(append([]string{}, r.FatherIDs...), r.MotherIDs...) {
			if _, ok := byID[p]; !ok {
				continue
			}
			fmt.Fprintf(&buf, "  %q -> %q;\n", p, r.ID)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(r person.Record, detailed bool) []string {
	label := r.Name
	if label == "" {
		label = r.ID
	}
	if detailed {
		label += "\n" + strings.ToLower(r.Gender)
	}

	attrs := []string{fmt.Sprintf("label=%q", label)}
	if g, err := person.ParseGender(r.Gender); err == nil && g == genogram.Female {
		attrs = append(attrs, "shape=ellipse")
	} else {
		attrs = append(attrs, "shape=box")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with
// [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
