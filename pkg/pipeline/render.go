package pipeline

import (
	"fmt"

	"github.com/matzehuels/genogram/pkg/diagram"
	"github.com/matzehuels/genogram/pkg/person"
	"github.com/matzehuels/genogram/pkg/render"
	"github.com/matzehuels/genogram/pkg/render/nodelink"
)

// RenderFromLayout renders all requested formats from a computed layout.
// records are only needed for the dot format, which works on the raw
// relationship graph; pass nil when dot is not requested.
func RenderFromLayout(layout diagram.Layout, records []person.Record, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))

	// SVG is the base for PNG and PDF; render it once when any of the
	// three is requested.
	var svg []byte
	needsSVG := false
	for _, f := range opts.Formats {
		if f == FormatSVG || f == FormatPNG || f == FormatPDF {
			needsSVG = true
		}
	}
	if needsSVG {
		svg = render.RenderSVG(layout, svgOptions(opts)...)
	}

	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			artifacts[FormatSVG] = svg

		case FormatPNG:
			png, err := render.ToPNG(svg, opts.Scale)
			if err != nil {
				return nil, fmt.Errorf("render png: %w", err)
			}
			artifacts[FormatPNG] = png

		case FormatPDF:
			pdf, err := render.ToPDF(svg)
			if err != nil {
				return nil, fmt.Errorf("render pdf: %w", err)
			}
			artifacts[FormatPDF] = pdf

		case FormatJSON:
			data, err := diagram.Marshal(layout)
			if err != nil {
				return nil, fmt.Errorf("render json: %w", err)
			}
			artifacts[FormatJSON] = data

		case FormatDOT:
			artifacts[FormatDOT] = []byte(nodelink.ToDOT(records, nodelink.Options{}))

		default:
			return nil, fmt.Errorf("invalid format: %q", format)
		}
	}

	return artifacts, nil
}

func svgOptions(opts Options) []render.SVGOption {
	var svgOpts []render.SVGOption
	if opts.Background != "" {
		svgOpts = append(svgOpts, render.WithBackground(opts.Background))
	}
	if opts.HideLabels {
		svgOpts = append(svgOpts, render.WithoutLabels())
	}
	return svgOpts
}
