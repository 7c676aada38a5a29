package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/genogram/pkg/diagram"
)

// Shape stroke and label styling for the SVG sink.
const (
	shapeStroke      = "#333333"
	shapeStrokeWidth = 2.0
	shapeFill        = "white"
	labelFontSize    = 16.0
	junctionRadius   = 4.0
	dashPattern      = "6,4"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background string
	hideLabels bool
}

// WithBackground fills the frame with a solid color before drawing. Without
// it the background is transparent.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// WithoutLabels suppresses the name text under each shape.
func WithoutLabels() SVGOption {
	return func(r *svgRenderer) { r.hideLabels = true }
}

// RenderSVG renders a layout as an SVG genogram: squares for males, circles
// for females, connectors drawn beneath the shapes. The output is
// deterministic for a given layout.
func RenderSVG(l diagram.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)

	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill=%q/>`+"\n", l.Width, l.Height, r.background)
	}

	// Connectors go under the shapes so box interiors stay clean.
	for _, c := range l.Connectors {
		renderConnector(&buf, c)
	}
	for _, s := range l.Shapes {
		renderShape(&buf, s)
	}
	if !r.hideLabels {
		for _, s := range l.Shapes {
			renderLabel(&buf, s)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderShape(buf *bytes.Buffer, s diagram.Shape) {
	if s.Gender == "female" {
		fmt.Fprintf(buf, `  <ellipse id="person-%s" cx="%.1f" cy="%.1f" rx="%.1f" ry="%.1f" fill=%q stroke=%q stroke-width="%.1f"/>`+"\n",
			s.ID, s.X+s.Width/2, s.Y+s.Height/2, s.Width/2, s.Height/2,
			shapeFill, shapeStroke, shapeStrokeWidth)
		return
	}
	fmt.Fprintf(buf, `  <rect id="person-%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill=%q stroke=%q stroke-width="%.1f"/>`+"\n",
		s.ID, s.X, s.Y, s.Width, s.Height, shapeFill, shapeStroke, shapeStrokeWidth)
}

func renderLabel(buf *bytes.Buffer, s diagram.Shape) {
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="middle" font-size="%.0f" font-family="sans-serif">%s</text>`+"\n",
		s.X+s.Width/2, s.Y+s.Height/2, labelFontSize, escapeText(s.DisplayLabel()))
}

func renderConnector(buf *bytes.Buffer, c diagram.Connector) {
	switch c.Kind {
	case "junction":
		if len(c.Points) == 0 {
			return
		}
		fmt.Fprintf(buf, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill=%q/>`+"\n",
			c.Points[0].X, c.Points[0].Y, junctionRadius, c.Color)

	case "path":
		var pts bytes.Buffer
		for i, p := range c.Points {
			if i > 0 {
				pts.WriteByte(' ')
			}
			fmt.Fprintf(&pts, "%.1f,%.1f", p.X, p.Y)
		}
		fmt.Fprintf(buf, `  <polyline points=%q fill="none" stroke=%q stroke-width="%.1f"%s/>`+"\n",
			pts.String(), c.Color, c.Width, dashAttr(c.Dashed))

	default: // line
		if len(c.Points) < 2 {
			return
		}
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke=%q stroke-width="%.1f"%s/>`+"\n",
			c.Points[0].X, c.Points[0].Y, c.Points[1].X, c.Points[1].Y, c.Color, c.Width, dashAttr(c.Dashed))
	}
}

func dashAttr(dashed bool) string {
	if dashed {
		return fmt.Sprintf(` stroke-dasharray=%q`, dashPattern)
	}
	return ""
}

// escapeText escapes the XML special characters that can appear in names.
func escapeText(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
