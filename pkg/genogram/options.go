package genogram

// Point is a position in the diagram's coordinate space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Orientation selects the direction in which generations stack.
// The layout algorithm itself is orientation-agnostic: it operates on a
// primary axis (along which siblings and spouses spread) and a secondary
// axis (along which generations advance).
type Orientation int

const (
	// TopToBottom stacks generations downward. The primary axis is
	// horizontal: siblings spread along x, generations advance along y.
	TopToBottom Orientation = iota

	// LeftToRight stacks generations rightward. The primary axis is
	// vertical: siblings spread along y, generations advance along x.
	LeftToRight
)

// String returns the orientation name used in serialized layouts.
func (o Orientation) String() string {
	if o == LeftToRight {
		return "left-to-right"
	}
	return "top-to-bottom"
}

// ParseOrientation converts a serialized orientation name back to an
// Orientation. Unknown names fall back to TopToBottom.
func ParseOrientation(s string) Orientation {
	if s == "left-to-right" {
		return LeftToRight
	}
	return TopToBottom
}

// Default layout dimensions, in user units.
const (
	DefaultBoxWidth   = 150.0
	DefaultBoxHeight  = 150.0
	DefaultSpacing    = 30.0
	DefaultRunSpacing = 60.0
)

// Options configures a layout pass.
type Options struct {
	// BoxWidth and BoxHeight are the dimensions of one person box.
	BoxWidth  float64
	BoxHeight float64

	// Spacing is the gap between boxes of the same generation.
	Spacing float64

	// RunSpacing is the gap between consecutive generations.
	RunSpacing float64

	// Orientation selects the stacking direction.
	Orientation Orientation
}

// withDefaults returns a copy with zero dimensions replaced by defaults.
func (o Options) withDefaults() Options {
	if o.BoxWidth == 0 {
		o.BoxWidth = DefaultBoxWidth
	}
	if o.BoxHeight == 0 {
		o.BoxHeight = DefaultBoxHeight
	}
	if o.Spacing == 0 {
		o.Spacing = DefaultSpacing
	}
	if o.RunSpacing == 0 {
		o.RunSpacing = DefaultRunSpacing
	}
	return o
}

// boxPrimary returns the box extent along the primary axis.
func (o Options) boxPrimary() float64 {
	if o.Orientation == LeftToRight {
		return o.BoxHeight
	}
	return o.BoxWidth
}

// boxSecondary returns the box extent along the secondary axis.
func (o Options) boxSecondary() float64 {
	if o.Orientation == LeftToRight {
		return o.BoxWidth
	}
	return o.BoxHeight
}

// point maps primary/secondary coordinates onto x/y for the orientation.
func (o Options) point(primary, secondary float64) Point {
	if o.Orientation == LeftToRight {
		return Point{X: secondary, Y: primary}
	}
	return Point{X: primary, Y: secondary}
}

// shiftPrimary moves p by delta along the primary axis.
func (o Options) shiftPrimary(p Point, delta float64) Point {
	if o.Orientation == LeftToRight {
		p.Y += delta
		return p
	}
	p.X += delta
	return p
}

// offsetSecondary moves p by delta along the secondary axis.
func (o Options) offsetSecondary(p Point, delta float64) Point {
	if o.Orientation == LeftToRight {
		p.X += delta
		return p
	}
	p.Y += delta
	return p
}
