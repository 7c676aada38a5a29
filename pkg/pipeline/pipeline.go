// Package pipeline provides the core genogram pipeline.
//
// This package implements the complete load → layout → render pipeline that
// can be used by CLI and API components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read and validate person records from a TOML or JSON file
//  2. Layout: Compute box positions and connector geometry
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source:  "family.toml",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Load only
//	records, err := runner.Load(ctx, opts)
//
//	// Layout with existing records
//	layout, err := runner.GenerateLayout(ctx, records, opts)
//
//	// Render with existing layout
//	artifacts, err := runner.Render(ctx, layout, records, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/genogram/pkg/cache"
	"github.com/matzehuels/genogram/pkg/diagram"
	"github.com/matzehuels/genogram/pkg/genogram"
	"github.com/matzehuels/genogram/pkg/person"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0

	// DefaultOrientation is the default generation stacking direction.
	DefaultOrientation = "top-to-bottom"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// ValidOrientations is the set of supported orientations.
var ValidOrientations = map[string]bool{
	"top-to-bottom": true,
	"left-to-right": true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the genogram pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Source  string          `json:"source,omitempty"`  // Path to a TOML or JSON person file
	Persons []person.Record `json:"persons,omitempty"` // Inline person set (API requests)
	Refresh bool            `json:"refresh,omitempty"` // Bypass the load cache

	// Layout options
	BoxWidth    float64 `json:"box_width,omitempty"`
	BoxHeight   float64 `json:"box_height,omitempty"`
	Spacing     float64 `json:"spacing,omitempty"`
	RunSpacing  float64 `json:"run_spacing,omitempty"`
	Orientation string  `json:"orientation,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Background string   `json:"background,omitempty"`
	HideLabels bool     `json:"hide_labels,omitempty"`
	Scale      float64  `json:"scale,omitempty"` // PNG resolution multiplier

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Persons is the validated person set.
	Persons []person.Record

	// PersonsHash is the content hash of the person set.
	PersonsHash string

	// Layout is the computed layout document.
	Layout diagram.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PersonCount    int
	ConnectorCount int
	LoadTime       time.Duration
	LayoutTime     time.Duration
	RenderTime     time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit   bool // Whether the person set came from cache
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateOrientation checks that an orientation is valid.
func ValidateOrientation(orientation string) error {
	if !ValidOrientations[orientation] {
		return fmt.Errorf("invalid orientation: %q (must be one of: top-to-bottom, left-to-right)", orientation)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading.
func (o *Options) ValidateForLoad() error {
	if o.Source == "" && len(o.Persons) == 0 {
		return fmt.Errorf("source or persons is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Orientation == "" {
		o.Orientation = DefaultOrientation
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return ValidateOrientation(o.Orientation)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// LayoutOptions converts the pipeline options to engine options.
func (o *Options) LayoutOptions() genogram.Options {
	return genogram.Options{
		BoxWidth:    o.BoxWidth,
		BoxHeight:   o.BoxHeight,
		Spacing:     o.Spacing,
		RunSpacing:  o.RunSpacing,
		Orientation: genogram.ParseOrientation(o.Orientation),
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		BoxWidth:    o.BoxWidth,
		BoxHeight:   o.BoxHeight,
		Spacing:     o.Spacing,
		RunSpacing:  o.RunSpacing,
		Orientation: o.Orientation,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Background: o.Background,
		Labels:     !o.HideLabels,
		Scale:      o.Scale,
	}
}
