package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/genogram/pkg/cache"
	"github.com/matzehuels/genogram/pkg/diagram"
	"github.com/matzehuels/genogram/pkg/observability"
	"github.com/matzehuels/genogram/pkg/person"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	observability.Pipeline().OnLoadStart(ctx, opts.Source)
	records, loadHit, err := r.LoadWithCacheInfo(ctx, opts)
	observability.Pipeline().OnLoadComplete(ctx, opts.Source, len(records), time.Since(loadStart), err)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Persons = records
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.PersonCount = len(records)
	result.CacheInfo.LoadHit = loadHit

	// Compute persons hash for cache keys and API responses
	if data, err := person.Marshal(records); err == nil {
		result.PersonsHash = cache.Hash(data)
	}

	r.Logger.Info("loaded persons",
		"count", len(records),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, opts.Orientation, len(records))
	layout, layoutHit, err := r.GenerateLayoutWithCacheInfo(ctx, records, opts)
	observability.Pipeline().OnLayoutComplete(ctx, opts.Orientation, time.Since(layoutStart), err)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = layout
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.ConnectorCount = len(layout.Connectors)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"shapes", len(layout.Shapes),
		"connectors", len(layout.Connectors),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, layout, records, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo loads person records with caching and returns cache hit info.
// Inline person sets bypass the cache entirely.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) ([]person.Record, bool, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	if len(opts.Persons) > 0 {
		records := append([]person.Record(nil), opts.Persons...)
		person.AssignIDs(records)
		if err := person.Validate(records); err != nil {
			return nil, false, err
		}
		return records, false, nil
	}

	sourceHash, err := hashFile(opts.Source)
	if err != nil {
		return nil, false, err
	}
	cacheKey := r.Keyer.PersonsKey(sourceHash)

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var doc person.Document
			if err := json.Unmarshal(data, &doc); err == nil {
				observability.Cache().OnCacheHit(ctx, "persons")
				return doc.Persons, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "persons")
	}

	records, err := person.ReadFile(opts.Source)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if data, err := person.Marshal(records); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLPersons)
		observability.Cache().OnCacheSet(ctx, "persons", len(data))
	}

	return records, false, nil
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) ([]person.Record, error) {
	records, _, err := r.LoadWithCacheInfo(ctx, opts)
	return records, err
}

// GenerateLayoutWithCacheInfo computes a layout with caching and returns cache hit info.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, records []person.Record, opts Options) (diagram.Layout, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return diagram.Layout{}, false, err
	}
	r.applyLogger(&opts)

	personsData, _ := person.Marshal(records)
	personsHash := cache.Hash(personsData)
	cacheKey := r.Keyer.LayoutKey(personsHash, opts.LayoutKeyOpts())

	// Try cache first
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		if cached, err := diagram.Unmarshal(data); err == nil {
			observability.Cache().OnCacheHit(ctx, "layout")
			return cached, true, nil
		}
		// If deserialization fails, fall through to recompute
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	layout, err := GenerateLayout(records, opts)
	if err != nil {
		return diagram.Layout{}, false, err
	}

	// Cache the result
	if data, err := diagram.Marshal(layout); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return layout, false, nil
}

// GenerateLayout is a convenience wrapper that calls GenerateLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) GenerateLayout(ctx context.Context, records []person.Record, opts Options) (diagram.Layout, error) {
	layout, _, err := r.GenerateLayoutWithCacheInfo(ctx, records, opts)
	return layout, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, layout diagram.Layout, records []person.Record, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from layout data
	layoutData, err := diagram.Marshal(layout)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	// Render all formats
	rendered, err := RenderFromLayout(layout, records, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, layout diagram.Layout, records []person.Record, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, layout, records, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// hashFile hashes a file's contents for cache keying.
func hashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return cache.Hash(data), nil
}
