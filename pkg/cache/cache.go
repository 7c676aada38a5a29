// Package cache provides the caching layer for the genogram pipeline.
//
// Two backends are provided: a file cache for CLI usage and a Redis cache
// for server deployments. Both store opaque byte blobs under keys produced
// by a [Keyer], so the pipeline never constructs key strings by hand.
//
// The pipeline caches at three stages:
//   - persons: the validated person set, keyed by source content
//   - layout: the computed layout document, keyed by persons hash + options
//   - artifact: rendered output bytes, keyed by layout hash + render options
package cache

import (
	"context"
	"time"
)

// Cache TTLs per pipeline stage. Person sets change with their source file,
// so they expire fastest; layouts and artifacts are pure functions of their
// keys and can live longer.
const (
	TTLPersons  = 24 * time.Hour
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the storage interface shared by all backends. Implementations
// must treat data as opaque bytes and honor the ttl when positive; a zero
// ttl means no expiration.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional ttl.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts are the layout inputs that affect the cached result.
type LayoutKeyOpts struct {
	BoxWidth    float64
	BoxHeight   float64
	Spacing     float64
	RunSpacing  float64
	Orientation string
}

// ArtifactKeyOpts are the render inputs that affect the cached bytes.
type ArtifactKeyOpts struct {
	Format     string
	Background string
	Labels     bool
	Scale      float64
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// PersonsKey keys a validated person set by the hash of its source
	// document.
	PersonsKey(sourceHash string) string

	// LayoutKey keys a computed layout by the persons hash and the layout
	// options that shaped it.
	LayoutKey(personsHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys rendered bytes by the layout hash and render options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes all key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// PersonsKey generates a key for person set caching.
func (k *DefaultKeyer) PersonsKey(sourceHash string) string {
	return hashKey("persons", sourceHash)
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(personsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", personsHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
