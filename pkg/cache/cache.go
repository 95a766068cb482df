// Package cache provides byte-level caching for the drawing pipeline.
//
// The pipeline caches at three levels: parsed trees by content hash,
// computed layouts by tree hash plus layout options, and rendered artifacts
// by layout hash plus render options. Keys are built by a [Keyer] so every
// consumer derives them the same way; values are opaque bytes.
//
// Backends: [FileCache] for CLI usage, [RedisCache] for the server, and
// [NullCache] to disable caching.
package cache

import (
	"context"
	"time"

	"github.com/yzhernand/treedraw/pkg/layout"
)

// Default TTLs per cache level. Trees and layouts are pure functions of
// their inputs, so the TTLs exist only to bound disk usage.
const (
	TreeTTL     = 24 * time.Hour
	LayoutTTL   = 7 * 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)

// Cache stores opaque bytes under string keys with optional expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was present
	// and unexpired; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts captures every input that changes computed geometry. The
// full layout configuration participates in the key; a single changed
// margin produces a different layout and must produce a different key.
type LayoutKeyOpts struct {
	Tanglegram bool          `json:"tanglegram"`
	Pairs      [][2]string   `json:"pairs,omitempty"`
	Config     layout.Config `json:"config"`
	Font       string        `json:"font"`
	FontSize   float64       `json:"font_size"`
}

// ArtifactKeyOpts captures every input that changes rendered output for a
// fixed layout.
type ArtifactKeyOpts struct {
	Backend   string  `json:"backend"`
	Scale     float64 `json:"scale"`
	LineWidth float64 `json:"line_width"`
}

// Keyer generates cache keys for the pipeline's three cache levels.
type Keyer interface {
	// TreeKey generates a key for a parsed tree, from the content hash of
	// its source document.
	TreeKey(contentHash string) string

	// LayoutKey generates a key for a computed layout.
	LayoutKey(treeHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer derives keys by hashing the inputs. Keys are stable across
// processes and releases as long as the opts structs keep their fields.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// TreeKey generates a key for a parsed tree.
func (k *DefaultKeyer) TreeKey(contentHash string) string {
	return "tree:" + contentHash
}

// LayoutKey generates a key for a computed layout.
func (k *DefaultKeyer) LayoutKey(treeHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", treeHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
