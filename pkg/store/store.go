// Package store persists saved drawings.
//
// A drawing is a named bundle of pipeline options: the tree documents plus
// the layout and render settings that reproduce an output. The server uses
// the store so a drawing can be re-rendered with different backends without
// re-uploading its trees.
//
// Backends:
//   - memory: In-memory storage for development/testing
//   - mongo: MongoDB-backed storage for deployments
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/yzhernand/treedraw/pkg/errors"
	"github.com/yzhernand/treedraw/pkg/pipeline"
)

// ErrNotFound is returned when a drawing does not exist.
var ErrNotFound = errors.New("drawing not found")

// Drawing is a stored, reproducible pipeline invocation.
type Drawing struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Options   pipeline.Options `json:"options"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Validate checks the drawing before storage.
func (d *Drawing) Validate() error {
	if err := apperrors.ValidateDrawingName(d.Name); err != nil {
		return err
	}
	if err := d.Options.ValidateForLoad(); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "drawing options")
	}
	return nil
}

// Store is the interface for drawing storage backends.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores a drawing. An empty ID is assigned a fresh UUID;
	// saving an existing ID replaces the stored drawing.
	Save(ctx context.Context, d *Drawing) error

	// Get retrieves a drawing by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*Drawing, error)

	// List returns all drawings, newest first.
	List(ctx context.Context) ([]*Drawing, error)

	// Delete removes a drawing. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// prepare assigns identity and timestamps before a save.
func prepare(d *Drawing) {
	now := time.Now().UTC()
	if d.ID == "" {
		d.ID = uuid.NewString()
		d.CreatedAt = now
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now
}
