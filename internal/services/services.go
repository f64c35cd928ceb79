// package services defines the catalog loader and link helpers used by every front end
package services

import (
	"context"

	"github.com/desertthunder/memegacha/internal/models"
)

// CatalogSource loads the meme catalog.
type CatalogSource interface {
	// Fetch retrieves and decodes the catalog, bypassing caches.
	// A cancelled context returns ctx.Err() and the caller must discard any partial state.
	Fetch(ctx context.Context) (models.Catalog, error)

	// Name describes the source for logs (a URL or a file path).
	Name() string
}

// StaticSource is a [CatalogSource] over an in-memory catalog.
type StaticSource struct {
	Catalog models.Catalog
	Err     error
}

func (s StaticSource) Fetch(ctx context.Context) (models.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Catalog, nil
}

func (s StaticSource) Name() string { return "static" }
