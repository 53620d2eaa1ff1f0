package catalog

import (
	"context"

	"shopcart/internal/model"
)

// Loader defines the interface for loading product catalogue feeds.
// A feed is a gzipped CSV file with one product per line:
// id,name,brand,category,description,price,inventory
type Loader interface {
	// Load reads a gzipped catalogue feed and returns its products.
	Load(ctx context.Context, path string) ([]model.Product, error)
}
