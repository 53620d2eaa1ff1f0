package catalog

import (
	"context"
	"fmt"
	"sync"

	"shopcart/internal/model"
	"shopcart/internal/repository"

	"github.com/rs/zerolog"
)

// Importer loads catalogue feeds and upserts their products into the store.
type Importer struct {
	loader      Loader
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewImporter creates a new catalogue importer.
func NewImporter(loader Loader, productRepo repository.ProductRepository, logger zerolog.Logger) *Importer {
	return &Importer{
		loader:      loader,
		productRepo: productRepo,
		logger:      logger.With().Str("component", "catalog-importer").Logger(),
	}
}

// Import loads all feeds concurrently and upserts their products. When the
// same product ID appears in multiple feeds, the later feed wins. Returns
// the number of products written.
func (i *Importer) Import(ctx context.Context, feeds []string) (int, error) {
	if len(feeds) == 0 {
		return 0, nil
	}

	i.logger.Info().
		Int("feed_count", len(feeds)).
		Msg("importing catalogue feeds")

	// Load all feeds concurrently
	type loadResult struct {
		index    int
		products []model.Product
		err      error
	}

	resultChan := make(chan loadResult, len(feeds))
	var wg sync.WaitGroup

	for idx, feed := range feeds {
		wg.Add(1)
		go func(index int, path string) {
			defer wg.Done()

			products, err := i.loader.Load(ctx, path)
			resultChan <- loadResult{
				index:    index,
				products: products,
				err:      err,
			}
		}(idx, feed)
	}

	// Wait for all loads to complete
	wg.Wait()
	close(resultChan)

	// Collect results in feed order so the later-feed-wins rule is stable
	results := make([]loadResult, len(feeds))
	for result := range resultChan {
		results[result.index] = result
	}

	merged := make(map[string]model.Product)
	order := make([]string, 0)

	for idx, result := range results {
		if result.err != nil {
			i.logger.Error().
				Err(result.err).
				Str("feed", feeds[idx]).
				Msg("failed to load catalogue feed")
			return 0, fmt.Errorf("failed to load catalogue feed %s: %w", feeds[idx], result.err)
		}

		for _, product := range result.products {
			if _, seen := merged[product.ID]; !seen {
				order = append(order, product.ID)
			}
			merged[product.ID] = product
		}

		i.logger.Info().
			Str("feed", feeds[idx]).
			Int("products", len(result.products)).
			Msg("catalogue feed loaded")
	}

	written := 0
	for _, id := range order {
		product := merged[id]
		if err := i.productRepo.Upsert(ctx, &product); err != nil {
			i.logger.Error().Err(err).Str("product_id", id).Msg("failed to upsert product")
			return written, fmt.Errorf("failed to import product %s: %w", id, err)
		}
		written++
	}

	i.logger.Info().
		Int("products_imported", written).
		Msg("catalogue import completed")

	return written, nil
}
