package catalog

import (
	"compress/gzip"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"shopcart/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// feedColumns is the expected number of CSV columns per product line.
const feedColumns = 7

// fileLoader implements Loader for reading gzipped catalogue feeds from disk.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based catalogue feed loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "catalog-loader").Logger(),
	}
}

// Load reads a gzipped catalogue feed and returns its products.
func (l *fileLoader) Load(ctx context.Context, path string) ([]model.Product, error) {
	l.logger.Info().Str("file", path).Msg("loading catalogue feed")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open catalogue feed")
		return nil, fmt.Errorf("failed to open catalogue feed %s: %w", path, err)
	}
	defer file.Close()

	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to create gzip reader")
		return nil, fmt.Errorf("failed to create gzip reader for %s: %w", path, err)
	}
	defer gzipReader.Close()

	products, err := decodeFeed(ctx, gzipReader, path, l.logger)
	if err != nil {
		return nil, err
	}

	l.logger.Info().
		Str("file", path).
		Int("products_loaded", len(products)).
		Msg("catalogue feed loaded successfully")

	return products, nil
}

// decodeFeed parses CSV product lines from an already-decompressed reader.
// Malformed lines are skipped with a warning rather than failing the feed.
func decodeFeed(ctx context.Context, r io.Reader, source string, logger zerolog.Logger) ([]model.Product, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var products []model.Product
	now := time.Now()
	line := 0

	for {
		select {
		case <-ctx.Done():
			logger.Warn().Str("source", source).Msg("catalogue feed loading cancelled")
			return nil, ctx.Err()
		default:
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Error().Err(err).Str("source", source).Msg("error reading catalogue feed")
			return nil, fmt.Errorf("error reading catalogue feed %s: %w", source, err)
		}
		line++

		product, ok := parseRecord(record, now)
		if !ok {
			logger.Warn().
				Str("source", source).
				Int("line", line).
				Msg("skipping malformed catalogue record")
			continue
		}

		products = append(products, product)
	}

	return products, nil
}

// parseRecord converts one CSV record into a product.
func parseRecord(record []string, createdAt time.Time) (model.Product, bool) {
	if len(record) != feedColumns {
		return model.Product{}, false
	}

	id := strings.TrimSpace(record[0])
	if id == "" {
		return model.Product{}, false
	}

	price, err := decimal.NewFromString(strings.TrimSpace(record[5]))
	if err != nil || price.IsNegative() {
		return model.Product{}, false
	}

	inventory, err := strconv.Atoi(strings.TrimSpace(record[6]))
	if err != nil || inventory < 0 {
		return model.Product{}, false
	}

	return model.Product{
		ID:          id,
		Name:        strings.TrimSpace(record[1]),
		Brand:       strings.TrimSpace(record[2]),
		Category:    strings.TrimSpace(record[3]),
		Description: strings.TrimSpace(record[4]),
		Price:       price,
		Inventory:   inventory,
		CreatedAt:   createdAt,
	}, true
}
