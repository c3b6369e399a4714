package usecase

import (
	"context"
	"fmt"

	"github.com/KPfeil25/world-cup-26-predictions/internal/platform/cache"
	"github.com/KPfeil25/world-cup-26-predictions/internal/tablestore"
)

const datasetCacheKey = "dataset"

// DatasetProvider hands out the current dataset snapshot and lets the
// owner force a reload.
type DatasetProvider interface {
	Dataset(ctx context.Context) (tablestore.Dataset, error)
	Invalidate(ctx context.Context)
}

// DatasetSource loads the CSV directory on demand and keeps the
// snapshot in a TTL cache. Concurrent first requests share one load
// through the cache's singleflight.
type DatasetSource struct {
	dir   string
	cache *cache.Store
}

func NewDatasetSource(dir string, store *cache.Store) *DatasetSource {
	return &DatasetSource{dir: dir, cache: store}
}

func (s *DatasetSource) Dataset(ctx context.Context) (tablestore.Dataset, error) {
	if s.cache == nil {
		return tablestore.Load(s.dir)
	}
	value, err := s.cache.GetOrLoad(ctx, datasetCacheKey, func(context.Context) (any, error) {
		return tablestore.Load(s.dir)
	})
	if err != nil {
		return tablestore.Dataset{}, err
	}
	ds, ok := value.(tablestore.Dataset)
	if !ok {
		return tablestore.Dataset{}, fmt.Errorf("unexpected dataset cache entry %T", value)
	}
	return ds, nil
}

func (s *DatasetSource) Invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Delete(ctx, datasetCacheKey)
	}
}
