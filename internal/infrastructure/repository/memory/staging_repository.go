package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/riskibarqy/sports-dw/internal/domain/staging"
	"github.com/riskibarqy/sports-dw/internal/platform/document"
)

// StagingRepository holds staging collections in memory, preserving
// insertion order within each collection.
type StagingRepository struct {
	mu          sync.RWMutex
	collections map[string][]document.Value
}

func NewStagingRepository(seed map[string][]document.Value) *StagingRepository {
	collections := make(map[string][]document.Value, len(seed))
	for name, docs := range seed {
		collections[name] = append([]document.Value(nil), docs...)
	}
	return &StagingRepository{collections: collections}
}

func (r *StagingRepository) CollectionNames(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.collections))
	for name := range r.collections {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

func (r *StagingRepository) Iterate(ctx context.Context, collection string, fn func(staging.Document) error) error {
	r.mu.RLock()
	docs := append([]document.Value(nil), r.collections[collection]...)
	r.mu.RUnlock()

	for i, body := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(staging.Document{Collection: collection, ID: strconv.Itoa(i), Body: body}); err != nil {
			return err
		}
	}
	return nil
}

func (r *StagingRepository) ReplaceCollection(_ context.Context, collection string, docs []document.Value) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.collections[collection] = append([]document.Value(nil), docs...)
	return len(docs), nil
}

// Documents returns a copy of one collection.
func (r *StagingRepository) Documents(collection string) []document.Value {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]document.Value(nil), r.collections[collection]...)
}
