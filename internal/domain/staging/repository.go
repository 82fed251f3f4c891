package staging

import (
	"context"

	"github.com/riskibarqy/sports-dw/internal/platform/document"
)

// Source reads staging documents. Iterate stops at the first error
// returned by fn and returns it.
type Source interface {
	CollectionNames(ctx context.Context) ([]string, error)
	Iterate(ctx context.Context, collection string, fn func(Document) error) error
}

// Writer replaces a staging collection wholesale with fresh documents and
// returns how many were stored.
type Writer interface {
	ReplaceCollection(ctx context.Context, collection string, docs []document.Value) (int, error)
}
