package usecase

import (
	"context"

	"github.com/riskibarqy/sports-dw/internal/domain/warehouse"
	"github.com/riskibarqy/sports-dw/internal/platform/document"
)

// DocumentMapper turns one staging document into warehouse rows. Load is
// called inside the document's transaction; any error rolls it back.
type DocumentMapper interface {
	Sport() Sport
	Load(ctx context.Context, store warehouse.Store, doc document.Value) error
}

func defaultMappers() map[Sport]DocumentMapper {
	return map[Sport]DocumentMapper{
		SportSoccer:     SoccerMapper{},
		SportBasketball: BasketballMapper{},
		SportFormula1:   Formula1Mapper{},
	}
}
