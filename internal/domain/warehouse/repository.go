package warehouse

import (
	"context"

	"github.com/riskibarqy/sports-dw/internal/domain/dimension"
	"github.com/riskibarqy/sports-dw/internal/domain/fact"
	"github.com/riskibarqy/sports-dw/internal/platform/calendar"
)

// DimensionStore upserts dimension rows by natural key and returns the
// surrogate key. A nil natural key (or nil date) is a no-op that returns
// a nil key and no error. On conflict only non-nil attributes overwrite
// stored values.
type DimensionStore interface {
	UpsertTeam(ctx context.Context, in dimension.Team) (*int64, error)
	UpsertLeague(ctx context.Context, in dimension.League) (*int64, error)
	UpsertVenue(ctx context.Context, in dimension.Venue) (*int64, error)
	UpsertReferee(ctx context.Context, in dimension.Referee) (*int64, error)
	UpsertTime(ctx context.Context, day *calendar.Date) (*int64, error)

	UpsertBasketballTeam(ctx context.Context, in dimension.BasketballTeam) (*int64, error)
	UpsertBasketballPlayer(ctx context.Context, in dimension.BasketballPlayer) (*int64, error)
	UpsertBasketballLeague(ctx context.Context, in dimension.BasketballLeague) (*int64, error)
	UpsertDate(ctx context.Context, day *calendar.Date) (*int64, error)

	UpsertDriver(ctx context.Context, in dimension.Driver) (*int64, error)
	UpsertF1Team(ctx context.Context, in dimension.F1Team) (*int64, error)
	UpsertCircuit(ctx context.Context, in dimension.Circuit) (*int64, error)
	UpsertRace(ctx context.Context, in dimension.Race) (*int64, error)
}

// FactStore writes fact rows. Matches upsert on the fixture id; basketball
// games and race results are appended.
type FactStore interface {
	UpsertMatch(ctx context.Context, in fact.Match) (int64, error)
	InsertBasketballGame(ctx context.Context, in fact.BasketballGame) error
	InsertRaceResult(ctx context.Context, in fact.RaceResult) (int64, error)
}

type Store interface {
	DimensionStore
	FactStore
}

// UnitOfWork runs fn inside one transaction. It commits when fn returns
// nil and rolls back otherwise.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, store Store) error) error
}

// SchemaManager asserts the unique constraints the upserts rely on.
type SchemaManager interface {
	EnsureUniqueIndexes(ctx context.Context) error
}
