package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/sports-dw/internal/domain/staging"
	"github.com/riskibarqy/sports-dw/internal/domain/warehouse"
	"github.com/riskibarqy/sports-dw/internal/infrastructure/repository/memory"
	stagingmock "github.com/riskibarqy/sports-dw/internal/mocks/domain/staging"
	"github.com/riskibarqy/sports-dw/internal/platform/document"
	"github.com/riskibarqy/sports-dw/internal/platform/id"
	"github.com/riskibarqy/sports-dw/internal/platform/logging"
)

type panicMapper struct {
	sport Sport
	inner DocumentMapper
}

func (m panicMapper) Sport() Sport { return m.sport }

func (m panicMapper) Load(ctx context.Context, store warehouse.Store, doc document.Value) error {
	if err := m.inner.Load(ctx, store, doc); err != nil {
		return err
	}
	if _, ok := doc.Lookup("boom"); ok {
		panic("mapper exploded")
	}
	return nil
}

func newTestETLService(source *memory.StagingRepository, repo *memory.WarehouseRepository) *ETLService {
	service := NewETLService(source, repo, repo, id.Static("run-1"), logging.NewNop())
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return fixed }
	return service
}

func TestSelectCollections(t *testing.T) {
	tests := []struct {
		name  string
		sport Sport
		names []string
		want  []string
	}{
		{
			name:  "soccer keeps fixtures and matches",
			sport: SportSoccer,
			names: []string{"soccer_fixtures", "soccer_leagues", "soccer_matches", "basketball_games"},
			want:  []string{"soccer_fixtures", "soccer_matches"},
		},
		{
			name:  "soccer falls back to bare collection",
			sport: SportSoccer,
			names: []string{"soccer", "soccer_leagues"},
			want:  []string{"soccer"},
		},
		{
			name:  "soccer without candidates",
			sport: SportSoccer,
			names: []string{"soccer_leagues", "fixtures"},
			want:  []string{},
		},
		{
			name:  "basketball exact and games",
			sport: SportBasketball,
			names: []string{"basketball", "basketball_games", "basketball_teams"},
			want:  []string{"basketball", "basketball_games"},
		},
		{
			name:  "f1 accepts formula prefix",
			sport: SportFormula1,
			names: []string{"f1_races", "formula1_results", "f1_drivers", "f1_rankings_drivers"},
			want:  []string{"f1_races", "formula1_results"},
		},
		{
			name:  "f1 bare collection matches exactly",
			sport: SportFormula1,
			names: []string{"f1", "f1_drivers"},
			want:  []string{"f1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectCollections(tt.sport, tt.names))
		})
	}
}

func TestParseSports(t *testing.T) {
	got, err := ParseSports([]string{"football", " F1 ", "", "soccer", "basketball"})
	require.NoError(t, err)
	assert.Equal(t, []Sport{SportSoccer, SportFormula1, SportBasketball}, got)

	_, err = ParseSports([]string{"cricket"})
	require.ErrorIs(t, err, ErrUnknownSport)
}

func TestETLService_Run(t *testing.T) {
	source := memory.NewStagingRepository(map[string][]document.Value{
		"soccer_fixtures": {
			mustParse(t, `{"fixture": {"id": 1, "date": "2023-08-12"}, "goals": {"home": 1, "away": 0}}`),
			mustParse(t, `{"league": {"id": 39}}`),
			mustParse(t, `{"fixture": {"id": 2, "date": "2023-08-13"}, "goals": {"home": 2, "away": 2}}`),
		},
		"soccer_leagues":   {mustParse(t, `{"league": {"id": 39}}`)},
		"basketball_games": {mustParse(t, gameDoc)},
		"f1_results": {
			mustParse(t, `{"raceId": "r1", "driverId": "d1", "position": 1}`),
		},
	})
	repo := memory.NewWarehouseRepository()
	service := newTestETLService(source, repo)

	result, err := service.Run(t.Context(), ETLInput{Sports: AllSports})
	require.NoError(t, err)

	assert.Equal(t, "run-1", result.RunID)
	require.Len(t, result.Sports, 3)
	assert.Equal(t, []CollectionResult{{Collection: "soccer_fixtures", Processed: 2, Skipped: 1}}, result.Sports[0].Collections)
	assert.Equal(t, []CollectionResult{{Collection: "basketball_games", Processed: 1}}, result.Sports[1].Collections)
	assert.Equal(t, []CollectionResult{{Collection: "f1_results", Processed: 1}}, result.Sports[2].Collections)

	snap := repo.Snapshot()
	assert.Len(t, snap.Matches, 2)
	assert.Len(t, snap.BasketballGames, 1)
	assert.Len(t, snap.RaceResults, 1)
}

func TestETLService_RunIsolatesFailures(t *testing.T) {
	source := memory.NewStagingRepository(map[string][]document.Value{
		"soccer_fixtures": {
			mustParse(t, `{"fixture": {"id": 1}, "teams": {"home": {"id": 10}}}`),
			mustParse(t, `{"fixture": {"id": 2}, "boom": true, "teams": {"home": {"id": 20}}}`),
			mustParse(t, `{"fixture": {"id": 3}, "teams": {"home": {"id": 30}}}`),
		},
	})
	repo := memory.NewWarehouseRepository()
	service := newTestETLService(source, repo)
	service.UseMapper(panicMapper{sport: SportSoccer, inner: SoccerMapper{}})

	result, err := service.Run(t.Context(), ETLInput{Sports: []Sport{SportSoccer}})
	require.NoError(t, err)

	require.Len(t, result.Sports, 1)
	assert.Equal(t, []CollectionResult{{Collection: "soccer_fixtures", Processed: 2, Failed: 1}}, result.Sports[0].Collections)

	snap := repo.Snapshot()
	require.Len(t, snap.Matches, 2)
	assert.Equal(t, int64(1), snap.Matches[0].APIMatchID)
	assert.Equal(t, int64(3), snap.Matches[1].APIMatchID)
	require.Len(t, snap.Teams, 2, "the panicking document's team upsert is rolled back")
}

func TestETLService_RunRollsBackFactFailure(t *testing.T) {
	source := memory.NewStagingRepository(map[string][]document.Value{
		"soccer_fixtures": {
			mustParse(t, `{"fixture": {"id": 1}, "league": {"id": 39, "name": "Premier League"}}`),
		},
	})
	repo := memory.NewWarehouseRepository()
	repo.FailOn("UpsertMatch", errors.New("constraint violated"))
	service := newTestETLService(source, repo)

	result, err := service.Run(t.Context(), ETLInput{Sports: []Sport{SportSoccer}})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Sports[0].Totals().Failed)

	snap := repo.Snapshot()
	assert.Empty(t, snap.Matches)
	assert.Empty(t, snap.Leagues, "dimension writes roll back with the fact")
}

func TestETLService_RunValidatesInput(t *testing.T) {
	service := newTestETLService(memory.NewStagingRepository(nil), memory.NewWarehouseRepository())

	_, err := service.Run(t.Context(), ETLInput{})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.Run(t.Context(), ETLInput{Sports: []Sport{"cricket"}})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestETLService_RunSourceUnavailable(t *testing.T) {
	source := stagingmock.NewSource(t)
	source.
		On("CollectionNames", mock.Anything).
		Return(nil, errors.New("connection refused")).
		Once()

	repo := memory.NewWarehouseRepository()
	service := NewETLService(source, repo, repo, id.Static("run-2"), logging.NewNop())

	_, err := service.Run(t.Context(), ETLInput{Sports: []Sport{SportSoccer}})
	require.ErrorIs(t, err, ErrDependencyUnavailable)
}

func TestETLService_RunCountsUndecodableDocuments(t *testing.T) {
	source := stagingmock.NewSource(t)
	source.
		On("CollectionNames", mock.Anything).
		Return([]string{"soccer_fixtures"}, nil).
		Once()
	source.
		On("Iterate", mock.Anything, "soccer_fixtures", mock.Anything).
		Return(func(_ context.Context, collection string, fn func(staging.Document) error) error {
			docs := []staging.Document{
				{Collection: collection, ID: "a", Body: mustParse(t, `{"fixture": {"id": 1}}`)},
				{Collection: collection, ID: "b", Err: errors.New("decode document in soccer_fixtures: corrupt")},
				{Collection: collection, ID: "c", Body: mustParse(t, `{"fixture": {"id": 2}}`)},
			}
			for _, doc := range docs {
				if err := fn(doc); err != nil {
					return err
				}
			}
			return nil
		}).
		Once()

	repo := memory.NewWarehouseRepository()
	service := NewETLService(source, repo, repo, id.Static("run-4"), logging.NewNop())

	result, err := service.Run(t.Context(), ETLInput{Sports: []Sport{SportSoccer}})
	require.NoError(t, err)
	assert.Equal(t, []CollectionResult{{Collection: "soccer_fixtures", Processed: 2, Failed: 1}}, result.Sports[0].Collections)
	assert.Len(t, repo.Snapshot().Matches, 2)
}

func TestETLService_RunStopsOnCancel(t *testing.T) {
	source := stagingmock.NewSource(t)
	source.
		On("CollectionNames", mock.Anything).
		Return([]string{"soccer_fixtures"}, nil).
		Once()
	source.
		On("Iterate", mock.Anything, "soccer_fixtures", mock.Anything).
		Return(context.Canceled).
		Once()

	repo := memory.NewWarehouseRepository()
	service := NewETLService(source, repo, repo, id.Static("run-3"), logging.NewNop())

	result, err := service.Run(t.Context(), ETLInput{Sports: []Sport{SportSoccer}})
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, result.Sports, 1)
	assert.Equal(t, "soccer_fixtures", result.Sports[0].Collections[0].Collection)
}
