package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/sports-dw/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/sports-dw/internal/platform/calendar"
)

const gameDoc = `{
	"id": 5001,
	"date": "2023-10-24T23:30:00+00:00",
	"league": {"id": 12, "name": "NBA", "country": "USA"},
	"teams": {"home": {"id": 145, "name": "Denver Nuggets"}, "away": {"id": 147, "name": "Los Angeles Lakers"}},
	"players": [
		{"player": {"id": 265, "name": "Nikola Jokic"}},
		{"player": {"id": 266, "name": "Jamal Murray"}}
	],
	"score": 119,
	"rebounds": 13,
	"assists": 11
}`

func TestBasketballMapper_Extract(t *testing.T) {
	got := BasketballMapper{}.Extract(mustParse(t, gameDoc))

	assert.Equal(t, int64(5001), *got.GameID)
	assert.Equal(t, "USA", *got.League.Country)
	assert.Equal(t, calendar.Date{Year: 2023, Month: 10, Day: 24}, *got.Day)
	assert.Equal(t, int64(145), *got.Home.APITeamID)
	assert.Equal(t, int64(265), *got.Player.APIPlayerID)
	assert.Equal(t, "Nikola Jokic", *got.Player.FullName)
	assert.Equal(t, int64(119), *got.Points)
	assert.Equal(t, int64(13), *got.Rebounds)
	assert.Nil(t, got.Steals)
	assert.Nil(t, got.Blocks)
}

func TestBasketballMapper_ExtractFallbacks(t *testing.T) {
	got := BasketballMapper{}.Extract(mustParse(t, `{
		"game": {"id": 9},
		"fixture": {"date": "2024-01-06"},
		"players": [{"player": {"player_id": "77"}}],
		"points": 101
	}`))

	assert.Equal(t, int64(9), *got.GameID)
	assert.Equal(t, calendar.Date{Year: 2024, Month: 1, Day: 6}, *got.Day)
	assert.Equal(t, int64(77), *got.Player.APIPlayerID)
	assert.Equal(t, int64(101), *got.Points)
	assert.Nil(t, got.League.APILeagueID)
}

func TestBasketballMapper_Load(t *testing.T) {
	repo := memory.NewWarehouseRepository()
	doc := mustParse(t, gameDoc)

	require.NoError(t, loadOne(t, repo, BasketballMapper{}, doc))
	require.NoError(t, loadOne(t, repo, BasketballMapper{}, doc))

	snap := repo.Snapshot()
	require.Len(t, snap.BasketballGames, 2, "games are appended on every run")
	assert.Len(t, snap.BasketballTeams, 2)
	assert.Len(t, snap.BasketballPlayers, 1)
	assert.Len(t, snap.BasketballLeagues, 1)
	assert.Len(t, snap.Dates, 1)

	game := snap.BasketballGames[0]
	assert.Equal(t, int64(5001), *game.APIGameID)
	require.NotNil(t, game.PlayerID)
	require.NotNil(t, game.DateID)
	assert.Equal(t, *game.DateID, *snap.BasketballGames[1].DateID)
}
