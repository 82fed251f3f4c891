package usecase

import (
	"context"

	"github.com/riskibarqy/sports-dw/internal/domain/dimension"
	"github.com/riskibarqy/sports-dw/internal/domain/fact"
	"github.com/riskibarqy/sports-dw/internal/domain/warehouse"
	"github.com/riskibarqy/sports-dw/internal/platform/calendar"
	"github.com/riskibarqy/sports-dw/internal/platform/document"
)

type BasketballGame struct {
	GameID   *int64
	League   dimension.BasketballLeague
	Day      *calendar.Date
	Home     dimension.BasketballTeam
	Away     dimension.BasketballTeam
	Player   dimension.BasketballPlayer
	Points   *int64
	Rebounds *int64
	Assists  *int64
	Steals   *int64
	Blocks   *int64
}

type BasketballMapper struct{}

func (BasketballMapper) Sport() Sport { return SportBasketball }

// Extract reads an api-basketball game. Only the first entry of players
// contributes a player reference.
func (BasketballMapper) Extract(doc document.Value) BasketballGame {
	out := BasketballGame{
		GameID: intField(document.FirstPresent(doc.Get("id"), doc.Get("game", "id"))),
		League: dimension.BasketballLeague{
			APILeagueID: intField(doc.Get("league", "id")),
			Name:        textField(doc.Get("league", "name")),
			Country:     textField(doc.Get("league", "country")),
		},
		Day: dateField(document.FirstPresent(doc.Get("date"), doc.Get("fixture", "date"))),
		Home: dimension.BasketballTeam{
			APITeamID: intField(doc.Get("teams", "home", "id")),
			Name:      textField(doc.Get("teams", "home", "name")),
		},
		Away: dimension.BasketballTeam{
			APITeamID: intField(doc.Get("teams", "away", "id")),
			Name:      textField(doc.Get("teams", "away", "name")),
		},
		Points:   intField(document.FirstPresent(doc.Get("points"), doc.Get("score"))),
		Rebounds: intField(doc.Get("rebounds")),
		Assists:  intField(doc.Get("assists")),
		Steals:   intField(doc.Get("steals")),
		Blocks:   intField(doc.Get("blocks")),
	}

	if players, ok := doc.Get("players").Items(); ok && len(players) > 0 {
		first := players[0]
		out.Player = dimension.BasketballPlayer{
			APIPlayerID: intField(document.FirstPresent(first.Get("player", "id"), first.Get("player", "player_id"))),
			FullName:    textField(first.Get("player", "name")),
		}
	}
	return out
}

func (m BasketballMapper) Load(ctx context.Context, store warehouse.Store, doc document.Value) error {
	in := m.Extract(doc)

	leagueID, err := store.UpsertBasketballLeague(ctx, in.League)
	if err != nil {
		return err
	}
	dateID, err := store.UpsertDate(ctx, in.Day)
	if err != nil {
		return err
	}
	homeID, err := store.UpsertBasketballTeam(ctx, in.Home)
	if err != nil {
		return err
	}
	awayID, err := store.UpsertBasketballTeam(ctx, in.Away)
	if err != nil {
		return err
	}
	playerID, err := store.UpsertBasketballPlayer(ctx, in.Player)
	if err != nil {
		return err
	}

	return store.InsertBasketballGame(ctx, fact.BasketballGame{
		APIGameID:  in.GameID,
		DateID:     dateID,
		TeamHomeID: homeID,
		TeamAwayID: awayID,
		PlayerID:   playerID,
		LeagueID:   leagueID,
		Points:     in.Points,
		Rebounds:   in.Rebounds,
		Assists:    in.Assists,
		Steals:     in.Steals,
		Blocks:     in.Blocks,
	})
}
