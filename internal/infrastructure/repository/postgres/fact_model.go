package postgres

import "github.com/shopspring/decimal"

type factMatchInsertModel struct {
	APIMatchID     int64            `db:"api_match_id"`
	LeagueKey      *int64           `db:"league_key"`
	Season         *int64           `db:"season"`
	TimeKey        *int64           `db:"time_key"`
	VenueKey       *int64           `db:"venue_key"`
	RefereeKey     *int64           `db:"referee_key"`
	HomeTeamKey    *int64           `db:"home_team_key"`
	AwayTeamKey    *int64           `db:"away_team_key"`
	HomeGoals      *int64           `db:"home_goals"`
	AwayGoals      *int64           `db:"away_goals"`
	Attendance     *int64           `db:"attendance"`
	PossessionHome *decimal.Decimal `db:"possession_home"`
	PossessionAway *decimal.Decimal `db:"possession_away"`
}

type factBasketballGameInsertModel struct {
	APIGameID  *int64 `db:"api_game_id"`
	DateID     *int64 `db:"date_id"`
	TeamHomeID *int64 `db:"team_home_id"`
	TeamAwayID *int64 `db:"team_away_id"`
	PlayerID   *int64 `db:"player_id"`
	LeagueID   *int64 `db:"league_id"`
	Points     *int64 `db:"points"`
	Rebounds   *int64 `db:"rebounds"`
	Assists    *int64 `db:"assists"`
	Steals     *int64 `db:"steals"`
	Blocks     *int64 `db:"blocks"`
}

type factRaceResultInsertModel struct {
	DriverID  *int64           `db:"driver_id"`
	TeamID    *int64           `db:"team_id"`
	RaceID    *int64           `db:"race_id"`
	CircuitID *int64           `db:"circuit_id"`
	TimeKey   *int64           `db:"time_key"`
	Position  *int64           `db:"position"`
	Points    *decimal.Decimal `db:"points"`
	Laps      *int64           `db:"laps"`
	Time      *string          `db:"time"`
	Status    *string          `db:"status"`
}
