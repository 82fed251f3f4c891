package postgres

import (
	"time"

	"github.com/shopspring/decimal"
)

type dimTeamInsertModel struct {
	APITeamID   int64   `db:"api_team_id"`
	Name        *string `db:"name"`
	Country     *string `db:"country"`
	Founded     *int64  `db:"founded"`
	StadiumName *string `db:"stadium_name"`
	City        *string `db:"city"`
	ShortCode   *string `db:"short_code"`
}

type dimLeagueInsertModel struct {
	APILeagueID int64   `db:"api_league_id"`
	Name        *string `db:"name"`
	Country     *string `db:"country"`
	Season      *int64  `db:"season"`
}

type dimVenueInsertModel struct {
	APIVenueID int64   `db:"api_venue_id"`
	Name       *string `db:"name"`
	City       *string `db:"city"`
	Capacity   *int64  `db:"capacity"`
}

type dimRefereeInsertModel struct {
	APIRefereeID int64   `db:"api_referee_id"`
	Name         *string `db:"name"`
	Nationality  *string `db:"nationality"`
}

type dimTimeInsertModel struct {
	DateDate  time.Time `db:"date_date"`
	Year      int       `db:"year"`
	Month     int       `db:"month"`
	Day       int       `db:"day"`
	Weekday   string    `db:"weekday"`
	IsWeekend bool      `db:"is_weekend"`
	Hour      *int      `db:"hour"`
}

type dimBasketballTeamInsertModel struct {
	APITeamID int64   `db:"api_team_id"`
	Name      *string `db:"name"`
	City      *string `db:"city"`
}

type dimBasketballPlayerInsertModel struct {
	APIPlayerID int64      `db:"api_player_id"`
	FullName    *string    `db:"full_name"`
	Position    *string    `db:"position"`
	Nationality *string    `db:"nationality"`
	Birthdate   *time.Time `db:"birthdate"`
}

type dimBasketballLeagueInsertModel struct {
	APILeagueID int64   `db:"api_league_id"`
	Name        *string `db:"name"`
	Country     *string `db:"country"`
}

type dimDateInsertModel struct {
	Date      time.Time `db:"date"`
	Year      int       `db:"year"`
	Month     int       `db:"month"`
	Day       int       `db:"day"`
	DayOfWeek string    `db:"day_of_week"`
	IsWeekend bool      `db:"is_weekend"`
}

type dimDriverInsertModel struct {
	APIDriverID string     `db:"api_driver_id"`
	DriverName  *string    `db:"driver_name"`
	Birthdate   *time.Time `db:"birthdate"`
	Nationality *string    `db:"nationality"`
	Number      *int64     `db:"number"`
}

type dimF1TeamInsertModel struct {
	APITeamID string  `db:"api_team_id"`
	TeamName  *string `db:"team_name"`
	Base      *string `db:"base"`
	Principal *string `db:"principal"`
}

type dimCircuitInsertModel struct {
	APICircuitID string           `db:"api_circuit_id"`
	CircuitName  *string          `db:"circuit_name"`
	Location     *string          `db:"location"`
	Country      *string          `db:"country"`
	LengthKM     *decimal.Decimal `db:"length_km"`
}

type dimRaceInsertModel struct {
	APIRaceID string     `db:"api_race_id"`
	Season    *int64     `db:"season"`
	Round     *int64     `db:"round"`
	RaceName  *string    `db:"race_name"`
	Date      *time.Time `db:"date"`
}
