package fact

import "github.com/shopspring/decimal"

// Match is one soccer fixture, keyed by the upstream fixture id. Nil
// pointers are unknown values.
type Match struct {
	APIMatchID     int64
	LeagueKey      *int64
	Season         *int64
	TimeKey        *int64
	VenueKey       *int64
	RefereeKey     *int64
	HomeTeamKey    *int64
	AwayTeamKey    *int64
	HomeGoals      *int64
	AwayGoals      *int64
	Attendance     *int64
	PossessionHome *decimal.Decimal
	PossessionAway *decimal.Decimal
}

// MergeOnConflict applies a re-delivered fixture to the stored row: goals
// are overwritten, attendance and possession only fill gaps. Dimension
// references keep their first-seen values.
func (m Match) MergeOnConflict(in Match) Match {
	out := m
	out.HomeGoals = in.HomeGoals
	out.AwayGoals = in.AwayGoals
	if in.Attendance != nil {
		out.Attendance = in.Attendance
	}
	if in.PossessionHome != nil {
		out.PossessionHome = in.PossessionHome
	}
	if in.PossessionAway != nil {
		out.PossessionAway = in.PossessionAway
	}
	return out
}

// BasketballGame is one game row, optionally attributed to a single
// player. APIGameID is recorded for traceability but is not unique.
type BasketballGame struct {
	APIGameID  *int64
	DateID     *int64
	TeamHomeID *int64
	TeamAwayID *int64
	PlayerID   *int64
	LeagueID   *int64
	Points     *int64
	Rebounds   *int64
	Assists    *int64
	Steals     *int64
	Blocks     *int64
}

// RaceResult is one driver's classification in a race.
type RaceResult struct {
	DriverID  *int64
	TeamID    *int64
	RaceID    *int64
	CircuitID *int64
	TimeKey   *int64
	Position  *int64
	Points    *decimal.Decimal
	Laps      *int64
	Time      *string
	Status    *string
}
