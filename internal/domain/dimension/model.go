package dimension

import (
	"github.com/shopspring/decimal"

	"github.com/riskibarqy/sports-dw/internal/platform/calendar"
)

// Coalesce returns incoming unless it is nil, in which case stored wins.
func Coalesce[T any](stored, incoming *T) *T {
	if incoming != nil {
		return incoming
	}
	return stored
}

// Team is a soccer club.
type Team struct {
	APITeamID   *int64
	Name        *string
	Country     *string
	Founded     *int64
	StadiumName *string
	City        *string
	ShortCode   *string
}

func (t Team) Merge(in Team) Team {
	return Team{
		APITeamID:   Coalesce(t.APITeamID, in.APITeamID),
		Name:        Coalesce(t.Name, in.Name),
		Country:     Coalesce(t.Country, in.Country),
		Founded:     Coalesce(t.Founded, in.Founded),
		StadiumName: Coalesce(t.StadiumName, in.StadiumName),
		City:        Coalesce(t.City, in.City),
		ShortCode:   Coalesce(t.ShortCode, in.ShortCode),
	}
}

type League struct {
	APILeagueID *int64
	Name        *string
	Country     *string
	Season      *int64
}

func (l League) Merge(in League) League {
	return League{
		APILeagueID: Coalesce(l.APILeagueID, in.APILeagueID),
		Name:        Coalesce(l.Name, in.Name),
		Country:     Coalesce(l.Country, in.Country),
		Season:      Coalesce(l.Season, in.Season),
	}
}

type Venue struct {
	APIVenueID *int64
	Name       *string
	City       *string
	Capacity   *int64
}

func (v Venue) Merge(in Venue) Venue {
	return Venue{
		APIVenueID: Coalesce(v.APIVenueID, in.APIVenueID),
		Name:       Coalesce(v.Name, in.Name),
		City:       Coalesce(v.City, in.City),
		Capacity:   Coalesce(v.Capacity, in.Capacity),
	}
}

type Referee struct {
	APIRefereeID *int64
	Name         *string
	Nationality  *string
}

func (r Referee) Merge(in Referee) Referee {
	return Referee{
		APIRefereeID: Coalesce(r.APIRefereeID, in.APIRefereeID),
		Name:         Coalesce(r.Name, in.Name),
		Nationality:  Coalesce(r.Nationality, in.Nationality),
	}
}

type BasketballTeam struct {
	APITeamID *int64
	Name      *string
	City      *string
}

func (t BasketballTeam) Merge(in BasketballTeam) BasketballTeam {
	return BasketballTeam{
		APITeamID: Coalesce(t.APITeamID, in.APITeamID),
		Name:      Coalesce(t.Name, in.Name),
		City:      Coalesce(t.City, in.City),
	}
}

type BasketballPlayer struct {
	APIPlayerID *int64
	FullName    *string
	Position    *string
	Nationality *string
	Birthdate   *calendar.Date
}

func (p BasketballPlayer) Merge(in BasketballPlayer) BasketballPlayer {
	return BasketballPlayer{
		APIPlayerID: Coalesce(p.APIPlayerID, in.APIPlayerID),
		FullName:    Coalesce(p.FullName, in.FullName),
		Position:    Coalesce(p.Position, in.Position),
		Nationality: Coalesce(p.Nationality, in.Nationality),
		Birthdate:   Coalesce(p.Birthdate, in.Birthdate),
	}
}

type BasketballLeague struct {
	APILeagueID *int64
	Name        *string
	Country     *string
}

func (l BasketballLeague) Merge(in BasketballLeague) BasketballLeague {
	return BasketballLeague{
		APILeagueID: Coalesce(l.APILeagueID, in.APILeagueID),
		Name:        Coalesce(l.Name, in.Name),
		Country:     Coalesce(l.Country, in.Country),
	}
}

// Driver is a Formula 1 driver. F1 natural keys are text because feeds
// mix numeric ids with slugs.
type Driver struct {
	APIDriverID *string
	Name        *string
	Birthdate   *calendar.Date
	Nationality *string
	Number      *int64
}

func (d Driver) Merge(in Driver) Driver {
	return Driver{
		APIDriverID: Coalesce(d.APIDriverID, in.APIDriverID),
		Name:        Coalesce(d.Name, in.Name),
		Birthdate:   Coalesce(d.Birthdate, in.Birthdate),
		Nationality: Coalesce(d.Nationality, in.Nationality),
		Number:      Coalesce(d.Number, in.Number),
	}
}

type F1Team struct {
	APITeamID *string
	Name      *string
	Base      *string
	Principal *string
}

func (t F1Team) Merge(in F1Team) F1Team {
	return F1Team{
		APITeamID: Coalesce(t.APITeamID, in.APITeamID),
		Name:      Coalesce(t.Name, in.Name),
		Base:      Coalesce(t.Base, in.Base),
		Principal: Coalesce(t.Principal, in.Principal),
	}
}

type Circuit struct {
	APICircuitID *string
	Name         *string
	Location     *string
	Country      *string
	LengthKM     *decimal.Decimal
}

func (c Circuit) Merge(in Circuit) Circuit {
	return Circuit{
		APICircuitID: Coalesce(c.APICircuitID, in.APICircuitID),
		Name:         Coalesce(c.Name, in.Name),
		Location:     Coalesce(c.Location, in.Location),
		Country:      Coalesce(c.Country, in.Country),
		LengthKM:     Coalesce(c.LengthKM, in.LengthKM),
	}
}

type Race struct {
	APIRaceID *string
	Season    *int64
	Round     *int64
	Name      *string
	Date      *calendar.Date
}

func (r Race) Merge(in Race) Race {
	return Race{
		APIRaceID: Coalesce(r.APIRaceID, in.APIRaceID),
		Season:    Coalesce(r.Season, in.Season),
		Round:     Coalesce(r.Round, in.Round),
		Name:      Coalesce(r.Name, in.Name),
		Date:      Coalesce(r.Date, in.Date),
	}
}
