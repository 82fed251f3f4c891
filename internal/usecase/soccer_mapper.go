package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/riskibarqy/sports-dw/internal/domain/dimension"
	"github.com/riskibarqy/sports-dw/internal/domain/fact"
	"github.com/riskibarqy/sports-dw/internal/domain/warehouse"
	"github.com/riskibarqy/sports-dw/internal/platform/calendar"
	"github.com/riskibarqy/sports-dw/internal/platform/document"
)

var possessionTypes = map[string]struct{}{
	"Ball Possession": {},
	"Possession":      {},
}

// SoccerFixture is everything a fixture document contributes to the
// warehouse, before surrogate keys are resolved.
type SoccerFixture struct {
	MatchID        *int64
	Season         *int64
	League         dimension.League
	Day            *calendar.Date
	Venue          dimension.Venue
	Referee        dimension.Referee
	HasReferee     bool
	Home           dimension.Team
	Away           dimension.Team
	HomeGoals      *int64
	AwayGoals      *int64
	Attendance     *int64
	PossessionHome *decimal.Decimal
	PossessionAway *decimal.Decimal
}

type SoccerMapper struct{}

func (SoccerMapper) Sport() Sport { return SportSoccer }

// Extract reads an API-Football style fixture. It never fails: fields that
// are missing or malformed stay nil.
func (SoccerMapper) Extract(doc document.Value) SoccerFixture {
	out := SoccerFixture{
		MatchID: intField(document.FirstPresent(doc.Get("fixture", "id"), doc.Get("id"))),
		Season:  intField(document.FirstPresent(doc.Get("league", "season"), doc.Get("season"))),
		Day:     dateField(document.FirstPresent(doc.Get("fixture", "date"), doc.Get("date"))),
	}

	out.League = dimension.League{
		APILeagueID: intField(doc.Get("league", "id")),
		Name:        textField(doc.Get("league", "name")),
		Country:     textField(doc.Get("league", "country")),
		Season:      out.Season,
	}

	out.Venue = dimension.Venue{
		APIVenueID: intField(doc.Get("fixture", "venue", "id")),
		Name:       textField(doc.Get("fixture", "venue", "name")),
		City:       textField(doc.Get("fixture", "venue", "city")),
		Capacity:   intField(doc.Get("fixture", "venue", "capacity")),
	}

	referee := doc.Get("fixture", "referee")
	switch referee.Kind() {
	case document.KindMap:
		out.Referee = dimension.Referee{
			APIRefereeID: intField(referee.Get("id")),
			Name:         stringOnly(referee.Get("name")),
		}
	case document.KindString:
		out.Referee = dimension.Referee{Name: stringOnly(referee)}
	}
	out.HasReferee = out.Referee.APIRefereeID != nil || out.Referee.Name != nil

	out.Home = dimension.Team{
		APITeamID: intField(doc.Get("teams", "home", "id")),
		Name:      textField(doc.Get("teams", "home", "name")),
	}
	out.Away = dimension.Team{
		APITeamID: intField(doc.Get("teams", "away", "id")),
		Name:      textField(doc.Get("teams", "away", "name")),
	}

	out.HomeGoals = intField(doc.Get("goals", "home"))
	out.AwayGoals = intField(doc.Get("goals", "away"))
	out.Attendance = intField(doc.Get("fixture", "attendance"))
	out.PossessionHome, out.PossessionAway = extractPossession(doc)

	return out
}

func stringOnly(v document.Value) *string {
	if v.Kind() != document.KindString {
		return nil
	}
	return textField(v)
}

// extractPossession scans statistics (or stats) for a possession entry.
// Values may be plain or wrapped in {"value": ...} and may carry a percent
// sign. A later matching entry wins; an entry with any unparsable side is
// ignored, leaving both sides as they were.
func extractPossession(doc document.Value) (*decimal.Decimal, *decimal.Decimal) {
	stats := document.FirstPresent(doc.Get("statistics"), doc.Get("stats"))
	items, ok := stats.Items()
	if !ok {
		return nil, nil
	}

	var home, away *decimal.Decimal
	for _, item := range items {
		kind, _ := item.Get("type").Text()
		if _, match := possessionTypes[kind]; !match {
			continue
		}
		h, hOK := possessionSide(item, "home")
		a, aOK := possessionSide(item, "away")
		if !hOK || !aOK {
			continue
		}
		home, away = h, a
	}
	return home, away
}

func possessionSide(item document.Value, side string) (*decimal.Decimal, bool) {
	raw := document.FirstPresent(item.Get(side, "value"), item.Get(side))
	if raw.IsNull() {
		return nil, true
	}
	return measureField(raw, "%")
}

func (m SoccerMapper) Load(ctx context.Context, store warehouse.Store, doc document.Value) error {
	in := m.Extract(doc)
	if in.MatchID == nil {
		return fmt.Errorf("%w: soccer fixture has no fixture.id or id", ErrMissingNaturalKey)
	}

	leagueKey, err := store.UpsertLeague(ctx, in.League)
	if err != nil {
		return err
	}
	timeKey, err := store.UpsertTime(ctx, in.Day)
	if err != nil {
		return err
	}

	var venueKey *int64
	if in.Venue.APIVenueID != nil {
		if venueKey, err = store.UpsertVenue(ctx, in.Venue); err != nil {
			return err
		}
	}

	var refereeKey *int64
	if in.HasReferee {
		if refereeKey, err = store.UpsertReferee(ctx, in.Referee); err != nil {
			return err
		}
	}

	homeKey, err := store.UpsertTeam(ctx, in.Home)
	if err != nil {
		return err
	}
	awayKey, err := store.UpsertTeam(ctx, in.Away)
	if err != nil {
		return err
	}

	_, err = store.UpsertMatch(ctx, fact.Match{
		APIMatchID:     *in.MatchID,
		LeagueKey:      leagueKey,
		Season:         in.Season,
		TimeKey:        timeKey,
		VenueKey:       venueKey,
		RefereeKey:     refereeKey,
		HomeTeamKey:    homeKey,
		AwayTeamKey:    awayKey,
		HomeGoals:      in.HomeGoals,
		AwayGoals:      in.AwayGoals,
		Attendance:     in.Attendance,
		PossessionHome: in.PossessionHome,
		PossessionAway: in.PossessionAway,
	})
	return err
}
