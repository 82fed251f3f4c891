package memory

import (
	"context"

	"github.com/riskibarqy/sports-dw/internal/domain/dimension"
	"github.com/riskibarqy/sports-dw/internal/domain/fact"
	"github.com/riskibarqy/sports-dw/internal/platform/calendar"
)

// Store is the transactional view handed out by WithinTx.
type Store struct {
	state *warehouseState
	fail  map[string]error
}

func (s *Store) check(op string) error {
	return s.fail[op]
}

func keyPtr(id int64) *int64 {
	return &id
}

func keepFirst(stored, _ calendar.Date) calendar.Date {
	return stored
}

func (s *Store) UpsertTeam(_ context.Context, in dimension.Team) (*int64, error) {
	if err := s.check("UpsertTeam"); err != nil {
		return nil, err
	}
	if in.APITeamID == nil {
		return nil, nil
	}
	return keyPtr(s.state.teams.upsert(*in.APITeamID, in, dimension.Team.Merge)), nil
}

func (s *Store) UpsertLeague(_ context.Context, in dimension.League) (*int64, error) {
	if err := s.check("UpsertLeague"); err != nil {
		return nil, err
	}
	if in.APILeagueID == nil {
		return nil, nil
	}
	return keyPtr(s.state.leagues.upsert(*in.APILeagueID, in, dimension.League.Merge)), nil
}

func (s *Store) UpsertVenue(_ context.Context, in dimension.Venue) (*int64, error) {
	if err := s.check("UpsertVenue"); err != nil {
		return nil, err
	}
	if in.APIVenueID == nil {
		return nil, nil
	}
	return keyPtr(s.state.venues.upsert(*in.APIVenueID, in, dimension.Venue.Merge)), nil
}

func (s *Store) UpsertReferee(_ context.Context, in dimension.Referee) (*int64, error) {
	if err := s.check("UpsertReferee"); err != nil {
		return nil, err
	}
	if in.APIRefereeID == nil {
		return nil, nil
	}
	return keyPtr(s.state.referees.upsert(*in.APIRefereeID, in, dimension.Referee.Merge)), nil
}

func (s *Store) UpsertTime(_ context.Context, day *calendar.Date) (*int64, error) {
	if err := s.check("UpsertTime"); err != nil {
		return nil, err
	}
	if day == nil {
		return nil, nil
	}
	return keyPtr(s.state.times.upsert(*day, *day, keepFirst)), nil
}

func (s *Store) UpsertBasketballTeam(_ context.Context, in dimension.BasketballTeam) (*int64, error) {
	if err := s.check("UpsertBasketballTeam"); err != nil {
		return nil, err
	}
	if in.APITeamID == nil {
		return nil, nil
	}
	return keyPtr(s.state.basketballTeams.upsert(*in.APITeamID, in, dimension.BasketballTeam.Merge)), nil
}

func (s *Store) UpsertBasketballPlayer(_ context.Context, in dimension.BasketballPlayer) (*int64, error) {
	if err := s.check("UpsertBasketballPlayer"); err != nil {
		return nil, err
	}
	if in.APIPlayerID == nil {
		return nil, nil
	}
	return keyPtr(s.state.basketballPlayers.upsert(*in.APIPlayerID, in, dimension.BasketballPlayer.Merge)), nil
}

func (s *Store) UpsertBasketballLeague(_ context.Context, in dimension.BasketballLeague) (*int64, error) {
	if err := s.check("UpsertBasketballLeague"); err != nil {
		return nil, err
	}
	if in.APILeagueID == nil {
		return nil, nil
	}
	return keyPtr(s.state.basketballLeagues.upsert(*in.APILeagueID, in, dimension.BasketballLeague.Merge)), nil
}

func (s *Store) UpsertDate(_ context.Context, day *calendar.Date) (*int64, error) {
	if err := s.check("UpsertDate"); err != nil {
		return nil, err
	}
	if day == nil {
		return nil, nil
	}
	return keyPtr(s.state.dates.upsert(*day, *day, keepFirst)), nil
}

func (s *Store) UpsertDriver(_ context.Context, in dimension.Driver) (*int64, error) {
	if err := s.check("UpsertDriver"); err != nil {
		return nil, err
	}
	if in.APIDriverID == nil {
		return nil, nil
	}
	return keyPtr(s.state.drivers.upsert(*in.APIDriverID, in, dimension.Driver.Merge)), nil
}

func (s *Store) UpsertF1Team(_ context.Context, in dimension.F1Team) (*int64, error) {
	if err := s.check("UpsertF1Team"); err != nil {
		return nil, err
	}
	if in.APITeamID == nil {
		return nil, nil
	}
	return keyPtr(s.state.f1Teams.upsert(*in.APITeamID, in, dimension.F1Team.Merge)), nil
}

func (s *Store) UpsertCircuit(_ context.Context, in dimension.Circuit) (*int64, error) {
	if err := s.check("UpsertCircuit"); err != nil {
		return nil, err
	}
	if in.APICircuitID == nil {
		return nil, nil
	}
	return keyPtr(s.state.circuits.upsert(*in.APICircuitID, in, dimension.Circuit.Merge)), nil
}

func (s *Store) UpsertRace(_ context.Context, in dimension.Race) (*int64, error) {
	if err := s.check("UpsertRace"); err != nil {
		return nil, err
	}
	if in.APIRaceID == nil {
		return nil, nil
	}
	return keyPtr(s.state.races.upsert(*in.APIRaceID, in, dimension.Race.Merge)), nil
}

func (s *Store) UpsertMatch(_ context.Context, in fact.Match) (int64, error) {
	if err := s.check("UpsertMatch"); err != nil {
		return 0, err
	}
	return s.state.matches.upsert(in.APIMatchID, in, fact.Match.MergeOnConflict), nil
}

func (s *Store) InsertBasketballGame(_ context.Context, in fact.BasketballGame) error {
	if err := s.check("InsertBasketballGame"); err != nil {
		return err
	}
	s.state.basketballGames = append(s.state.basketballGames, in)
	return nil
}

func (s *Store) InsertRaceResult(_ context.Context, in fact.RaceResult) (int64, error) {
	if err := s.check("InsertRaceResult"); err != nil {
		return 0, err
	}
	s.state.raceResults = append(s.state.raceResults, in)
	return int64(len(s.state.raceResults)), nil
}
