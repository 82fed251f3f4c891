package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/sports-dw/internal/domain/dimension"
	"github.com/riskibarqy/sports-dw/internal/platform/calendar"
	qb "github.com/riskibarqy/sports-dw/internal/platform/querybuilder"
)

// Store writes dimension and fact rows through q, which is either the
// pool or an open transaction.
type Store struct {
	q sqlx.ExtContext
}

func NewStore(q sqlx.ExtContext) *Store {
	return &Store{q: q}
}

// upsertCoalesce inserts model and, on a natural-key conflict, fills every
// other column with COALESCE(EXCLUDED.col, table.col).
func (s *Store) upsertCoalesce(ctx context.Context, table, naturalKey, surrogateKey string, model any) (*int64, error) {
	builder, err := qb.InsertModel(table, model)
	if err != nil {
		return nil, fmt.Errorf("build upsert %s query: %w", table, err)
	}
	cols, err := qb.ModelColumns(model, naturalKey)
	if err != nil {
		return nil, fmt.Errorf("build upsert %s query: %w", table, err)
	}

	query, args, err := builder.
		OnConflict(qb.OnConflict(naturalKey).Coalesce(cols...)).
		Returning(surrogateKey).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build upsert %s query: %w", table, err)
	}

	var key int64
	if err := s.q.QueryRowxContext(ctx, query, args...).Scan(&key); err != nil {
		return nil, fmt.Errorf("upsert %s: %w", table, err)
	}
	return &key, nil
}

func (s *Store) UpsertTeam(ctx context.Context, in dimension.Team) (*int64, error) {
	if in.APITeamID == nil {
		return nil, nil
	}
	return s.upsertCoalesce(ctx, "dim_team", "api_team_id", "team_key", dimTeamInsertModel{
		APITeamID:   *in.APITeamID,
		Name:        in.Name,
		Country:     in.Country,
		Founded:     in.Founded,
		StadiumName: in.StadiumName,
		City:        in.City,
		ShortCode:   in.ShortCode,
	})
}

func (s *Store) UpsertLeague(ctx context.Context, in dimension.League) (*int64, error) {
	if in.APILeagueID == nil {
		return nil, nil
	}
	return s.upsertCoalesce(ctx, "dim_league", "api_league_id", "league_key", dimLeagueInsertModel{
		APILeagueID: *in.APILeagueID,
		Name:        in.Name,
		Country:     in.Country,
		Season:      in.Season,
	})
}

func (s *Store) UpsertVenue(ctx context.Context, in dimension.Venue) (*int64, error) {
	if in.APIVenueID == nil {
		return nil, nil
	}
	return s.upsertCoalesce(ctx, "dim_venue", "api_venue_id", "venue_key", dimVenueInsertModel{
		APIVenueID: *in.APIVenueID,
		Name:       in.Name,
		City:       in.City,
		Capacity:   in.Capacity,
	})
}

func (s *Store) UpsertReferee(ctx context.Context, in dimension.Referee) (*int64, error) {
	if in.APIRefereeID == nil {
		return nil, nil
	}
	return s.upsertCoalesce(ctx, "dim_referee", "api_referee_id", "referee_key", dimRefereeInsertModel{
		APIRefereeID: *in.APIRefereeID,
		Name:         in.Name,
		Nationality:  in.Nationality,
	})
}

// UpsertTime keeps one dim_time row per date. A conflict only rewrites
// year, which lets RETURNING yield the existing key.
func (s *Store) UpsertTime(ctx context.Context, day *calendar.Date) (*int64, error) {
	if day == nil {
		return nil, nil
	}
	builder, err := qb.InsertModel("dim_time", dimTimeInsertModel{
		DateDate:  day.Time(),
		Year:      day.Year,
		Month:     int(day.Month),
		Day:       day.Day,
		Weekday:   day.WeekdayName(),
		IsWeekend: day.IsWeekend(),
	})
	if err != nil {
		return nil, fmt.Errorf("build upsert dim_time query: %w", err)
	}
	query, args, err := builder.
		OnConflict(qb.OnConflict("date_date").Overwrite("year")).
		Returning("time_key").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build upsert dim_time query: %w", err)
	}

	var key int64
	if err := s.q.QueryRowxContext(ctx, query, args...).Scan(&key); err != nil {
		return nil, fmt.Errorf("upsert dim_time date=%s: %w", day, err)
	}
	return &key, nil
}

func (s *Store) UpsertBasketballTeam(ctx context.Context, in dimension.BasketballTeam) (*int64, error) {
	if in.APITeamID == nil {
		return nil, nil
	}
	return s.upsertCoalesce(ctx, "dim_team_basketball", "api_team_id", "id", dimBasketballTeamInsertModel{
		APITeamID: *in.APITeamID,
		Name:      in.Name,
		City:      in.City,
	})
}

func (s *Store) UpsertBasketballPlayer(ctx context.Context, in dimension.BasketballPlayer) (*int64, error) {
	if in.APIPlayerID == nil {
		return nil, nil
	}
	return s.upsertCoalesce(ctx, "dim_player_basketball", "api_player_id", "id", dimBasketballPlayerInsertModel{
		APIPlayerID: *in.APIPlayerID,
		FullName:    in.FullName,
		Position:    in.Position,
		Nationality: in.Nationality,
		Birthdate:   dateArg(in.Birthdate),
	})
}

func (s *Store) UpsertBasketballLeague(ctx context.Context, in dimension.BasketballLeague) (*int64, error) {
	if in.APILeagueID == nil {
		return nil, nil
	}
	return s.upsertCoalesce(ctx, "dim_league_basketball", "api_league_id", "id", dimBasketballLeagueInsertModel{
		APILeagueID: *in.APILeagueID,
		Name:        in.Name,
		Country:     in.Country,
	})
}

// UpsertDate inserts the date if new, otherwise reads the existing id.
func (s *Store) UpsertDate(ctx context.Context, day *calendar.Date) (*int64, error) {
	if day == nil {
		return nil, nil
	}
	builder, err := qb.InsertModel("dim_date", dimDateInsertModel{
		Date:      day.Time(),
		Year:      day.Year,
		Month:     int(day.Month),
		Day:       day.Day,
		DayOfWeek: day.WeekdayName(),
		IsWeekend: day.IsWeekend(),
	})
	if err != nil {
		return nil, fmt.Errorf("build insert dim_date query: %w", err)
	}
	query, args, err := builder.
		OnConflict(qb.OnConflict("date").DoNothing()).
		Returning("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build insert dim_date query: %w", err)
	}

	var key int64
	err = s.q.QueryRowxContext(ctx, query, args...).Scan(&key)
	if err == nil {
		return &key, nil
	}
	if !isNotFound(err) {
		return nil, fmt.Errorf("insert dim_date date=%s: %w", day, err)
	}

	query, args, err = qb.Select("id").
		From("dim_date").
		Where(qb.Eq("date", day.Time())).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select dim_date query: %w", err)
	}
	if err := s.q.QueryRowxContext(ctx, query, args...).Scan(&key); err != nil {
		return nil, fmt.Errorf("select dim_date date=%s: %w", day, err)
	}
	return &key, nil
}

func (s *Store) UpsertDriver(ctx context.Context, in dimension.Driver) (*int64, error) {
	if in.APIDriverID == nil {
		return nil, nil
	}
	return s.upsertCoalesce(ctx, "dim_driver", "api_driver_id", "driver_id", dimDriverInsertModel{
		APIDriverID: *in.APIDriverID,
		DriverName:  in.Name,
		Birthdate:   dateArg(in.Birthdate),
		Nationality: in.Nationality,
		Number:      in.Number,
	})
}

func (s *Store) UpsertF1Team(ctx context.Context, in dimension.F1Team) (*int64, error) {
	if in.APITeamID == nil {
		return nil, nil
	}
	return s.upsertCoalesce(ctx, "dim_team_f1", "api_team_id", "team_id", dimF1TeamInsertModel{
		APITeamID: *in.APITeamID,
		TeamName:  in.Name,
		Base:      in.Base,
		Principal: in.Principal,
	})
}

func (s *Store) UpsertCircuit(ctx context.Context, in dimension.Circuit) (*int64, error) {
	if in.APICircuitID == nil {
		return nil, nil
	}
	return s.upsertCoalesce(ctx, "dim_circuit", "api_circuit_id", "circuit_id", dimCircuitInsertModel{
		APICircuitID: *in.APICircuitID,
		CircuitName:  in.Name,
		Location:     in.Location,
		Country:      in.Country,
		LengthKM:     in.LengthKM,
	})
}

func (s *Store) UpsertRace(ctx context.Context, in dimension.Race) (*int64, error) {
	if in.APIRaceID == nil {
		return nil, nil
	}
	return s.upsertCoalesce(ctx, "dim_race", "api_race_id", "race_id", dimRaceInsertModel{
		APIRaceID: *in.APIRaceID,
		Season:    in.Season,
		Round:     in.Round,
		RaceName:  in.Name,
		Date:      dateArg(in.Date),
	})
}
