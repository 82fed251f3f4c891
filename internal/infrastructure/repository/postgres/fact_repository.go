package postgres

import (
	"context"
	"fmt"

	"github.com/riskibarqy/sports-dw/internal/domain/fact"
	qb "github.com/riskibarqy/sports-dw/internal/platform/querybuilder"
)

func (s *Store) UpsertMatch(ctx context.Context, in fact.Match) (int64, error) {
	builder, err := qb.InsertModel("fact_match", factMatchInsertModel{
		APIMatchID:     in.APIMatchID,
		LeagueKey:      in.LeagueKey,
		Season:         in.Season,
		TimeKey:        in.TimeKey,
		VenueKey:       in.VenueKey,
		RefereeKey:     in.RefereeKey,
		HomeTeamKey:    in.HomeTeamKey,
		AwayTeamKey:    in.AwayTeamKey,
		HomeGoals:      in.HomeGoals,
		AwayGoals:      in.AwayGoals,
		Attendance:     in.Attendance,
		PossessionHome: in.PossessionHome,
		PossessionAway: in.PossessionAway,
	})
	if err != nil {
		return 0, fmt.Errorf("build upsert fact_match query: %w", err)
	}

	query, args, err := builder.
		OnConflict(qb.OnConflict("api_match_id").
			Overwrite("home_goals", "away_goals").
			Coalesce("attendance", "possession_home", "possession_away")).
		Returning("match_key").
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build upsert fact_match query: %w", err)
	}

	var key int64
	if err := s.q.QueryRowxContext(ctx, query, args...).Scan(&key); err != nil {
		return 0, fmt.Errorf("upsert fact_match api_match_id=%d: %w", in.APIMatchID, err)
	}
	return key, nil
}

func (s *Store) InsertBasketballGame(ctx context.Context, in fact.BasketballGame) error {
	builder, err := qb.InsertModel("fact_game_basketball", factBasketballGameInsertModel{
		APIGameID:  in.APIGameID,
		DateID:     in.DateID,
		TeamHomeID: in.TeamHomeID,
		TeamAwayID: in.TeamAwayID,
		PlayerID:   in.PlayerID,
		LeagueID:   in.LeagueID,
		Points:     in.Points,
		Rebounds:   in.Rebounds,
		Assists:    in.Assists,
		Steals:     in.Steals,
		Blocks:     in.Blocks,
	})
	if err != nil {
		return fmt.Errorf("build insert fact_game_basketball query: %w", err)
	}

	query, args, err := builder.OnConflict(qb.OnConflict().DoNothing()).ToSQL()
	if err != nil {
		return fmt.Errorf("build insert fact_game_basketball query: %w", err)
	}
	if _, err := s.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert fact_game_basketball: %w", err)
	}
	return nil
}

func (s *Store) InsertRaceResult(ctx context.Context, in fact.RaceResult) (int64, error) {
	builder, err := qb.InsertModel("fact_race_results", factRaceResultInsertModel{
		DriverID:  in.DriverID,
		TeamID:    in.TeamID,
		RaceID:    in.RaceID,
		CircuitID: in.CircuitID,
		TimeKey:   in.TimeKey,
		Position:  in.Position,
		Points:    in.Points,
		Laps:      in.Laps,
		Time:      in.Time,
		Status:    in.Status,
	})
	if err != nil {
		return 0, fmt.Errorf("build insert fact_race_results query: %w", err)
	}

	query, args, err := builder.Returning("race_result_id").ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build insert fact_race_results query: %w", err)
	}

	var key int64
	if err := s.q.QueryRowxContext(ctx, query, args...).Scan(&key); err != nil {
		return 0, fmt.Errorf("insert fact_race_results: %w", err)
	}
	return key, nil
}
