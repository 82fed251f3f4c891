package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/sports-dw/internal/domain/warehouse"
)

// uniqueIndexes back every ON CONFLICT target used by the upserts.
var uniqueIndexes = []string{
	"CREATE UNIQUE INDEX IF NOT EXISTS ux_dim_team_api_team_id ON dim_team (api_team_id)",
	"CREATE UNIQUE INDEX IF NOT EXISTS ux_dim_driver_api_driver_id ON dim_driver (api_driver_id)",
	"CREATE UNIQUE INDEX IF NOT EXISTS ux_dim_team_f1_api_team_id ON dim_team_f1 (api_team_id)",
	"CREATE UNIQUE INDEX IF NOT EXISTS ux_dim_race_api_race_id ON dim_race (api_race_id)",
	"CREATE UNIQUE INDEX IF NOT EXISTS ux_dim_circuit_api_circuit_id ON dim_circuit (api_circuit_id)",
	"CREATE UNIQUE INDEX IF NOT EXISTS ux_dim_league_api_league_id ON dim_league (api_league_id)",
	"CREATE UNIQUE INDEX IF NOT EXISTS ux_dim_team_basket_api_team_id ON dim_team_basketball (api_team_id)",
	"CREATE UNIQUE INDEX IF NOT EXISTS ux_dim_player_basket_api_player_id ON dim_player_basketball (api_player_id)",
	"CREATE UNIQUE INDEX IF NOT EXISTS ux_dim_league_basket_api_league_id ON dim_league_basketball (api_league_id)",
	"CREATE UNIQUE INDEX IF NOT EXISTS ux_dim_venue_api_venue_id ON dim_venue (api_venue_id)",
	"CREATE UNIQUE INDEX IF NOT EXISTS ux_dim_referee_api_referee_id ON dim_referee (api_referee_id)",
	"CREATE UNIQUE INDEX IF NOT EXISTS ux_dim_time_date_date ON dim_time (date_date)",
	"CREATE UNIQUE INDEX IF NOT EXISTS ux_dim_date_date ON dim_date (date)",
	"CREATE UNIQUE INDEX IF NOT EXISTS ux_fact_match_api_match_id ON fact_match (api_match_id)",
}

type WarehouseRepository struct {
	db *sqlx.DB
}

func NewWarehouseRepository(db *sqlx.DB) *WarehouseRepository {
	return &WarehouseRepository{db: db}
}

func (r *WarehouseRepository) WithinTx(ctx context.Context, fn func(ctx context.Context, store warehouse.Store) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin warehouse tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(ctx, NewStore(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit warehouse tx: %w", err)
	}
	return nil
}

func (r *WarehouseRepository) EnsureUniqueIndexes(ctx context.Context) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx ensure unique indexes: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, stmt := range uniqueIndexes {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			if isUndefinedTable(err) {
				return fmt.Errorf("ensure unique indexes: warehouse tables missing, run migrations first: %w", err)
			}
			return fmt.Errorf("ensure unique indexes %q: %w", stmt, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit ensure unique indexes tx: %w", err)
	}
	return nil
}
