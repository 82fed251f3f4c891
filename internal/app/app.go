// Package app connects the configured stores and builds the ETL and fetch
// services for the command line.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/riskibarqy/sports-dw/external/apisports"
	"github.com/riskibarqy/sports-dw/internal/config"
	"github.com/riskibarqy/sports-dw/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/sports-dw/internal/infrastructure/staging/mongo"
	idgen "github.com/riskibarqy/sports-dw/internal/platform/id"
	"github.com/riskibarqy/sports-dw/internal/platform/logging"
	"github.com/riskibarqy/sports-dw/internal/platform/resilience"
	"github.com/riskibarqy/sports-dw/internal/usecase"
)

const warehousePingTimeout = 10 * time.Second

// Runtime opens connections on first use and closes whatever was opened.
type Runtime struct {
	cfg    config.Config
	logger *logging.Logger

	warehouseDB *sqlx.DB
	stagingDB   *driver.Client
}

func NewRuntime(cfg config.Config, logger *logging.Logger) *Runtime {
	if logger == nil {
		logger = logging.Default()
	}
	return &Runtime{cfg: cfg, logger: logger}
}

// OpenWarehouse opens the Postgres warehouse with query tracing and pings it.
func OpenWarehouse(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dbURL := NormalizedDBURL(cfg)

	db, err := otelsqlx.Open("postgres", dbURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open warehouse db: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, warehousePingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping warehouse db: %w", err)
	}

	return db, nil
}

func (r *Runtime) Warehouse(ctx context.Context) (*postgres.WarehouseRepository, error) {
	if r.warehouseDB == nil {
		db, err := OpenWarehouse(ctx, r.cfg)
		if err != nil {
			return nil, err
		}
		r.warehouseDB = db
		r.logger.InfoContext(ctx, "warehouse connected", "db_name", dbNameFromURL(r.cfg.DBURL))
	}
	return postgres.NewWarehouseRepository(r.warehouseDB), nil
}

func (r *Runtime) Staging(ctx context.Context) (*mongo.StagingRepository, error) {
	if r.stagingDB == nil {
		client, err := mongo.Connect(ctx, mongo.ConnectConfig{
			URI:      r.cfg.MongoURI,
			Database: r.cfg.MongoDB,
			Timeout:  r.cfg.MongoTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("connect staging store: %w", err)
		}
		r.stagingDB = client
		r.logger.InfoContext(ctx, "staging store connected", "database", r.cfg.MongoDB)
	}
	return mongo.NewStagingRepository(r.stagingDB.Database(r.cfg.MongoDB)), nil
}

func (r *Runtime) ETLService(ctx context.Context) (*usecase.ETLService, error) {
	source, err := r.Staging(ctx)
	if err != nil {
		return nil, err
	}
	warehouse, err := r.Warehouse(ctx)
	if err != nil {
		return nil, err
	}

	return usecase.NewETLService(source, warehouse, warehouse, idgen.NewUUIDGenerator(), r.logger), nil
}

func (r *Runtime) FetchService(ctx context.Context) (*usecase.FetchService, error) {
	writer, err := r.Staging(ctx)
	if err != nil {
		return nil, err
	}

	client := apisports.NewClient(apisports.ClientConfig{
		HTTPClient: &http.Client{
			Timeout:   r.cfg.APISportsTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		Key:        r.cfg.APISportsKey,
		Timeout:    r.cfg.APISportsTimeout,
		MaxRetries: r.cfg.APISportsMaxRetries,
		Logger:     r.logger,
		CircuitBreaker: resilience.BreakerConfig{
			Enabled:          r.cfg.APISportsCircuitEnabled,
			FailureThreshold: r.cfg.APISportsCircuitFailureCount,
			OpenTimeout:      r.cfg.APISportsCircuitOpenTimeout,
			HalfOpenMaxReq:   r.cfg.APISportsCircuitHalfOpenMaxRq,
		},
	})

	return usecase.NewFetchService(client, writer, FetchPlan(r.cfg), idgen.NewUUIDGenerator(), r.logger), nil
}

// FetchPlan builds the endpoint list from the configured league, team and
// season ids.
func FetchPlan(cfg config.Config) []usecase.FetchEndpoint {
	return usecase.DefaultFetchPlan(usecase.FetchPlanConfig{
		SoccerLeagueID:     cfg.SoccerLeagueID,
		SoccerSeason:       cfg.SoccerSeason,
		BasketballLeagueID: cfg.BasketballLeagueID,
		BasketballSeason:   cfg.BasketballSeason,
		BasketballTeamID:   cfg.BasketballTeamID,
		F1Season:           cfg.F1Season,
	})
}

func (r *Runtime) Close(ctx context.Context) error {
	var errs []error
	if r.stagingDB != nil {
		if err := r.stagingDB.Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("disconnect staging store: %w", err))
		}
		r.stagingDB = nil
	}
	if r.warehouseDB != nil {
		if err := r.warehouseDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close warehouse db: %w", err))
		}
		r.warehouseDB = nil
	}
	return errors.Join(errs...)
}
