package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sourcegraph/conc/panics"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/sports-dw/internal/domain/staging"
	"github.com/riskibarqy/sports-dw/internal/domain/warehouse"
	"github.com/riskibarqy/sports-dw/internal/platform/id"
	"github.com/riskibarqy/sports-dw/internal/platform/logging"
)

type ETLInput struct {
	Sports []Sport `validate:"required,min=1,dive,oneof=soccer basketball f1"`
}

type RunResult struct {
	RunID      string        `json:"run_id"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Sports     []SportResult `json:"sports"`
}

type SportResult struct {
	Sport       Sport              `json:"sport"`
	Collections []CollectionResult `json:"collections"`
}

type CollectionResult struct {
	Collection string `json:"collection"`
	Processed  int    `json:"processed"`
	Failed     int    `json:"failed"`
	Skipped    int    `json:"skipped"`
}

func (r SportResult) Totals() CollectionResult {
	out := CollectionResult{Collection: string(r.Sport)}
	for _, item := range r.Collections {
		out.Processed += item.Processed
		out.Failed += item.Failed
		out.Skipped += item.Skipped
	}
	return out
}

// ETLService moves staging documents into the warehouse. Documents are
// processed one at a time, each inside its own transaction; a failing
// document is logged and rolled back without stopping the run.
type ETLService struct {
	source    staging.Source
	uow       warehouse.UnitOfWork
	schema    warehouse.SchemaManager
	mappers   map[Sport]DocumentMapper
	ids       id.Generator
	validator *validator.Validate
	logger    *logging.Logger
	now       func() time.Time
}

func NewETLService(
	source staging.Source,
	uow warehouse.UnitOfWork,
	schema warehouse.SchemaManager,
	ids id.Generator,
	logger *logging.Logger,
) *ETLService {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}

	return &ETLService{
		source:    source,
		uow:       uow,
		schema:    schema,
		mappers:   defaultMappers(),
		ids:       ids,
		validator: validator.New(),
		logger:    logger,
		now:       time.Now,
	}
}

// UseMapper replaces the mapper registered for m.Sport().
func (s *ETLService) UseMapper(m DocumentMapper) {
	s.mappers[m.Sport()] = m
}

func (s *ETLService) Run(ctx context.Context, input ETLInput) (RunResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ETLService.Run")
	defer span.End()

	if s.source == nil || s.uow == nil {
		return RunResult{}, fmt.Errorf("%w: etl requires a staging source and a warehouse", ErrDependencyUnavailable)
	}
	if err := s.validator.StructCtx(ctx, input); err != nil {
		return RunResult{}, fmt.Errorf("%w: validation failed: %v", ErrInvalidInput, err)
	}

	runID, err := s.ids.NewID()
	if err != nil {
		return RunResult{}, fmt.Errorf("generate run id: %w", err)
	}
	result := RunResult{
		RunID:     runID,
		StartedAt: s.now().UTC(),
		Sports:    make([]SportResult, 0, len(input.Sports)),
	}
	logger := s.logger.With("run_id", runID)

	if s.schema != nil {
		if err := s.schema.EnsureUniqueIndexes(ctx); err != nil {
			recordSpanError(span, err)
			return result, fmt.Errorf("ensure unique indexes: %w", err)
		}
	}

	names, err := s.source.CollectionNames(ctx)
	if err != nil {
		recordSpanError(span, err)
		return result, fmt.Errorf("%w: list staging collections: %v", ErrDependencyUnavailable, err)
	}

	for _, sport := range input.Sports {
		mapper, ok := s.mappers[sport]
		if !ok {
			return result, fmt.Errorf("%w: %s", ErrUnknownSport, sport)
		}

		sportResult, err := s.runSport(ctx, logger, mapper, names)
		result.Sports = append(result.Sports, sportResult)
		if err != nil {
			recordSpanError(span, err)
			return result, err
		}

		totals := sportResult.Totals()
		logger.InfoContext(ctx, "etl sport completed",
			"sport", sport,
			"collections", len(sportResult.Collections),
			"processed", totals.Processed,
			"failed", totals.Failed,
			"skipped", totals.Skipped,
		)
	}

	result.FinishedAt = s.now().UTC()
	logger.InfoContext(ctx, "etl run completed",
		"sports", len(result.Sports),
		"duration_ms", result.FinishedAt.Sub(result.StartedAt).Milliseconds(),
	)
	return result, nil
}

func (s *ETLService) runSport(
	ctx context.Context,
	logger *logging.Logger,
	mapper DocumentMapper,
	names []string,
) (SportResult, error) {
	sport := mapper.Sport()
	ctx, span := startUsecaseSpan(ctx, "usecase.ETLService.runSport", attribute.String("sport", string(sport)))
	defer span.End()

	out := SportResult{Sport: sport}
	collections := SelectCollections(sport, names)
	if len(collections) == 0 {
		logger.InfoContext(ctx, "no staging collections for sport", "sport", sport)
		return out, nil
	}

	for _, collection := range collections {
		row := CollectionResult{Collection: collection}
		err := s.source.Iterate(ctx, collection, func(doc staging.Document) error {
			if err := ctx.Err(); err != nil {
				return err
			}

			if doc.Err != nil {
				row.Failed++
				logger.WarnContext(ctx, "decode staging document failed",
					"sport", sport,
					"collection", collection,
					"document_id", doc.ID,
					"error", doc.Err,
				)
				return nil
			}

			err := s.loadDocument(ctx, mapper, doc)
			switch {
			case err == nil:
				row.Processed++
			case errors.Is(err, ErrMissingNaturalKey):
				row.Skipped++
				logger.WarnContext(ctx, "skip staging document",
					"sport", sport,
					"collection", collection,
					"document_id", doc.ID,
					"error", err,
				)
			default:
				row.Failed++
				logger.WarnContext(ctx, "load staging document failed",
					"sport", sport,
					"collection", collection,
					"document_id", doc.ID,
					"error", err,
				)
			}
			return nil
		})
		out.Collections = append(out.Collections, row)
		if err != nil {
			recordSpanError(span, err)
			return out, fmt.Errorf("iterate collection %s: %w", collection, err)
		}

		logger.InfoContext(ctx, "etl collection completed",
			"sport", sport,
			"collection", collection,
			"processed", row.Processed,
			"failed", row.Failed,
			"skipped", row.Skipped,
		)
	}
	return out, nil
}

// loadDocument runs the mapper inside one transaction. A panic in the
// mapper becomes an error and rolls the transaction back.
func (s *ETLService) loadDocument(ctx context.Context, mapper DocumentMapper, doc staging.Document) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, store warehouse.Store) error {
		var (
			catcher panics.Catcher
			err     error
		)
		catcher.Try(func() {
			err = mapper.Load(ctx, store, doc.Body)
		})
		if recovered := catcher.Recovered(); recovered != nil {
			return fmt.Errorf("mapper panicked: %w", recovered.AsError())
		}
		return err
	})
}
