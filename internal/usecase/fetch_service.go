package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/sports-dw/internal/domain/staging"
	"github.com/riskibarqy/sports-dw/internal/platform/document"
	"github.com/riskibarqy/sports-dw/internal/platform/id"
	"github.com/riskibarqy/sports-dw/internal/platform/logging"
)

const (
	fetchStatusStored = "stored"
	fetchStatusEmpty  = "empty"
	fetchStatusFailed = "failed"

	defaultFetchWorkers = 2
)

// DocumentProvider fetches the response array of one provider endpoint.
type DocumentProvider interface {
	FetchDocuments(ctx context.Context, sport Sport, endpoint string, params map[string]string) ([]document.Value, error)
}

type FetchEndpoint struct {
	Sport    Sport  `validate:"required,oneof=soccer basketball f1"`
	Endpoint string `validate:"required"`
	Params   map[string]string
}

// Collection is the staging collection the endpoint is stored in.
func (e FetchEndpoint) Collection() string {
	return string(e.Sport) + "_" + strings.ReplaceAll(strings.Trim(e.Endpoint, "/"), "/", "_")
}

type FetchPlanConfig struct {
	SoccerLeagueID     int64
	SoccerSeason       int
	BasketballLeagueID int64
	BasketballSeason   string
	BasketballTeamID   int64
	F1Season           int
}

// DefaultFetchPlan lists the endpoints pulled for each sport.
func DefaultFetchPlan(cfg FetchPlanConfig) []FetchEndpoint {
	soccerLeague := strconv.FormatInt(cfg.SoccerLeagueID, 10)
	soccerSeason := strconv.Itoa(cfg.SoccerSeason)
	basketLeague := strconv.FormatInt(cfg.BasketballLeagueID, 10)
	basketTeam := strconv.FormatInt(cfg.BasketballTeamID, 10)
	f1Season := strconv.Itoa(cfg.F1Season)

	return []FetchEndpoint{
		{Sport: SportSoccer, Endpoint: "leagues"},
		{Sport: SportSoccer, Endpoint: "teams", Params: map[string]string{"league": soccerLeague, "season": soccerSeason}},
		{Sport: SportSoccer, Endpoint: "players", Params: map[string]string{"league": soccerLeague, "season": soccerSeason}},
		{Sport: SportSoccer, Endpoint: "fixtures", Params: map[string]string{"league": soccerLeague, "season": soccerSeason}},

		{Sport: SportBasketball, Endpoint: "leagues"},
		{Sport: SportBasketball, Endpoint: "teams", Params: map[string]string{"league": basketLeague, "season": cfg.BasketballSeason}},
		{Sport: SportBasketball, Endpoint: "players", Params: map[string]string{"team": basketTeam, "season": cfg.BasketballSeason}},
		{Sport: SportBasketball, Endpoint: "games", Params: map[string]string{"league": basketLeague, "season": cfg.BasketballSeason}},

		{Sport: SportFormula1, Endpoint: "competitions"},
		{Sport: SportFormula1, Endpoint: "drivers", Params: map[string]string{"season": f1Season}},
		{Sport: SportFormula1, Endpoint: "teams", Params: map[string]string{"season": f1Season}},
		{Sport: SportFormula1, Endpoint: "races", Params: map[string]string{"season": f1Season}},
		{Sport: SportFormula1, Endpoint: "rankings/drivers", Params: map[string]string{"season": f1Season}},
		{Sport: SportFormula1, Endpoint: "rankings/teams", Params: map[string]string{"season": f1Season}},
	}
}

type FetchInput struct {
	Sports     []Sport `validate:"required,min=1,dive,oneof=soccer basketball f1"`
	MaxWorkers int     `validate:"gte=0"`
}

type FetchResult struct {
	RunID        string                `json:"run_id"`
	StoredCount  int                   `json:"stored_count"`
	EmptyCount   int                   `json:"empty_count"`
	FailedCount  int                   `json:"failed_count"`
	WorkerCount  int                   `json:"worker_count"`
	Endpoints    []FetchEndpointResult `json:"endpoints"`
	DurationMs   int64                 `json:"duration_ms"`
	RequestedFor []Sport               `json:"requested_for"`
}

type FetchEndpointResult struct {
	Sport      Sport  `json:"sport"`
	Endpoint   string `json:"endpoint"`
	Collection string `json:"collection"`
	Status     string `json:"status"`
	Documents  int    `json:"documents"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

// FetchService pulls provider endpoints into staging. A non-empty response
// replaces the endpoint's collection wholesale; empty responses and
// failures leave it untouched.
type FetchService struct {
	provider  DocumentProvider
	writer    staging.Writer
	plan      []FetchEndpoint
	ids       id.Generator
	validator *validator.Validate
	logger    *logging.Logger
}

func NewFetchService(
	provider DocumentProvider,
	writer staging.Writer,
	plan []FetchEndpoint,
	ids id.Generator,
	logger *logging.Logger,
) *FetchService {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}

	return &FetchService{
		provider:  provider,
		writer:    writer,
		plan:      plan,
		ids:       ids,
		validator: validator.New(),
		logger:    logger,
	}
}

func (s *FetchService) Fetch(ctx context.Context, input FetchInput) (FetchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FetchService.Fetch")
	defer span.End()

	if s.provider == nil || s.writer == nil {
		return FetchResult{}, fmt.Errorf("%w: fetch requires a provider and a staging writer", ErrDependencyUnavailable)
	}
	if err := s.validator.StructCtx(ctx, input); err != nil {
		return FetchResult{}, fmt.Errorf("%w: validation failed: %v", ErrInvalidInput, err)
	}

	tasks, err := s.selectEndpoints(ctx, input.Sports)
	if err != nil {
		return FetchResult{}, err
	}

	runID, err := s.ids.NewID()
	if err != nil {
		return FetchResult{}, fmt.Errorf("generate run id: %w", err)
	}

	start := time.Now()
	workerCount := normalizeFetchWorkerCount(input.MaxWorkers, len(tasks))
	result := FetchResult{
		RunID:        runID,
		WorkerCount:  workerCount,
		RequestedFor: input.Sports,
		Endpoints:    make([]FetchEndpointResult, len(tasks)),
	}
	if len(tasks) == 0 {
		return result, nil
	}

	var storedCount atomic.Int32
	var emptyCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return FetchResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i, task := range tasks {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			row := s.fetchEndpoint(ctx, runID, task)
			switch row.Status {
			case fetchStatusStored:
				storedCount.Add(1)
			case fetchStatusEmpty:
				emptyCount.Add(1)
			default:
				failedCount.Add(1)
			}
			result.Endpoints[i] = row
		}); err != nil {
			workers.Done()
			return FetchResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	result.StoredCount = int(storedCount.Load())
	result.EmptyCount = int(emptyCount.Load())
	result.FailedCount = int(failedCount.Load())
	result.DurationMs = time.Since(start).Milliseconds()

	s.logger.InfoContext(ctx, "fetch run completed",
		"run_id", runID,
		"endpoints", len(tasks),
		"stored", result.StoredCount,
		"empty", result.EmptyCount,
		"failed", result.FailedCount,
		"duration_ms", result.DurationMs,
	)
	return result, nil
}

func (s *FetchService) selectEndpoints(ctx context.Context, sports []Sport) ([]FetchEndpoint, error) {
	wanted := make(map[Sport]struct{}, len(sports))
	for _, sport := range sports {
		wanted[sport] = struct{}{}
	}

	out := make([]FetchEndpoint, 0, len(s.plan))
	for _, endpoint := range s.plan {
		if _, ok := wanted[endpoint.Sport]; !ok {
			continue
		}
		if err := s.validator.StructCtx(ctx, endpoint); err != nil {
			return nil, fmt.Errorf("%w: invalid fetch endpoint %q: %v", ErrInvalidInput, endpoint.Endpoint, err)
		}
		out = append(out, endpoint)
	}
	return out, nil
}

func (s *FetchService) fetchEndpoint(ctx context.Context, runID string, task FetchEndpoint) FetchEndpointResult {
	start := time.Now()
	row := FetchEndpointResult{
		Sport:      task.Sport,
		Endpoint:   task.Endpoint,
		Collection: task.Collection(),
	}
	defer func() {
		row.DurationMs = time.Since(start).Milliseconds()
	}()

	docs, err := s.provider.FetchDocuments(ctx, task.Sport, task.Endpoint, task.Params)
	if err != nil {
		row.Status = fetchStatusFailed
		row.Message = err.Error()
		s.logger.WarnContext(ctx, "fetch endpoint failed",
			"run_id", runID,
			"sport", task.Sport,
			"endpoint", task.Endpoint,
			"error", err,
		)
		return row
	}
	if len(docs) == 0 {
		row.Status = fetchStatusEmpty
		s.logger.InfoContext(ctx, "fetch endpoint returned no data",
			"run_id", runID,
			"sport", task.Sport,
			"endpoint", task.Endpoint,
		)
		return row
	}

	stored, err := s.writer.ReplaceCollection(ctx, row.Collection, docs)
	if err != nil {
		row.Status = fetchStatusFailed
		row.Message = err.Error()
		s.logger.WarnContext(ctx, "store fetched documents failed",
			"run_id", runID,
			"collection", row.Collection,
			"error", err,
		)
		return row
	}

	row.Status = fetchStatusStored
	row.Documents = stored
	s.logger.InfoContext(ctx, "fetched documents stored",
		"run_id", runID,
		"collection", row.Collection,
		"documents", stored,
	)
	return row
}

func normalizeFetchWorkerCount(requested, taskCount int) int {
	out := requested
	if out <= 0 {
		out = defaultFetchWorkers
	}
	if taskCount > 0 && out > taskCount {
		out = taskCount
	}
	return out
}
