package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/fpl-superset/internal/domain/superset"
	"github.com/riskibarqy/fpl-superset/internal/platform/cache"
	"github.com/riskibarqy/fpl-superset/internal/platform/logging"
)

const (
	warmupStatusSuccess = "success"
	warmupStatusFailed  = "failed"

	maxWarmupWorkers = 4
)

type SupersetConfig struct {
	Seasons      []string
	CacheEnabled bool
	CacheTTL     time.Duration
}

// SeasonLoad is one reconciled season and the drop counts of its reconciliation.
type SeasonLoad struct {
	Table    superset.Table
	Report   superset.Report
	LoadedAt time.Time
}

type WarmupResult struct {
	SeasonCount  int                  `json:"season_count"`
	WorkerCount  int                  `json:"worker_count"`
	SuccessCount int                  `json:"success_count"`
	FailedCount  int                  `json:"failed_count"`
	Seasons      []WarmupSeasonResult `json:"seasons"`
}

type WarmupSeasonResult struct {
	Season     string `json:"season"`
	Status     string `json:"status"`
	Rows       int    `json:"rows"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

// SupersetService is the data-access handle for reconciled seasons. It is built once
// at startup and shared by the query, model and export paths.
type SupersetService struct {
	source  superset.Source
	seasons []string
	allowed map[string]struct{}
	loads   *cache.Store[SeasonLoad]
	summary *cache.Store[[]superset.SeasonSummary]
	caching bool
	logger  *logging.Logger
}

func NewSupersetService(source superset.Source, cfg SupersetConfig, logger *logging.Logger) *SupersetService {
	if logger == nil {
		logger = logging.Default()
	}

	seasons := make([]string, 0, len(cfg.Seasons))
	allowed := make(map[string]struct{}, len(cfg.Seasons))
	for _, season := range cfg.Seasons {
		season = strings.TrimSpace(season)
		if season == "" {
			continue
		}
		if _, ok := allowed[season]; ok {
			continue
		}
		allowed[season] = struct{}{}
		seasons = append(seasons, season)
	}
	sort.Strings(seasons)

	return &SupersetService{
		source:  source,
		seasons: seasons,
		allowed: allowed,
		loads:   cache.NewStore[SeasonLoad](cfg.CacheTTL),
		summary: cache.NewStore[[]superset.SeasonSummary](cfg.CacheTTL),
		caching: cfg.CacheEnabled,
		logger:  logger.With("component", "superset_service"),
	}
}

// Seasons lists the configured seasons in ascending order.
func (s *SupersetService) Seasons() []string {
	return append([]string(nil), s.seasons...)
}

// LatestSeason returns the last configured season, or "" when none are configured.
func (s *SupersetService) LatestSeason() string {
	if len(s.seasons) == 0 {
		return ""
	}
	return s.seasons[len(s.seasons)-1]
}

func (s *SupersetService) validateSeason(season string) (string, error) {
	season = strings.TrimSpace(season)
	if season == "" {
		return "", fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	if _, ok := s.allowed[season]; !ok {
		return "", fmt.Errorf("%w: season %s is not configured", ErrNotFound, season)
	}
	return season, nil
}

// Table returns the reconciled table of a season, loading it on first use.
func (s *SupersetService) Table(ctx context.Context, season string) (superset.Table, error) {
	load, err := s.Season(ctx, season)
	if err != nil {
		return superset.Table{}, err
	}
	return load.Table, nil
}

// Season returns the cached load of a season. Concurrent first calls share one load.
func (s *SupersetService) Season(ctx context.Context, season string) (SeasonLoad, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SupersetService.Season", attribute.String("season", season))
	defer span.End()

	season, err := s.validateSeason(season)
	if err != nil {
		return SeasonLoad{}, err
	}
	if !s.caching {
		return s.load(ctx, season)
	}
	return s.loads.GetOrLoad(ctx, season, func(ctx context.Context) (SeasonLoad, error) {
		return s.load(ctx, season)
	})
}

// Reload drops the cached season and loads it again.
func (s *SupersetService) Reload(ctx context.Context, season string) (SeasonLoad, error) {
	season, err := s.validateSeason(season)
	if err != nil {
		return SeasonLoad{}, err
	}
	s.loads.Delete(ctx, season)
	s.summary.Delete(ctx, season)
	return s.Season(ctx, season)
}

func (s *SupersetService) load(ctx context.Context, season string) (SeasonLoad, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SupersetService.load")
	defer span.End()

	start := time.Now()
	ids, err := s.source.LoadIdentityMap(ctx, season)
	if err != nil {
		return SeasonLoad{}, classify(err, "load identity map for %s", season)
	}
	players, err := s.source.LoadPlayerList(ctx, season)
	if err != nil {
		return SeasonLoad{}, classify(err, "load player list for %s", season)
	}
	primary, err := s.source.LoadPrimary(ctx, season, players)
	if err != nil {
		return SeasonLoad{}, classify(err, "load primary source for %s", season)
	}
	secondary, err := s.source.LoadSecondary(ctx, season)
	if err != nil {
		return SeasonLoad{}, classify(err, "load secondary source for %s", season)
	}
	fixtures, err := s.source.LoadMergedGameweeks(ctx, season)
	if err != nil {
		s.logger.WarnContext(ctx, "merged gameweeks unavailable, continuing without positions", "season", season, "error", err)
		fixtures = nil
	}

	table, report := superset.Reconcile(season, superset.Inputs{
		Primary:   primary,
		Secondary: secondary,
		Identity:  ids,
		Fixtures:  fixtures,
	})

	s.logger.InfoContext(ctx, "season reconciled",
		"season", season,
		"rows", report.Rows,
		"primary_records", report.PrimaryRecords,
		"secondary_records", report.SecondaryRecords,
		"unmapped_secondary", report.UnmappedSecondary,
		"duplicate_primary", report.DuplicatePrimary,
		"duplicate_secondary", report.DuplicateSecondary,
		"unmatched_primary", report.UnmatchedPrimary,
		"unmatched_secondary", report.UnmatchedSecondary,
		"incomplete", report.Incomplete,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return SeasonLoad{Table: table, Report: report, LoadedAt: time.Now().UTC()}, nil
}

// Summary returns the season aggregate metrics. It is independent of the join.
func (s *SupersetService) Summary(ctx context.Context, season string) ([]superset.SeasonSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SupersetService.Summary", attribute.String("season", season))
	defer span.End()

	season, err := s.validateSeason(season)
	if err != nil {
		return nil, err
	}

	loader := func(ctx context.Context) ([]superset.SeasonSummary, error) {
		rows, err := s.source.LoadSeasonSummary(ctx, season)
		if err != nil {
			return nil, classify(err, "load season summary for %s", season)
		}
		return rows, nil
	}
	if !s.caching {
		return loader(ctx)
	}
	rows, err := s.summary.GetOrLoad(ctx, season, loader)
	if err != nil {
		return nil, err
	}
	return append([]superset.SeasonSummary(nil), rows...), nil
}

// CacheStats reports the table cache counters.
func (s *SupersetService) CacheStats() cache.Stats {
	return s.loads.Stats()
}

// Warmup loads seasons concurrently on a bounded pool. Each season's own load stays
// single-threaded. An empty list warms every configured season.
func (s *SupersetService) Warmup(ctx context.Context, seasons []string, maxWorkers int) (WarmupResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SupersetService.Warmup")
	defer span.End()

	if len(seasons) == 0 {
		seasons = s.Seasons()
	}
	targets := make([]string, 0, len(seasons))
	for _, season := range seasons {
		season, err := s.validateSeason(season)
		if err != nil {
			return WarmupResult{}, err
		}
		targets = append(targets, season)
	}

	workerCount := normalizeWarmupWorkerCount(maxWorkers, len(targets))
	result := WarmupResult{
		SeasonCount: len(targets),
		WorkerCount: workerCount,
		Seasons:     make([]WarmupSeasonResult, 0, len(targets)),
	}
	if len(targets) == 0 {
		return result, nil
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return WarmupResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan WarmupSeasonResult, len(targets))
	var successCount atomic.Int32
	var failedCount atomic.Int32

	var workers sync.WaitGroup
	for _, season := range targets {
		season := season
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := WarmupSeasonResult{Season: season}
			load, err := s.Season(ctx, season)
			row.DurationMs = time.Since(start).Milliseconds()
			if err != nil {
				row.Status = warmupStatusFailed
				row.Message = err.Error()
				failedCount.Add(1)
				s.logger.WarnContext(ctx, "season warmup failed", "season", season, "error", err)
			} else {
				row.Status = warmupStatusSuccess
				row.Rows = load.Table.Len()
				successCount.Add(1)
			}
			results <- row
		}); err != nil {
			workers.Done()
			return WarmupResult{}, fmt.Errorf("submit season to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Seasons = append(result.Seasons, row)
	}
	sort.SliceStable(result.Seasons, func(i, j int) bool {
		return result.Seasons[i].Season < result.Seasons[j].Season
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	return result, nil
}

func normalizeWarmupWorkerCount(value int, taskCount int) int {
	if taskCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = 1
	}
	if value > maxWarmupWorkers {
		value = maxWarmupWorkers
	}
	if value > taskCount {
		value = taskCount
	}
	return value
}
