package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/fpl-superset/internal/domain/features"
	"github.com/riskibarqy/fpl-superset/internal/platform/logging"
)

// ModelRun is the outcome of running a model use case against one season.
type ModelRun struct {
	Season       string                   `json:"season"`
	Model        string                   `json:"model"`
	Rows         int                      `json:"rows"`
	Stage        features.Stage           `json:"stage"`
	Columns      []string                 `json:"columns"`
	Explorations []features.Exploration   `json:"explorations,omitempty"`
	Matrix       *features.PreparedMatrix `json:"-"`
}

// ModelService resolves model use cases by name and runs them on reconciled seasons.
type ModelService struct {
	supersets *SupersetService
	models    map[string]features.UseCase
	logger    *logging.Logger
}

func NewModelService(supersets *SupersetService, logger *logging.Logger, models ...features.UseCase) *ModelService {
	if logger == nil {
		logger = logging.Default()
	}
	if len(models) == 0 {
		models = []features.UseCase{features.NewValueModel()}
	}

	registry := make(map[string]features.UseCase, len(models))
	for _, m := range models {
		registry[m.Name()] = m
	}
	return &ModelService{
		supersets: supersets,
		models:    registry,
		logger:    logger.With("component", "model_service"),
	}
}

func (s *ModelService) Models() []string {
	out := make([]string, 0, len(s.models))
	for name := range s.models {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (s *ModelService) resolve(name string) (features.UseCase, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: model is required", ErrInvalidInput)
	}
	uc, ok := s.models[name]
	if !ok {
		return nil, fmt.Errorf("%w: model %s", ErrNotFound, name)
	}
	return uc, nil
}

// Explore cleans the season for the model and returns its explorations. The design
// matrix is prepared too so callers see the same rows a model would train on.
func (s *ModelService) Explore(ctx context.Context, season, model string) (ModelRun, error) {
	return s.run(ctx, season, model, true)
}

// Prepare cleans, encodes and scales the season for the model.
func (s *ModelService) Prepare(ctx context.Context, season, model string) (ModelRun, error) {
	return s.run(ctx, season, model, false)
}

func (s *ModelService) run(ctx context.Context, season, model string, explore bool) (ModelRun, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ModelService.run",
		attribute.String("season", season),
		attribute.String("model", model),
	)
	defer span.End()

	uc, err := s.resolve(model)
	if err != nil {
		return ModelRun{}, err
	}
	table, err := s.supersets.Table(ctx, season)
	if err != nil {
		return ModelRun{}, err
	}

	frame, err := table.Frame(uc.Spec().Columns()...)
	if err != nil {
		return ModelRun{}, classify(err, "project %s for %s", season, uc.Name())
	}
	result, err := features.Run(uc, frame, explore)
	if err != nil {
		return ModelRun{}, fmt.Errorf("%w: run %s on %s: %w", ErrInvalidInput, uc.Name(), season, err)
	}

	run := ModelRun{
		Season:       table.Season,
		Model:        uc.Name(),
		Rows:         result.Matrix.XProcessed.Nrow(),
		Stage:        result.Matrix.Stage(),
		Columns:      result.Matrix.XProcessed.Names(),
		Explorations: result.Explorations,
		Matrix:       result.Matrix,
	}

	for _, exp := range run.Explorations {
		defined := 0
		for _, pair := range exp.Pairs {
			if pair.Defined {
				defined++
			}
		}
		s.logger.InfoContext(ctx, "model exploration",
			"season", run.Season,
			"model", run.Model,
			"title", exp.Title,
			"rows", exp.Rows,
			"pairs", len(exp.Pairs),
			"defined_pairs", defined,
		)
	}
	s.logger.InfoContext(ctx, "model prepared", "season", run.Season, "model", run.Model, "rows", run.Rows, "columns", len(run.Columns), "stage", run.Stage)
	return run, nil
}
