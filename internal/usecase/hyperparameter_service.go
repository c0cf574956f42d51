package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/fpl-superset/internal/domain/hyperparams"
	"github.com/riskibarqy/fpl-superset/internal/platform/logging"
)

// HyperparameterService holds the hyperparameter bag a modeling front-end edits.
// The bag is stored and returned only; no model reads it yet.
type HyperparameterService struct {
	mu        sync.RWMutex
	bag       hyperparams.Bag
	validator *validator.Validate
	logger    *logging.Logger
}

func NewHyperparameterService(logger *logging.Logger) *HyperparameterService {
	if logger == nil {
		logger = logging.Default()
	}
	bag, _ := hyperparams.Default().Resolve()
	return &HyperparameterService{
		bag:       bag,
		validator: validator.New(),
		logger:    logger.With("component", "hyperparameter_service"),
	}
}

func (s *HyperparameterService) Get(ctx context.Context) hyperparams.Bag {
	_, span := startUsecaseSpan(ctx, "usecase.HyperparameterService.Get")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneBag(s.bag)
}

// Update validates bag, derives alpha from its slider mark and replaces the stored bag.
func (s *HyperparameterService) Update(ctx context.Context, bag hyperparams.Bag) (hyperparams.Bag, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HyperparameterService.Update")
	defer span.End()

	if err := s.validator.StructCtx(ctx, bag); err != nil {
		return hyperparams.Bag{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	resolved, err := bag.Resolve()
	if err != nil {
		return hyperparams.Bag{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.mu.Lock()
	s.bag = cloneBag(resolved)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "hyperparameters updated",
		"alpha", resolved.Alpha,
		"l1_ratio", resolved.L1Ratio,
		"polynomial_degree", resolved.PolynomialDegree,
		"outlier_methods", resolved.Outlier.Methods,
	)
	return cloneBag(resolved), nil
}

// Reset restores the defaults.
func (s *HyperparameterService) Reset(ctx context.Context) hyperparams.Bag {
	bag, _ := hyperparams.Default().Resolve()
	s.mu.Lock()
	s.bag = bag
	s.mu.Unlock()
	s.logger.InfoContext(ctx, "hyperparameters reset")
	return cloneBag(bag)
}

func cloneBag(bag hyperparams.Bag) hyperparams.Bag {
	bag.Outlier.Methods = append([]string(nil), bag.Outlier.Methods...)
	return bag
}
