package usecase

import (
	"errors"
	"fmt"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/fpl-superset/internal/domain/features"
	"github.com/riskibarqy/fpl-superset/internal/domain/superset"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// classify maps domain failures onto the usecase sentinels.
func classify(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	switch {
	case crerr.Is(err, superset.ErrMissingReferenceData):
		return fmt.Errorf("%w: %s: %w", ErrDependencyUnavailable, msg, err)
	case crerr.Is(err, superset.ErrMalformedSourceFile):
		return fmt.Errorf("%w: %s: %w", ErrDependencyUnavailable, msg, err)
	case crerr.Is(err, features.ErrUnknownColumn):
		return fmt.Errorf("%w: %s: %w", ErrInvalidInput, msg, err)
	default:
		return fmt.Errorf("%s: %w", msg, err)
	}
}
