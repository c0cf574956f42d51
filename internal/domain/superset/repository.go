package superset

import (
	"context"

	"github.com/riskibarqy/fpl-superset/internal/domain/identity"
)

// Source reads one season's raw exports.
type Source interface {
	LoadIdentityMap(ctx context.Context, season string) (identity.Map, error)
	LoadPlayerList(ctx context.Context, season string) (identity.PlayerList, error)
	LoadPrimary(ctx context.Context, season string, players identity.PlayerList) ([]PrimaryRecord, error)
	LoadSecondary(ctx context.Context, season string) ([]SecondaryRecord, error)
	LoadMergedGameweeks(ctx context.Context, season string) ([]FixtureContext, error)
	LoadSeasonSummary(ctx context.Context, season string) ([]SeasonSummary, error)
}
