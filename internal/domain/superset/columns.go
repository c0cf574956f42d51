package superset

import (
	"strconv"

	"github.com/riskibarqy/fpl-superset/internal/domain/features"
)

const (
	dateLayout        = "2006-01-02"
	kickoffTimeLayout = "15:04:05"
)

// ColumnInfo describes one column of the reconciled table.
type ColumnInfo struct {
	Name   string              `json:"name"`
	Kind   features.ColumnKind `json:"-"`
	Source string              `json:"source"`
}

type columnDef struct {
	info  ColumnInfo
	num   func(r *Row) float64
	label func(r *Row) string
}

const (
	sourceDerived   = "derived"
	sourcePrimary   = "fpl"
	sourceSecondary = "understat"
)

func numeric(name, source string, fn func(r *Row) float64) columnDef {
	return columnDef{info: ColumnInfo{Name: name, Kind: features.Numeric, Source: source}, num: fn}
}

func categorical(name, source string, fn func(r *Row) string) columnDef {
	return columnDef{info: ColumnInfo{Name: name, Kind: features.Categorical, Source: source}, label: fn}
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

var columnDefs = []columnDef{
	numeric("player_id", sourceDerived, func(r *Row) float64 { return float64(r.PlayerID) }),
	categorical("player_name", sourcePrimary, func(r *Row) string { return r.PlayerName }),
	numeric("understat_id", sourceSecondary, func(r *Row) float64 { return float64(r.UnderstatID) }),
	categorical("position", sourcePrimary, func(r *Row) string { return r.Position }),
	categorical("understat_position", sourceSecondary, func(r *Row) string { return r.UnderstatPos }),
	categorical("date", sourceDerived, func(r *Row) string { return r.Date.Format(dateLayout) }),
	categorical("kickoff_time", sourceDerived, func(r *Row) string { return r.KickoffTime }),
	numeric("round", sourcePrimary, func(r *Row) float64 { return float64(r.Round) }),
	numeric("fixture", sourcePrimary, func(r *Row) float64 { return float64(r.FixtureID) }),
	numeric("match_id", sourceSecondary, func(r *Row) float64 { return float64(r.MatchID) }),
	numeric("was_home", sourcePrimary, func(r *Row) float64 { return boolFloat(r.WasHome) }),
	categorical("h_team", sourceSecondary, func(r *Row) string { return r.HomeTeam }),
	categorical("a_team", sourceSecondary, func(r *Row) string { return r.AwayTeam }),
	categorical("team", sourceDerived, func(r *Row) string { return r.Team }),
	categorical("opposition_team", sourceDerived, func(r *Row) string { return r.OppositionTeam }),
	numeric("xP", sourcePrimary, func(r *Row) float64 { return r.ExpectedPoints }),

	numeric("minutes", sourcePrimary, func(r *Row) float64 { return r.Stats.Minutes }),
	numeric("goals_scored", sourcePrimary, func(r *Row) float64 { return r.Stats.GoalsScored }),
	numeric("assists", sourcePrimary, func(r *Row) float64 { return r.Stats.Assists }),
	numeric("clean_sheets", sourcePrimary, func(r *Row) float64 { return r.Stats.CleanSheets }),
	numeric("goals_conceded", sourcePrimary, func(r *Row) float64 { return r.Stats.GoalsConceded }),
	numeric("own_goals", sourcePrimary, func(r *Row) float64 { return r.Stats.OwnGoals }),
	numeric("penalties_saved", sourcePrimary, func(r *Row) float64 { return r.Stats.PenaltiesSaved }),
	numeric("penalties_missed", sourcePrimary, func(r *Row) float64 { return r.Stats.PenaltiesMissed }),
	numeric("yellow_cards", sourcePrimary, func(r *Row) float64 { return r.Stats.YellowCards }),
	numeric("red_cards", sourcePrimary, func(r *Row) float64 { return r.Stats.RedCards }),
	numeric("saves", sourcePrimary, func(r *Row) float64 { return r.Stats.Saves }),
	numeric("bonus", sourcePrimary, func(r *Row) float64 { return r.Stats.Bonus }),
	numeric("bps", sourcePrimary, func(r *Row) float64 { return r.Stats.BPS }),
	numeric("influence", sourcePrimary, func(r *Row) float64 { return r.Stats.Influence }),
	numeric("creativity", sourcePrimary, func(r *Row) float64 { return r.Stats.Creativity }),
	numeric("threat", sourcePrimary, func(r *Row) float64 { return r.Stats.Threat }),
	numeric("ict_index", sourcePrimary, func(r *Row) float64 { return r.Stats.ICTIndex }),
	numeric("total_points", sourcePrimary, func(r *Row) float64 { return r.Stats.TotalPoints }),
	numeric("value", sourcePrimary, func(r *Row) float64 { return r.Stats.Value }),
	numeric("selected", sourcePrimary, func(r *Row) float64 { return r.Stats.Selected }),
	numeric("transfers_in", sourcePrimary, func(r *Row) float64 { return r.Stats.TransfersIn }),
	numeric("transfers_out", sourcePrimary, func(r *Row) float64 { return r.Stats.TransfersOut }),
	numeric("transfers_balance", sourcePrimary, func(r *Row) float64 { return r.Stats.TransfersBalance }),
	numeric("team_h_score", sourcePrimary, func(r *Row) float64 { return r.Stats.TeamHScore }),
	numeric("team_a_score", sourcePrimary, func(r *Row) float64 { return r.Stats.TeamAScore }),

	numeric("goals", sourceSecondary, func(r *Row) float64 { return r.Metrics.Goals }),
	numeric("shots", sourceSecondary, func(r *Row) float64 { return r.Metrics.Shots }),
	numeric("xG", sourceSecondary, func(r *Row) float64 { return r.Metrics.XG }),
	numeric("xA", sourceSecondary, func(r *Row) float64 { return r.Metrics.XA }),
	numeric("assists_understat", sourceSecondary, func(r *Row) float64 { return r.Metrics.Assists }),
	numeric("key_passes", sourceSecondary, func(r *Row) float64 { return r.Metrics.KeyPasses }),
	numeric("npg", sourceSecondary, func(r *Row) float64 { return r.Metrics.NPG }),
	numeric("npxG", sourceSecondary, func(r *Row) float64 { return r.Metrics.NPXG }),
	numeric("xGChain", sourceSecondary, func(r *Row) float64 { return r.Metrics.XGChain }),
	numeric("xGBuildup", sourceSecondary, func(r *Row) float64 { return r.Metrics.XGBuildup }),
	numeric("time", sourceSecondary, func(r *Row) float64 { return r.Metrics.Time }),
	numeric("h_goals", sourceSecondary, func(r *Row) float64 { return r.Metrics.HomeGoals }),
	numeric("a_goals", sourceSecondary, func(r *Row) float64 { return r.Metrics.AwayGoals }),
}

var columnIndex = func() map[string]int {
	idx := make(map[string]int, len(columnDefs))
	for i, def := range columnDefs {
		idx[def.info.Name] = i
	}
	return idx
}()

// Columns lists every column of the reconciled table in export order.
func Columns() []ColumnInfo {
	out := make([]ColumnInfo, len(columnDefs))
	for i, def := range columnDefs {
		out[i] = def.info
	}
	return out
}

// LookupColumn returns the column named name.
func LookupColumn(name string) (ColumnInfo, bool) {
	i, ok := columnIndex[name]
	if !ok {
		return ColumnInfo{}, false
	}
	return columnDefs[i].info, true
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
