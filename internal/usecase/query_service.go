package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/fpl-superset/internal/domain/superset"
)

const (
	minScatterFields = 2
	maxScatterFields = 3
	dateLayout       = "2006-01-02"
)

var defaultSeriesFields = []string{"total_points", "minutes", "xG", "xA", "value"}

type ColumnView struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Source string `json:"source"`
}

type OptionsView struct {
	Season    string   `json:"season"`
	Rounds    []int    `json:"rounds"`
	Teams     []string `json:"teams"`
	Positions []string `json:"positions"`
}

// ScatterQuery selects two or three fields for one round. Round zero means the latest
// round of the season. Teams and Position filter when non-empty.
type ScatterQuery struct {
	Season   string
	Fields   []string
	Round    int
	Teams    []string
	Position string
}

type ScatterPoint struct {
	PlayerID       int            `json:"player_id"`
	PlayerName     string         `json:"player_name"`
	Team           string         `json:"team"`
	OppositionTeam string         `json:"opposition_team"`
	Position       string         `json:"position"`
	Date           string         `json:"date"`
	Values         map[string]any `json:"values"`
}

type ScatterResult struct {
	Season string         `json:"season"`
	Round  int            `json:"round"`
	Fields []string       `json:"fields"`
	Points []ScatterPoint `json:"points"`
}

type SeriesPoint struct {
	Round          int            `json:"round"`
	Date           string         `json:"date"`
	FixtureID      int            `json:"fixture_id"`
	Team           string         `json:"team"`
	OppositionTeam string         `json:"opposition_team"`
	Values         map[string]any `json:"values"`
}

type PlayerSeries struct {
	Season     string        `json:"season"`
	PlayerID   int           `json:"player_id"`
	PlayerName string        `json:"player_name"`
	Fields     []string      `json:"fields"`
	Points     []SeriesPoint `json:"points"`
}

// QueryService answers the read-only queries a visualization front-end needs.
type QueryService struct {
	supersets *SupersetService
}

func NewQueryService(supersets *SupersetService) *QueryService {
	return &QueryService{supersets: supersets}
}

func (s *QueryService) Columns(ctx context.Context, season string) ([]ColumnView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.Columns")
	defer span.End()

	if _, err := s.supersets.Table(ctx, season); err != nil {
		return nil, err
	}

	cols := superset.Columns()
	out := make([]ColumnView, 0, len(cols))
	for _, c := range cols {
		out = append(out, ColumnView{Name: c.Name, Kind: c.Kind.String(), Source: c.Source})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *QueryService) Options(ctx context.Context, season string) (OptionsView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.Options")
	defer span.End()

	table, err := s.supersets.Table(ctx, season)
	if err != nil {
		return OptionsView{}, err
	}
	return OptionsView{
		Season:    table.Season,
		Rounds:    table.Rounds(),
		Teams:     table.Teams(),
		Positions: table.Positions(),
	}, nil
}

func (s *QueryService) Scatter(ctx context.Context, query ScatterQuery) (ScatterResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.Scatter",
		attribute.String("season", query.Season),
		attribute.Int("round", query.Round),
	)
	defer span.End()

	fields, err := normalizeFields(query.Fields)
	if err != nil {
		return ScatterResult{}, err
	}
	if len(fields) < minScatterFields || len(fields) > maxScatterFields {
		return ScatterResult{}, fmt.Errorf("%w: scatter needs %d to %d distinct fields, got %d",
			ErrInvalidInput, minScatterFields, maxScatterFields, len(fields))
	}
	if query.Round < 0 {
		return ScatterResult{}, fmt.Errorf("%w: round must be positive", ErrInvalidInput)
	}

	table, err := s.supersets.Table(ctx, query.Season)
	if err != nil {
		return ScatterResult{}, err
	}

	round := query.Round
	if round == 0 {
		if rounds := table.Rounds(); len(rounds) > 0 {
			round = rounds[len(rounds)-1]
		}
	}

	teams := make(map[string]struct{}, len(query.Teams))
	for _, team := range query.Teams {
		if team = strings.TrimSpace(team); team != "" {
			teams[team] = struct{}{}
		}
	}
	position := strings.TrimSpace(query.Position)

	result := ScatterResult{Season: table.Season, Round: round, Fields: fields, Points: []ScatterPoint{}}
	for i, row := range table.Rows {
		if row.Round != round {
			continue
		}
		if len(teams) > 0 {
			if _, ok := teams[row.Team]; !ok {
				continue
			}
		}
		if position != "" && !strings.EqualFold(row.Position, position) {
			continue
		}

		values, err := rowValues(table, i, fields)
		if err != nil {
			return ScatterResult{}, err
		}
		result.Points = append(result.Points, ScatterPoint{
			PlayerID:       row.PlayerID,
			PlayerName:     row.PlayerName,
			Team:           row.Team,
			OppositionTeam: row.OppositionTeam,
			Position:       row.Position,
			Date:           row.Date.Format(dateLayout),
			Values:         values,
		})
	}
	return result, nil
}

// PlayerSeries returns every fixture of one player ordered by round then date.
func (s *QueryService) PlayerSeries(ctx context.Context, season string, playerID int, fields []string) (PlayerSeries, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.PlayerSeries",
		attribute.String("season", season),
		attribute.Int("player_id", playerID),
	)
	defer span.End()

	if playerID <= 0 {
		return PlayerSeries{}, fmt.Errorf("%w: player id must be positive", ErrInvalidInput)
	}
	if len(fields) == 0 {
		fields = defaultSeriesFields
	}
	fields, err := normalizeFields(fields)
	if err != nil {
		return PlayerSeries{}, err
	}

	table, err := s.supersets.Table(ctx, season)
	if err != nil {
		return PlayerSeries{}, err
	}

	out := PlayerSeries{Season: table.Season, PlayerID: playerID, Fields: fields}
	order := make([]int, 0, 38)
	for i, row := range table.Rows {
		if row.PlayerID == playerID {
			order = append(order, i)
		}
	}
	if len(order) == 0 {
		return PlayerSeries{}, fmt.Errorf("%w: player %d has no reconciled fixtures in %s", ErrNotFound, playerID, table.Season)
	}
	sort.SliceStable(order, func(a, b int) bool {
		ra, rb := table.Rows[order[a]], table.Rows[order[b]]
		if ra.Round != rb.Round {
			return ra.Round < rb.Round
		}
		return ra.Date.Before(rb.Date)
	})

	out.PlayerName = table.Rows[order[0]].PlayerName
	out.Points = make([]SeriesPoint, 0, len(order))
	for _, i := range order {
		row := table.Rows[i]
		values, err := rowValues(table, i, fields)
		if err != nil {
			return PlayerSeries{}, err
		}
		out.Points = append(out.Points, SeriesPoint{
			Round:          row.Round,
			Date:           row.Date.Format(dateLayout),
			FixtureID:      row.FixtureID,
			Team:           row.Team,
			OppositionTeam: row.OppositionTeam,
			Values:         values,
		})
	}
	return out, nil
}

func normalizeFields(fields []string) ([]string, error) {
	out := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		if _, ok := superset.LookupColumn(field); !ok {
			return nil, fmt.Errorf("%w: unknown field %q", ErrInvalidInput, field)
		}
		if _, ok := seen[field]; ok {
			continue
		}
		seen[field] = struct{}{}
		out = append(out, field)
	}
	return out, nil
}

func rowValues(table superset.Table, row int, fields []string) (map[string]any, error) {
	values := make(map[string]any, len(fields))
	for _, field := range fields {
		v, err := table.Value(row, field)
		if err != nil {
			return nil, classify(err, "read %s", field)
		}
		values[field] = v
	}
	return values, nil
}
