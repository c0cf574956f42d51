package csvfile

import (
	"context"
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/fpl-superset/internal/domain/identity"
	"github.com/riskibarqy/fpl-superset/internal/domain/superset"
	"github.com/riskibarqy/fpl-superset/internal/platform/logging"
)

const (
	playersDir     = "players"
	primaryFile    = "gw.csv"
	understatDir   = "understat"
	summaryPrefix  = "understat_"
	summaryFile    = "understat_player.csv"
	gameweeksDir   = "gws"
	mergedFile     = "merged_gw.csv"
	identityFile   = "id_dict.csv"
	playerListFile = "player_idlist.csv"
	csvExtension   = ".csv"
)

// Source reads a season from DATA_ROOT/<season>/. Per-player files that cannot be
// read are skipped with a warning; missing reference files are fatal.
type Source struct {
	root   string
	logger *logging.Logger
}

func NewSource(root string, logger *logging.Logger) *Source {
	if logger == nil {
		logger = logging.Default()
	}
	return &Source{root: root, logger: logger}
}

func (s *Source) seasonDir(season string) string {
	return filepath.Join(s.root, season)
}

func (s *Source) LoadIdentityMap(ctx context.Context, season string) (identity.Map, error) {
	path := filepath.Join(s.seasonDir(season), identityFile)
	t, err := readTable(path)
	if err != nil {
		return identity.Map{}, crerr.Mark(crerr.Wrapf(err, "load identity map %s", path), superset.ErrMissingReferenceData)
	}
	if err := t.require("Understat_ID", "FPL_ID"); err != nil {
		return identity.Map{}, crerr.Mark(err, superset.ErrMissingReferenceData)
	}

	links := make([]identity.Link, 0, t.len())
	for r := 0; r < t.len(); r++ {
		sourceID, ok := t.integer(r, "Understat_ID")
		if !ok {
			continue
		}
		canonicalID, _ := t.integer(r, "FPL_ID")
		links = append(links, identity.Link{
			SourceID:      sourceID,
			SourceName:    t.text(r, "Understat_Name"),
			CanonicalID:   canonicalID,
			CanonicalName: t.text(r, "FPL_Name"),
		})
	}

	m := identity.NewMap(links)
	s.logger.DebugContext(ctx, "identity map loaded", "season", season, "links", m.Len(), "rows", t.len())
	return m, nil
}

func (s *Source) LoadPlayerList(ctx context.Context, season string) (identity.PlayerList, error) {
	path := filepath.Join(s.seasonDir(season), playerListFile)
	t, err := readTable(path)
	if err != nil {
		return identity.PlayerList{}, crerr.Mark(crerr.Wrapf(err, "load player list %s", path), superset.ErrMissingReferenceData)
	}
	if err := t.require("first_name", "second_name", "id"); err != nil {
		return identity.PlayerList{}, crerr.Mark(err, superset.ErrMissingReferenceData)
	}

	entries := make([]identity.PlayerListEntry, 0, t.len())
	for r := 0; r < t.len(); r++ {
		id, ok := t.integer(r, "id")
		if !ok {
			continue
		}
		entries = append(entries, identity.PlayerListEntry{
			FirstName:  t.text(r, "first_name"),
			SecondName: t.text(r, "second_name"),
			ID:         id,
		})
	}

	list := identity.NewPlayerList(entries)
	s.logger.DebugContext(ctx, "player list loaded", "season", season, "players", list.Len())
	return list, nil
}

// LoadPrimary reads players/<name>_<id>/gw.csv for every player directory.
func (s *Source) LoadPrimary(ctx context.Context, season string, players identity.PlayerList) ([]superset.PrimaryRecord, error) {
	dir := filepath.Join(s.seasonDir(season), playersDir)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.WarnContext(ctx, "primary source directory missing", "season", season, "path", dir)
		return []superset.PrimaryRecord{}, nil
	}
	if err != nil {
		return nil, crerr.Wrapf(err, "read %s", dir)
	}

	out := make([]superset.PrimaryRecord, 0, len(entries)*38)
	skipped := 0
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.IsDir() {
			continue
		}

		records, err := s.readPrimaryDir(ctx, filepath.Join(dir, entry.Name()), entry.Name(), players)
		if err != nil {
			skipped++
			s.logger.WarnContext(ctx, "skip primary player directory", "season", season, "entry", entry.Name(), "error", err)
			continue
		}
		out = append(out, records...)
	}

	s.logger.InfoContext(ctx, "primary source loaded", "season", season, "records", len(out), "skipped", skipped)
	return out, nil
}

func (s *Source) readPrimaryDir(ctx context.Context, dir, name string, players identity.PlayerList) ([]superset.PrimaryRecord, error) {
	entry, err := identity.ParseEntryName(name)
	if err != nil {
		return nil, crerr.Mark(err, superset.ErrMalformedSourceFile)
	}

	playerID, overridden := players.Resolve(entry)
	if overridden {
		s.logger.WarnContext(ctx, "player list overrides directory id", "entry", name, "directory_id", entry.ID, "player_id", playerID)
	}

	t, err := readTable(filepath.Join(dir, primaryFile))
	if err != nil {
		return nil, crerr.Mark(err, superset.ErrMalformedSourceFile)
	}
	if err := t.require("kickoff_time", "round", "fixture", "was_home", "value", "total_points"); err != nil {
		return nil, crerr.Mark(err, superset.ErrMalformedSourceFile)
	}

	out := make([]superset.PrimaryRecord, 0, t.len())
	for r := 0; r < t.len(); r++ {
		round, _ := t.integer(r, "round")
		fixture, _ := t.integer(r, "fixture")
		opponent, _ := t.integer(r, "opponent_team")
		wasHome, venueKnown := t.flag(r, "was_home")
		out = append(out, superset.PrimaryRecord{
			PlayerID:       playerID,
			PlayerName:     entry.Name(),
			FixtureID:      fixture,
			Round:          round,
			OpponentTeamID: opponent,
			KickoffAt:      t.timestamp(r, "kickoff_time"),
			WasHome:        wasHome,
			VenueUnknown:   !venueKnown,
			Stats: superset.PrimaryStats{
				Minutes:          t.number(r, "minutes"),
				GoalsScored:      t.number(r, "goals_scored"),
				Assists:          t.number(r, "assists"),
				CleanSheets:      t.number(r, "clean_sheets"),
				GoalsConceded:    t.number(r, "goals_conceded"),
				OwnGoals:         t.number(r, "own_goals"),
				PenaltiesSaved:   t.number(r, "penalties_saved"),
				PenaltiesMissed:  t.number(r, "penalties_missed"),
				YellowCards:      t.number(r, "yellow_cards"),
				RedCards:         t.number(r, "red_cards"),
				Saves:            t.number(r, "saves"),
				Bonus:            t.number(r, "bonus"),
				BPS:              t.number(r, "bps"),
				Influence:        t.number(r, "influence"),
				Creativity:       t.number(r, "creativity"),
				Threat:           t.number(r, "threat"),
				ICTIndex:         t.number(r, "ict_index"),
				TotalPoints:      t.number(r, "total_points"),
				Value:            t.number(r, "value"),
				Selected:         t.number(r, "selected"),
				TransfersIn:      t.number(r, "transfers_in"),
				TransfersOut:     t.number(r, "transfers_out"),
				TransfersBalance: t.number(r, "transfers_balance"),
				TeamHScore:       t.number(r, "team_h_score"),
				TeamAScore:       t.number(r, "team_a_score"),
			},
		})
	}
	return out, nil
}

// LoadSecondary reads every understat/**/<name>_<id>.csv, ignoring the understat_*
// summary files. Files are visited in lexical path order.
func (s *Source) LoadSecondary(ctx context.Context, season string) ([]superset.SecondaryRecord, error) {
	dir := filepath.Join(s.seasonDir(season), understatDir)
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		s.logger.WarnContext(ctx, "secondary source directory missing", "season", season, "path", dir)
		return []superset.SecondaryRecord{}, nil
	}

	out := make([]superset.SecondaryRecord, 0, 1024)
	skipped := 0
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, csvExtension) || strings.HasPrefix(name, summaryPrefix) {
			return nil
		}

		records, err := readSecondaryFile(path, strings.TrimSuffix(name, csvExtension))
		if err != nil {
			skipped++
			rel, _ := filepath.Rel(dir, path)
			s.logger.WarnContext(ctx, "skip secondary player file", "season", season, "file", rel, "error", err)
			return nil
		}
		out = append(out, records...)
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, crerr.Wrapf(err, "walk %s", dir)
	}

	s.logger.InfoContext(ctx, "secondary source loaded", "season", season, "records", len(out), "skipped", skipped)
	return out, nil
}

func readSecondaryFile(path, name string) ([]superset.SecondaryRecord, error) {
	entry, err := identity.ParseEntryName(name)
	if err != nil {
		return nil, crerr.Mark(err, superset.ErrMalformedSourceFile)
	}

	t, err := readTable(path)
	if err != nil {
		return nil, crerr.Mark(err, superset.ErrMalformedSourceFile)
	}
	if err := t.require("date", "h_team", "a_team"); err != nil {
		return nil, crerr.Mark(err, superset.ErrMalformedSourceFile)
	}

	out := make([]superset.SecondaryRecord, 0, t.len())
	for r := 0; r < t.len(); r++ {
		matchID, _ := t.integer(r, "id")
		out = append(out, superset.SecondaryRecord{
			SourceID:   entry.ID,
			PlayerName: entry.Name(),
			MatchID:    matchID,
			Date:       t.timestamp(r, "date"),
			HomeTeam:   t.text(r, "h_team"),
			AwayTeam:   t.text(r, "a_team"),
			Position:   t.text(r, "position"),
			Metrics: superset.AdvancedMetrics{
				Goals:     t.number(r, "goals"),
				Shots:     t.number(r, "shots"),
				XG:        t.number(r, "xG"),
				XA:        t.number(r, "xA"),
				Assists:   t.number(r, "assists"),
				KeyPasses: t.number(r, "key_passes"),
				NPG:       t.number(r, "npg"),
				NPXG:      t.number(r, "npxG"),
				XGChain:   t.number(r, "xGChain"),
				XGBuildup: t.number(r, "xGBuildup"),
				Time:      t.number(r, "time"),
				HomeGoals: t.number(r, "h_goals"),
				AwayGoals: t.number(r, "a_goals"),
			},
		})
	}
	return out, nil
}

// LoadMergedGameweeks reads gws/merged_gw.csv. The file is optional.
func (s *Source) LoadMergedGameweeks(ctx context.Context, season string) ([]superset.FixtureContext, error) {
	path := filepath.Join(s.seasonDir(season), gameweeksDir, mergedFile)
	t, err := readTable(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.InfoContext(ctx, "merged gameweek file missing, positions unavailable", "season", season)
		return []superset.FixtureContext{}, nil
	}
	if err != nil {
		return nil, crerr.Mark(err, superset.ErrMalformedSourceFile)
	}
	if err := t.require("element", "fixture"); err != nil {
		return nil, crerr.Mark(err, superset.ErrMalformedSourceFile)
	}

	out := make([]superset.FixtureContext, 0, t.len())
	for r := 0; r < t.len(); r++ {
		element, ok := t.integer(r, "element")
		if !ok {
			continue
		}
		fixture, ok := t.integer(r, "fixture")
		if !ok {
			continue
		}
		out = append(out, superset.FixtureContext{
			PlayerID:       element,
			FixtureID:      fixture,
			Position:       t.text(r, "position"),
			Team:           t.text(r, "team"),
			ExpectedPoints: t.number(r, "xP"),
		})
	}

	s.logger.DebugContext(ctx, "merged gameweeks loaded", "season", season, "rows", len(out))
	return out, nil
}

// LoadSeasonSummary reads understat/understat_player.csv. Rows with a missing id or
// statistic are skipped.
func (s *Source) LoadSeasonSummary(ctx context.Context, season string) ([]superset.SeasonSummary, error) {
	path := filepath.Join(s.seasonDir(season), understatDir, summaryFile)
	t, err := readTable(path)
	if err != nil {
		return nil, crerr.Mark(crerr.Wrapf(err, "load season summary %s", path), superset.ErrMalformedSourceFile)
	}
	if err := t.require("id", "player_name"); err != nil {
		return nil, crerr.Mark(err, superset.ErrMalformedSourceFile)
	}

	out := make([]superset.SeasonSummary, 0, t.len())
	skipped := 0
	for r := 0; r < t.len(); r++ {
		id, ok := t.integer(r, "id")
		if !ok {
			skipped++
			continue
		}
		row := superset.SeasonSummary{
			UnderstatID: id,
			PlayerName:  t.text(r, "player_name"),
			Team:        t.text(r, "team_title"),
			Position:    t.text(r, "position"),
			Games:       t.number(r, "games"),
			Time:        t.number(r, "time"),
			Goals:       t.number(r, "goals"),
			XG:          t.number(r, "xG"),
			Assists:     t.number(r, "assists"),
			XA:          t.number(r, "xA"),
			Shots:       t.number(r, "shots"),
			KeyPasses:   t.number(r, "key_passes"),
			YellowCards: t.number(r, "yellow_cards"),
			RedCards:    t.number(r, "red_cards"),
			NPG:         t.number(r, "npg"),
			NPXG:        t.number(r, "npxG"),
			XGChain:     t.number(r, "xGChain"),
			XGBuildup:   t.number(r, "xGBuildup"),
		}
		if hasNaN(row.Games, row.Time, row.Goals, row.XG, row.Assists, row.XA, row.Shots,
			row.KeyPasses, row.YellowCards, row.RedCards, row.NPG, row.NPXG, row.XGChain, row.XGBuildup) {
			skipped++
			continue
		}
		out = append(out, row)
	}

	s.logger.DebugContext(ctx, "season summary loaded", "season", season, "rows", len(out), "skipped", skipped)
	return out, nil
}

func hasNaN(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}
