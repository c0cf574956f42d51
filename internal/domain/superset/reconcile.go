package superset

import (
	"math"
	"sort"
	"time"

	"github.com/riskibarqy/fpl-superset/internal/domain/identity"
)

// Inputs are the raw records of one season.
type Inputs struct {
	Primary   []PrimaryRecord
	Secondary []SecondaryRecord
	Identity  identity.Map
	Fixtures  []FixtureContext
}

// Report counts what Reconcile dropped and why.
type Report struct {
	PrimaryRecords     int `json:"primary_records"`
	SecondaryRecords   int `json:"secondary_records"`
	UnmappedSecondary  int `json:"unmapped_secondary"`
	DuplicatePrimary   int `json:"duplicate_primary"`
	DuplicateSecondary int `json:"duplicate_secondary"`
	UnmatchedPrimary   int `json:"unmatched_primary"`
	UnmatchedSecondary int `json:"unmatched_secondary"`
	Incomplete         int `json:"incomplete"`
	Rows               int `json:"rows"`
}

type joinKey struct {
	playerID int
	date     time.Time
}

type fixtureKey struct {
	playerID  int
	fixtureID int
}

// Reconcile joins primary and secondary records of one season on (canonical player
// id, calendar date). Secondary records without an identity link are dropped. When a
// player has more than one record on the same date in a source, the latest one is
// kept: later kickoff then larger fixture id for primary, larger match id for
// secondary. Rows with any required field unresolved are dropped.
func Reconcile(season string, in Inputs) (Table, Report) {
	report := Report{
		PrimaryRecords:   len(in.Primary),
		SecondaryRecords: len(in.Secondary),
	}

	primary := make(map[joinKey]PrimaryRecord, len(in.Primary))
	for _, rec := range in.Primary {
		key := joinKey{playerID: rec.PlayerID, date: CalendarDate(rec.KickoffAt)}
		if current, ok := primary[key]; ok {
			report.DuplicatePrimary++
			if !primaryIsLater(rec, current) {
				continue
			}
		}
		primary[key] = rec
	}

	secondary := make(map[joinKey]SecondaryRecord, len(in.Secondary))
	for _, rec := range in.Secondary {
		canonical, ok := in.Identity.Lookup(rec.SourceID)
		if !ok {
			report.UnmappedSecondary++
			continue
		}
		rec.PlayerID = canonical
		rec.Date = CalendarDate(rec.Date)

		key := joinKey{playerID: canonical, date: rec.Date}
		if current, ok := secondary[key]; ok {
			report.DuplicateSecondary++
			if rec.MatchID <= current.MatchID {
				continue
			}
		}
		secondary[key] = rec
	}

	fixtures := make(map[fixtureKey]FixtureContext, len(in.Fixtures))
	for _, fc := range in.Fixtures {
		fixtures[fixtureKey{playerID: fc.PlayerID, fixtureID: fc.FixtureID}] = fc
	}

	keys := make([]joinKey, 0, len(primary))
	for key := range primary {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].playerID != keys[j].playerID {
			return keys[i].playerID < keys[j].playerID
		}
		return keys[i].date.Before(keys[j].date)
	})

	rows := make([]Row, 0, len(keys))
	matched := 0
	for _, key := range keys {
		sec, ok := secondary[key]
		if !ok {
			report.UnmatchedPrimary++
			continue
		}
		matched++

		row := joinRow(primary[key], sec)
		if fc, ok := fixtures[fixtureKey{playerID: row.PlayerID, fixtureID: row.FixtureID}]; ok {
			row.Position = fc.Position
			row.ExpectedPoints = fc.ExpectedPoints
		}
		if !row.complete() {
			report.Incomplete++
			continue
		}
		rows = append(rows, row)
	}
	report.UnmatchedSecondary = len(secondary) - matched
	report.Rows = len(rows)

	return Table{Season: season, Rows: rows}, report
}

func primaryIsLater(candidate, current PrimaryRecord) bool {
	if !candidate.KickoffAt.Equal(current.KickoffAt) {
		return candidate.KickoffAt.After(current.KickoffAt)
	}
	return candidate.FixtureID > current.FixtureID
}

func joinRow(p PrimaryRecord, s SecondaryRecord) Row {
	var team, opposition string
	if !p.VenueUnknown {
		team, opposition = DeriveTeams(p.WasHome, s.HomeTeam, s.AwayTeam)
	}

	stats := p.Stats
	stats.Value = stats.Value / 10

	row := Row{
		PlayerID:       p.PlayerID,
		PlayerName:     p.PlayerName,
		UnderstatID:    s.SourceID,
		UnderstatPos:   s.Position,
		Round:          p.Round,
		FixtureID:      p.FixtureID,
		MatchID:        s.MatchID,
		Date:           s.Date,
		WasHome:        p.WasHome,
		HomeTeam:       s.HomeTeam,
		AwayTeam:       s.AwayTeam,
		Team:           team,
		OppositionTeam: opposition,
		ExpectedPoints: math.NaN(),
		Stats:          stats,
		Metrics:        s.Metrics,
	}
	if !p.KickoffAt.IsZero() {
		row.KickoffTime = p.KickoffAt.UTC().Format(kickoffTimeLayout)
	}
	return row
}

// complete reports whether every required field is resolved. Position and
// expected points come from optional context and are not required.
func (r *Row) complete() bool {
	if r.PlayerID <= 0 || r.PlayerName == "" || r.Date.IsZero() || r.Round <= 0 {
		return false
	}
	if r.Team == "" || r.OppositionTeam == "" {
		return false
	}
	for _, def := range columnDefs {
		if def.num == nil || def.info.Name == "xP" {
			continue
		}
		if math.IsNaN(def.num(r)) {
			return false
		}
	}
	return true
}
