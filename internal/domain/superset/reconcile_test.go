package superset

import (
	"math"
	"testing"
	"time"

	"github.com/riskibarqy/fpl-superset/internal/domain/identity"
)

func kickoff(day int) time.Time {
	return time.Date(2020, time.September, day, 15, 0, 0, 0, time.UTC)
}

func primaryRecord(playerID, fixtureID, round int, at time.Time, wasHome bool) PrimaryRecord {
	return PrimaryRecord{
		PlayerID:   playerID,
		PlayerName: "Player " + string(rune('A'+playerID%26)),
		FixtureID:  fixtureID,
		Round:      round,
		KickoffAt:  at,
		WasHome:    wasHome,
		Stats:      PrimaryStats{Minutes: 90, TotalPoints: float64(round), Value: 55, Influence: 10, Creativity: 5, Threat: 7},
	}
}

func secondaryRecord(sourceID, matchID int, at time.Time) SecondaryRecord {
	return SecondaryRecord{
		SourceID: sourceID,
		MatchID:  matchID,
		// Understat dates carry no kickoff time.
		Date:     time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC),
		HomeTeam: "Arsenal",
		AwayTeam: "Fulham",
		Position: "FW",
		Metrics:  AdvancedMetrics{XG: 0.4, XA: 0.1, KeyPasses: 2, XGChain: 0.6, XGBuildup: 0.2, Time: 90},
	}
}

func TestReconcileEndToEnd(t *testing.T) {
	t.Parallel()

	in := Inputs{
		Identity: identity.NewMap([]identity.Link{{SourceID: 900, CanonicalID: 1}}),
	}
	for round := 1; round <= 3; round++ {
		in.Primary = append(in.Primary,
			primaryRecord(1, 100+round, round, kickoff(round*7), true),
			primaryRecord(2, 200+round, round, kickoff(round*7), false),
		)
		in.Secondary = append(in.Secondary, secondaryRecord(900, 5000+round, kickoff(round*7)))
	}

	table, report := Reconcile("2020-21", in)
	if table.Len() != 3 {
		t.Fatalf("expected 3 rows, got %d", table.Len())
	}
	if table.Season != "2020-21" {
		t.Fatalf("unexpected season %q", table.Season)
	}
	for i, row := range table.Rows {
		if row.PlayerID != 1 {
			t.Fatalf("row %d: expected player 1, got %d", i, row.PlayerID)
		}
		if row.Round != i+1 {
			t.Fatalf("row %d: expected round %d, got %d", i, i+1, row.Round)
		}
		if row.Metrics.XG != 0.4 || row.Stats.Minutes != 90 {
			t.Fatalf("row %d: expected both sources, got %+v", i, row)
		}
		if row.UnderstatID != 900 || row.MatchID != 5000+i+1 {
			t.Fatalf("row %d: unexpected secondary ids %d/%d", i, row.UnderstatID, row.MatchID)
		}
		if row.KickoffTime != "15:00:00" {
			t.Fatalf("row %d: unexpected kickoff time %q", i, row.KickoffTime)
		}
	}
	if report.UnmatchedPrimary != 3 || report.Rows != 3 {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestReconcileRescalesValue(t *testing.T) {
	t.Parallel()

	table, _ := Reconcile("2020-21", Inputs{
		Primary:   []PrimaryRecord{primaryRecord(1, 11, 1, kickoff(12), true)},
		Secondary: []SecondaryRecord{secondaryRecord(900, 1, kickoff(12))},
		Identity:  identity.NewMap([]identity.Link{{SourceID: 900, CanonicalID: 1}}),
	})
	if table.Len() != 1 {
		t.Fatalf("expected 1 row, got %d", table.Len())
	}
	if got := table.Rows[0].Stats.Value; got != 5.5 {
		t.Fatalf("expected value 5.5, got %v", got)
	}
}

func TestReconcileDropsRowsWithUnknownVenue(t *testing.T) {
	t.Parallel()

	unknown := primaryRecord(1, 11, 1, kickoff(12), false)
	unknown.VenueUnknown = true

	table, report := Reconcile("2020-21", Inputs{
		Primary: []PrimaryRecord{unknown, primaryRecord(1, 12, 2, kickoff(19), true)},
		Secondary: []SecondaryRecord{
			secondaryRecord(900, 1, kickoff(12)),
			secondaryRecord(900, 2, kickoff(19)),
		},
		Identity: identity.NewMap([]identity.Link{{SourceID: 900, CanonicalID: 1}}),
	})
	if table.Len() != 1 || table.Rows[0].Round != 2 {
		t.Fatalf("expected only the round 2 row, got %+v", table.Rows)
	}
	if report.Incomplete != 1 {
		t.Fatalf("expected 1 incomplete row, got %+v", report)
	}
}

func TestReconcileDerivesTeams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		wasHome        bool
		wantTeam       string
		wantOpposition string
	}{
		{name: "home", wasHome: true, wantTeam: "Arsenal", wantOpposition: "Fulham"},
		{name: "away", wasHome: false, wantTeam: "Fulham", wantOpposition: "Arsenal"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			table, _ := Reconcile("2020-21", Inputs{
				Primary:   []PrimaryRecord{primaryRecord(1, 11, 1, kickoff(12), tc.wasHome)},
				Secondary: []SecondaryRecord{secondaryRecord(900, 1, kickoff(12))},
				Identity:  identity.NewMap([]identity.Link{{SourceID: 900, CanonicalID: 1}}),
			})
			if table.Len() != 1 {
				t.Fatalf("expected 1 row, got %d", table.Len())
			}
			row := table.Rows[0]
			if row.Team != tc.wantTeam || row.OppositionTeam != tc.wantOpposition {
				t.Fatalf("expected %s vs %s, got %s vs %s", tc.wantTeam, tc.wantOpposition, row.Team, row.OppositionTeam)
			}
		})
	}
}

func TestReconcileDuplicateDatePrefersLatest(t *testing.T) {
	t.Parallel()

	early := primaryRecord(1, 11, 1, kickoff(12), true)
	late := primaryRecord(1, 12, 2, kickoff(12).Add(3*time.Hour), true)
	sameTimeHigherFixture := primaryRecord(1, 13, 2, kickoff(12).Add(3*time.Hour), false)

	table, report := Reconcile("2020-21", Inputs{
		Primary: []PrimaryRecord{late, sameTimeHigherFixture, early},
		Secondary: []SecondaryRecord{
			secondaryRecord(900, 71, kickoff(12)),
			secondaryRecord(900, 70, kickoff(12)),
		},
		Identity: identity.NewMap([]identity.Link{{SourceID: 900, CanonicalID: 1}}),
	})

	if table.Len() != 1 {
		t.Fatalf("expected one row per player and date, got %d", table.Len())
	}
	row := table.Rows[0]
	if row.FixtureID != 13 {
		t.Fatalf("expected fixture 13 to win, got %d", row.FixtureID)
	}
	if row.MatchID != 71 {
		t.Fatalf("expected match 71 to win, got %d", row.MatchID)
	}
	if report.DuplicatePrimary != 2 || report.DuplicateSecondary != 1 {
		t.Fatalf("unexpected duplicate counts %+v", report)
	}
}

func TestReconcileDropsUnresolvedRows(t *testing.T) {
	t.Parallel()

	missingStat := primaryRecord(2, 21, 1, kickoff(12), true)
	missingStat.Stats.Threat = math.NaN()
	noTeam := secondaryRecord(903, 3, kickoff(12))
	noTeam.HomeTeam = ""

	table, report := Reconcile("2020-21", Inputs{
		Primary: []PrimaryRecord{
			primaryRecord(1, 11, 1, kickoff(12), true),
			missingStat,
			primaryRecord(3, 31, 1, kickoff(12), true),
		},
		Secondary: []SecondaryRecord{
			secondaryRecord(901, 1, kickoff(12)),
			secondaryRecord(902, 2, kickoff(12)),
			noTeam,
			secondaryRecord(999, 4, kickoff(12)),
		},
		Identity: identity.NewMap([]identity.Link{
			{SourceID: 901, CanonicalID: 1},
			{SourceID: 902, CanonicalID: 2},
			{SourceID: 903, CanonicalID: 3},
		}),
	})

	if table.Len() != 1 || table.Rows[0].PlayerID != 1 {
		t.Fatalf("expected only player 1, got %+v", table.Rows)
	}
	if report.UnmappedSecondary != 1 || report.Incomplete != 2 || report.UnmatchedPrimary != 0 {
		t.Fatalf("unexpected report %+v", report)
	}
	for _, row := range table.Rows {
		if row.Team == "" || row.OppositionTeam == "" || row.Date.IsZero() || row.PlayerID == 0 {
			t.Fatalf("row has unresolved required field: %+v", row)
		}
	}
}

func TestReconcileAttachesFixtureContext(t *testing.T) {
	t.Parallel()

	table, _ := Reconcile("2020-21", Inputs{
		Primary: []PrimaryRecord{
			primaryRecord(1, 11, 1, kickoff(12), true),
			primaryRecord(1, 12, 2, kickoff(19), true),
		},
		Secondary: []SecondaryRecord{
			secondaryRecord(900, 1, kickoff(12)),
			secondaryRecord(900, 2, kickoff(19)),
		},
		Identity: identity.NewMap([]identity.Link{{SourceID: 900, CanonicalID: 1}}),
		Fixtures: []FixtureContext{{PlayerID: 1, FixtureID: 11, Position: "MID", ExpectedPoints: 4.2}},
	})

	if table.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", table.Len())
	}
	if table.Rows[0].Position != "MID" || table.Rows[0].ExpectedPoints != 4.2 {
		t.Fatalf("expected context on first row, got %+v", table.Rows[0])
	}
	if table.Rows[1].Position != "" || !math.IsNaN(table.Rows[1].ExpectedPoints) {
		t.Fatalf("expected no context on second row, got %+v", table.Rows[1])
	}

	v, err := table.Value(1, "xP")
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if v != nil {
		t.Fatalf("expected nil for missing xP, got %v", v)
	}
}
