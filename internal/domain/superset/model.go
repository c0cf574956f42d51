package superset

import "time"

// PrimaryStats are the FPL per-fixture counting statistics. NaN marks a missing value.
// Value is in tenths of a million on PrimaryRecord and in millions on Row.
type PrimaryStats struct {
	Minutes          float64
	GoalsScored      float64
	Assists          float64
	CleanSheets      float64
	GoalsConceded    float64
	OwnGoals         float64
	PenaltiesSaved   float64
	PenaltiesMissed  float64
	YellowCards      float64
	RedCards         float64
	Saves            float64
	Bonus            float64
	BPS              float64
	Influence        float64
	Creativity       float64
	Threat           float64
	ICTIndex         float64
	TotalPoints      float64
	Value            float64
	Selected         float64
	TransfersIn      float64
	TransfersOut     float64
	TransfersBalance float64
	TeamHScore       float64
	TeamAScore       float64
}

// AdvancedMetrics are the Understat per-match metrics. NaN marks a missing value.
type AdvancedMetrics struct {
	Goals     float64
	Shots     float64
	XG        float64
	XA        float64
	Assists   float64
	KeyPasses float64
	NPG       float64
	NPXG      float64
	XGChain   float64
	XGBuildup float64
	Time      float64
	HomeGoals float64
	AwayGoals float64
}

// PrimaryRecord is one FPL gameweek row for one player. VenueUnknown is set when
// the home flag was blank or unparsable; such a record cannot resolve its team.
type PrimaryRecord struct {
	PlayerID       int
	PlayerName     string
	FixtureID      int
	Round          int
	OpponentTeamID int
	KickoffAt      time.Time
	WasHome        bool
	VenueUnknown   bool
	Stats          PrimaryStats
}

// SecondaryRecord is one Understat match row for one player. PlayerID is the
// canonical id and stays zero until the record is mapped.
type SecondaryRecord struct {
	SourceID   int
	PlayerID   int
	PlayerName string
	MatchID    int
	Date       time.Time
	HomeTeam   string
	AwayTeam   string
	Position   string
	Metrics    AdvancedMetrics
}

// FixtureContext is the merged-gameweek context of one player in one fixture.
type FixtureContext struct {
	PlayerID       int
	FixtureID      int
	Position       string
	Team           string
	ExpectedPoints float64
}

// SeasonSummary is the Understat aggregate for one player over a season.
type SeasonSummary struct {
	UnderstatID int     `json:"understat_id"`
	PlayerName  string  `json:"player_name"`
	Team        string  `json:"team"`
	Position    string  `json:"position"`
	Games       float64 `json:"games"`
	Time        float64 `json:"time"`
	Goals       float64 `json:"goals"`
	XG          float64 `json:"xG"`
	Assists     float64 `json:"assists"`
	XA          float64 `json:"xA"`
	Shots       float64 `json:"shots"`
	KeyPasses   float64 `json:"key_passes"`
	YellowCards float64 `json:"yellow_cards"`
	RedCards    float64 `json:"red_cards"`
	NPG         float64 `json:"npg"`
	NPXG        float64 `json:"npxG"`
	XGChain     float64 `json:"xGChain"`
	XGBuildup   float64 `json:"xGBuildup"`
}

// Row is one reconciled player-fixture: an FPL record joined with its Understat
// record on (canonical player id, calendar date).
type Row struct {
	PlayerID       int
	PlayerName     string
	UnderstatID    int
	Position       string
	UnderstatPos   string
	Round          int
	FixtureID      int
	MatchID        int
	Date           time.Time
	KickoffTime    string
	WasHome        bool
	HomeTeam       string
	AwayTeam       string
	Team           string
	OppositionTeam string
	ExpectedPoints float64
	Stats          PrimaryStats
	Metrics        AdvancedMetrics
}

// CalendarDate strips the time of day, in UTC.
func CalendarDate(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DeriveTeams returns the player's side and the opposing side of a fixture.
func DeriveTeams(wasHome bool, homeTeam, awayTeam string) (team, opposition string) {
	if wasHome {
		return homeTeam, awayTeam
	}
	return awayTeam, homeTeam
}
