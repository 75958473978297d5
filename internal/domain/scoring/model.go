package scoring

import "time"

const (
	// ChoiceNoPick marks a fixture of the week the user has not predicted.
	ChoiceNoPick = "NO_PICK"
	// ResultTBD marks a fixture whose final result is not known yet.
	ResultTBD = "TBD"
)

// FixtureBreakdown is one row of the per-fixture view of a user's week.
type FixtureBreakdown struct {
	FixtureID string
	HomeTeam  string
	AwayTeam  string
	KickoffAt time.Time
	Venue     string
	Choice    string
	Result    string
	IsCorrect *bool
	HomeScore *int
	AwayScore *int
}

// WeeklyStats is derived from predictions and fixtures on every read and never stored.
type WeeklyStats struct {
	Week               int
	FixtureCount       int
	// PredictableCount excludes cancelled, postponed and abandoned fixtures.
	PredictableCount   int
	TotalPredictions   int
	CorrectPredictions int
	PendingPredictions int
	WeeklyPercentage   int
	Points             int
	SkippedCount       int
	TotalTurns         int
	HasActivity        bool
	Fixtures           []FixtureBreakdown
}

// WeekRank is the compact form of a week used by best/worst selection.
type WeekRank struct {
	Week               int
	Accuracy           int
	Points             int
	TotalPredictions   int
	CorrectPredictions int
}

type OverallSummary struct {
	TotalPredictions   int
	CorrectPredictions int
	SkippedCount       int
	OverallAccuracy    int
	TotalPoints        int
	CurrentWeek        int
	Weeks              []WeeklyStats
	BestWeek           *WeekRank
	WorstWeek          *WeekRank
}

// Gate is the result of a reveal permission check for one target week.
type Gate struct {
	TargetWeek           int
	Allowed              bool
	BlockingWeek         *int
	RequiredPredictions  int
	CompletedPredictions int
}
