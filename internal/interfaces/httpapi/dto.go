package httpapi

import (
	"time"

	"github.com/riskibarqy/prediction-league/internal/domain/fixture"
	"github.com/riskibarqy/prediction-league/internal/domain/prediction"
	"github.com/riskibarqy/prediction-league/internal/domain/scoring"
)

type fixtureDTO struct {
	ID        string `json:"id"`
	Mode      string `json:"mode"`
	Week      int    `json:"week"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	KickoffAt string `json:"kickoff_at"`
	Venue     string `json:"venue,omitempty"`
	Status    string `json:"status"`
	Result    string `json:"result"`
	HomeScore *int   `json:"home_score,omitempty"`
	AwayScore *int   `json:"away_score,omitempty"`
}

type predictionDTO struct {
	ID        string `json:"id"`
	Mode      string `json:"mode"`
	FixtureID string `json:"fixture_id"`
	Week      int    `json:"week"`
	Choice    string `json:"choice"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type resetDTO struct {
	Mode    string `json:"mode"`
	Removed int    `json:"removed"`
}

type fixtureBreakdownDTO struct {
	FixtureID string `json:"fixture_id"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	KickoffAt string `json:"kickoff_at"`
	Venue     string `json:"venue,omitempty"`
	Choice    string `json:"choice"`
	Result    string `json:"result"`
	IsCorrect *bool  `json:"is_correct"`
	HomeScore *int   `json:"home_score,omitempty"`
	AwayScore *int   `json:"away_score,omitempty"`
}

type weeklyStatsDTO struct {
	Week               int                   `json:"week"`
	FixtureCount       int                   `json:"fixture_count"`
	PredictableCount   int                   `json:"predictable_count"`
	TotalPredictions   int                   `json:"total_predictions"`
	CorrectPredictions int                   `json:"correct_predictions"`
	PendingPredictions int                   `json:"pending_predictions"`
	WeeklyPercentage   int                   `json:"weekly_percentage"`
	Points             int                   `json:"points"`
	SkippedCount       int                   `json:"skipped_count"`
	TotalTurns         int                   `json:"total_turns"`
	HasActivity        bool                  `json:"has_activity"`
	Fixtures           []fixtureBreakdownDTO `json:"fixtures"`
}

type gateDTO struct {
	Week                 int  `json:"week"`
	Allowed              bool `json:"allowed"`
	BlockingWeek         *int `json:"blocking_week"`
	RequiredPredictions  int  `json:"required_predictions"`
	CompletedPredictions int  `json:"completed_predictions"`
}

type weekProgressDTO struct {
	Week                 int  `json:"week"`
	FixtureCount         int  `json:"fixture_count"`
	PredictableCount     int  `json:"predictable_count"`
	TotalPredictions     int  `json:"total_predictions"`
	SkippedCount         int  `json:"skipped_count"`
	RequiredPredictions  int  `json:"required_predictions"`
	QuotaMet             bool `json:"quota_met"`
	Revealable           bool `json:"revealable"`
	BlockingWeek         *int `json:"blocking_week"`
	CompletedPredictions int  `json:"completed_predictions"`
}

type weekRankDTO struct {
	Week               int `json:"week"`
	Accuracy           int `json:"accuracy"`
	Points             int `json:"points"`
	TotalPredictions   int `json:"total_predictions"`
	CorrectPredictions int `json:"correct_predictions"`
}

type summaryDTO struct {
	TotalPredictions   int              `json:"total_predictions"`
	CorrectPredictions int              `json:"correct_predictions"`
	SkippedCount       int              `json:"skipped_count"`
	OverallAccuracy    int              `json:"overall_accuracy"`
	TotalPoints        int              `json:"total_points"`
	CurrentWeek        int              `json:"current_week"`
	BestWeek           *weekRankDTO     `json:"best_week"`
	WorstWeek          *weekRankDTO     `json:"worst_week"`
	Weeks              []weeklyStatsDTO `json:"weeks"`
}

func fixtureToDTO(v fixture.Fixture) fixtureDTO {
	result := string(v.Result())
	if result == "" {
		result = scoring.ResultTBD
	}
	return fixtureDTO{
		ID:        v.ID,
		Mode:      v.Mode,
		Week:      v.Week,
		HomeTeam:  v.HomeTeam,
		AwayTeam:  v.AwayTeam,
		KickoffAt: formatTime(v.KickoffAt),
		Venue:     v.Venue,
		Status:    fixture.NormalizeStatus(v.Status),
		Result:    result,
		HomeScore: v.HomeScore,
		AwayScore: v.AwayScore,
	}
}

func predictionToDTO(v prediction.Prediction) predictionDTO {
	return predictionDTO{
		ID:        v.ID,
		Mode:      v.Mode,
		FixtureID: v.FixtureID,
		Week:      v.Week,
		Choice:    string(v.Choice),
		CreatedAt: formatTime(v.CreatedAt),
		UpdatedAt: formatTime(v.UpdatedAt),
	}
}

func weeklyStatsToDTO(v scoring.WeeklyStats) weeklyStatsDTO {
	rows := make([]fixtureBreakdownDTO, 0, len(v.Fixtures))
	for _, row := range v.Fixtures {
		rows = append(rows, fixtureBreakdownDTO{
			FixtureID: row.FixtureID,
			HomeTeam:  row.HomeTeam,
			AwayTeam:  row.AwayTeam,
			KickoffAt: formatTime(row.KickoffAt),
			Venue:     row.Venue,
			Choice:    row.Choice,
			Result:    row.Result,
			IsCorrect: row.IsCorrect,
			HomeScore: row.HomeScore,
			AwayScore: row.AwayScore,
		})
	}

	return weeklyStatsDTO{
		Week:               v.Week,
		FixtureCount:       v.FixtureCount,
		PredictableCount:   v.PredictableCount,
		TotalPredictions:   v.TotalPredictions,
		CorrectPredictions: v.CorrectPredictions,
		PendingPredictions: v.PendingPredictions,
		WeeklyPercentage:   v.WeeklyPercentage,
		Points:             v.Points,
		SkippedCount:       v.SkippedCount,
		TotalTurns:         v.TotalTurns,
		HasActivity:        v.HasActivity,
		Fixtures:           rows,
	}
}

func summaryToDTO(v scoring.OverallSummary) summaryDTO {
	weeks := make([]weeklyStatsDTO, 0, len(v.Weeks))
	for _, item := range v.Weeks {
		weeks = append(weeks, weeklyStatsToDTO(item))
	}

	return summaryDTO{
		TotalPredictions:   v.TotalPredictions,
		CorrectPredictions: v.CorrectPredictions,
		SkippedCount:       v.SkippedCount,
		OverallAccuracy:    v.OverallAccuracy,
		TotalPoints:        v.TotalPoints,
		CurrentWeek:        v.CurrentWeek,
		BestWeek:           weekRankToDTO(v.BestWeek),
		WorstWeek:          weekRankToDTO(v.WorstWeek),
		Weeks:              weeks,
	}
}

func weekRankToDTO(v *scoring.WeekRank) *weekRankDTO {
	if v == nil {
		return nil
	}
	return &weekRankDTO{
		Week:               v.Week,
		Accuracy:           v.Accuracy,
		Points:             v.Points,
		TotalPredictions:   v.TotalPredictions,
		CorrectPredictions: v.CorrectPredictions,
	}
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}
