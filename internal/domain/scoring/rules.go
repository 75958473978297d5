package scoring

import (
	"math"
	"sort"

	"github.com/riskibarqy/prediction-league/internal/domain/fixture"
	"github.com/riskibarqy/prediction-league/internal/domain/prediction"
)

// Rules stores scoring and progression parameters.
type Rules struct {
	PointsPerCorrect int
	// RequiredPerWeek is the quota of real picks a week needs before later weeks unlock.
	RequiredPerWeek int
	// DeriveQuotaFromFixtures replaces RequiredPerWeek with the catalog fixture count
	// of the week when that count is known.
	DeriveQuotaFromFixtures bool
	MaxWeek                 int
}

func DefaultRules() Rules {
	return Rules{
		PointsPerCorrect:        1,
		RequiredPerWeek:         10,
		DeriveQuotaFromFixtures: true,
		MaxWeek:                 38,
	}
}

// QuotaFor returns the number of real picks week needs before later weeks unlock.
// A derived quota only counts fixtures that can still be picked.
func (r Rules) QuotaFor(week WeeklyStats) int {
	if r.DeriveQuotaFromFixtures && week.FixtureCount > 0 {
		return week.PredictableCount
	}
	return r.RequiredPerWeek
}

// Score evaluates one choice against a final result.
// It returns nil while the result is unknown and for skipped turns.
func Score(choice prediction.Choice, result fixture.Outcome) *bool {
	if result == fixture.OutcomeUnknown || !choice.IsPick() {
		return nil
	}
	correct := string(choice) == string(result)
	return &correct
}

// Percentage returns part/total*100 rounded to the nearest integer, and 0 for an empty total.
func Percentage(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) * 100 / float64(total)))
}

// ComputeWeeklyStats joins the user's predictions to the fixtures of one week.
// Predictions whose fixture is not part of the week are ignored.
func ComputeWeeklyStats(week int, fixtures []fixture.Fixture, predictions []prediction.Prediction, rules Rules) WeeklyStats {
	byFixture := make(map[string]prediction.Prediction, len(predictions))
	for _, item := range predictions {
		byFixture[item.FixtureID] = item
	}

	items := make([]fixture.Fixture, 0, len(fixtures))
	for _, item := range fixtures {
		if item.Week == week {
			items = append(items, item)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].KickoffAt.Equal(items[j].KickoffAt) {
			return items[i].KickoffAt.Before(items[j].KickoffAt)
		}
		return items[i].ID < items[j].ID
	})

	stats := WeeklyStats{
		Week:         week,
		FixtureCount: len(items),
		Fixtures:     make([]FixtureBreakdown, 0, len(items)),
	}
	for _, item := range items {
		if !fixture.IsCancelledLikeStatus(item.Status) {
			stats.PredictableCount++
		}
		result := item.Result()
		row := FixtureBreakdown{
			FixtureID: item.ID,
			HomeTeam:  item.HomeTeam,
			AwayTeam:  item.AwayTeam,
			KickoffAt: item.KickoffAt,
			Venue:     item.Venue,
			Choice:    ChoiceNoPick,
			Result:    ResultTBD,
			HomeScore: item.HomeScore,
			AwayScore: item.AwayScore,
		}
		if result != fixture.OutcomeUnknown {
			row.Result = string(result)
		}

		pick, ok := byFixture[item.ID]
		if ok {
			row.Choice = string(pick.Choice)
			if pick.Choice.IsPick() {
				stats.TotalPredictions++
				row.IsCorrect = Score(pick.Choice, result)
				switch {
				case row.IsCorrect == nil:
					stats.PendingPredictions++
				case *row.IsCorrect:
					stats.CorrectPredictions++
				}
			} else {
				stats.SkippedCount++
			}
		}

		stats.Fixtures = append(stats.Fixtures, row)
	}

	stats.TotalTurns = stats.TotalPredictions + stats.SkippedCount
	stats.HasActivity = stats.TotalTurns > 0
	stats.WeeklyPercentage = Percentage(stats.CorrectPredictions, stats.TotalPredictions)
	stats.Points = stats.CorrectPredictions * rules.PointsPerCorrect
	return stats
}

// ComputeAllWeeks computes stats for every week present in the fixture catalog.
// The result is ordered by week ascending.
func ComputeAllWeeks(fixtures []fixture.Fixture, predictions []prediction.Prediction, rules Rules) []WeeklyStats {
	byWeek := make(map[int][]fixture.Fixture)
	weeks := make([]int, 0)
	for _, item := range fixtures {
		if item.Week <= 0 {
			continue
		}
		if _, exists := byWeek[item.Week]; !exists {
			weeks = append(weeks, item.Week)
		}
		byWeek[item.Week] = append(byWeek[item.Week], item)
	}
	sort.Ints(weeks)

	out := make([]WeeklyStats, 0, len(weeks))
	for _, week := range weeks {
		out = append(out, ComputeWeeklyStats(week, byWeek[week], predictions, rules))
	}
	return out
}

// EvaluateGate decides whether targetWeek may be revealed.
// Weeks 1 and 2 are always open; later weeks need every week from 2 up to targetWeek-1
// to meet its quota, and the lowest week short of it is reported as blocking.
func EvaluateGate(targetWeek int, weeks []WeeklyStats, rules Rules) Gate {
	gate := Gate{TargetWeek: targetWeek, Allowed: true}
	if targetWeek <= 2 {
		return gate
	}

	byWeek := make(map[int]WeeklyStats, len(weeks))
	for _, item := range weeks {
		byWeek[item.Week] = item
	}

	for week := 2; week < targetWeek; week++ {
		stats := byWeek[week]
		required := rules.QuotaFor(stats)
		if stats.TotalPredictions < required {
			blocking := week
			gate.Allowed = false
			gate.BlockingWeek = &blocking
			gate.RequiredPredictions = required
			gate.CompletedPredictions = stats.TotalPredictions
			return gate
		}
	}

	return gate
}

// PickBestWorstWeek selects the best and worst ranked weeks among weeks with at least one pick.
// Best prefers higher accuracy, then higher points; worst prefers lower accuracy, then lower
// points. Remaining ties go to the more recent week in both cases.
func PickBestWorstWeek(weeks []WeeklyStats) (best *WeekRank, worst *WeekRank) {
	for _, item := range weeks {
		if item.TotalPredictions <= 0 {
			continue
		}
		candidate := WeekRank{
			Week:               item.Week,
			Accuracy:           item.WeeklyPercentage,
			Points:             item.Points,
			TotalPredictions:   item.TotalPredictions,
			CorrectPredictions: item.CorrectPredictions,
		}

		if best == nil || ranksAbove(candidate, *best) {
			picked := candidate
			best = &picked
		}
		if worst == nil || ranksBelow(candidate, *worst) {
			picked := candidate
			worst = &picked
		}
	}

	return best, worst
}

func ranksAbove(a, b WeekRank) bool {
	if a.Accuracy != b.Accuracy {
		return a.Accuracy > b.Accuracy
	}
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	return a.Week > b.Week
}

func ranksBelow(a, b WeekRank) bool {
	if a.Accuracy != b.Accuracy {
		return a.Accuracy < b.Accuracy
	}
	if a.Points != b.Points {
		return a.Points < b.Points
	}
	return a.Week > b.Week
}

// ComputeOverallSummary aggregates weekly stats into season totals.
func ComputeOverallSummary(weeks []WeeklyStats, rules Rules) OverallSummary {
	sorted := append([]WeeklyStats(nil), weeks...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Week < sorted[j].Week })

	summary := OverallSummary{Weeks: make([]WeeklyStats, 0, len(sorted))}
	for _, item := range sorted {
		if !item.HasActivity {
			continue
		}
		summary.Weeks = append(summary.Weeks, item)
		if item.Week > summary.CurrentWeek {
			summary.CurrentWeek = item.Week
		}
		summary.SkippedCount += item.SkippedCount
		if item.TotalPredictions <= 0 {
			continue
		}
		summary.TotalPredictions += item.TotalPredictions
		summary.CorrectPredictions += item.CorrectPredictions
	}

	summary.OverallAccuracy = Percentage(summary.CorrectPredictions, summary.TotalPredictions)
	summary.TotalPoints = summary.CorrectPredictions * rules.PointsPerCorrect
	summary.BestWeek, summary.WorstWeek = PickBestWorstWeek(summary.Weeks)
	return summary
}
