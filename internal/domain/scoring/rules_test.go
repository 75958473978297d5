package scoring

import (
	"fmt"
	"testing"
	"time"

	"github.com/riskibarqy/prediction-league/internal/domain/fixture"
	"github.com/riskibarqy/prediction-league/internal/domain/prediction"
)

var baseKickoff = time.Date(2025, time.August, 16, 14, 0, 0, 0, time.UTC)

func weekFixtures(week, count int, outcome fixture.Outcome) []fixture.Fixture {
	out := make([]fixture.Fixture, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, fixture.Fixture{
			ID:        fmt.Sprintf("w%02d-f%02d", week, i+1),
			Mode:      prediction.ModeTest,
			Week:      week,
			HomeTeam:  fmt.Sprintf("Home %d", i+1),
			AwayTeam:  fmt.Sprintf("Away %d", i+1),
			KickoffAt: baseKickoff.Add(time.Duration(week*7*24+i) * time.Hour),
			Status:    fixture.StatusFinished,
			Outcome:   outcome,
		})
	}
	return out
}

func picks(fixtures []fixture.Fixture, choices ...prediction.Choice) []prediction.Prediction {
	out := make([]prediction.Prediction, 0, len(choices))
	for i, choice := range choices {
		out = append(out, prediction.Prediction{
			Mode:      fixtures[i].Mode,
			UserID:    "user-1",
			FixtureID: fixtures[i].ID,
			Week:      fixtures[i].Week,
			Choice:    choice,
		})
	}
	return out
}

func repeat(choice prediction.Choice, n int) []prediction.Choice {
	out := make([]prediction.Choice, n)
	for i := range out {
		out[i] = choice
	}
	return out
}

func TestScore(t *testing.T) {
	tests := []struct {
		name   string
		choice prediction.Choice
		result fixture.Outcome
		want   *bool
	}{
		{name: "unknown result", choice: prediction.ChoiceHome, result: fixture.OutcomeUnknown, want: nil},
		{name: "skip is never scored", choice: prediction.ChoiceSkip, result: fixture.OutcomeHome, want: nil},
		{name: "correct home", choice: prediction.ChoiceHome, result: fixture.OutcomeHome, want: boolPtr(true)},
		{name: "correct draw", choice: prediction.ChoiceDraw, result: fixture.OutcomeDraw, want: boolPtr(true)},
		{name: "wrong away", choice: prediction.ChoiceAway, result: fixture.OutcomeDraw, want: boolPtr(false)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.choice, tt.result)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("Score()=%v want=%v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Fatalf("Score()=%v want=%v", *got, *tt.want)
			}
		})
	}
}

func TestComputeWeeklyStats_SevenOfTen(t *testing.T) {
	fixtures := weekFixtures(1, 10, fixture.OutcomeHome)
	choices := append(repeat(prediction.ChoiceHome, 7), repeat(prediction.ChoiceAway, 3)...)

	got := ComputeWeeklyStats(1, fixtures, picks(fixtures, choices...), DefaultRules())
	if got.TotalPredictions != 10 || got.CorrectPredictions != 7 || got.WeeklyPercentage != 70 {
		t.Fatalf("unexpected stats: total=%d correct=%d pct=%d", got.TotalPredictions, got.CorrectPredictions, got.WeeklyPercentage)
	}
	if got.Points != 7 {
		t.Fatalf("unexpected points: got=%d want=7", got.Points)
	}
	if len(got.Fixtures) != 10 {
		t.Fatalf("unexpected breakdown size: got=%d want=10", len(got.Fixtures))
	}
}

func TestComputeWeeklyStats_SkipExclusion(t *testing.T) {
	fixtures := weekFixtures(2, 10, fixture.OutcomeDraw)
	choices := append(repeat(prediction.ChoiceDraw, 6), repeat(prediction.ChoiceSkip, 4)...)

	got := ComputeWeeklyStats(2, fixtures, picks(fixtures, choices...), DefaultRules())
	if got.TotalPredictions != 6 {
		t.Fatalf("skips must not count as predictions: got=%d want=6", got.TotalPredictions)
	}
	if got.SkippedCount != 4 || got.TotalTurns != 10 {
		t.Fatalf("unexpected turns: skipped=%d turns=%d", got.SkippedCount, got.TotalTurns)
	}
	if got.WeeklyPercentage != 100 {
		t.Fatalf("unexpected percentage: got=%d want=100", got.WeeklyPercentage)
	}
	for _, row := range got.Fixtures[6:] {
		if row.Choice != string(prediction.ChoiceSkip) || row.IsCorrect != nil {
			t.Fatalf("skip row must have nil correctness: %+v", row)
		}
	}
}

func TestComputeWeeklyStats_ZeroDivision(t *testing.T) {
	fixtures := weekFixtures(3, 10, fixture.OutcomeAway)

	onlySkips := ComputeWeeklyStats(3, fixtures, picks(fixtures, repeat(prediction.ChoiceSkip, 3)...), DefaultRules())
	if onlySkips.WeeklyPercentage != 0 || onlySkips.TotalPredictions != 0 {
		t.Fatalf("expected zero percentage, got %+v", onlySkips)
	}
	if !onlySkips.HasActivity {
		t.Fatalf("skips are activity")
	}

	empty := ComputeWeeklyStats(3, fixtures, nil, DefaultRules())
	if empty.WeeklyPercentage != 0 || empty.HasActivity {
		t.Fatalf("expected empty week without activity, got %+v", empty)
	}
	for _, row := range empty.Fixtures {
		if row.Choice != ChoiceNoPick {
			t.Fatalf("expected NO_PICK, got %q", row.Choice)
		}
	}
}

func TestComputeWeeklyStats_PendingAndNoPick(t *testing.T) {
	fixtures := weekFixtures(4, 3, fixture.OutcomeHome)
	fixtures[1].Status = fixture.StatusScheduled
	fixtures[1].Outcome = fixture.OutcomeUnknown

	preds := picks(fixtures, prediction.ChoiceHome, prediction.ChoiceAway)
	got := ComputeWeeklyStats(4, fixtures, preds, DefaultRules())

	if got.TotalPredictions != 2 {
		t.Fatalf("pending pick must count in total: got=%d want=2", got.TotalPredictions)
	}
	if got.CorrectPredictions != 1 || got.PendingPredictions != 1 {
		t.Fatalf("unexpected correct/pending: %d/%d", got.CorrectPredictions, got.PendingPredictions)
	}
	if got.WeeklyPercentage != 50 {
		t.Fatalf("unexpected percentage: got=%d want=50", got.WeeklyPercentage)
	}
	if got.Fixtures[1].Result != ResultTBD || got.Fixtures[1].IsCorrect != nil {
		t.Fatalf("expected TBD pending row, got %+v", got.Fixtures[1])
	}
	if got.Fixtures[2].Choice != ChoiceNoPick {
		t.Fatalf("expected NO_PICK row, got %+v", got.Fixtures[2])
	}
}

func TestComputeWeeklyStats_IgnoresPredictionsOutsideWeek(t *testing.T) {
	week1 := weekFixtures(1, 2, fixture.OutcomeHome)
	week2 := weekFixtures(2, 2, fixture.OutcomeHome)
	all := append(append([]fixture.Fixture(nil), week1...), week2...)
	preds := append(picks(week1, prediction.ChoiceHome, prediction.ChoiceHome), picks(week2, prediction.ChoiceHome)...)

	got := ComputeWeeklyStats(2, all, preds, DefaultRules())
	if got.FixtureCount != 2 || got.TotalPredictions != 1 {
		t.Fatalf("unexpected week 2 stats: fixtures=%d total=%d", got.FixtureCount, got.TotalPredictions)
	}
}

func TestComputeWeeklyStats_PredictableCountSkipsCancelledLike(t *testing.T) {
	fixtures := weekFixtures(2, 10, fixture.OutcomeHome)
	fixtures[3].Status = fixture.StatusPostponed
	fixtures[7].Status = "abandoned"

	got := ComputeWeeklyStats(2, fixtures, nil, DefaultRules())
	if got.FixtureCount != 10 || got.PredictableCount != 8 {
		t.Fatalf("unexpected counts: fixtures=%d predictable=%d", got.FixtureCount, got.PredictableCount)
	}
	if quota := DefaultRules().QuotaFor(got); quota != 8 {
		t.Fatalf("derived quota must ignore cancelled-like fixtures, got %d", quota)
	}
}

func TestPercentageRounding(t *testing.T) {
	if got := Percentage(2, 3); got != 67 {
		t.Fatalf("Percentage(2,3)=%d want=67", got)
	}
	if got := Percentage(1, 8); got != 13 {
		t.Fatalf("Percentage(1,8)=%d want=13", got)
	}
	if got := Percentage(0, 0); got != 0 {
		t.Fatalf("Percentage(0,0)=%d want=0", got)
	}
}

func statsFor(week, total, correct int) WeeklyStats {
	return WeeklyStats{
		Week:               week,
		FixtureCount:       10,
		PredictableCount:   10,
		TotalPredictions:   total,
		CorrectPredictions: correct,
		WeeklyPercentage:   Percentage(correct, total),
		Points:             correct,
		TotalTurns:         total,
		HasActivity:        total > 0,
	}
}

func TestEvaluateGate(t *testing.T) {
	rules := DefaultRules()

	t.Run("first two weeks are always open", func(t *testing.T) {
		for _, week := range []int{1, 2} {
			if gate := EvaluateGate(week, nil, rules); !gate.Allowed || gate.BlockingWeek != nil {
				t.Fatalf("week %d must be open, got %+v", week, gate)
			}
		}
	})

	t.Run("week one is not a prerequisite", func(t *testing.T) {
		weeks := []WeeklyStats{statsFor(1, 0, 0), statsFor(2, 10, 5)}
		if gate := EvaluateGate(3, weeks, rules); !gate.Allowed {
			t.Fatalf("expected week 3 open, got %+v", gate)
		}
	})

	t.Run("missing week two blocks", func(t *testing.T) {
		gate := EvaluateGate(3, []WeeklyStats{statsFor(1, 10, 7)}, rules)
		if gate.Allowed || gate.BlockingWeek == nil || *gate.BlockingWeek != 2 {
			t.Fatalf("expected blocking week 2, got %+v", gate)
		}
		if gate.RequiredPredictions != 10 {
			t.Fatalf("expected fallback quota 10, got %d", gate.RequiredPredictions)
		}
	})

	t.Run("reports the earliest gap", func(t *testing.T) {
		weeks := []WeeklyStats{statsFor(2, 10, 4), statsFor(3, 9, 4), statsFor(4, 2, 1), statsFor(5, 0, 0)}
		gate := EvaluateGate(6, weeks, rules)
		if gate.Allowed || *gate.BlockingWeek != 3 {
			t.Fatalf("expected blocking week 3, got %+v", gate)
		}
		if gate.CompletedPredictions != 9 {
			t.Fatalf("unexpected completed count: %d", gate.CompletedPredictions)
		}
	})

	t.Run("quota follows fixture count", func(t *testing.T) {
		short := statsFor(2, 8, 3)
		short.FixtureCount = 8
		short.PredictableCount = 8
		if gate := EvaluateGate(3, []WeeklyStats{short}, rules); !gate.Allowed {
			t.Fatalf("eight picks on an eight-fixture week should unlock, got %+v", gate)
		}

		postponed := statsFor(2, 9, 4)
		postponed.PredictableCount = 9
		if gate := EvaluateGate(3, []WeeklyStats{postponed}, rules); !gate.Allowed {
			t.Fatalf("a postponed fixture must not keep week 3 locked, got %+v", gate)
		}

		fixed := rules
		fixed.DeriveQuotaFromFixtures = false
		if gate := EvaluateGate(3, []WeeklyStats{short}, fixed); gate.Allowed {
			t.Fatalf("fixed quota of 10 should block, got %+v", gate)
		}
	})
}

func TestPickBestWorstWeek(t *testing.T) {
	t.Run("no activity", func(t *testing.T) {
		best, worst := PickBestWorstWeek([]WeeklyStats{statsFor(1, 0, 0)})
		if best != nil || worst != nil {
			t.Fatalf("expected nil best/worst, got %+v %+v", best, worst)
		}
	})

	t.Run("accuracy decides", func(t *testing.T) {
		best, worst := PickBestWorstWeek([]WeeklyStats{statsFor(1, 10, 7), statsFor(2, 10, 3), statsFor(3, 10, 5)})
		if best.Week != 1 || worst.Week != 2 {
			t.Fatalf("unexpected best=%d worst=%d", best.Week, worst.Week)
		}
	})

	t.Run("points break accuracy ties", func(t *testing.T) {
		best, worst := PickBestWorstWeek([]WeeklyStats{statsFor(1, 10, 5), statsFor(2, 4, 2)})
		if best.Week != 1 || worst.Week != 2 {
			t.Fatalf("unexpected best=%d worst=%d", best.Week, worst.Week)
		}
	})

	t.Run("recency wins both directions", func(t *testing.T) {
		for _, order := range [][]WeeklyStats{
			{statsFor(3, 10, 6), statsFor(7, 10, 6)},
			{statsFor(7, 10, 6), statsFor(3, 10, 6)},
		} {
			best, worst := PickBestWorstWeek(order)
			if best.Week != 7 || worst.Week != 7 {
				t.Fatalf("expected week 7 as best and worst, got best=%d worst=%d", best.Week, worst.Week)
			}
		}
	})
}

func TestComputeOverallSummary(t *testing.T) {
	skipOnly := WeeklyStats{Week: 5, SkippedCount: 3, TotalTurns: 3, HasActivity: true}
	weeks := []WeeklyStats{statsFor(2, 10, 4), statsFor(1, 10, 7), statsFor(3, 0, 0), skipOnly}

	got := ComputeOverallSummary(weeks, DefaultRules())
	if got.TotalPredictions != 20 || got.CorrectPredictions != 11 {
		t.Fatalf("unexpected totals: %d/%d", got.CorrectPredictions, got.TotalPredictions)
	}
	if got.OverallAccuracy != 55 || got.TotalPoints != 11 {
		t.Fatalf("unexpected accuracy=%d points=%d", got.OverallAccuracy, got.TotalPoints)
	}
	if got.CurrentWeek != 5 {
		t.Fatalf("current week must include skip-only activity: got=%d", got.CurrentWeek)
	}
	if len(got.Weeks) != 3 || got.Weeks[0].Week != 1 || got.Weeks[2].Week != 5 {
		t.Fatalf("unexpected weeks ordering: %+v", got.Weeks)
	}
	if got.BestWeek == nil || got.BestWeek.Week != 1 || got.WorstWeek.Week != 2 {
		t.Fatalf("unexpected best/worst: %+v %+v", got.BestWeek, got.WorstWeek)
	}

	empty := ComputeOverallSummary(nil, DefaultRules())
	if empty.OverallAccuracy != 0 || empty.BestWeek != nil || empty.WorstWeek != nil {
		t.Fatalf("unexpected empty summary: %+v", empty)
	}
}

func boolPtr(v bool) *bool { return &v }
