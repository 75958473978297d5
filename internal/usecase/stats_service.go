package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/prediction-league/internal/domain/fixture"
	"github.com/riskibarqy/prediction-league/internal/domain/prediction"
	"github.com/riskibarqy/prediction-league/internal/domain/scoring"
	"github.com/sourcegraph/conc/pool"
)

// WeekProgress is the gate state of one catalog week for a user.
type WeekProgress struct {
	Week                 int
	FixtureCount         int
	PredictableCount     int
	TotalPredictions     int
	SkippedCount         int
	RequiredPredictions  int
	QuotaMet             bool
	Revealable           bool
	BlockingWeek         *int
	CompletedPredictions int
}

type StatsService struct {
	fixtureRepo    fixture.Repository
	predictionRepo prediction.Repository
	rules          scoring.Rules
	recorder       Recorder
}

func NewStatsService(fixtureRepo fixture.Repository, predictionRepo prediction.Repository, rules scoring.Rules) *StatsService {
	return &StatsService{
		fixtureRepo:    fixtureRepo,
		predictionRepo: predictionRepo,
		rules:          rules,
		recorder:       noopRecorder{},
	}
}

func (s *StatsService) SetRecorder(recorder Recorder) {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	s.recorder = recorder
}

// GetWeeklyStats returns the stats of one week. A week without activity is returned with zero
// totals and HasActivity=false.
func (s *StatsService) GetWeeklyStats(ctx context.Context, userID, mode string, week int) (scoring.WeeklyStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.GetWeeklyStats")
	defer span.End()

	userID, mode, err := s.normalize(userID, mode)
	if err != nil {
		return scoring.WeeklyStats{}, err
	}
	if err := validateWeek(week, s.rules.MaxWeek); err != nil {
		return scoring.WeeklyStats{}, err
	}

	fixtures, predictions, err := s.load(ctx,
		func(ctx context.Context) ([]fixture.Fixture, error) {
			return s.fixtureRepo.ListByWeek(ctx, mode, week)
		},
		func(ctx context.Context) ([]prediction.Prediction, error) {
			return s.predictionRepo.ListByUserAndWeek(ctx, mode, userID, week)
		},
	)
	if err != nil {
		return scoring.WeeklyStats{}, err
	}

	return scoring.ComputeWeeklyStats(week, fixtures, predictions, s.rules), nil
}

// CanRevealWeek evaluates the progression gate for week against the user's current predictions.
func (s *StatsService) CanRevealWeek(ctx context.Context, userID, mode string, week int) (scoring.Gate, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.CanRevealWeek")
	defer span.End()

	userID, mode, err := s.normalize(userID, mode)
	if err != nil {
		return scoring.Gate{}, err
	}
	if err := validateWeek(week, s.rules.MaxWeek); err != nil {
		return scoring.Gate{}, err
	}

	weeks, err := s.season(ctx, userID, mode)
	if err != nil {
		return scoring.Gate{}, err
	}

	gate := scoring.EvaluateGate(week, weeks, s.rules)
	s.recorder.GateEvaluated(mode, gate.Allowed)
	return gate, nil
}

// ListWeekProgress returns the gate state of every week in the catalog, ascending.
func (s *StatsService) ListWeekProgress(ctx context.Context, userID, mode string) ([]WeekProgress, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.ListWeekProgress")
	defer span.End()

	userID, mode, err := s.normalize(userID, mode)
	if err != nil {
		return nil, err
	}

	weeks, err := s.season(ctx, userID, mode)
	if err != nil {
		return nil, err
	}

	out := make([]WeekProgress, 0, len(weeks))
	for _, item := range weeks {
		gate := scoring.EvaluateGate(item.Week, weeks, s.rules)
		required := s.rules.QuotaFor(item)
		out = append(out, WeekProgress{
			Week:                 item.Week,
			FixtureCount:         item.FixtureCount,
			PredictableCount:     item.PredictableCount,
			TotalPredictions:     item.TotalPredictions,
			SkippedCount:         item.SkippedCount,
			RequiredPredictions:  required,
			QuotaMet:             item.TotalPredictions >= required,
			Revealable:           gate.Allowed,
			BlockingWeek:         gate.BlockingWeek,
			CompletedPredictions: gate.CompletedPredictions,
		})
	}

	return out, nil
}

// GetOverallSummary aggregates every week of the mode for the user.
func (s *StatsService) GetOverallSummary(ctx context.Context, userID, mode string) (scoring.OverallSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.GetOverallSummary")
	defer span.End()

	userID, mode, err := s.normalize(userID, mode)
	if err != nil {
		return scoring.OverallSummary{}, err
	}

	weeks, err := s.season(ctx, userID, mode)
	if err != nil {
		return scoring.OverallSummary{}, err
	}

	return scoring.ComputeOverallSummary(weeks, s.rules), nil
}

func (s *StatsService) normalize(userID, mode string) (string, string, error) {
	userID, err := normalizeUserID(userID)
	if err != nil {
		return "", "", err
	}
	mode, err = normalizeMode(mode)
	if err != nil {
		return "", "", err
	}
	return userID, mode, nil
}

func (s *StatsService) season(ctx context.Context, userID, mode string) ([]scoring.WeeklyStats, error) {
	fixtures, predictions, err := s.load(ctx,
		func(ctx context.Context) ([]fixture.Fixture, error) {
			return s.fixtureRepo.ListByMode(ctx, mode)
		},
		func(ctx context.Context) ([]prediction.Prediction, error) {
			return s.predictionRepo.ListByUser(ctx, mode, userID)
		},
	)
	if err != nil {
		return nil, err
	}

	return scoring.ComputeAllWeeks(fixtures, predictions, s.rules), nil
}

// load fetches fixtures and predictions concurrently. Either failure fails the whole load.
func (s *StatsService) load(
	ctx context.Context,
	loadFixtures func(context.Context) ([]fixture.Fixture, error),
	loadPredictions func(context.Context) ([]prediction.Prediction, error),
) ([]fixture.Fixture, []prediction.Prediction, error) {
	var (
		fixtures    []fixture.Fixture
		predictions []prediction.Prediction
	)

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		items, err := loadFixtures(ctx)
		if err != nil {
			return fmt.Errorf("%w: list fixtures: %w", ErrDependencyUnavailable, err)
		}
		fixtures = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := loadPredictions(ctx)
		if err != nil {
			return fmt.Errorf("%w: list predictions: %w", ErrDependencyUnavailable, err)
		}
		predictions = items
		return nil
	})
	if err := p.Wait(); err != nil {
		return nil, nil, err
	}

	return fixtures, predictions, nil
}
