package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/prediction-league/internal/domain/fixture"
	"github.com/riskibarqy/prediction-league/internal/domain/prediction"
	"github.com/riskibarqy/prediction-league/internal/domain/scoring"
	"github.com/riskibarqy/prediction-league/internal/platform/id"
)

type SubmitPredictionInput struct {
	UserID    string
	Mode      string
	FixtureID string
	Choice    string
}

type PredictionService struct {
	fixtureRepo    fixture.Repository
	predictionRepo prediction.Repository
	idGen          id.Generator
	rules          scoring.Rules
	lockBuffer     time.Duration
	recorder       Recorder
	now            func() time.Time
}

func NewPredictionService(
	fixtureRepo fixture.Repository,
	predictionRepo prediction.Repository,
	idGen id.Generator,
	rules scoring.Rules,
	lockBuffer time.Duration,
) *PredictionService {
	if lockBuffer < 0 {
		lockBuffer = 0
	}
	return &PredictionService{
		fixtureRepo:    fixtureRepo,
		predictionRepo: predictionRepo,
		idGen:          idGen,
		rules:          rules,
		lockBuffer:     lockBuffer,
		recorder:       noopRecorder{},
		now:            time.Now,
	}
}

func (s *PredictionService) SetRecorder(recorder Recorder) {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	s.recorder = recorder
}

// Submit stores the caller's choice for a fixture, replacing any earlier choice.
// Submitting the same choice twice leaves the store unchanged.
func (s *PredictionService) Submit(ctx context.Context, input SubmitPredictionInput) (prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Submit")
	defer span.End()

	userID, err := normalizeUserID(input.UserID)
	if err != nil {
		return prediction.Prediction{}, err
	}
	mode, err := normalizeMode(input.Mode)
	if err != nil {
		return prediction.Prediction{}, err
	}
	fixtureID := strings.TrimSpace(input.FixtureID)
	if fixtureID == "" {
		return prediction.Prediction{}, fmt.Errorf("%w: fixture id is required", ErrInvalidInput)
	}
	choice, err := prediction.ParseChoice(input.Choice)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	item, exists, err := s.fixtureRepo.GetByID(ctx, mode, fixtureID)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("%w: get fixture: %w", ErrDependencyUnavailable, err)
	}
	if !exists {
		return prediction.Prediction{}, fmt.Errorf("%w: unknown fixture=%s mode=%s", ErrInvalidInput, fixtureID, mode)
	}

	if fixture.IsCancelledLikeStatus(item.Status) {
		s.recorder.PredictionSubmitted(mode, submitOutcomeRejected)
		return prediction.Prediction{}, fmt.Errorf("%w: fixture=%s is %s", ErrConflict, fixtureID, fixture.NormalizeStatus(item.Status))
	}

	now := s.now().UTC()
	if mode == prediction.ModeLive && (isLocked(item) || !now.Before(item.KickoffAt.Add(-s.lockBuffer))) {
		s.recorder.PredictionSubmitted(mode, submitOutcomeRejected)
		return prediction.Prediction{}, fmt.Errorf("%w: predictions for fixture=%s closed at kickoff %s", ErrConflict, fixtureID, item.KickoffAt.UTC().Format(time.RFC3339))
	}

	existing, found, err := s.predictionRepo.Get(ctx, mode, userID, fixtureID)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("%w: get prediction: %w", ErrDependencyUnavailable, err)
	}
	if found && existing.Choice == choice {
		s.recorder.PredictionSubmitted(mode, submitOutcomeUnchanged)
		return existing, nil
	}
	if found && existing.Choice.IsPick() && !choice.IsPick() {
		s.recorder.PredictionSubmitted(mode, submitOutcomeRejected)
		return prediction.Prediction{}, fmt.Errorf("%w: a pick for fixture=%s cannot be turned into a skip", ErrConflict, fixtureID)
	}

	record := prediction.Prediction{
		Mode:      mode,
		UserID:    userID,
		FixtureID: fixtureID,
		Week:      item.Week,
		Choice:    choice,
		CreatedAt: now,
		UpdatedAt: now,
	}
	outcome := submitOutcomeCreated
	if found {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
		outcome = submitOutcomeUpdated
	} else {
		record.ID, err = s.idGen.NewID()
		if err != nil {
			return prediction.Prediction{}, fmt.Errorf("generate prediction id: %w", err)
		}
	}
	if err := record.ValidateBasic(); err != nil {
		return prediction.Prediction{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	saved, err := s.predictionRepo.Upsert(ctx, record)
	if errors.Is(err, prediction.ErrPickWithdrawn) {
		s.recorder.PredictionSubmitted(mode, submitOutcomeRejected)
		return prediction.Prediction{}, fmt.Errorf("%w: %w", ErrConflict, err)
	}
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("%w: upsert prediction: %w", ErrDependencyUnavailable, err)
	}
	s.recorder.PredictionSubmitted(mode, outcome)

	return saved, nil
}

func (s *PredictionService) ListByWeek(ctx context.Context, userID, mode string, week int) ([]prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.ListByWeek")
	defer span.End()

	userID, err := normalizeUserID(userID)
	if err != nil {
		return nil, err
	}
	mode, err = normalizeMode(mode)
	if err != nil {
		return nil, err
	}
	if err := validateWeek(week, s.rules.MaxWeek); err != nil {
		return nil, err
	}

	items, err := s.predictionRepo.ListByUserAndWeek(ctx, mode, userID, week)
	if err != nil {
		return nil, fmt.Errorf("%w: list predictions by week: %w", ErrDependencyUnavailable, err)
	}

	return items, nil
}

// Reset deletes every prediction of the user in one mode. The other mode is untouched.
func (s *PredictionService) Reset(ctx context.Context, userID, mode string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Reset")
	defer span.End()

	userID, err := normalizeUserID(userID)
	if err != nil {
		return 0, err
	}
	mode, err = normalizeMode(mode)
	if err != nil {
		return 0, err
	}

	removed, err := s.predictionRepo.DeleteByUser(ctx, mode, userID)
	if err != nil {
		return 0, fmt.Errorf("%w: delete predictions: %w", ErrDependencyUnavailable, err)
	}
	s.recorder.PredictionsReset(mode, removed)

	return removed, nil
}

func isLocked(item fixture.Fixture) bool {
	return fixture.IsLiveStatus(item.Status) || fixture.IsFinishedStatus(item.Status)
}
