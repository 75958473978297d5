package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/prediction-league/internal/domain/fixture"
	"github.com/riskibarqy/prediction-league/internal/domain/scoring"
)

type FixtureService struct {
	fixtureRepo fixture.Repository
	rules       scoring.Rules
}

func NewFixtureService(fixtureRepo fixture.Repository, rules scoring.Rules) *FixtureService {
	return &FixtureService{
		fixtureRepo: fixtureRepo,
		rules:       rules,
	}
}

func (s *FixtureService) ListByWeek(ctx context.Context, mode string, week int) ([]fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.ListByWeek")
	defer span.End()

	mode, err := normalizeMode(mode)
	if err != nil {
		return nil, err
	}
	if err := validateWeek(week, s.rules.MaxWeek); err != nil {
		return nil, err
	}

	fixtures, err := s.fixtureRepo.ListByWeek(ctx, mode, week)
	if err != nil {
		return nil, fmt.Errorf("%w: list fixtures by week: %w", ErrDependencyUnavailable, err)
	}

	return fixtures, nil
}
