package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/prediction-league/internal/domain/fixture"
)

type FixtureRepository struct {
	mu           sync.RWMutex
	fixturesByID map[string]fixture.Fixture
}

func NewFixtureRepository(fixtures []fixture.Fixture) *FixtureRepository {
	fixturesByID := make(map[string]fixture.Fixture, len(fixtures))
	for _, item := range fixtures {
		fixturesByID[fixtureKey(item.Mode, item.ID)] = cloneFixture(item)
	}

	return &FixtureRepository{fixturesByID: fixturesByID}
}

func (r *FixtureRepository) ListByWeek(_ context.Context, mode string, week int) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fixture.Fixture, 0)
	for _, item := range r.fixturesByID {
		if item.Mode == mode && item.Week == week {
			out = append(out, cloneFixture(item))
		}
	}
	sortFixtures(out)
	return out, nil
}

func (r *FixtureRepository) ListByMode(_ context.Context, mode string) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fixture.Fixture, 0)
	for _, item := range r.fixturesByID {
		if item.Mode == mode {
			out = append(out, cloneFixture(item))
		}
	}
	sortFixtures(out)
	return out, nil
}

func (r *FixtureRepository) GetByID(_ context.Context, mode, fixtureID string) (fixture.Fixture, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.fixturesByID[fixtureKey(mode, fixtureID)]
	if !ok {
		return fixture.Fixture{}, false, nil
	}
	return cloneFixture(item), true, nil
}

func fixtureKey(mode, fixtureID string) string {
	return mode + "::" + fixtureID
}

func sortFixtures(items []fixture.Fixture) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Week != items[j].Week {
			return items[i].Week < items[j].Week
		}
		if !items[i].KickoffAt.Equal(items[j].KickoffAt) {
			return items[i].KickoffAt.Before(items[j].KickoffAt)
		}
		return items[i].ID < items[j].ID
	})
}

func cloneFixture(f fixture.Fixture) fixture.Fixture {
	copied := f
	if f.HomeScore != nil {
		v := *f.HomeScore
		copied.HomeScore = &v
	}
	if f.AwayScore != nil {
		v := *f.AwayScore
		copied.AwayScore = &v
	}
	return copied
}
