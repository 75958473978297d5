package cache

import (
	"context"
	"strconv"

	"github.com/riskibarqy/prediction-league/internal/domain/fixture"
	basecache "github.com/riskibarqy/prediction-league/internal/platform/cache"
)

// FixtureRepository is a read-through cache over the fixture catalog.
type FixtureRepository struct {
	next  fixture.Repository
	cache *basecache.Store
}

func NewFixtureRepository(next fixture.Repository, cache *basecache.Store) *FixtureRepository {
	return &FixtureRepository{next: next, cache: cache}
}

func (r *FixtureRepository) ListByWeek(ctx context.Context, mode string, week int) ([]fixture.Fixture, error) {
	key := "fixture:week:" + mode + ":" + strconv.Itoa(week)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByWeek(ctx, mode, week)
		if err != nil {
			return nil, err
		}
		return append([]fixture.Fixture(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]fixture.Fixture)
	return append([]fixture.Fixture(nil), items...), nil
}

func (r *FixtureRepository) ListByMode(ctx context.Context, mode string) ([]fixture.Fixture, error) {
	key := "fixture:mode:" + mode
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByMode(ctx, mode)
		if err != nil {
			return nil, err
		}
		return append([]fixture.Fixture(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]fixture.Fixture)
	return append([]fixture.Fixture(nil), items...), nil
}

func (r *FixtureRepository) GetByID(ctx context.Context, mode, fixtureID string) (fixture.Fixture, bool, error) {
	key := "fixture:id:" + mode + ":" + fixtureID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, mode, fixtureID)
		if err != nil {
			return nil, err
		}
		return cachedFixtureByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return fixture.Fixture{}, false, err
	}

	cached, _ := v.(cachedFixtureByID)
	return cached.value, cached.exists, nil
}

type cachedFixtureByID struct {
	value  fixture.Fixture
	exists bool
}
