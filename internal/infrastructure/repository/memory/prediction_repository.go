package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/prediction-league/internal/domain/prediction"
)

type PredictionRepository struct {
	mu    sync.RWMutex
	items map[string]prediction.Prediction
}

func NewPredictionRepository() *PredictionRepository {
	return &PredictionRepository{items: make(map[string]prediction.Prediction)}
}

func (r *PredictionRepository) Get(_ context.Context, mode, userID, fixtureID string) (prediction.Prediction, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[predictionKey(mode, userID, fixtureID)]
	return item, ok, nil
}

func (r *PredictionRepository) Upsert(_ context.Context, item prediction.Prediction) (prediction.Prediction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := predictionKey(item.Mode, item.UserID, item.FixtureID)
	if existing, ok := r.items[key]; ok {
		if existing.Choice.IsPick() && !item.Choice.IsPick() {
			return prediction.Prediction{}, prediction.ErrPickWithdrawn
		}
		item.ID = existing.ID
		item.CreatedAt = existing.CreatedAt
	}
	r.items[key] = item
	return item, nil
}

func (r *PredictionRepository) ListByUserAndWeek(_ context.Context, mode, userID string, week int) ([]prediction.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prediction.Prediction, 0)
	for _, item := range r.items {
		if item.Mode == mode && item.UserID == userID && item.Week == week {
			out = append(out, item)
		}
	}
	sortPredictions(out)
	return out, nil
}

func (r *PredictionRepository) ListByUser(_ context.Context, mode, userID string) ([]prediction.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prediction.Prediction, 0)
	for _, item := range r.items {
		if item.Mode == mode && item.UserID == userID {
			out = append(out, item)
		}
	}
	sortPredictions(out)
	return out, nil
}

func (r *PredictionRepository) DeleteByUser(_ context.Context, mode, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for key, item := range r.items {
		if item.Mode == mode && item.UserID == userID {
			delete(r.items, key)
			removed++
		}
	}
	return removed, nil
}

func predictionKey(mode, userID, fixtureID string) string {
	return mode + "::" + userID + "::" + fixtureID
}

func sortPredictions(items []prediction.Prediction) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Week != items[j].Week {
			return items[i].Week < items[j].Week
		}
		return items[i].FixtureID < items[j].FixtureID
	})
}
