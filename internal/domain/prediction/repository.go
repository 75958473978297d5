package prediction

import "context"

// Repository describes prediction persistence needs from use cases.
// Upsert keeps at most one row per (mode, user, fixture); the last write wins.
type Repository interface {
	Get(ctx context.Context, mode, userID, fixtureID string) (Prediction, bool, error)
	Upsert(ctx context.Context, item Prediction) (Prediction, error)
	ListByUserAndWeek(ctx context.Context, mode, userID string, week int) ([]Prediction, error)
	ListByUser(ctx context.Context, mode, userID string) ([]Prediction, error)
	DeleteByUser(ctx context.Context, mode, userID string) (int, error)
}
