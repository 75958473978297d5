package fixture

import "context"

// Repository exposes fixture catalog read operations. Fixtures are never written by this service.
type Repository interface {
	ListByWeek(ctx context.Context, mode string, week int) ([]Fixture, error)
	ListByMode(ctx context.Context, mode string) ([]Fixture, error)
	GetByID(ctx context.Context, mode, fixtureID string) (Fixture, bool, error)
}
